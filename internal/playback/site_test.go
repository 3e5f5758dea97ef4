package playback

import (
	"testing"

	"github.com/trickypr/sync-party/internal/party"
)

func TestSiteOf(t *testing.T) {
	cases := []struct {
		url  string
		want Site
	}{
		{"https://www.youtube.com/watch?v=abc", SiteYouTube},
		{"https://youtu.be/abc", SiteYouTube},
		{"https://music.youtube.com/watch?v=abc", SiteYouTube},
		{"https://www.facebook.com/watch/?v=1", SiteFacebook},
		{"https://www.twitch.tv/somechannel", SiteTwitch},
		{"https://soundcloud.com/artist/track", SiteSoundCloud},
		{"https://vimeo.com/123456", SiteVimeo},
		{"https://example.com/stream.m3u8", SiteOther},
		{"://not a url", SiteOther},
	}

	for _, tc := range cases {
		if got := SiteOf(tc.url); got != tc.want {
			t.Errorf("SiteOf(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestBuffersAfterSeek(t *testing.T) {
	cases := []struct {
		name string
		item party.MediaItem
		want bool
	}{
		{"file", party.MediaItem{Type: party.MediaTypeFile, URL: "movie.mp4"}, true},
		{"youtube", party.MediaItem{Type: party.MediaTypeWeb, URL: "https://youtu.be/abc"}, true},
		{"facebook", party.MediaItem{Type: party.MediaTypeWeb, URL: "https://facebook.com/watch/?v=1"}, true},
		{"vimeo", party.MediaItem{Type: party.MediaTypeWeb, URL: "https://vimeo.com/1"}, false},
		{"plain stream", party.MediaItem{Type: party.MediaTypeWeb, URL: "https://example.com/a.m3u8"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SourceOf(tc.item).BuffersAfterSeek(); got != tc.want {
				t.Fatalf("BuffersAfterSeek() = %v, want %v", got, tc.want)
			}
		})
	}
}
