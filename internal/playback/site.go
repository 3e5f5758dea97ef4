package playback

import (
	"net/url"
	"strings"

	"github.com/trickypr/sync-party/internal/party"
)

type Site int

const (
	SiteOther Site = iota
	SiteYouTube
	SiteFacebook
	SiteTwitch
	SiteSoundCloud
	SiteVimeo
)

type SourceKind int

const (
	SourceFile SourceKind = iota
	SourceWeb
)

// Source is the closed variant over an item's playback origin: a locally
// served file, or a web source with its site resolved from the URL.
type Source struct {
	Kind SourceKind
	Site Site
}

func SiteOf(rawURL string) Site {
	u, err := url.Parse(rawURL)
	if err != nil {
		return SiteOther
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch {
	case host == "youtu.be" || strings.HasSuffix(host, "youtube.com"):
		return SiteYouTube
	case strings.HasSuffix(host, "facebook.com"):
		return SiteFacebook
	case strings.HasSuffix(host, "twitch.tv"):
		return SiteTwitch
	case strings.HasSuffix(host, "soundcloud.com"):
		return SiteSoundCloud
	case strings.HasSuffix(host, "vimeo.com"):
		return SiteVimeo
	default:
		return SiteOther
	}
}

func SourceOf(item party.MediaItem) Source {
	if item.Type == party.MediaTypeFile {
		return Source{Kind: SourceFile}
	}

	return Source{Kind: SourceWeb, Site: SiteOf(item.URL)}
}

// BuffersAfterSeek reports whether a seek on this source is expected to stall
// before playback resumes. Files always reload around a seek; of the web
// players only YouTube and Facebook are known to buffer.
func (s Source) BuffersAfterSeek() bool {
	switch s.Kind {
	case SourceFile:
		return true
	case SourceWeb:
		return s.Site == SiteYouTube || s.Site == SiteFacebook
	}
	return false
}
