package playback

import (
	"testing"

	"github.com/trickypr/sync-party/internal/party"
)

func TestClassifyPrecedence(t *testing.T) {
	item := &party.MediaItem{ID: "m1", Type: party.MediaTypeWeb, URL: "https://vimeo.com/1"}

	cases := []struct {
		name      string
		order     party.PlayOrder
		playing   *party.MediaItem
		isPlaying bool
		want      OrderKind
	}{
		{
			name:  "no current item is an item change",
			order: party.PlayOrder{MediaItemID: "m1"},
			want:  OrderItemChanged,
		},
		{
			name:    "different item outranks everything",
			order:   party.PlayOrder{MediaItemID: "m2", IsPlaying: true, Direction: party.SeekLeft},
			playing: item,
			want:    OrderItemChanged,
		},
		{
			name:    "resume outranks a seek direction",
			order:   party.PlayOrder{MediaItemID: "m1", IsPlaying: true, Direction: party.SeekRight},
			playing: item,
			want:    OrderResumed,
		},
		{
			name:      "pause",
			order:     party.PlayOrder{MediaItemID: "m1", IsPlaying: false},
			playing:   item,
			isPlaying: true,
			want:      OrderPaused,
		},
		{
			name:      "seek left",
			order:     party.PlayOrder{MediaItemID: "m1", IsPlaying: true, Direction: party.SeekLeft},
			playing:   item,
			isPlaying: true,
			want:      OrderSeekLeft,
		},
		{
			name:      "seek right",
			order:     party.PlayOrder{MediaItemID: "m1", IsPlaying: true, Direction: party.SeekRight},
			playing:   item,
			isPlaying: true,
			want:      OrderSeekRight,
		},
		{
			name:      "bare resync is none",
			order:     party.PlayOrder{MediaItemID: "m1", IsPlaying: true},
			playing:   item,
			isPlaying: true,
			want:      OrderNone,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.order, tc.playing, tc.isPlaying)
			if got != tc.want {
				t.Fatalf("Classify() = %v, want %v", got, tc.want)
			}
		})
	}
}
