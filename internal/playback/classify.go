package playback

import "github.com/trickypr/sync-party/internal/party"

// OrderKind classifies a play order for the attribution notification shown
// to members. OrderNone covers bare resyncs, which get no notification.
type OrderKind int

const (
	OrderNone OrderKind = iota
	OrderItemChanged
	OrderResumed
	OrderPaused
	OrderSeekLeft
	OrderSeekRight
)

func (k OrderKind) String() string {
	switch k {
	case OrderItemChanged:
		return "item-changed"
	case OrderResumed:
		return "resumed"
	case OrderPaused:
		return "paused"
	case OrderSeekLeft:
		return "seek-left"
	case OrderSeekRight:
		return "seek-right"
	default:
		return "none"
	}
}

// Classify applies the attribution precedence: an item change outranks a
// play/pause change, which outranks a directional seek.
func Classify(order party.PlayOrder, playing *party.MediaItem, isPlaying bool) OrderKind {
	if playing == nil || order.MediaItemID != playing.ID {
		return OrderItemChanged
	}

	if order.IsPlaying != isPlaying {
		if order.IsPlaying {
			return OrderResumed
		}
		return OrderPaused
	}

	switch order.Direction {
	case party.SeekLeft:
		return OrderSeekLeft
	case party.SeekRight:
		return OrderSeekRight
	}

	return OrderNone
}
