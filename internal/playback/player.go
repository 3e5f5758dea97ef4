package playback

import "github.com/trickypr/sync-party/internal/party"

// Player is the playback capability the state machine drives. Positions are
// fractions of the item duration. All calls are synchronous reads or
// commands; none block.
type Player interface {
	// CurrentPosition errors while the player is not ready.
	CurrentPosition() (float64, error)

	// Duration in seconds, 0 while unknown.
	Duration() float64

	// SeekTo errors while the player is not ready. The machine does not
	// retry within a cycle; the next order gives it another chance.
	SeekTo(fraction float64) error
}

// WishSink carries play wishes towards the broker. Sends are fire-and-forget.
type WishSink interface {
	EmitWish(wish party.PlayWish)
}

// MetadataUpdater is the external collaborator that marks playlist items
// played. Best-effort; failures never roll back an already emitted wish.
type MetadataUpdater interface {
	UpdatePlayedFlag(partyID, mediaItemID string) error
}

// Reporter is the process-wide user-facing feedback channel. Failures in the
// sync core are reported here instead of propagating up the call stack; none
// of them end the session.
type Reporter interface {
	Error(msg string)
	Action(username string, kind OrderKind)
}
