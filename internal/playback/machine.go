package playback

import (
	"fmt"
	"sync"

	"github.com/trickypr/sync-party/internal/clock"
	"github.com/trickypr/sync-party/internal/party"
)

// Keyboard seeks move by this many seconds.
const seekStepSeconds = 5.0

// Machine owns a member's local playback state and reconciles it against
// authoritative play orders. It never applies its own wishes speculatively;
// all authoritative changes arrive as rebroadcast orders from the broker.
type Machine struct {
	mu sync.Mutex

	partyID string
	selfID  string

	playlist []party.MediaItem
	members  []party.ClientPartyMember

	clock  *clock.OffsetTracker
	player Player
	wishes WishSink
	meta   MetadataUpdater
	report Reporter
	now    func() int64

	order         *party.PlayOrder
	playingItem   *party.MediaItem
	playlistIndex int
	position      float64
	duration      float64
	volume        float64

	isPlaying   bool
	isSeeking   bool
	isSyncing   bool
	isBuffering bool

	// True until the first reconciliation after joining; only that one
	// applies the catch-up projection.
	freshlyJoined bool

	// Set once the current item's end was acted on; the next applied order
	// re-arms it. The player keeps signalling end-of-item until the
	// rebroadcast order lands.
	ended bool
}

type Config struct {
	PartyID string
	SelfID  string

	Clock    *clock.OffsetTracker
	Player   Player
	Wishes   WishSink
	Metadata MetadataUpdater
	Reporter Reporter

	// Now overrides the wall clock, for tests.
	Now func() int64
}

func New(cfg Config) *Machine {
	now := cfg.Now
	if now == nil {
		now = clock.Now
	}

	return &Machine{
		partyID: cfg.PartyID,
		selfID:  cfg.SelfID,

		clock:  cfg.Clock,
		player: cfg.Player,
		wishes: cfg.Wishes,
		meta:   cfg.Metadata,
		report: cfg.Reporter,
		now:    now,

		volume:        1,
		freshlyJoined: true,
	}
}

func (m *Machine) SetPlaylist(items []party.MediaItem) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.playlist = items
	if m.playingItem != nil {
		if idx := m.findItem(m.playingItem.ID); idx >= 0 {
			m.playlistIndex = idx
		}
	}
}

func (m *Machine) SetMembers(members []party.ClientPartyMember) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.members = members
}

// ApplyOrder applies an authoritative play order. An order older than the
// one currently held is discarded; equal timestamps keep the existing order.
func (m *Machine) ApplyOrder(order party.PlayOrder) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.order != nil && order.Timestamp <= m.order.Timestamp {
		return
	}

	m.order = &order
	m.isSyncing = true
	m.ended = false

	idx := m.findItem(order.MediaItemID)
	if idx < 0 {
		// The order references an item our playlist snapshot does not
		// have. Recoverable staleness; the next partyUpdate resolves it.
		return
	}
	item := m.playlist[idx]

	kind := Classify(order, m.playingItem, m.isPlaying)
	if kind != OrderNone && order.Issuer != party.IssuerSystem {
		if username, ok := m.memberName(order.Issuer); ok {
			m.report.Action(username, kind)
		}
	}

	if m.playingItem == nil || m.playingItem.ID != item.ID {
		// New source; wait for its duration before reconciling.
		m.duration = 0
	}

	m.playingItem = &item
	m.playlistIndex = idx

	m.finishSyncLocked()
}

// HandleDuration is the playback capability's duration-known event.
func (m *Machine) HandleDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.duration = seconds
	m.finishSyncLocked()
}

// finishSyncLocked runs the sync procedure finish once an order is pending
// and the duration is known: seek to the order position, with a catch-up
// projection for the very first reconciliation after joining.
func (m *Machine) finishSyncLocked() {
	if m.duration <= 0 || m.order == nil || !m.isSyncing || m.playingItem == nil {
		return
	}

	offset := 0.0
	if m.freshlyJoined {
		if m.order.IsPlaying {
			// Wall time elapsed between order creation and local
			// application, in the server frame, as a fraction of
			// the duration.
			elapsed := m.now() + m.clock.Offset() - m.order.Timestamp
			offset = float64(elapsed) / (m.duration * 1000)
		}

		m.freshlyJoined = false
	}

	if err := m.player.SeekTo(m.order.Position + offset); err != nil {
		m.report.Error(fmt.Sprintf("Could not seek: %v", err))
	}

	m.isSeeking = false
	m.isPlaying = m.order.IsPlaying
	m.isSyncing = false
	m.isBuffering = m.order.IsPlaying && SourceOf(*m.playingItem).BuffersAfterSeek()
}

func (m *Machine) HandleProgress(fraction float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isSeeking {
		m.position = fraction
	}
}

func (m *Machine) HandleReady() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.isPlaying {
		m.isBuffering = false
	}
}

func (m *Machine) HandleBufferEnd() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.isBuffering = false
}

// HandleEnded advances the party to the next playlist item, or loops back to
// the first item paused when the playlist is exhausted. It acts once per
// ended item regardless of how often the player signals it. The played flag
// update is best-effort and never blocks the already emitted wish.
func (m *Machine) HandleEnded() {
	m.mu.Lock()

	if m.ended || len(m.playlist) == 0 {
		m.mu.Unlock()
		return
	}
	m.ended = true

	ended := m.playingItem

	if m.playlistIndex+1 < len(m.playlist) {
		m.emitWishLocked(m.playlist[m.playlistIndex+1], m.isPlaying, 0, true, "")
	} else {
		m.emitWishLocked(m.playlist[0], false, 0, true, "")
		m.isPlaying = false
	}

	m.mu.Unlock()

	if ended != nil && m.meta != nil {
		if err := m.meta.UpdatePlayedFlag(m.partyID, ended.ID); err != nil {
			m.report.Error(fmt.Sprintf("Could not update played flag: %v", err))
		}
	}
}

// PlayPause emits a wish toggling the play state at the player's current
// position. The local state only changes when the rebroadcast order arrives.
func (m *Machine) PlayPause() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playingItem == nil {
		return
	}

	pos := m.position
	if p, err := m.player.CurrentPosition(); err == nil {
		pos = p
	}

	m.emitWishLocked(*m.playingItem, !m.isPlaying, pos, false, "")
}

// SeekDown starts a seek drag; progress updates stop moving the handle.
func (m *Machine) SeekDown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.isSeeking = true
}

// SeekMove is local-only; drag positions are never sent over the protocol.
func (m *Machine) SeekMove(fraction float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.position = fraction
}

// SeekRelease emits a wish for the released position with the current play
// intent. isSeeking resolves when the resulting order reconciles.
func (m *Machine) SeekRelease(fraction float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playingItem == nil {
		return
	}

	m.emitWishLocked(*m.playingItem, m.isPlaying, fraction, false, "")
}

// SeekStep emits a directional keyboard seek of seekStepSeconds.
func (m *Machine) SeekStep(direction party.SeekDirection) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playingItem == nil || m.duration <= 0 {
		return
	}

	delta := seekStepSeconds / m.duration
	if direction == party.SeekLeft {
		delta = -delta
	}

	pos := m.position + delta
	if pos < 0 {
		pos = 0
	} else if pos > 1 {
		pos = 1
	}

	m.emitWishLocked(*m.playingItem, m.isPlaying, pos, false, direction)
}

// SetVolume is a local-only affordance.
func (m *Machine) SetVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if volume < 0 {
		volume = 0
	} else if volume > 1 {
		volume = 1
	}
	m.volume = volume
}

// Status snapshots the player position and play intent for the sync-status
// heartbeat. ok is false while the player cannot report a position.
func (m *Machine) Status() (position float64, isPlaying bool, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	pos, err := m.player.CurrentPosition()
	if err != nil {
		return 0, false, false
	}

	return pos, m.isPlaying, true
}

func (m *Machine) PlayingItem() *party.MediaItem {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playingItem == nil {
		return nil
	}

	item := *m.playingItem
	return &item
}

func (m *Machine) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.duration
}

func (m *Machine) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.isPlaying
}

func (m *Machine) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.volume
}

func (m *Machine) emitWishLocked(item party.MediaItem, isPlaying bool, position float64, system bool, direction party.SeekDirection) {
	issuer := m.selfID
	if system {
		issuer = party.IssuerSystem
	}

	m.wishes.EmitWish(party.PlayWish{
		PartyID:     m.partyID,
		Issuer:      issuer,
		MediaItemID: item.ID,
		Type:        item.Type,
		IsPlaying:   isPlaying,
		Position:    position,
		Timestamp:   m.now(),
		Direction:   direction,
	})
}

func (m *Machine) findItem(id string) int {
	for i, item := range m.playlist {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (m *Machine) memberName(id string) (string, bool) {
	for _, member := range m.members {
		if member.ID == id {
			return member.Username, true
		}
	}
	return "", false
}
