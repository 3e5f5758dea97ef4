package member

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/trickypr/sync-party/internal/clock"
	"github.com/trickypr/sync-party/internal/logger"
	"github.com/trickypr/sync-party/internal/m3u8duration"
	"github.com/trickypr/sync-party/internal/party"
	"github.com/trickypr/sync-party/internal/playback"
	"github.com/trickypr/sync-party/internal/syncstatus"
	"github.com/trickypr/sync-party/internal/ws"
)

type Options struct {
	ServerURL string // ws endpoint, e.g. ws://localhost:8080/ws
	APIBase   string // REST base, e.g. http://localhost:8080

	PartyID  string
	UserID   string
	Username string

	Playlist []party.MediaItem

	// Known item durations in seconds, keyed by item id. Web items with an
	// m3u8 source are probed instead when absent.
	Durations map[string]float64

	SyncStatusIntervalDelay int64 // ms
	SyncStatusTolerance     int64 // ms
}

// Member is a headless party member: one websocket connection, the playback
// state machine, the sync-status estimator, and a wall-clock player.
type Member struct {
	opts Options

	conn *websocket.Conn
	send chan ws.Message
	recv chan ws.Message
	done chan struct{}

	handlers map[string]func(msg any)

	clock     *clock.OffsetTracker
	player    *playback.WallClockPlayer
	machine   *playback.Machine
	estimator *syncstatus.Estimator
	report    *Reporter

	mu      sync.Mutex
	members []party.ClientPartyMember
	status  party.MemberStatus
	peers   []party.SyncStatusReceiveMember
}

func Dial(opts Options) (*Member, error) {
	conn, _, err := websocket.DefaultDialer.Dial(opts.ServerURL, nil)
	if err != nil {
		return nil, err
	}

	m := &Member{
		opts: opts,

		conn: conn,
		send: make(chan ws.Message, ws.MaxBufferSize),
		recv: make(chan ws.Message, ws.MaxBufferSize),
		done: make(chan struct{}),

		handlers: make(map[string]func(msg any)),

		clock:  &clock.OffsetTracker{},
		player: playback.NewWallClockPlayer(),
		report: &Reporter{},
	}

	m.machine = playback.New(playback.Config{
		PartyID:  opts.PartyID,
		SelfID:   opts.UserID,
		Clock:    m.clock,
		Player:   m.player,
		Wishes:   m,
		Metadata: &metadataClient{member: m},
		Reporter: m.report,
	})
	m.machine.SetPlaylist(opts.Playlist)

	m.estimator = syncstatus.New(opts.PartyID, opts.UserID, opts.SyncStatusTolerance, nil)

	m.registerHandlers()

	return m, nil
}

// Run drives the connection until the context ends or the server goes away.
func (m *Member) Run(ctx context.Context) error {
	go m.writePump()
	go m.readPump()

	m.Emit("connection", nil)

	ticker := time.NewTicker(time.Duration(m.opts.SyncStatusIntervalDelay) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.conn.Close()
			return ctx.Err()
		case <-m.done:
			return nil
		case <-ticker.C:
			m.pollPlayer()
			m.heartbeat()
		}
	}
}

func (m *Member) Machine() *playback.Machine {
	return m.machine
}

func (m *Member) LastError() string {
	return m.report.LastError()
}

func (m *Member) MemberStatus() party.MemberStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.status
}

func (m *Member) Peers() []party.SyncStatusReceiveMember {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.peers
}

// EmitWish sends a play wish towards the broker, fire and forget. The
// machine relies on the rebroadcast order for the actual state change.
func (m *Member) EmitWish(wish party.PlayWish) {
	m.Emit("playWish", wish)
}

func (m *Member) Emit(event string, data any) {
	select {
	case m.send <- ws.Message{Event: event, Data: data}:
	case <-m.done:
	}
}

// registerHandlers (re)binds all event handlers. Off before On: running it
// twice, e.g. across a rejoin, leaves exactly one handler per event.
func (m *Member) registerHandlers() {
	for _, event := range []string{"connected", "playOrder", "syncStatus", "partyMembers", "partyUpdate"} {
		m.off(event)
	}

	m.on("connected", func(msg any) {
		var connected ws.Connected
		if !decode(msg, &connected) {
			return
		}

		m.clock.Establish(connected.ServerTime, clock.Now())

		m.registerHandlers()
		m.Emit("joinParty", party.JoinParty{
			UserID:    m.opts.UserID,
			PartyID:   m.opts.PartyID,
			Username:  m.opts.Username,
			Timestamp: clock.Now(),
		})
	})

	m.on("playOrder", func(msg any) {
		var order party.PlayOrder
		if !decode(msg, &order) {
			logger.Log.Debug("Discarded play order. Order is not a structure.")
			return
		}

		m.machine.ApplyOrder(order)
		m.syncDuration()
	})

	m.on("syncStatus", func(msg any) {
		var incoming party.SyncStatusIncoming
		if !decode(msg, &incoming) {
			return
		}

		status, peers := m.estimator.Evaluate(incoming, m.membersSnapshot(), m.player.Duration())
		if status == nil {
			// Own sample missing; nothing to resolve this cycle.
			return
		}

		m.mu.Lock()
		m.status = status
		m.peers = peers
		m.mu.Unlock()
	})

	m.on("partyMembers", func(msg any) {
		var members []party.ClientPartyMember
		if !decode(msg, &members) {
			return
		}

		m.mu.Lock()
		m.members = members
		m.mu.Unlock()

		m.machine.SetMembers(members)
	})

	m.on("partyUpdate", func(msg any) {
		go m.refreshPlaylist()
	})
}

func (m *Member) on(event string, handler func(msg any)) {
	m.handlers[event] = handler
}

func (m *Member) off(event string) {
	delete(m.handlers, event)
}

func (m *Member) membersSnapshot() []party.ClientPartyMember {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.members
}

// syncDuration makes the player ready for the currently ordered item. The
// machine resets its duration on item change and reconciles once a new one
// is reported.
func (m *Member) syncDuration() {
	item := m.machine.PlayingItem()
	if item == nil || m.machine.Duration() > 0 {
		return
	}

	if d, ok := m.opts.Durations[item.ID]; ok {
		m.player.SetDuration(d)
		m.machine.HandleDuration(d)
		return
	}

	if item.Type == party.MediaTypeWeb && strings.Contains(item.URL, ".m3u8") {
		go func(url string) {
			d, err := m3u8duration.Fetch(url)
			if err != nil {
				m.report.Error("Could not fetch media duration: " + err.Error())
				return
			}

			m.player.SetDuration(d)
			m.machine.HandleDuration(d)
		}(item.URL)
	}
}

// pollPlayer bridges the wall-clock player's "events" to the machine: it has
// no real buffering and signals end-of-item by running past the end.
func (m *Member) pollPlayer() {
	m.player.SetPlaying(m.machine.IsPlaying())

	if pos, err := m.player.CurrentPosition(); err == nil {
		m.machine.HandleProgress(pos)
	}

	m.machine.HandleBufferEnd()

	if m.player.Ended() && m.machine.IsPlaying() {
		m.machine.HandleEnded()
	}
}

func (m *Member) heartbeat() {
	pos, playing, ok := m.machine.Status()
	if !ok {
		return
	}

	m.Emit("syncStatus", m.estimator.Outgoing(pos, playing))
}

func (m *Member) writePump() {
	ticker := time.NewTicker(ws.PingInterval)
	defer func() {
		ticker.Stop()
		m.conn.Close()
	}()

	for {
		select {
		case msg := <-m.send:
			m.conn.SetWriteDeadline(time.Now().Add(ws.ReplyWait))

			if err := m.conn.WriteJSON(msg); err != nil {
				return
			}
		case msg := <-m.recv:
			if handler := m.handlers[msg.Event]; handler != nil {
				handler(msg.Data)
			}
		case <-ticker.C:
			m.conn.SetWriteDeadline(time.Now().Add(ws.ReplyWait))

			if err := m.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-m.done:
			return
		}
	}
}

func (m *Member) readPump() {
	defer close(m.done)

	m.conn.SetReadLimit(int64(ws.MaxBufferSize))
	m.conn.SetReadDeadline(time.Now().Add(ws.ResponseWait))
	m.conn.SetPongHandler(func(_ string) error {
		m.conn.SetReadDeadline(time.Now().Add(ws.ResponseWait))
		return nil
	})

	for {
		msg := new(ws.Message)
		if err := m.conn.ReadJSON(msg); err != nil {
			logger.Log.Debug("Websocket disconnected.", "err", err)
			return
		}

		m.recv <- *msg
	}
}

// decode remarshals an envelope payload into a typed structure.
func decode(msg any, out any) bool {
	raw, err := json.Marshal(msg)
	if err != nil {
		return false
	}

	return json.Unmarshal(raw, out) == nil
}
