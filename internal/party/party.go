package party

import (
	"sync"

	"github.com/trickypr/sync-party/internal/logger"
)

// commandBuffer bounds every per-party channel. Sends block once it is full,
// which keeps wish application in strict receipt order under backpressure.
const commandBuffer = 64

// Conn is the transport side of a connected member. The websocket client
// satisfies it.
type Conn interface {
	Emit(event string, data any)
}

type member struct {
	id       string
	username string
	conn     Conn

	// Measured serverTime - memberTime, taken once from the join message.
	offset int64
}

type joinRequest struct {
	id        string
	username  string
	timestamp int64
	conn      Conn
}

type Party struct {
	id       string
	registry *Registry

	members map[string]*member
	samples map[string]SyncStatusSample

	// The single-writer register. Replaced wholesale, never merged.
	order *PlayOrder

	join   chan joinRequest
	leave  chan string
	wishes chan PlayWish
	status chan SyncStatusOutgoing
	update chan PartyUpdate

	stopped bool
}

type Registry struct {
	mu      sync.Mutex
	parties map[string]*Party

	now func() int64
}

func NewRegistry(now func() int64) *Registry {
	return &Registry{
		parties: make(map[string]*Party),
		now:     now,
	}
}

// Join registers presence for a member, creating the party if needed. It
// never emits a PlayOrder itself; the run loop replays the current order
// snapshot to the joiner if one exists.
func (r *Registry) Join(join JoinParty, conn Conn) *Party {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.parties[join.PartyID]
	if !exists || p.stopped {
		p = &Party{
			id:       join.PartyID,
			registry: r,

			members: make(map[string]*member),
			samples: make(map[string]SyncStatusSample),

			join:   make(chan joinRequest, commandBuffer),
			leave:  make(chan string, commandBuffer),
			wishes: make(chan PlayWish, commandBuffer),
			status: make(chan SyncStatusOutgoing, commandBuffer),
			update: make(chan PartyUpdate, commandBuffer),
		}
		go p.run()
		r.parties[join.PartyID] = p
	}

	p.join <- joinRequest{
		id:        join.UserID,
		username:  join.Username,
		timestamp: join.Timestamp,
		conn:      conn,
	}

	return p
}

// detach removes the party unless a join raced in; the run loop only exits
// when this returns true.
func (r *Registry) detach(p *Party) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(p.join) > 0 {
		return false
	}

	p.stopped = true
	delete(r.parties, p.id)
	return true
}

func (p *Party) run() {
	for {
		select {
		case req := <-p.join:
			p.members[req.id] = &member{
				id:       req.id,
				username: req.username,
				conn:     req.conn,
				offset:   p.registry.now() - req.timestamp,
			}
			logger.Log.Debug("Member joined party.", "party", p.id, "member", req.id)

			if p.order != nil {
				req.conn.Emit("playOrder", *p.order)
			}

			p.emitMembers()
		case id := <-p.leave:
			if _, ok := p.members[id]; !ok {
				continue
			}

			delete(p.members, id)
			delete(p.samples, id)
			logger.Log.Debug("Member left party.", "party", p.id, "member", id)

			if len(p.members) == 0 {
				if p.registry.detach(p) {
					return
				}
				continue
			}

			p.emitMembers()
		case wish := <-p.wishes:
			p.promote(wish)
		case s := <-p.status:
			p.recordStatus(s)
		case u := <-p.update:
			p.emit("partyUpdate", u)
		}
	}
}

func (p *Party) ID() string {
	return p.id
}

func (p *Party) Leave(memberID string) {
	p.leave <- memberID
}

func (p *Party) SubmitWish(wish PlayWish) {
	p.wishes <- wish
}

func (p *Party) SubmitStatus(status SyncStatusOutgoing) {
	p.status <- status
}

// NotifyUpdate relays an out-of-band metadata change to every member; the
// clients refetch party state on receipt.
func (p *Party) NotifyUpdate(update PartyUpdate) {
	p.update <- update
}

func (p *Party) emit(event string, data any) {
	for _, m := range p.members {
		m.conn.Emit(event, data)
	}
}

func (p *Party) emitMembers() {
	list := make([]ClientPartyMember, 0, len(p.members))
	for _, m := range p.members {
		list = append(list, ClientPartyMember{ID: m.id, Username: m.username})
	}

	p.emit("partyMembers", list)
}
