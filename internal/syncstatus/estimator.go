package syncstatus

import (
	"github.com/trickypr/sync-party/internal/clock"
	"github.com/trickypr/sync-party/internal/party"
)

// Estimator builds the periodic sync-status heartbeat and derives peer
// online state and drift from the broker's fanned-out samples. It is
// advisory telemetry only; it never corrects playback itself.
type Estimator struct {
	partyID string
	selfID  string

	// Staleness window for the online determination, milliseconds.
	tolerance int64

	now func() int64
}

// New builds an estimator. Clock offsets are not taken from the local
// tracker: every sample carries the offset the broker measured for its
// member, our own included, so all projection happens with broker-measured
// offsets on both sides.
func New(partyID, selfID string, toleranceMillis int64, now func() int64) *Estimator {
	if now == nil {
		now = clock.Now
	}

	return &Estimator{
		partyID:   partyID,
		selfID:    selfID,
		tolerance: toleranceMillis,
		now:       now,
	}
}

// Outgoing builds one heartbeat from the current playback snapshot.
func (e *Estimator) Outgoing(position float64, isPlaying bool) party.SyncStatusOutgoing {
	return party.SyncStatusOutgoing{
		PartyID:   e.partyID,
		UserID:    e.selfID,
		Timestamp: e.now(),
		Position:  position,
		IsPlaying: isPlaying,
	}
}

// Evaluate derives member online state and per-peer drift from an incoming
// sample map. durationSeconds is the local player-reported duration used to
// turn fractional positions into seconds. Without our own sample in the map
// nothing can be projected into a common frame, so the whole cycle is
// skipped rather than guessed.
func (e *Estimator) Evaluate(in party.SyncStatusIncoming, members []party.ClientPartyMember, durationSeconds float64) (party.MemberStatus, []party.SyncStatusReceiveMember) {
	own, ok := in[e.selfID]
	if !ok {
		return nil, nil
	}

	nowSelf := e.now() + own.ServerTimeOffset

	status := make(party.MemberStatus, len(in))
	peers := make([]party.SyncStatusReceiveMember, 0, len(in))

	for id, sample := range in {
		state := party.MemberState{ServerTimeOffset: sample.ServerTimeOffset}

		// A member is online iff its last sample, projected into the
		// server frame, is no staler than the tolerance window.
		if sample.Timestamp+sample.ServerTimeOffset > nowSelf-e.tolerance {
			state.Online = true
		}

		status[id] = state

		if id == e.selfID {
			continue
		}

		username, found := memberName(members, id)
		if !found {
			continue
		}

		peers = append(peers, party.SyncStatusReceiveMember{
			ID:       id,
			Username: username,
			Delta:    delta(own, sample, durationSeconds, nowSelf),
		})
	}

	return status, peers
}

// delta is the estimated position gap in seconds between a peer and self,
// positive when the peer is ahead. Both reported positions are projected
// forward to the same server-frame instant; a paused player does not move.
func delta(own, peer party.SyncStatusSample, durationSeconds float64, nowServer int64) float64 {
	return project(peer, durationSeconds, nowServer) - project(own, durationSeconds, nowServer)
}

func project(s party.SyncStatusSample, durationSeconds float64, nowServer int64) float64 {
	pos := s.Position * durationSeconds
	if s.IsPlaying {
		pos += float64(nowServer-(s.Timestamp+s.ServerTimeOffset)) / 1000
	}
	return pos
}

func memberName(members []party.ClientPartyMember, id string) (string, bool) {
	for _, m := range members {
		if m.ID == id {
			return m.Username, true
		}
	}
	return "", false
}
