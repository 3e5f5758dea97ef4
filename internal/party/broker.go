package party

// promote turns an accepted wish into the party's authoritative order and
// rebroadcasts it to every member, including the issuer. The issuer must not
// apply its own wish speculatively; everyone observes the same order.
//
// The base policy accepts unconditionally: last write wins in receipt order.
// Receipt order is the wish channel order, consumed by the single run loop
// goroutine, so two wishes can never interleave into one order.
func (p *Party) promote(wish PlayWish) {
	wish.Position = clampPosition(wish.Position)

	order := PlayOrder(wish)
	p.order = &order

	p.emit("playOrder", order)
}

// recordStatus replaces the member's previous heartbeat sample and fans the
// full party map out to everyone. Samples carry the clock offset measured for
// their member at join time; no history is kept.
func (p *Party) recordStatus(s SyncStatusOutgoing) {
	m, ok := p.members[s.UserID]
	if !ok {
		return
	}

	p.samples[s.UserID] = SyncStatusSample{
		Timestamp:        s.Timestamp,
		Position:         clampPosition(s.Position),
		IsPlaying:        s.IsPlaying,
		ServerTimeOffset: m.offset,
	}

	incoming := make(SyncStatusIncoming, len(p.samples))
	for id, sample := range p.samples {
		incoming[id] = sample
	}

	p.emit("syncStatus", incoming)
}

// Position is fractional, clients are not trusted to keep it in range.
func clampPosition(pos float64) float64 {
	if pos < 0 {
		return 0
	}
	if pos > 1 {
		return 1
	}
	return pos
}
