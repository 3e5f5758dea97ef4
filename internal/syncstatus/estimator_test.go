package syncstatus

import (
	"math"
	"testing"

	"github.com/trickypr/sync-party/internal/party"
)

const testNow = int64(1_700_000_000_000)

var testMembers = []party.ClientPartyMember{
	{ID: "alice", Username: "Alice"},
	{ID: "bob", Username: "Bob"},
}

func newEstimator() *Estimator {
	return New("p1", "alice", 1500, func() int64 { return testNow })
}

func TestOutgoingCarriesSnapshot(t *testing.T) {
	e := newEstimator()

	out := e.Outgoing(0.42, true)

	if out.PartyID != "p1" || out.UserID != "alice" {
		t.Fatalf("unexpected identity: %+v", out)
	}
	if out.Timestamp != testNow || out.Position != 0.42 || !out.IsPlaying {
		t.Fatalf("unexpected snapshot: %+v", out)
	}
}

func TestEvaluateSkipsCycleWithoutOwnSample(t *testing.T) {
	e := newEstimator()

	in := party.SyncStatusIncoming{
		"bob": {Timestamp: testNow, Position: 0.5, IsPlaying: true},
	}

	status, peers := e.Evaluate(in, testMembers, 100)
	if status != nil || peers != nil {
		t.Fatalf("cycle not skipped: %v / %v", status, peers)
	}
}

func TestOnlineWindowIsStrict(t *testing.T) {
	cases := []struct {
		name   string
		age    int64
		online bool
	}{
		{"just inside", 1499, true},
		{"on the boundary", 1500, false},
		{"just outside", 1501, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEstimator()

			in := party.SyncStatusIncoming{
				"alice": {Timestamp: testNow, Position: 0.5, IsPlaying: true},
				"bob":   {Timestamp: testNow - tc.age, Position: 0.5, IsPlaying: true},
			}

			status, _ := e.Evaluate(in, testMembers, 100)
			if status["bob"].Online != tc.online {
				t.Fatalf("online = %v, want %v", status["bob"].Online, tc.online)
			}
		})
	}
}

func TestOnlineUsesBrokerMeasuredOffsets(t *testing.T) {
	e := newEstimator()

	// Bob's clock runs 2s behind the server. His raw timestamp looks
	// ancient, but projected into the server frame it is fresh.
	in := party.SyncStatusIncoming{
		"alice": {Timestamp: testNow, Position: 0.5},
		"bob":   {Timestamp: testNow - 2000, ServerTimeOffset: 2000, Position: 0.5},
	}

	status, _ := e.Evaluate(in, testMembers, 100)
	if !status["bob"].Online {
		t.Fatalf("offset-corrected sample judged offline")
	}
	if status["bob"].ServerTimeOffset != 2000 {
		t.Fatalf("offset not carried through: %+v", status["bob"])
	}
}

func TestDeltaProjectsPlayingPeers(t *testing.T) {
	e := newEstimator()

	// Bob reported the same position 2s ago while playing, so by now he
	// should be 2s ahead of us.
	in := party.SyncStatusIncoming{
		"alice": {Timestamp: testNow, Position: 0.5, IsPlaying: true},
		"bob":   {Timestamp: testNow - 2000, Position: 0.5, IsPlaying: true},
	}

	_, peers := e.Evaluate(in, testMembers, 100)
	if len(peers) != 1 {
		t.Fatalf("expected one peer, got %d", len(peers))
	}
	if math.Abs(peers[0].Delta-2.0) > 1e-9 {
		t.Fatalf("delta = %v, want 2.0", peers[0].Delta)
	}
}

func TestDeltaDoesNotAdvancePausedSamples(t *testing.T) {
	e := newEstimator()

	in := party.SyncStatusIncoming{
		"alice": {Timestamp: testNow, Position: 0.5, IsPlaying: true},
		"bob":   {Timestamp: testNow - 2000, Position: 0.6, IsPlaying: false},
	}

	_, peers := e.Evaluate(in, testMembers, 100)
	if math.Abs(peers[0].Delta-10.0) > 1e-9 {
		t.Fatalf("delta = %v, want 10.0", peers[0].Delta)
	}
}

func TestUnknownPeersGetStatusButNoDriftEntry(t *testing.T) {
	e := newEstimator()

	in := party.SyncStatusIncoming{
		"alice":   {Timestamp: testNow, Position: 0.5, IsPlaying: true},
		"stale-x": {Timestamp: testNow, Position: 0.5, IsPlaying: true},
	}

	status, peers := e.Evaluate(in, testMembers, 100)
	if _, ok := status["stale-x"]; !ok {
		t.Fatalf("unknown member missing from status map")
	}
	if len(peers) != 0 {
		t.Fatalf("unknown member produced a drift entry: %+v", peers)
	}
}
