package clock

import "testing"

func TestEstablishFirstCallWins(t *testing.T) {
	var tracker OffsetTracker

	tracker.Establish(1_000_500, 1_000_000)
	tracker.Establish(2_000_000, 1_000_000)

	if got := tracker.Offset(); got != 500 {
		t.Fatalf("Offset() = %d, want 500", got)
	}
}

func TestOffsetZeroBeforeEstablish(t *testing.T) {
	var tracker OffsetTracker

	if got := tracker.Offset(); got != 0 {
		t.Fatalf("Offset() = %d, want 0", got)
	}
}

func TestToServerFrame(t *testing.T) {
	var tracker OffsetTracker
	tracker.Establish(10_250, 10_000)

	if got := tracker.ToServerFrame(11_000); got != 11_250 {
		t.Fatalf("ToServerFrame() = %d, want 11250", got)
	}
}
