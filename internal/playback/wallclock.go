package playback

import (
	"errors"
	"sync"
	"time"
)

var ErrPlayerNotReady = errors.New("player not ready")

// WallClockPlayer is a headless playback capability: while playing, the
// position advances with wall time. The member binary drives it; tests use
// it as a deterministic stand-in for a real player.
type WallClockPlayer struct {
	mu sync.Mutex

	duration   float64 // seconds
	position   float64 // fraction at lastResume
	playing    bool
	lastResume time.Time
}

func NewWallClockPlayer() *WallClockPlayer {
	return &WallClockPlayer{}
}

func (p *WallClockPlayer) SetDuration(seconds float64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.duration = seconds
}

func (p *WallClockPlayer) SetPlaying(playing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing == playing {
		return
	}

	if playing {
		p.lastResume = time.Now()
	} else {
		p.position = p.currentLocked()
	}
	p.playing = playing
}

func (p *WallClockPlayer) CurrentPosition() (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.duration <= 0 {
		return 0, ErrPlayerNotReady
	}

	return p.currentLocked(), nil
}

func (p *WallClockPlayer) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.duration
}

func (p *WallClockPlayer) SeekTo(fraction float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.duration <= 0 {
		return ErrPlayerNotReady
	}

	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	p.position = fraction
	p.lastResume = time.Now()
	return nil
}

// Ended reports whether playback ran past the end of the item.
func (p *WallClockPlayer) Ended() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.duration > 0 && p.currentLocked() >= 1
}

func (p *WallClockPlayer) currentLocked() float64 {
	if !p.playing {
		return p.position
	}

	pos := p.position + time.Since(p.lastResume).Seconds()/p.duration
	if pos > 1 {
		pos = 1
	}
	return pos
}
