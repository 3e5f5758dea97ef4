package member

import (
	"sync"

	"github.com/trickypr/sync-party/internal/logger"
	"github.com/trickypr/sync-party/internal/playback"
)

// Reporter is the process-wide feedback slot. The newest error replaces the
// previous one; nothing here is fatal to the session.
type Reporter struct {
	mu        sync.Mutex
	lastError string
}

func (r *Reporter) Error(msg string) {
	r.mu.Lock()
	r.lastError = msg
	r.mu.Unlock()

	logger.Log.Warn(msg)
}

func (r *Reporter) Action(username string, kind playback.OrderKind) {
	logger.Log.Info("Party action.", "member", username, "action", kind.String())
}

func (r *Reporter) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lastError
}
