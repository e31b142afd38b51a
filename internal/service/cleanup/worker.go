package cleanup

import (
	"context"
	"log"
	"time"

	"github.com/iamasit07/connect4-cpu/internal/service/game"
)

type Worker struct {
	SessionManager *game.SessionManager
	SessionTTL     time.Duration
	Interval       time.Duration
}

func NewWorker(sm *game.SessionManager, ttl time.Duration) *Worker {
	interval := ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	return &Worker{SessionManager: sm, SessionTTL: ttl, Interval: interval}
}

// Start runs the cleanup once, then on every tick until ctx is done
func (w *Worker) Start(ctx context.Context) {
	log.Println("[CLEANUP] Background worker started")
	w.runCleanup()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("[CLEANUP] Background worker stopped")
			return
		case <-ticker.C:
			w.runCleanup()
		}
	}
}

// runCleanup executes the actual cleanup logic
func (w *Worker) runCleanup() int {
	removed := w.SessionManager.CleanupOldSessions(w.SessionTTL)
	if removed > 0 {
		log.Printf("[CLEANUP] Removed %d idle games, %d still active", removed, w.SessionManager.Count())
	}
	return removed
}
