// Package connectivity tracks whether the sync server is reachable. The
// rest of the app never probes the network itself; it reads the watcher's
// last known state.
package connectivity

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/classnote/internal/logging"
)

const pingTimeout = 3 * time.Second

// Pinger is the probe the watcher drives once per interval. api.Client
// satisfies it.
type Pinger interface {
	Ping(ctx context.Context, baseURL string) error
}

// Watcher polls the server health endpoint and flips an in-memory online
// flag. Transitions invoke onChange, which is how the queue learns it can
// drain again after an outage.
type Watcher struct {
	pinger   Pinger
	baseURL  string
	interval time.Duration
	onChange func(online bool)
	logger   logging.Logger

	online atomic.Bool
}

func NewWatcher(pinger Pinger, baseURL string, interval time.Duration, onChange func(online bool), logger logging.Logger) *Watcher {
	return &Watcher{
		pinger:   pinger,
		baseURL:  baseURL,
		interval: interval,
		onChange: onChange,
		logger:   logger,
	}
}

// Online reports the state recorded by the most recent probe. The watcher
// starts offline until the first Check.
func (w *Watcher) Online() bool {
	return w.online.Load()
}

// Check probes the server once and records the outcome. It returns the new
// state so callers can probe synchronously at startup.
func (w *Watcher) Check(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := w.pinger.Ping(pingCtx, w.baseURL)
	cancel()

	online := err == nil
	if w.online.Swap(online) != online {
		if online {
			w.logger.Info(ctx, "server reachable, switching to online mode")
		} else {
			w.logger.Info(ctx, "server unreachable, switching to offline mode", "error", err)
		}
		if w.onChange != nil {
			w.onChange(online)
		}
	}
	return online
}

// Run probes on every tick until ctx is cancelled. It blocks; run it in a
// goroutine.
func (w *Watcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}
