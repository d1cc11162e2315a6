// Package progress reports long-running pre-compute progress to the log.
// The optical engine's daylight-coefficient ray trace is the primary user:
// it can run for minutes on a large model and has no other feedback loop.
package progress

import (
	"sync"
	"time"

	"github.com/germolinal/simple-sub002/internal/common/logger"
)

// Tracker tracks the progress of a long-running operation across goroutines.
type Tracker struct {
	total   int
	current int
	label   string
	started time.Time
	mu      sync.Mutex
	silent  bool
}

// New creates a new progress tracker that logs at INFO as it advances.
func New(total int, label string) *Tracker {
	return &Tracker{total: total, label: label, started: time.Now()}
}

// NewSilent creates a tracker that records progress without logging, for tests.
func NewSilent(total int, label string) *Tracker {
	return &Tracker{total: total, label: label, started: time.Now(), silent: true}
}

// Add advances the counter by n steps. Safe to call from multiple goroutines.
func (p *Tracker) Add(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current += n
	if !p.silent && p.total > 0 {
		pct := float64(p.current) / float64(p.total) * 100
		logger.Debug("%s: %d/%d (%.1f%%)", p.label, p.current, p.total, pct)
	}
}

// Finish marks the progress as complete and logs the elapsed time.
func (p *Tracker) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current < p.total {
		p.current = p.total
	}
	if !p.silent {
		logger.Info("%s completed in %v", p.label, time.Since(p.started).Truncate(time.Millisecond))
	}
}
