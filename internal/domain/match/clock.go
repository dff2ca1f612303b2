package match

import (
	"sync"
	"time"
)

// Clock is the match clock collaborator. The engine only starts, pauses and
// resets it in response to transition effects.
type Clock interface {
	Start()
	Pause()
	Reset()
	Elapsed() time.Duration
}

// Stopwatch is an in-memory Clock.
type Stopwatch struct {
	mu      sync.Mutex
	now     func() time.Time
	offset  time.Duration
	started time.Time
	running bool
}

// NewStopwatch returns a stopped stopwatch that already shows offset.
func NewStopwatch(now func() time.Time, offset time.Duration) *Stopwatch {
	if now == nil {
		now = time.Now
	}
	return &Stopwatch{now: now, offset: offset}
}

// Start resumes counting; a running stopwatch is left alone.
func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.started = s.now()
	s.running = true
}

// Pause stops counting and keeps the elapsed time.
func (s *Stopwatch) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.offset += s.now().Sub(s.started)
	s.running = false
}

// Reset stops the stopwatch and clears it.
func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offset = 0
	s.running = false
}

// Elapsed returns the accumulated running time.
func (s *Stopwatch) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return s.offset + s.now().Sub(s.started)
	}
	return s.offset
}

// Running reports whether the stopwatch is counting.
func (s *Stopwatch) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
