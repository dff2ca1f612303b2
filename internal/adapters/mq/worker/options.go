package worker

import (
	"time"

	"github.com/okian/courtside/pkg/logger"
)

// Option applies a configuration option to the Saver.
type Option func(*Saver)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *Saver) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *Saver) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDebounce sets how long a match may stay dirty before it is saved.
// Zero saves every job as soon as it arrives.
func WithDebounce(d time.Duration) Option {
	return func(w *Saver) {
		if d >= 0 {
			w.debounce = d
		}
	}
}
