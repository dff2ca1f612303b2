package service

import (
	"github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/match"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/sport"
	"github.com/okian/courtside/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the snapshot store. Defaults to an in-memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithPublisher sets the sink that receives every changed view.
func WithPublisher(p Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithRegistry sets the sport registry shared by every engine.
func WithRegistry(reg *sport.Registry) Option {
	return func(s *Service) {
		if reg != nil {
			s.registry = reg
		}
	}
}

// WithQueueSize sets the capacity of the save queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithSaveDebounce sets how long a match may stay unsaved after a change.
func WithSaveDebounce(ms int) Option {
	return func(s *Service) {
		if ms >= 0 {
			s.saveDebounceMS = ms
		}
	}
}

// WithDedupeSize sets the number of remembered command ids.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMatchDefaults sets the configuration used for omitted create fields.
func WithMatchDefaults(cfg model.MatchConfig) Option {
	return func(s *Service) {
		s.defaults = cfg
	}
}

// WithEngineOptions passes options to every engine the service creates.
func WithEngineOptions(opts ...match.Option) Option {
	return func(s *Service) {
		s.engineOpts = append(s.engineOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
