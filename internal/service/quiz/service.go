package quiz

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrQuizNotFound is returned for unknown quiz ids.
var ErrQuizNotFound = errors.New("quiz not found")

// Service keeps quiz engines in memory.
type Service struct {
	source QuestionSource
	opts   []Option
	log    *zap.Logger

	mu      sync.RWMutex
	engines map[string]*Engine
}

// NewService creates a registry whose engines draw from source.
func NewService(source QuestionSource, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("quiz")
	return &Service{
		source:  source,
		opts:    append([]Option{WithLogger(log)}, opts...),
		log:     log,
		engines: make(map[string]*Engine),
	}
}

// Create registers a new engine and runs its first fetch. A failed fetch
// still yields a registered engine in the finished state so the caller can
// offer a retry.
func (s *Service) Create(ctx context.Context) *Engine {
	engine := NewEngine(uuid.NewString(), s.source, s.opts...)

	s.mu.Lock()
	s.engines[engine.ID()] = engine
	s.mu.Unlock()

	if err := engine.Fetch(ctx); err != nil {
		s.log.Debug("initial quiz fetch failed", zap.String("quiz", engine.ID()), zap.Error(err))
	}
	return engine
}

// Get retrieves an engine by identifier.
func (s *Service) Get(id string) (*Engine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	engine, ok := s.engines[id]
	if !ok {
		return nil, ErrQuizNotFound
	}
	return engine, nil
}

// Delete drops an engine.
func (s *Service) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.engines[id]; !ok {
		return ErrQuizNotFound
	}
	delete(s.engines, id)
	return nil
}
