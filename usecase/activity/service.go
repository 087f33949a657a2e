package activity

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vitaboard/backend/domain"
	"github.com/vitaboard/backend/repository"
)

// Service hands out one Engine per owner, so concurrent requests for the same
// owner share a single serialized mutate-then-reload pipeline.
type Service struct {
	repo   repository.ActivityRepository
	logger *zap.Logger
	clock  func() time.Time

	mu      sync.Mutex
	engines map[string]*Engine
}

// NewService builds the engine registry.
func NewService(repo repository.ActivityRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		logger:  logger,
		clock:   time.Now,
		engines: make(map[string]*Engine),
	}
}

// ForOwner returns the owner's engine with a loaded snapshot.
func (s *Service) ForOwner(ctx context.Context, ownerID string) (*Engine, error) {
	if ownerID == "" {
		return nil, domain.ErrUnauthorized
	}

	s.mu.Lock()
	engine, ok := s.engines[ownerID]
	if !ok {
		engine = NewEngine(s.repo, ownerID, s.logger, WithClock(s.clock))
		s.engines[ownerID] = engine
	}
	s.mu.Unlock()

	if err := engine.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return engine, nil
}

// InvalidateAll marks every cached engine snapshot stale.
func (s *Service) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, engine := range s.engines {
		engine.Invalidate()
	}
}
