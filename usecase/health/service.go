package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vitaboard/backend/domain"
	"github.com/vitaboard/backend/repository"
)

// Service hands out one health Engine per owner.
type Service struct {
	repo   repository.HealthStateRepository
	logger *zap.Logger
	clock  func() time.Time

	mu      sync.Mutex
	engines map[string]*Engine
}

// NewService builds the engine registry.
func NewService(repo repository.HealthStateRepository, logger *zap.Logger) *Service {
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

// ForOwner returns the owner's engine with loaded state.
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
