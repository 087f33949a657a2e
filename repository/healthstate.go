package repository

import (
	"context"

	"github.com/vitaboard/backend/domain"
)

// HealthStateRepository persists the Health Engine's profile and metric set
// under fixed per-owner keys in the local key-value store. Absent data yields
// a nil profile and the built-in default metrics.
type HealthStateRepository interface {
	LoadProfile(ctx context.Context, ownerID string) (*domain.HealthProfile, error)
	SaveProfile(ctx context.Context, ownerID string, profile *domain.HealthProfile) error
	LoadMetrics(ctx context.Context, ownerID string) ([]domain.Metric, error)
	SaveMetrics(ctx context.Context, ownerID string, metrics []domain.Metric) error
}
