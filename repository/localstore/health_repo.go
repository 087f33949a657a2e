package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vitaboard/backend/domain"
	"github.com/vitaboard/backend/internal/infrastructure/localstore"
	"github.com/vitaboard/backend/repository"
)

const (
	profileKeyPrefix = "health:profile:"
	metricsKeyPrefix = "health:metrics:"
)

type healthStateRepository struct {
	store *localstore.Store
}

// NewHealthStateRepository persists health state as JSON blobs in the local
// key-value store, one profile key and one metrics key per owner.
func NewHealthStateRepository(store *localstore.Store) repository.HealthStateRepository {
	return &healthStateRepository{store: store}
}

func (r *healthStateRepository) LoadProfile(ctx context.Context, ownerID string) (*domain.HealthProfile, error) {
	raw, err := r.store.Get(profileKey(ownerID))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var profile domain.HealthProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *healthStateRepository) SaveProfile(ctx context.Context, ownerID string, profile *domain.HealthProfile) error {
	if profile == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return r.store.Put(profileKey(ownerID), payload)
}

func (r *healthStateRepository) LoadMetrics(ctx context.Context, ownerID string) ([]domain.Metric, error) {
	raw, err := r.store.Get(metricsKey(ownerID))
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return domain.DefaultMetrics(), nil
	}
	var metrics []domain.Metric
	if err := json.Unmarshal(raw, &metrics); err != nil {
		return nil, err
	}
	if len(metrics) == 0 {
		return domain.DefaultMetrics(), nil
	}
	return metrics, nil
}

func (r *healthStateRepository) SaveMetrics(ctx context.Context, ownerID string, metrics []domain.Metric) error {
	payload, err := json.Marshal(metrics)
	if err != nil {
		return err
	}
	return r.store.Put(metricsKey(ownerID), payload)
}

func profileKey(ownerID string) string {
	return fmt.Sprintf("%s%s", profileKeyPrefix, ownerID)
}

func metricsKey(ownerID string) string {
	return fmt.Sprintf("%s%s", metricsKeyPrefix, ownerID)
}
