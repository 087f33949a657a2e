package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitaboard/backend/domain"
	"github.com/vitaboard/backend/repository"
)

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation of ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

const activityColumns = `id, owner_id, title, description, date, time_of_day, type, status, priority,
	category, frequency, end_date, week_days, is_routine, routine_id, ord,
	estimated_duration, actual_duration, completed_at, created_at`

func (r *activityRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Activity, error) {
	query := fmt.Sprintf(`
	SELECT %s
	FROM activities
	WHERE owner_id = $1
	ORDER BY created_at, id
	`, activityColumns)

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *activity)
	}
	return activities, rows.Err()
}

func (r *activityRepository) CreateBatch(ctx context.Context, activities []domain.Activity) ([]domain.Activity, error) {
	if len(activities) == 0 {
		return nil, nil
	}

	const query = `
	INSERT INTO activities (
		id, owner_id, title, description, date, time_of_day, type, status, priority,
		category, frequency, end_date, week_days, is_routine, routine_id, ord,
		estimated_duration, actual_duration, completed_at, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`

	batch := &pgx.Batch{}
	now := time.Now()
	for i := range activities {
		a := &activities[i]
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		batch.Queue(query,
			a.ID,
			a.OwnerID,
			a.Title,
			a.Description,
			a.Date,
			a.Time,
			a.Type,
			a.Status,
			a.Priority,
			a.Category,
			a.Frequency,
			nullString(a.EndDate),
			marshalStrings(a.WeekDays),
			a.IsRoutine,
			nullString(a.RoutineID),
			a.Order,
			a.EstimatedDuration,
			a.ActualDuration,
			a.CompletedAt,
			a.CreatedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range activities {
		if _, err := results.Exec(); err != nil {
			return nil, err
		}
	}
	return activities, nil
}

func (r *activityRepository) Update(ctx context.Context, ownerID, id string, patch domain.ActivityPatch) error {
	set, args := buildActivityPatch(patch)
	if len(set) == 0 {
		return nil
	}

	args = append(args, id, ownerID)
	query := fmt.Sprintf(
		"UPDATE activities SET %s WHERE id = $%d AND owner_id = $%d",
		strings.Join(set, ", "), len(args)-1, len(args),
	)

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *activityRepository) Delete(ctx context.Context, ownerID, id string) error {
	const query = `DELETE FROM activities WHERE id = $1 AND owner_id = $2`
	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *activityRepository) DeleteByRoutine(ctx context.Context, ownerID, routineID string) (int64, error) {
	const query = `DELETE FROM activities WHERE routine_id = $1 AND owner_id = $2`
	tag, err := r.pool.Exec(ctx, query, routineID, ownerID)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, domain.ErrRoutineNotFound
	}
	return tag.RowsAffected(), nil
}

func (r *activityRepository) DeleteByOwner(ctx context.Context, ownerID string) error {
	const query = `DELETE FROM activities WHERE owner_id = $1`
	_, err := r.pool.Exec(ctx, query, ownerID)
	return err
}

func (r *activityRepository) MarkOverdue(ctx context.Context, before string) (int64, error) {
	const query = `UPDATE activities SET status = $1 WHERE status = $2 AND date < $3`
	tag, err := r.pool.Exec(ctx, query, domain.StatusLate, domain.StatusPending, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func buildActivityPatch(patch domain.ActivityPatch) ([]string, []interface{}) {
	var (
		set  []string
		args []interface{}
	)
	add := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Date != nil {
		add("date", *patch.Date)
	}
	if patch.Time != nil {
		add("time_of_day", *patch.Time)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.Priority != nil {
		add("priority", *patch.Priority)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Order != nil {
		add("ord", *patch.Order)
	}
	if patch.EstimatedDuration != nil {
		add("estimated_duration", *patch.EstimatedDuration)
	}
	if patch.ActualDuration != nil {
		add("actual_duration", *patch.ActualDuration)
	}
	if patch.CompletedAt != nil {
		add("completed_at", *patch.CompletedAt)
	} else if patch.ClearCompletedAt {
		add("completed_at", nil)
	}
	return set, args
}

func scanActivity(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Activity, error) {
	var (
		a         domain.Activity
		endDate   *string
		weekDays  []byte
		routineID *string
		completed *time.Time
	)

	if err := row.Scan(
		&a.ID,
		&a.OwnerID,
		&a.Title,
		&a.Description,
		&a.Date,
		&a.Time,
		&a.Type,
		&a.Status,
		&a.Priority,
		&a.Category,
		&a.Frequency,
		&endDate,
		&weekDays,
		&a.IsRoutine,
		&routineID,
		&a.Order,
		&a.EstimatedDuration,
		&a.ActualDuration,
		&completed,
		&a.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}

	if endDate != nil {
		a.EndDate = *endDate
	}
	if routineID != nil {
		a.RoutineID = *routineID
	}
	a.CompletedAt = completed
	if len(weekDays) > 0 {
		_ = json.Unmarshal(weekDays, &a.WeekDays)
	}

	return &a, nil
}
