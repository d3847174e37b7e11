package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

func NewAnalyticsRepo(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// Insert appends an analytics event. Callers treat failures as
// best-effort: log and move on, never fail the request.
func (r *AnalyticsRepo) Insert(ctx context.Context, userID uuid.UUID, action string, details map[string]any) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO analytics (user_id, action, details)
		VALUES ($1, $2, $3)
	`, userID, action, details)
	if err != nil {
		return fmt.Errorf("inserting analytics event: %w", err)
	}
	return nil
}
