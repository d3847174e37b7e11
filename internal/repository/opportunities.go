package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/connectsphere/connectsphere-api/internal/model"
)

type OpportunityRepo struct {
	pool *pgxpool.Pool
}

func NewOpportunityRepo(pool *pgxpool.Pool) *OpportunityRepo {
	return &OpportunityRepo{pool: pool}
}

// Create inserts an opportunity owned by the posting professional
func (r *OpportunityRepo) Create(ctx context.Context, userID uuid.UUID, title, description, company string) (*model.Opportunity, error) {
	var o model.Opportunity
	err := r.pool.QueryRow(ctx, `
		INSERT INTO opportunities (user_id, title, description, company)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, title, description, company, created_at
	`, userID, title, description, company).Scan(
		&o.ID, &o.UserID, &o.Title, &o.Description, &o.Company, &o.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating opportunity: %w", err)
	}
	return &o, nil
}

// ListByOwner returns every opportunity posted by the given professional
func (r *OpportunityRepo) ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Opportunity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, title, description, company, created_at
		FROM opportunities
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing opportunities: %w", err)
	}
	defer rows.Close()

	var opps []model.Opportunity
	for rows.Next() {
		var o model.Opportunity
		if err := rows.Scan(&o.ID, &o.UserID, &o.Title, &o.Description, &o.Company, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning opportunity row: %w", err)
		}
		opps = append(opps, o)
	}

	return opps, nil
}
