package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/connectsphere/connectsphere-api/internal/model"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

// Create inserts a student's onboarding profile. ai_summary starts null
// and is backfilled by UpdateSummary after the model call.
func (r *ProfileRepo) Create(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	var created model.Profile
	err := r.pool.QueryRow(ctx, `
		INSERT INTO profiles (user_id, resume_text, activities, hobbies, projects,
		                      social_links, career_goals, industries)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, user_id, resume_text, activities, hobbies, projects,
		          social_links, career_goals, industries, ai_summary, created_at
	`, p.UserID, p.ResumeText, p.Activities, p.Hobbies, p.Projects,
		p.SocialLinks, p.CareerGoals, p.Industries,
	).Scan(
		&created.ID, &created.UserID, &created.ResumeText, &created.Activities,
		&created.Hobbies, &created.Projects, &created.SocialLinks,
		&created.CareerGoals, &created.Industries, &created.AISummary,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return &created, nil
}

// FindByUserID returns a student's profile, or nil, nil when absent.
func (r *ProfileRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT id, user_id, resume_text, activities, hobbies, projects,
		       social_links, career_goals, industries, ai_summary, created_at
		FROM profiles
		WHERE user_id = $1
	`, userID).Scan(
		&p.ID, &p.UserID, &p.ResumeText, &p.Activities, &p.Hobbies,
		&p.Projects, &p.SocialLinks, &p.CareerGoals, &p.Industries,
		&p.AISummary, &p.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding profile by user id: %w", err)
	}
	return &p, nil
}

// UpdateSummary backfills the AI-generated summary
func (r *ProfileRepo) UpdateSummary(ctx context.Context, userID uuid.UUID, summary string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE profiles SET ai_summary = $2 WHERE user_id = $1
	`, userID, summary)
	if err != nil {
		return fmt.Errorf("updating profile summary: %w", err)
	}
	return nil
}

// ListSummaries returns the {user_id, ai_summary} projection of every
// profile. No filtering, no pagination: the recommendation prompt takes
// the whole student body.
func (r *ProfileRepo) ListSummaries(ctx context.Context) ([]model.ProfileSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, ai_summary FROM profiles
	`)
	if err != nil {
		return nil, fmt.Errorf("listing profile summaries: %w", err)
	}
	defer rows.Close()

	var summaries []model.ProfileSummary
	for rows.Next() {
		var s model.ProfileSummary
		if err := rows.Scan(&s.UserID, &s.AISummary); err != nil {
			return nil, fmt.Errorf("scanning profile summary row: %w", err)
		}
		summaries = append(summaries, s)
	}

	return summaries, nil
}
