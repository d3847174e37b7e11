package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/connectsphere/connectsphere-api/internal/model"
	"github.com/connectsphere/connectsphere-api/internal/service"
)

// Store and gateway contracts consumed by handlers. The pgx repositories
// and the HTTP clients in internal/service satisfy these; tests swap in
// in-memory fakes.

type UserStore interface {
	Create(ctx context.Context, fullName, email, passwordHash string, role model.Role) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type ProfileStore interface {
	Create(ctx context.Context, p *model.Profile) (*model.Profile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Profile, error)
	UpdateSummary(ctx context.Context, userID uuid.UUID, summary string) error
	ListSummaries(ctx context.Context) ([]model.ProfileSummary, error)
}

type OpportunityStore interface {
	Create(ctx context.Context, userID uuid.UUID, title, description, company string) (*model.Opportunity, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]model.Opportunity, error)
}

type AnalyticsStore interface {
	Insert(ctx context.Context, userID uuid.UUID, action string, details map[string]any) error
}

// ModelGateway is the external completion API, treated as opaque
// text-in/text-out with untrusted output.
type ModelGateway interface {
	SummarizeProfile(ctx context.Context, p *model.Profile) (string, error)
	RecommendMatches(ctx context.Context, p *model.Profile) (*service.MatchResult, error)
	RecommendStudents(ctx context.Context, profiles []model.ProfileSummary) ([]service.StudentRecommendation, error)
	Answer(ctx context.Context, query string) (string, error)
	DraftOutreachEmail(ctx context.Context, message, recipientName string) (string, error)
}

type EmailSender interface {
	Send(ctx context.Context, to, subject, text string) error
}

// recordEvent appends an analytics event best-effort: failures are
// logged and swallowed, never surfaced to the caller.
func recordEvent(ctx context.Context, store AnalyticsStore, userID uuid.UUID, action string, details map[string]any) {
	if store == nil {
		return
	}
	if err := store.Insert(ctx, userID, action, details); err != nil {
		log.Error().Err(err).Str("action", action).Msg("Analytics error")
	}
}
