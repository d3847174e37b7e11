package handler

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/connectsphere/connectsphere-api/internal/middleware"
	"github.com/connectsphere/connectsphere-api/internal/model"
	"github.com/connectsphere/connectsphere-api/internal/repository"
	"github.com/connectsphere/connectsphere-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser injects an authenticated identity the way the auth middleware does
func asUser(userID uuid.UUID, role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextKeyUserID, userID)
		c.Set(middleware.ContextKeyRole, role)
		c.Next()
	}
}

// ── Fakes ─────────────────────────────────────────────

type fakeUserStore struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*model.User
	byEmail map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		users:   make(map[uuid.UUID]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func (s *fakeUserStore) Create(_ context.Context, fullName, email, passwordHash string, role model.Role) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[email]; exists {
		return nil, repository.ErrEmailExists
	}
	u := &model.User{
		ID:           uuid.New(),
		FullName:     fullName,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	s.users[u.ID] = u
	s.byEmail[email] = u
	return u, nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.byEmail[email], nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id], nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*model.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[uuid.UUID]*model.Profile)}
}

func (s *fakeProfileStore) Create(_ context.Context, p *model.Profile) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	created := *p
	created.ID = uuid.New()
	s.profiles[p.UserID] = &created
	return &created, nil
}

func (s *fakeProfileStore) FindByUserID(_ context.Context, userID uuid.UUID) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles[userID], nil
}

func (s *fakeProfileStore) UpdateSummary(_ context.Context, userID uuid.UUID, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.profiles[userID]; ok {
		p.AISummary = &summary
	}
	return nil
}

func (s *fakeProfileStore) ListSummaries(_ context.Context) ([]model.ProfileSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ProfileSummary
	for _, p := range s.profiles {
		out = append(out, model.ProfileSummary{UserID: p.UserID, AISummary: p.AISummary})
	}
	return out, nil
}

type fakeOpportunityStore struct {
	mu   sync.Mutex
	opps []model.Opportunity
}

func (s *fakeOpportunityStore) Create(_ context.Context, userID uuid.UUID, title, description, company string) (*model.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := model.Opportunity{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Company:     company,
	}
	s.opps = append(s.opps, o)
	return &o, nil
}

func (s *fakeOpportunityStore) ListByOwner(_ context.Context, userID uuid.UUID) ([]model.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Opportunity
	for _, o := range s.opps {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type recordedEvent struct {
	UserID  uuid.UUID
	Action  string
	Details map[string]any
}

type fakeAnalyticsStore struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (s *fakeAnalyticsStore) Insert(_ context.Context, userID uuid.UUID, action string, details map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, recordedEvent{UserID: userID, Action: action, Details: details})
	return nil
}

type fakeModelGateway struct {
	summary     string
	summaryErr  error
	matches     *service.MatchResult
	matchesErr  error
	students    []service.StudentRecommendation
	studentsErr error
	answer      string
	answerErr   error
	emailBody   string
	emailErr    error
}

func (m *fakeModelGateway) SummarizeProfile(context.Context, *model.Profile) (string, error) {
	return m.summary, m.summaryErr
}

func (m *fakeModelGateway) RecommendMatches(context.Context, *model.Profile) (*service.MatchResult, error) {
	return m.matches, m.matchesErr
}

func (m *fakeModelGateway) RecommendStudents(context.Context, []model.ProfileSummary) ([]service.StudentRecommendation, error) {
	return m.students, m.studentsErr
}

func (m *fakeModelGateway) Answer(context.Context, string) (string, error) {
	return m.answer, m.answerErr
}

func (m *fakeModelGateway) DraftOutreachEmail(context.Context, string, string) (string, error) {
	return m.emailBody, m.emailErr
}

type sentEmail struct {
	To      string
	Subject string
	Text    string
}

type fakeEmailSender struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

func (s *fakeEmailSender) Send(_ context.Context, to, subject, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{To: to, Subject: subject, Text: text})
	return nil
}
