package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the account type assigned at signup. It never changes afterwards.
type Role string

const (
	RoleStudent      Role = "student"
	RoleProfessional Role = "professional"
)

func ValidRole(r Role) bool {
	return r == RoleStudent || r == RoleProfessional
}

// User is a ConnectSphere account. The password hash never leaves the server.
type User struct {
	ID           uuid.UUID `json:"id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SocialLinks holds the optional links a student provides at onboarding.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin"`
	YouTube   string `json:"youtube"`
	Instagram string `json:"instagram"`
}

// Profile is a student's onboarding record. Created once; only AISummary
// is mutated afterwards, and only by the summary backfill.
type Profile struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"userId"`
	ResumeText  string      `json:"resumeText"`
	Activities  string      `json:"activities"`
	Hobbies     string      `json:"hobbies"`
	Projects    string      `json:"projects"`
	SocialLinks SocialLinks `json:"socialLinks"`
	CareerGoals string      `json:"careerGoals"`
	Industries  string      `json:"industries"`
	AISummary   *string     `json:"aiSummary,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ProfileSummary is the projection sent to the model for student
// recommendations: just the owner and the generated summary.
type ProfileSummary struct {
	UserID    uuid.UUID `json:"user_id"`
	AISummary *string   `json:"ai_summary"`
}

// Opportunity is a listing posted by a professional, visible only to its owner.
type Opportunity struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Company     string    `json:"company"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AnalyticsEvent is an append-only audit record. Writes are best-effort:
// a failed insert is logged and swallowed, never surfaced to the caller.
type AnalyticsEvent struct {
	ID        uuid.UUID      `json:"id"`
	UserID    uuid.UUID      `json:"userId"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details"`
	CreatedAt time.Time      `json:"createdAt"`
}

// Analytics action names.
const (
	ActionSignup    = "signup"
	ActionLogin     = "login"
	ActionOnboarded = "onboarding_completed"
	ActionEmailSent = "email_sent"
)
