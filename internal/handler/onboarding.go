package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/connectsphere/connectsphere-api/internal/middleware"
	"github.com/connectsphere/connectsphere-api/internal/model"
	"github.com/connectsphere/connectsphere-api/internal/service"
)

const maxResumeSize = 10 * 1024 * 1024

type OnboardingHandler struct {
	profiles  ProfileStore
	ai        ModelGateway
	analytics AnalyticsStore
}

func NewOnboardingHandler(profiles ProfileStore, ai ModelGateway, analytics AnalyticsStore) *OnboardingHandler {
	return &OnboardingHandler{profiles: profiles, ai: ai, analytics: analytics}
}

// Complete handles POST /api/onboarding (student only)
// Multipart form: optional "resume" PDF plus a "data" JSON payload.
// The profile insert and the summary backfill are two separate writes:
// a summary failure leaves a valid profile with a null summary.
func (h *OnboardingHandler) Complete(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var data struct {
		Activities  string            `json:"activities"`
		Hobbies     string            `json:"hobbies"`
		Projects    string            `json:"projects"`
		SocialLinks model.SocialLinks `json:"socialLinks"`
		CareerGoals string            `json:"careerGoals"`
		Industries  string            `json:"industries"`
	}
	if err := json.Unmarshal([]byte(c.PostForm("data")), &data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	resumeText, ok := h.extractResume(c)
	if !ok {
		return
	}

	profile := &model.Profile{
		UserID:      userID,
		ResumeText:  resumeText,
		Activities:  data.Activities,
		Hobbies:     data.Hobbies,
		Projects:    data.Projects,
		SocialLinks: data.SocialLinks,
		CareerGoals: data.CareerGoals,
		Industries:  data.Industries,
	}

	created, err := h.profiles.Create(c.Request.Context(), profile)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create profile")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	// Backfill the AI summary. Degraded, not fatal: the profile already
	// exists, so a model or store failure just leaves ai_summary null.
	summary, err := h.ai.SummarizeProfile(c.Request.Context(), created)
	if err != nil {
		log.Warn().Err(err).Str("userId", userID.String()).Msg("Profile summary generation failed")
	} else if err := h.profiles.UpdateSummary(c.Request.Context(), userID, summary); err != nil {
		log.Warn().Err(err).Str("userId", userID.String()).Msg("Profile summary write failed")
	}

	recordEvent(c.Request.Context(), h.analytics, userID, model.ActionOnboarded, map[string]any{
		"hasResume": resumeText != "",
	})

	c.JSON(http.StatusOK, gin.H{"message": "Profile saved"})
}

// extractResume reads the optional resume upload and returns its text.
// A missing file is fine; a present-but-unparsable one fails closed, and
// extractResume writes the error response itself.
func (h *OnboardingHandler) extractResume(c *gin.Context) (string, bool) {
	file, header, err := c.Request.FormFile("resume")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", true
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return "", false
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Only PDF resumes are supported"})
		return "", false
	}

	if header.Size > maxResumeSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Resume too large. Maximum size is 10MB."})
		return "", false
	}

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded resume")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return "", false
	}

	// Header must start with %PDF
	if len(fileBytes) < 4 || string(fileBytes[:4]) != "%PDF" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error parsing resume"})
		return "", false
	}

	text, err := service.ExtractPDFText(fileBytes)
	if err != nil {
		log.Warn().Err(err).Str("filename", header.Filename).Msg("Failed to extract resume text")
		c.JSON(http.StatusBadRequest, gin.H{"message": "Error parsing resume"})
		return "", false
	}

	log.Info().
		Str("filename", header.Filename).
		Int("bytes", len(fileBytes)).
		Int("textLen", len(text)).
		Msg("Resume PDF text extracted")

	return strings.TrimSpace(text), true
}
