package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/connectsphere/connectsphere-api/internal/middleware"
	"github.com/connectsphere/connectsphere-api/internal/model"
)

const connectEmailSubject = "ConnectSphere: New Connection Request"

type EmailHandler struct {
	users     UserStore
	ai        ModelGateway
	email     EmailSender
	analytics AnalyticsStore
}

func NewEmailHandler(users UserStore, ai ModelGateway, email EmailSender, analytics AnalyticsStore) *EmailHandler {
	return &EmailHandler{users: users, ai: ai, email: email, analytics: analytics}
}

// Connect handles POST /api/email/connect (any authenticated role)
// Drafts outreach copy with the model, dispatches it to the recipient,
// then records an analytics event best-effort.
func (h *EmailHandler) Connect(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		RecipientID string `json:"recipientId" binding:"required"`
		Message     string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	// An unparsable id can't reference anyone
	recipientID, err := uuid.Parse(req.RecipientID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipient not found"})
		return
	}

	recipient, err := h.users.FindByID(c.Request.Context(), recipientID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up recipient")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if recipient == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Recipient not found"})
		return
	}

	body, err := h.ai.DraftOutreachEmail(c.Request.Context(), req.Message, recipient.FullName)
	if err != nil {
		log.Error().Err(err).Msg("Outreach email generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if err := h.email.Send(c.Request.Context(), recipient.Email, connectEmailSubject, body); err != nil {
		log.Error().Err(err).Msg("Failed to dispatch outreach email")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	recordEvent(c.Request.Context(), h.analytics, userID, model.ActionEmailSent, map[string]any{
		"recipient_id": recipientID.String(),
	})

	c.JSON(http.StatusOK, gin.H{"message": "Email sent"})
}
