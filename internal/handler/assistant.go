package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type AssistantHandler struct {
	ai ModelGateway
}

func NewAssistantHandler(ai ModelGateway) *AssistantHandler {
	return &AssistantHandler{ai: ai}
}

// Query handles POST /api/assistant (any authenticated role)
// The caller's query is forwarded verbatim; no conversation state.
func (h *AssistantHandler) Query(c *gin.Context) {
	var req struct {
		Query string `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	answer, err := h.ai.Answer(c.Request.Context(), req.Query)
	if err != nil {
		log.Error().Err(err).Msg("Assistant query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": answer})
}
