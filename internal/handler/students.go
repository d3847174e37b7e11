package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/connectsphere/connectsphere-api/internal/service"
)

type StudentsHandler struct {
	profiles ProfileStore
	ai       ModelGateway
}

func NewStudentsHandler(profiles ProfileStore, ai ModelGateway) *StudentsHandler {
	return &StudentsHandler{profiles: profiles, ai: ai}
}

var fallbackStudents = []service.StudentRecommendation{
	{ID: 1, Name: "Sample Student", Skills: []string{"Python", "JavaScript"}},
}

// List handles GET /api/professional/students (professional only)
// Every profile summary goes into the prompt; the model's ranking comes
// back as-is or degrades to the placeholder list.
func (h *StudentsHandler) List(c *gin.Context) {
	summaries, err := h.profiles.ListSummaries(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list profile summaries")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	students, err := h.ai.RecommendStudents(c.Request.Context(), summaries)
	if err != nil {
		if errors.Is(err, service.ErrMalformedOutput) {
			log.Warn().Err(err).Msg("Student recommendation output unparsable, using fallback")
			c.JSON(http.StatusOK, gin.H{"students": fallbackStudents})
			return
		}
		log.Error().Err(err).Msg("Student recommendation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"students": students})
}
