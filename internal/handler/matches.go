package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/connectsphere/connectsphere-api/internal/middleware"
	"github.com/connectsphere/connectsphere-api/internal/service"
)

type MatchesHandler struct {
	profiles ProfileStore
	ai       ModelGateway
}

func NewMatchesHandler(profiles ProfileStore, ai ModelGateway) *MatchesHandler {
	return &MatchesHandler{profiles: profiles, ai: ai}
}

// fallbackMatches is returned when the model's answer doesn't parse.
// Matching degrades to a placeholder rather than failing the request.
var fallbackMatches = service.MatchResult{
	Matches: []service.Match{
		{ID: 1, Name: "Sample Professional", Role: "Engineer", Company: "Tech Corp"},
	},
	Opportunities: []service.MatchedOpportunity{
		{ID: 1, Title: "Software Intern", Company: "Tech Corp"},
	},
}

// Get handles GET /api/matches (student only)
func (h *MatchesHandler) Get(c *gin.Context) {
	userID := middleware.GetUserID(c)

	profile, err := h.profiles.FindByUserID(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load profile for matching")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Profile not found"})
		return
	}

	result, err := h.ai.RecommendMatches(c.Request.Context(), profile)
	if err != nil {
		if errors.Is(err, service.ErrMalformedOutput) {
			log.Warn().Err(err).Msg("Match recommendation output unparsable, using fallback")
			c.JSON(http.StatusOK, fallbackMatches)
			return
		}
		log.Error().Err(err).Msg("Match recommendation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}
