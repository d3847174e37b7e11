package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/connectsphere/connectsphere-api/internal/middleware"
	"github.com/connectsphere/connectsphere-api/internal/model"
)

type OpportunityHandler struct {
	opportunities OpportunityStore
}

func NewOpportunityHandler(opportunities OpportunityStore) *OpportunityHandler {
	return &OpportunityHandler{opportunities: opportunities}
}

// Create handles POST /api/professional/opportunities (professional only)
func (h *OpportunityHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		Company     string `json:"company"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	opp, err := h.opportunities.Create(c.Request.Context(), userID, req.Title, req.Description, req.Company)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create opportunity")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"opportunity": opp})
}

// List handles GET /api/professional/opportunities (professional only)
// Returns only the caller's own listings.
func (h *OpportunityHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	opps, err := h.opportunities.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list opportunities")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if opps == nil {
		opps = []model.Opportunity{}
	}
	c.JSON(http.StatusOK, gin.H{"opportunities": opps})
}
