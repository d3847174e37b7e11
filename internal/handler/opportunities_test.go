package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/connectsphere/connectsphere-api/internal/middleware"
	"github.com/connectsphere/connectsphere-api/internal/model"
)

func newOpportunityRouter(store OpportunityStore, callerID uuid.UUID, role model.Role) *gin.Engine {
	h := NewOpportunityHandler(store)
	r := gin.New()
	grp := r.Group("/api/professional", asUser(callerID, role))
	grp.POST("/opportunities",
		middleware.RequireRole(model.RoleProfessional, "Only professionals can post opportunities"),
		h.Create)
	grp.GET("/opportunities",
		middleware.RequireRole(model.RoleProfessional, "Only professionals can view their opportunities"),
		h.List)
	return r
}

func TestPostThenListReturnsOnlyOwnOpportunities(t *testing.T) {
	store := &fakeOpportunityStore{}
	owner := uuid.New()

	// Another professional's listing must never appear in the caller's list
	_, err := store.Create(nil, uuid.New(), "Other Role", "", "Elsewhere Inc")
	require.NoError(t, err)

	r := newOpportunityRouter(store, owner, model.RoleProfessional)

	body, _ := json.Marshal(gin.H{"title": "Backend Intern", "description": "Go services", "company": "Acme"})
	req := httptest.NewRequest(http.MethodPost, "/api/professional/opportunities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var created struct {
		Opportunity model.Opportunity `json:"opportunity"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, owner, created.Opportunity.UserID)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/professional/opportunities", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Opportunities []model.Opportunity `json:"opportunities"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed.Opportunities, 1)
	assert.Equal(t, created.Opportunity.ID, listed.Opportunities[0].ID)
	assert.Equal(t, "Backend Intern", listed.Opportunities[0].Title)
}

func TestStudentCannotPostOpportunity(t *testing.T) {
	store := &fakeOpportunityStore{}
	r := newOpportunityRouter(store, uuid.New(), model.RoleStudent)

	body, _ := json.Marshal(gin.H{"title": "Nope"})
	req := httptest.NewRequest(http.MethodPost, "/api/professional/opportunities", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Only professionals can post opportunities")
	assert.Empty(t, store.opps)
}

func TestListWithNoOpportunitiesReturnsEmptyArray(t *testing.T) {
	r := newOpportunityRouter(&fakeOpportunityStore{}, uuid.New(), model.RoleProfessional)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/professional/opportunities", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"opportunities":[]}`, w.Body.String())
}
