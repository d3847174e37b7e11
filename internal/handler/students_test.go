package handler

import (
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
	"github.com/connectsphere/connectsphere-api/internal/service"
)

func newStudentsRouter(role model.Role, profiles ProfileStore, ai ModelGateway) *gin.Engine {
	r := gin.New()
	r.GET("/api/professional/students",
		asUser(uuid.New(), role),
		middleware.RequireRole(model.RoleProfessional, "Only professionals can view student recommendations"),
		NewStudentsHandler(profiles, ai).List)
	return r
}

func getStudents(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/professional/students", nil))
	return w
}

func TestStudentsReturnsModelRanking(t *testing.T) {
	profiles := newFakeProfileStore()
	_, err := profiles.Create(nil, &model.Profile{UserID: uuid.New()})
	require.NoError(t, err)

	ai := &fakeModelGateway{
		students: []service.StudentRecommendation{
			{ID: 2, Name: "Avery", Skills: []string{"Go", "SQL"}},
		},
	}
	r := newStudentsRouter(model.RoleProfessional, profiles, ai)

	w := getStudents(r)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Students []service.StudentRecommendation `json:"students"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Students, 1)
	assert.Equal(t, "Avery", resp.Students[0].Name)
}

func TestStudentsDegradesToFallback(t *testing.T) {
	ai := &fakeModelGateway{studentsErr: service.ErrMalformedOutput}
	r := newStudentsRouter(model.RoleProfessional, newFakeProfileStore(), ai)

	w := getStudents(r)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Students []service.StudentRecommendation `json:"students"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Students, 1)
	assert.Equal(t, "Sample Student", resp.Students[0].Name)
	assert.Equal(t, []string{"Python", "JavaScript"}, resp.Students[0].Skills)
}

func TestStudentsRequiresProfessionalRole(t *testing.T) {
	r := newStudentsRouter(model.RoleStudent, newFakeProfileStore(), &fakeModelGateway{})

	w := getStudents(r)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Only professionals can view student recommendations")
}
