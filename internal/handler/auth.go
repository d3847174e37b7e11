package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/connectsphere/connectsphere-api/internal/model"
	"github.com/connectsphere/connectsphere-api/internal/repository"
	"github.com/connectsphere/connectsphere-api/internal/token"
)

// dummyHash is compared against when login hits an unknown email, so the
// miss path costs one bcrypt verify either way.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type AuthHandler struct {
	users     UserStore
	analytics AnalyticsStore
	issuer    *token.Issuer
}

func NewAuthHandler(users UserStore, analytics AnalyticsStore, issuer *token.Issuer) *AuthHandler {
	return &AuthHandler{users: users, analytics: analytics, issuer: issuer}
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req struct {
		FullName string     `json:"fullName" binding:"required"`
		Email    string     `json:"email" binding:"required"`
		Password string     `json:"password" binding:"required"`
		Role     model.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	if !model.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Failed to hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.FullName, req.Email, string(hash), req.Role)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already exists"})
			return
		}
		log.Error().Err(err).Msg("Failed to create user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	tok, err := h.issuer.Issue(user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	recordEvent(c.Request.Context(), h.analytics, user.ID, model.ActionSignup, map[string]any{
		"role": user.Role,
	})

	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// Login handles POST /api/auth/login
// Unknown email and wrong password collapse to one generic 401.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		log.Error().Err(err).Msg("Failed to look up user")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	hash := dummyHash
	if user != nil {
		hash = user.PasswordHash
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil || user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	tok, err := h.issuer.Issue(user.ID, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("Failed to issue token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	recordEvent(c.Request.Context(), h.analytics, user.ID, model.ActionLogin, nil)

	c.JSON(http.StatusOK, gin.H{"token": tok})
}
