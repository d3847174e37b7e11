package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/connectsphere/connectsphere-api/internal/config"
	"github.com/connectsphere/connectsphere-api/internal/handler"
	"github.com/connectsphere/connectsphere-api/internal/middleware"
	"github.com/connectsphere/connectsphere-api/internal/model"
	"github.com/connectsphere/connectsphere-api/internal/repository"
	"github.com/connectsphere/connectsphere-api/internal/service"
	"github.com/connectsphere/connectsphere-api/internal/token"
)

func main() {
	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting ConnectSphere API")

	// ── Database ─────────────────────────────────────────
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connected")

	// ── Repositories ─────────────────────────────────────
	userRepo := repository.NewUserRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)
	oppRepo := repository.NewOpportunityRepo(pool)
	analyticsRepo := repository.NewAnalyticsRepo(pool)

	// ── Services ─────────────────────────────────────────
	issuer := token.NewIssuer(cfg.JWTSecret)
	openai := service.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	resend := service.NewResendClient(cfg.ResendAPIKey, cfg.ResendBaseURL, cfg.EmailFrom)

	// ── Handlers ─────────────────────────────────────────
	authHandler := handler.NewAuthHandler(userRepo, analyticsRepo, issuer)
	onboardingHandler := handler.NewOnboardingHandler(profileRepo, openai, analyticsRepo)
	matchesHandler := handler.NewMatchesHandler(profileRepo, openai)
	oppHandler := handler.NewOpportunityHandler(oppRepo)
	studentsHandler := handler.NewStudentsHandler(profileRepo, openai)
	assistantHandler := handler.NewAssistantHandler(openai)
	emailHandler := handler.NewEmailHandler(userRepo, openai, resend, analyticsRepo)

	// ── Middleware ────────────────────────────────────────
	authMiddleware := middleware.NewAuthMiddleware(issuer)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS)

	// ── Router ───────────────────────────────────────────
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check (unauthenticated)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "connectsphere-api",
			"time":    time.Now().UTC(),
		})
	})

	api := r.Group("/api")

	// Auth (unauthenticated)
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)

	// ── Authenticated Routes ─────────────────────────────
	protected := api.Group("", authMiddleware.Authenticate(), rateLimiter.Limit())
	{
		// Students
		protected.POST("/onboarding",
			middleware.RequireRole(model.RoleStudent, "Only students can complete onboarding"),
			onboardingHandler.Complete)
		protected.GET("/matches",
			middleware.RequireRole(model.RoleStudent, "Only students can access matches"),
			matchesHandler.Get)

		// Professionals
		protected.POST("/professional/opportunities",
			middleware.RequireRole(model.RoleProfessional, "Only professionals can post opportunities"),
			oppHandler.Create)
		protected.GET("/professional/opportunities",
			middleware.RequireRole(model.RoleProfessional, "Only professionals can view their opportunities"),
			oppHandler.List)
		protected.GET("/professional/students",
			middleware.RequireRole(model.RoleProfessional, "Only professionals can view student recommendations"),
			studentsHandler.List)

		// Any role
		protected.POST("/assistant", assistantHandler.Query)
		protected.POST("/email/connect", emailHandler.Connect)
	}

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("ConnectSphere API server running")

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// requestLogger logs every request with zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg(fmt.Sprintf("%s %s", c.Request.Method, path))
	}
}
