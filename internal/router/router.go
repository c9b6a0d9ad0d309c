package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rankten/rankten-backend/internal/config"
	"github.com/rankten/rankten-backend/internal/handler"
	"github.com/rankten/rankten-backend/internal/middleware"
	"github.com/rankten/rankten-backend/internal/response"
	"github.com/rankten/rankten-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	Quiz    *handler.QuizHandler
	Session *handler.SessionHandler
	Score   *handler.ScoreHandler
	WS      *handler.WSHandler
}

// Limiters groups the Redis-backed rate limiters applied per route group.
type Limiters struct {
	Auth  *middleware.RateLimiter
	Guess *middleware.RateLimiter
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	limiters *Limiters,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(limiters.Auth.Middleware())
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", middleware.RequireUserJWT(authService), handlers.Auth.Logout)
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Quiz Group (Public, Rate Limited) ──────────────────────────
	// Guess verification carries no session state, so it stays public; the
	// limiter keeps answer-set enumeration expensive.
	quiz := router.Group("/api/v1/quiz")
	quiz.Use(limiters.Guess.Middleware())
	{
		quiz.GET("/today", handlers.Quiz.Today)
		quiz.GET("/hint", handlers.Quiz.Hint)
		quiz.POST("/verify-guess", handlers.Quiz.VerifyGuess)
		quiz.POST("/reveal", handlers.Quiz.Reveal)
	}

	// ─── 3. Session Group (JWT) ────────────────────────────────────────
	session := router.Group("/api/v1/session")
	session.Use(middleware.RequireUserJWT(authService))
	{
		session.POST("/start", handlers.Session.Start)
		session.PUT("/progress", handlers.Session.SaveProgress)
	}

	// ─── 4. Score Group (JWT) ──────────────────────────────────────────
	score := router.Group("/api/v1/score")
	score.Use(middleware.RequireUserJWT(authService))
	{
		score.POST("/submit", handlers.Score.Submit)
		score.GET("/streak", handlers.Score.Streak)
	}

	// ─── 5. WebSocket Group (WS Auth) ──────────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireUserWSAuth(authService))
	{
		ws.GET("/session/clock", handlers.WS.SessionClockStream)
	}

	return router
}
