package http

import (
	"root_tycoon/internal/config"
	"root_tycoon/internal/http/handlers"
	"root_tycoon/internal/http/middleware"
	"root_tycoon/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter builds the gin engine with the common middleware chain.
func NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(), middleware.Metrics())
	return r
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler, health *handlers.HealthHandler, hub *ws.Hub, cfg *config.Config) {
	// Health checks (no rate limiting)
	r.GET("/health", health.Health)
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Chat websocket, JWT in query
	r.GET("/ws/chat", ws.HandleWS(hub, cfg.AllowedOrigin))

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit("api", cfg.APIRateLimit, cfg.APIRateWindow))
	registerAPIRoutes(v1, h, cfg)
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler, cfg *config.Config) {
	// Auth
	authRL := middleware.RedisRateLimit("auth", cfg.AuthRateLimit, cfg.AuthRateWindow)
	api.POST("/auth/register", authRL, h.Register)
	api.POST("/auth/login", authRL, h.Login)

	// Public
	api.GET("/catalog", h.Catalog)
	api.GET("/leaderboard", h.GetLeaderboard)
	api.GET("/stats", h.Stats)

	// Signed by the gateway, not by a user token
	api.POST("/payments/webhook", h.PaymentWebhook)

	auth := api.Group("")
	auth.Use(middleware.JWT())

	// Action rate limiter middleware (per user, not per IP)
	act := middleware.ActionRateLimit(cfg.ActionRateLimit, cfg.ActionRateWindow)

	auth.GET("/me", h.Me)
	auth.GET("/transactions", h.Transactions)
	auth.POST("/tutorial/complete", act, h.CompleteTutorial)

	auth.GET("/jobs", h.Jobs)
	auth.POST("/jobs/:type/start", act, h.StartJob)

	auth.GET("/servers", h.Servers)
	auth.POST("/servers", act, h.BuyServer)
	auth.PATCH("/servers/:id", act, h.UpdateServer)
	auth.DELETE("/servers/:id", act, h.DeleteServer)
	auth.POST("/income/collect", act, h.CollectIncome)

	auth.GET("/learning", h.Learning)
	auth.POST("/learning/:course/start", act, h.StartCourse)

	auth.GET("/subscription", h.Subscription)
	auth.POST("/subscription/checkout", act, h.Checkout)
	auth.GET("/payments", h.ListPayments)

	auth.GET("/daily-bonus", h.DailyBonus)
	auth.POST("/daily-bonus/claim", act, h.ClaimDailyBonus)

	auth.GET("/quests", h.GetQuests)
	auth.POST("/quests/:id/claim", act, h.ClaimQuestReward)

	auth.GET("/achievements", h.Achievements)
	auth.POST("/achievements/:id/claim", act, h.ClaimAchievement)

	auth.GET("/leaderboard/rank", h.GetMyRank)
	auth.GET("/chat/messages", h.ChatMessages)
}
