package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"root_tycoon/internal/cache"
	"root_tycoon/internal/clock"
	"root_tycoon/internal/config"
	"root_tycoon/internal/db"
	"root_tycoon/internal/game"
	httpServer "root_tycoon/internal/http"
	"root_tycoon/internal/http/handlers"
	"root_tycoon/internal/http/middleware"
	"root_tycoon/internal/logger"
	"root_tycoon/internal/repository"
	"root_tycoon/internal/repository/memstore"
	"root_tycoon/internal/service"
	"root_tycoon/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

var version = "dev"

type stores struct {
	users    service.UserStore
	players  service.PlayerStore
	ranking  service.RankingStore
	payments service.PaymentStore
	chat     service.ChatStore
	audit    service.AuditStore
}

func postgresStores(pool *pgxpool.Pool) stores {
	users := repository.NewUserRepository(pool)
	return stores{
		users:    users,
		players:  repository.NewPlayerRepository(pool),
		ranking:  users,
		payments: repository.NewPaymentRepository(pool),
		chat:     repository.NewChatRepository(pool),
		audit:    repository.NewAuditRepository(pool),
	}
}

func memoryStores() stores {
	m := memstore.New()
	return stores{users: m, players: m, ranking: m, payments: m, chat: m, audit: m}
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	checks := map[string]handlers.Pinger{}

	var st stores
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage, state is lost on restart")
		st = memoryStores()
	default:
		pool := db.MustConnect(cfg.DatabaseURL)
		defer pool.Close()
		checks["database"] = pool
		st = postgresStores(pool)
	}

	// Redis is optional: leaderboard falls back to SQL, rate limits to
	// per-process counters.
	var board *cache.Leaderboard
	if cfg.RedisAddr != "" {
		rctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		rdb, err := cache.NewRedis(rctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		cancel()
		if err != nil {
			logger.Warn("redis unavailable, continuing without it", "error", err)
		} else {
			defer rdb.Close()
			middleware.UseRedis(rdb)
			board = cache.NewLeaderboard(rdb)
			checks["redis"] = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		}
	}

	rules := game.DefaultRules()
	rules.DailyBonusBase = cfg.DailyBonusBase
	rules.MaxLearnedSlots = cfg.MaxLearnedSlots
	engine := game.NewEngine(rules, cfg.GameLocation)
	clk := clock.Real{}

	audit := service.NewAuditService(st.audit)
	gameSvc := service.NewGameService(engine, clk, st.players).WithAudit(audit)
	ranking := service.NewRankingService(st.ranking, nil)
	if board != nil {
		gameSvc.WithLeaderboard(board)
		ranking = service.NewRankingService(st.ranking, board)
		if err := ranking.Warm(ctx); err != nil {
			logger.Warn("leaderboard warm-up failed", "error", err)
		}
	}
	chat := service.NewChatService(st.chat, st.users, clk)

	h := handlers.NewHandler(
		service.NewAuthService(st.users, engine, clk, audit),
		gameSvc,
		service.NewPaymentService(st.payments, gameSvc, audit, clk, cfg.PaymentWebhookSecret),
		ranking,
		chat,
	)

	worker := service.NewIncomeWorker(st.players, gameSvc, cfg.IncomeBatchInterval)
	go worker.Start(ctx)

	gin.SetMode(gin.ReleaseMode)
	r := httpServer.NewRouter()

	// CORS for production (frontend on different domain)
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (cfg.AllowedOrigin == "" || cfg.AllowedOrigin == "*" || origin == cfg.AllowedOrigin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	hub := ws.NewHub(chat)
	health := handlers.NewHealthHandler(version, checks).
		WithGauge("chat_connections", func() any { return hub.Count() }).
		WithGauge("income_worker", func() any { return worker.Status() })
	httpServer.RegisterRoutes(r, h, health, hub, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "storage", cfg.StorageDriver, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}
