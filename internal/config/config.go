package config

import (
	"os"
	"strconv"
	"time"

	"root_tycoon/internal/clock"
	"root_tycoon/internal/logger"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	AppPort       string
	StorageDriver string
	DatabaseURL   string
	JWTSecret     string
	AllowedOrigin string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	PaymentWebhookSecret string
	IncomeBatchInterval  time.Duration

	// Game rules
	DailyBonusBase  int64
	MaxLearnedSlots int
	GameTimezone    string
	GameLocation    *time.Location

	// Rate limits, requests per window
	APIRateLimit     int
	APIRateWindow    time.Duration
	AuthRateLimit    int
	AuthRateWindow   time.Duration
	ActionRateLimit  int
	ActionRateWindow time.Duration
}

// Загрузка конфига из env
func Load() *Config {
	_ = godotenv.Load()

	storage := getEnv("STORAGE_DRIVER", StoragePostgres)
	if storage != StoragePostgres && storage != StorageMemory {
		logger.Fatal("STORAGE_DRIVER must be postgres or memory", "value", storage)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" && storage == StoragePostgres {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	zone := getEnv("GAME_TIMEZONE", clock.DefaultZone)
	loc, err := clock.LoadZone(zone)
	if err != nil {
		logger.Fatal("GAME_TIMEZONE is not a known time zone", "value", zone, "error", err)
	}

	webhookSecret := os.Getenv("PAYMENT_WEBHOOK_SECRET")
	if webhookSecret == "" {
		logger.Warn("PAYMENT_WEBHOOK_SECRET is not set, payment webhooks will be rejected")
	}

	return &Config{
		AppPort:       getEnv("APP_PORT", "8080"),
		StorageDriver: storage,
		DatabaseURL:   dbURL,
		JWTSecret:     jwtSecret,
		AllowedOrigin: os.Getenv("ALLOWED_ORIGIN"),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",

		PaymentWebhookSecret: webhookSecret,
		IncomeBatchInterval:  getSeconds("INCOME_BATCH_INTERVAL_SECONDS", 60),

		DailyBonusBase:  int64(getInt("DAILY_BONUS_BASE", 1000)),
		MaxLearnedSlots: getInt("MAX_LEARNED_SLOTS", 25),
		GameTimezone:    zone,
		GameLocation:    loc,

		APIRateLimit:     getInt("API_RATE_LIMIT", 600),
		APIRateWindow:    getSeconds("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:    getInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow:   getSeconds("AUTH_RATE_WINDOW_SECONDS", 60),
		ActionRateLimit:  getInt("ACTION_RATE_LIMIT", 60),
		ActionRateWindow: getSeconds("ACTION_RATE_WINDOW_SECONDS", 60),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getInt accepts non-negative integers only; anything else keeps the default.
func getInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
		logger.Warn("ignoring invalid integer env value", "key", key, "value", v)
	}
	return def
}

func getSeconds(key string, def int) time.Duration {
	return time.Duration(getInt(key, def)) * time.Second
}
