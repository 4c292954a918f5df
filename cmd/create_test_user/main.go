package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"root_tycoon/internal/clock"
	"root_tycoon/internal/db"
	"root_tycoon/internal/game"
	"root_tycoon/internal/logger"
	"root_tycoon/internal/repository"
	"root_tycoon/internal/service"

	"github.com/joho/godotenv"
)

// Seeds a player (or reuses it) and prints a token for manual API testing.
func main() {
	_ = godotenv.Load()

	email := flag.String("email", "tester@example.com", "player email")
	username := flag.String("username", "tester", "player username")
	password := flag.String("password", "password123", "player password")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatal("JWT_SECRET not set")
	}
	service.InitJWT(secret)

	pool := db.MustConnect(dsn)
	defer pool.Close()

	loc, err := clock.LoadZone(os.Getenv("GAME_TIMEZONE"))
	if err != nil {
		logger.Fatal("invalid GAME_TIMEZONE", "error", err)
	}

	users := repository.NewUserRepository(pool)
	engine := game.NewEngine(game.DefaultRules(), loc)
	auth := service.NewAuthService(users, engine, clock.Real{}, nil)
	ctx := context.Background()

	sess, err := auth.Register(ctx, *email, *username, *password, service.RequestInfo{})
	if errors.Is(err, repository.ErrUserExists) {
		sess, err = auth.Login(ctx, *email, *password, service.RequestInfo{})
	}
	if err != nil {
		logger.Fatal("seed user failed", "error", err)
	}

	logger.Info("user ready", "id", sess.User.ID, "username", sess.User.Username, "balance", sess.User.Balance)
	fmt.Println(sess.Token)
}
