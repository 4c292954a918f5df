package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"root_tycoon/internal/db"
	"root_tycoon/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	apply := flag.Bool("apply", false, "apply migrations (default: list them)")
	dir := flag.String("dir", filepath.Join("internal", "migrations"), "migrations directory")
	flag.Parse()

	files, err := os.ReadDir(*dir)
	if err != nil {
		logger.Fatal("read migrations dir", "error", err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		if !f.IsDir() && filepath.Ext(f.Name()) == ".sql" {
			names = append(names, f.Name())
		}
	}
	sort.Strings(names)

	if !*apply {
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Fatal("DATABASE_URL not set")
	}
	pool := db.MustConnect(dsn)
	defer pool.Close()

	// migrations are idempotent (IF NOT EXISTS), so reapplying is safe
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(*dir, name))
		if err != nil {
			logger.Fatal("read migration", "file", name, "error", err)
		}
		if _, err := pool.Exec(context.Background(), string(b)); err != nil {
			logger.Fatal("apply migration", "file", name, "error", err)
		}
		fmt.Printf("applied %s\n", name)
	}
}
