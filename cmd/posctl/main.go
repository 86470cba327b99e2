package main

import (
	"log"

	"github.com/joho/godotenv"

	"go-pos-dashboard/internal/cli"
	"go-pos-dashboard/internal/config"
	"go-pos-dashboard/internal/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// terminal output carries the results; keep the log quiet unless asked
	level := cfg.LogLevel
	if level == "info" {
		level = "warn"
	}
	zl, err := logger.Setup(level, cfg.LogFormat, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	cli.Execute(cli.NewEnv(cfg))
}
