package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Pedro-J-Kukul/salesrecords/internal/data"
	"github.com/Pedro-J-Kukul/salesrecords/internal/env"
	"github.com/Pedro-J-Kukul/salesrecords/internal/store"
	"github.com/Pedro-J-Kukul/salesrecords/internal/validator"
)

const version = "v1.0.0"

// Server configuration settings
type config struct {
	port  int
	env   string
	store store.Config
	cors  struct {
		trustedOrigins []string
	}
	rateLimit struct {
		rps     float64
		burst   int
		enabled bool
	}
}

type app struct {
	config config
	logger *slog.Logger
	models data.Models
}

func main() {
	if _, err := env.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "reading .env: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := setupLogger(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	st, closeStore, err := store.Open(ctx, cfg.store)
	cancel()
	if err != nil {
		logger.Error("Error opening record store", slog.String("store", cfg.store.Backend), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	logger.Info("Record store connection established", slog.String("store", cfg.store.Backend))

	app := &app{
		config: cfg,
		logger: logger,
		models: data.NewModels(st, logger),
	}

	err = app.serve()
	if err != nil {
		logger.Error("Error starting server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func loadConfig(fs *flag.FlagSet, args []string) (config, error) {
	var cfg config

	fs.IntVar(&cfg.port, "port", env.Int("PORT", 4000), "API server port")
	fs.StringVar(&cfg.env, "env", env.String("APP_ENV", "development"), "Environment (development|staging|production)")
	store.BindFlags(fs, &cfg.store)
	fs.Float64Var(&cfg.rateLimit.rps, "rate-limit-rps", env.Float("RATE_LIMIT_RPS", 5), "Requests per second")
	fs.IntVar(&cfg.rateLimit.burst, "rate-limit-burst", env.Int("RATE_LIMIT_BURST", 10), "Burst limit")
	fs.BoolVar(&cfg.rateLimit.enabled, "rate-limit-enabled", env.Bool("RATE_LIMIT_ENABLED", false), "Enable rate limiting")

	cfg.cors.trustedOrigins = strings.Fields(env.String("CORS_TRUSTED_ORIGINS", ""))
	fs.Func("cors-trusted-origins", "Trusted CORS origins (space separated)", func(val string) error {
		cfg.cors.trustedOrigins = strings.Fields(val)
		return nil
	})

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	v := validator.New()
	v.Check(validator.Between(cfg.port, 1, 65535), "port", "must be between 1 and 65535")
	v.Check(validator.Permitted(cfg.env, "development", "staging", "production"), "env", "must be development, staging or production")
	v.Check(!cfg.rateLimit.enabled || cfg.rateLimit.rps > 0, "rate-limit-rps", "must be greater than zero")
	store.ValidateConfig(v, cfg.store)
	if !v.IsEmpty() {
		return config{}, fmt.Errorf("invalid configuration: %v", v.Errors)
	}

	return cfg, nil
}

func setupLogger(cfg config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if cfg.env == "development" {
		opts.Level = slog.LevelDebug
	}

	var logger *slog.Logger
	if cfg.env == "production" {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, opts))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stdout, opts))
	}

	// Output loaded configuration settings
	logger.Info("Starting server",
		slog.String("version", version),
		slog.String("env", cfg.env),
		slog.Int("port", cfg.port),
		slog.String("store", cfg.store.Backend),
		slog.Float64("rateLimitRPS", cfg.rateLimit.rps),
		slog.Int("rateLimitBurst", cfg.rateLimit.burst),
		slog.Bool("rateLimitEnabled", cfg.rateLimit.enabled),
	)

	return logger
}
