// Package config loads the front end configuration once at process start.
// The resulting App value is passed explicitly to every collaborator.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Log struct {
	Level  string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
	Prefix string `envconfig:"PREFIX" default:"web"`
}

type App struct {
	Env                 string        `envconfig:"APP_ENV" default:"development"`
	HTTPAddr            string        `envconfig:"HTTP_ADDR" default:":3000" validate:"required"`
	BackendURL          string        `envconfig:"BACKEND_URL" default:"http://localhost:8000" validate:"required,url"`
	BackendTimeout      time.Duration `envconfig:"BACKEND_TIMEOUT" default:"10s" validate:"gt=0"`
	WebhookMaxBodyBytes int64         `envconfig:"WEBHOOK_MAX_BODY_BYTES" default:"1048576" validate:"gt=0"`
	CORSAllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	ShutdownTimeout     time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
	Log                 Log           `envconfig:"LOG"`
}

// Load reads an optional .env file (the first existing path, or ./.env when
// none is given) and then the process environment.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	if len(envFilePath) == 0 {
		envFilePath = []string{".env"}
	}
	loaded := false
	for _, path := range envFilePath {
		if err := godotenv.Load(path); err != nil {
			logger.Debug("Environment file not loaded", "path", path, "error", err)
			continue
		}
		logger.Info("Loaded environment file", "path", path)
		loaded = true
		break
	}
	if !loaded {
		logger.Warn("No .env file found, using system environment variables")
	}
	return loadFromEnv()
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"http_addr", cfg.HTTPAddr,
		"backend_url", cfg.BackendURL,
		"backend_timeout", cfg.BackendTimeout,
		"webhook_max_body_bytes", cfg.WebhookMaxBodyBytes,
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
	)
	return &cfg, nil
}
