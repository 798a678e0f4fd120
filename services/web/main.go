// services/web/main.go
package main

import (
	"log/slog"
	"os"

	"github.com/example/datatrans-payment-demo/internal/config"
	"github.com/example/datatrans-payment-demo/internal/logging"
	"github.com/example/datatrans-payment-demo/internal/payment"
	"github.com/example/datatrans-payment-demo/services/web/client"
	"github.com/example/datatrans-payment-demo/services/web/handlers"
	"github.com/example/datatrans-payment-demo/services/web/views"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.Log)

	renderer, err := views.New()
	if err != nil {
		logger.Error("Failed to parse views", "error", err)
		os.Exit(1)
	}

	backend := client.New(cfg.BackendURL, cfg.BackendTimeout)
	deps := handlers.Deps{
		Backend:             backend,
		Initiator:           payment.NewInitiator(backend, logger),
		Resolver:            payment.NewResolver(backend, logger),
		Relay:               payment.NewRelay(backend, logger),
		Views:               renderer,
		Log:                 logger,
		WebhookMaxBodyBytes: cfg.WebhookMaxBodyBytes,
	}

	srv := NewServer(cfg.HTTPAddr, newRouter(deps, cfg.CORSAllowedOrigins), cfg.ShutdownTimeout, logger)
	if err := srv.Start(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}
