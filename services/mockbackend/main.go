// services/mockbackend/main.go
package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/datatrans-payment-demo/internal/config"
	"github.com/example/datatrans-payment-demo/internal/fakebackend"
	"github.com/example/datatrans-payment-demo/internal/logging"
	m "github.com/example/datatrans-payment-demo/pkg/metrics"
)

const serviceName = "mockbackend"

type settings struct {
	Addr     string        `envconfig:"MOCK_HTTP_ADDR" default:":8000" validate:"required"`
	PayURL   string        `envconfig:"PAY_URL" default:"https://pay.sandbox.datatrans.com" validate:"required,url"`
	FailRate float64       `envconfig:"FAIL_RATE" default:"0" validate:"gte=0,lte=1"`
	Latency  time.Duration `envconfig:"LATENCY" default:"0s" validate:"gte=0"`
	Log      config.Log    `envconfig:"LOG"`
}

func main() {
	var s settings
	if err := envconfig.Process("", &s); err != nil {
		slog.Error("Failed to read environment", "error", err)
		os.Exit(1)
	}
	if err := validator.New().Struct(s); err != nil {
		slog.Error("Invalid environment", "error", err)
		os.Exit(1)
	}
	s.Log.Prefix = serviceName
	logger := logging.Setup(s.Log)

	fake := fakebackend.New(fakebackend.Options{
		PayURL:   s.PayURL,
		FailRate: s.FailRate,
		Latency:  s.Latency,
	})

	r := mux.NewRouter()
	r.Use(m.Middleware(serviceName))
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"service":"` + serviceName + `"}`))
	}).Methods(http.MethodGet)
	r.PathPrefix("/api/").Handler(fake)

	logger.Info("Mock backend listening", "addr", s.Addr, "fail_rate", s.FailRate, "pay_url", s.PayURL)
	srv := &http.Server{Addr: s.Addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
}
