// services/web/handlers/types.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"

	"github.com/example/datatrans-payment-demo/internal/payment"
	"github.com/example/datatrans-payment-demo/services/web/client"
	"github.com/example/datatrans-payment-demo/services/web/views"
)

const ServiceName = "web"

// Backend is the part of the backend client the handlers read through.
type Backend interface {
	payment.PaymentLister
	payment.PaymentFetcher
	Get(ctx context.Context, path string, query url.Values) (*client.RawResponse, error)
}

type Deps struct {
	Backend   Backend
	Initiator *payment.Initiator
	Resolver  *payment.Resolver
	Relay     *payment.Relay
	Views     *views.Renderer
	Log       *slog.Logger

	WebhookMaxBodyBytes int64
}

// Problem is an RFC 9457 problem document.
type Problem struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, r *http.Request, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Problem{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   detail,
		Instance: r.URL.RequestURI(),
	})
}
