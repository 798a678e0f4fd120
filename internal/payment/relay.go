package payment

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

// WebhookDelivery is an inbound provider notification, body untouched.
type WebhookDelivery struct {
	Body        []byte
	ContentType string
	Signature   string
}

type WebhookReply struct {
	StatusCode int
	Body       []byte
}

var emptyObject = []byte("{}")

// Relay passes provider webhooks to the backend. It never inspects the body:
// the backend verifies the signature over the exact bytes received here.
type Relay struct {
	forwarder WebhookForwarder
	log       *slog.Logger
}

func NewRelay(forwarder WebhookForwarder, log *slog.Logger) *Relay {
	return &Relay{forwarder: forwarder, log: log}
}

// Forward always returns a terminal reply. The backend's status and body are
// passed back verbatim when the body is JSON, otherwise the body becomes {}.
// An unreachable backend yields 502 with {}.
func (r *Relay) Forward(ctx context.Context, d WebhookDelivery) WebhookReply {
	if d.ContentType == "" {
		d.ContentType = "application/json"
	}

	reply, err := r.forwarder.ForwardWebhook(ctx, d)
	if err != nil {
		r.log.Error("Webhook relay to backend failed",
			"body_bytes", len(d.Body), "signed", d.Signature != "", "error", err)
		return WebhookReply{StatusCode: http.StatusBadGateway, Body: emptyObject}
	}

	if !json.Valid(reply.Body) {
		r.log.Warn("Backend webhook reply is not JSON, replying with empty object",
			"status", reply.StatusCode, "body_bytes", len(reply.Body))
		return WebhookReply{StatusCode: reply.StatusCode, Body: emptyObject}
	}

	r.log.Info("Webhook relayed", "status", reply.StatusCode, "body_bytes", len(d.Body))
	return WebhookReply{StatusCode: reply.StatusCode, Body: reply.Body}
}
