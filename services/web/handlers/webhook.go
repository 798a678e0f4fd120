// services/web/handlers/webhook.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/example/datatrans-payment-demo/internal/payment"
)

// Webhook relays provider notifications to the backend. The body is read
// raw and never parsed here.
func Webhook(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, d.WebhookMaxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				d.Log.WarnContext(r.Context(), "Webhook body too large", "limit", tooLarge.Limit)
				writeProblem(w, r, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("webhook body exceeds %d bytes", tooLarge.Limit))
				return
			}
			d.Log.WarnContext(r.Context(), "Webhook body unreadable", "error", err)
			writeProblem(w, r, http.StatusBadRequest, "webhook body could not be read")
			return
		}

		reply := d.Relay.Forward(r.Context(), payment.WebhookDelivery{
			Body:        body,
			ContentType: r.Header.Get("Content-Type"),
			Signature:   r.Header.Get(payment.SignatureHeader),
		})

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(reply.StatusCode)
		_, _ = w.Write(reply.Body)
	}
}
