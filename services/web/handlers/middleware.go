// services/web/handlers/middleware.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	m "github.com/example/datatrans-payment-demo/pkg/metrics"
)

type ctxKey struct{}

const RequestIDHeader = "X-Request-ID"

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// RequestLogger tags every request with an id (reusing an inbound one) and
// logs it once it completes.
func RequestLogger(d Deps) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			r = r.WithContext(context.WithValue(r.Context(), ctxKey{}, id))

			start := time.Now()
			rec := m.NewStatusRecorder(w)
			next.ServeHTTP(rec, r)

			if r.URL.Path == "/metrics" || r.URL.Path == "/healthz" {
				return
			}
			d.Log.InfoContext(r.Context(), "Request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.Status,
				"duration", time.Since(start),
				"request_id", id,
			)
		})
	}
}

// Recover turns a panic into the generic error page.
func Recover(d Deps) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				d.Log.ErrorContext(r.Context(), "Handler panicked",
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", RequestID(r.Context()),
					"panic", fmt.Sprint(v),
					"stack", string(debug.Stack()),
				)
				d.oops(w, r, http.StatusInternalServerError)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
