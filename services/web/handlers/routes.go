// services/web/handlers/routes.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/datatrans-payment-demo/internal/payment"
	m "github.com/example/datatrans-payment-demo/pkg/metrics"
)

// Routes registers every user, provider and operator route on r.
func Routes(r *mux.Router, d Deps) {
	chain := []mux.MiddlewareFunc{m.Middleware(ServiceName), RequestLogger(d), Recover(d)}
	r.Use(chain...)

	// metrics & health
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", Health()).Methods(http.MethodGet)

	// pages
	r.HandleFunc("/", Dashboard(d)).Methods(http.MethodGet)
	r.HandleFunc("/refresh", Refresh(d)).Methods(http.MethodPost)
	r.HandleFunc("/payment/init", Initiate(d)).Methods(http.MethodPost)
	r.HandleFunc("/payment/success", Outcome(d, payment.KindSuccess)).Methods(http.MethodGet)
	r.HandleFunc("/payment/cancel", Outcome(d, payment.KindCancel)).Methods(http.MethodGet)
	r.HandleFunc("/payment/error", Outcome(d, payment.KindError)).Methods(http.MethodGet)
	r.HandleFunc("/payments/{transactionId}", PaymentDetail(d)).Methods(http.MethodGet)

	// API
	r.HandleFunc("/api/payments/webhook", Webhook(d)).Methods(http.MethodPost)
	r.HandleFunc("/api/payments", ListPaymentsAPI(d)).Methods(http.MethodGet)
	r.HandleFunc("/api/payments/{transactionId}", GetPaymentAPI(d)).Methods(http.MethodGet)

	// mux serves these outside the r.Use chain
	r.NotFoundHandler = wrap(NotFound(d), chain)
	r.MethodNotAllowedHandler = wrap(MethodNotAllowed(d), chain)
}

func wrap(h http.Handler, chain []mux.MiddlewareFunc) http.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}
