// services/web/router.go
package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/example/datatrans-payment-demo/services/web/handlers"
)

// newRouter wires the routes and wraps them in the CORS policy.
func newRouter(d handlers.Deps, allowedOrigins []string) http.Handler {
	r := mux.NewRouter()
	handlers.Routes(r, d)

	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", "Datatrans-Signature", handlers.RequestIDHeader},
		ExposedHeaders: []string{handlers.RequestIDHeader},
	}).Handler(r)
}
