package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS allows any origin to call the API with any header. Credentials are
// not allowed with the wildcard origin.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{TraceIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
