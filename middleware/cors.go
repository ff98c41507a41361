package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS allows browsers on the given origins to read the JSON API and the
// X-Data-Source header.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{"X-Data-Source", RequestIDHeader},
		MaxAge:         300,
	})
	return c.Handler
}
