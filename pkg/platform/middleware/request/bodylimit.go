package request

import (
	"net/http"
)

// BodyLimit caps request bodies at maxBytes using http.MaxBytesReader.
// Readers past the limit get an *http.MaxBytesError; apply it before any decoding.
func BodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
