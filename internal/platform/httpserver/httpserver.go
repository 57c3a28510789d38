package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with the project's timeouts. Write timeout is
// left to the per-route Timeout middleware so uploads are not cut short.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
