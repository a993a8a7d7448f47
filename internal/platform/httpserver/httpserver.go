// Package httpserver builds the http.Server used for the operational
// endpoints.
package httpserver

import (
	"net/http"
	"time"
)

// New returns a server with a bounded header read, the only tuning the ops
// surface needs.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
