package httpserver

import (
	"net/http"
	"time"

	"fitclub-go/internal/config"
)

const (
	readHeaderTimeout = 5 * time.Second
	idleTimeout       = 2 * time.Minute
	// CSV exports are buffered and written at the end of the handler, so writes get a margin past the
	// router's request timeout.
	writeMargin = 5 * time.Second
)

// New builds the club API server. Uploads for member import are bounded by the handler,
// not by a read timeout.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      cfg.RequestTimeout + writeMargin,
		IdleTimeout:       idleTimeout,
	}
}
