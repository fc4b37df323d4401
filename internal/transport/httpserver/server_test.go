package httpserver

import (
	"net/http"
	"testing"
	"time"

	"fitclub-go/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestNewServerTimeouts(t *testing.T) {
	srv := New(config.Config{HTTPPort: "9090", RequestTimeout: 30 * time.Second}, http.NotFoundHandler())

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, 5*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 35*time.Second, srv.WriteTimeout)
	assert.Equal(t, 2*time.Minute, srv.IdleTimeout)
}
