package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitExemptsAuthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var dials int64
	rdb := redis.NewClient(&redis.Options{
		Addr: "127.0.0.1:0",
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			atomic.AddInt64(&dials, 1)
			return nil, errors.New("redis offline")
		},
	})

	r := gin.New()
	// Stand-in for OptionalAuth, which sets the user before the limiter
	// runs (see app route wiring).
	r.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set(ContextKeyUserID, "u-1")
		}
	})
	r.Use(RateLimit(rdb))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, atomic.LoadInt64(&dials), "authenticated requests never touch the limiter backend")

	// Anonymous requests consult Redis; a broken backend fails open.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Positive(t, atomic.LoadInt64(&dials))
}
