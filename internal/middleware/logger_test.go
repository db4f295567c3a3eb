package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newLoggedRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	r := gin.New()
	r.Use(Logger(zap.New(core)))
	return r, logs
}

func TestLoggerLevelFollowsStatus(t *testing.T) {
	r, logs := newLoggedRouter(t)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/missing", func(c *gin.Context) { c.String(http.StatusNotFound, "no") })
	r.GET("/boom", func(c *gin.Context) { c.String(http.StatusInternalServerError, "boom") })

	for _, path := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}

func TestLoggerSkipsSocketTransport(t *testing.T) {
	r, logs := newLoggedRouter(t)
	r.GET("/socket.io/*any", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/api/v1/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/socket.io/?EIO=4&transport=polling", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil))

	entries := logs.All()
	require.Len(t, entries, 1, "polling traffic stays out of the log")
	assert.Equal(t, "/api/v1/ping", entries[0].ContextMap()["path"])
}

func TestLoggerRecordsUserAndQuery(t *testing.T) {
	r, logs := newLoggedRouter(t)
	r.GET("/items", func(c *gin.Context) {
		c.Set(ContextKeyUserID, "u-42")
		c.String(http.StatusOK, "ok")
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items?region=mena", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/items?region=mena", fields["path"])
	assert.Equal(t, "u-42", fields["uid"])
}
