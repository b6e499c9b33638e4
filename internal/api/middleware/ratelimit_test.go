package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newLimitedRouter(rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	limiter := NewRateLimiter(rps, burst)
	router.GET("/ping", limiter.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func get(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	router := newLimitedRouter(1, 3)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(router, "10.0.0.1:1234").Code, "request %d", i+1)
	}
}

func TestRateLimiterRejectsOverBurst(t *testing.T) {
	router := newLimitedRouter(0.001, 1)

	assert.Equal(t, http.StatusOK, get(router, "10.0.0.1:1234").Code)
	w := get(router, "10.0.0.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")
}

func TestRateLimiterIsPerClient(t *testing.T) {
	router := newLimitedRouter(0.001, 1)

	assert.Equal(t, http.StatusOK, get(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, get(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, get(router, "10.0.0.2:1234").Code,
		"a throttled client must not affect others")
}
