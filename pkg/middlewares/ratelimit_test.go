package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newLimitedRouter(t *testing.T, perMinute int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	limiter := NewRateLimiter(client, zap.NewNop())

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitMiddleware(limiter, "login", perMinute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, mr
}

func doPost(r *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitBlocksOverLimit(t *testing.T) {
	r, _ := newLimitedRouter(t, 3)

	for i := 0; i < 3; i++ {
		require.Equal(t, http.StatusOK, doPost(r))
	}
	assert.Equal(t, http.StatusTooManyRequests, doPost(r))
}

func TestRateLimitFailOpenOnRedisDown(t *testing.T) {
	r, mr := newLimitedRouter(t, 1)
	mr.Close()

	// Redis 挂掉时放行
	assert.Equal(t, http.StatusOK, doPost(r))
	assert.Equal(t, http.StatusOK, doPost(r))
}

func TestRateLimitDisabledWithoutLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", RateLimitMiddleware(nil, "login", 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	assert.Equal(t, http.StatusOK, doPost(r))
	assert.Equal(t, http.StatusOK, doPost(r))
}
