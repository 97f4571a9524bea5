package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hrms/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func idempotencyRouter(rdb *redis.Client, handled *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/leave/apply",
		func(c *gin.Context) { c.Set("user_id", "u-1") },
		middleware.Idempotency(rdb),
		func(c *gin.Context) {
			*handled++
			c.JSON(http.StatusCreated, gin.H{"success": true})
		},
	)
	return r
}

func TestIdempotency_NilRedisPassesThrough(t *testing.T) {
	var handled int
	r := idempotencyRouter(nil, &handled)

	req := httptest.NewRequest(http.MethodPost, "/leave/apply", nil)
	req.Header.Set("Idempotency-Key", "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 1, handled)
}

func TestIdempotency_ServesCachedResponse(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	var handled int
	r := idempotencyRouter(rdb, &handled)

	mock.ExpectGet("idemp:/leave/apply:u-1:req-1").SetVal(`{"id":"cached"}`)

	req := httptest.NewRequest(http.MethodPost, "/leave/apply", nil)
	req.Header.Set("Idempotency-Key", "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, handled)
	assert.Contains(t, w.Body.String(), "cached")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotency_InFlightRequestConflicts(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	var handled int
	r := idempotencyRouter(rdb, &handled)

	cacheKey := "idemp:/leave/apply:u-1:req-1"
	mock.ExpectGet(cacheKey).RedisNil()
	mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

	req := httptest.NewRequest(http.MethodPost, "/leave/apply", nil)
	req.Header.Set("Idempotency-Key", "req-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 0, handled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
