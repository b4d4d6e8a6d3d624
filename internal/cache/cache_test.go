package cache

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type countingMetrics struct {
	hits   int64
	misses int64
}

func (m *countingMetrics) IncrementCacheHit()  { atomic.AddInt64(&m.hits, 1) }
func (m *countingMetrics) IncrementCacheMiss() { atomic.AddInt64(&m.misses, 1) }

func TestCacheSetGet(t *testing.T) {
	c := NewCache(time.Minute)

	key := c.generateKey("payload")
	_, found := c.Get(key)
	assert.False(t, found)

	c.Set(key, []byte("response"))
	data, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, []byte("response"), data)
	assert.Equal(t, 1, c.Size())
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)

	c.Set("k", []byte("v"))
	time.Sleep(30 * time.Millisecond)

	_, found := c.Get("k")
	assert.False(t, found)
}

func TestCacheClear(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))

	c.Clear()
	assert.Equal(t, 0, c.Size())
}

func TestCacheStats(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("a", []byte("1"))

	stats := c.Stats()
	assert.Equal(t, 1, stats["total_items"])
	assert.Equal(t, 60.0, stats["ttl_seconds"])
}

func TestMiddlewareServesRepeatedEvaluations(t *testing.T) {
	c := NewCache(time.Minute)
	metrics := &countingMetrics{}

	var handlerCalls int64
	r := gin.New()
	r.Use(c.Middleware(metrics))
	r.POST("/evaluate", func(ctx *gin.Context) {
		atomic.AddInt64(&handlerCalls, 1)
		ctx.JSON(http.StatusOK, gin.H{"ml_score": 61.5})
	})

	body := []byte(`{"project_type":"Solar"}`)

	first := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/evaluate", bytes.NewReader(body))
	r.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	req = httptest.NewRequest("POST", "/evaluate", bytes.NewReader(body))
	r.ServeHTTP(second, req)
	require.Equal(t, http.StatusOK, second.Code)

	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, int64(1), atomic.LoadInt64(&handlerCalls), "second request served from cache")
	assert.Equal(t, int64(1), atomic.LoadInt64(&metrics.hits))
	assert.Equal(t, int64(1), atomic.LoadInt64(&metrics.misses))
}

func TestMiddlewareIgnoresOtherRoutes(t *testing.T) {
	c := NewCache(time.Minute)
	metrics := &countingMetrics{}

	r := gin.New()
	r.Use(c.Middleware(metrics))
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, int64(0), atomic.LoadInt64(&metrics.hits))
	assert.Equal(t, int64(0), atomic.LoadInt64(&metrics.misses))
	assert.Equal(t, 0, c.Size())
}
