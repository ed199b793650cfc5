package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	keyFunc := func(c *gin.Context) string { return "rate-limit-test-shared" }
	router.POST("/subscribe", RateLimitMiddleware(rate.Every(time.Minute), 5, keyFunc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	// The bucket holds 5 tokens; the sixth request inside the window is
	// turned away.
	for i := 1; i <= 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "request %d should pass", i)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")
}

func TestSubscribeRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	keyFunc := func(c *gin.Context) string { return c.ClientIP() }
	router.POST("/subscribe", SubscribeRateLimit(keyFunc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	// Five signups per minute per IP; with a refill of one token per
	// minute, the sixth request anywhere inside the window is rejected.
	for i := 1; i <= 5; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "signup %d should pass", i)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitRoutesDoNotShareBuckets(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Login and subscribe both key by caller IP but carry different
	// limits. Touching one route first must not hand its roomier bucket
	// to the other.
	router := gin.New()
	keyFunc := func(c *gin.Context) string { return c.ClientIP() }
	ok := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"message": "ok"}) }
	router.POST("/login", RateLimitMiddleware(rate.Every(6*time.Second), 10, keyFunc), ok)
	router.POST("/subscribe", SubscribeRateLimit(keyFunc), ok)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	codes := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/subscribe", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{
		http.StatusOK, http.StatusOK, http.StatusOK, http.StatusOK, http.StatusOK,
		http.StatusTooManyRequests,
	}, codes)
}

func TestRateLimitSeparateKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	keyFunc := func(c *gin.Context) string { return c.GetHeader("X-Test-Key") }
	router.POST("/subscribe", RateLimitMiddleware(rate.Every(time.Minute), 1, keyFunc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	// Exhaust the first caller's bucket.
	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
		req.Header.Set("X-Test-Key", "caller-a")
		router.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "caller-a request %d", i+1)
	}

	// A different caller still gets through.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/subscribe", nil)
	req.Header.Set("X-Test-Key", "caller-b")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
