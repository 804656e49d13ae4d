package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/httprate"
	"github.com/stockpile/backend/internal/interfaces/http/dto"
)

// RateLimit limits each client IP to requests per window using httprate.
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := httprate.NewRateLimiter(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusTooManyRequests, dto.NewErrorResponse(
				dto.ErrCodeRateLimited,
				"Too many requests, please try again later",
				w.Header().Get(RequestIDHeader),
			))
		}),
	)

	return func(c *gin.Context) {
		passed := false
		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})
		limiter.Handler(next).ServeHTTP(c.Writer, c.Request)
		if !passed {
			c.Abort()
		}
	}
}
