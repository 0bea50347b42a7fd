package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/ulule/limiter/v3"
	limitermux "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/taskdesk/taskdesk/pkg/httpapi"
)

type RateLimitConfig struct {
	RequestsPerPeriod int
	Period            limiter.Rate
	Store             limiter.Store
}

func NewMemoryStore() limiter.Store {
	return memory.NewStore()
}

// RateLimit applies a global per-client rate limit.
func RateLimit(config RateLimitConfig) mux.MiddlewareFunc {
	rate := config.Period
	if rate.Limit == 0 {
		rate = limiter.Rate{
			Period: time.Second,
			Limit:  int64(config.RequestsPerPeriod),
		}
	}
	store := config.Store
	if store == nil {
		store = NewMemoryStore()
	}

	instance := limiter.New(store, rate)
	mw := limitermux.NewMiddleware(instance, limitermux.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
		_ = httpapi.WriteError(w, http.StatusInternalServerError, "RATE_LIMIT_INTERNAL", "rate limiter failure", nil)
	}), limitermux.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "too many requests", nil)
	}))

	return mw.Handler
}
