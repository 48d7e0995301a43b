package middleware

import (
	"net/http"
	"sync"
	"time"

	errs "github.com/amirhossein-jamali/venue-reservation/internal/domain/error"
	"github.com/amirhossein-jamali/venue-reservation/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit caps requests per client IP
type RateLimit struct {
	RequestsPerMinute float64
	Burst             int
	IdleTTL           time.Duration // Forget clients idle this long
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keeps one token bucket per client IP
type RateLimiter struct {
	limit    RateLimit
	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

// NewRateLimiter creates a per-client limiter
func NewRateLimiter(limit RateLimit) *RateLimiter {
	if limit.IdleTTL <= 0 {
		limit.IdleTTL = 10 * time.Minute
	}
	return &RateLimiter{
		limit:    limit,
		visitors: make(map[string]*visitor),
		now:      time.Now,
	}
}

// Middleware rejects requests over the limit with 429
func (r *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !r.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse(
				errs.ErrorCode(errs.ErrInvalidRequest),
				http.StatusText(http.StatusTooManyRequests),
			))
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) allow(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	v, ok := r.visitors[id]
	if !ok {
		perSecond := r.limit.RequestsPerMinute / 60.0
		if perSecond <= 0 {
			perSecond = 1
		}
		burst := r.limit.Burst
		if burst <= 0 {
			burst = 1
		}
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(perSecond), burst), lastSeen: now}
		r.visitors[id] = v
		r.evictIdle(now)
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// evictIdle drops visitors not seen within IdleTTL; called with mu held
func (r *RateLimiter) evictIdle(now time.Time) {
	for id, v := range r.visitors {
		if now.Sub(v.lastSeen) > r.limit.IdleTTL {
			delete(r.visitors, id)
		}
	}
}
