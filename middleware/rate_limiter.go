package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"spritz/config"
	"spritz/utils"
)

// ipLimiters hands out one token bucket per client IP. Entries live for the
// process lifetime; the per-IP footprint is a single limiter struct.
type ipLimiters struct {
	mu   sync.Mutex
	byIP map[string]*rate.Limiter
}

var limiters = &ipLimiters{byIP: make(map[string]*rate.Limiter)}

func (l *ipLimiters) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lim, ok := l.byIP[ip]; ok {
		return lim
	}
	perMin := config.AppConfig.MaxRequestsPerMin
	if perMin <= 0 {
		perMin = 100
	}
	lim := rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin)
	l.byIP[ip] = lim
	return lim
}

// RateLimitMiddleware rejects clients that exceed the configured per-IP
// request rate (MAX_REQUESTS_PER_MIN) with 429.
func RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := clientIP(c)
		if !limiters.get(ip).Allow() {
			utils.GetLogger().Warn("rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Try again later."})
			return
		}
		c.Next()
	}
}

// clientIP resolves the originating address, preferring proxy headers over
// the socket peer. X-Forwarded-For may carry a chain; the first hop is the
// client.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0]); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-IP")); xri != "" {
		return xri
	}
	if host, _, err := net.SplitHostPort(c.Request.RemoteAddr); err == nil {
		return host
	}
	return c.Request.RemoteAddr
}
