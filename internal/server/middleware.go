package server

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smallbiznis/kursus/internal/pricing"
	"go.uber.org/zap"
)

const (
	HeaderRequestID    = "X-Request-ID"
	HeaderUserLocation = "X-User-Location"

	contextRequestIDKey = "request_id"
	queryLocation       = "location"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(contextRequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	log = log.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(contextRequestIDKey)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("request", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}

// RateLimit applies the per-client token bucket to API routes.
func (s *Server) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		res := s.limiter.Allow(c.Request.Context(), c.ClientIP())
		if res.Allowed {
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
		if res.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())+1))
		}
		AbortWithError(c, ErrTooManyRequests)
	}
}

// ResolveLocation resolves the caller's region and stashes the pricing
// profile on the request context. A blocklisted origin rejects the request;
// any other resolution failure falls back to the default profile.
func (s *Server) ResolveLocation() gin.HandlerFunc {
	return func(c *gin.Context) {
		explicit := strings.TrimSpace(c.Query(queryLocation))
		if explicit == "" {
			explicit = strings.TrimSpace(c.GetHeader(HeaderUserLocation))
		}

		region, profile, err := s.resolver.Resolve(c.Request.Context(), explicit, c.ClientIP())
		if err != nil {
			s.metrics.RegionDenied(c.FullPath())
			AbortWithError(c, err)
			return
		}
		s.metrics.RegionResolved(string(region))

		ctx := pricing.WithLocation(c.Request.Context(), pricing.Location{
			Region:  region,
			Profile: profile,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
