package handler

import (
	"errors"
	"log"

	"arcade/internal/interfaces"
	"arcade/internal/pkg/limiter"
	"arcade/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
)

// RateLimit throttles per client IP. When the limiter itself fails the request goes through.
func RateLimit(l interfaces.Limiter, limit redis_rate.Limit) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := l.Allow(c.Request().Context(), services.LimitKeyListing(c.RealIP()), limit)
			if errors.Is(err, limiter.ErrRateLimited) {
				//nolint:errcheck
				httpx.Abort(c, errorx.Wrap(err, errorx.RateLimiting), -1)
				return nil
			}
			if err != nil {
				log.Printf("rate limit: %v\n", err)
			}

			return next(c)
		}
	}
}
