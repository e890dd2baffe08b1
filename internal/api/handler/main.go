package handler

import (
	"net/http"

	"arcade/internal/interfaces"
	"arcade/internal/services"

	"github.com/go-redis/redis_rate/v10"
	"github.com/google/uuid"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container    *do.Injector
	Mode         string
	Origins      []string
	SiteURL      string
	ThemeBaseURL string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	renderer, err := newTemplateRenderer()
	if err != nil {
		return nil, err
	}
	r.Renderer = renderer

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${id}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "🕹")
	})

	limiter, err := do.Invoke[interfaces.Limiter](cfg.Container)
	if err != nil {
		return nil, err
	}
	rateLimit := RateLimit(limiter, redis_rate.PerMinute(services.LISTING_RATE_LIMIT_PER_MINUTE))

	pages := groupCategory{
		container:    cfg.Container,
		siteURL:      cfg.SiteURL,
		themeBaseURL: cfg.ThemeBaseURL,
	}
	r.GET("/category/:slug", pages.Page, rateLimit)

	routesAPIv1 := r.Group("/api/v1")
	{
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.Origins,
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
			MaxAge:       60 * 60,
		})

		routesAPIv1.Use(cors)
		routesAPIv1.GET("", Hello)
		routesAPIv1.GET("/categories", pages.Categories)
		routesAPIv1.GET("/category/:slug/games", pages.Games, rateLimit)
	}

	return r, nil
}

func Hello(c echo.Context) error {
	return httpx.RestAbort(c, "hello world", nil)
}
