// Package http provides the HTTP server implementation for the chat backend.
package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/xiaot623/adgenie/internal/config"
	"github.com/xiaot623/adgenie/internal/service"
	v1 "github.com/xiaot623/adgenie/internal/transport/http/v1"
)

// BodyLimit caps request bodies.
const BodyLimit = "64K"

// NewServer creates and configures the public HTTP server.
func NewServer(svc *service.Service, cfg *config.Config, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(contextLogger(logger))
	e.Use(requestLogger())
	e.Use(requestMetrics())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(BodyLimit))
	e.Use(middleware.CORSWithConfig(corsConfig(cfg.CORSOrigin)))

	// Handlers
	v1Handler := v1.NewHandler(svc)

	// Register Routes
	v1Handler.RegisterRoutes(e)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

// corsConfig allows exactly one origin, with credentials.
func corsConfig(origin string) middleware.CORSConfig {
	return middleware.CORSConfig{
		AllowOrigins: []string{origin},
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete, http.MethodOptions,
		},
		AllowCredentials: true,
	}
}
