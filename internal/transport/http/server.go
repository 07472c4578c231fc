// Package http provides the HTTP server for the travel agent.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/voyago/tripagent/internal/service"
	v1 "github.com/voyago/tripagent/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server. It exposes the chat API
// and the conversation read endpoints.
func NewServer(svc *service.Service) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc)
	v1Handler.RegisterRoutes(e)

	return e
}
