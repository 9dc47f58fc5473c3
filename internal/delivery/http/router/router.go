// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"crmdash/internal/delivery/http/middleware"
	"crmdash/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	SessionHandler   *handler.SessionHandler
	DashboardHandler *handler.DashboardHandler
	RecordHandler    *handler.RecordHandler
	RequestID        *middleware.RequestIDMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	sessionHandler   *handler.SessionHandler
	dashboardHandler *handler.DashboardHandler
	recordHandler    *handler.RecordHandler
	requestID        *middleware.RequestIDMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		sessionHandler:   params.SessionHandler,
		dashboardHandler: params.DashboardHandler,
		recordHandler:    params.RecordHandler,
		requestID:        params.RequestID,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.Use(r.requestID.Process)

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Browser-facing OAuth endpoints
	authGroup := e.Group("/auth")
	{
		authGroup.GET("/login", r.sessionHandler.Login)
		authGroup.GET("/callback", r.sessionHandler.Callback)
	}

	apiGroup := e.Group("/api")
	{
		apiGroup.GET("/session", r.sessionHandler.GetSession)
		apiGroup.POST("/session", r.sessionHandler.ResumeSession)
		apiGroup.DELETE("/session", r.sessionHandler.Logout)

		apiGroup.GET("/dashboard", r.dashboardHandler.GetDashboard)
		apiGroup.GET("/opportunities/monthly", r.dashboardHandler.GetMonthlyVolume)

		apiGroup.GET("/records/:type/:id", r.recordHandler.GetRecord)
		apiGroup.POST("/records/:type", r.recordHandler.CreateRecord)
		apiGroup.PATCH("/records/:type/:id", r.recordHandler.UpdateRecord)
		apiGroup.DELETE("/records/:type/:id", r.recordHandler.DeleteRecord)
	}
}
