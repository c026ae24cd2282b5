// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"pulseboard/internal/delivery/http/middleware"
	"pulseboard/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	e.POST("/register", r.authHandler.Register)
	e.POST("/login", r.authHandler.Login)
	e.POST("/oauth/google", r.authHandler.GoogleLogin)
	e.POST("/token/refresh", r.authHandler.RefreshToken)

	// Routes that require a valid access token
	authenticated := e.Group("")
	authenticated.Use(r.authMiddleware.Authenticate)
	{
		authenticated.GET("/me", r.profileHandler.GetProfile)
		authenticated.GET("/dashboard", r.profileHandler.GetDashboard)
	}
}
