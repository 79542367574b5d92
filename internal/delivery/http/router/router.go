// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"mingle/internal/delivery/http/middleware"
	"mingle/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ProfileHandler *handler.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	profileHandler *handler.ProfileHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		profileHandler: params.ProfileHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	authenticate := r.authMiddleware.Authenticate

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/token", r.authHandler.IssueTokenPair)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.GET("/me", r.authHandler.Me, authenticate)
	}

	// Account routes; reads are public, writes require the owner's token
	userGroup := api.Group("/users")
	{
		userGroup.GET("", r.userHandler.GetAll)
		userGroup.POST("", r.userHandler.Register)
		userGroup.GET("/:id", r.userHandler.GetSingle)
		userGroup.PUT("/:id", r.userHandler.Update, authenticate)
		userGroup.DELETE("/:id", r.userHandler.Delete, authenticate)
	}

	// Profile routes under the owning account
	profileGroup := userGroup.Group("/:id/profile")
	{
		profileGroup.GET("", r.profileHandler.Get)
		profileGroup.PUT("", r.profileHandler.Update, authenticate)
		profileGroup.POST("/like", r.profileHandler.Like, authenticate)
		profileGroup.POST("/unlike", r.profileHandler.Unlike, authenticate)
		profileGroup.GET("/fans", r.profileHandler.Fans)
		profileGroup.GET("/favorites", r.profileHandler.Favorites)
		profileGroup.GET("/qr", r.profileHandler.ShareQR)
	}
}
