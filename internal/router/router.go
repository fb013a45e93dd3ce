package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/nattapong/restaurant-order-api/internal/auth"
	"github.com/nattapong/restaurant-order-api/internal/config"
	"github.com/nattapong/restaurant-order-api/internal/handler"
	"github.com/nattapong/restaurant-order-api/internal/middleware"
)

// RegisterHealth exposes the unauthenticated health check.
func RegisterHealth(e *echo.Echo, h *handler.HealthHandler) {
	e.GET("/ping", h.Ping)
}

// RegisterStaff wires the staff surface: open register/login plus
// Bearer-protected reads.  The rate limiter guards the credential
// endpoints against brute force.
func RegisterStaff(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, u *handler.UserHandler, limiter echo.MiddlewareFunc) {
	e.POST("/api/users", a.Register, limiter)
	e.POST("/api/login", a.Login, limiter)

	g := e.Group("/api")
	g.Use(middleware.SessionAuth(cfg.JWTSecret, middleware.FromAuthHeader()))
	g.Use(middleware.RequireRole(auth.RoleUser))
	g.GET("/users", u.List)
	g.GET("/users/:id", u.GetByID)
	g.PUT("/users/:id", u.Update)
	g.DELETE("/users/:id", u.Delete)
	g.GET("/me", a.Me)
	g.POST("/logout", a.Logout)
}

// RegisterCustomer wires the customer surface: open register/login plus
// cookie-protected session and order endpoints.
func RegisterCustomer(e *echo.Echo, cfg config.Config, a *handler.CustomerAuthHandler, o *handler.OrderHandler, limiter echo.MiddlewareFunc) {
	e.POST("/api/auth/register", a.Register, limiter)
	e.POST("/api/auth/login", a.Login, limiter)

	g := e.Group("/api")
	g.Use(middleware.SessionAuth(cfg.JWTSecret, middleware.FromCookie(cfg.CookieName)))
	g.Use(middleware.RequireRole(auth.RoleCustomer))
	g.POST("/auth/logout", a.Logout)
	g.GET("/auth/me", a.Me)
	g.POST("/orders", o.Place)
	g.GET("/orders", o.ListMine)
	g.GET("/orders/:id", o.GetByID)
}

// RegisterPublic wires the unauthenticated browse endpoints behind the
// response cache.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	e.GET("/api/restaurants", p.GetRestaurants, cache)
	e.GET("/api/restaurants/:id/menus", p.GetRestaurantMenus, cache)
	e.GET("/api/menus/:id", p.GetMenu, cache)
}
