package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/minjae/escape-room-booking/internal/handler"    // import the handlers that implement business logic
	"github.com/minjae/escape-room-booking/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Route group under the /v1/auth prefix for operations that do not
	// require an existing session.  Each handler is responsible for
	// generating or exchanging tokens.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Refresh rotates the refresh token and returns a new pair.
	g.POST("/refresh", a.Refresh)
	// Logout does not require JWT authentication.  The handler accepts a
	// JSON body containing a `refresh_token` and invalidates that token.
	g.POST("/logout", a.Logout)
	// Password reset flow: request a token, check it, then set the new
	// password.  None of these require a session.
	g.POST("/password-reset/request", a.RequestPasswordReset)
	g.POST("/password-reset/validate", a.ValidatePasswordReset)
	g.POST("/password-reset/confirm", a.ConfirmPasswordReset)

	// Group for routes that require a valid access token.  All handlers
	// registered on this group execute the JWTAuth middleware first.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Register a GET endpoint at /v1/me that returns the authenticated
	// account's claims.  Any role may call it.
	auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints on the
// provided Echo instance.  The BrowseHandler returns sanitized catalogue
// data for themes, branches and notices.  These routes do not apply any
// JWT or role middleware and are intended for guest users.  Extra
// middleware (the Redis response cache) applies only here: catalogue
// responses are identical for everyone, authenticated surfaces are not.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	// Theme catalogue with search/filter/sort query params.
	g.GET("/themes", b.ListThemes)
	// Theme detail page with its reviews.
	g.GET("/themes/:id", b.GetTheme)
	// All active branches.
	g.GET("/branches", b.ListBranches)
	// Published notices, newest first.
	g.GET("/notices", b.ListNotices)
}
