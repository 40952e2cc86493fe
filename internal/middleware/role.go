package middleware // middleware provides shared request processing for handlers

import (
    "net/http" // http package defines standard HTTP status codes
    "github.com/labstack/echo/v4" // echo provides middleware chaining and context

    "github.com/minjae/escape-room-booking/internal/model" // role capability lookup
)

// RequireCapability enforces that the authenticated account's role grants
// the given capability.  Routes gated this way keep working unchanged
// when a new staff role is introduced: only the capability table in the
// model package needs to know about it.  It assumes JWTAuth has stored
// the role string in the context.
func RequireCapability(cap model.Capability) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get("role").(string)
            if !ok || !model.HasCapability(role, cap) {
                return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
            }
            return next(c)
        }
    }
}