package router

import (
	"github.com/labstack/echo/v4"

	"github.com/minjae/escape-room-booking/internal/handler"
	"github.com/minjae/escape-room-booking/internal/middleware"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All
// routes require a valid JWT.  Staff accounts may also book and review;
// ownership checks inside the handlers keep everyone out of each other's
// reservations, so no role gate is applied here.
func RegisterCustomer(e *echo.Echo, r *handler.ReservationHandler, v *handler.ReviewHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
	)
	// Booking a theme slot.  Theme browsing itself is registered on the
	// public router so guests can window-shop before signing up.
	g.POST("/themes/:id/reservations", r.Create)
	// Reservation detail and cancellation for the owning account.
	g.GET("/reservations/:id", r.Get)
	g.POST("/reservations/:id/cancel", r.Cancel)
	// My-page aggregates the account's reservations and reviews.
	g.GET("/my-page", r.MyPage)

	// Review lifecycle.  Creation hangs off the reservation; update and
	// delete address the review directly.
	g.POST("/reservations/:id/review", v.Create)
	g.PUT("/reviews/:id", v.Update)
	g.DELETE("/reviews/:id", v.Delete)
}
