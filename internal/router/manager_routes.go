package router

import (
	"github.com/labstack/echo/v4"

	"github.com/minjae/escape-room-booking/internal/handler"
	"github.com/minjae/escape-room-booking/internal/middleware"
	"github.com/minjae/escape-room-booking/internal/model"
)

// RegisterManager registers the staff surface under /v1/manager.  Every
// route requires a valid JWT; on top of that each subgroup demands the
// capability its operations need, so a theme manager can run the floor
// but cannot touch pricing, and only admins publish notices.
func RegisterManager(e *echo.Echo, m *handler.ManagerHandler, jwtSecret string) {
	g := e.Group(
		"/v1/manager",
		middleware.JWTAuth(jwtSecret),
	)

	// Floor operations: any staff role.
	ops := g.Group("", middleware.RequireCapability(model.CapOperateThemes))
	ops.GET("/dashboard", m.Dashboard)
	ops.POST("/reservations/:id/checkin", m.CheckIn)
	ops.POST("/reservations/:id/complete", m.Complete)
	ops.POST("/reservations/:id/noshow", m.NoShow)
	ops.POST("/issues", m.CreateIssue)
	ops.PUT("/issues/:id/status", m.UpdateIssueStatus)
	ops.POST("/themes/:id/toggle-status", m.ToggleThemeStatus)

	// Branch administration: branch managers and admins.
	mgmt := g.Group("", middleware.RequireCapability(model.CapManageBranch))
	mgmt.GET("/stats", m.Stats)
	mgmt.POST("/schedules", m.CreateSchedule)
	mgmt.PUT("/themes/:id", m.UpdateTheme)

	// Venue-wide announcements: admins only.
	admin := g.Group("", middleware.RequireCapability(model.CapAdmin))
	admin.POST("/notices", m.CreateNotice)
}
