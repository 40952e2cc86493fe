package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minjae/escape-room-booking/internal/repository"
)

// BrowseHandler serves the unauthenticated catalogue endpoints: theme
// listing and detail, branches and notices.
type BrowseHandler struct {
	Themes   *repository.ThemeRepo
	Branches *repository.BranchRepo
	Reviews  *repository.ReviewRepo
	Notices  *repository.NoticeRepo
}

func NewBrowseHandler(t *repository.ThemeRepo, b *repository.BranchRepo, v *repository.ReviewRepo, n *repository.NoticeRepo) *BrowseHandler {
	return &BrowseHandler{Themes: t, Branches: b, Reviews: v, Notices: n}
}

// ListThemes returns active, Ready themes with their review aggregates.
// Query params: search_query (name/genre substring), branch (id),
// sort (latest|rating|reviews).
func (h *BrowseHandler) ListThemes(c echo.Context) error {
	var f repository.ThemeFilter
	f.Search = c.QueryParam("search_query")
	f.Sort = c.QueryParam("sort")
	if b := c.QueryParam("branch"); b != "" {
		id, err := strconv.ParseUint(b, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid branch"})
		}
		f.BranchID = id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Themes.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list themes failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"themes": items})
}

// GetTheme returns one theme's full detail plus all of its reviews.
// Inactive themes 404 as if they never existed.
func (h *BrowseHandler) GetTheme(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	t, err := h.Themes.GetActive(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theme not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load theme failed"})
	}
	reviews, err := h.Reviews.ListByTheme(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reviews failed"})
	}
	branch, err := h.Branches.GetByID(ctx, t.BranchID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load branch failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"theme": echo.Map{
			"id":            t.ID,
			"branch_id":     t.BranchID,
			"branch_name":   branch.Name,
			"name":          t.Name,
			"genre":         t.Genre,
			"difficulty":    t.Difficulty,
			"duration_min":  t.DurationMin,
			"price":         t.Price,
			"discount_rate": t.DiscountRate,
			"description":   t.Description,
			"status":        t.Status,
		},
		"reviews": reviews,
	})
}

// ListBranches returns all active branches.
func (h *BrowseHandler) ListBranches(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	branches, err := h.Branches.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list branches failed"})
	}
	out := make([]echo.Map, 0, len(branches))
	for _, b := range branches {
		out = append(out, echo.Map{
			"id": b.ID, "name": b.Name, "location": b.Location, "phone": b.Phone,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"branches": out})
}

// ListNotices returns all published notices, newest first.
func (h *BrowseHandler) ListNotices(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	notices, err := h.Notices.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list notices failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"notices": notices})
}
