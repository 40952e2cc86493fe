package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minjae/escape-room-booking/internal/model"
	"github.com/minjae/escape-room-booking/internal/repository"
)

// ManagerHandler serves the staff surface: the daily dashboard, session
// state changes, issue reports, schedules, theme administration, revenue
// stats and notices.
type ManagerHandler struct {
	Reservations *repository.ReservationRepo
	Themes       *repository.ThemeRepo
	Branches     *repository.BranchRepo
	Payments     *repository.PaymentRepo
	Issues       *repository.IssueRepo
	Schedules    *repository.ScheduleRepo
	Notices      *repository.NoticeRepo
	Assignments  *repository.AssignmentRepo
}

func NewManagerHandler(r *repository.ReservationRepo, t *repository.ThemeRepo, b *repository.BranchRepo,
	p *repository.PaymentRepo, i *repository.IssueRepo, s *repository.ScheduleRepo, n *repository.NoticeRepo,
	asg *repository.AssignmentRepo) *ManagerHandler {
	return &ManagerHandler{
		Reservations: r, Themes: t, Branches: b,
		Payments: p, Issues: i, Schedules: s, Notices: n,
		Assignments: asg,
	}
}

// Dashboard returns everything the floor needs for the day: today's
// reservations, a status breakdown, the five newest open issues and the
// full theme list with operational status. A ?date=YYYY-MM-DD param
// shows another day.
func (h *ManagerHandler) Dashboard(c echo.Context) error {
	day := time.Now().UTC()
	if d := c.QueryParam("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		day = parsed
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservations, err := h.Reservations.ListForRange(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	counts, err := h.Reservations.CountByStatus(ctx, from, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "count reservations failed"})
	}
	issues, err := h.Issues.ListOpen(ctx, 5)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list issues failed"})
	}
	themes, err := h.Themes.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list themes failed"})
	}

	themeRows := make([]echo.Map, 0, len(themes))
	for _, t := range themes {
		themeRows = append(themeRows, echo.Map{
			"id":        t.ID,
			"branch_id": t.BranchID,
			"name":      t.Name,
			"status":    t.Status,
			"is_active": t.IsActive,
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":          from.Format("2006-01-02"),
		"reservations":  reservations,
		"status_counts": counts,
		"open_issues":   issues,
		"themes":        themeRows,
	})
}

// Stats returns the branch-manager report: per-branch revenue for a
// month (?month=YYYY-MM, default current), the coming week's staff
// schedule and the monthly top-ten themes by completed sessions.
func (h *ManagerHandler) Stats(c echo.Context) error {
	now := time.Now().UTC()
	month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	if m := c.QueryParam("month"); m != "" {
		parsed, err := time.Parse("2006-01", m)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "month must be YYYY-MM"})
		}
		month = parsed
	}
	monthEnd := month.AddDate(0, 1, 0)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	revenue, err := h.Payments.MonthlyBranchRevenue(ctx, month, monthEnd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revenue query failed"})
	}
	weekStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	schedules, err := h.Schedules.ListBetween(ctx, weekStart, weekStart.AddDate(0, 0, 6))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "schedule query failed"})
	}
	topThemes, err := h.Themes.TopCompleted(ctx,
		month.Format("2006-01-02 15:04:05"), monthEnd.Format("2006-01-02 15:04:05"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "top themes query failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"month":          month.Format("2006-01"),
		"branch_revenue": revenue,
		"schedules":      schedules,
		"top_themes":     topThemes,
	})
}

// transition applies a Confirmed → to status change and maps the
// outcomes. CheckIn and NoShow share it.
func (h *ManagerHandler) transition(c echo.Context, to string) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Reservations.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}

	ok, err := h.Reservations.UpdateStatusIf(ctx, id, model.ReservationConfirmed, to)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is not confirmed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": to})
}

// CheckIn marks a confirmed reservation's party as arrived.
func (h *ManagerHandler) CheckIn(c echo.Context) error {
	return h.transition(c, model.ReservationCheckedIn)
}

// NoShow marks a confirmed reservation as a no-show.
func (h *ManagerHandler) NoShow(c echo.Context) error {
	return h.transition(c, model.ReservationNoShow)
}

type completeReq struct {
	HintCount    int  `json:"hint_count"`
	IsSuccess    bool `json:"is_success"`
	ClearTimeMin *int `json:"clear_time_min"`
}

// Complete records the session result and marks the reservation
// Completed. There is no status precondition; staff use this to fix up
// rows in any state, including previously cancelled ones.
func (h *ManagerHandler) Complete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req completeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.HintCount < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hint_count must not be negative"})
	}
	var clearSec *int
	if req.ClearTimeMin != nil {
		if *req.ClearTimeMin < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "clear_time_min must not be negative"})
		}
		v := model.ClearTimeSeconds(*req.ClearTimeMin)
		clearSec = &v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Reservations.GetByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}

	if err := h.Reservations.Complete(ctx, id, req.HintCount, req.IsSuccess, clearSec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "complete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":             id,
		"status":         model.ReservationCompleted,
		"hint_count":     req.HintCount,
		"is_success":     req.IsSuccess,
		"clear_time_sec": clearSec,
	})
}

type createIssueReq struct {
	ThemeID     uint64 `json:"theme_id"`
	Description string `json:"description"`
}

// CreateIssue files a facility problem report against a theme.
func (h *ManagerHandler) CreateIssue(c echo.Context) error {
	reporterID, ok := currentAccountID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createIssueReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.ThemeID == 0 || req.Description == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "theme_id and description are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Themes.GetByID(ctx, req.ThemeID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theme not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load theme failed"})
	}

	id, err := h.Issues.Create(ctx, req.ThemeID, reporterID, req.Description)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create issue failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":       id,
		"theme_id": req.ThemeID,
		"status":   model.IssueReported,
	})
}

type issueStatusReq struct {
	Status string `json:"status"`
}

// UpdateIssueStatus moves a report along Reported → InProgress →
// Resolved.
func (h *ManagerHandler) UpdateIssueStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req issueStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidIssueStatus(req.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Issues.UpdateStatus(ctx, id, req.Status); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "issue not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update issue failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": req.Status})
}

type createScheduleReq struct {
	AccountID       uint64  `json:"account_id"`
	BranchID        uint64  `json:"branch_id"`
	WorkDate        string  `json:"work_date"`  // YYYY-MM-DD
	StartTime       string  `json:"start_time"` // HH:MM:SS
	EndTime         string  `json:"end_time"`   // HH:MM:SS
	AssignedThemeID *uint64 `json:"assigned_theme_id"`
}

// CreateSchedule adds a staff shift. When no branch is given the shift
// lands at the first active branch.
func (h *ManagerHandler) CreateSchedule(c echo.Context) error {
	var req createScheduleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.AccountID == 0 || req.WorkDate == "" || req.StartTime == "" || req.EndTime == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "account_id, work_date, start_time and end_time are required"})
	}
	workDate, err := time.Parse("2006-01-02", req.WorkDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "work_date must be YYYY-MM-DD"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	branchID := req.BranchID
	if branchID == 0 {
		b, err := h.Branches.FirstActive(ctx)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "no active branch"})
		}
		branchID = b.ID
	} else if _, err := h.Branches.GetByID(ctx, branchID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "branch not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load branch failed"})
	}

	id, err := h.Schedules.Create(ctx, req.AccountID, branchID, workDate,
		req.StartTime, req.EndTime, req.AssignedThemeID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create schedule failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":        id,
		"branch_id": branchID,
		"work_date": workDate.Format("2006-01-02"),
	})
}

type updateThemeReq struct {
	Price        int64   `json:"price"`
	DiscountRate float64 `json:"discount_rate"`
	Status       string  `json:"status"`
	IsActive     bool    `json:"is_active"`
}

// UpdateTheme applies the branch-manager editable fields. Branch
// managers may only touch themes at branches they are assigned to;
// admins edit anything.
func (h *ManagerHandler) UpdateTheme(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateThemeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must not be negative"})
	}
	if req.DiscountRate < 0 || req.DiscountRate > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "discount_rate must be between 0 and 100"})
	}
	if req.Status != model.ThemeReady && req.Status != model.ThemeMaintenance {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be Ready or Maintenance"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	theme, err := h.Themes.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theme not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load theme failed"})
	}

	role := currentRole(c)
	assigned := false
	if role != model.RoleAdmin {
		accountID, ok := currentAccountID(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
		}
		assigned, err = h.Assignments.IsAssigned(ctx, accountID, theme.BranchID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "assignment lookup failed"})
		}
	}
	if !model.BranchScopeAllows(role, assigned) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not assigned to this branch"})
	}

	if err := h.Themes.Update(ctx, id, req.Price, req.DiscountRate, req.Status, req.IsActive); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update theme failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":            id,
		"price":         req.Price,
		"discount_rate": req.DiscountRate,
		"status":        req.Status,
		"is_active":     req.IsActive,
	})
}

// ToggleThemeStatus flips a theme between Ready and Maintenance, for the
// quick button on the dashboard.
func (h *ManagerHandler) ToggleThemeStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	next, err := h.Themes.ToggleStatus(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "theme not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "toggle failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": next})
}

type createNoticeReq struct {
	Title          string  `json:"title"`
	Content        string  `json:"content"`
	TargetBranchID *uint64 `json:"target_branch_id"`
}

// CreateNotice publishes an announcement. Admin only; a nil target
// branch means venue-wide.
func (h *ManagerHandler) CreateNotice(c echo.Context) error {
	accountID, ok := currentAccountID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createNoticeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if req.Title == "" || req.Content == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and content are required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.TargetBranchID != nil {
		if _, err := h.Branches.GetByID(ctx, *req.TargetBranchID); err != nil {
			if err == sql.ErrNoRows {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "branch not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load branch failed"})
		}
	}

	id, err := h.Notices.Create(ctx, accountID, req.Title, req.Content, req.TargetBranchID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create notice failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "title": req.Title})
}
