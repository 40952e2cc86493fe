package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/minjae/escape-room-booking/internal/model"
	"github.com/minjae/escape-room-booking/internal/queue"
	"github.com/minjae/escape-room-booking/internal/repository"
	queuepub "github.com/minjae/escape-room-booking/internal/service"
)

// ReservationHandler serves the customer booking surface: create, view,
// cancel and my-page.
type ReservationHandler struct {
	Reservations *repository.ReservationRepo
	Themes       *repository.ThemeRepo
	Branches     *repository.BranchRepo
	Payments     *repository.PaymentRepo
	Reviews      *repository.ReviewRepo
}

func NewReservationHandler(r *repository.ReservationRepo, t *repository.ThemeRepo, b *repository.BranchRepo, p *repository.PaymentRepo, v *repository.ReviewRepo) *ReservationHandler {
	return &ReservationHandler{Reservations: r, Themes: t, Branches: b, Payments: p, Reviews: v}
}

type createReservationReq struct {
	SlotTime     string `json:"slot_time"` // RFC3339
	Participants int    `json:"participants"`
}

// bookableThemeError maps a failed booking-time theme lookup. A theme
// under maintenance is hidden exactly like a missing one: customers get
// no signal that the theme exists but cannot be booked.
func bookableThemeError(c echo.Context, err error) error {
	switch err {
	case sql.ErrNoRows, repository.ErrConflict:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "theme not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load theme failed"})
}

// Create books a theme slot. The whole flow runs in one transaction:
// load the theme (must be active and Ready), reject past slots, lock and
// check the (theme, slot) pair, insert the reservation priced at
// price × participants, and insert the Paid virtual-card payment. The
// confirmation event is published after commit; a broker outage never
// fails a booking.
func (h *ReservationHandler) Create(c echo.Context) error {
	accountID, ok := currentAccountID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	themeID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	slot, err := time.Parse(time.RFC3339, req.SlotTime)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot_time must be RFC3339"})
	}
	slot = slot.UTC()
	if req.Participants < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "participants must be at least 1"})
	}
	if model.SlotInPast(slot, time.Now().UTC()) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "slot is in the past"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	theme, err := h.Themes.GetBookableTx(ctx, tx, themeID)
	if err != nil {
		return bookableThemeError(c, err)
	}

	if err := h.Reservations.EnsureSlotFreeTx(ctx, tx, themeID, slot); err != nil {
		if err == repository.ErrSlotTaken {
			return c.JSON(http.StatusConflict, echo.Map{"error": "slot already reserved"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "slot check failed"})
	}

	rec := repository.ReservationRecord{
		AccountID:    accountID,
		ThemeID:      themeID,
		SlotTime:     slot,
		Participants: req.Participants,
		TotalPrice:   model.TotalPrice(theme.Price, req.Participants),
		Status:       model.ReservationConfirmed,
	}
	if err := h.Reservations.CreateTx(ctx, tx, &rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	if err := h.Payments.CreateTx(ctx, tx, rec.ID, rec.TotalPrice); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create payment failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	branchName := ""
	if b, err := h.Branches.GetByID(ctx, theme.BranchID); err == nil {
		branchName = b.Name
	}
	go func(ev queue.ReservationConfirmedEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer pubCancel()
		_ = queuepub.PublishReservationConfirmed(pubCtx, ev)
	}(queue.ReservationConfirmedEvent{
		ReservationID: rec.ID,
		AccountID:     accountID,
		ThemeID:       theme.ID,
		ThemeName:     theme.Name,
		BranchID:      theme.BranchID,
		BranchName:    branchName,
		SlotTime:      slot.Format(time.RFC3339),
		Participants:  rec.Participants,
		TotalPrice:    rec.TotalPrice,
		ConfirmedAt:   time.Now().UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_id": rec.ID,
		"theme_id":       theme.ID,
		"slot_time":      slot.Format(time.RFC3339),
		"participants":   rec.Participants,
		"total_price":    rec.TotalPrice,
		"status":         rec.Status,
	})
}

// Get returns one of the caller's reservations with its payment.
func (h *ReservationHandler) Get(c echo.Context) error {
	accountID, ok := currentAccountID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetOwned(ctx, id, accountID)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}

	body := echo.Map{
		"id":             res.ID,
		"theme_id":       res.ThemeID,
		"slot_time":      res.SlotTime.UTC().Format(time.RFC3339),
		"participants":   res.Participants,
		"total_price":    res.TotalPrice,
		"status":         res.Status,
		"hint_count":     res.HintCount,
		"is_success":     res.IsSuccess,
		"clear_time_sec": res.ClearTimeSec,
	}
	if p, err := h.Payments.GetByReservation(ctx, id); err == nil {
		body["payment"] = echo.Map{
			"method": p.Method,
			"amount": p.Amount,
			"status": p.Status,
		}
	}
	return c.JSON(http.StatusOK, body)
}

// Cancel moves the caller's reservation from Confirmed to Cancelled.
// Any other current status is a 409: checked-in and finished sessions
// stay on the books.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	accountID, ok := currentAccountID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Reservations.GetOwned(ctx, id, accountID); err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}

	ok, err = h.Reservations.UpdateStatusIf(ctx, id, model.ReservationConfirmed, model.ReservationCancelled)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	if !ok {
		return c.JSON(http.StatusConflict, echo.Map{"error": "only confirmed reservations can be cancelled"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "status": model.ReservationCancelled})
}

// MyPage returns the caller's reservations and reviews in one response.
func (h *ReservationHandler) MyPage(c echo.Context) error {
	accountID, ok := currentAccountID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	reservations, err := h.Reservations.ListByAccount(ctx, accountID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	reviews, err := h.Reviews.ListByAccount(ctx, accountID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reviews failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservations": reservations,
		"reviews":      reviews,
	})
}
