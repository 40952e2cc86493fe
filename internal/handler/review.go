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

// ReviewHandler serves customer review CRUD.
type ReviewHandler struct {
	Reviews      *repository.ReviewRepo
	Reservations *repository.ReservationRepo
}

func NewReviewHandler(v *repository.ReviewRepo, r *repository.ReservationRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: v, Reservations: r}
}

type reviewReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Create writes a review against one of the caller's completed
// reservations. A reservation that is not Completed behaves as if it
// does not exist. If the reservation already has a review the response
// points at it so the client can switch to an update.
func (h *ReviewHandler) Create(c echo.Context) error {
	accountID, ok := currentAccountID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	reservationID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Comment = strings.TrimSpace(req.Comment)
	if !model.ValidRating(req.Rating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetOwned(ctx, reservationID, accountID)
	if err != nil {
		switch err {
		case sql.ErrNoRows:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if res.Status != model.ReservationCompleted {
		// Reviews only exist for completed sessions.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}

	if existing, err := h.Reviews.IDByReservation(ctx, reservationID); err == nil {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":     "review already exists",
			"review_id": existing,
		})
	} else if err != sql.ErrNoRows {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "review lookup failed"})
	}

	id, err := h.Reviews.Create(ctx, reservationID, accountID, req.Rating, req.Comment)
	if err != nil {
		if err == repository.ErrConflict {
			return c.JSON(http.StatusConflict, echo.Map{"error": "review already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create review failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"id":             id,
		"reservation_id": reservationID,
		"rating":         req.Rating,
		"comment":        req.Comment,
	})
}

// Update replaces the rating and comment of the caller's review.
func (h *ReviewHandler) Update(c echo.Context) error {
	accountID, ok := currentAccountID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	var req reviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !model.ValidRating(req.Rating) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "rating must be between 1 and 5"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load review failed"})
	}
	if rv.AccountID == nil || *rv.AccountID != accountID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Reviews.Update(ctx, id, req.Rating, strings.TrimSpace(req.Comment)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update review failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "rating": req.Rating, "comment": strings.TrimSpace(req.Comment)})
}

// Delete removes the caller's review.
func (h *ReviewHandler) Delete(c echo.Context) error {
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

	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load review failed"})
	}
	if rv.AccountID == nil || *rv.AccountID != accountID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Reviews.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete review failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
