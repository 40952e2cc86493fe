package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/minjae/escape-room-booking/internal/repository"
)

func recordedStatus(t *testing.T, fn func(echo.Context) error) int {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	assert.NoError(t, fn(e.NewContext(req, rec)))
	return rec.Code
}

// A theme under maintenance must book exactly like a missing theme: 404,
// never a 409 that would reveal it exists.
func TestBookableThemeErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"missing theme", sql.ErrNoRows, http.StatusNotFound},
		{"under maintenance", repository.ErrConflict, http.StatusNotFound},
		{"database failure", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := recordedStatus(t, func(c echo.Context) error {
				return bookableThemeError(c, tc.err)
			})
			assert.Equal(t, tc.want, got)
		})
	}
}
