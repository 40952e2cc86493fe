package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func newTestContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCurrentAccountID(t *testing.T) {
	cases := []struct {
		name  string
		value interface{}
		want  uint64
		ok    bool
	}{
		{"float64 from jwt claims", float64(7), 7, true},
		{"uint64", uint64(9), 9, true},
		{"int", 3, 3, true},
		{"numeric string", "12", 12, true},
		{"negative", -1, 0, false},
		{"garbage string", "abc", 0, false},
		{"missing", nil, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestContext()
			if tc.value != nil {
				c.Set("user_id", tc.value)
			}
			got, ok := currentAccountID(c)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCurrentRole(t *testing.T) {
	c := newTestContext()
	assert.Equal(t, "", currentRole(c))
	c.Set("role", "BranchManager")
	assert.Equal(t, "BranchManager", currentRole(c))
}
