package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentAccountID extracts the authenticated account ID stored by the
// JWT middleware. The "sub" claim round-trips through JSON so it arrives
// as a float64; older tokens and tests may store it as an integer type,
// both are accepted.
func currentAccountID(c echo.Context) (uint64, bool) {
	switch v := c.Get("user_id").(type) {
	case float64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case uint64:
		return v, true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case string:
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// currentRole extracts the role claim stored by the JWT middleware.
func currentRole(c echo.Context) string {
	if r, ok := c.Get("role").(string); ok {
		return r
	}
	return ""
}

// pathID parses the :id route parameter as an unsigned integer.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
