package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Staff gates administrative routes: only users whose token carries the staff
// flag pass. Must run after Auth.
func Staff() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isStaff, _ := c.Get(CtxIsStaff).(bool)
			if !isStaff {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
