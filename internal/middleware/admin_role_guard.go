package middleware

import (
	"gharplans/internal/domain/model"

	"github.com/labstack/echo/v4"
)

func AdminRoleGuard() echo.MiddlewareFunc {
	return RoleGuard(model.RoleAdmin)
}

// 許可したroleだけ通す。roleが無ければ401、違えば403
func RoleGuard(allowed ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(CtxUserRoleKey).(string)
			if role == "" {
				return unauthorized(c)
			}
			for _, r := range allowed {
				if model.Role(role) == r {
					return next(c)
				}
			}
			return forbidden(c)
		}
	}
}
