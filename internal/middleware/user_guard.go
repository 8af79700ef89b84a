package middleware

import (
	"errors"
	"net/http"

	"gharplans/internal/repository"

	"github.com/labstack/echo/v4"
)

// トークンの持ち主がまだ存在し、roleも発行時のままか見る。
// 削除や降格の後に残った古いトークンは401、DB障害は500
func ActiveUserGuard(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, _ := c.Get(CtxUserIDKey).(int64)
			role, _ := c.Get(CtxUserRoleKey).(string)
			if userID <= 0 || role == "" {
				return unauthorized(c)
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if errors.Is(err, repository.ErrNotFound) {
				return unauthorized(c)
			}
			if err != nil {
				c.Logger().Errorf("active user lookup failed: user_id=%d err=%v", userID, err)
				return c.JSON(http.StatusInternalServerError, errorResponse{Message: "Internal server error."})
			}
			if user == nil || string(user.Role) != role {
				return unauthorized(c)
			}
			return next(c)
		}
	}
}
