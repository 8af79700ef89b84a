package handler

import (
	"net/http"
	"strconv"

	"gharplans/internal/middleware"
	"gharplans/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 成功時の共通形
type SuccessResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

func ok(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, SuccessResponse{Status: true, Message: message, Data: data})
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, ErrorResponse{Status: false, Message: message})
}

// HTTPErrorはStatus/Messageだけ返す。原因はログにだけ出す
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			logCause(c, err)
		}
		return fail(c, he.Status, he.Message)
	}

	//500
	logCause(c, err)
	return fail(c, http.StatusInternalServerError, "Internal server error.")
}

func logCause(c echo.Context, err error) {
	c.Logger().Errorf("request_id=%s method=%s path=%s error=%v",
		c.Response().Header().Get(echo.HeaderXRequestID),
		c.Request().Method,
		c.Path(),
		err,
	)
}

// AuthJWTがcontextに入れたuser_id
func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get(middleware.CtxUserIDKey)
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

func parseIDParam(c echo.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// 空ならdef
func queryInt(c echo.Context, key string, def int) (int, bool) {
	v := c.QueryParam(key)
	if v == "" {
		return def, true
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

// 空ならnil
func queryInt64Ptr(c echo.Context, key string) (*int64, bool) {
	v := c.QueryParam(key)
	if v == "" {
		return nil, true
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, false
	}
	return &i, true
}
