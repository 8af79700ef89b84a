package handler

import (
	"errors"
	"net/http"

	auth "gharplans/internal/usecase/auth_usecase"
	"gharplans/internal/validator"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	registerUC *auth.RegisterUserUsecase // 会員登録usecase
	loginUC    *auth.LoginUsecase        // ログインusecase
}

// DIコンストラクタ
func NewAuthHandler(
	registerUC *auth.RegisterUserUsecase,
	loginUC *auth.LoginUsecase,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
	}
}

// /user/register のリクエストボディ。
type registerRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	ContactNo string `json:"contactNo" validate:"max=30"`
	Address   string `json:"address" validate:"max=255"`
	City      string `json:"city" validate:"max=100"`
}

// /user/login のリクエストボディ。
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/user/register", h.Register)
	e.POST("/user/login", h.Login)
}

// RegisterはPOST /user/registerのハンドラ
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, validator.Message(err))
	}

	out, err := h.registerUC.Execute(c.Request().Context(), auth.RegisterUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		ContactNo: req.ContactNo,
		Address:   req.Address,
		City:      req.City,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNameRequired), errors.Is(err, auth.ErrInvalidEmailFormat):
			return fail(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, auth.ErrPasswordTooShort):
			return fail(c, http.StatusBadRequest, "password must be at least 8 characters")
		case errors.Is(err, auth.ErrWeakPassword):
			return fail(c, http.StatusBadRequest, "password is too weak")
		case errors.Is(err, auth.ErrEmailAlreadyExists):
			return fail(c, http.StatusConflict, "email already exists")
		default:
			return writeError(c, err)
		}
	}

	return ok(c, http.StatusCreated, "User registered successfully.", out.User)
}

// LoginはPOST /user/login のハンドラ。
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, validator.Message(err))
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return fail(c, http.StatusUnauthorized, "invalid email or password")
		}
		return writeError(c, err)
	}

	return ok(c, http.StatusOK, "Login successful.", out)
}
