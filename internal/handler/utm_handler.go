package handler

import (
	"net/http"

	"gharplans/internal/usecase"
	"gharplans/internal/validator"

	"github.com/labstack/echo/v4"
)

type UTMHandler struct {
	uc *usecase.UTMUsecase
}

func NewUTMHandler(uc *usecase.UTMUsecase) *UTMHandler {
	return &UTMHandler{uc: uc}
}

type UTMCreateRequest struct {
	BaseURL    string `json:"baseUrl" validate:"required,url"`
	Source     string `json:"source" validate:"required,max=255"`
	Medium     string `json:"medium" validate:"required,max=255"`
	Campaign   string `json:"campaign" validate:"required,max=255"`
	CouponCode string `json:"couponCode" validate:"max=100"`
}

// UTMリンクは管理者だけ
func (h *UTMHandler) RegisterRoutes(e *echo.Echo, admin ...echo.MiddlewareFunc) {
	g := e.Group("/utm", admin...)

	g.POST("/create", h.create)
	g.GET("", h.list)
}

func (h *UTMHandler) create(c echo.Context) error {
	var req UTMCreateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, validator.Message(err))
	}

	link, err := h.uc.CreateLink(c.Request().Context(), usecase.CreateUTMInput{
		BaseURL:    req.BaseURL,
		Source:     req.Source,
		Medium:     req.Medium,
		Campaign:   req.Campaign,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "Link Generated Successfully", link)
}

func (h *UTMHandler) list(c echo.Context) error {
	id, valid := queryInt64Ptr(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	offset, valid := queryInt(c, "offset", 0)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid offset")
	}
	limit, valid := queryInt(c, "limit", 10)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid limit")
	}

	links, err := h.uc.ListLinks(c.Request().Context(), usecase.ListUTMInput{
		ID:         id,
		Source:     c.QueryParam("source"),
		CouponCode: c.QueryParam("couponCode"),
		Offset:     offset,
		Limit:      limit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Success", links)
}
