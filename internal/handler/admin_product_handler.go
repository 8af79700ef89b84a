package handler

import (
	"encoding/json"
	"net/http"

	"gharplans/internal/usecase"
	"gharplans/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// 管理者用の商品API
type AdminProductHandler struct {
	uc *usecase.ProductUsecase
}

func NewAdminProductHandler(uc *usecase.ProductUsecase) *AdminProductHandler {
	return &AdminProductHandler{uc: uc}
}

type AdminProductRequest struct {
	CategoryID            int64            `json:"categoryId" validate:"required,gt=0"`
	Name                  string           `json:"name" validate:"required,max=255"`
	Price                 *decimal.Decimal `json:"price" validate:"required"`
	Image                 string           `json:"image" validate:"max=500"`
	Description           string           `json:"description"`
	ShortDescription      string           `json:"shortDescription"`
	AdditionalInformation string           `json:"additionalInformation"`
	Status                *bool            `json:"status"`
	Options               json.RawMessage  `json:"options"`
	Color                 string           `json:"color" validate:"max=100"`
}

// admin には AuthJWT + AdminRoleGuard を渡す。
// 公開GETと同じパスなのでGroupのUseは使わずルート単位で付ける
func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, admin ...echo.MiddlewareFunc) {
	e.POST("/product/products", h.create, admin...)
	e.PUT("/product/products/:id", h.update, admin...)
	e.DELETE("/product/products/:id", h.delete, admin...)
}

func (h *AdminProductHandler) create(c echo.Context) error {
	adminID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	in, msg := bindProduct(c)
	if msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	p, err := h.uc.AdminCreateProduct(c.Request().Context(), adminID, in)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "Product added successfully.", p)
}

func (h *AdminProductHandler) update(c echo.Context) error {
	adminID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, valid := parseIDParam(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	in, msg := bindProduct(c)
	if msg != "" {
		return fail(c, http.StatusBadRequest, msg)
	}

	if err := h.uc.AdminUpdateProduct(c.Request().Context(), adminID, id, in); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Product updated successfully.", nil)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	adminID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	id, valid := parseIDParam(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.uc.AdminDeleteProduct(c.Request().Context(), adminID, id); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Product deleted successfully.", nil)
}

// 失敗時は400で返すメッセージ
func bindProduct(c echo.Context) (usecase.AdminProductInput, string) {
	var req AdminProductRequest
	if err := c.Bind(&req); err != nil {
		return usecase.AdminProductInput{}, "invalid body"
	}
	if err := c.Validate(&req); err != nil {
		return usecase.AdminProductInput{}, validator.Message(err)
	}

	//省略時は公開
	status := true
	if req.Status != nil {
		status = *req.Status
	}

	return usecase.AdminProductInput{
		CategoryID:            req.CategoryID,
		Name:                  req.Name,
		Price:                 *req.Price,
		Image:                 req.Image,
		Description:           req.Description,
		ShortDescription:      req.ShortDescription,
		AdditionalInformation: req.AdditionalInformation,
		Status:                status,
		Options:               req.Options,
		Color:                 req.Color,
	}, ""
}
