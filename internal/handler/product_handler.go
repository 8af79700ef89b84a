package handler

import (
	"net/http"

	"gharplans/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /product/products の公開API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 公開商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/product/products", h.list)
	e.GET("/product/products/:id", h.detail)
}

func (h *ProductHandler) list(c echo.Context) error {
	page, valid := queryInt(c, "page", 1)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid page")
	}
	limit, valid := queryInt(c, "limit", 20)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid limit")
	}
	categoryID, valid := queryInt64Ptr(c, "categoryId")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid categoryId")
	}

	out, err := h.uc.ListPublicProducts(c.Request().Context(), usecase.ListProductsInput{
		Page:       page,
		Limit:      limit,
		CategoryID: categoryID,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Products fetched successfully.", out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, valid := parseIDParam(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	p, err := h.uc.GetProductDetail(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Product fetched successfully.", p)
}
