package handler

import (
	"net/http"

	"gharplans/internal/usecase"
	"gharplans/internal/validator"

	"github.com/labstack/echo/v4"
)

type CategoryHandler struct {
	uc *usecase.CategoryUsecase
}

func NewCategoryHandler(uc *usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
	Image       string `json:"image" validate:"max=500"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo, admin ...echo.MiddlewareFunc) {
	e.GET("/category", h.list)
	e.GET("/category/:id", h.detail)
	e.POST("/category", h.create, admin...)
	e.PUT("/category/:id", h.update, admin...)
	e.DELETE("/category/:id", h.delete, admin...)
}

// ?id= があれば1件だけ返す
func (h *CategoryHandler) list(c echo.Context) error {
	id, valid := queryInt64Ptr(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	if id != nil {
		return h.get(c, *id)
	}

	items, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Categories fetched successfully.", items)
}

func (h *CategoryHandler) detail(c echo.Context) error {
	id, valid := parseIDParam(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}
	return h.get(c, id)
}

func (h *CategoryHandler) get(c echo.Context, id int64) error {
	cat, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Category fetched successfully.", cat)
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, validator.Message(err))
	}

	cat, err := h.uc.Create(c.Request().Context(), toCategoryInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "Category added successfully.", cat)
}

func (h *CategoryHandler) update(c echo.Context) error {
	id, valid := parseIDParam(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, validator.Message(err))
	}

	if err := h.uc.Update(c.Request().Context(), id, toCategoryInput(req)); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Category updated successfully.", nil)
}

func (h *CategoryHandler) delete(c echo.Context) error {
	id, valid := parseIDParam(c, "id")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid id")
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Category deleted successfully.", nil)
}

func toCategoryInput(req CategoryRequest) usecase.CategoryInput {
	return usecase.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Status:      req.Status,
	}
}
