package handler

import (
	"net/http"

	"gharplans/internal/usecase"
	"gharplans/internal/validator"

	"github.com/labstack/echo/v4"
)

type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type CartItemRequest struct {
	UserID    int64 `json:"userId" validate:"required,gt=0"`
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int64 `json:"quantity" validate:"required,gte=1"`
}

type CartDeleteRequest struct {
	UserID    int64 `json:"userId" validate:"required,gt=0"`
	ProductID int64 `json:"productId" validate:"required,gt=0"`
}

// GET /cart のレスポンス（合計はdataの外）
type CartListResponse struct {
	Status         bool                       `json:"status"`
	Message        string                     `json:"message"`
	Data           []usecase.CartItemResponse `json:"data"`
	TotalCartValue string                     `json:"totalCartValue"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")

	g.POST("", h.add)
	g.GET("", h.list)
	g.PUT("", h.update)
	g.DELETE("", h.remove)
}

func (h *CartHandler) add(c echo.Context) error {
	var req CartItemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, validator.Message(err))
	}

	item, err := h.uc.AddItem(c.Request().Context(), usecase.CartItemInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusCreated, "Item added to cart", item)
}

func (h *CartHandler) list(c echo.Context) error {
	userID, valid := queryInt64Ptr(c, "userId")
	if !valid || userID == nil {
		return fail(c, http.StatusBadRequest, "userId is required")
	}

	out, err := h.uc.GetCart(c.Request().Context(), *userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, CartListResponse{
		Status:         true,
		Message:        "Cart Items",
		Data:           out.Items,
		TotalCartValue: out.TotalCartValue,
	})
}

func (h *CartHandler) update(c echo.Context) error {
	var req CartItemRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, validator.Message(err))
	}

	err := h.uc.UpdateItem(c.Request().Context(), usecase.CartItemInput{
		UserID:    req.UserID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Cart item updated", nil)
}

func (h *CartHandler) remove(c echo.Context) error {
	var req CartDeleteRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, validator.Message(err))
	}

	if err := h.uc.RemoveItem(c.Request().Context(), req.UserID, req.ProductID); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Item removed from cart", nil)
}
