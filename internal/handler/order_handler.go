package handler

import (
	"encoding/json"
	"net/http"

	"gharplans/internal/usecase"
	"gharplans/internal/validator"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type OrderCreateRequest struct {
	UserID      int64            `json:"userId" validate:"required,gt=0"`
	ProductInfo json.RawMessage  `json:"productInfo" validate:"required"`
	TotalAmount *decimal.Decimal `json:"totalAmount" validate:"required"`
	PaymentType string           `json:"paymentType" validate:"required"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// GET /orders/:orderId のレスポンス
type OrderLookupResponse struct {
	Status    bool                      `json:"status"`
	OrderData usecase.OrderDetailOutput `json:"orderData"`
}

// 注文系は認証なし。ステータス変更だけ管理者
func (h *OrderHandler) RegisterRoutes(e *echo.Echo, admin ...echo.MiddlewareFunc) {
	g := e.Group("/orders")

	g.POST("", h.create)
	g.GET("/user/:userId", h.listByUser)
	g.GET("/:orderId", h.lookup)
	g.DELETE("/:orderId", h.cancel)
	g.PATCH("/:orderId/status", h.updateStatus, admin...)
	g.GET("/:orderId/history", h.history, admin...)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, validator.Message(err))
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		UserID:      req.UserID,
		ProductInfo: req.ProductInfo,
		TotalAmount: *req.TotalAmount,
		PaymentType: req.PaymentType,
	})
	if err != nil {
		return writeError(c, err)
	}

	return ok(c, http.StatusCreated, "Order added successfully and cart cleared.", out)
}

func (h *OrderHandler) lookup(c echo.Context) error {
	out, err := h.uc.LookupOrder(c.Request().Context(), c.Param("orderId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, OrderLookupResponse{Status: true, OrderData: out})
}

func (h *OrderHandler) cancel(c echo.Context) error {
	//認証なしなので操作者は0（ログイン済みならそのID）
	actorID, _ := getUserIDFromContext(c)

	if err := h.uc.CancelOrder(c.Request().Context(), actorID, c.Param("orderId")); err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Order deleted successfully.", nil)
}

func (h *OrderHandler) listByUser(c echo.Context) error {
	userID, valid := parseIDParam(c, "userId")
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid userId")
	}
	page, valid := queryInt(c, "page", 1)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid page")
	}
	limit, valid := queryInt(c, "limit", 20)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid limit")
	}

	out, err := h.uc.ListUserOrders(c.Request().Context(), userID, page, limit)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Orders fetched successfully.", out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	adminID, found := getUserIDFromContext(c)
	if !found {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req OrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(&req); err != nil {
		return fail(c, http.StatusBadRequest, validator.Message(err))
	}

	out, err := h.uc.UpdateOrderStatus(c.Request().Context(), adminID, c.Param("orderId"), req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Order status updated.", out)
}

func (h *OrderHandler) history(c echo.Context) error {
	limit, valid := queryInt(c, "limit", 50)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid limit")
	}
	offset, valid := queryInt(c, "offset", 0)
	if !valid {
		return fail(c, http.StatusBadRequest, "invalid offset")
	}

	logs, err := h.uc.OrderHistory(c.Request().Context(), c.Param("orderId"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return ok(c, http.StatusOK, "Order history fetched successfully.", logs)
}
