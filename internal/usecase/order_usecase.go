package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"

	"github.com/shopspring/decimal"
)

// order_idが衝突したときに作り直す回数
const maxOrderIDAttempts = 3

// orders.total_amountはnumeric(12,2)
var maxOrderTotal = decimal.RequireFromString("9999999999.99")

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	users  repo.UserRepository
	audits repo.AuditLogRepository
	idGen  OrderIDGenerator
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	users repo.UserRepository,
	audits repo.AuditLogRepository,
	idGen OrderIDGenerator,
) *OrderUsecase {
	return &OrderUsecase{
		tx:     tx,
		orders: orders,
		users:  users,
		audits: audits,
		idGen:  idGen,
	}
}

type PlaceOrderInput struct {
	UserID      int64
	ProductInfo json.RawMessage
	TotalAmount decimal.Decimal
	PaymentType string
}

type OrderOutput struct {
	OrderID     string            `json:"orderId"`
	UserID      int64             `json:"userId"`
	ProductInfo json.RawMessage   `json:"productInfo"`
	TotalAmount string            `json:"totalAmount"`
	PaymentType model.PaymentType `json:"paymentType"`
	Status      model.OrderStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// 照会用。userIdは出さずに注文者の公開情報を付ける
type OrderDetailOutput struct {
	OrderID     string            `json:"orderId"`
	ProductInfo json.RawMessage   `json:"productInfo"`
	TotalAmount string            `json:"totalAmount"`
	PaymentType model.PaymentType `json:"paymentType"`
	Status      model.OrderStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	User        *model.OrderUser  `json:"user"`
}

type OrderListOutput struct {
	Items []OrderOutput `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// 注文を作成し、同じトランザクションでカートを空にする。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	if in.UserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "userId is required")
	}
	if !isSnapshot(in.ProductInfo) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "productInfo must be a non-empty JSON value")
	}
	if in.TotalAmount.IsNegative() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "totalAmount must be >= 0")
	}
	if in.TotalAmount.Round(2).GreaterThan(maxOrderTotal) {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "totalAmount must be <= "+maxOrderTotal.StringFixed(2))
	}
	paymentType := model.PaymentType(strings.ToLower(strings.TrimSpace(in.PaymentType)))
	if !paymentType.Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid paymentType")
	}

	//注文者の存在確認
	if _, err := u.users.FindByID(ctx, in.UserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return OrderOutput{}, NewHTTPError(http.StatusNotFound, "User not found.")
		}
		return OrderOutput{}, Internal(err)
	}

	//スナップショットはそのまま保存する（後から商品が変わっても注文は変わらない）
	snapshot := make(json.RawMessage, len(in.ProductInfo))
	copy(snapshot, in.ProductInfo)

	var lastErr error
	for attempt := 1; attempt <= maxOrderIDAttempts; attempt++ {
		orderID, err := u.idGen.NewOrderID()
		if err != nil {
			return OrderOutput{}, Internal(err)
		}

		var created model.Order
		err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
			o, err := r.Orders().Create(ctx, model.Order{
				OrderID:     orderID,
				UserID:      in.UserID,
				ProductInfo: snapshot,
				TotalAmount: in.TotalAmount.Round(2),
				PaymentType: paymentType,
				Status:      model.OrderStatusPending,
			})
			if err != nil {
				return err
			}

			//READ COMMITTEDなので、DELETE実行時点でコミット済みの明細は全部消える
			if _, err := r.CartItems().DeleteByUserID(ctx, in.UserID); err != nil {
				return fmt.Errorf("clear cart: %w", err)
			}

			created = o
			return nil
		})
		if err == nil {
			return toOrderOutput(created), nil
		}

		//order_idの衝突だけはIDを作り直してやり直す
		if !errors.Is(err, repo.ErrConflict) {
			return OrderOutput{}, Internal(fmt.Errorf("place order: %w", err))
		}
		lastErr = err
	}

	return OrderOutput{}, Internal(fmt.Errorf("order id collided %d times: %w", maxOrderIDAttempts, lastErr))
}

func (u *OrderUsecase) LookupOrder(ctx context.Context, orderID string) (OrderDetailOutput, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return OrderDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid orderId")
	}

	o, err := u.orders.FindWithUserByPublicID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return OrderDetailOutput{}, NewHTTPError(http.StatusNotFound, "Order not found.")
	}
	if err != nil {
		return OrderDetailOutput{}, Internal(err)
	}

	return OrderDetailOutput{
		OrderID:     o.OrderID,
		ProductInfo: o.ProductInfo,
		TotalAmount: o.TotalAmount.StringFixed(2),
		PaymentType: o.PaymentType,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		User:        o.User,
	}, nil
}

// 注文は行ごと削除する。2回目は404。
// actorUserIDは匿名なら0
func (u *OrderUsecase) CancelOrder(ctx context.Context, actorUserID int64, orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid orderId")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByPublicID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found.")
		}
		if err != nil {
			return err
		}

		deleted, err := r.Orders().DeleteByPublicID(ctx, orderID)
		if err != nil {
			return err
		}
		//同時に消された
		if !deleted {
			return NewHTTPError(http.StatusNotFound, "Order not found.")
		}

		before, err := json.Marshal(toOrderOutput(o))
		if err != nil {
			return err
		}
		return r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  actorUserID,
			Action:       model.AuditActionCancelOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   string(before),
			AfterJSON:    "",
			CreatedAt:    time.Now(),
		})
	})
	return wrapTxError(err)
}

// 管理者による注文ステータス更新。
// pending -> completed / cancelled のみ。completed と cancelled は終端。
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, adminUserID int64, orderID string, status string) (OrderOutput, error) {
	if adminUserID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid orderId")
	}
	next := model.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	switch next {
	case model.OrderStatusPending, model.OrderStatusCompleted, model.OrderStatusCancelled:
	default:
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByPublicID(ctx, orderID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "Order not found.")
		}
		if err != nil {
			return err
		}

		//同じなら何もしない
		if o.Status == next {
			out = toOrderOutput(o)
			return nil
		}
		if !canTransitOrderStatus(o.Status, next) {
			return NewHTTPError(http.StatusBadRequest, fmt.Sprintf("cannot change status from %s to %s", o.Status, next))
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, "Order not found.")
			}
			return err
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   fmt.Sprintf(`{"status":%q}`, o.Status),
			AfterJSON:    fmt.Sprintf(`{"status":%q}`, next),
			CreatedAt:    time.Now(),
		}); err != nil {
			return err
		}

		o.Status = next
		out = toOrderOutput(o)
		return nil
	})
	if err != nil {
		return OrderOutput{}, wrapTxError(err)
	}
	return out, nil
}

func (u *OrderUsecase) ListUserOrders(ctx context.Context, userID int64, page int, limit int) (OrderListOutput, error) {
	if userID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid userId")
	}
	if page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	orders, total, err := u.orders.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return OrderListOutput{}, Internal(err)
	}

	items := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderOutput(o))
	}
	return OrderListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// 注文の変更履歴（削除済みの注文も残る）
func (u *OrderUsecase) OrderHistory(ctx context.Context, orderID string, limit int, offset int) ([]model.AuditLog, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid orderId")
	}
	if limit < 1 || limit > 200 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}

	resourceType := model.AuditResourceOrder
	logs, err := u.audits.List(ctx, repo.AuditLogFilter{
		ResourceType: &resourceType,
		ResourceID:   &orderID,
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return nil, Internal(err)
	}
	return logs, nil
}

func canTransitOrderStatus(from model.OrderStatus, to model.OrderStatus) bool {
	if from != model.OrderStatusPending {
		return false
	}
	return to == model.OrderStatusCompleted || to == model.OrderStatusCancelled
}

// tx内で作ったHTTPErrorはそのまま、それ以外は500
func wrapTxError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}
	return Internal(err)
}

// 空・null・空配列・空オブジェクトは注文内容として認めない
func isSnapshot(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return false
	}
	switch string(trimmed) {
	case "null", "[]", "{}", `""`:
		return false
	}
	return true
}

func toOrderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		OrderID:     o.OrderID,
		UserID:      o.UserID,
		ProductInfo: o.ProductInfo,
		TotalAmount: o.TotalAmount.StringFixed(2),
		PaymentType: o.PaymentType,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}
