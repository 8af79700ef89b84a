package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentType string

const (
	PaymentTypeCard PaymentType = "card"
)

// 支払い方法として受け付けるか
func (p PaymentType) Valid() bool {
	switch p {
	case PaymentTypeCard:
		return true
	default:
		return false
	}
}

// 注文。IDは内部用で、外にはOrderIDだけを出す。
// ProductInfoは注文時点のスナップショット（商品の後からの変更は反映しない）
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID     string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"orderId"`
	UserID      int64           `gorm:"not null;index" json:"userId"`
	ProductInfo json.RawMessage `gorm:"type:jsonb;not null" json:"productInfo"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalAmount"`
	PaymentType PaymentType     `gorm:"type:varchar(20);not null" json:"paymentType"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// 注文者の公開情報
type OrderUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// 注文＋注文者（usersとJOINした結果）
// 注文者が削除済みならUserはnil
type OrderWithUser struct {
	Order
	User *OrderUser
}
