package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細。(user_id, product_id) は1行だけ
// UnitPriceは追加・更新時点の商品価格。
type CartItem struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64           `gorm:"not null;uniqueIndex:idx_cart_items_user_product" json:"userId"`
	ProductID int64           `gorm:"not null;uniqueIndex:idx_cart_items_user_product;index" json:"productId"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unitPrice"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}

// カート一覧用。products/categoriesをJOINした1行
type CartLine struct {
	ID           int64
	UserID       int64
	ProductID    int64
	Quantity     int64
	UnitPrice    decimal.Decimal
	ProductName  string
	ProductPrice decimal.Decimal
	CategoryName *string
	UserName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
