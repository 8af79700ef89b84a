package repository

import (
	"context"

	"gharplans/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartItemRepository interface {
	// 同じ(user, product)が既にあればErrConflict
	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)
	FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error)
	// products/categories/usersをJOINした明細
	ListLinesByUserID(ctx context.Context, userID int64) ([]model.CartLine, error)
	UpdateQuantityAndPrice(ctx context.Context, cartItemID int64, qty int64, unitPrice decimal.Decimal) error
	DeleteByID(ctx context.Context, cartItemID int64) error
	// ユーザーの明細を全削除し、削除件数を返す
	DeleteByUserID(ctx context.Context, userID int64) (int64, error)
}
