package repository

import (
	"context"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartGormRepository struct {
	db *gorm.DB
}

var _ repo.CartItemRepository = (*CartGormRepository)(nil)

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// 明細を作成。(user_id, product_id)の一意制約に当たればErrConflict
func (r *CartGormRepository) Create(ctx context.Context, item model.CartItem) (model.CartItem, error) {
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		return model.CartItem{}, translate(err)
	}
	return item, nil
}

func (r *CartGormRepository) FindByUserAndProduct(ctx context.Context, userID int64, productID int64) (model.CartItem, error) {
	var item model.CartItem

	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Take(&item).Error
	if err != nil {
		return model.CartItem{}, translate(err)
	}
	return item, nil
}

// 商品名・カテゴリ名・ユーザー名をJOINして明細を返す（削除済み商品は除く）
func (r *CartGormRepository) ListLinesByUserID(ctx context.Context, userID int64) ([]model.CartLine, error) {
	lines := []model.CartLine{}

	err := r.db.WithContext(ctx).
		Table("cart_items").
		Select(`cart_items.id, cart_items.user_id, cart_items.product_id, cart_items.quantity, cart_items.unit_price,
			products.name AS product_name, products.price AS product_price,
			categories.name AS category_name, COALESCE(users.name, '') AS user_name,
			cart_items.created_at, cart_items.updated_at`).
		Joins("JOIN products ON products.id = cart_items.product_id AND products.deleted_at IS NULL").
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Joins("LEFT JOIN users ON users.id = cart_items.user_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.id asc").
		Scan(&lines).Error
	if err != nil {
		return []model.CartLine{}, err
	}
	return lines, nil
}

// 数量と単価を更新
func (r *CartGormRepository) UpdateQuantityAndPrice(ctx context.Context, cartItemID int64, qty int64, unitPrice decimal.Decimal) error {
	res := r.db.WithContext(ctx).
		Model(&model.CartItem{}).
		Where("id = ?", cartItemID).
		Updates(map[string]interface{}{
			"quantity":   qty,
			"unit_price": unitPrice,
		})

	return affectedOne(res)
}

// 明細を削除
func (r *CartGormRepository) DeleteByID(ctx context.Context, cartItemID int64) error {
	res := r.db.WithContext(ctx).Delete(&model.CartItem{}, cartItemID)

	return affectedOne(res)
}

// ユーザーの明細を全削除（注文確定時）。0件でもエラーにしない
func (r *CartGormRepository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{})

	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
