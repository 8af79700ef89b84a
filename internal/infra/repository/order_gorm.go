package repository

import (
	"context"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"

	"gorm.io/gorm"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

// order_idが重複したらErrConflict
func (r *OrderGormRepository) Create(ctx context.Context, order model.Order) (model.Order, error) {
	if err := r.db.WithContext(ctx).Create(&order).Error; err != nil {
		return model.Order{}, translate(err)
	}
	return order, nil
}

func (r *OrderGormRepository) FindByPublicID(ctx context.Context, orderID string) (model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Take(&o).Error
	if err != nil {
		return model.Order{}, translate(err)
	}
	return o, nil
}

type orderWithUserRow struct {
	model.Order
	RefUserID *int64
	UserName  *string
	UserEmail *string
}

// 注文者（id/name/email）をLEFT JOINで一緒に取る
func (r *OrderGormRepository) FindWithUserByPublicID(ctx context.Context, orderID string) (model.OrderWithUser, error) {
	var rows []orderWithUserRow
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("orders.*, users.id AS ref_user_id, users.name AS user_name, users.email AS user_email").
		Joins("LEFT JOIN users ON users.id = orders.user_id").
		Where("orders.order_id = ?", orderID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return model.OrderWithUser{}, err
	}
	if len(rows) == 0 {
		return model.OrderWithUser{}, repo.ErrNotFound
	}

	row := rows[0]
	out := model.OrderWithUser{Order: row.Order}
	if row.RefUserID != nil {
		out.User = &model.OrderUser{ID: *row.RefUserID}
		if row.UserName != nil {
			out.User.Name = *row.UserName
		}
		if row.UserEmail != nil {
			out.User.Email = *row.UserEmail
		}
	}
	return out, nil
}

func (r *OrderGormRepository) ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return []model.Order{}, 0, err
	}

	var items []model.Order
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Order{}, 0, err
	}

	return items, total, nil
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("order_id = ?", orderID).
		Update("status", status)

	return affectedOne(res)
}

// 物理削除。0件ならfalse
func (r *OrderGormRepository) DeleteByPublicID(ctx context.Context, orderID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.Order{})

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
