package repository

import (
	"context"

	"gharplans/internal/domain/model"
)

type OrderRepository interface {
	// 作成後（ID・作成時刻が埋まったもの）を返す
	Create(ctx context.Context, order model.Order) (model.Order, error)
	FindByPublicID(ctx context.Context, orderID string) (model.Order, error)
	// usersをJOINして注文者の公開情報も返す
	FindWithUserByPublicID(ctx context.Context, orderID string) (model.OrderWithUser, error)
	ListByUserID(ctx context.Context, userID int64, page int, limit int) ([]model.Order, int64, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	// 削除できたらtrue、対象がなければfalse
	DeleteByPublicID(ctx context.Context, orderID string) (bool, error)
}
