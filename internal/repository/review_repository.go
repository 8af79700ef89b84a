package repository

import (
	"context"

	"gharplans/internal/domain/model"
)

type ReviewListFilter struct {
	ID        *int64
	UserID    *int64
	ProductID *int64
}

type ReviewRepository interface {
	Create(ctx context.Context, r model.Review) (model.Review, error)
	ListLines(ctx context.Context, f ReviewListFilter) ([]model.ReviewLine, error)
	// id と user_id の両方が一致したレビューだけ更新
	UpdateStatus(ctx context.Context, reviewID int64, userID int64, status model.ReviewStatus) error
	// 承認済みレビューの平均評価（AVG集計）
	RatingSummary(ctx context.Context, productID int64) (model.RatingSummary, error)
}
