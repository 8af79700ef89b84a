package repository

import (
	"context"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"

	"gorm.io/gorm"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) Create(ctx context.Context, rv model.Review) (model.Review, error) {
	if err := r.db.WithContext(ctx).Create(&rv).Error; err != nil {
		return model.Review{}, translate(err)
	}
	return rv, nil
}

// レビュー一覧。投稿者・商品・カテゴリ名をJOINする
func (r *ReviewGormRepository) ListLines(ctx context.Context, f repo.ReviewListFilter) ([]model.ReviewLine, error) {
	q := r.db.WithContext(ctx).
		Table("reviews").
		Select(`reviews.id, reviews.rating, reviews.review, reviews.status, reviews.created_at,
			COALESCE(users.name, '') AS user_name, COALESCE(users.email, '') AS user_email,
			COALESCE(products.name, '') AS product_name, categories.name AS category_name`).
		Joins("LEFT JOIN users ON users.id = reviews.user_id").
		Joins("LEFT JOIN products ON products.id = reviews.product_id").
		Joins("LEFT JOIN categories ON categories.id = products.category_id")

	if f.ID != nil {
		q = q.Where("reviews.id = ?", *f.ID)
	}
	if f.UserID != nil {
		q = q.Where("reviews.user_id = ?", *f.UserID)
	}
	if f.ProductID != nil {
		q = q.Where("reviews.product_id = ?", *f.ProductID)
	}

	lines := []model.ReviewLine{}
	if err := q.Order("reviews.id desc").Scan(&lines).Error; err != nil {
		return []model.ReviewLine{}, err
	}
	return lines, nil
}

func (r *ReviewGormRepository) UpdateStatus(ctx context.Context, reviewID int64, userID int64, status model.ReviewStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ? AND user_id = ?", reviewID, userID).
		Update("status", status)

	return affectedOne(res)
}

// 承認済みレビューの平均と件数
func (r *ReviewGormRepository) RatingSummary(ctx context.Context, productID int64) (model.RatingSummary, error) {
	var out model.RatingSummary

	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0)::float8 AS average, COUNT(*) AS count").
		Where("product_id = ? AND status = ?", productID, model.ReviewStatusApproved).
		Scan(&out).Error
	if err != nil {
		return model.RatingSummary{}, err
	}
	return out, nil
}
