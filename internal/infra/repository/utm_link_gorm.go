package repository

import (
	"context"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"

	"gorm.io/gorm"
)

type UTMLinkGormRepository struct {
	db *gorm.DB
}

func NewUTMLinkGormRepository(db *gorm.DB) *UTMLinkGormRepository {
	return &UTMLinkGormRepository{db: db}
}

func (r *UTMLinkGormRepository) Create(ctx context.Context, link model.UTMLink) (model.UTMLink, error) {
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		return model.UTMLink{}, translate(err)
	}
	return link, nil
}

func (r *UTMLinkGormRepository) List(ctx context.Context, f repo.UTMLinkFilter) ([]model.UTMLink, error) {
	q := r.db.WithContext(ctx).Model(&model.UTMLink{})

	if f.ID != nil {
		q = q.Where("id = ?", *f.ID)
	}
	if f.Source != "" {
		q = q.Where("source = ?", f.Source)
	}
	if f.CouponCode != "" {
		q = q.Where("coupon_code = ?", f.CouponCode)
	}

	// limit/offset
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	links := []model.UTMLink{}
	if err := q.Order("id asc").Limit(limit).Offset(offset).Find(&links).Error; err != nil {
		return []model.UTMLink{}, err
	}
	return links, nil
}
