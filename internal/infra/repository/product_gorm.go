package repository

import (
	"context"

	"gharplans/internal/domain/model"
	repo "gharplans/internal/repository"

	"gorm.io/gorm"
)

// 管理画面から書き換えられる列
var productEditableColumns = []string{
	"category_id", "name", "slug", "price", "image", "description",
	"short_description", "additional_information", "status", "options", "color", "updated_at",
}

type ProductGormRepository struct {
	db *gorm.DB
}

var _ repo.ProductRepository = (*ProductGormRepository)(nil)

func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

func productFilter(q repo.ProductListQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if q.OnlyActive {
			tx = tx.Where("status = ?", true)
		}
		if q.CategoryID != nil {
			tx = tx.Where("category_id = ?", *q.CategoryID)
		}
		return tx
	}
}

// 新しい順。totalはページングをかける前の件数
func (r *ProductGormRepository) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Product{}).Scopes(productFilter(q))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	products := make([]model.Product, 0, q.Limit)
	err := base.Order("id desc").Offset((q.Page - 1) * q.Limit).Limit(q.Limit).Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	if err := r.db.WithContext(ctx).Take(&p, "id = ?", id).Error; err != nil {
		return model.Product{}, translate(err)
	}
	return p, nil
}

func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	err := r.db.WithContext(ctx).Create(&p).Error
	return p, translate(err)
}

// falseのstatusや空文字も書き込むためSelectで列を固定する
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).
		Model(&model.Product{ID: p.ID}).
		Select(productEditableColumns).
		Updates(&p)
	return affectedOne(res)
}

// deleted_atを立てる
func (r *ProductGormRepository) SoftDelete(ctx context.Context, id int64) error {
	return affectedOne(r.db.WithContext(ctx).Delete(&model.Product{}, id))
}
