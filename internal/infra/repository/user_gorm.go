package repository

import (
	"context"

	"gharplans/internal/domain/model"
	domainrepo "gharplans/internal/repository"

	"gorm.io/gorm"
)

type UserGormRepository struct {
	db *gorm.DB
}

var _ domainrepo.UserRepository = (*UserGormRepository)(nil)

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// emailの重複はErrConflict
func (r *UserGormRepository) Create(ctx context.Context, user *model.User) error {
	return translate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *UserGormRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.take(ctx, "email = ?", email)
}

func (r *UserGormRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	return r.take(ctx, "id = ?", id)
}

// プロフィールと最終ログイン時刻だけ。email・パスワード・roleは変えない
func (r *UserGormRepository) Update(ctx context.Context, user *model.User) error {
	res := r.db.WithContext(ctx).
		Model(user).
		Select("name", "contact_no", "address", "city", "profile_image", "last_login_at", "updated_at").
		Updates(user)
	return affectedOne(res)
}

func (r *UserGormRepository) take(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	var u model.User
	if err := r.db.WithContext(ctx).Where(query, arg).Take(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
