package auth

import (
	"context"
	"errors"

	"gharplans/internal/domain/model"
	"gharplans/internal/repository"
)

// 起動時に管理者アカウントを用意する。
// 既に同じemailのユーザーがいれば何もしない。
type EnsureAdminUsecase struct {
	register *RegisterUserUsecase
}

func NewEnsureAdminUsecase(userRepo repository.UserRepository, hasher PasswordHasher) *EnsureAdminUsecase {
	return &EnsureAdminUsecase{
		register: NewRegisterUserUsecase(userRepo, hasher),
	}
}

// 作成したらtrue
func (u *EnsureAdminUsecase) Execute(ctx context.Context, name string, email string, password string) (bool, error) {
	_, err := u.register.create(ctx, RegisterUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	}, model.RoleAdmin)
	if errors.Is(err, ErrEmailAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
