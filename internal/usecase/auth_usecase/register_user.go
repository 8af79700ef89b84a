package auth

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"gharplans/internal/domain/model"
	"gharplans/internal/repository"
)

type RegisterUserInput struct {
	Name      string
	Email     string
	Password  string
	ContactNo string
	Address   string
	City      string
}

type RegisterUserOutput struct {
	User model.User
}

var (
	ErrNameRequired       = errors.New("name required")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrWeakPassword       = errors.New("weak password")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

const minPasswordLen = 8

// 小文字・前後空白なしで比較する
var weakPasswords = map[string]bool{
	"password":    true,
	"password123": true,
	"12345678":    true,
	"123456789":   true,
	"1234567890":  true,
	"qwertyuiop":  true,
	"letmein123":  true,
	"admin123":    true,
}

type PasswordHasher interface {
	Hash(plain string) (string, error)
}

type RegisterUserUsecase struct {
	users  repository.UserRepository
	hasher PasswordHasher
}

func NewRegisterUserUsecase(users repository.UserRepository, hasher PasswordHasher) *RegisterUserUsecase {
	return &RegisterUserUsecase{users: users, hasher: hasher}
}

// 公開の登録口ではroleは常にuser。adminはEnsureAdminUsecaseからのみ
func (u *RegisterUserUsecase) Execute(ctx context.Context, in RegisterUserInput) (RegisterUserOutput, error) {
	user, err := u.create(ctx, in, model.RoleUser)
	if err != nil {
		return RegisterUserOutput{}, err
	}
	return RegisterUserOutput{User: *user}, nil
}

func (u *RegisterUserUsecase) create(ctx context.Context, in RegisterUserInput, role model.Role) (*model.User, error) {
	user := &model.User{
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Role:      role,
		ContactNo: strings.TrimSpace(in.ContactNo),
		Address:   strings.TrimSpace(in.Address),
		City:      strings.TrimSpace(in.City),
	}
	if err := checkRegistration(user.Name, user.Email, in.Password); err != nil {
		return nil, err
	}

	switch _, err := u.users.FindByEmail(ctx, user.Email); {
	case err == nil:
		return nil, ErrEmailAlreadyExists
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hashed

	// 同時登録はunique制約で落ちる
	err = u.users.Create(ctx, user)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrEmailAlreadyExists
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func checkRegistration(name, email, password string) error {
	if name == "" {
		return ErrNameRequired
	}
	// 表示名付き(A <a@b>)は弾く
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return ErrInvalidEmailFormat
	}
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	if weakPasswords[strings.ToLower(strings.TrimSpace(password))] {
		return ErrWeakPassword
	}
	return nil
}
