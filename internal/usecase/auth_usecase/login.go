package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"gharplans/internal/domain/model"
	"gharplans/internal/repository"
)

type LoginInput struct {
	Email    string
	Password string
}

type AccessToken struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"` // 秒
}

type LoginOutput struct {
	User  model.User  `json:"user"`
	Token AccessToken `json:"token"`
}

// 未登録メールとパスワード違いは区別しない
var ErrInvalidCredentials = errors.New("invalid credentials")

type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, now time.Time) (token string, expiresAt time.Time, err error)
}

type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type Clock interface {
	Now() time.Time
}

type LoginUsecase struct {
	users    repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(users repository.UserRepository, verifier PasswordVerifier, issuer AccessTokenIssuer, clock Clock) *LoginUsecase {
	return &LoginUsecase{users: users, verifier: verifier, issuer: issuer, clock: clock}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	user, err := u.authenticate(ctx, in)
	if err != nil {
		return LoginOutput{}, err
	}

	now := u.clock.Now()
	token, exp, err := u.issuer.Issue(user.ID, user.Role, now)
	if err != nil {
		return LoginOutput{}, err
	}

	user.LastLoginAt = &now
	if err := u.users.Update(ctx, user); err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{
		User:  *user,
		Token: AccessToken{AccessToken: token, ExpiresIn: int(exp.Sub(now) / time.Second)},
	}, nil
}

func (u *LoginUsecase) authenticate(ctx context.Context, in LoginInput) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := u.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrInvalidCredentials
	case err != nil:
		return nil, err
	}
	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
