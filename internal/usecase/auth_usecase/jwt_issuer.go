package auth

import (
	"strconv"
	"time"

	"gharplans/internal/domain/model"

	"github.com/golang-jwt/jwt/v4"
)

type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// HS256で署名する
type JWTIssuer struct {
	key []byte
	ttl time.Duration
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{key: []byte(secret), ttl: ttl}
}

// subにはユーザーIDを10進の文字列で入れる
func (i *JWTIssuer) Issue(userID int64, role model.Role, now time.Time) (string, time.Time, error) {
	exp := now.Add(i.ttl)
	claims := accessClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
