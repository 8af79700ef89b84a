package auth

import "golang.org/x/crypto/bcrypt"

// 会員登録のHashとログインのVerifyを1つで持つ
type BcryptPasswords struct {
	cost int
}

var (
	_ PasswordHasher   = (*BcryptPasswords)(nil)
	_ PasswordVerifier = (*BcryptPasswords)(nil)
)

// 範囲外のcostはDefaultCostにする
func NewBcryptPasswords(cost int) *BcryptPasswords {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswords{cost: cost}
}

func (b *BcryptPasswords) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), b.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// 72バイトを超える入力や壊れたハッシュもfalse
func (b *BcryptPasswords) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
