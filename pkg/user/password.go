package user

import (
	"Recipe-API/domain"
	"Recipe-API/entities"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// SetPassword stores a salted bcrypt hash of plaintext on u.
func SetPassword(u *entities.User, plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return domain.ErrPasswordTooLong
		}
		return fmt.Errorf("%w: %v", domain.ErrFailedHashingPassword, err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plaintext matches the hash stored on u.
// bcrypt compares in constant time.
func CheckPassword(u *entities.User, plaintext string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plaintext)) == nil
}

// burnPasswordCheck spends the same time as a real comparison so that a
// login for an unknown username is not faster than a wrong password.
func burnPasswordCheck(plaintext string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("recipe-api-dummy-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plaintext))
}
