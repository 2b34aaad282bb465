package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword derives a bcrypt hash from a plaintext password.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckPassword reports whether candidate matches the stored bcrypt hash.
func CheckPassword(hash []byte, candidate string) bool {
	err := bcrypt.CompareHashAndPassword(hash, []byte(candidate))
	return !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) && err == nil
}
