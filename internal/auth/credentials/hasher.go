package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	HashVersionBcrypt = "bcrypt"

	minPasswordLength = 8
)

var ErrPasswordTooShort = errors.New("password too short")

// HashPassword hashes a plaintext password using bcrypt.
func HashPassword(password string) (hash string, version string, err error) {
	if len(password) < minPasswordLength {
		return "", "", ErrPasswordTooShort
	}

	bytes, err := bcrypt.GenerateFromPassword(
		[]byte(password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return "", "", err
	}

	return string(bytes), HashVersionBcrypt, nil
}

// VerifyPassword compares a plaintext password with the stored hash.
func VerifyPassword(hash string, password string) error {
	return bcrypt.CompareHashAndPassword(
		[]byte(hash),
		[]byte(password),
	)
}
