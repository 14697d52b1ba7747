package password

import (
	"errors"

	"videoportfolio/internal/pkg/validator"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest password bcrypt accepts.
const MaxBytes = 72

// Hash hashes a plain password string. A password bcrypt cannot hash is
// reported as a validation error on the "password" field.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", validator.Field("password", "max")
		}
		return "", err
	}
	return string(hash), nil
}

// Check compares a plain password with a hash
func Check(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
