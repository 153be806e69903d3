package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt work factor. Each hash embeds its own random salt, so hashing the
// same password twice yields different output.
const hashCost = 10

// HashPassword derives a salted one-way hash from the plaintext password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. A mismatch
// is a normal false result; an error is returned only for a malformed hash.
func CheckPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, err
}
