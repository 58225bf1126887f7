package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// initialPasswordSuffix is appended to the allocated username to form
// the first password of a provisioned account. The operator is expected
// to hand it over once and have the manager change it.
const initialPasswordSuffix = "123"

// HashPassword hashes a plaintext password with bcrypt at the given
// cost. A cost of 0 falls back to the bcrypt default.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is required")
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword compares a stored hash against a plaintext candidate.
// Any failure, mismatch or malformed hash, reads as "no match".
func VerifyPassword(hash, password string) bool {
	if hash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// DeriveInitialPassword derives the one-time initial password for a
// freshly provisioned account from its allocated username.
func DeriveInitialPassword(username string) string {
	return username + initialPasswordSuffix
}
