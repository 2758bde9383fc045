package password

import (
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// MinLength is the shortest password accepted at sign-up and on change
const MinLength = 8

const bcryptCost = 12

// Hash derives a bcrypt hash for storage
func Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches a stored hash
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// HashToken digests a refresh token for at-rest storage. SHA-256 is enough
// here: the input is a random signed token, not a guessable password.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// ValidatePassword applies the password policy
func ValidatePassword(plaintext string) bool {
	return len(plaintext) >= MinLength
}
