package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// DefaultPassword is assigned to auto-provisioned demo accounts and to staff created without one.
const DefaultPassword = "password123"

// PasswordHasher produces the stored password format: lowercase hex SHA-256 of password+salt.
// Existing rows depend on this exact format.
type PasswordHasher struct {
	salt string
}

func NewPasswordHasher(salt string) *PasswordHasher {
	return &PasswordHasher{salt: salt}
}

func (h *PasswordHasher) Hash(password string) string {
	sum := sha256.Sum256([]byte(password + h.salt))
	return hex.EncodeToString(sum[:])
}

// Verify compares in constant time. A nil stored hash never matches.
func (h *PasswordHasher) Verify(password string, stored *string) bool {
	if stored == nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(h.Hash(password)), []byte(*stored)) == 1
}
