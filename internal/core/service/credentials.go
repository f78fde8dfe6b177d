package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"

	"github.com/cereza/orderdesk/internal/core/domain"
)

// AdminCredentials gates the elevation flow: Key decides whether the password
// challenge is offered, Password (or PasswordHash, bcrypt) answers it.
type AdminCredentials struct {
	Key          domain.AdminKey
	Password     string
	PasswordHash string
}

// CheckPassword compares password with the configured secret. A bcrypt hash,
// when set, takes precedence over the plain secret. No secret means no admin.
func (c AdminCredentials) CheckPassword(password string) bool {
	if c.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	}
	if c.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(c.Password)) == 1
}
