package domain

import (
	"strings"
	"unicode/utf8"
)

// Role distinguishes ordinary visitors from the operator.
type Role string

const (
	RoleClient Role = "client"
	RoleAdmin  Role = "admin"
)

// Identity is who the visitor is for the duration of one interaction cycle.
// It is replaced wholesale on login, logout and elevation, never edited.
type Identity struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Role    Role   `json:"role"`
}

// IsAdmin reports whether the identity carries the operator role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// Complete reports whether every field is populated.
func (i Identity) Complete() bool {
	return i.Name != "" && i.Contact != "" && (i.Role == RoleClient || i.Role == RoleAdmin)
}

// Initials returns the badge letters shown on the profile card: first letter of the
// first two words, or the first two characters of a single-word name.
func (i Identity) Initials() string {
	parts := strings.Fields(i.Name)
	if len(parts) >= 2 {
		a, _ := utf8.DecodeRuneInString(parts[0])
		b, _ := utf8.DecodeRuneInString(parts[1])
		return strings.ToUpper(string(a) + string(b))
	}

	r := []rune(strings.TrimSpace(i.Name))
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}
