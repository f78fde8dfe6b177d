package domain

import (
	"strings"
	"time"
)

// ClientLogEntry is one row of the client registry. Repeat logins produce repeat rows.
type ClientLogEntry struct {
	LoggedAt time.Time
	Name     string
	Contact  string
}

// NewClientLogEntry normalizes name to upper case and contact to lower case.
func NewClientLogEntry(at time.Time, name, contact string) ClientLogEntry {
	return ClientLogEntry{
		LoggedAt: at,
		Name:     strings.ToUpper(strings.TrimSpace(name)),
		Contact:  strings.ToLower(strings.TrimSpace(contact)),
	}
}
