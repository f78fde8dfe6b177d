// Package token implements the identity codecs behind the uid persistence slot.
package token

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
)

const (
	separator  = "|"
	fieldCount = 3
)

var _ ports.TokenCodec = PlainCodec{}

// PlainCodec encodes an identity as the percent-encoded record name|contact|isAdmin.
//
// Each field is query-escaped before the join, so a separator inside a name cannot
// shift the fields. Tokens written by older clients without field escaping still decode.
type PlainCodec struct{}

// Encode returns the URL-safe token for identity.
func (PlainCodec) Encode(identity domain.Identity) string {
	record := strings.Join([]string{
		url.QueryEscape(identity.Name),
		url.QueryEscape(identity.Contact),
		strconv.FormatBool(identity.IsAdmin()),
	}, separator)
	return url.QueryEscape(record)
}

// Decode parses token. Anything short of a fully populated identity yields false.
func (PlainCodec) Decode(token string) (domain.Identity, bool) {
	if token == "" {
		return domain.Identity{}, false
	}

	record, err := url.QueryUnescape(token)
	if err != nil {
		return domain.Identity{}, false
	}

	fields := strings.Split(record, separator)
	if len(fields) != fieldCount {
		return domain.Identity{}, false
	}

	name, err := url.QueryUnescape(fields[0])
	if err != nil {
		return domain.Identity{}, false
	}
	contact, err := url.QueryUnescape(fields[1])
	if err != nil {
		return domain.Identity{}, false
	}
	admin, err := strconv.ParseBool(fields[2])
	if err != nil {
		return domain.Identity{}, false
	}

	return build(name, contact, admin)
}

func build(name, contact string, admin bool) (domain.Identity, bool) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(contact) == "" {
		return domain.Identity{}, false
	}
	role := domain.RoleClient
	if admin {
		role = domain.RoleAdmin
	}
	return domain.Identity{Name: name, Contact: contact, Role: role}, true
}
