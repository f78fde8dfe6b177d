package ports

import "github.com/cereza/orderdesk/internal/core/domain"

// TokenCodec turns an identity into the opaque string carried by the uid slot and back.
type TokenCodec interface {
	Encode(identity domain.Identity) string
	// Decode returns false for an empty, corrupt or partial token; never a partial identity.
	Decode(token string) (domain.Identity, bool)
}

// TokenSlot is the single external place a token survives a reload in.
type TokenSlot interface {
	Load() string
	Store(token string)
	Clear()
}
