package ports

import (
	"context"

	"github.com/cereza/orderdesk/internal/core/domain"
)

// VisitorState is the per-visitor state that outlives a single request but not the
// visitor's session: the cart and the position in the login flow.
type VisitorState struct {
	Stage     domain.LoginStage `json:"stage"`
	Candidate *domain.Candidate `json:"candidate,omitempty"`
	Cart      []domain.LineItem `json:"cart"`
}

// VisitorStore keeps VisitorState keyed by visitor id.
type VisitorStore interface {
	// Load returns a zero VisitorState when the key is unknown.
	Load(ctx context.Context, visitorID string) (VisitorState, error)
	Save(ctx context.Context, visitorID string, state VisitorState) error
	Delete(ctx context.Context, visitorID string) error
}
