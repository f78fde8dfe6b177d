package ports

import (
	"context"

	"github.com/cereza/orderdesk/internal/core/domain"
)

// Notifier tells the operator about a new order. Best-effort: the error is only logged.
type Notifier interface {
	Notify(ctx context.Context, order domain.Order) error
}
