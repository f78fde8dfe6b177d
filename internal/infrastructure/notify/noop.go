package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
)

// Noop is used when no mail relay is configured. It records the order at debug level.
type Noop struct {
	Log zerolog.Logger
}

func (n Noop) Notify(_ context.Context, order domain.Order) error {
	n.Log.Debug().Str("order_id", order.ID).Msg("notification skipped, no relay configured")
	return nil
}
