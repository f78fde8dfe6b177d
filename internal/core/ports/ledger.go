package ports

import (
	"context"
	"io"

	"github.com/cereza/orderdesk/internal/core/domain"
)

// OrderLedger is the append-only log of submitted orders.
type OrderLedger interface {
	// Append writes one row per item, all sharing a freshly generated order id.
	// Returns domain.ErrValidation, domain.ErrLedgerLocked or domain.ErrStorage.
	Append(ctx context.Context, identity domain.Identity, items []domain.LineItem) (string, error)
	// ReadAll never fails on a missing, empty or unparsable store: it returns an
	// empty dataset with the canonical columns instead.
	ReadAll(ctx context.Context) (domain.Dataset, error)
	// Export writes the ledger content as delimited text. domain.ErrNoData when nothing was written yet.
	Export(ctx context.Context, w io.Writer) error
}

// ClientRegistry is the append-only log of client logins.
type ClientRegistry interface {
	Append(ctx context.Context, name, contact string) error
	ReadAll(ctx context.Context) (domain.Dataset, error)
}
