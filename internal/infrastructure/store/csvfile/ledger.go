package csvfile

import (
	"context"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
)

// LedgerFile is the default order ledger file name inside the data directory.
const LedgerFile = "historique_commandes.csv"

// Ledger implements ports.OrderLedger on a delimited text file.
type Ledger struct {
	table *table
	now   func() time.Time
}

func NewLedger(dir string, log zerolog.Logger) *Ledger {
	return &Ledger{
		table: newTable(filepath.Join(dir, LedgerFile), domain.OrderColumns, log),
		now:   time.Now,
	}
}

// Path returns the ledger file location.
func (l *Ledger) Path() string { return l.table.path }

func (l *Ledger) Append(_ context.Context, identity domain.Identity, items []domain.LineItem) (string, error) {
	if err := domain.ValidateItems(items); err != nil {
		return "", err
	}

	now := l.now()
	orderID := domain.NewOrderID(now)
	date := now.Format(domain.RowTimeLayout)

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			orderID,
			date,
			identity.Name,
			identity.Contact,
			strings.TrimSpace(it.Name),
			strconv.Itoa(it.Quantity),
			it.Description,
			it.Link,
		})
	}

	if err := l.table.appendRows(rows); err != nil {
		return "", err
	}
	return orderID, nil
}

func (l *Ledger) ReadAll(context.Context) (domain.Dataset, error) {
	return l.table.readAll()
}

func (l *Ledger) Export(_ context.Context, w io.Writer) error {
	return l.table.export(w)
}
