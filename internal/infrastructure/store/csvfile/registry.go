package csvfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
)

// RegistryFile is the default client registry file name inside the data directory.
const RegistryFile = "base_clients.csv"

// Registry implements ports.ClientRegistry on a delimited text file.
type Registry struct {
	table *table
	now   func() time.Time
}

func NewRegistry(dir string, log zerolog.Logger) *Registry {
	return &Registry{
		table: newTable(filepath.Join(dir, RegistryFile), domain.ClientColumns, log),
		now:   time.Now,
	}
}

func (r *Registry) Path() string { return r.table.path }

func (r *Registry) Append(_ context.Context, name, contact string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(contact) == "" {
		return fmt.Errorf("%w: name and contact are required", domain.ErrValidation)
	}

	entry := domain.NewClientLogEntry(r.now(), name, contact)
	return r.table.appendRows([][]string{{
		entry.LoggedAt.Format(domain.RowTimeLayout),
		entry.Name,
		entry.Contact,
	}})
}

func (r *Registry) ReadAll(context.Context) (domain.Dataset, error) {
	return r.table.readAll()
}
