package service

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
)

// DashboardService is the operator's read-only view over the ledger and registry.
// Reads never block writers.
type DashboardService struct {
	ledger   ports.OrderLedger
	registry ports.ClientRegistry
	log      zerolog.Logger
}

func NewDashboardService(ledger ports.OrderLedger, registry ports.ClientRegistry, log zerolog.Logger) *DashboardService {
	return &DashboardService{ledger: ledger, registry: registry, log: log}
}

func (s *DashboardService) Orders(ctx context.Context) (domain.Dataset, error) {
	return s.ledger.ReadAll(ctx)
}

func (s *DashboardService) Clients(ctx context.Context) (domain.Dataset, error) {
	return s.registry.ReadAll(ctx)
}

// ExportOrders streams the ledger content to w without transformation.
func (s *DashboardService) ExportOrders(ctx context.Context, w io.Writer) error {
	if err := s.ledger.Export(ctx, w); err != nil {
		s.log.Warn().Err(err).Msg("ledger export failed")
		return err
	}
	return nil
}
