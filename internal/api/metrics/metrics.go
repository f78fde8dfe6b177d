// Package metrics defines the custom Prometheus metrics of the order desk.
// All metrics register with the default registry on package init through
// promauto and are served by the /metrics route.
package metrics

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
)

const namespace = "orderdesk"

// ── Login metrics ─────────────────────────────────────────────────────────────

// LoginsTotal counts login flow outcomes.
// Label:
//   - outcome: "client", "challenge", "elevated", "rejected" or "logout"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login flow steps, by outcome.",
	},
	[]string{"outcome"},
)

// RegistryErrorsTotal counts client registry appends that failed and were skipped.
var RegistryErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registry_errors_total",
		Help:      "Total number of failed client registry appends.",
	},
)

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersSubmittedTotal counts orders appended to the ledger.
var OrdersSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total number of orders appended to the ledger.",
	},
)

// OrderItemsTotal counts ledger rows written.
var OrderItemsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_items_total",
		Help:      "Total number of line items appended to the ledger.",
	},
)

// LedgerErrorsTotal counts failed order submissions.
// Label:
//   - reason: "validation", "locked" or "storage"
var LedgerErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_errors_total",
		Help:      "Total number of order submissions that failed, by reason.",
	},
	[]string{"reason"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsTotal counts operator notifications.
// Label:
//   - result: "sent", "failed" or "dropped" (queue full or pending at shutdown)
var NotificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Total number of order notifications, by result.",
	},
	[]string{"result"},
)

// NotifyQueueDepth is the number of notifications waiting for a worker.
var NotifyQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notify_queue_depth",
		Help:      "Current number of order notifications pending in the dispatcher.",
	},
)

// LedgerErrorReason maps a submission error to its LedgerErrorsTotal label.
func LedgerErrorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrLedgerLocked):
		return "locked"
	default:
		return "storage"
	}
}

// CountingRegistry wraps a registry and counts failed appends.
type CountingRegistry struct {
	ports.ClientRegistry
}

func (r CountingRegistry) Append(ctx context.Context, name, contact string) error {
	err := r.ClientRegistry.Append(ctx, name, contact)
	if err != nil {
		RegistryErrorsTotal.Inc()
	}
	return err
}

// NotifyRecorder feeds the notification dispatcher outcomes into
// NotificationsTotal and NotifyQueueDepth.
type NotifyRecorder struct{}

func (NotifyRecorder) Notification(result string) {
	NotificationsTotal.WithLabelValues(result).Inc()
}

func (NotifyRecorder) QueueDepth(n int) {
	NotifyQueueDepth.Set(float64(n))
}
