package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"

	dto "github.com/prometheus/client_model/go"

	"github.com/cereza/orderdesk/internal/core/domain"
)

func TestLedgerErrorReason(t *testing.T) {
	cases := map[error]string{
		fmt.Errorf("%w: no items", domain.ErrValidation): "validation",
		domain.ErrLedgerLocked:                           "locked",
		fmt.Errorf("%w: disk", domain.ErrStorage):        "storage",
		errors.New("other"):                              "storage",
	}
	for err, want := range cases {
		if got := LedgerErrorReason(err); got != want {
			t.Errorf("%v: expected %q, got %q", err, want, got)
		}
	}
}

type failingRegistry struct{ err error }

func (f failingRegistry) Append(context.Context, string, string) error { return f.err }
func (f failingRegistry) ReadAll(context.Context) (domain.Dataset, error) {
	return domain.EmptyDataset(domain.ClientColumns), nil
}

func counterValue(t *testing.T) float64 {
	t.Helper()
	var m dto.Metric
	if err := RegistryErrorsTotal.Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestCountingRegistry(t *testing.T) {
	before := counterValue(t)

	_ = CountingRegistry{failingRegistry{}}.Append(context.Background(), "a", "b")
	_ = CountingRegistry{failingRegistry{errors.New("boom")}}.Append(context.Background(), "a", "b")

	if got := counterValue(t) - before; got != 1 {
		t.Fatalf("expected one counted failure, got %v", got)
	}
}

func TestNotifyRecorder(t *testing.T) {
	read := func() float64 {
		var m dto.Metric
		if err := NotificationsTotal.WithLabelValues("dropped").Write(&m); err != nil {
			t.Fatalf("read counter: %v", err)
		}
		return m.GetCounter().GetValue()
	}
	before := read()

	NotifyRecorder{}.Notification("dropped")
	NotifyRecorder{}.QueueDepth(7)

	if got := read() - before; got != 1 {
		t.Fatalf("expected one dropped notification, got %v", got)
	}
	var m dto.Metric
	if err := NotifyQueueDepth.Write(&m); err != nil {
		t.Fatalf("read gauge: %v", err)
	}
	if m.GetGauge().GetValue() != 7 {
		t.Fatalf("expected queue depth 7, got %v", m.GetGauge().GetValue())
	}
}
