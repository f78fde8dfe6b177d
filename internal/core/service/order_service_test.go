package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cereza/orderdesk/internal/core/domain"
)

func TestOrderService_AddItem(t *testing.T) {
	svc := NewOrderService(&stubLedger{}, &stubNotifier{}, discardLogger)
	sess := loggedInSession(&stubSlot{})

	if err := svc.AddItem(sess, domain.LineItem{Name: " Lamp ", Quantity: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.AddItem(sess, domain.LineItem{Name: "Rug", Quantity: 1, Link: "https://shop/rug"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sess.Cart) != 2 || sess.Cart[0].Name != "Lamp" || sess.Cart[1].Name != "Rug" {
		t.Fatalf("cart must keep insertion order, got %+v", sess.Cart)
	}

	if err := svc.AddItem(sess, domain.LineItem{Name: "", Quantity: 1}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(sess.Cart) != 2 {
		t.Fatal("invalid item must not be added")
	}
}

func TestOrderService_AddItem_RequiresIdentity(t *testing.T) {
	svc := NewOrderService(&stubLedger{}, &stubNotifier{}, discardLogger)
	if err := svc.AddItem(newSession(&stubSlot{}), domain.LineItem{Name: "Lamp", Quantity: 1}); !errors.Is(err, domain.ErrNoIdentity) {
		t.Fatalf("expected ErrNoIdentity, got %v", err)
	}
}

func TestOrderService_Submit_Success(t *testing.T) {
	ledger := &stubLedger{orderID: "20260309-140507"}
	notifier := &stubNotifier{}
	svc := NewOrderService(ledger, notifier, discardLogger)
	sess := loggedInSession(&stubSlot{})
	sess.Cart = []domain.LineItem{{Name: "Lamp", Quantity: 2}}

	order, err := svc.Submit(context.Background(), sess)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.ID != "20260309-140507" || order.ClientName != "Jane Doe" || len(order.Items) != 1 {
		t.Fatalf("unexpected order %+v", order)
	}
	if order.CreatedAt.Year() != 2026 || order.CreatedAt.Second() != 7 {
		t.Fatalf("created_at must follow the order id, got %v", order.CreatedAt)
	}
	if len(ledger.calls) != 1 || ledger.calls[0].identity.Contact != "jane@x.com" {
		t.Fatalf("unexpected ledger calls %+v", ledger.calls)
	}
	if sess.Cart != nil {
		t.Fatal("cart must be emptied after success")
	}
	if len(notifier.notified) != 1 {
		t.Fatal("expected a notification")
	}
}

func TestOrderService_Submit_NotificationFailureIgnored(t *testing.T) {
	svc := NewOrderService(&stubLedger{}, &stubNotifier{err: errors.New("smtp down")}, discardLogger)
	sess := loggedInSession(&stubSlot{})
	sess.Cart = []domain.LineItem{{Name: "Lamp", Quantity: 1}}

	if _, err := svc.Submit(context.Background(), sess); err != nil {
		t.Fatalf("notification failure must not fail the order, got %v", err)
	}
	if sess.Cart != nil {
		t.Fatal("cart must be emptied")
	}
}

func TestOrderService_Submit_LockedKeepsCart(t *testing.T) {
	for _, ledgerErr := range []error{domain.ErrLedgerLocked, fmt.Errorf("%w: %v", domain.ErrStorage, errDisk)} {
		notifier := &stubNotifier{}
		svc := NewOrderService(&stubLedger{appendErr: ledgerErr}, notifier, discardLogger)
		sess := loggedInSession(&stubSlot{})
		sess.Cart = []domain.LineItem{{Name: "Lamp", Quantity: 1}}

		_, err := svc.Submit(context.Background(), sess)
		if !errors.Is(err, ledgerErr) {
			t.Fatalf("expected %v, got %v", ledgerErr, err)
		}
		if len(sess.Cart) != 1 {
			t.Fatal("cart must be preserved for a retry")
		}
		if len(notifier.notified) != 0 {
			t.Fatal("no notification on failure")
		}
	}
}

func TestOrderService_Submit_EmptyCart(t *testing.T) {
	ledger := &stubLedger{}
	svc := NewOrderService(ledger, &stubNotifier{}, discardLogger)

	_, err := svc.Submit(context.Background(), loggedInSession(&stubSlot{}))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(ledger.calls) != 0 {
		t.Fatal("ledger must not be touched")
	}
}

func TestDashboardService_ExportOrders(t *testing.T) {
	svc := NewDashboardService(&stubLedger{exported: "ID;Date\n"}, &stubRegistry{}, discardLogger)
	var buf bytes.Buffer
	if err := svc.ExportOrders(context.Background(), &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "ID;Date\n" {
		t.Fatalf("unexpected export %q", buf.String())
	}

	empty := NewDashboardService(&stubLedger{}, &stubRegistry{}, discardLogger)
	if err := empty.ExportOrders(context.Background(), &buf); !errors.Is(err, domain.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
