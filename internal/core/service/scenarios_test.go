package service

import (
	"context"
	"testing"
	"time"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/token"
	"github.com/cereza/orderdesk/internal/infrastructure/store/csvfile"
	"github.com/cereza/orderdesk/internal/infrastructure/store/memory"
)

type desk struct {
	loader   *SessionLoader
	login    *LoginService
	orders   *OrderService
	ledger   *csvfile.Ledger
	registry *csvfile.Registry
}

func newDesk(t *testing.T) desk {
	t.Helper()
	dir := t.TempDir()
	ledger := csvfile.NewLedger(dir, discardLogger)
	registry := csvfile.NewRegistry(dir, discardLogger)
	return desk{
		loader:   NewSessionLoader(token.PlainCodec{}, memory.NewVisitorStore(time.Hour), discardLogger),
		login:    NewLoginService(registry, token.PlainCodec{}, testCreds, discardLogger),
		orders:   NewOrderService(ledger, &stubNotifier{}, discardLogger),
		ledger:   ledger,
		registry: registry,
	}
}

func TestScenario_ClientOrders(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t)
	slot := &stubSlot{}

	sess := d.loader.Begin(ctx, "v1", slot)
	if err := d.login.Submit(ctx, sess, "Jane Doe", "jane@x.com"); err != nil {
		t.Fatalf("login: %v", err)
	}

	clients, _ := d.registry.ReadAll(ctx)
	if clients.Len() != 1 || clients.Rows[0][1] != "JANE DOE" || clients.Rows[0][2] != "jane@x.com" {
		t.Fatalf("unexpected registry %+v", clients.Rows)
	}

	if err := d.orders.AddItem(sess, domain.LineItem{Name: "Lamp", Quantity: 2}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := d.orders.Submit(ctx, sess); err != nil {
		t.Fatalf("submit: %v", err)
	}

	orders, _ := d.ledger.ReadAll(ctx)
	if orders.Len() != 1 {
		t.Fatalf("expected one ledger row, got %d", orders.Len())
	}
	rec := orders.Records()[0]
	if rec["Produit"] != "Lamp" || rec["Qte"] != "2" || rec["Client"] != "Jane Doe" {
		t.Fatalf("unexpected ledger row %v", rec)
	}
	if len(sess.Cart) != 0 {
		t.Fatal("cart must be empty after submission")
	}
}

func TestScenario_AdminElevation(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t)
	slot := &stubSlot{}
	sess := d.loader.Begin(ctx, "v1", slot)

	if err := d.login.Submit(ctx, sess, "ADMIN", "2002"); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sess.Stage != domain.StagePasswordChallenge {
		t.Fatalf("expected challenge, got %s", sess.Stage)
	}

	_ = d.login.Elevate(ctx, sess, "nope")
	if sess.Stage != domain.StageInput {
		t.Fatalf("expected input after rejection, got %s", sess.Stage)
	}

	_ = d.login.Submit(ctx, sess, "ADMIN", "2002")
	if err := d.login.Elevate(ctx, sess, "cereza_admin"); err != nil {
		t.Fatalf("elevate: %v", err)
	}
	if sess.Stage != domain.StageComplete || !sess.Identity.IsAdmin() {
		t.Fatalf("expected admin, got %+v", sess.Identity)
	}
	id, ok := token.PlainCodec{}.Decode(slot.token)
	if !ok || !id.IsAdmin() {
		t.Fatal("persisted token must carry the admin flag")
	}

	clients, _ := d.registry.ReadAll(ctx)
	if clients.Len() != 0 {
		t.Fatal("the admin key must never reach the registry")
	}
}

func TestScenario_ReloadRehydrates(t *testing.T) {
	ctx := context.Background()
	d := newDesk(t)

	first := &stubSlot{}
	sess := d.loader.Begin(ctx, "v1", first)
	_ = d.login.Submit(ctx, sess, "Jane Doe", "jane@x.com")

	// New visitor id: no server-side state, only the token survives.
	reloaded := d.loader.Begin(ctx, "v2", &stubSlot{token: first.token})
	if reloaded.Identity == nil || *reloaded.Identity != *sess.Identity {
		t.Fatalf("expected %+v, got %+v", sess.Identity, reloaded.Identity)
	}

	clients, _ := d.registry.ReadAll(ctx)
	if clients.Len() != 1 {
		t.Fatalf("reload must not append to the registry, got %d rows", clients.Len())
	}
}
