package service

import (
	"context"
	"testing"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
	"github.com/cereza/orderdesk/internal/core/token"
)

func TestSessionLoader_RehydratesFromToken(t *testing.T) {
	store := newStubVisitorStore()
	reg := &stubRegistry{}
	id := domain.Identity{Name: "Jane Doe", Contact: "jane@x.com", Role: domain.RoleClient}
	slot := &stubSlot{token: token.PlainCodec{}.Encode(id)}

	sess := NewSessionLoader(token.PlainCodec{}, store, discardLogger).Begin(context.Background(), "fresh-visitor", slot)

	if sess.Identity == nil || *sess.Identity != id {
		t.Fatalf("expected rehydrated identity, got %+v", sess.Identity)
	}
	if sess.Stage != domain.StageComplete {
		t.Fatalf("expected complete, got %s", sess.Stage)
	}
	if len(reg.rows) != 0 || len(slot.stored) != 0 {
		t.Fatal("rehydration must not log in again")
	}
}

func TestSessionLoader_NoTokenMeansLoggedOut(t *testing.T) {
	store := newStubVisitorStore()
	store.states["v1"] = ports.VisitorState{Stage: domain.StageComplete, Cart: []domain.LineItem{{Name: "Lamp", Quantity: 1}}}

	sess := NewSessionLoader(token.PlainCodec{}, store, discardLogger).Begin(context.Background(), "v1", &stubSlot{token: "garbage"})

	if sess.Identity != nil {
		t.Fatal("corrupt token must give no identity")
	}
	if sess.Stage != domain.StageInput {
		t.Fatalf("expected input, got %s", sess.Stage)
	}
}

func TestSessionLoader_KeepsOpenChallenge(t *testing.T) {
	store := newStubVisitorStore()
	store.states["v1"] = ports.VisitorState{Stage: domain.StagePasswordChallenge, Candidate: &domain.Candidate{Name: "ADMIN", Contact: "2002"}}
	loader := NewSessionLoader(token.PlainCodec{}, store, discardLogger)

	sess := loader.Begin(context.Background(), "v1", &stubSlot{})
	if sess.Stage != domain.StagePasswordChallenge || sess.Candidate == nil {
		t.Fatalf("expected open challenge, got %s", sess.Stage)
	}
}

func TestSessionLoader_EndSavesAndDeletes(t *testing.T) {
	store := newStubVisitorStore()
	loader := NewSessionLoader(token.PlainCodec{}, store, discardLogger)

	sess := loggedInSession(&stubSlot{})
	sess.Cart = []domain.LineItem{{Name: "Lamp", Quantity: 2}}
	if err := loader.End(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.states["v1"]; len(got.Cart) != 1 || got.Stage != domain.StageComplete {
		t.Fatalf("unexpected saved state %+v", got)
	}

	NewLoginService(&stubRegistry{}, token.PlainCodec{}, testCreds, discardLogger).Logout(context.Background(), sess)
	if err := loader.End(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := store.states["v1"]; ok {
		t.Fatal("empty state must be deleted")
	}
}

func TestSessionLoader_StoreFailureStartsFresh(t *testing.T) {
	store := newStubVisitorStore()
	store.loadErr = errDisk

	sess := NewSessionLoader(token.PlainCodec{}, store, discardLogger).Begin(context.Background(), "v1", &stubSlot{})
	if sess.Stage != domain.StageInput || sess.Cart != nil {
		t.Fatalf("expected fresh session, got %+v", sess)
	}
}
