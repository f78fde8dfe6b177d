package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
)

func TestVisitorStore_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	s := NewVisitorStore(time.Hour)

	state := ports.VisitorState{Stage: domain.StageComplete, Cart: []domain.LineItem{{Name: "Lamp", Quantity: 1}}}
	if err := s.Save(ctx, "v1", state); err != nil {
		t.Fatalf("save: %v", err)
	}

	state.Cart[0].Name = "mutated"
	got, _ := s.Load(ctx, "v1")
	if len(got.Cart) != 1 || got.Cart[0].Name != "Lamp" {
		t.Fatalf("stored cart must not alias the caller's slice, got %+v", got.Cart)
	}

	_ = s.Delete(ctx, "v1")
	got, _ = s.Load(ctx, "v1")
	if got.Stage != "" || got.Cart != nil {
		t.Fatalf("expected zero state, got %+v", got)
	}
}

func TestVisitorStore_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s := NewVisitorStore(time.Minute)
	s.now = func() time.Time { return now }

	_ = s.Save(ctx, "v1", ports.VisitorState{Stage: domain.StagePasswordChallenge})
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}

	now = now.Add(2 * time.Minute)
	got, _ := s.Load(ctx, "v1")
	if got.Stage != "" {
		t.Fatalf("expired entry must read as absent, got %+v", got)
	}

	_ = s.Save(ctx, "v2", ports.VisitorState{Stage: domain.StageComplete})
	if s.Len() != 1 {
		t.Fatalf("expected expired entry pruned, got %d", s.Len())
	}
}
