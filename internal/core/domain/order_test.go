package domain

import (
	"errors"
	"testing"
	"time"
)

func TestValidateItems(t *testing.T) {
	if err := ValidateItems(nil); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty list, got %v", err)
	}
	if err := ValidateItems([]LineItem{{Name: "  ", Quantity: 1}}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank name, got %v", err)
	}
	if err := ValidateItems([]LineItem{{Name: "Lamp", Quantity: 0}}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for zero quantity, got %v", err)
	}
	if err := ValidateItems([]LineItem{{Name: "Lamp", Quantity: 2}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewOrderID(t *testing.T) {
	ts := time.Date(2026, 3, 9, 14, 5, 7, 999, time.UTC)
	if got := NewOrderID(ts); got != "20260309-140507" {
		t.Fatalf("unexpected order id %q", got)
	}
}

func TestNewClientLogEntry_Normalizes(t *testing.T) {
	e := NewClientLogEntry(time.Now(), " Jane Doe ", "Jane@X.com")
	if e.Name != "JANE DOE" {
		t.Errorf("expected upper-cased name, got %q", e.Name)
	}
	if e.Contact != "jane@x.com" {
		t.Errorf("expected lower-cased contact, got %q", e.Contact)
	}
}

func TestDataset_Records(t *testing.T) {
	ds := Dataset{Columns: []string{"A", "B"}, Rows: [][]string{{"1", "2"}, {"3"}}}
	recs := ds.Records()
	if len(recs) != 2 || recs[0]["B"] != "2" || recs[1]["A"] != "3" {
		t.Fatalf("unexpected records: %+v", recs)
	}
	if _, ok := recs[1]["B"]; ok {
		t.Fatalf("short row must not invent a value")
	}

	empty := EmptyDataset(OrderColumns)
	empty.Columns[0] = "changed"
	if OrderColumns[0] != "ID" {
		t.Fatal("EmptyDataset must copy the column slice")
	}
}
