package service

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
	"github.com/cereza/orderdesk/internal/core/token"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubSlot struct {
	token   string
	stored  []string
	cleared int
}

func (s *stubSlot) Load() string       { return s.token }
func (s *stubSlot) Store(token string) { s.token = token; s.stored = append(s.stored, token) }
func (s *stubSlot) Clear()             { s.token = ""; s.cleared++ }

type registryRow struct{ name, contact string }

type stubRegistry struct {
	rows      []registryRow
	appendErr error
}

func (r *stubRegistry) Append(_ context.Context, name, contact string) error {
	if r.appendErr != nil {
		return r.appendErr
	}
	r.rows = append(r.rows, registryRow{name, contact})
	return nil
}

func (r *stubRegistry) ReadAll(context.Context) (domain.Dataset, error) {
	ds := domain.EmptyDataset(domain.ClientColumns)
	for _, row := range r.rows {
		ds.Rows = append(ds.Rows, []string{"now", row.name, row.contact})
	}
	return ds, nil
}

type ledgerCall struct {
	identity domain.Identity
	items    []domain.LineItem
}

type stubLedger struct {
	calls     []ledgerCall
	appendErr error
	orderID   string
	exported  string
}

func (l *stubLedger) Append(_ context.Context, identity domain.Identity, items []domain.LineItem) (string, error) {
	if l.appendErr != nil {
		return "", l.appendErr
	}
	l.calls = append(l.calls, ledgerCall{identity, items})
	if l.orderID == "" {
		return "20260102-030405", nil
	}
	return l.orderID, nil
}

func (l *stubLedger) ReadAll(context.Context) (domain.Dataset, error) {
	return domain.EmptyDataset(domain.OrderColumns), nil
}

func (l *stubLedger) Export(_ context.Context, w io.Writer) error {
	if l.exported == "" {
		return domain.ErrNoData
	}
	_, err := io.WriteString(w, l.exported)
	return err
}

type stubNotifier struct {
	notified []domain.Order
	err      error
}

func (n *stubNotifier) Notify(_ context.Context, order domain.Order) error {
	n.notified = append(n.notified, order)
	return n.err
}

type stubVisitorStore struct {
	states  map[string]ports.VisitorState
	loadErr error
	deleted []string
}

func newStubVisitorStore() *stubVisitorStore {
	return &stubVisitorStore{states: make(map[string]ports.VisitorState)}
}

func (s *stubVisitorStore) Load(_ context.Context, id string) (ports.VisitorState, error) {
	if s.loadErr != nil {
		return ports.VisitorState{}, s.loadErr
	}
	return s.states[id], nil
}

func (s *stubVisitorStore) Save(_ context.Context, id string, state ports.VisitorState) error {
	s.states[id] = state
	return nil
}

func (s *stubVisitorStore) Delete(_ context.Context, id string) error {
	delete(s.states, id)
	s.deleted = append(s.deleted, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var errDisk = errors.New("disk on fire")

var testCreds = AdminCredentials{
	Key:      domain.AdminKey{Name: "ADMIN", Contact: "2002"},
	Password: "cereza_admin",
}

func newSession(slot *stubSlot) *SessionContext {
	return &SessionContext{VisitorID: "v1", Stage: domain.StageInput, slot: slot}
}

func newLoginSvc(reg *stubRegistry) *LoginService {
	return NewLoginService(reg, token.PlainCodec{}, testCreds, discardLogger)
}

func loggedInSession(slot *stubSlot) *SessionContext {
	sess := newSession(slot)
	id := domain.Identity{Name: "Jane Doe", Contact: "jane@x.com", Role: domain.RoleClient}
	sess.Identity = &id
	sess.Stage = domain.StageComplete
	return sess
}
