package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
)

// SessionContext is the live identity, login stage and cart of one visitor.
// It is built at the start of an interaction cycle and dropped at its end;
// it is never shared between visitors.
type SessionContext struct {
	VisitorID string
	Identity  *domain.Identity
	Stage     domain.LoginStage
	Candidate *domain.Candidate
	Cart      []domain.LineItem

	slot ports.TokenSlot
}

// persist replaces the identity and writes its token into the slot.
func (s *SessionContext) persist(identity domain.Identity, codec ports.TokenCodec) {
	s.Identity = &identity
	s.Stage = domain.StageComplete
	s.Candidate = nil
	s.slot.Store(codec.Encode(identity))
}

// reset returns the session to a logged-out visitor with an empty cart.
func (s *SessionContext) reset() {
	s.Identity = nil
	s.Stage = domain.StageInput
	s.Candidate = nil
	s.Cart = nil
	s.slot.Clear()
}

// SessionLoader rehydrates and saves SessionContexts.
type SessionLoader struct {
	codec ports.TokenCodec
	store ports.VisitorStore
	log   zerolog.Logger
}

func NewSessionLoader(codec ports.TokenCodec, store ports.VisitorStore, log zerolog.Logger) *SessionLoader {
	return &SessionLoader{codec: codec, store: store, log: log}
}

// Begin builds the SessionContext for one cycle. A decodable token in the slot is
// authoritative for the identity; without one the visitor is logged out, except
// for an open password challenge.
func (l *SessionLoader) Begin(ctx context.Context, visitorID string, slot ports.TokenSlot) *SessionContext {
	state, err := l.store.Load(ctx, visitorID)
	if err != nil {
		l.log.Warn().Err(err).Str("visitor", visitorID).Msg("visitor state unavailable, starting fresh")
		state = ports.VisitorState{}
	}

	sess := &SessionContext{
		VisitorID: visitorID,
		Stage:     state.Stage,
		Candidate: state.Candidate,
		Cart:      state.Cart,
		slot:      slot,
	}

	if identity, ok := l.codec.Decode(slot.Load()); ok {
		sess.Identity = &identity
		sess.Stage = domain.StageComplete
		sess.Candidate = nil
		return sess
	}

	if sess.Stage != domain.StagePasswordChallenge || sess.Candidate == nil {
		sess.Stage = domain.StageInput
		sess.Candidate = nil
	}
	return sess
}

// End saves what must outlive the cycle: stage, candidate and cart.
func (l *SessionLoader) End(ctx context.Context, sess *SessionContext) error {
	state := ports.VisitorState{
		Stage:     sess.Stage,
		Candidate: sess.Candidate,
		Cart:      sess.Cart,
	}
	if state.Stage == domain.StageInput && state.Candidate == nil && len(state.Cart) == 0 {
		return l.store.Delete(ctx, sess.VisitorID)
	}
	return l.store.Save(ctx, sess.VisitorID, state)
}
