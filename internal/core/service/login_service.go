package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
)

// LoginService drives the login and elevation state machine of a SessionContext.
type LoginService struct {
	registry ports.ClientRegistry
	codec    ports.TokenCodec
	creds    AdminCredentials
	log      zerolog.Logger
}

func NewLoginService(registry ports.ClientRegistry, codec ports.TokenCodec, creds AdminCredentials, log zerolog.Logger) *LoginService {
	return &LoginService{registry: registry, codec: codec, creds: creds, log: log}
}

// Submit consumes a name/contact pair at the input stage. The reserved admin pair
// opens the password challenge; any other pair logs the client in directly.
func (s *LoginService) Submit(ctx context.Context, sess *SessionContext, name, contact string) error {
	name, contact = strings.TrimSpace(name), strings.TrimSpace(contact)
	if name == "" || contact == "" {
		return fmt.Errorf("%w: name and contact are required", domain.ErrValidation)
	}

	if s.creds.Key.Matches(name, contact) {
		if !sess.Stage.CanTransitionTo(domain.StagePasswordChallenge) {
			return fmt.Errorf("login: %w (from %s to %s)", domain.ErrInvalidTransition, sess.Stage, domain.StagePasswordChallenge)
		}
		sess.Stage = domain.StagePasswordChallenge
		sess.Candidate = &domain.Candidate{Name: name, Contact: contact}
		s.log.Info().Str("visitor", sess.VisitorID).Msg("admin key submitted, password challenge opened")
		return nil
	}

	if sess.Stage != domain.StageInput {
		return fmt.Errorf("login: %w (from %s to %s)", domain.ErrInvalidTransition, sess.Stage, domain.StageComplete)
	}

	// Best-effort: a client who cannot be logged still gets in.
	if err := s.registry.Append(ctx, name, contact); err != nil {
		s.log.Warn().Err(err).Str("visitor", sess.VisitorID).Msg("client registry append failed")
	}

	sess.persist(domain.Identity{Name: name, Contact: contact, Role: domain.RoleClient}, s.codec)
	s.log.Info().Str("visitor", sess.VisitorID).Str("client", name).Msg("client logged in")
	return nil
}

// Elevate answers the password challenge. A wrong password discards the candidate
// and returns the session to the input stage with domain.ErrAccessDenied.
func (s *LoginService) Elevate(_ context.Context, sess *SessionContext, password string) error {
	if sess.Stage != domain.StagePasswordChallenge || sess.Candidate == nil {
		return fmt.Errorf("elevate: %w (from %s)", domain.ErrInvalidTransition, sess.Stage)
	}

	if !s.creds.CheckPassword(password) {
		sess.Stage = domain.StageInput
		sess.Candidate = nil
		s.log.Warn().Str("visitor", sess.VisitorID).Msg("admin password rejected")
		return domain.ErrAccessDenied
	}

	cand := *sess.Candidate
	sess.persist(domain.Identity{Name: cand.Name, Contact: cand.Contact, Role: domain.RoleAdmin}, s.codec)
	s.log.Info().Str("visitor", sess.VisitorID).Msg("admin elevated")
	return nil
}

// LeaveAdmin drops the admin role but keeps the visitor logged in as a client.
func (s *LoginService) LeaveAdmin(_ context.Context, sess *SessionContext) error {
	if sess.Identity == nil {
		return domain.ErrNoIdentity
	}
	if !sess.Identity.IsAdmin() {
		return domain.ErrForbidden
	}

	id := *sess.Identity
	id.Role = domain.RoleClient
	sess.persist(id, s.codec)
	return nil
}

// Logout unconditionally returns to the input stage, clearing token and cart.
func (s *LoginService) Logout(_ context.Context, sess *SessionContext) {
	sess.reset()
	s.log.Debug().Str("visitor", sess.VisitorID).Msg("logged out")
}
