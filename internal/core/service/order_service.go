package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/ports"
)

// OrderService manages the session cart and turns it into ledger rows.
type OrderService struct {
	ledger   ports.OrderLedger
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewOrderService(ledger ports.OrderLedger, notifier ports.Notifier, log zerolog.Logger) *OrderService {
	return &OrderService{ledger: ledger, notifier: notifier, log: log}
}

// AddItem validates item and appends it to the cart, keeping insertion order.
func (s *OrderService) AddItem(sess *SessionContext, item domain.LineItem) error {
	if sess.Identity == nil {
		return domain.ErrNoIdentity
	}

	item.Name = strings.TrimSpace(item.Name)
	item.Description = strings.TrimSpace(item.Description)
	item.Link = strings.TrimSpace(item.Link)
	if err := item.Validate(); err != nil {
		return err
	}

	sess.Cart = append(sess.Cart, item)
	return nil
}

// ClearCart empties the cart.
func (s *OrderService) ClearCart(sess *SessionContext) {
	sess.Cart = nil
}

// Submit appends the cart to the ledger. On success the cart is emptied and the
// operator notified (best-effort); on failure the cart is kept for a retry.
func (s *OrderService) Submit(ctx context.Context, sess *SessionContext) (*domain.Order, error) {
	if sess.Identity == nil {
		return nil, domain.ErrNoIdentity
	}
	if err := domain.ValidateItems(sess.Cart); err != nil {
		return nil, err
	}

	identity := *sess.Identity
	items := make([]domain.LineItem, len(sess.Cart))
	copy(items, sess.Cart)

	orderID, err := s.ledger.Append(ctx, identity, items)
	if err != nil {
		s.log.Error().Err(err).Str("client", identity.Name).Int("items", len(items)).Msg("order append failed")
		return nil, err
	}

	order := &domain.Order{
		ID:            orderID,
		CreatedAt:     orderTime(orderID),
		ClientName:    identity.Name,
		ClientContact: identity.Contact,
		Items:         items,
	}
	sess.Cart = nil

	s.log.Info().Str("order_id", orderID).Str("client", identity.Name).Int("items", len(items)).Msg("order submitted")

	if err := s.notifier.Notify(ctx, *order); err != nil {
		s.log.Warn().Err(err).Str("order_id", orderID).Msg("order notification failed")
	}
	return order, nil
}

func orderTime(orderID string) time.Time {
	t, err := time.ParseInLocation(domain.OrderIDLayout, orderID, time.Local)
	if err != nil {
		return time.Now()
	}
	return t
}
