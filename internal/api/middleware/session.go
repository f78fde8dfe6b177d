package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/service"
)

const (
	// VisitorCookie carries the visitor id between requests of one browser.
	VisitorCookie = "visitor"
	// HeaderVisitorID lets non-browser clients pick their visitor id.
	HeaderVisitorID = "X-Visitor-ID"
	// HeaderUID carries the freshly persisted identity token on responses.
	HeaderUID = "X-Uid"
	// QueryUID is the query parameter the identity token is read from.
	QueryUID = "uid"

	ctxSession = "session"
	ctxSlot    = "uid_slot"
)

// querySlot is the HTTP token slot: it reads uid from the query and writes
// the new token to the X-Uid response header.
type querySlot struct {
	c     echo.Context
	token string
}

func newQuerySlot(c echo.Context) *querySlot {
	raw := c.QueryParam(QueryUID)
	if raw == "" {
		return &querySlot{c: c}
	}
	// Echo already removed the transport escaping; restore the token as issued.
	return &querySlot{c: c, token: url.QueryEscape(raw)}
}

func (s *querySlot) Load() string { return s.token }

func (s *querySlot) Store(token string) {
	s.token = token
	s.c.Response().Header().Set(HeaderUID, token)
}

func (s *querySlot) Clear() {
	s.token = ""
	s.c.Response().Header().Set(HeaderUID, "")
}

// Session rehydrates the visitor's SessionContext before the handler runs and
// saves what must survive once it returns.
func Session(loader *service.SessionLoader, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			visitorID := visitorID(c)
			slot := newQuerySlot(c)

			ctx := c.Request().Context()
			sess := loader.Begin(ctx, visitorID, slot)
			c.Set(ctxSession, sess)
			c.Set(ctxSlot, slot)

			err := next(c)

			if endErr := loader.End(ctx, sess); endErr != nil {
				log.Warn().Err(endErr).Str("visitor", visitorID).Msg("visitor state not saved")
			}
			return err
		}
	}
}

// visitorID takes the id from the header, then the cookie, and issues a new
// one (UUIDv7) as an HttpOnly cookie when neither is present.
func visitorID(c echo.Context) string {
	if id := strings.TrimSpace(c.Request().Header.Get(HeaderVisitorID)); id != "" {
		return id
	}
	if ck, err := c.Cookie(VisitorCookie); err == nil && ck.Value != "" {
		return ck.Value
	}

	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	c.SetCookie(&http.Cookie{
		Name:     VisitorCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id.String()
}

// SessionFrom returns the SessionContext installed by Session, or nil.
func SessionFrom(c echo.Context) *service.SessionContext {
	sess, _ := c.Get(ctxSession).(*service.SessionContext)
	return sess
}

// Token returns the identity token as it stands after the handler's changes.
func Token(c echo.Context) string {
	slot, _ := c.Get(ctxSlot).(*querySlot)
	if slot == nil {
		return ""
	}
	return slot.token
}
