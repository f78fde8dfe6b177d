package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/cereza/orderdesk/internal/core/domain"
)

func TestHTTPErrorHandler_MapsDomainErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{fmt.Errorf("%w: name is required", domain.ErrValidation), http.StatusUnprocessableEntity, "validation failed: name is required"},
		{fmt.Errorf("%w (open x: permission denied)", domain.ErrLedgerLocked), http.StatusLocked, domain.ErrLedgerLocked.Error()},
		{fmt.Errorf("%w: disk full", domain.ErrStorage), http.StatusInternalServerError, "storage error: disk full"},
		{domain.ErrAccessDenied, http.StatusUnauthorized, "access denied"},
		{domain.ErrNoIdentity, http.StatusUnauthorized, "not logged in"},
		{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{fmt.Errorf("login: %w", domain.ErrInvalidTransition), http.StatusConflict, "login: invalid login transition"},
		{domain.ErrNoData, http.StatusNotFound, "no orders recorded yet"},
		{echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		h(tc.err, c)

		if rec.Code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
			continue
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body.Error != tc.msg {
			t.Errorf("%v: expected message %q, got %q", tc.err, tc.msg, body.Error)
		}
	}
}
