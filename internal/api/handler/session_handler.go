package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cereza/orderdesk/internal/api/metrics"
	"github.com/cereza/orderdesk/internal/api/middleware"
	"github.com/cereza/orderdesk/internal/core/domain"
	"github.com/cereza/orderdesk/internal/core/service"
)

// SessionHandler exposes the login state machine.
type SessionHandler struct {
	login *service.LoginService
}

func NewSessionHandler(login *service.LoginService) *SessionHandler {
	return &SessionHandler{login: login}
}

// Get returns the current stage and identity.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Param        uid  query     string  false  "Identity token"
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess, middleware.Token(c)))
}

// Login submits a name/contact pair.
//
// @Summary      Log in
// @Description  Clients are logged in directly. The reserved admin pair opens a password challenge.
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Name and contact"
// @Success      200   {object}  sessionResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.login.Submit(c.Request().Context(), sess, req.Name, req.Contact); err != nil {
		return err
	}

	outcome := "client"
	if sess.Stage == domain.StagePasswordChallenge {
		outcome = "challenge"
	}
	metrics.LoginsTotal.WithLabelValues(outcome).Inc()
	return c.JSON(http.StatusOK, toSessionResponse(sess, middleware.Token(c)))
}

// Elevate answers the password challenge.
//
// @Summary      Admin password
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      elevateRequest  true  "Admin password"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/session/elevate [post]
func (h *SessionHandler) Elevate(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req elevateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.login.Elevate(c.Request().Context(), sess, req.Password); err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}
	metrics.LoginsTotal.WithLabelValues("elevated").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(sess, middleware.Token(c)))
}

// LeaveAdmin drops the admin role.
//
// @Summary      Leave admin mode
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/session/leave-admin [post]
func (h *SessionHandler) LeaveAdmin(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.login.LeaveAdmin(c.Request().Context(), sess); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(sess, middleware.Token(c)))
}

// Logout clears the identity, the token and the cart.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	h.login.Logout(c.Request().Context(), sess)
	metrics.LoginsTotal.WithLabelValues("logout").Inc()
	return c.JSON(http.StatusOK, toSessionResponse(sess, ""))
}
