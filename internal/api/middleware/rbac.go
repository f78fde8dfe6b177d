package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/cereza/orderdesk/internal/core/domain"
)

// RBAC admits only sessions whose identity holds one of allowedRoles.
// It must run after Session.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			if sess == nil || sess.Identity == nil {
				return domain.ErrNoIdentity
			}
			if _, ok := allowed[sess.Identity.Role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireIdentity admits any logged-in session.
func RequireIdentity() echo.MiddlewareFunc {
	return RBAC(domain.RoleClient, domain.RoleAdmin)
}
