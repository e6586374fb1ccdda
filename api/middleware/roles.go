package middleware

import (
	"net/http"

	"github.com/prontopizzas/pronto-backend/api/responses"
	"github.com/prontopizzas/pronto-backend/pkg/enums"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
)

// RequireAnyRole rejects JSON requests whose caller holds none of roles.
func RequireAnyRole(logg *logger.Logger, roles ...enums.Role) func(http.Handler) http.Handler {
	return requireAnyRole(roles, func(w http.ResponseWriter, r *http.Request, err error) {
		responses.WriteError(r.Context(), logg, w, err)
	})
}

// RequireAnyRoleHTML is RequireAnyRole for the server-rendered views.
func RequireAnyRoleHTML(page responses.ErrorPage, logg *logger.Logger, roles ...enums.Role) func(http.Handler) http.Handler {
	return requireAnyRole(roles, func(w http.ResponseWriter, r *http.Request, err error) {
		responses.WriteHTMLError(r.Context(), logg, w, page, err)
	})
}

func requireAnyRole(roles []enums.Role, reject func(http.ResponseWriter, *http.Request, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if UserIDFromContext(r.Context()) == "" {
				reject(w, r, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required"))
				return
			}
			if !HasAnyRole(r.Context(), roles...) {
				reject(w, r, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
