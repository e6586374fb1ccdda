package middleware

import (
	"net/http"
	"strings"

	pkgAuth "github.com/prontopizzas/pronto-backend/pkg/auth"
	"github.com/prontopizzas/pronto-backend/pkg/config"
	"github.com/prontopizzas/pronto-backend/pkg/logger"
)

// Authenticate seeds the request context from a bearer token. Requests
// without a valid token continue anonymously; the role guards decide what
// that means.
func Authenticate(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return authenticate(cfg, logg, bearerToken)
}

// AuthenticateCookie reads the identity cookie. It is only mounted on the
// anti-forgery protected HTML groups and leaves a bearer identity alone.
func AuthenticateCookie(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return authenticate(cfg, logg, func(r *http.Request) string {
		if UserIDFromContext(r.Context()) != "" || cfg.CookieName == "" {
			return ""
		}
		if cookie, err := r.Cookie(cfg.CookieName); err == nil {
			return strings.TrimSpace(cookie.Value)
		}
		return ""
	})
}

func authenticate(cfg config.JWTConfig, logg *logger.Logger, source func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := source(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				if logg != nil {
					logg.Warn(logg.WithField(r.Context(), "reason", err.Error()), "auth.token_rejected")
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := WithUserID(r.Context(), claims.Subject)
			ctx = WithRoles(ctx, claims.Roles)
			if logg != nil {
				ctx = logg.WithUserID(ctx, claims.Subject)
				ctx = logg.WithRoles(ctx, claims.Roles)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(raw), "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}
