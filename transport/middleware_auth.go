package transport

import (
	"net/http"
	"strings"

	"github.com/placemarkhq/placemark/application/user"
	"github.com/placemarkhq/placemark/cmd/config"
	"github.com/placemarkhq/placemark/constant"
	utilsContext "github.com/placemarkhq/placemark/utils/context"
	"github.com/placemarkhq/placemark/utils/errors"
)

// requireBearer wraps an API handler: a valid bearer token attaches the
// principal to the request context, anything else is a 401.
func requireBearer(userApp user.UserApp, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
			return
		}
		token := strings.TrimPrefix(auth, "Bearer ")

		principal, err := userApp.ValidateToken(r.Context(), token)
		if err != nil {
			writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
			return
		}

		ctx := utilsContext.SetPrincipal(r.Context(), principal)
		ctx = utilsContext.SetUserID(ctx, principal.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// requireSession wraps an HTML handler: a valid session cookie attaches the
// principal, anything else redirects to the login page.
func requireSession(cfg *config.Config, userApp user.UserApp, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cfg.Auth.CookieName)
		if err != nil || cookie.Value == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		principal, err := userApp.ValidateToken(r.Context(), cookie.Value)
		if err != nil {
			clearSessionCookie(w, cfg)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := utilsContext.SetPrincipal(r.Context(), principal)
		ctx = utilsContext.SetUserID(ctx, principal.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func setSessionCookie(w http.ResponseWriter, cfg *config.Config, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Auth.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.Auth.CookieSecure,
		MaxAge:   int(cfg.Auth.SessionExpTime.Seconds()),
	})
}

func clearSessionCookie(w http.ResponseWriter, cfg *config.Config) {
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.Auth.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.Auth.CookieSecure,
		MaxAge:   -1,
	})
}
