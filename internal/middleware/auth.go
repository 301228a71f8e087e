package middleware

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"collegeadmin/internal/logger"
	"collegeadmin/internal/reqctx"
	"collegeadmin/internal/session"
	"collegeadmin/internal/utils/helpers"
)

type hookKey struct{}

// userHook заполняется RequireUser, чтобы Logging видел пользователя,
// хотя сам стоит снаружи.
type userHook struct {
	userID string
	role   string
}

func withUserHook(ctx context.Context, h *userHook) context.Context {
	return context.WithValue(ctx, hookKey{}, h)
}

// RequireUser — гейт авторизованных маршрутов. Без сохранённого
// пользователя страницы уводят на /auth/login, JSON API отвечает 401. Истёкший
// токен бэкенда стирает сессию; onExpire получает её id.
func RequireUser(sm *session.Manager, onExpire func(sessionID string)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := sm.User(r)
			if ok && session.TokenExpired(u.Token, time.Now()) {
				logger.WithCtx(r.Context()).Info("Авторизация: токен истёк, сессия сброшена")
				sid, _ := sm.Logout(w, r)
				if onExpire != nil && sid != "" {
					onExpire(sid)
				}
				_ = sm.AddToast(w, r, session.ToastError, "Your session has expired. Please log in again.")
				ok = false
			}
			if !ok {
				deny(w, r)
				return
			}

			ctx := reqctx.WithUser(r.Context(), u)
			ctx = reqctx.WithSessionID(ctx, sm.ID(r))
			if h, ok := ctx.Value(hookKey{}).(*userHook); ok {
				h.userID, h.role = u.ID, u.Role
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func deny(w http.ResponseWriter, r *http.Request) {
	if helpers.WantsJSON(r) {
		helpers.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	target := "/auth/login"
	if r.Method == http.MethodGet && r.URL.Path != "/" {
		target += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, target, http.StatusFound)
}
