package middleware

import (
	"net/http"

	"collegeadmin/internal/logger"
	"collegeadmin/internal/reqctx"
	"collegeadmin/internal/utils/helpers"

	"go.uber.org/zap"
)

// AnyRole пропускает пользователя с одной из ролей. Ставится после RequireUser.
// Без ролей пропускает всех.
func AnyRole(allowedRoles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]struct{})
	for _, r := range allowedRoles {
		roleSet[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(roleSet) == 0 {
				next.ServeHTTP(w, r)
				return
			}
			u, ok := reqctx.GetUser(r.Context())
			if ok {
				if _, found := roleSet[u.Role]; found {
					next.ServeHTTP(w, r)
					return
				}
			}

			role := ""
			if ok {
				role = u.Role
			}
			logger.WithCtx(r.Context()).Warn("Доступ запрещён", zap.String("role", role))
			if helpers.WantsJSON(r) {
				helpers.Error(w, http.StatusForbidden, "forbidden")
				return
			}
			http.Error(w, "You do not have access to the admin dashboard", http.StatusForbidden)
		})
	}
}
