package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"collegeadmin/internal/logger"
	"collegeadmin/internal/utils/helpers"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Recoverer превращает панику обработчика в 500. http.ErrAbortHandler
// пробрасывается дальше: им сервер обрывает ответ намеренно.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			fields := []zap.Field{
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			}
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					fields = append(fields, zap.String("route", tpl))
				}
			}
			for _, key := range []string{"collegeId", "tabId", "sectionId"} {
				if v, ok := mux.Vars(r)[key]; ok {
					fields = append(fields, zap.String(key, v))
				}
			}
			logger.WithCtx(r.Context()).Error("Паника в обработчике", fields...)

			if helpers.WantsJSON(r) {
				helpers.Error(w, http.StatusInternalServerError, "")
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}
