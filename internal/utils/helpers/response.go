package helpers

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Response — конверт JSON API дашборда.
type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// write отдаёт конверт. Ответы зависят от токена пользователя, поэтому
// промежуточным кэшам их хранить нельзя.
func write(w http.ResponseWriter, status int, body Response) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	write(w, status, Response{Data: data})
}

// Error отдаёт конверт с ошибкой. Пустой текст заменяется стандартным для статуса.
func Error(w http.ResponseWriter, status int, errMsg string) {
	if strings.TrimSpace(errMsg) == "" {
		errMsg = strings.ToLower(http.StatusText(status))
	}
	write(w, status, Response{Error: errMsg})
}

// WantsJSON — запрос пришёл в JSON API, а не со страницы дашборда.
func WantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/") ||
		strings.Contains(r.Header.Get("Accept"), "application/json")
}
