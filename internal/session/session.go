// Package session хранит состояние клиента в подписанной и зашифрованной
// cookie: запись пользователя с токеном бэкенда, id сессии для черновиков
// редактора и flash-уведомления (тосты).
package session

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"collegeadmin/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/hkdf"
)

const (
	CookieName = "collegeadmin_session"

	keyUser = "user"
	keySID  = "sid"

	// cookie ограничена 4096 байтами, тосты в ней держатся недолго
	maxToasts      = 3
	maxToastLength = 200

	// ключ для разработки, если SESSION_SECRET не задан (config.Validate не пускает так в prod)
	devSecret = "collegeadmin-development-session-secret"
)

type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

type Toast struct {
	Kind    ToastKind `json:"kind"`
	Message string    `json:"message"`
}

type Manager struct {
	store *sessions.CookieStore
}

// deriveKeys выводит ключ подписи (HMAC-SHA256) и ключ шифрования (AES-256)
// из одного секрета.
func deriveKeys(secret string) (hashKey, blockKey []byte, err error) {
	r := hkdf.New(sha256.New, []byte(secret), []byte("collegeadmin/session"), []byte("cookie keys v1"))
	hashKey = make([]byte, 32)
	blockKey = make([]byte, 32)
	if _, err = io.ReadFull(r, hashKey); err != nil {
		return nil, nil, err
	}
	if _, err = io.ReadFull(r, blockKey); err != nil {
		return nil, nil, err
	}
	return hashKey, blockKey, nil
}

func NewManager(secret string, ttl time.Duration, secure bool) (*Manager, error) {
	if secret == "" {
		secret = devSecret
	}
	hashKey, blockKey, err := deriveKeys(secret)
	if err != nil {
		return nil, fmt.Errorf("derive session keys: %w", err)
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Manager{store: store}, nil
}

// get не возвращает ошибку: битая или чужая cookie даёт пустую сессию.
func (m *Manager) get(r *http.Request) *sessions.Session {
	s, _ := m.store.Get(r, CookieName)
	return s
}

// User возвращает сохранённую запись пользователя.
func (m *Manager) User(r *http.Request) (*models.User, bool) {
	raw, ok := m.get(r).Values[keyUser].(string)
	if !ok || raw == "" {
		return nil, false
	}
	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.Token == "" {
		return nil, false
	}
	return &u, true
}

// ID возвращает идентификатор сессии, выданный при входе.
func (m *Manager) ID(r *http.Request) string {
	id, _ := m.get(r).Values[keySID].(string)
	return id
}

// Login сохраняет пользователя и выдаёт новый id сессии.
func (m *Manager) Login(w http.ResponseWriter, r *http.Request, u *models.User) error {
	if u == nil || u.Token == "" {
		return errors.New("session: user without token")
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	s := m.get(r)
	s.Values[keyUser] = string(raw)
	s.Values[keySID] = uuid.NewString()
	return s.Save(r, w)
}

// Logout стирает сессию и возвращает её прежний id, чтобы вызывающий
// мог выбросить связанные черновики.
func (m *Manager) Logout(w http.ResponseWriter, r *http.Request) (string, error) {
	s := m.get(r)
	sid, _ := s.Values[keySID].(string)
	delete(s.Values, keyUser)
	delete(s.Values, keySID)
	return sid, s.Save(r, w)
}

// AddToast ставит уведомление, которое покажет следующая отрисованная страница.
// Длинный текст обрезается, из очереди вытесняются самые старые тосты.
func (m *Manager) AddToast(w http.ResponseWriter, r *http.Request, kind ToastKind, msg string) error {
	raw, err := json.Marshal(Toast{Kind: kind, Message: truncate(msg, maxToastLength)})
	if err != nil {
		return err
	}
	s := m.get(r)
	queue := append(s.Flashes(), string(raw))
	if len(queue) > maxToasts {
		queue = queue[len(queue)-maxToasts:]
	}
	for _, f := range queue {
		s.AddFlash(f)
	}
	return s.Save(r, w)
}

func truncate(msg string, n int) string {
	runes := []rune(msg)
	if len(runes) <= n {
		return msg
	}
	return string(runes[:n-1]) + "…"
}

// Toasts забирает накопленные уведомления. Вызывать до записи тела ответа.
func (m *Manager) Toasts(w http.ResponseWriter, r *http.Request) []Toast {
	s := m.get(r)
	flashes := s.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	_ = s.Save(r, w)

	out := make([]Toast, 0, len(flashes))
	for _, f := range flashes {
		raw, ok := f.(string)
		if !ok {
			continue
		}
		var t Toast
		if err := json.Unmarshal([]byte(raw), &t); err == nil && t.Message != "" {
			out = append(out, t)
		}
	}
	return out
}

// TokenExpired читает exp из токена бэкенда без проверки подписи: ключа у
// дашборда нет, бэкенд всё равно проверит токен сам. Непрозрачные токены и
// токены без exp считаются действующими.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !now.Before(exp.Time)
}
