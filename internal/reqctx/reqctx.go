// internal/reqctx/reqctx.go
package reqctx

import (
	"context"

	"collegeadmin/internal/models"
)

type key int

const (
	keyRequestID key = iota
	keyUser
	keySessionID
)

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

func GetRequestID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keyRequestID).(string)
	return v, ok
}

// WithUser кладёт в контекст сохранённую запись пользователя (вместе с токеном бэкенда).
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, keyUser, u)
}

func GetUser(ctx context.Context) (*models.User, bool) {
	v, ok := ctx.Value(keyUser).(*models.User)
	return v, ok && v != nil
}

// Token возвращает bearer-токен для запросов к бэкенду или пустую строку.
func Token(ctx context.Context) string {
	if u, ok := GetUser(ctx); ok {
		return u.Token
	}
	return ""
}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keySessionID, id)
}

func GetSessionID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(keySessionID).(string)
	return v, ok && v != ""
}
