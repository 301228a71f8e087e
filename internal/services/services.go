package services

import (
	"context"
	"strings"

	"collegeadmin/internal/logger"
	"collegeadmin/internal/querycache"

	"go.uber.org/zap"
)

// mutate выполняет запрос на изменение и только после успешного ответа
// инвалидирует теги. Отклонённая мутация кэш не трогает.
func mutate(ctx context.Context, cache *querycache.Cache, op string, fn func() error, tags ...querycache.Tag) error {
	log := logger.WithCtx(ctx)
	if err := fn(); err != nil {
		log.Warn("Сервис: мутация отклонена", zap.String("op", op), zap.Error(err))
		return err
	}
	cache.Invalidate(ctx, tags...)
	log.Info("Сервис: мутация выполнена", zap.String("op", op), zap.Any("invalidated", tags))
	return nil
}

func joinKey(parts ...string) string {
	return strings.Join(parts, "/")
}
