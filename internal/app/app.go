package app

import (
	"context"
	"fmt"
	"time"

	"collegeadmin/internal/apiclient"
	"collegeadmin/internal/config"
	"collegeadmin/internal/editor"
	"collegeadmin/internal/handlers"
	"collegeadmin/internal/logger"
	"collegeadmin/internal/querycache"
	"collegeadmin/internal/routes"
	"collegeadmin/internal/services"
	"collegeadmin/internal/session"
	"collegeadmin/internal/upload"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const (
	draftSweepEvery = 10 * time.Minute
	draftIdle       = 2 * time.Hour
)

// InitApp собирает зависимости. ctx ограничивает фоновые задачи.
func InitApp(ctx context.Context, cfg *config.Config) (*mux.Router, error) {
	// Бэкенд и кэш запросов
	client := apiclient.NewClient(cfg.APIURL, cfg.APITimeout)
	cache := querycache.New(cfg.CacheTTL)

	// Сервисы
	authService := services.NewAuthService(client)
	collegeSvc := services.NewCollegeService(client, cache)
	tabSvc := services.NewTabService(client, cache)
	sectionSvc := services.NewSectionService(client, cache)
	noticeSvc := services.NewNoticeService(client, cache)
	festivalSvc := services.NewFestivalService(client, cache)
	highlightSvc := services.NewHighlightService(client, cache)
	pageSvc := services.NewPageService(client, cache)

	uploadSvc := upload.NewService(client, upload.Limits{
		Image: config.MaxBytes(cfg.UploadImageMaxMB),
		Video: config.MaxBytes(cfg.UploadVideoMaxMB),
		PDF:   config.MaxBytes(cfg.UploadPDFMaxMB),
		Any:   config.MaxBytes(cfg.UploadAnyMaxMB),
	})

	// Черновики редактора секций
	drafts := editor.NewStore(sectionSvc, uploadSvc)
	drafts.StartSweeper(ctx, draftSweepEvery, draftIdle)

	sm, err := session.NewManager(cfg.SessionSecret, cfg.SessionTTL, cfg.SecureCookie)
	if err != nil {
		return nil, fmt.Errorf("session manager: %w", err)
	}
	view, err := handlers.NewView(sm)
	if err != nil {
		return nil, err
	}

	// Хендлеры
	authHandler := handlers.NewAuthHandler(authService, sm, drafts, view)
	collegeH := handlers.NewCollegeHandler(collegeSvc, tabSvc, uploadSvc, view)
	tabH := handlers.NewTabHandler(collegeSvc, tabSvc, sectionSvc, view)
	sectionH := handlers.NewSectionHandler(collegeSvc, sectionSvc, drafts, uploadSvc, view)
	noticeH := handlers.NewNoticeHandler(collegeSvc, noticeSvc, uploadSvc, view)
	festivalH := handlers.NewFestivalHandler(collegeSvc, festivalSvc, uploadSvc, view)
	highlightH := handlers.NewHighlightHandler(collegeSvc, highlightSvc, uploadSvc, view)
	pageH := handlers.NewPageHandler(pageSvc, uploadSvc, view)
	apiH := handlers.NewAPIHandler(sectionSvc, uploadSvc)

	onExpire := func(sessionID string) {
		if n := drafts.CloseSession(sessionID); n > 0 {
			logger.Log.Info("Сессия истекла, черновики удалены", zap.Int("count", n))
		}
	}

	// Маршруты
	router := mux.NewRouter()
	routes.InitRoutes(router, sm, onExpire, cfg.AdminRoles,
		authHandler, collegeH, tabH, sectionH, noticeH, festivalH, highlightH, pageH, apiH)

	return router, nil
}
