package services

import (
	"context"
	"errors"
	"strings"

	"collegeadmin/internal/models"
	"collegeadmin/internal/querycache"
)

var ErrEmptyTitle = errors.New("title is required")

// Notices

type NoticeAPI interface {
	ListNotices(ctx context.Context, collegeID string) ([]models.Notice, error)
	GetNotice(ctx context.Context, collegeID, noticeID string) (*models.Notice, error)
	AddNotice(ctx context.Context, in models.NoticeInput) error
	UpdateNotice(ctx context.Context, noticeID string, in models.NoticeInput) error
	DeleteNotice(ctx context.Context, collegeID, noticeID string) error
}

type NoticeService struct {
	api   NoticeAPI
	cache *querycache.Cache
}

func NewNoticeService(api NoticeAPI, cache *querycache.Cache) *NoticeService {
	return &NoticeService{api: api, cache: cache}
}

func (s *NoticeService) List(ctx context.Context, collegeID string) ([]models.Notice, error) {
	return querycache.Query(ctx, s.cache, querycache.TagNotices, joinKey("college", collegeID), func(ctx context.Context) ([]models.Notice, error) {
		return s.api.ListNotices(ctx, collegeID)
	})
}

func (s *NoticeService) Get(ctx context.Context, collegeID, noticeID string) (*models.Notice, error) {
	return querycache.Query(ctx, s.cache, querycache.TagNotices, joinKey(collegeID, noticeID), func(ctx context.Context) (*models.Notice, error) {
		return s.api.GetNotice(ctx, collegeID, noticeID)
	})
}

func (s *NoticeService) Add(ctx context.Context, in models.NoticeInput) error {
	if in.Title = strings.TrimSpace(in.Title); in.Title == "" {
		return ErrEmptyTitle
	}
	return mutate(ctx, s.cache, "addNotice", func() error {
		return s.api.AddNotice(ctx, in)
	}, querycache.TagNotices)
}

func (s *NoticeService) Update(ctx context.Context, noticeID string, in models.NoticeInput) error {
	if in.Title = strings.TrimSpace(in.Title); in.Title == "" {
		return ErrEmptyTitle
	}
	return mutate(ctx, s.cache, "updateNotice", func() error {
		return s.api.UpdateNotice(ctx, noticeID, in)
	}, querycache.TagNotices)
}

func (s *NoticeService) Delete(ctx context.Context, collegeID, noticeID string) error {
	return mutate(ctx, s.cache, "deleteNotice", func() error {
		return s.api.DeleteNotice(ctx, collegeID, noticeID)
	}, querycache.TagNotices)
}

// Festivals

type FestivalAPI interface {
	ListFestivals(ctx context.Context, collegeID string) ([]models.Festival, error)
	GetFestival(ctx context.Context, collegeID, festivalID string) (*models.Festival, error)
	CreateFestival(ctx context.Context, in models.FestivalInput) error
	UpdateFestival(ctx context.Context, festivalID string, in models.FestivalInput) error
	DeleteFestival(ctx context.Context, collegeID, festivalID string) error
}

type FestivalService struct {
	api   FestivalAPI
	cache *querycache.Cache
}

func NewFestivalService(api FestivalAPI, cache *querycache.Cache) *FestivalService {
	return &FestivalService{api: api, cache: cache}
}

func (s *FestivalService) List(ctx context.Context, collegeID string) ([]models.Festival, error) {
	return querycache.Query(ctx, s.cache, querycache.TagFestivals, joinKey("college", collegeID), func(ctx context.Context) ([]models.Festival, error) {
		return s.api.ListFestivals(ctx, collegeID)
	})
}

func (s *FestivalService) Get(ctx context.Context, collegeID, festivalID string) (*models.Festival, error) {
	return querycache.Query(ctx, s.cache, querycache.TagFestivals, joinKey(collegeID, festivalID), func(ctx context.Context) (*models.Festival, error) {
		return s.api.GetFestival(ctx, collegeID, festivalID)
	})
}

func (s *FestivalService) Create(ctx context.Context, in models.FestivalInput) error {
	if in.Name = strings.TrimSpace(in.Name); in.Name == "" {
		return ErrEmptyName
	}
	return mutate(ctx, s.cache, "createFestival", func() error {
		return s.api.CreateFestival(ctx, in)
	}, querycache.TagFestivals)
}

func (s *FestivalService) Update(ctx context.Context, festivalID string, in models.FestivalInput) error {
	if in.Name = strings.TrimSpace(in.Name); in.Name == "" {
		return ErrEmptyName
	}
	return mutate(ctx, s.cache, "updateFestival", func() error {
		return s.api.UpdateFestival(ctx, festivalID, in)
	}, querycache.TagFestivals)
}

func (s *FestivalService) Delete(ctx context.Context, collegeID, festivalID string) error {
	return mutate(ctx, s.cache, "deleteFestival", func() error {
		return s.api.DeleteFestival(ctx, collegeID, festivalID)
	}, querycache.TagFestivals)
}

// Highlights

type HighlightAPI interface {
	ListHighlights(ctx context.Context, collegeID string) ([]models.Highlight, error)
	GetHighlight(ctx context.Context, collegeID, highlightID string) (*models.Highlight, error)
	CreateHighlight(ctx context.Context, in models.HighlightInput) error
	UpdateHighlight(ctx context.Context, highlightID string, in models.HighlightInput) error
	DeleteHighlight(ctx context.Context, collegeID, highlightID string) error
	AddHighlightSection(ctx context.Context, collegeID, highlightID string, in models.CreateSectionRequest) (*models.Section, error)
}

type HighlightService struct {
	api   HighlightAPI
	cache *querycache.Cache
}

func NewHighlightService(api HighlightAPI, cache *querycache.Cache) *HighlightService {
	return &HighlightService{api: api, cache: cache}
}

func (s *HighlightService) List(ctx context.Context, collegeID string) ([]models.Highlight, error) {
	return querycache.Query(ctx, s.cache, querycache.TagHighlights, joinKey("college", collegeID), func(ctx context.Context) ([]models.Highlight, error) {
		return s.api.ListHighlights(ctx, collegeID)
	})
}

func (s *HighlightService) Get(ctx context.Context, collegeID, highlightID string) (*models.Highlight, error) {
	return querycache.Query(ctx, s.cache, querycache.TagHighlights, joinKey(collegeID, highlightID), func(ctx context.Context) (*models.Highlight, error) {
		return s.api.GetHighlight(ctx, collegeID, highlightID)
	})
}

func (s *HighlightService) Create(ctx context.Context, in models.HighlightInput) error {
	if in.Title = strings.TrimSpace(in.Title); in.Title == "" {
		return ErrEmptyTitle
	}
	return mutate(ctx, s.cache, "createHighlight", func() error {
		return s.api.CreateHighlight(ctx, in)
	}, querycache.TagHighlights)
}

func (s *HighlightService) Update(ctx context.Context, highlightID string, in models.HighlightInput) error {
	if in.Title = strings.TrimSpace(in.Title); in.Title == "" {
		return ErrEmptyTitle
	}
	return mutate(ctx, s.cache, "updateHighlight", func() error {
		return s.api.UpdateHighlight(ctx, highlightID, in)
	}, querycache.TagHighlights)
}

func (s *HighlightService) Delete(ctx context.Context, collegeID, highlightID string) error {
	return mutate(ctx, s.cache, "deleteHighlight", func() error {
		return s.api.DeleteHighlight(ctx, collegeID, highlightID)
	}, querycache.TagHighlights)
}

// AddSection создаёт секцию хайлайта с именем "<title> Section".
func (s *HighlightService) AddSection(ctx context.Context, collegeID, highlightID, title string) (*models.Section, error) {
	name := strings.TrimSpace(title) + " Section"
	var created *models.Section
	err := mutate(ctx, s.cache, "addSectionToHighlight", func() (err error) {
		created, err = s.api.AddHighlightSection(ctx, collegeID, highlightID, models.CreateSectionRequest{Name: strings.TrimSpace(name)})
		return err
	}, querycache.TagHighlights, querycache.TagSections)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Pages

type PageAPI interface {
	ListPages(ctx context.Context) ([]models.Page, error)
	GetPage(ctx context.Context, id string) (*models.Page, error)
	UpdatePageContent(ctx context.Context, id string, in models.PageInput) error
}

type PageService struct {
	api   PageAPI
	cache *querycache.Cache
}

func NewPageService(api PageAPI, cache *querycache.Cache) *PageService {
	return &PageService{api: api, cache: cache}
}

func (s *PageService) List(ctx context.Context) ([]models.Page, error) {
	return querycache.Query(ctx, s.cache, querycache.TagPages, "", s.api.ListPages)
}

func (s *PageService) Get(ctx context.Context, id string) (*models.Page, error) {
	return querycache.Query(ctx, s.cache, querycache.TagPages, id, func(ctx context.Context) (*models.Page, error) {
		return s.api.GetPage(ctx, id)
	})
}

func (s *PageService) UpdateContent(ctx context.Context, id string, in models.PageInput) error {
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	return mutate(ctx, s.cache, "updatePageContent", func() error {
		return s.api.UpdatePageContent(ctx, id, in)
	}, querycache.TagPages)
}
