package services

import (
	"context"
	"strings"

	"collegeadmin/internal/models"
	"collegeadmin/internal/querycache"
)

type SectionAPI interface {
	ListSections(ctx context.Context, tabID string) ([]models.Section, error)
	GetSection(ctx context.Context, collegeID, tabID, sectionID string) (*models.Section, error)
	AddSection(ctx context.Context, collegeID, tabID string, in models.CreateSectionRequest) error
	UpdateSection(ctx context.Context, collegeID, sectionID string, in models.SectionUpdate) error
	DeleteSection(ctx context.Context, collegeID, tabID, sectionID string) error
}

// SectionRef адресует секцию. Parent — id вкладки или хайлайта:
// бэкенд отдаёт секции хайлайта по тому же пути, что и секции вкладки.
type SectionRef struct {
	CollegeID string
	ParentID  string
	SectionID string
}

// Key возвращает ключ записи секции в кэше (тег Sections).
func (r SectionRef) Key() string {
	return joinKey(r.CollegeID, r.ParentID, r.SectionID)
}

type SectionService struct {
	api   SectionAPI
	cache *querycache.Cache
}

func NewSectionService(api SectionAPI, cache *querycache.Cache) *SectionService {
	return &SectionService{api: api, cache: cache}
}

func (s *SectionService) ListByTab(ctx context.Context, tabID string) ([]models.Section, error) {
	return querycache.Query(ctx, s.cache, querycache.TagSections, joinKey("tab", tabID), func(ctx context.Context) ([]models.Section, error) {
		return s.api.ListSections(ctx, tabID)
	})
}

func (s *SectionService) Get(ctx context.Context, ref SectionRef) (*models.Section, error) {
	return querycache.Query(ctx, s.cache, querycache.TagSections, ref.Key(), func(ctx context.Context) (*models.Section, error) {
		return s.api.GetSection(ctx, ref.CollegeID, ref.ParentID, ref.SectionID)
	})
}

// Subscribe доставляет fn каждое новое значение секции, в том числе
// после фонового перезапроса по инвалидации.
func (s *SectionService) Subscribe(ctx context.Context, ref SectionRef, fn func(*models.Section)) (unsubscribe func()) {
	return querycache.Subscribe(ctx, s.cache, querycache.TagSections, ref.Key(), fn)
}

func (s *SectionService) Add(ctx context.Context, collegeID, tabID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	return mutate(ctx, s.cache, "addSectionToTab", func() error {
		return s.api.AddSection(ctx, collegeID, tabID, models.CreateSectionRequest{Name: name})
	}, querycache.TagSections)
}

// Update соответствует updateSectionById.
func (s *SectionService) Update(ctx context.Context, ref SectionRef, in models.SectionUpdate) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrEmptyName
	}
	return mutate(ctx, s.cache, "updateSectionById", func() error {
		return s.api.UpdateSection(ctx, ref.CollegeID, ref.SectionID, in)
	}, querycache.TagSections)
}

func (s *SectionService) Delete(ctx context.Context, ref SectionRef) error {
	return mutate(ctx, s.cache, "deleteSectionById", func() error {
		return s.api.DeleteSection(ctx, ref.CollegeID, ref.ParentID, ref.SectionID)
	}, querycache.TagSections)
}
