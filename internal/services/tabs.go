package services

import (
	"context"
	"strings"

	"collegeadmin/internal/models"
	"collegeadmin/internal/querycache"
)

type TabAPI interface {
	ListTabs(ctx context.Context, collegeID string) ([]models.Tab, error)
	GetTab(ctx context.Context, collegeID, tabID string) (*models.Tab, error)
	AddTab(ctx context.Context, collegeID string, in models.TabInput) error
	UpdateTab(ctx context.Context, tabID string, in models.TabInput) error
	DeleteTab(ctx context.Context, collegeID, tabID string) error
}

type TabService struct {
	api   TabAPI
	cache *querycache.Cache
}

func NewTabService(api TabAPI, cache *querycache.Cache) *TabService {
	return &TabService{api: api, cache: cache}
}

func (s *TabService) ListByCollege(ctx context.Context, collegeID string) ([]models.Tab, error) {
	return querycache.Query(ctx, s.cache, querycache.TagTabs, joinKey("college", collegeID), func(ctx context.Context) ([]models.Tab, error) {
		return s.api.ListTabs(ctx, collegeID)
	})
}

func (s *TabService) Get(ctx context.Context, collegeID, tabID string) (*models.Tab, error) {
	return querycache.Query(ctx, s.cache, querycache.TagTabs, joinKey(collegeID, tabID), func(ctx context.Context) (*models.Tab, error) {
		return s.api.GetTab(ctx, collegeID, tabID)
	})
}

func normalizeTab(in models.TabInput) (models.TabInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return in, ErrEmptyName
	}
	in.Key = strings.TrimSpace(in.Key)
	return in, nil
}

func (s *TabService) Add(ctx context.Context, collegeID string, in models.TabInput) error {
	in, err := normalizeTab(in)
	if err != nil {
		return err
	}
	return mutate(ctx, s.cache, "addTabToCollege", func() error {
		return s.api.AddTab(ctx, collegeID, in)
	}, querycache.TagTabs)
}

func (s *TabService) Update(ctx context.Context, tabID string, in models.TabInput) error {
	in, err := normalizeTab(in)
	if err != nil {
		return err
	}
	return mutate(ctx, s.cache, "updateTabById", func() error {
		return s.api.UpdateTab(ctx, tabID, in)
	}, querycache.TagTabs)
}

func (s *TabService) Delete(ctx context.Context, collegeID, tabID string) error {
	return mutate(ctx, s.cache, "deleteTabById", func() error {
		return s.api.DeleteTab(ctx, collegeID, tabID)
	}, querycache.TagTabs, querycache.TagSingleCollege, querycache.TagColleges)
}
