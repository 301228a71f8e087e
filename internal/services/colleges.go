package services

import (
	"context"
	"errors"
	"strings"

	"collegeadmin/internal/logger"
	"collegeadmin/internal/models"
	"collegeadmin/internal/querycache"

	"go.uber.org/zap"
)

var ErrEmptyName = errors.New("name is required")

type CollegeAPI interface {
	ListColleges(ctx context.Context) ([]models.College, error)
	GetCollege(ctx context.Context, id string) (*models.College, error)
	CreateCollege(ctx context.Context, in models.CollegeInput) (*models.College, error)
	UpdateCollege(ctx context.Context, id string, in models.CollegeInput) error
}

type CollegeService struct {
	api   CollegeAPI
	cache *querycache.Cache
}

func NewCollegeService(api CollegeAPI, cache *querycache.Cache) *CollegeService {
	return &CollegeService{api: api, cache: cache}
}

func (s *CollegeService) List(ctx context.Context) ([]models.College, error) {
	return querycache.Query(ctx, s.cache, querycache.TagColleges, "", s.api.ListColleges)
}

func (s *CollegeService) Get(ctx context.Context, id string) (*models.College, error) {
	return querycache.Query(ctx, s.cache, querycache.TagSingleCollege, id, func(ctx context.Context) (*models.College, error) {
		return s.api.GetCollege(ctx, id)
	})
}

func (s *CollegeService) Create(ctx context.Context, in models.CollegeInput) (*models.College, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrEmptyName
	}
	var created *models.College
	err := mutate(ctx, s.cache, "createCollege", func() (err error) {
		created, err = s.api.CreateCollege(ctx, in)
		return err
	}, querycache.TagColleges)
	if err != nil {
		return nil, err
	}
	logger.WithCtx(ctx).Info("Сервис: колледж создан", zap.String("college_id", created.ID))
	return created, nil
}

func (s *CollegeService) Update(ctx context.Context, id string, in models.CollegeInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return ErrEmptyName
	}
	return mutate(ctx, s.cache, "updateCollegeById", func() error {
		return s.api.UpdateCollege(ctx, id, in)
	}, querycache.TagSingleCollege, querycache.TagColleges)
}
