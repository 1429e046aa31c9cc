package service

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tonelab-collective/booking/internal/modules/model"
	"github.com/tonelab-collective/booking/internal/modules/repo"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed/site_content.yaml
var defaultContentYAML []byte

type contentSeed struct {
	Key     string `yaml:"key"`
	Title   string `yaml:"title"`
	Content string `yaml:"content"`
}

// DefaultContent returns the site copy seeded into an empty table.
func DefaultContent() ([]model.SiteContent, error) {
	var seeds []contentSeed
	if err := yaml.Unmarshal(defaultContentYAML, &seeds); err != nil {
		return nil, fmt.Errorf("parse default content: %w", err)
	}
	out := make([]model.SiteContent, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, model.SiteContent{Key: s.Key, Title: s.Title, Content: s.Content})
	}
	return out, nil
}

type ContentService interface {
	EnsureDefaults(ctx context.Context) (int64, error)
	ListPublic(ctx context.Context) ([]*model.SiteContent, error)
	List(ctx context.Context) ([]*model.SiteContent, error)
	Get(ctx context.Context, id uuid.UUID) (*model.SiteContent, error)
	Update(ctx context.Context, id uuid.UUID, content string) (*model.SiteContent, error)
}

type contentService struct {
	r        repo.SiteContentRepo
	log      *zap.Logger
	defaults []model.SiteContent
}

func NewContentService(r repo.SiteContentRepo, log *zap.Logger) (ContentService, error) {
	defaults, err := DefaultContent()
	if err != nil {
		return nil, err
	}
	return &contentService{r: r, log: log, defaults: defaults}, nil
}

// EnsureDefaults seeds the default set when the table is empty. Repeated calls
// never duplicate rows.
func (s *contentService) EnsureDefaults(ctx context.Context) (int64, error) {
	n, err := s.r.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	added, err := s.r.SeedDefaults(ctx, s.defaults)
	if err != nil {
		return 0, err
	}
	if added > 0 {
		s.log.Info("seeded default site content", zap.Int64("rows", added))
	}
	return added, nil
}

func (s *contentService) List(ctx context.Context) ([]*model.SiteContent, error) {
	if _, err := s.EnsureDefaults(ctx); err != nil {
		return nil, err
	}
	return s.r.List(ctx)
}

// ListPublic serves the defaults from memory when the database is unreachable
// so the landing page still renders.
func (s *contentService) ListPublic(ctx context.Context) ([]*model.SiteContent, error) {
	items, err := s.List(ctx)
	if err == nil {
		return items, nil
	}
	s.log.Warn("content read failed, serving defaults", zap.Error(err))
	out := make([]*model.SiteContent, len(s.defaults))
	for i := range s.defaults {
		d := s.defaults[i]
		out[i] = &d
	}
	return out, nil
}

func (s *contentService) Get(ctx context.Context, id uuid.UUID) (*model.SiteContent, error) {
	c, err := s.r.Get(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContentNotFound
	}
	return c, err
}

func (s *contentService) Update(ctx context.Context, id uuid.UUID, content string) (*model.SiteContent, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	c, err := s.r.UpdateContent(ctx, id, content)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContentNotFound
	}
	return c, err
}
