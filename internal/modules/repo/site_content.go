package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tonelab-collective/booking/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SiteContentRepo interface {
	List(ctx context.Context) ([]*model.SiteContent, error)
	Count(ctx context.Context) (int64, error)
	SeedDefaults(ctx context.Context, defaults []model.SiteContent) (int64, error)
	Get(ctx context.Context, id uuid.UUID) (*model.SiteContent, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.SiteContent, error)
}

type siteContentRepo struct{ db *gorm.DB }

func NewSiteContentRepo(db *gorm.DB) SiteContentRepo {
	return &siteContentRepo{db: db}
}

func (r *siteContentRepo) List(ctx context.Context) ([]*model.SiteContent, error) {
	var out []*model.SiteContent
	return out, r.db.WithContext(ctx).Order("key ASC").Find(&out).Error
}

func (r *siteContentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	return n, r.db.WithContext(ctx).Model(&model.SiteContent{}).Count(&n).Error
}

// SeedDefaults inserts every default whose key is missing and returns how many
// rows were added. Concurrent callers are safe: existing keys are left as is.
func (r *siteContentRepo) SeedDefaults(ctx context.Context, defaults []model.SiteContent) (int64, error) {
	if len(defaults) == 0 {
		return 0, nil
	}
	rows := make([]model.SiteContent, len(defaults))
	copy(rows, defaults)
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "key"}}, DoNothing: true}).
		Create(&rows)
	return res.RowsAffected, res.Error
}

func (r *siteContentRepo) Get(ctx context.Context, id uuid.UUID) (*model.SiteContent, error) {
	var c model.SiteContent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateContent replaces content and bumps updated_at. Missing ids yield gorm.ErrRecordNotFound.
func (r *siteContentRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.SiteContent, error) {
	res := r.db.WithContext(ctx).
		Model(&model.SiteContent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"content": content, "updated_at": time.Now()})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.Get(ctx, id)
}
