package model

import (
	"time"

	"github.com/google/uuid"
)

type SiteContent struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Key     string    `gorm:"type:text;not null;uniqueIndex" json:"key"`
	Title   string    `gorm:"type:text;not null" json:"title"`
	Content string    `gorm:"type:text;not null" json:"content"`

	UpdatedAt time.Time `gorm:"autoUpdateTime;not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

func (SiteContent) TableName() string { return "site_content" }
