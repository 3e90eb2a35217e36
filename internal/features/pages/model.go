package pages

import (
	"time"

	"etude-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func init() {
	storage.RegisterModel(&Page{})
}

type Page struct {
	ID          uuid.UUID                    `json:"id"          gorm:"column:id;primaryKey"`
	WorkspaceID uuid.UUID                    `json:"workspaceId" gorm:"column:workspace_id;index;not null"`
	OwnerID     uuid.UUID                    `json:"ownerId"     gorm:"column:owner_id;index;not null"`
	Title       string                       `json:"title"       gorm:"column:title;not null"`
	Content     string                       `json:"content"     gorm:"column:content"`
	Tags        datatypes.JSONSlice[string]  `json:"tags"        gorm:"column:tags"`
	IsFavorite  bool                         `json:"isFavorite"  gorm:"column:is_favorite;not null"`
	CreatedAt   time.Time                    `json:"createdAt"   gorm:"column:created_at"`
	UpdatedAt   time.Time                    `json:"updatedAt"   gorm:"column:updated_at"`
}

func (Page) TableName() string {
	return "pages"
}

func (p *Page) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
