package workspaces_models

import (
	"time"

	"etude-backend/internal/storage"

	"github.com/google/uuid"
)

func init() {
	storage.RegisterModel(&Workspace{})
}

type Workspace struct {
	ID        uuid.UUID `json:"id"        gorm:"column:id;primaryKey"`
	Name      string    `json:"name"      gorm:"column:name;not null"`
	OwnerID   uuid.UUID `json:"ownerId"   gorm:"column:owner_id;index;not null"`
	IsDefault bool      `json:"isDefault" gorm:"column:is_default;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
