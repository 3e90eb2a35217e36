package audit_logs

import (
	"time"

	"etude-backend/internal/storage"

	"github.com/google/uuid"
)

func init() {
	storage.RegisterModel(&AuditLog{})
}

type AuditLog struct {
	ID          uuid.UUID  `json:"id"          gorm:"column:id;primaryKey"`
	UserID      *uuid.UUID `json:"userId"      gorm:"column:user_id;index"`
	WorkspaceID *uuid.UUID `json:"workspaceId" gorm:"column:workspace_id;index"`
	Message     string     `json:"message"     gorm:"column:message;not null"`
	CreatedAt   time.Time  `json:"createdAt"   gorm:"column:created_at;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
