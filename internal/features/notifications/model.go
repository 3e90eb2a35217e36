package notifications

import (
	"time"

	"etude-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func init() {
	storage.RegisterModel(&Notification{})
}

type NotificationType string

const (
	NotificationTypeShareInvited  NotificationType = "SHARE_INVITED"
	NotificationTypeShareAccepted NotificationType = "SHARE_ACCEPTED"
)

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeShareInvited, NotificationTypeShareAccepted:
		return true
	}
	return false
}

type Notification struct {
	ID             uuid.UUID         `json:"id"             gorm:"column:id;primaryKey"`
	RecipientEmail string            `json:"recipientEmail" gorm:"column:recipient_email;index;not null"`
	Type           NotificationType  `json:"type"           gorm:"column:type;not null"`
	Title          string            `json:"title"          gorm:"column:title;not null"`
	Content        string            `json:"content"        gorm:"column:content"`
	Link           string            `json:"link"           gorm:"column:link"`
	Metadata       datatypes.JSONMap `json:"metadata"       gorm:"column:metadata"`
	IsRead         bool              `json:"isRead"         gorm:"column:is_read;not null"`
	CreatedAt      time.Time         `json:"createdAt"      gorm:"column:created_at;index"`
}

func (Notification) TableName() string {
	return "notifications"
}
