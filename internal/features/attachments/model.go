package attachments

import (
	"time"

	"etude-backend/internal/storage"

	"github.com/google/uuid"
)

func init() {
	storage.RegisterModel(&Attachment{})
}

type Attachment struct {
	ID               uuid.UUID `json:"id"               gorm:"column:id;primaryKey"`
	PageID           uuid.UUID `json:"pageId"           gorm:"column:page_id;index;not null"`
	FileName         string    `json:"fileName"         gorm:"column:file_name;not null"`
	ContentType      string    `json:"contentType"      gorm:"column:content_type"`
	SizeBytes        int64     `json:"sizeBytes"        gorm:"column:size_bytes"`
	ObjectKey        string    `json:"-"                gorm:"column:object_key;uniqueIndex;not null"`
	UploadedByUserID uuid.UUID `json:"uploadedByUserId" gorm:"column:uploaded_by_user_id;not null"`
	CreatedAt        time.Time `json:"createdAt"        gorm:"column:created_at"`
}

func (Attachment) TableName() string {
	return "attachments"
}
