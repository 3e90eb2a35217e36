package attachments

import (
	"errors"

	"etude-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttachmentRepository struct{}

func (r *AttachmentRepository) Create(attachment *Attachment) error {
	return storage.GetDb().Create(attachment).Error
}

func (r *AttachmentRepository) GetByID(id uuid.UUID) (*Attachment, error) {
	var attachment Attachment

	err := storage.GetDb().Where("id = ?", id).First(&attachment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &attachment, nil
}

func (r *AttachmentRepository) ListByPageID(pageID uuid.UUID) ([]Attachment, error) {
	var result []Attachment

	err := storage.GetDb().
		Where("page_id = ?", pageID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *AttachmentRepository) Delete(id uuid.UUID) error {
	return storage.GetDb().Where("id = ?", id).Delete(&Attachment{}).Error
}
