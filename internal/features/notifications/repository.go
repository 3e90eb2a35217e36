package notifications

import (
	"time"

	"etude-backend/internal/storage"

	"github.com/google/uuid"
)

type NotificationRepository struct{}

func (r *NotificationRepository) Create(notification *Notification) error {
	return storage.GetDb().Create(notification).Error
}

func (r *NotificationRepository) GetByRecipientEmail(email string, limit int) ([]Notification, error) {
	var notifications []Notification

	err := storage.GetDb().
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *NotificationRepository) CountUnread(email string) (int64, error) {
	var count int64

	err := storage.GetDb().
		Model(&Notification{}).
		Where("recipient_email = ? AND is_read = ?", email, false).
		Count(&count).Error

	return count, err
}

func (r *NotificationRepository) MarkRead(id uuid.UUID, email string) (int64, error) {
	result := storage.GetDb().
		Model(&Notification{}).
		Where("id = ? AND recipient_email = ?", id, email).
		Update("is_read", true)

	return result.RowsAffected, result.Error
}

func (r *NotificationRepository) MarkAllRead(email string) error {
	return storage.GetDb().
		Model(&Notification{}).
		Where("recipient_email = ? AND is_read = ?", email, false).
		Update("is_read", true).Error
}

func (r *NotificationRepository) DeleteReadOlderThan(cutoff time.Time) (int64, error) {
	result := storage.GetDb().
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&Notification{})

	return result.RowsAffected, result.Error
}
