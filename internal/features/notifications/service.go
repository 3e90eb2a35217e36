package notifications

import (
	"errors"
	"time"

	"etude-backend/internal/util/logger"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	notificationsQueryLimit = 100
	dispatchQueueSize       = 256
	retentionDays           = 30
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService struct {
	notificationRepository *NotificationRepository
	queue                  chan *Notification
}

func newNotificationService(repository *NotificationRepository) *NotificationService {
	service := &NotificationService{
		notificationRepository: repository,
		queue:                  make(chan *Notification, dispatchQueueSize),
	}

	go service.runDispatcher()

	return service
}

// Notify enqueues a notification for asynchronous delivery. Delivery failures
// are logged, never propagated to the caller.
func (s *NotificationService) Notify(
	recipientEmail string,
	notificationType NotificationType,
	title string,
	content string,
	link string,
	metadata map[string]any,
) {
	notification := &Notification{
		ID:             uuid.New(),
		RecipientEmail: recipientEmail,
		Type:           notificationType,
		Title:          title,
		Content:        content,
		Link:           link,
		Metadata:       datatypes.JSONMap(metadata),
		IsRead:         false,
		CreatedAt:      time.Now().UTC(),
	}

	select {
	case s.queue <- notification:
	default:
		logger.GetLogger().Warn(
			"notification queue is full, dropping notification",
			"recipient", recipientEmail,
			"type", notificationType,
		)
	}
}

func (s *NotificationService) runDispatcher() {
	for notification := range s.queue {
		if err := s.notificationRepository.Create(notification); err != nil {
			logger.GetLogger().Error(
				"failed to deliver notification",
				"recipient", notification.RecipientEmail,
				"error", err,
			)
		}
	}
}

func (s *NotificationService) GetNotifications(recipientEmail string) ([]Notification, error) {
	return s.notificationRepository.GetByRecipientEmail(recipientEmail, notificationsQueryLimit)
}

func (s *NotificationService) CountUnread(recipientEmail string) (int64, error) {
	return s.notificationRepository.CountUnread(recipientEmail)
}

func (s *NotificationService) MarkRead(id uuid.UUID, recipientEmail string) error {
	updated, err := s.notificationRepository.MarkRead(id, recipientEmail)
	if err != nil {
		return err
	}
	if updated == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(recipientEmail string) error {
	return s.notificationRepository.MarkAllRead(recipientEmail)
}

// RemoveExpiredNotifications drops read notifications past the retention
// window. Unread ones are kept until the recipient sees them.
func (s *NotificationService) RemoveExpiredNotifications() {
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	removed, err := s.notificationRepository.DeleteReadOlderThan(cutoff)
	if err != nil {
		logger.GetLogger().Error("failed to remove expired notifications", "error", err)
		return
	}

	if removed > 0 {
		logger.GetLogger().Info("removed expired notifications", "count", removed)
	}
}
