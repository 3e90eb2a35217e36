package audit_logs

import (
	"time"

	"etude-backend/internal/storage"

	"github.com/google/uuid"
)

type AuditLogRepository struct{}

func (r *AuditLogRepository) Create(log *AuditLog) error {
	return storage.GetDb().Create(log).Error
}

func (r *AuditLogRepository) GetByWorkspaceID(workspaceID uuid.UUID, limit int) ([]AuditLog, error) {
	var logs []AuditLog

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *AuditLogRepository) GetByUserID(userID uuid.UUID, limit int) ([]AuditLog, error) {
	var logs []AuditLog

	err := storage.GetDb().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *AuditLogRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := storage.GetDb().
		Where("created_at < ?", cutoff).
		Delete(&AuditLog{})

	return result.RowsAffected, result.Error
}
