package audit_logs

import (
	"time"

	"etude-backend/internal/util/logger"

	"github.com/google/uuid"
)

const (
	logsRetentionDays = 90
	logsQueryLimit    = 200
)

type AuditLogService struct {
	auditLogRepository *AuditLogRepository
}

// WriteAuditLog persists a log entry. Failures are logged and swallowed so
// audit logging never breaks the operation being recorded.
func (s *AuditLogService) WriteAuditLog(
	message string,
	userID *uuid.UUID,
	workspaceID *uuid.UUID,
) {
	log := &AuditLog{
		ID:          uuid.New(),
		UserID:      userID,
		WorkspaceID: workspaceID,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.auditLogRepository.Create(log); err != nil {
		logger.GetLogger().Error("failed to write audit log", "error", err)
	}
}

func (s *AuditLogService) GetUserAuditLogs(userID uuid.UUID) ([]AuditLog, error) {
	return s.auditLogRepository.GetByUserID(userID, logsQueryLimit)
}

func (s *AuditLogService) GetWorkspaceAuditLogs(workspaceID uuid.UUID) ([]AuditLog, error) {
	return s.auditLogRepository.GetByWorkspaceID(workspaceID, logsQueryLimit)
}

func (s *AuditLogService) RemoveExpiredLogs() {
	cutoff := time.Now().UTC().AddDate(0, 0, -logsRetentionDays)

	removed, err := s.auditLogRepository.DeleteOlderThan(cutoff)
	if err != nil {
		logger.GetLogger().Error("failed to remove expired audit logs", "error", err)
		return
	}

	if removed > 0 {
		logger.GetLogger().Info("removed expired audit logs", "count", removed)
	}
}
