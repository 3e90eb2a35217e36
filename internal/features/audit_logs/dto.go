package audit_logs

import (
	"time"

	"github.com/google/uuid"
)

type AuditLogResponseDTO struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"userId"`
	UserEmail   string     `json:"userEmail"`
	WorkspaceID *uuid.UUID `json:"workspaceId"`
	Message     string     `json:"message"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type AuditLogsResponseDTO struct {
	Logs []AuditLogResponseDTO `json:"logs"`
}
