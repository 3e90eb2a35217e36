package audit_logs

import (
	"net/http"

	users_middleware "etude-backend/internal/features/users/middleware"

	"github.com/gin-gonic/gin"
)

type AuditLogController struct {
	auditLogService *AuditLogService
}

func (c *AuditLogController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/audit-logs", c.GetMyAuditLogs)
}

// GetMyAuditLogs
// @Summary Get audit logs for the current user
// @Tags audit-logs
// @Produce json
// @Success 200 {object} AuditLogsResponseDTO
// @Failure 401 {object} map[string]string
// @Router /audit-logs [get]
func (c *AuditLogController) GetMyAuditLogs(ctx *gin.Context) {
	user, ok := users_middleware.GetUserFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	logs, err := c.auditLogService.GetUserAuditLogs(user.ID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load audit logs"})
		return
	}

	response := AuditLogsResponseDTO{Logs: make([]AuditLogResponseDTO, 0, len(logs))}
	for _, log := range logs {
		response.Logs = append(response.Logs, AuditLogResponseDTO{
			ID:          log.ID,
			UserID:      log.UserID,
			UserEmail:   user.Email,
			WorkspaceID: log.WorkspaceID,
			Message:     log.Message,
			CreatedAt:   log.CreatedAt,
		})
	}

	ctx.JSON(http.StatusOK, response)
}

var auditLogController = &AuditLogController{
	auditLogService: auditLogService,
}

func GetAuditLogController() *AuditLogController {
	return auditLogController
}
