package audit_logs

import (
	users_services "etude-backend/internal/features/users/services"
)

var auditLogRepository = &AuditLogRepository{}

var auditLogService = &AuditLogService{
	auditLogRepository: auditLogRepository,
}

func GetAuditLogService() *AuditLogService {
	return auditLogService
}

func GetAuditLogRepository() *AuditLogRepository {
	return auditLogRepository
}

func SetupDependencies() {
	users_services.GetUserService().SetAuditLogWriter(auditLogService)
}
