package shares

import (
	"etude-backend/internal/features/audit_logs"
	"etude-backend/internal/features/notifications"
	users_services "etude-backend/internal/features/users/services"
)

var shareRepository = &ShareRepository{}

var accessResolver = &AccessResolver{
	shareRepository: shareRepository,
	userService:     users_services.GetUserService(),
}

var shareService = &ShareService{
	shareRepository:     shareRepository,
	accessResolver:      accessResolver,
	userService:         users_services.GetUserService(),
	notificationService: notifications.GetNotificationService(),
}

var shareController = &ShareController{
	shareService: shareService,
}

func GetAccessResolver() *AccessResolver {
	return accessResolver
}

func GetShareService() *ShareService {
	return shareService
}

func GetShareController() *ShareController {
	return shareController
}

// SetPageSource wires the pages feature in. Called from the pages
// package during dependency setup.
func SetPageSource(source PageSource) {
	accessResolver.SetPageSource(source)
	shareService.pageSource = source
}

// SetWorkspaceSource wires the workspaces feature in. Called from the
// workspaces package during dependency setup.
func SetWorkspaceSource(source WorkspaceSource) {
	accessResolver.SetWorkspaceSource(source)
	shareService.workspaceSource = source
}

// SetCacheInvalidator wires page cache eviction in. Called from the
// pages package during dependency setup.
func SetCacheInvalidator(invalidator CacheInvalidator) {
	shareService.cacheInvalidator = invalidator
}

func SetupDependencies() {
	shareService.auditLogWriter = audit_logs.GetAuditLogService()
}
