package pages

import (
	"etude-backend/internal/features/audit_logs"
	"etude-backend/internal/features/shares"
	workspaces_services "etude-backend/internal/features/workspaces/services"
	"etude-backend/internal/util/cache"
)

var pageRepository = &PageRepository{}

var pageService = &PageService{
	pageRepository: pageRepository,
	shareService:   shares.GetShareService(),
	accessResolver: shares.GetAccessResolver(),
	cache:          cache.GetCache(),
}

var pageController = &PageController{
	pageService: pageService,
}

func GetPageService() *PageService {
	return pageService
}

func GetPageController() *PageController {
	return pageController
}

func SetupDependencies() {
	shares.SetPageSource(pageService)
	shares.SetCacheInvalidator(pageService)
	workspaces_services.GetWorkspaceService().AddDeletionListener(pageService)
	pageService.auditLogWriter = audit_logs.GetAuditLogService()
}
