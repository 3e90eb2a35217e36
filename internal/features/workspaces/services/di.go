package workspaces_services

import (
	"etude-backend/internal/features/shares"
	users_services "etude-backend/internal/features/users/services"
	workspaces_repositories "etude-backend/internal/features/workspaces/repositories"
)

var workspaceService = &WorkspaceService{
	workspaceRepository: workspaces_repositories.GetWorkspaceRepository(),
	shareService:        shares.GetShareService(),
	accessResolver:      shares.GetAccessResolver(),
}

func GetWorkspaceService() *WorkspaceService {
	return workspaceService
}

func SetupDependencies() {
	shares.SetWorkspaceSource(workspaceService)
	users_services.GetUserService().AddSignUpListener(workspaceService)
}
