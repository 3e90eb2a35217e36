package workspaces_services

import (
	"fmt"
	"time"

	"etude-backend/internal/features/shares"
	users_models "etude-backend/internal/features/users/models"
	workspaces_dto "etude-backend/internal/features/workspaces/dto"
	workspaces_interfaces "etude-backend/internal/features/workspaces/interfaces"
	workspaces_models "etude-backend/internal/features/workspaces/models"
	workspaces_repositories "etude-backend/internal/features/workspaces/repositories"

	"github.com/google/uuid"
)

const defaultWorkspaceName = "My Workspace"

type WorkspaceService struct {
	workspaceRepository *workspaces_repositories.WorkspaceRepository
	shareService        *shares.ShareService
	accessResolver      *shares.AccessResolver
	deletionListeners   []workspaces_interfaces.WorkspaceDeletionListener
}

func (s *WorkspaceService) AddDeletionListener(
	listener workspaces_interfaces.WorkspaceDeletionListener,
) {
	s.deletionListeners = append(s.deletionListeners, listener)
}

// OnUserSignedUp creates the user's default workspace.
func (s *WorkspaceService) OnUserSignedUp(user *users_models.User) error {
	workspace := &workspaces_models.Workspace{
		ID:        uuid.New(),
		Name:      defaultWorkspaceName,
		OwnerID:   user.ID,
		IsDefault: true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.workspaceRepository.Create(workspace); err != nil {
		return fmt.Errorf("failed to create default workspace: %w", err)
	}

	return nil
}

// CreateWorkspace enforces the one-workspace-per-user policy: every user
// gets exactly one workspace, created at sign up.
func (s *WorkspaceService) CreateWorkspace(
	user *users_models.User,
	request *workspaces_dto.CreateWorkspaceRequestDTO,
) (*workspaces_models.Workspace, error) {
	count, err := s.workspaceRepository.CountByOwnerID(user.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, fmt.Errorf("%w: user already has a workspace", shares.ErrConflict)
	}

	workspace := &workspaces_models.Workspace{
		ID:        uuid.New(),
		Name:      request.Name,
		OwnerID:   user.ID,
		IsDefault: true,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.workspaceRepository.Create(workspace); err != nil {
		return nil, err
	}

	return workspace, nil
}

// GetWorkspace returns a workspace the user has access to, annotated with
// the user's effective level and page scope.
func (s *WorkspaceService) GetWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*workspaces_dto.WorkspaceResponseDTO, error) {
	workspace, err := s.workspaceRepository.GetByID(workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, fmt.Errorf("%w: workspace does not exist", shares.ErrNotFound)
	}

	decision, err := s.accessResolver.ResolveWorkspaceAccess(workspaceID, shares.ActorByID(user.ID))
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		// same denial as a missing workspace, so existence cannot be probed
		return nil, fmt.Errorf("%w: workspace does not exist", shares.ErrNotFound)
	}

	return workspaceToDTO(workspace, decision.Level, decision.SharedPageIDs), nil
}

// RenameWorkspace is owner only.
func (s *WorkspaceService) RenameWorkspace(
	workspaceID uuid.UUID,
	user *users_models.User,
	request *workspaces_dto.RenameWorkspaceRequestDTO,
) error {
	workspace, err := s.workspaceRepository.GetByID(workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return fmt.Errorf("%w: workspace does not exist", shares.ErrNotFound)
	}
	if workspace.OwnerID != user.ID {
		return s.denyNonOwner(workspaceID, user, "only the workspace owner can rename it")
	}

	return s.workspaceRepository.UpdateName(workspaceID, request.Name)
}

// DeleteWorkspace is owner only and never touches the default workspace.
// Dependent data (pages, shares) is cleaned up first.
func (s *WorkspaceService) DeleteWorkspace(workspaceID uuid.UUID, user *users_models.User) error {
	workspace, err := s.workspaceRepository.GetByID(workspaceID)
	if err != nil {
		return err
	}
	if workspace == nil {
		return fmt.Errorf("%w: workspace does not exist", shares.ErrNotFound)
	}
	if workspace.OwnerID != user.ID {
		return s.denyNonOwner(workspaceID, user, "only the workspace owner can delete it")
	}
	if workspace.IsDefault {
		return fmt.Errorf("%w: the default workspace cannot be deleted", shares.ErrInvalidInput)
	}

	for _, listener := range s.deletionListeners {
		if err := listener.OnWorkspaceDeleted(workspaceID); err != nil {
			return fmt.Errorf("workspace deletion listener failed: %w", err)
		}
	}

	if err := s.shareService.RemoveSharesForWorkspace(workspaceID); err != nil {
		return err
	}

	return s.workspaceRepository.Delete(workspaceID)
}

// denyNonOwner hides the workspace from actors with no access at all and
// returns Forbidden only to actors who can see it.
func (s *WorkspaceService) denyNonOwner(
	workspaceID uuid.UUID,
	user *users_models.User,
	reason string,
) error {
	decision, err := s.accessResolver.ResolveWorkspaceAccess(workspaceID, shares.ActorByID(user.ID))
	if err != nil {
		return err
	}
	if !decision.HasAccess {
		return fmt.Errorf("%w: workspace does not exist", shares.ErrNotFound)
	}

	return fmt.Errorf("%w: %s", shares.ErrForbidden, reason)
}

// ListForUser returns workspaces the user owns plus those shared with
// them and accepted.
func (s *WorkspaceService) ListForUser(
	user *users_models.User,
) (*workspaces_dto.WorkspacesResponseDTO, error) {
	owned, err := s.workspaceRepository.ListByOwnerID(user.ID)
	if err != nil {
		return nil, err
	}

	response := &workspaces_dto.WorkspacesResponseDTO{
		Workspaces: []workspaces_dto.WorkspaceResponseDTO{},
	}

	for i := range owned {
		response.Workspaces = append(
			response.Workspaces,
			*workspaceToDTO(&owned[i], shares.AccessLevelOwner, nil),
		)
	}

	accepted, err := s.shareService.ListAcceptedWorkspaceSharesForEmail(user.Email)
	if err != nil {
		return nil, err
	}

	for _, share := range accepted {
		workspace, err := s.workspaceRepository.GetByID(share.WorkspaceID)
		if err != nil {
			return nil, err
		}
		if workspace == nil {
			continue
		}

		response.Workspaces = append(
			response.Workspaces,
			*workspaceToDTO(workspace, share.AccessLevel, share.SharedPageIDs),
		)
	}

	return response, nil
}

// GetWorkspaceInfo implements the projection the shares package resolves
// access against.
func (s *WorkspaceService) GetWorkspaceInfo(workspaceID uuid.UUID) (*shares.WorkspaceInfo, error) {
	workspace, err := s.workspaceRepository.GetByID(workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, nil
	}

	return &shares.WorkspaceInfo{
		ID:      workspace.ID,
		OwnerID: workspace.OwnerID,
		Name:    workspace.Name,
	}, nil
}

// GetDefaultWorkspace returns the workspace created for the user at sign
// up.
func (s *WorkspaceService) GetDefaultWorkspace(
	userID uuid.UUID,
) (*workspaces_models.Workspace, error) {
	owned, err := s.workspaceRepository.ListByOwnerID(userID)
	if err != nil {
		return nil, err
	}

	for i := range owned {
		if owned[i].IsDefault {
			return &owned[i], nil
		}
	}
	if len(owned) > 0 {
		return &owned[0], nil
	}

	return nil, fmt.Errorf("%w: user has no workspace", shares.ErrNotFound)
}

func workspaceToDTO(
	workspace *workspaces_models.Workspace,
	level shares.AccessLevel,
	sharedPageIDs []uuid.UUID,
) *workspaces_dto.WorkspaceResponseDTO {
	return &workspaces_dto.WorkspaceResponseDTO{
		ID:            workspace.ID,
		Name:          workspace.Name,
		OwnerID:       workspace.OwnerID,
		IsDefault:     workspace.IsDefault,
		AccessLevel:   level,
		SharedPageIDs: sharedPageIDs,
		CreatedAt:     workspace.CreatedAt,
	}
}
