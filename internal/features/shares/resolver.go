package shares

import (
	users_services "etude-backend/internal/features/users/services"

	"github.com/google/uuid"
)

// AccessDecision is the outcome of resolving an actor against a resource.
// SharedPageIDs is nil when access is unrestricted; a non-nil slice limits
// the grant to the listed pages.
type AccessDecision struct {
	HasAccess     bool
	Level         AccessLevel
	SharedPageIDs []uuid.UUID
}

func noAccess() AccessDecision {
	return AccessDecision{}
}

func ownerAccess() AccessDecision {
	return AccessDecision{HasAccess: true, Level: AccessLevelOwner}
}

// AccessResolver answers "can this actor do X to this resource" questions.
// Ownership always wins; otherwise only accepted shares grant access.
type AccessResolver struct {
	shareRepository *ShareRepository
	userService     *users_services.UserService

	pageSource      PageSource
	workspaceSource WorkspaceSource
}

func (r *AccessResolver) SetPageSource(source PageSource) {
	r.pageSource = source
}

func (r *AccessResolver) SetWorkspaceSource(source WorkspaceSource) {
	r.workspaceSource = source
}

// ResolvePageAccess checks ownership first, then looks for an accepted
// page share for the actor's email. Workspace shares do not grant page
// access on their own; pages visible through a workspace share are
// expanded by the pages layer when listing workspace content.
func (r *AccessResolver) ResolvePageAccess(pageID uuid.UUID, actor Actor) (AccessDecision, error) {
	if r.pageSource == nil {
		return noAccess(), ErrNotFound
	}

	page, err := r.pageSource.GetPageInfo(pageID)
	if err != nil {
		return noAccess(), err
	}
	if page == nil {
		return noAccess(), ErrNotFound
	}

	if userID, ok := actor.UserID(); ok && userID == page.OwnerID {
		return ownerAccess(), nil
	}

	email, err := r.resolveEmail(actor)
	if err != nil {
		return noAccess(), err
	}
	if email == "" {
		return noAccess(), nil
	}

	share, err := r.shareRepository.GetPageShare(pageID, email)
	if err != nil {
		return noAccess(), err
	}
	if share == nil || share.Status != ShareStatusAccepted {
		return noAccess(), nil
	}

	return AccessDecision{HasAccess: true, Level: share.AccessLevel}, nil
}

// ResolveWorkspaceAccess checks ownership first, then looks for an
// accepted workspace share. Scoped shares carry the page list they cover.
func (r *AccessResolver) ResolveWorkspaceAccess(
	workspaceID uuid.UUID,
	actor Actor,
) (AccessDecision, error) {
	if r.workspaceSource == nil {
		return noAccess(), ErrNotFound
	}

	workspace, err := r.workspaceSource.GetWorkspaceInfo(workspaceID)
	if err != nil {
		return noAccess(), err
	}
	if workspace == nil {
		return noAccess(), ErrNotFound
	}

	if userID, ok := actor.UserID(); ok && userID == workspace.OwnerID {
		return ownerAccess(), nil
	}

	email, err := r.resolveEmail(actor)
	if err != nil {
		return noAccess(), err
	}
	if email == "" {
		return noAccess(), nil
	}

	share, err := r.shareRepository.GetWorkspaceShare(workspaceID, email)
	if err != nil {
		return noAccess(), err
	}
	if share == nil || share.Status != ShareStatusAccepted {
		return noAccess(), nil
	}

	decision := AccessDecision{HasAccess: true, Level: share.AccessLevel}
	if share.IsScoped() {
		decision.SharedPageIDs = append([]uuid.UUID(nil), share.SharedPageIDs...)
	}

	return decision, nil
}

func (r *AccessResolver) resolveEmail(actor Actor) (string, error) {
	if actor.Email() != "" {
		return actor.Email(), nil
	}

	userID, ok := actor.UserID()
	if !ok {
		return "", nil
	}

	user, err := r.userService.GetUserByID(userID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", nil
	}

	return user.Email, nil
}
