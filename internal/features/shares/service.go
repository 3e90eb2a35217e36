package shares

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"etude-backend/internal/features/notifications"
	users_models "etude-backend/internal/features/users/models"
	users_services "etude-backend/internal/features/users/services"

	"github.com/google/uuid"
)

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID)
}

type ShareService struct {
	shareRepository     *ShareRepository
	accessResolver      *AccessResolver
	userService         *users_services.UserService
	notificationService *notifications.NotificationService

	pageSource       PageSource
	workspaceSource  WorkspaceSource
	cacheInvalidator CacheInvalidator
	auditLogWriter   AuditLogWriter
}

// CreatePageShare invites an email to a page. Re-inviting the same email
// updates the access level but never resets an already answered invite.
func (s *ShareService) CreatePageShare(
	actor *users_models.User,
	request *CreatePageShareRequestDTO,
) (*PageShare, error) {
	if !request.AccessLevel.IsAssignable() {
		return nil, fmt.Errorf("%w: access level %q cannot be granted", ErrInvalidInput, request.AccessLevel)
	}

	email := normalizeEmail(request.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if email == normalizeEmail(actor.Email) {
		return nil, fmt.Errorf("%w: cannot share a page with yourself", ErrInvalidInput)
	}

	page, err := s.getPageInfo(request.PageID)
	if err != nil {
		return nil, err
	}

	decision, err := s.accessResolver.ResolvePageAccess(page.ID, ActorByID(actor.ID))
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		return nil, fmt.Errorf("%w: page does not exist", ErrNotFound)
	}
	if !decision.Level.AtLeast(AccessLevelEdit) {
		return nil, fmt.Errorf("%w: edit access is required to share a page", ErrForbidden)
	}

	owner, err := s.userService.GetUserByID(page.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner != nil && normalizeEmail(owner.Email) == email {
		return nil, fmt.Errorf("%w: cannot share a page with its owner", ErrInvalidInput)
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	share := &PageShare{
		ID:              uuid.New(),
		PageID:          page.ID,
		SharedWithEmail: email,
		SharedByUserID:  actor.ID,
		AccessLevel:     request.AccessLevel,
		Status:          ShareStatusPending,
		InviteToken:     token,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	stored, created, err := s.shareRepository.UpsertPageShare(share)
	if err != nil {
		return nil, err
	}

	s.invalidatePage(page, email)

	if created {
		s.notificationService.Notify(
			email,
			notifications.NotificationTypeShareInvited,
			"You were invited to a page",
			fmt.Sprintf("%s shared the page %q with you", actor.Email, page.Title),
			"/shares/invite/"+stored.InviteToken,
			map[string]any{"pageId": page.ID.String(), "accessLevel": string(stored.AccessLevel)},
		)
	}

	s.writeAuditLog(
		fmt.Sprintf("Page %q shared with %s (%s)", page.Title, email, stored.AccessLevel),
		&actor.ID,
		&page.WorkspaceID,
	)

	return stored, nil
}

// CreateWorkspaceShare invites an email to a workspace, optionally scoped
// to specific pages. Only the workspace owner can do this.
func (s *ShareService) CreateWorkspaceShare(
	actor *users_models.User,
	request *CreateWorkspaceShareRequestDTO,
) (*WorkspaceShare, error) {
	if !request.AccessLevel.IsAssignable() {
		return nil, fmt.Errorf("%w: access level %q cannot be granted", ErrInvalidInput, request.AccessLevel)
	}

	email := normalizeEmail(request.Email)
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if email == normalizeEmail(actor.Email) {
		return nil, fmt.Errorf("%w: cannot share a workspace with yourself", ErrInvalidInput)
	}

	workspace, err := s.getWorkspaceInfo(request.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if workspace.OwnerID != actor.ID {
		return nil, s.denyWorkspaceForNonOwner(workspace.ID, actor, "only the workspace owner can share it")
	}

	for _, pageID := range request.SharedPageIDs {
		page, err := s.getPageInfo(pageID)
		if err != nil {
			return nil, err
		}
		if page.WorkspaceID != workspace.ID {
			return nil, fmt.Errorf("%w: page %s does not belong to the workspace", ErrInvalidInput, pageID)
		}
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	share := &WorkspaceShare{
		ID:              uuid.New(),
		WorkspaceID:     workspace.ID,
		SharedWithEmail: email,
		SharedByUserID:  actor.ID,
		AccessLevel:     request.AccessLevel,
		Status:          ShareStatusPending,
		InviteToken:     token,
		SharedPageIDs:   request.SharedPageIDs,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	stored, created, err := s.shareRepository.UpsertWorkspaceShare(share)
	if err != nil {
		return nil, err
	}

	s.invalidateWorkspace(workspace.ID, email)

	if created {
		s.notificationService.Notify(
			email,
			notifications.NotificationTypeShareInvited,
			"You were invited to a workspace",
			fmt.Sprintf("%s shared the workspace %q with you", actor.Email, workspace.Name),
			"/shares/invite/"+stored.InviteToken,
			map[string]any{"workspaceId": workspace.ID.String(), "accessLevel": string(stored.AccessLevel)},
		)
	}

	s.writeAuditLog(
		fmt.Sprintf("Workspace %q shared with %s (%s)", workspace.Name, email, stored.AccessLevel),
		&actor.ID,
		&workspace.ID,
	)

	return stored, nil
}

// GetSharePreview resolves an invite token to a short description of what
// was shared. It intentionally works without authentication so invitees
// can see what they were invited to before signing up.
func (s *ShareService) GetSharePreview(token string) (*SharePreviewResponseDTO, error) {
	pageShare, err := s.shareRepository.GetPageShareByToken(token)
	if err != nil {
		return nil, err
	}
	if pageShare != nil {
		page, err := s.getPageInfo(pageShare.PageID)
		if err != nil {
			return nil, err
		}

		return &SharePreviewResponseDTO{
			ResourceKind:  ResourceKindPage,
			ResourceName:  page.Title,
			SharedByEmail: s.lookupEmail(pageShare.SharedByUserID),
			AccessLevel:   pageShare.AccessLevel,
			Status:        pageShare.Status,
		}, nil
	}

	workspaceShare, err := s.shareRepository.GetWorkspaceShareByToken(token)
	if err != nil {
		return nil, err
	}
	if workspaceShare != nil {
		workspace, err := s.getWorkspaceInfo(workspaceShare.WorkspaceID)
		if err != nil {
			return nil, err
		}

		return &SharePreviewResponseDTO{
			ResourceKind:  ResourceKindWorkspace,
			ResourceName:  workspace.Name,
			SharedByEmail: s.lookupEmail(workspaceShare.SharedByUserID),
			AccessLevel:   workspaceShare.AccessLevel,
			Status:        workspaceShare.Status,
		}, nil
	}

	return nil, fmt.Errorf("%w: unknown invite token", ErrNotFound)
}

// AcceptShareByToken accepts a pending invite. Only the invited email can
// accept, and an already answered invite cannot be answered again.
// Accepting a page share also materializes a view-level workspace share
// scoped to that page, so the page shows up in workspace listings.
func (s *ShareService) AcceptShareByToken(token string, actor *users_models.User) error {
	actorEmail := normalizeEmail(actor.Email)

	pageShare, err := s.shareRepository.GetPageShareByToken(token)
	if err != nil {
		return err
	}
	if pageShare != nil {
		if pageShare.SharedWithEmail != actorEmail {
			return fmt.Errorf("%w: invite belongs to another email", ErrForbidden)
		}
		if pageShare.Status != ShareStatusPending {
			return fmt.Errorf("%w: invite was already %s", ErrConflict, pageShare.Status)
		}

		if err := s.shareRepository.UpdatePageShareStatus(pageShare.ID, ShareStatusAccepted); err != nil {
			return err
		}

		page, err := s.getPageInfo(pageShare.PageID)
		if err == nil {
			if err := s.propagateWorkspaceAccess(page, pageShare, actorEmail); err != nil {
				return err
			}

			s.invalidatePage(page, actorEmail)
			s.notifySharerOfAccept(pageShare.SharedByUserID, actorEmail, "page", page.Title)
			s.writeAuditLog(
				fmt.Sprintf("%s accepted the invite to page %q", actorEmail, page.Title),
				&actor.ID,
				&page.WorkspaceID,
			)
		}

		return nil
	}

	workspaceShare, err := s.shareRepository.GetWorkspaceShareByToken(token)
	if err != nil {
		return err
	}
	if workspaceShare != nil {
		if workspaceShare.SharedWithEmail != actorEmail {
			return fmt.Errorf("%w: invite belongs to another email", ErrForbidden)
		}
		if workspaceShare.Status != ShareStatusPending {
			return fmt.Errorf("%w: invite was already %s", ErrConflict, workspaceShare.Status)
		}

		if err := s.shareRepository.UpdateWorkspaceShareStatus(workspaceShare.ID, ShareStatusAccepted); err != nil {
			return err
		}

		s.invalidateWorkspace(workspaceShare.WorkspaceID, actorEmail)

		if workspace, err := s.getWorkspaceInfo(workspaceShare.WorkspaceID); err == nil {
			s.notifySharerOfAccept(workspaceShare.SharedByUserID, actorEmail, "workspace", workspace.Name)
			s.writeAuditLog(
				fmt.Sprintf("%s accepted the invite to workspace %q", actorEmail, workspace.Name),
				&actor.ID,
				&workspace.ID,
			)
		}

		return nil
	}

	return fmt.Errorf("%w: unknown invite token", ErrNotFound)
}

// RejectShareByToken rejects a pending invite. The invited email can
// always reject; so can the user who created the share, which is how a
// non-owner editor retracts an invite they sent.
func (s *ShareService) RejectShareByToken(token string, actor *users_models.User) error {
	pageShare, err := s.shareRepository.GetPageShareByToken(token)
	if err != nil {
		return err
	}
	if pageShare != nil {
		return s.rejectPageShare(pageShare, actor)
	}

	workspaceShare, err := s.shareRepository.GetWorkspaceShareByToken(token)
	if err != nil {
		return err
	}
	if workspaceShare != nil {
		return s.rejectWorkspaceShare(workspaceShare, actor)
	}

	return fmt.Errorf("%w: unknown invite token", ErrNotFound)
}

// RejectPageShare rejects an invite by share id, for callers that never
// saw the invite token (the sharer does not receive it).
func (s *ShareService) RejectPageShare(shareID uuid.UUID, actor *users_models.User) error {
	share, err := s.shareRepository.GetPageShareByID(shareID)
	if err != nil {
		return err
	}
	if share == nil {
		return fmt.Errorf("%w: share does not exist", ErrNotFound)
	}

	return s.rejectPageShare(share, actor)
}

// RejectWorkspaceShare is the workspace counterpart of RejectPageShare.
func (s *ShareService) RejectWorkspaceShare(shareID uuid.UUID, actor *users_models.User) error {
	share, err := s.shareRepository.GetWorkspaceShareByID(shareID)
	if err != nil {
		return err
	}
	if share == nil {
		return fmt.Errorf("%w: share does not exist", ErrNotFound)
	}

	return s.rejectWorkspaceShare(share, actor)
}

func (s *ShareService) rejectPageShare(share *PageShare, actor *users_models.User) error {
	actorEmail := normalizeEmail(actor.Email)
	if share.SharedWithEmail != actorEmail && share.SharedByUserID != actor.ID {
		return fmt.Errorf("%w: only the invited email or the sharer can reject", ErrForbidden)
	}
	if share.Status != ShareStatusPending {
		return fmt.Errorf("%w: invite was already %s", ErrConflict, share.Status)
	}

	if err := s.shareRepository.UpdatePageShareStatus(share.ID, ShareStatusRejected); err != nil {
		return err
	}

	if page, err := s.getPageInfo(share.PageID); err == nil {
		s.invalidatePage(page, share.SharedWithEmail)
	}

	return nil
}

func (s *ShareService) rejectWorkspaceShare(share *WorkspaceShare, actor *users_models.User) error {
	actorEmail := normalizeEmail(actor.Email)
	if share.SharedWithEmail != actorEmail && share.SharedByUserID != actor.ID {
		return fmt.Errorf("%w: only the invited email or the sharer can reject", ErrForbidden)
	}
	if share.Status != ShareStatusPending {
		return fmt.Errorf("%w: invite was already %s", ErrConflict, share.Status)
	}

	if err := s.shareRepository.UpdateWorkspaceShareStatus(share.ID, ShareStatusRejected); err != nil {
		return err
	}

	s.invalidateWorkspace(share.WorkspaceID, share.SharedWithEmail)

	return nil
}

// UpdatePageShareAccessLevel changes the level of an existing share while
// keeping its status. Requires edit access to the page.
func (s *ShareService) UpdatePageShareAccessLevel(
	shareID uuid.UUID,
	actor *users_models.User,
	level AccessLevel,
) (*PageShare, error) {
	if !level.IsAssignable() {
		return nil, fmt.Errorf("%w: access level %q cannot be granted", ErrInvalidInput, level)
	}

	share, err := s.shareRepository.GetPageShareByID(shareID)
	if err != nil {
		return nil, err
	}
	if share == nil {
		return nil, fmt.Errorf("%w: share does not exist", ErrNotFound)
	}

	page, err := s.getPageInfo(share.PageID)
	if err != nil {
		return nil, err
	}

	decision, err := s.accessResolver.ResolvePageAccess(page.ID, ActorByID(actor.ID))
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		return nil, fmt.Errorf("%w: share does not exist", ErrNotFound)
	}
	if !decision.Level.AtLeast(AccessLevelEdit) {
		return nil, fmt.Errorf("%w: edit access is required to manage shares", ErrForbidden)
	}

	share.AccessLevel = level
	stored, _, err := s.shareRepository.UpsertPageShare(share)
	if err != nil {
		return nil, err
	}

	s.invalidatePage(page, share.SharedWithEmail)

	return stored, nil
}

// DeletePageShare revokes a share. Only the page owner can revoke.
func (s *ShareService) DeletePageShare(shareID uuid.UUID, actor *users_models.User) error {
	share, err := s.shareRepository.GetPageShareByID(shareID)
	if err != nil {
		return err
	}
	if share == nil {
		return fmt.Errorf("%w: share does not exist", ErrNotFound)
	}

	page, err := s.getPageInfo(share.PageID)
	if err != nil {
		return err
	}
	if page.OwnerID != actor.ID {
		decision, err := s.accessResolver.ResolvePageAccess(page.ID, ActorByID(actor.ID))
		if err != nil {
			return err
		}
		if !decision.HasAccess {
			return fmt.Errorf("%w: share does not exist", ErrNotFound)
		}
		return fmt.Errorf("%w: only the page owner can revoke shares", ErrForbidden)
	}

	if err := s.shareRepository.DeletePageShare(shareID); err != nil {
		return err
	}

	if err := s.shrinkWorkspaceScope(page, share.SharedWithEmail); err != nil {
		return err
	}

	s.invalidatePage(page, share.SharedWithEmail)
	s.writeAuditLog(
		fmt.Sprintf("Share of page %q for %s revoked", page.Title, share.SharedWithEmail),
		&actor.ID,
		&page.WorkspaceID,
	)

	return nil
}

// DeleteWorkspaceShare revokes a workspace share. Only the workspace
// owner can revoke.
func (s *ShareService) DeleteWorkspaceShare(shareID uuid.UUID, actor *users_models.User) error {
	share, err := s.shareRepository.GetWorkspaceShareByID(shareID)
	if err != nil {
		return err
	}
	if share == nil {
		return fmt.Errorf("%w: share does not exist", ErrNotFound)
	}

	workspace, err := s.getWorkspaceInfo(share.WorkspaceID)
	if err != nil {
		return err
	}
	if workspace.OwnerID != actor.ID {
		return s.denyWorkspaceForNonOwner(workspace.ID, actor, "only the workspace owner can revoke shares")
	}

	if err := s.shareRepository.DeleteWorkspaceShare(shareID); err != nil {
		return err
	}

	s.invalidateWorkspace(workspace.ID, share.SharedWithEmail)
	s.writeAuditLog(
		fmt.Sprintf("Share of workspace %q for %s revoked", workspace.Name, share.SharedWithEmail),
		&actor.ID,
		&workspace.ID,
	)

	return nil
}

// ListPageShares lists who a page is shared with. Requires edit access.
func (s *ShareService) ListPageShares(pageID uuid.UUID, actor *users_models.User) ([]PageShare, error) {
	decision, err := s.accessResolver.ResolvePageAccess(pageID, ActorByID(actor.ID))
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		return nil, fmt.Errorf("%w: page does not exist", ErrNotFound)
	}
	if !decision.Level.AtLeast(AccessLevelEdit) {
		return nil, fmt.Errorf("%w: edit access is required to list shares", ErrForbidden)
	}

	return s.shareRepository.ListPageShares(pageID)
}

// ListWorkspaceShares lists who a workspace is shared with. Owner only.
func (s *ShareService) ListWorkspaceShares(
	workspaceID uuid.UUID,
	actor *users_models.User,
) ([]WorkspaceShare, error) {
	workspace, err := s.getWorkspaceInfo(workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace.OwnerID != actor.ID {
		return nil, s.denyWorkspaceForNonOwner(workspace.ID, actor, "only the workspace owner can list shares")
	}

	return s.shareRepository.ListWorkspaceShares(workspaceID)
}

// ListIncomingShares lists pending and accepted invites addressed to the
// user's email, across both resource kinds.
func (s *ShareService) ListIncomingShares(actor *users_models.User) (*IncomingSharesResponseDTO, error) {
	email := normalizeEmail(actor.Email)

	pageShares, err := s.shareRepository.ListPageSharesForEmail(
		email, ShareStatusPending, ShareStatusAccepted,
	)
	if err != nil {
		return nil, err
	}

	workspaceShares, err := s.shareRepository.ListWorkspaceSharesForEmail(
		email, ShareStatusPending, ShareStatusAccepted,
	)
	if err != nil {
		return nil, err
	}

	response := &IncomingSharesResponseDTO{Shares: []IncomingShareResponseDTO{}}

	for _, share := range pageShares {
		name := ""
		if page, err := s.getPageInfo(share.PageID); err == nil {
			name = page.Title
		}

		response.Shares = append(response.Shares, IncomingShareResponseDTO{
			ID:           share.ID,
			ResourceKind: ResourceKindPage,
			ResourceID:   share.PageID,
			ResourceName: name,
			AccessLevel:  share.AccessLevel,
			Status:       share.Status,
			InviteToken:  share.InviteToken,
		})
	}

	for _, share := range workspaceShares {
		name := ""
		if workspace, err := s.getWorkspaceInfo(share.WorkspaceID); err == nil {
			name = workspace.Name
		}

		response.Shares = append(response.Shares, IncomingShareResponseDTO{
			ID:           share.ID,
			ResourceKind: ResourceKindWorkspace,
			ResourceID:   share.WorkspaceID,
			ResourceName: name,
			AccessLevel:  share.AccessLevel,
			Status:       share.Status,
			InviteToken:  share.InviteToken,
		})
	}

	return response, nil
}

// ListAcceptedWorkspaceSharesForEmail is used by the workspaces package
// when listing the workspaces a user can see.
func (s *ShareService) ListAcceptedWorkspaceSharesForEmail(email string) ([]WorkspaceShare, error) {
	return s.shareRepository.ListWorkspaceSharesForEmail(normalizeEmail(email), ShareStatusAccepted)
}

// ListAcceptedPageSharesForEmail is used by the pages package when
// listing pages shared with a user.
func (s *ShareService) ListAcceptedPageSharesForEmail(email string) ([]PageShare, error) {
	return s.shareRepository.ListPageSharesForEmail(normalizeEmail(email), ShareStatusAccepted)
}

// RemoveSharesForPage drops all shares of a page being deleted, along
// with any workspace scope entries those shares materialized.
func (s *ShareService) RemoveSharesForPage(pageID uuid.UUID) error {
	pageShares, err := s.shareRepository.ListPageShares(pageID)
	if err != nil {
		return err
	}

	if page, err := s.getPageInfo(pageID); err == nil {
		for _, share := range pageShares {
			if err := s.shrinkWorkspaceScope(page, share.SharedWithEmail); err != nil {
				return err
			}
		}
	}

	return s.shareRepository.DeletePageSharesForPage(pageID)
}

// RemoveSharesForWorkspace drops all shares of a deleted workspace.
func (s *ShareService) RemoveSharesForWorkspace(workspaceID uuid.UUID) error {
	return s.shareRepository.DeleteWorkspaceSharesForWorkspace(workspaceID)
}

func (s *ShareService) propagateWorkspaceAccess(
	page *PageInfo,
	pageShare *PageShare,
	email string,
) error {
	existing, err := s.shareRepository.GetWorkspaceShare(page.WorkspaceID, email)
	if err != nil {
		return err
	}

	if existing == nil {
		token, err := generateInviteToken()
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		_, _, err = s.shareRepository.UpsertWorkspaceShare(&WorkspaceShare{
			ID:              uuid.New(),
			WorkspaceID:     page.WorkspaceID,
			SharedWithEmail: email,
			SharedByUserID:  pageShare.SharedByUserID,
			AccessLevel:     AccessLevelView,
			Status:          ShareStatusAccepted,
			InviteToken:     token,
			SharedPageIDs:   []uuid.UUID{page.ID},
			CreatedAt:       now,
			UpdatedAt:       now,
		})
		return err
	}

	if existing.Status == ShareStatusAccepted {
		// an unrestricted grant already covers the page
		if !existing.IsScoped() || existing.CoversPage(page.ID) {
			return nil
		}

		return s.shareRepository.UpdateWorkspaceShareScope(
			existing.ID,
			append(existing.SharedPageIDs, page.ID),
		)
	}

	// An unanswered or rejected workspace invite becomes the same scoped
	// view grant a fresh accept would create. The invite's own level is
	// not inherited: accepting a page never accepts the workspace invite
	// at its original breadth.
	scope := make([]uuid.UUID, 0, len(existing.SharedPageIDs)+1)
	covered := false
	for _, id := range existing.SharedPageIDs {
		if id == page.ID {
			covered = true
		}
		scope = append(scope, id)
	}
	if !covered {
		scope = append(scope, page.ID)
	}

	return s.shareRepository.UpdateWorkspaceShareGrant(
		existing.ID,
		ShareStatusAccepted,
		AccessLevelView,
		scope,
	)
}

// shrinkWorkspaceScope undoes the workspace grant a page share accept
// materialized: the page is dropped from a scoped grant and the grant
// itself is removed once it covers nothing.
func (s *ShareService) shrinkWorkspaceScope(page *PageInfo, email string) error {
	existing, err := s.shareRepository.GetWorkspaceShare(page.WorkspaceID, email)
	if err != nil {
		return err
	}
	if existing == nil || !existing.IsScoped() {
		return nil
	}

	remaining := make([]uuid.UUID, 0, len(existing.SharedPageIDs))
	for _, id := range existing.SharedPageIDs {
		if id != page.ID {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == len(existing.SharedPageIDs) {
		return nil
	}

	if len(remaining) == 0 {
		return s.shareRepository.DeleteWorkspaceShare(existing.ID)
	}

	return s.shareRepository.UpdateWorkspaceShareScope(existing.ID, remaining)
}

// denyWorkspaceForNonOwner picks the denial for an owner-only workspace
// operation: actors with no grant at all see the workspace as missing,
// actors with some access get told why they cannot proceed.
func (s *ShareService) denyWorkspaceForNonOwner(
	workspaceID uuid.UUID,
	actor *users_models.User,
	reason string,
) error {
	decision, err := s.accessResolver.ResolveWorkspaceAccess(workspaceID, ActorByID(actor.ID))
	if err != nil {
		return err
	}
	if !decision.HasAccess {
		return fmt.Errorf("%w: workspace does not exist", ErrNotFound)
	}
	return fmt.Errorf("%w: %s", ErrForbidden, reason)
}

func (s *ShareService) getPageInfo(pageID uuid.UUID) (*PageInfo, error) {
	if s.pageSource == nil {
		return nil, fmt.Errorf("%w: page does not exist", ErrNotFound)
	}

	page, err := s.pageSource.GetPageInfo(pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("%w: page does not exist", ErrNotFound)
	}

	return page, nil
}

func (s *ShareService) getWorkspaceInfo(workspaceID uuid.UUID) (*WorkspaceInfo, error) {
	if s.workspaceSource == nil {
		return nil, fmt.Errorf("%w: workspace does not exist", ErrNotFound)
	}

	workspace, err := s.workspaceSource.GetWorkspaceInfo(workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace == nil {
		return nil, fmt.Errorf("%w: workspace does not exist", ErrNotFound)
	}

	return workspace, nil
}

func (s *ShareService) invalidatePage(page *PageInfo, recipientEmail string) {
	if s.cacheInvalidator == nil {
		return
	}

	s.cacheInvalidator.InvalidatePage(page.ID)
	s.cacheInvalidator.InvalidateWorkspacePages(page.WorkspaceID)
	s.cacheInvalidator.InvalidateUserPages(page.OwnerID)

	if user, err := s.userService.GetUserByEmail(recipientEmail); err == nil && user != nil {
		s.cacheInvalidator.InvalidateUserPages(user.ID)
	}
}

func (s *ShareService) invalidateWorkspace(workspaceID uuid.UUID, recipientEmail string) {
	if s.cacheInvalidator == nil {
		return
	}

	s.cacheInvalidator.InvalidateWorkspacePages(workspaceID)

	if user, err := s.userService.GetUserByEmail(recipientEmail); err == nil && user != nil {
		s.cacheInvalidator.InvalidateUserPages(user.ID)
	}
}

func (s *ShareService) notifySharerOfAccept(
	sharerID uuid.UUID,
	accepterEmail string,
	resourceKind string,
	resourceName string,
) {
	sharerEmail := s.lookupEmail(sharerID)
	if sharerEmail == "" {
		return
	}

	s.notificationService.Notify(
		sharerEmail,
		notifications.NotificationTypeShareAccepted,
		"Your invite was accepted",
		fmt.Sprintf("%s accepted your invite to the %s %q", accepterEmail, resourceKind, resourceName),
		"",
		map[string]any{"acceptedBy": accepterEmail},
	)
}

func (s *ShareService) lookupEmail(userID uuid.UUID) string {
	user, err := s.userService.GetUserByID(userID)
	if err != nil || user == nil {
		return ""
	}
	return user.Email
}

func (s *ShareService) writeAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID) {
	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(message, userID, workspaceID)
	}
}

func normalizeEmail(email string) string {
	return users_services.NormalizeEmail(email)
}

func generateInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate invite token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
