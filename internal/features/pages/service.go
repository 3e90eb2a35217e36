package pages

import (
	"fmt"
	"time"

	"etude-backend/internal/features/shares"
	users_models "etude-backend/internal/features/users/models"
	"etude-backend/internal/util/cache"

	"github.com/google/uuid"
)

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID)
}

type PageService struct {
	pageRepository *PageRepository
	shareService   *shares.ShareService
	accessResolver *shares.AccessResolver
	cache          *cache.Cache
	auditLogWriter AuditLogWriter
}

// CreatePage creates a page in a workspace the user can edit. The creator
// becomes the page owner.
func (s *PageService) CreatePage(
	user *users_models.User,
	request *CreatePageRequestDTO,
) (*Page, error) {
	decision, err := s.accessResolver.ResolveWorkspaceAccess(
		request.WorkspaceID, shares.ActorByID(user.ID),
	)
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		return nil, fmt.Errorf("%w: workspace does not exist", shares.ErrNotFound)
	}
	if !decision.Level.AtLeast(shares.AccessLevelEdit) {
		return nil, fmt.Errorf("%w: edit access to the workspace is required", shares.ErrForbidden)
	}
	if decision.SharedPageIDs != nil {
		return nil, fmt.Errorf("%w: a page-scoped grant cannot create pages", shares.ErrForbidden)
	}

	now := time.Now().UTC()
	page := &Page{
		ID:          uuid.New(),
		WorkspaceID: request.WorkspaceID,
		OwnerID:     user.ID,
		Title:       request.Title,
		Content:     request.Content,
		Tags:        request.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.pageRepository.Create(page); err != nil {
		return nil, err
	}

	s.cache.DeletePrefix(workspacePagesCachePrefix(page.WorkspaceID))
	s.cache.Delete(userPagesCacheKey(user.ID))

	s.writeAuditLog(
		fmt.Sprintf("Page %q created", page.Title),
		&user.ID,
		&page.WorkspaceID,
	)

	return page, nil
}

// GetPage returns a page the user can see, served from cache when the
// same user read it recently.
func (s *PageService) GetPage(pageID uuid.UUID, user *users_models.User) (*PageResponseDTO, error) {
	if cached, ok := s.cache.Get(pageCacheKey(pageID, user.ID)); ok {
		if dto, ok := cached.(*PageResponseDTO); ok {
			return dto, nil
		}
	}

	page, err := s.pageRepository.GetByID(pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("%w: page does not exist", shares.ErrNotFound)
	}

	decision, err := s.resolveEffectivePageAccess(page, user)
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		// same denial as a missing page, so existence cannot be probed
		return nil, fmt.Errorf("%w: page does not exist", shares.ErrNotFound)
	}

	dto := pageToDTO(page, decision.Level)
	s.cache.Set(pageCacheKey(pageID, user.ID), dto, cache.DefaultTTL)

	return dto, nil
}

// UpdatePage applies a partial update. Requires edit access.
func (s *PageService) UpdatePage(
	pageID uuid.UUID,
	user *users_models.User,
	request *UpdatePageRequestDTO,
) (*Page, error) {
	page, err := s.pageRepository.GetByID(pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("%w: page does not exist", shares.ErrNotFound)
	}

	decision, err := s.resolveEffectivePageAccess(page, user)
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		return nil, fmt.Errorf("%w: page does not exist", shares.ErrNotFound)
	}
	if !decision.Level.AtLeast(shares.AccessLevelEdit) {
		return nil, fmt.Errorf("%w: edit access is required", shares.ErrForbidden)
	}

	if request.Title != nil {
		page.Title = *request.Title
	}
	if request.Content != nil {
		page.Content = *request.Content
	}
	if request.Tags != nil {
		page.Tags = *request.Tags
	}

	if err := s.pageRepository.Update(page); err != nil {
		return nil, err
	}

	s.invalidatePageReads(page)

	return page, nil
}

// ToggleFavorite flips the favorite flag. Owner only.
func (s *PageService) ToggleFavorite(pageID uuid.UUID, user *users_models.User) (*Page, error) {
	page, err := s.pageRepository.GetByID(pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, fmt.Errorf("%w: page does not exist", shares.ErrNotFound)
	}
	if page.OwnerID != user.ID {
		decision, err := s.resolveEffectivePageAccess(page, user)
		if err != nil {
			return nil, err
		}
		if !decision.HasAccess {
			return nil, fmt.Errorf("%w: page does not exist", shares.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: only the page owner can change favorites", shares.ErrForbidden)
	}

	page.IsFavorite = !page.IsFavorite
	if err := s.pageRepository.SetFavorite(pageID, page.IsFavorite); err != nil {
		return nil, err
	}

	s.invalidatePageReads(page)

	return page, nil
}

// DeletePage removes a page and all its shares. Owner only.
func (s *PageService) DeletePage(pageID uuid.UUID, user *users_models.User) error {
	page, err := s.pageRepository.GetByID(pageID)
	if err != nil {
		return err
	}
	if page == nil {
		return fmt.Errorf("%w: page does not exist", shares.ErrNotFound)
	}
	if page.OwnerID != user.ID {
		decision, err := s.resolveEffectivePageAccess(page, user)
		if err != nil {
			return err
		}
		if !decision.HasAccess {
			return fmt.Errorf("%w: page does not exist", shares.ErrNotFound)
		}
		return fmt.Errorf("%w: only the page owner can delete it", shares.ErrForbidden)
	}

	if err := s.shareService.RemoveSharesForPage(pageID); err != nil {
		return err
	}

	if err := s.pageRepository.Delete(pageID); err != nil {
		return err
	}

	s.invalidatePageReads(page)

	s.writeAuditLog(
		fmt.Sprintf("Page %q deleted", page.Title),
		&user.ID,
		&page.WorkspaceID,
	)

	return nil
}

// ListForUser returns the user's own pages, optionally filtered by tag.
// The unfiltered list is cached.
func (s *PageService) ListForUser(user *users_models.User, tag string) (*PagesResponseDTO, error) {
	var response *PagesResponseDTO

	if cached, ok := s.cache.Get(userPagesCacheKey(user.ID)); ok {
		if dto, ok := cached.(*PagesResponseDTO); ok {
			response = dto
		}
	}

	if response == nil {
		owned, err := s.pageRepository.ListByOwnerID(user.ID)
		if err != nil {
			return nil, err
		}

		response = &PagesResponseDTO{Pages: make([]PageResponseDTO, 0, len(owned))}
		for i := range owned {
			response.Pages = append(response.Pages, *pageToDTO(&owned[i], shares.AccessLevelOwner))
		}

		s.cache.Set(userPagesCacheKey(user.ID), response, cache.DefaultTTL)
	}

	if tag == "" {
		return response, nil
	}

	filtered := &PagesResponseDTO{Pages: []PageResponseDTO{}}
	for _, page := range response.Pages {
		for _, t := range page.Tags {
			if t == tag {
				filtered.Pages = append(filtered.Pages, page)
				break
			}
		}
	}

	return filtered, nil
}

// ListSharedWithUser returns pages shared with the user and accepted.
func (s *PageService) ListSharedWithUser(user *users_models.User) (*PagesResponseDTO, error) {
	accepted, err := s.shareService.ListAcceptedPageSharesForEmail(user.Email)
	if err != nil {
		return nil, err
	}

	levelByPage := make(map[uuid.UUID]shares.AccessLevel, len(accepted))
	ids := make([]uuid.UUID, 0, len(accepted))
	for _, share := range accepted {
		levelByPage[share.PageID] = share.AccessLevel
		ids = append(ids, share.PageID)
	}

	result, err := s.pageRepository.ListByIDs(ids)
	if err != nil {
		return nil, err
	}

	response := &PagesResponseDTO{Pages: make([]PageResponseDTO, 0, len(result))}
	for i := range result {
		response.Pages = append(response.Pages, *pageToDTO(&result[i], levelByPage[result[i].ID]))
	}

	return response, nil
}

// ListWorkspacePages returns the pages of a workspace the user can see.
// A page-scoped workspace grant only reveals the pages it covers.
func (s *PageService) ListWorkspacePages(
	workspaceID uuid.UUID,
	user *users_models.User,
) (*PagesResponseDTO, error) {
	if cached, ok := s.cache.Get(workspacePagesCacheKey(workspaceID, user.ID)); ok {
		if dto, ok := cached.(*PagesResponseDTO); ok {
			return dto, nil
		}
	}

	decision, err := s.accessResolver.ResolveWorkspaceAccess(workspaceID, shares.ActorByID(user.ID))
	if err != nil {
		return nil, err
	}
	if !decision.HasAccess {
		return nil, fmt.Errorf("%w: workspace does not exist", shares.ErrNotFound)
	}

	result, err := s.pageRepository.ListByWorkspaceID(workspaceID)
	if err != nil {
		return nil, err
	}

	visible := make(map[uuid.UUID]bool, len(decision.SharedPageIDs))
	for _, id := range decision.SharedPageIDs {
		visible[id] = true
	}

	response := &PagesResponseDTO{Pages: []PageResponseDTO{}}
	for i := range result {
		page := &result[i]

		if decision.SharedPageIDs != nil && !visible[page.ID] {
			continue
		}

		level := decision.Level
		if page.OwnerID == user.ID {
			level = shares.AccessLevelOwner
		}

		response.Pages = append(response.Pages, *pageToDTO(page, level))
	}

	s.cache.Set(workspacePagesCacheKey(workspaceID, user.ID), response, cache.DefaultTTL)

	return response, nil
}

// GetPageInfo implements the projection the shares package resolves
// access against.
func (s *PageService) GetPageInfo(pageID uuid.UUID) (*shares.PageInfo, error) {
	page, err := s.pageRepository.GetByID(pageID)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return nil, nil
	}

	return &shares.PageInfo{
		ID:          page.ID,
		WorkspaceID: page.WorkspaceID,
		OwnerID:     page.OwnerID,
		Title:       page.Title,
	}, nil
}

// InvalidatePage implements cache eviction for share mutations.
func (s *PageService) InvalidatePage(pageID uuid.UUID) {
	s.cache.DeletePrefix(pageCachePrefix(pageID))
}

func (s *PageService) InvalidateUserPages(userID uuid.UUID) {
	s.cache.Delete(userPagesCacheKey(userID))
}

func (s *PageService) InvalidateWorkspacePages(workspaceID uuid.UUID) {
	s.cache.DeletePrefix(workspacePagesCachePrefix(workspaceID))
}

// OnWorkspaceDeleted removes the pages of a deleted workspace together
// with their shares.
func (s *PageService) OnWorkspaceDeleted(workspaceID uuid.UUID) error {
	result, err := s.pageRepository.ListByWorkspaceID(workspaceID)
	if err != nil {
		return err
	}

	for i := range result {
		if err := s.shareService.RemoveSharesForPage(result[i].ID); err != nil {
			return err
		}
		s.cache.DeletePrefix(pageCachePrefix(result[i].ID))
		s.cache.Delete(userPagesCacheKey(result[i].OwnerID))
	}

	if err := s.pageRepository.DeleteByWorkspaceID(workspaceID); err != nil {
		return err
	}

	s.cache.DeletePrefix(workspacePagesCachePrefix(workspaceID))

	return nil
}

// GetEffectivePageAccess exposes combined page and workspace access for
// other features gating on a page.
func (s *PageService) GetEffectivePageAccess(
	pageID uuid.UUID,
	user *users_models.User,
) (shares.AccessDecision, error) {
	page, err := s.pageRepository.GetByID(pageID)
	if err != nil {
		return shares.AccessDecision{}, err
	}
	if page == nil {
		return shares.AccessDecision{}, fmt.Errorf("%w: page does not exist", shares.ErrNotFound)
	}

	return s.resolveEffectivePageAccess(page, user)
}

// resolveEffectivePageAccess combines direct page access with workspace
// level grants. A workspace share reaches a page only when its scope
// covers it.
func (s *PageService) resolveEffectivePageAccess(
	page *Page,
	user *users_models.User,
) (shares.AccessDecision, error) {
	decision, err := s.accessResolver.ResolvePageAccess(page.ID, shares.ActorByID(user.ID))
	if err != nil {
		return shares.AccessDecision{}, err
	}
	if decision.HasAccess {
		return decision, nil
	}

	workspaceDecision, err := s.accessResolver.ResolveWorkspaceAccess(
		page.WorkspaceID, shares.ActorByID(user.ID),
	)
	if err != nil {
		return shares.AccessDecision{}, err
	}
	if !workspaceDecision.HasAccess {
		return shares.AccessDecision{}, nil
	}

	if workspaceDecision.SharedPageIDs != nil {
		covered := false
		for _, id := range workspaceDecision.SharedPageIDs {
			if id == page.ID {
				covered = true
				break
			}
		}
		if !covered {
			return shares.AccessDecision{}, nil
		}
	}

	return shares.AccessDecision{HasAccess: true, Level: workspaceDecision.Level}, nil
}

func (s *PageService) invalidatePageReads(page *Page) {
	s.cache.DeletePrefix(pageCachePrefix(page.ID))
	s.cache.DeletePrefix(workspacePagesCachePrefix(page.WorkspaceID))
	s.cache.Delete(userPagesCacheKey(page.OwnerID))
}

func (s *PageService) writeAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID) {
	if s.auditLogWriter != nil {
		s.auditLogWriter.WriteAuditLog(message, userID, workspaceID)
	}
}

func pageToDTO(page *Page, level shares.AccessLevel) *PageResponseDTO {
	return &PageResponseDTO{
		ID:          page.ID,
		WorkspaceID: page.WorkspaceID,
		OwnerID:     page.OwnerID,
		Title:       page.Title,
		Content:     page.Content,
		Tags:        page.Tags,
		IsFavorite:  page.IsFavorite,
		AccessLevel: level,
		CreatedAt:   page.CreatedAt,
		UpdatedAt:   page.UpdatedAt,
	}
}
