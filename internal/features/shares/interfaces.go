package shares

import "github.com/google/uuid"

// PageInfo is the minimal page projection the shares package needs.
type PageInfo struct {
	ID          uuid.UUID
	WorkspaceID uuid.UUID
	OwnerID     uuid.UUID
	Title       string
}

type PageSource interface {
	GetPageInfo(pageID uuid.UUID) (*PageInfo, error)
}

type WorkspaceInfo struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	Name    string
}

type WorkspaceSource interface {
	GetWorkspaceInfo(workspaceID uuid.UUID) (*WorkspaceInfo, error)
}

// CacheInvalidator lets share mutations evict cached page reads without
// importing the pages package.
type CacheInvalidator interface {
	InvalidatePage(pageID uuid.UUID)
	InvalidateUserPages(userID uuid.UUID)
	InvalidateWorkspacePages(workspaceID uuid.UUID)
}
