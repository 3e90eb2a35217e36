package shares

import (
	"time"

	"etude-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func init() {
	storage.RegisterModel(&PageShare{})
	storage.RegisterModel(&WorkspaceShare{})
}

type PageShare struct {
	ID              uuid.UUID   `json:"id"              gorm:"column:id;primaryKey"`
	PageID          uuid.UUID   `json:"pageId"          gorm:"column:page_id;uniqueIndex:idx_page_shares_page_email;not null"`
	SharedWithEmail string      `json:"sharedWithEmail" gorm:"column:shared_with_email;uniqueIndex:idx_page_shares_page_email;index;not null"`
	SharedByUserID  uuid.UUID   `json:"sharedByUserId"  gorm:"column:shared_by_user_id;not null"`
	AccessLevel     AccessLevel `json:"accessLevel"     gorm:"column:access_level;not null"`
	Status          ShareStatus `json:"status"          gorm:"column:status;not null"`
	InviteToken     string      `json:"-"               gorm:"column:invite_token;uniqueIndex;not null"`
	CreatedAt       time.Time   `json:"createdAt"       gorm:"column:created_at"`
	UpdatedAt       time.Time   `json:"updatedAt"       gorm:"column:updated_at"`
}

func (PageShare) TableName() string {
	return "page_shares"
}

// WorkspaceShare grants access to a workspace. When SharedPageIDs is empty
// the grant covers the whole workspace, otherwise only the listed pages.
type WorkspaceShare struct {
	ID              uuid.UUID                      `json:"id"              gorm:"column:id;primaryKey"`
	WorkspaceID     uuid.UUID                      `json:"workspaceId"     gorm:"column:workspace_id;uniqueIndex:idx_workspace_shares_ws_email;not null"`
	SharedWithEmail string                         `json:"sharedWithEmail" gorm:"column:shared_with_email;uniqueIndex:idx_workspace_shares_ws_email;index;not null"`
	SharedByUserID  uuid.UUID                      `json:"sharedByUserId"  gorm:"column:shared_by_user_id;not null"`
	AccessLevel     AccessLevel                    `json:"accessLevel"     gorm:"column:access_level;not null"`
	Status          ShareStatus                    `json:"status"          gorm:"column:status;not null"`
	InviteToken     string                         `json:"-"               gorm:"column:invite_token;uniqueIndex;not null"`
	SharedPageIDs   datatypes.JSONSlice[uuid.UUID] `json:"sharedPageIds"   gorm:"column:shared_page_ids"`
	CreatedAt       time.Time                      `json:"createdAt"       gorm:"column:created_at"`
	UpdatedAt       time.Time                      `json:"updatedAt"       gorm:"column:updated_at"`
}

func (WorkspaceShare) TableName() string {
	return "workspace_shares"
}

// IsScoped reports whether the share is limited to specific pages.
func (s *WorkspaceShare) IsScoped() bool {
	return len(s.SharedPageIDs) > 0
}

// CoversPage reports whether the share grants access to the given page.
func (s *WorkspaceShare) CoversPage(pageID uuid.UUID) bool {
	if !s.IsScoped() {
		return true
	}
	for _, id := range s.SharedPageIDs {
		if id == pageID {
			return true
		}
	}
	return false
}
