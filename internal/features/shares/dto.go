package shares

import (
	"github.com/google/uuid"
)

type CreatePageShareRequestDTO struct {
	PageID      uuid.UUID   `json:"pageId" binding:"required"`
	Email       string      `json:"email" binding:"required,email"`
	AccessLevel AccessLevel `json:"accessLevel" binding:"required"`
}

type CreateWorkspaceShareRequestDTO struct {
	WorkspaceID   uuid.UUID   `json:"workspaceId" binding:"required"`
	Email         string      `json:"email" binding:"required,email"`
	AccessLevel   AccessLevel `json:"accessLevel" binding:"required"`
	SharedPageIDs []uuid.UUID `json:"sharedPageIds"`
}

type UpdateShareRequestDTO struct {
	AccessLevel AccessLevel `json:"accessLevel" binding:"required"`
}

type SharePreviewResponseDTO struct {
	ResourceKind  ResourceKind `json:"resourceKind"`
	ResourceName  string       `json:"resourceName"`
	SharedByEmail string       `json:"sharedByEmail"`
	AccessLevel   AccessLevel  `json:"accessLevel"`
	Status        ShareStatus  `json:"status"`
}

type IncomingShareResponseDTO struct {
	ID           uuid.UUID    `json:"id"`
	ResourceKind ResourceKind `json:"resourceKind"`
	ResourceID   uuid.UUID    `json:"resourceId"`
	ResourceName string       `json:"resourceName"`
	AccessLevel  AccessLevel  `json:"accessLevel"`
	Status       ShareStatus  `json:"status"`
	InviteToken  string       `json:"inviteToken"`
}

type IncomingSharesResponseDTO struct {
	Shares []IncomingShareResponseDTO `json:"shares"`
}
