package pages

import (
	"time"

	"etude-backend/internal/features/shares"

	"github.com/google/uuid"
)

type CreatePageRequestDTO struct {
	WorkspaceID uuid.UUID `json:"workspaceId" binding:"required"`
	Title       string    `json:"title" binding:"required,min=1,max=500"`
	Content     string    `json:"content"`
	Tags        []string  `json:"tags"`
}

type UpdatePageRequestDTO struct {
	Title   *string   `json:"title" binding:"omitempty,min=1,max=500"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

type PageResponseDTO struct {
	ID          uuid.UUID          `json:"id"`
	WorkspaceID uuid.UUID          `json:"workspaceId"`
	OwnerID     uuid.UUID          `json:"ownerId"`
	Title       string             `json:"title"`
	Content     string             `json:"content"`
	Tags        []string           `json:"tags"`
	IsFavorite  bool               `json:"isFavorite"`
	AccessLevel shares.AccessLevel `json:"accessLevel"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type PagesResponseDTO struct {
	Pages []PageResponseDTO `json:"pages"`
}
