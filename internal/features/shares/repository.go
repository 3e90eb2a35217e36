package shares

import (
	"errors"
	"time"

	"etude-backend/internal/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShareRepository struct{}

// UpsertPageShare inserts a page share or, if one already exists for the
// same page and email, updates its access level while preserving its
// status. The unique index on (page_id, shared_with_email) makes the
// insert path safe under concurrent invites. Returns the stored share and
// whether a new row was created.
func (r *ShareRepository) UpsertPageShare(share *PageShare) (*PageShare, bool, error) {
	db := storage.GetDb()

	result := db.Model(&PageShare{}).
		Where("page_id = ? AND shared_with_email = ?", share.PageID, share.SharedWithEmail).
		Updates(map[string]any{
			"access_level": share.AccessLevel,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected > 0 {
		existing, err := r.GetPageShare(share.PageID, share.SharedWithEmail)
		return existing, false, err
	}

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "page_id"}, {Name: "shared_with_email"}},
		DoUpdates: clause.Assignments(map[string]any{
			"access_level": share.AccessLevel,
			"updated_at":   time.Now().UTC(),
		}),
	}).Create(share).Error
	if err != nil {
		return nil, false, err
	}

	stored, err := r.GetPageShare(share.PageID, share.SharedWithEmail)
	return stored, true, err
}

// UpsertWorkspaceShare follows the same preserve-status semantics as
// UpsertPageShare, keyed on (workspace_id, shared_with_email).
func (r *ShareRepository) UpsertWorkspaceShare(share *WorkspaceShare) (*WorkspaceShare, bool, error) {
	db := storage.GetDb()

	result := db.Model(&WorkspaceShare{}).
		Where("workspace_id = ? AND shared_with_email = ?", share.WorkspaceID, share.SharedWithEmail).
		Updates(map[string]any{
			"access_level": share.AccessLevel,
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected > 0 {
		existing, err := r.GetWorkspaceShare(share.WorkspaceID, share.SharedWithEmail)
		return existing, false, err
	}

	err := db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "workspace_id"}, {Name: "shared_with_email"}},
		DoUpdates: clause.Assignments(map[string]any{
			"access_level": share.AccessLevel,
			"updated_at":   time.Now().UTC(),
		}),
	}).Create(share).Error
	if err != nil {
		return nil, false, err
	}

	stored, err := r.GetWorkspaceShare(share.WorkspaceID, share.SharedWithEmail)
	return stored, true, err
}

func (r *ShareRepository) GetPageShareByID(id uuid.UUID) (*PageShare, error) {
	var share PageShare

	err := storage.GetDb().Where("id = ?", id).First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &share, nil
}

func (r *ShareRepository) GetWorkspaceShareByID(id uuid.UUID) (*WorkspaceShare, error) {
	var share WorkspaceShare

	err := storage.GetDb().Where("id = ?", id).First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &share, nil
}

func (r *ShareRepository) GetPageShare(pageID uuid.UUID, email string) (*PageShare, error) {
	var share PageShare

	err := storage.GetDb().
		Where("page_id = ? AND shared_with_email = ?", pageID, email).
		First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &share, nil
}

func (r *ShareRepository) GetWorkspaceShare(workspaceID uuid.UUID, email string) (*WorkspaceShare, error) {
	var share WorkspaceShare

	err := storage.GetDb().
		Where("workspace_id = ? AND shared_with_email = ?", workspaceID, email).
		First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &share, nil
}

func (r *ShareRepository) GetPageShareByToken(token string) (*PageShare, error) {
	var share PageShare

	err := storage.GetDb().Where("invite_token = ?", token).First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &share, nil
}

func (r *ShareRepository) GetWorkspaceShareByToken(token string) (*WorkspaceShare, error) {
	var share WorkspaceShare

	err := storage.GetDb().Where("invite_token = ?", token).First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &share, nil
}

func (r *ShareRepository) ListPageShares(pageID uuid.UUID) ([]PageShare, error) {
	var result []PageShare

	err := storage.GetDb().
		Where("page_id = ?", pageID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ShareRepository) ListWorkspaceShares(workspaceID uuid.UUID) ([]WorkspaceShare, error) {
	var result []WorkspaceShare

	err := storage.GetDb().
		Where("workspace_id = ?", workspaceID).
		Order("created_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ShareRepository) ListPageSharesForEmail(
	email string,
	statuses ...ShareStatus,
) ([]PageShare, error) {
	var result []PageShare

	query := storage.GetDb().Where("shared_with_email = ?", email)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	err := query.Order("created_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ShareRepository) ListWorkspaceSharesForEmail(
	email string,
	statuses ...ShareStatus,
) ([]WorkspaceShare, error) {
	var result []WorkspaceShare

	query := storage.GetDb().Where("shared_with_email = ?", email)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	err := query.Order("created_at ASC").Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ShareRepository) UpdatePageShareStatus(id uuid.UUID, status ShareStatus) error {
	return storage.GetDb().
		Model(&PageShare{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *ShareRepository) UpdateWorkspaceShareStatus(id uuid.UUID, status ShareStatus) error {
	return storage.GetDb().
		Model(&WorkspaceShare{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		}).Error
}

func (r *ShareRepository) UpdateWorkspaceShareScope(id uuid.UUID, pageIDs []uuid.UUID) error {
	share := WorkspaceShare{SharedPageIDs: pageIDs}

	return storage.GetDb().
		Model(&WorkspaceShare{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"shared_page_ids": share.SharedPageIDs,
			"updated_at":      time.Now().UTC(),
		}).Error
}

// UpdateWorkspaceShareGrant rewrites status, level and scope of a
// workspace share in one update.
func (r *ShareRepository) UpdateWorkspaceShareGrant(
	id uuid.UUID,
	status ShareStatus,
	level AccessLevel,
	pageIDs []uuid.UUID,
) error {
	share := WorkspaceShare{SharedPageIDs: pageIDs}

	return storage.GetDb().
		Model(&WorkspaceShare{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":          status,
			"access_level":    level,
			"shared_page_ids": share.SharedPageIDs,
			"updated_at":      time.Now().UTC(),
		}).Error
}

func (r *ShareRepository) DeletePageShare(id uuid.UUID) error {
	return storage.GetDb().Where("id = ?", id).Delete(&PageShare{}).Error
}

func (r *ShareRepository) DeleteWorkspaceShare(id uuid.UUID) error {
	return storage.GetDb().Where("id = ?", id).Delete(&WorkspaceShare{}).Error
}

func (r *ShareRepository) DeletePageSharesForPage(pageID uuid.UUID) error {
	return storage.GetDb().Where("page_id = ?", pageID).Delete(&PageShare{}).Error
}

func (r *ShareRepository) DeleteWorkspaceSharesForWorkspace(workspaceID uuid.UUID) error {
	return storage.GetDb().Where("workspace_id = ?", workspaceID).Delete(&WorkspaceShare{}).Error
}
