package pages_test

import (
	"testing"

	"etude-backend/internal/apptest"
	"etude-backend/internal/features/pages"
	"etude-backend/internal/features/shares"
	users_models "etude-backend/internal/features/users/models"
	users_services "etude-backend/internal/features/users/services"
	users_testing "etude-backend/internal/features/users/testing"
	workspaces_models "etude-backend/internal/features/workspaces/models"
	workspaces_services "etude-backend/internal/features/workspaces/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUserWithWorkspace(t *testing.T) (*users_models.User, *workspaces_models.Workspace) {
	t.Helper()
	apptest.GetRouter()

	session := users_testing.CreateTestUser()

	user, err := users_services.GetUserService().GetUserByID(session.UserID)
	require.NoError(t, err)
	require.NotNil(t, user)

	workspace, err := workspaces_services.GetWorkspaceService().GetDefaultWorkspace(user.ID)
	require.NoError(t, err)

	return user, workspace
}

func createPage(t *testing.T, owner *users_models.User, workspace *workspaces_models.Workspace, title string) *pages.Page {
	t.Helper()

	page, err := pages.GetPageService().CreatePage(owner, &pages.CreatePageRequestDTO{
		WorkspaceID: workspace.ID,
		Title:       title,
		Content:     "content of " + title,
		Tags:        []string{"notes"},
	})
	require.NoError(t, err)

	return page
}

func acceptedPageShare(
	t *testing.T,
	owner *users_models.User,
	page *pages.Page,
	recipient *users_models.User,
	level shares.AccessLevel,
) *shares.PageShare {
	t.Helper()

	share, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: level,
	})
	require.NoError(t, err)
	require.NoError(t, shares.GetShareService().AcceptShareByToken(share.InviteToken, recipient))

	return share
}

func Test_GetPage_OwnerReadsOwnPage(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	page := createPage(t, owner, workspace, "Owner page")

	dto, err := pages.GetPageService().GetPage(page.ID, owner)
	require.NoError(t, err)

	assert.Equal(t, "Owner page", dto.Title)
	assert.Equal(t, shares.AccessLevelOwner, dto.AccessLevel)
}

func Test_GetPage_StrangerCannotTellPageExists(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	stranger, _ := createUserWithWorkspace(t)
	page := createPage(t, owner, workspace, "Private page")

	// a stranger gets the same answer as for a page that was never created
	_, err := pages.GetPageService().GetPage(page.ID, stranger)
	assert.ErrorIs(t, err, shares.ErrNotFound)

	_, missingErr := pages.GetPageService().GetPage(uuid.New(), stranger)
	assert.ErrorIs(t, missingErr, shares.ErrNotFound)
}

func Test_GetPage_MissingPageIsNotFound(t *testing.T) {
	owner, _ := createUserWithWorkspace(t)

	_, err := pages.GetPageService().GetPage(uuid.New(), owner)
	assert.ErrorIs(t, err, shares.ErrNotFound)
}

func Test_UpdatePage_InvalidatesCachedRead(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	page := createPage(t, owner, workspace, "Before")

	// prime the cache
	cached, err := pages.GetPageService().GetPage(page.ID, owner)
	require.NoError(t, err)
	require.Equal(t, "Before", cached.Title)

	newTitle := "After"
	_, err = pages.GetPageService().UpdatePage(page.ID, owner, &pages.UpdatePageRequestDTO{
		Title: &newTitle,
	})
	require.NoError(t, err)

	fresh, err := pages.GetPageService().GetPage(page.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "After", fresh.Title)
}

func Test_GetPage_RevokedShareStopsAccessImmediately(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	recipient, _ := createUserWithWorkspace(t)
	page := createPage(t, owner, workspace, "Shared then revoked")

	share := acceptedPageShare(t, owner, page, recipient, shares.AccessLevelView)

	// prime the recipient's cached read
	dto, err := pages.GetPageService().GetPage(page.ID, recipient)
	require.NoError(t, err)
	require.Equal(t, shares.AccessLevelView, dto.AccessLevel)

	require.NoError(t, shares.GetShareService().DeletePageShare(share.ID, owner))

	_, err = pages.GetPageService().GetPage(page.ID, recipient)
	assert.ErrorIs(t, err, shares.ErrNotFound)
}

func Test_UpdatePage_ViewerCannotEdit(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	viewer, _ := createUserWithWorkspace(t)
	page := createPage(t, owner, workspace, "Read only for viewer")

	acceptedPageShare(t, owner, page, viewer, shares.AccessLevelView)

	newTitle := "Hijacked"
	_, err := pages.GetPageService().UpdatePage(page.ID, viewer, &pages.UpdatePageRequestDTO{
		Title: &newTitle,
	})
	assert.ErrorIs(t, err, shares.ErrForbidden)
}

func Test_UpdatePage_EditorCanEdit(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	editor, _ := createUserWithWorkspace(t)
	page := createPage(t, owner, workspace, "Editable")

	acceptedPageShare(t, owner, page, editor, shares.AccessLevelEdit)

	newContent := "updated by editor"
	updated, err := pages.GetPageService().UpdatePage(page.ID, editor, &pages.UpdatePageRequestDTO{
		Content: &newContent,
	})
	require.NoError(t, err)
	assert.Equal(t, "updated by editor", updated.Content)
}

func Test_ToggleFavorite_OwnerOnly(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	editor, _ := createUserWithWorkspace(t)
	page := createPage(t, owner, workspace, "Favorite me")

	acceptedPageShare(t, owner, page, editor, shares.AccessLevelEdit)

	_, err := pages.GetPageService().ToggleFavorite(page.ID, editor)
	assert.ErrorIs(t, err, shares.ErrForbidden)

	toggled, err := pages.GetPageService().ToggleFavorite(page.ID, owner)
	require.NoError(t, err)
	assert.True(t, toggled.IsFavorite)

	toggled, err = pages.GetPageService().ToggleFavorite(page.ID, owner)
	require.NoError(t, err)
	assert.False(t, toggled.IsFavorite)
}

func Test_DeletePage_RemovesSharesToo(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	recipient, _ := createUserWithWorkspace(t)
	page := createPage(t, owner, workspace, "Doomed")

	acceptedPageShare(t, owner, page, recipient, shares.AccessLevelView)

	err := pages.GetPageService().DeletePage(page.ID, recipient)
	assert.ErrorIs(t, err, shares.ErrForbidden)

	require.NoError(t, pages.GetPageService().DeletePage(page.ID, owner))

	_, err = pages.GetPageService().GetPage(page.ID, owner)
	assert.ErrorIs(t, err, shares.ErrNotFound)

	incoming, err := shares.GetShareService().ListAcceptedPageSharesForEmail(recipient.Email)
	require.NoError(t, err)
	assert.Empty(t, incoming)
}

func Test_ListForUser_FiltersByTag(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)

	tagged, err := pages.GetPageService().CreatePage(owner, &pages.CreatePageRequestDTO{
		WorkspaceID: workspace.ID,
		Title:       "Tagged",
		Tags:        []string{"work", "draft"},
	})
	require.NoError(t, err)

	_, err = pages.GetPageService().CreatePage(owner, &pages.CreatePageRequestDTO{
		WorkspaceID: workspace.ID,
		Title:       "Untagged",
	})
	require.NoError(t, err)

	all, err := pages.GetPageService().ListForUser(owner, "")
	require.NoError(t, err)
	assert.Len(t, all.Pages, 2)

	filtered, err := pages.GetPageService().ListForUser(owner, "draft")
	require.NoError(t, err)
	require.Len(t, filtered.Pages, 1)
	assert.Equal(t, tagged.ID, filtered.Pages[0].ID)
}

func Test_ListForUser_CacheRefreshesAfterCreate(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)

	createPage(t, owner, workspace, "First")

	listed, err := pages.GetPageService().ListForUser(owner, "")
	require.NoError(t, err)
	require.Len(t, listed.Pages, 1)

	createPage(t, owner, workspace, "Second")

	listed, err = pages.GetPageService().ListForUser(owner, "")
	require.NoError(t, err)
	assert.Len(t, listed.Pages, 2)
}

func Test_ListSharedWithUser(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	recipient, _ := createUserWithWorkspace(t)
	page := createPage(t, owner, workspace, "Shared reading")

	acceptedPageShare(t, owner, page, recipient, shares.AccessLevelView)

	shared, err := pages.GetPageService().ListSharedWithUser(recipient)
	require.NoError(t, err)
	require.Len(t, shared.Pages, 1)
	assert.Equal(t, page.ID, shared.Pages[0].ID)
	assert.Equal(t, shares.AccessLevelView, shared.Pages[0].AccessLevel)
}

func Test_ListWorkspacePages_ScopedShareSeesOnlyCoveredPages(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	recipient, _ := createUserWithWorkspace(t)

	visible := createPage(t, owner, workspace, "Visible")
	createPage(t, owner, workspace, "Hidden")

	acceptedPageShare(t, owner, visible, recipient, shares.AccessLevelView)

	listed, err := pages.GetPageService().ListWorkspacePages(workspace.ID, recipient)
	require.NoError(t, err)
	require.Len(t, listed.Pages, 1)
	assert.Equal(t, visible.ID, listed.Pages[0].ID)

	ownerView, err := pages.GetPageService().ListWorkspacePages(workspace.ID, owner)
	require.NoError(t, err)
	assert.Len(t, ownerView.Pages, 2)
}

func Test_CreatePage_RequiresWorkspaceEditAccess(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	viewer, _ := createUserWithWorkspace(t)

	share, err := shares.GetShareService().CreateWorkspaceShare(owner, &shares.CreateWorkspaceShareRequestDTO{
		WorkspaceID: workspace.ID,
		Email:       viewer.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)
	require.NoError(t, shares.GetShareService().AcceptShareByToken(share.InviteToken, viewer))

	_, err = pages.GetPageService().CreatePage(viewer, &pages.CreatePageRequestDTO{
		WorkspaceID: workspace.ID,
		Title:       "Not allowed",
	})
	assert.ErrorIs(t, err, shares.ErrForbidden)
}

func Test_WorkspaceEditShareCanCreatePages(t *testing.T) {
	owner, workspace := createUserWithWorkspace(t)
	editor, _ := createUserWithWorkspace(t)

	share, err := shares.GetShareService().CreateWorkspaceShare(owner, &shares.CreateWorkspaceShareRequestDTO{
		WorkspaceID: workspace.ID,
		Email:       editor.Email,
		AccessLevel: shares.AccessLevelEdit,
	})
	require.NoError(t, err)
	require.NoError(t, shares.GetShareService().AcceptShareByToken(share.InviteToken, editor))

	page, err := pages.GetPageService().CreatePage(editor, &pages.CreatePageRequestDTO{
		WorkspaceID: workspace.ID,
		Title:       "Created by editor",
	})
	require.NoError(t, err)
	assert.Equal(t, editor.ID, page.OwnerID)
	assert.Equal(t, workspace.ID, page.WorkspaceID)
}
