package shares_test

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
	"etude-backend/internal/util/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUserWithWorkspace(t *testing.T) (*users_models.User, *workspaces_models.Workspace, string) {
	t.Helper()
	apptest.GetRouter()

	session := users_testing.CreateTestUser()

	user, err := users_services.GetUserService().GetUserByID(session.UserID)
	require.NoError(t, err)
	require.NotNil(t, user)

	workspace, err := workspaces_services.GetWorkspaceService().GetDefaultWorkspace(user.ID)
	require.NoError(t, err)

	return user, workspace, "Bearer " + session.Token
}

func createTestPage(t *testing.T, owner *users_models.User, workspace *workspaces_models.Workspace) *pages.Page {
	t.Helper()

	page, err := pages.GetPageService().CreatePage(owner, &pages.CreatePageRequestDTO{
		WorkspaceID: workspace.ID,
		Title:       "Test page",
		Content:     "content",
	})
	require.NoError(t, err)

	return page
}

func Test_ResolvePageAccess_OwnerGetsOwnerLevel(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	decision, err := shares.GetAccessResolver().
		ResolvePageAccess(page.ID, shares.ActorByID(owner.ID))

	require.NoError(t, err)
	assert.True(t, decision.HasAccess)
	assert.Equal(t, shares.AccessLevelOwner, decision.Level)
	assert.Nil(t, decision.SharedPageIDs)
}

func Test_ResolvePageAccess_StrangerHasNoAccess(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	stranger, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	decision, err := shares.GetAccessResolver().
		ResolvePageAccess(page.ID, shares.ActorByID(stranger.ID))

	require.NoError(t, err)
	assert.False(t, decision.HasAccess)
}

func Test_PageShare_PendingGrantsNoAccess(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	_, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	decision, err := shares.GetAccessResolver().
		ResolvePageAccess(page.ID, shares.ActorByID(recipient.ID))

	require.NoError(t, err)
	assert.False(t, decision.HasAccess)
}

func Test_PageShare_AcceptGrantsAccessAndPropagatesWorkspaceScope(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	share, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelEdit,
	})
	require.NoError(t, err)
	assert.Equal(t, shares.ShareStatusPending, share.Status)

	err = shares.GetShareService().AcceptShareByToken(share.InviteToken, recipient)
	require.NoError(t, err)

	decision, err := shares.GetAccessResolver().
		ResolvePageAccess(page.ID, shares.ActorByID(recipient.ID))
	require.NoError(t, err)
	assert.True(t, decision.HasAccess)
	assert.Equal(t, shares.AccessLevelEdit, decision.Level)

	// accepting the page share materializes a view grant on the workspace
	// scoped to that page
	workspaceDecision, err := shares.GetAccessResolver().
		ResolveWorkspaceAccess(workspace.ID, shares.ActorByID(recipient.ID))
	require.NoError(t, err)
	assert.True(t, workspaceDecision.HasAccess)
	assert.Equal(t, shares.AccessLevelView, workspaceDecision.Level)
	assert.Equal(t, []string{page.ID.String()}, uuidsToStrings(workspaceDecision.SharedPageIDs))
}

func Test_PageShare_AcceptUpgradesPendingWorkspaceInvite(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	workspaceShare, err := shares.GetShareService().CreateWorkspaceShare(owner, &shares.CreateWorkspaceShareRequestDTO{
		WorkspaceID: workspace.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelEdit,
	})
	require.NoError(t, err)

	pageShare, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	require.NoError(t, shares.GetShareService().AcceptShareByToken(pageShare.InviteToken, recipient))

	// the unanswered workspace invite turned into an accepted view grant
	// scoped to the accepted page, not the invite's original breadth
	decision, err := shares.GetAccessResolver().
		ResolveWorkspaceAccess(workspace.ID, shares.ActorByID(recipient.ID))
	require.NoError(t, err)
	assert.True(t, decision.HasAccess)
	assert.Equal(t, shares.AccessLevelView, decision.Level)
	assert.Equal(t, []string{page.ID.String()}, uuidsToStrings(decision.SharedPageIDs))

	// the original invite cannot be answered a second time
	err = shares.GetShareService().AcceptShareByToken(workspaceShare.InviteToken, recipient)
	assert.ErrorIs(t, err, shares.ErrConflict)
}

func Test_PageShare_SelfShareIsInvalid(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	_, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       owner.Email,
		AccessLevel: shares.AccessLevelView,
	})

	assert.ErrorIs(t, err, shares.ErrInvalidInput)
}

func Test_PageShare_OwnerLevelCannotBeGranted(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	_, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       "someone@etude.test",
		AccessLevel: shares.AccessLevelOwner,
	})

	assert.ErrorIs(t, err, shares.ErrInvalidInput)
}

func Test_PageShare_ReinvitePreservesStatusAndUpdatesLevel(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	share, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	err = shares.GetShareService().AcceptShareByToken(share.InviteToken, recipient)
	require.NoError(t, err)

	updated, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelEdit,
	})
	require.NoError(t, err)

	assert.Equal(t, share.ID, updated.ID)
	assert.Equal(t, shares.ShareStatusAccepted, updated.Status)
	assert.Equal(t, shares.AccessLevelEdit, updated.AccessLevel)
}

func Test_PageShare_AcceptByWrongRecipientIsForbidden(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)
	intruder, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	share, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	err = shares.GetShareService().AcceptShareByToken(share.InviteToken, intruder)
	assert.ErrorIs(t, err, shares.ErrForbidden)
}

func Test_PageShare_DoubleAcceptIsConflict(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	share, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	require.NoError(t, shares.GetShareService().AcceptShareByToken(share.InviteToken, recipient))

	err = shares.GetShareService().AcceptShareByToken(share.InviteToken, recipient)
	assert.ErrorIs(t, err, shares.ErrConflict)
}

func Test_PageShare_RejectedShareGrantsNoAccess(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	share, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	require.NoError(t, shares.GetShareService().RejectShareByToken(share.InviteToken, recipient))

	decision, err := shares.GetAccessResolver().
		ResolvePageAccess(page.ID, shares.ActorByID(recipient.ID))
	require.NoError(t, err)
	assert.False(t, decision.HasAccess)
}

func Test_RejectPageShare_SharerCanRetractOwnInvite(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	editor, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	editorShare, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       editor.Email,
		AccessLevel: shares.AccessLevelEdit,
	})
	require.NoError(t, err)
	require.NoError(t, shares.GetShareService().AcceptShareByToken(editorShare.InviteToken, editor))

	// the editor invites a third party, then retracts the invite without
	// ever having seen its token
	sent, err := shares.GetShareService().CreatePageShare(editor, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       "third@etude.test",
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	require.NoError(t, shares.GetShareService().RejectPageShare(sent.ID, editor))

	decision, err := shares.GetAccessResolver().
		ResolvePageAccess(page.ID, shares.ActorByEmail("third@etude.test"))
	require.NoError(t, err)
	assert.False(t, decision.HasAccess)
}

func Test_RejectPageShare_UninvolvedUserIsForbidden(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)
	bystander, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	share, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	err = shares.GetShareService().RejectPageShare(share.ID, bystander)
	assert.ErrorIs(t, err, shares.ErrForbidden)
}

func Test_RejectWorkspaceShare_SharerCanRetract(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)

	share, err := shares.GetShareService().CreateWorkspaceShare(owner, &shares.CreateWorkspaceShareRequestDTO{
		WorkspaceID: workspace.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	require.NoError(t, shares.GetShareService().RejectWorkspaceShare(share.ID, owner))

	// a rejected invite can no longer be accepted
	err = shares.GetShareService().AcceptShareByToken(share.InviteToken, recipient)
	assert.ErrorIs(t, err, shares.ErrConflict)
}

func Test_PageShare_ViewerCannotShareFurther(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	viewer, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	share, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       viewer.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)
	require.NoError(t, shares.GetShareService().AcceptShareByToken(share.InviteToken, viewer))

	_, err = shares.GetShareService().CreatePageShare(viewer, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       "third@etude.test",
		AccessLevel: shares.AccessLevelView,
	})
	assert.ErrorIs(t, err, shares.ErrForbidden)
}

func Test_PageShare_EditorCanShareFurther(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	editor, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	share, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       editor.Email,
		AccessLevel: shares.AccessLevelEdit,
	})
	require.NoError(t, err)
	require.NoError(t, shares.GetShareService().AcceptShareByToken(share.InviteToken, editor))

	_, err = shares.GetShareService().CreatePageShare(editor, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       "third-person@etude.test",
		AccessLevel: shares.AccessLevelView,
	})
	assert.NoError(t, err)
}

func Test_WorkspaceShare_OnlyOwnerCanCreate(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	other, _, _ := createUserWithWorkspace(t)

	// with no grant at all the workspace looks nonexistent to "other"
	_, err := shares.GetShareService().CreateWorkspaceShare(other, &shares.CreateWorkspaceShareRequestDTO{
		WorkspaceID: workspace.ID,
		Email:       "someone@etude.test",
		AccessLevel: shares.AccessLevelView,
	})
	assert.ErrorIs(t, err, shares.ErrNotFound)

	_, err = shares.GetShareService().CreateWorkspaceShare(owner, &shares.CreateWorkspaceShareRequestDTO{
		WorkspaceID: workspace.ID,
		Email:       "someone@etude.test",
		AccessLevel: shares.AccessLevelView,
	})
	assert.NoError(t, err)
}

func Test_WorkspaceShare_ScopedPagesMustBelongToWorkspace(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	other, otherWorkspace, _ := createUserWithWorkspace(t)
	foreignPage := createTestPage(t, other, otherWorkspace)

	_, err := shares.GetShareService().CreateWorkspaceShare(owner, &shares.CreateWorkspaceShareRequestDTO{
		WorkspaceID:   workspace.ID,
		Email:         "someone@etude.test",
		AccessLevel:   shares.AccessLevelView,
		SharedPageIDs: []uuid.UUID{foreignPage.ID},
	})
	assert.ErrorIs(t, err, shares.ErrInvalidInput)
}

func Test_WorkspaceShare_AcceptedUnscopedGrantsWorkspaceAccess(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)

	share, err := shares.GetShareService().CreateWorkspaceShare(owner, &shares.CreateWorkspaceShareRequestDTO{
		WorkspaceID: workspace.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelEdit,
	})
	require.NoError(t, err)
	require.NoError(t, shares.GetShareService().AcceptShareByToken(share.InviteToken, recipient))

	decision, err := shares.GetAccessResolver().
		ResolveWorkspaceAccess(workspace.ID, shares.ActorByID(recipient.ID))
	require.NoError(t, err)
	assert.True(t, decision.HasAccess)
	assert.Equal(t, shares.AccessLevelEdit, decision.Level)
	assert.Nil(t, decision.SharedPageIDs)
}

func Test_CreatePageShare_EvictsOwnersCachedPageList(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	_, err := pages.GetPageService().ListForUser(owner, "")
	require.NoError(t, err)

	ownerListKey := "user_pages:" + owner.ID.String()
	_, primed := cache.GetCache().Get(ownerListKey)
	require.True(t, primed)

	_, err = shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	_, stillCached := cache.GetCache().Get(ownerListKey)
	assert.False(t, stillCached)
}

func Test_DeletePageShare_OnlyOwnerCanRevoke(t *testing.T) {
	owner, workspace, _ := createUserWithWorkspace(t)
	recipient, _, _ := createUserWithWorkspace(t)
	page := createTestPage(t, owner, workspace)

	share, err := shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)
	require.NoError(t, shares.GetShareService().AcceptShareByToken(share.InviteToken, recipient))

	err = shares.GetShareService().DeletePageShare(share.ID, recipient)
	assert.ErrorIs(t, err, shares.ErrForbidden)

	require.NoError(t, shares.GetShareService().DeletePageShare(share.ID, owner))

	decision, err := shares.GetAccessResolver().
		ResolvePageAccess(page.ID, shares.ActorByID(recipient.ID))
	require.NoError(t, err)
	assert.False(t, decision.HasAccess)
}

func uuidsToStrings(ids []uuid.UUID) []string {
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		result = append(result, id.String())
	}
	return result
}
