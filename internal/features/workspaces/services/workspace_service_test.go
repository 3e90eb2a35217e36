package workspaces_services_test

import (
	"testing"

	"etude-backend/internal/apptest"
	"etude-backend/internal/features/shares"
	users_models "etude-backend/internal/features/users/models"
	users_services "etude-backend/internal/features/users/services"
	users_testing "etude-backend/internal/features/users/testing"
	workspaces_dto "etude-backend/internal/features/workspaces/dto"
	workspaces_models "etude-backend/internal/features/workspaces/models"
	workspaces_services "etude-backend/internal/features/workspaces/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUser(t *testing.T) (*users_models.User, *workspaces_models.Workspace) {
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

func Test_SignUp_CreatesDefaultWorkspace(t *testing.T) {
	_, workspace := createUser(t)

	assert.True(t, workspace.IsDefault)
	assert.Equal(t, "My Workspace", workspace.Name)
}

func Test_CreateWorkspace_SecondWorkspaceIsRejected(t *testing.T) {
	user, _ := createUser(t)

	_, err := workspaces_services.GetWorkspaceService().CreateWorkspace(
		user,
		&workspaces_dto.CreateWorkspaceRequestDTO{Name: "Another"},
	)

	assert.ErrorIs(t, err, shares.ErrConflict)
}

func Test_GetWorkspace_OwnerSeesOwnerLevel(t *testing.T) {
	user, workspace := createUser(t)

	dto, err := workspaces_services.GetWorkspaceService().GetWorkspace(workspace.ID, user)
	require.NoError(t, err)

	assert.Equal(t, workspace.ID, dto.ID)
	assert.Equal(t, shares.AccessLevelOwner, dto.AccessLevel)
	assert.Nil(t, dto.SharedPageIDs)
}

func Test_GetWorkspace_StrangerCannotTellWorkspaceExists(t *testing.T) {
	_, workspace := createUser(t)
	stranger, _ := createUser(t)

	// zero access answers exactly like a workspace that was never created
	_, err := workspaces_services.GetWorkspaceService().GetWorkspace(workspace.ID, stranger)
	assert.ErrorIs(t, err, shares.ErrNotFound)

	_, missingErr := workspaces_services.GetWorkspaceService().GetWorkspace(uuid.New(), stranger)
	assert.ErrorIs(t, missingErr, shares.ErrNotFound)
}

func Test_RenameWorkspace_OwnerOnly(t *testing.T) {
	owner, workspace := createUser(t)
	other, _ := createUser(t)

	// without any grant the workspace looks nonexistent to "other"
	err := workspaces_services.GetWorkspaceService().RenameWorkspace(
		workspace.ID, other,
		&workspaces_dto.RenameWorkspaceRequestDTO{Name: "Taken over"},
	)
	assert.ErrorIs(t, err, shares.ErrNotFound)

	err = workspaces_services.GetWorkspaceService().RenameWorkspace(
		workspace.ID, owner,
		&workspaces_dto.RenameWorkspaceRequestDTO{Name: "Renamed"},
	)
	require.NoError(t, err)

	dto, err := workspaces_services.GetWorkspaceService().GetWorkspace(workspace.ID, owner)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", dto.Name)
}

func Test_DeleteWorkspace_DefaultCannotBeDeleted(t *testing.T) {
	owner, workspace := createUser(t)

	err := workspaces_services.GetWorkspaceService().DeleteWorkspace(workspace.ID, owner)
	assert.ErrorIs(t, err, shares.ErrInvalidInput)
}

func Test_ListForUser_IncludesAcceptedShares(t *testing.T) {
	owner, workspace := createUser(t)
	recipient, recipientWorkspace := createUser(t)

	share, err := shares.GetShareService().CreateWorkspaceShare(owner, &shares.CreateWorkspaceShareRequestDTO{
		WorkspaceID: workspace.ID,
		Email:       recipient.Email,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	// pending shares are not listed
	listed, err := workspaces_services.GetWorkspaceService().ListForUser(recipient)
	require.NoError(t, err)
	require.Len(t, listed.Workspaces, 1)
	assert.Equal(t, recipientWorkspace.ID, listed.Workspaces[0].ID)

	require.NoError(t, shares.GetShareService().AcceptShareByToken(share.InviteToken, recipient))

	listed, err = workspaces_services.GetWorkspaceService().ListForUser(recipient)
	require.NoError(t, err)
	require.Len(t, listed.Workspaces, 2)

	var sharedEntry *workspaces_dto.WorkspaceResponseDTO
	for i := range listed.Workspaces {
		if listed.Workspaces[i].ID == workspace.ID {
			sharedEntry = &listed.Workspaces[i]
		}
	}
	require.NotNil(t, sharedEntry)
	assert.Equal(t, shares.AccessLevelView, sharedEntry.AccessLevel)
}
