package attachments_test

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"etude-backend/internal/apptest"
	"etude-backend/internal/features/attachments"
	"etude-backend/internal/features/pages"
	"etude-backend/internal/features/shares"
	users_models "etude-backend/internal/features/users/models"
	users_services "etude-backend/internal/features/users/services"
	users_testing "etude-backend/internal/features/users/testing"
	workspaces_services "etude-backend/internal/features/workspaces/services"
	test_utils "etude-backend/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createUserWithPage(t *testing.T) (*users_models.User, *pages.Page, string) {
	t.Helper()
	apptest.GetRouter()

	session := users_testing.CreateTestUser()
	user, err := users_services.GetUserService().GetUserByID(session.UserID)
	require.NoError(t, err)

	workspace, err := workspaces_services.GetWorkspaceService().GetDefaultWorkspace(user.ID)
	require.NoError(t, err)

	page, err := pages.GetPageService().CreatePage(user, &pages.CreatePageRequestDTO{
		WorkspaceID: workspace.ID,
		Title:       "Page with files",
	})
	require.NoError(t, err)

	return user, page, "Bearer " + session.Token
}

func Test_Upload_FailsWhenStorageDisabled(t *testing.T) {
	user, page, _ := createUserWithPage(t)

	service := attachments.GetAttachmentService()
	require.False(t, service.IsEnabled())

	_, err := service.UploadAttachment(
		context.Background(),
		user,
		page.ID,
		"notes.txt",
		"text/plain",
		5,
		strings.NewReader("hello"),
	)
	assert.ErrorIs(t, err, attachments.ErrStorageDisabled)
}

func Test_Download_ReturnsServiceUnavailableOverHTTP(t *testing.T) {
	_, _, token := createUserWithPage(t)
	router := apptest.GetRouter()

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodGet,
		URL:            "/api/v1/attachments/" + uuid.New().String(),
		AuthToken:      token,
		ExpectedStatus: http.StatusServiceUnavailable,
	})
}

func Test_List_WorksWithoutObjectStorage(t *testing.T) {
	user, page, _ := createUserWithPage(t)

	listed, err := attachments.GetAttachmentService().ListAttachments(user, page.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func Test_List_RequiresPageAccess(t *testing.T) {
	_, page, _ := createUserWithPage(t)

	strangerSession := users_testing.CreateTestUser()
	stranger, err := users_services.GetUserService().GetUserByID(strangerSession.UserID)
	require.NoError(t, err)

	// same answer as for a page that does not exist
	_, err = attachments.GetAttachmentService().ListAttachments(stranger, page.ID)
	assert.ErrorIs(t, err, shares.ErrNotFound)
}

func Test_List_UnknownPageNotFound(t *testing.T) {
	user, _, _ := createUserWithPage(t)

	_, err := attachments.GetAttachmentService().ListAttachments(user, uuid.New())
	assert.ErrorIs(t, err, shares.ErrNotFound)
}
