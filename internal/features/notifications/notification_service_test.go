package notifications_test

import (
	"testing"
	"time"

	"etude-backend/internal/apptest"
	"etude-backend/internal/features/notifications"
	"etude-backend/internal/features/pages"
	"etude-backend/internal/features/shares"
	users_services "etude-backend/internal/features/users/services"
	users_testing "etude-backend/internal/features/users/testing"
	workspaces_services "etude-backend/internal/features/workspaces/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Notify_DeliversAsynchronously(t *testing.T) {
	apptest.GetRouter()

	email := "notify-target@etude.test"

	notifications.GetNotificationService().Notify(
		email,
		notifications.NotificationTypeShareInvited,
		"Test title",
		"Test content",
		"/somewhere",
		map[string]any{"k": "v"},
	)

	assert.Eventually(t, func() bool {
		stored, err := notifications.GetNotificationService().GetNotifications(email)
		return err == nil && len(stored) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := notifications.GetNotificationService().GetNotifications(email)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Test title", stored[0].Title)
	assert.False(t, stored[0].IsRead)
}

func Test_MarkRead_OnlyTouchesOwnNotifications(t *testing.T) {
	apptest.GetRouter()

	email := "mark-read@etude.test"
	otherEmail := "other-recipient@etude.test"

	notifications.GetNotificationService().Notify(
		email, notifications.NotificationTypeShareAccepted, "Mine", "", "", nil,
	)

	assert.Eventually(t, func() bool {
		stored, err := notifications.GetNotificationService().GetNotifications(email)
		return err == nil && len(stored) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := notifications.GetNotificationService().GetNotifications(email)
	require.NoError(t, err)

	err = notifications.GetNotificationService().MarkRead(stored[0].ID, otherEmail)
	assert.ErrorIs(t, err, notifications.ErrNotificationNotFound)

	require.NoError(t, notifications.GetNotificationService().MarkRead(stored[0].ID, email))

	unread, err := notifications.GetNotificationService().CountUnread(email)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func Test_ShareInvite_NotifiesRecipient(t *testing.T) {
	apptest.GetRouter()

	ownerSession := users_testing.CreateTestUser()
	owner, err := users_services.GetUserService().GetUserByID(ownerSession.UserID)
	require.NoError(t, err)

	workspace, err := workspaces_services.GetWorkspaceService().GetDefaultWorkspace(owner.ID)
	require.NoError(t, err)

	page, err := pages.GetPageService().CreatePage(owner, &pages.CreatePageRequestDTO{
		WorkspaceID: workspace.ID,
		Title:       "Announced page",
	})
	require.NoError(t, err)

	recipientEmail := "invite-notification@etude.test"
	_, err = shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipientEmail,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		stored, err := notifications.GetNotificationService().GetNotifications(recipientEmail)
		return err == nil && len(stored) == 1
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := notifications.GetNotificationService().GetNotifications(recipientEmail)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, notifications.NotificationTypeShareInvited, stored[0].Type)
	assert.Contains(t, stored[0].Content, "Announced page")
}

func Test_ReinviteDoesNotNotifyAgain(t *testing.T) {
	apptest.GetRouter()

	ownerSession := users_testing.CreateTestUser()
	owner, err := users_services.GetUserService().GetUserByID(ownerSession.UserID)
	require.NoError(t, err)

	workspace, err := workspaces_services.GetWorkspaceService().GetDefaultWorkspace(owner.ID)
	require.NoError(t, err)

	page, err := pages.GetPageService().CreatePage(owner, &pages.CreatePageRequestDTO{
		WorkspaceID: workspace.ID,
		Title:       "Quiet page",
	})
	require.NoError(t, err)

	recipientEmail := "reinvite-target@etude.test"

	_, err = shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipientEmail,
		AccessLevel: shares.AccessLevelView,
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		stored, err := notifications.GetNotificationService().GetNotifications(recipientEmail)
		return err == nil && len(stored) == 1
	}, 2*time.Second, 10*time.Millisecond)

	_, err = shares.GetShareService().CreatePageShare(owner, &shares.CreatePageShareRequestDTO{
		PageID:      page.ID,
		Email:       recipientEmail,
		AccessLevel: shares.AccessLevelEdit,
	})
	require.NoError(t, err)

	// give the dispatcher a moment, then confirm nothing new arrived
	time.Sleep(200 * time.Millisecond)

	stored, err := notifications.GetNotificationService().GetNotifications(recipientEmail)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func Test_RemoveExpiredNotifications_KeepsUnread(t *testing.T) {
	apptest.GetRouter()

	email := "retention@etude.test"
	repository := notifications.GetNotificationRepository()

	oldRead := &notifications.Notification{
		ID:             uuid.New(),
		RecipientEmail: email,
		Type:           notifications.NotificationTypeShareInvited,
		Title:          "Old and read",
		IsRead:         true,
		CreatedAt:      time.Now().UTC().AddDate(0, 0, -60),
	}
	require.NoError(t, repository.Create(oldRead))

	oldUnread := &notifications.Notification{
		ID:             uuid.New(),
		RecipientEmail: email,
		Type:           notifications.NotificationTypeShareInvited,
		Title:          "Old but unread",
		IsRead:         false,
		CreatedAt:      time.Now().UTC().AddDate(0, 0, -60),
	}
	require.NoError(t, repository.Create(oldUnread))

	notifications.GetNotificationService().RemoveExpiredNotifications()

	stored, err := notifications.GetNotificationService().GetNotifications(email)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Old but unread", stored[0].Title)
}
