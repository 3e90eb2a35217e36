package users_services_test

import (
	"testing"

	"etude-backend/internal/apptest"
	users_models "etude-backend/internal/features/users/models"
	users_services "etude-backend/internal/features/users/services"
	users_testing "etude-backend/internal/features/users/testing"
	"etude-backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_GetUserFromToken_UserRowGone(t *testing.T) {
	apptest.GetRouter()

	session := users_testing.CreateTestUser()

	err := storage.GetDb().
		Where("id = ?", session.UserID).
		Delete(&users_models.User{}).Error
	require.NoError(t, err)

	user, err := users_services.GetUserService().GetUserFromToken(session.Token)
	assert.Error(t, err)
	assert.Nil(t, user)
}
