package users_controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"etude-backend/internal/apptest"
	users_dto "etude-backend/internal/features/users/dto"
	users_testing "etude-backend/internal/features/users/testing"
	test_utils "etude-backend/internal/util/testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueEmail() string {
	return fmt.Sprintf("user-%s@etude.test", uuid.New().String()[:8])
}

func Test_SignUp_ThenSignIn(t *testing.T) {
	router := apptest.GetRouter()

	email := uniqueEmail()

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/sign-up",
		Body: users_dto.SignUpRequestDTO{
			Email:    email,
			Password: "test-password-123",
			Name:     "New User",
		},
		ExpectedStatus: http.StatusOK,
	})

	response := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/sign-in",
		Body: users_dto.SignInRequestDTO{
			Email:    email,
			Password: "test-password-123",
		},
		ExpectedStatus: http.StatusOK,
	})

	var session users_dto.SignInResponseDTO
	require.NoError(t, json.Unmarshal(response.Body, &session))
	assert.Equal(t, email, session.Email)
	assert.NotEmpty(t, session.Token)
}

func Test_SignUp_DuplicateEmailConflicts(t *testing.T) {
	router := apptest.GetRouter()

	email := uniqueEmail()
	users_testing.CreateTestUserWithEmail(email)

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/sign-up",
		Body: users_dto.SignUpRequestDTO{
			Email:    email,
			Password: "another-password-123",
			Name:     "Duplicate User",
		},
		ExpectedStatus: http.StatusConflict,
	})
}

func Test_SignIn_WrongPasswordUnauthorized(t *testing.T) {
	router := apptest.GetRouter()

	email := uniqueEmail()
	users_testing.CreateTestUserWithEmail(email)

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/sign-in",
		Body: users_dto.SignInRequestDTO{
			Email:    email,
			Password: "not-the-password",
		},
		ExpectedStatus: http.StatusUnauthorized,
	})
}

func Test_SignIn_EmailIsCaseInsensitive(t *testing.T) {
	router := apptest.GetRouter()

	email := uniqueEmail()
	users_testing.CreateTestUserWithEmail(email)

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/sign-in",
		Body: users_dto.SignInRequestDTO{
			Email:    "  " + strings.ToUpper(email) + " ",
			Password: "test-password-123",
		},
		ExpectedStatus: http.StatusOK,
	})
}

func Test_GetProfile_ReturnsCurrentUser(t *testing.T) {
	router := apptest.GetRouter()

	session := users_testing.CreateTestUser()

	response := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodGet,
		URL:            "/api/v1/users/me",
		AuthToken:      "Bearer " + session.Token,
		ExpectedStatus: http.StatusOK,
	})

	var profile users_dto.UserProfileResponseDTO
	require.NoError(t, json.Unmarshal(response.Body, &profile))
	assert.Equal(t, session.UserID, profile.ID)
	assert.Equal(t, session.Email, profile.Email)
	assert.True(t, profile.IsActive)
}

func Test_GetProfile_RequiresAuth(t *testing.T) {
	router := apptest.GetRouter()

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodGet,
		URL:            "/api/v1/users/me",
		ExpectedStatus: http.StatusUnauthorized,
	})
}

func Test_ChangePassword_OldPasswordStopsWorking(t *testing.T) {
	router := apptest.GetRouter()

	email := uniqueEmail()
	session := users_testing.CreateTestUserWithEmail(email)

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodPut,
		URL:            "/api/v1/users/me/password",
		AuthToken:      "Bearer " + session.Token,
		Body:           users_dto.ChangePasswordRequestDTO{NewPassword: "brand-new-password"},
		ExpectedStatus: http.StatusOK,
	})

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/sign-in",
		Body: users_dto.SignInRequestDTO{
			Email:    email,
			Password: "test-password-123",
		},
		ExpectedStatus: http.StatusUnauthorized,
	})

	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method: http.MethodPost,
		URL:    "/api/v1/auth/sign-in",
		Body: users_dto.SignInRequestDTO{
			Email:    email,
			Password: "brand-new-password",
		},
		ExpectedStatus: http.StatusOK,
	})
}

func Test_UpdateProfile_ChangesName(t *testing.T) {
	router := apptest.GetRouter()

	session := users_testing.CreateTestUser()

	newName := "Renamed User"
	test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodPut,
		URL:            "/api/v1/users/me",
		AuthToken:      "Bearer " + session.Token,
		Body:           users_dto.UpdateUserInfoRequestDTO{Name: &newName},
		ExpectedStatus: http.StatusOK,
	})

	response := test_utils.MakeRequest(t, router, test_utils.RequestOptions{
		Method:         http.MethodGet,
		URL:            "/api/v1/users/me",
		AuthToken:      "Bearer " + session.Token,
		ExpectedStatus: http.StatusOK,
	})

	var profile users_dto.UserProfileResponseDTO
	require.NoError(t, json.Unmarshal(response.Body, &profile))
	assert.Equal(t, newName, profile.Name)
}
