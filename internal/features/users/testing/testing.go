package users_testing

import (
	"fmt"

	users_dto "etude-backend/internal/features/users/dto"
	users_services "etude-backend/internal/features/users/services"

	"github.com/google/uuid"
)

// CreateTestUser registers a fresh user with a unique email and returns a
// signed-in session for it.
func CreateTestUser() *users_dto.SignInResponseDTO {
	email := fmt.Sprintf("user-%s@etude.test", uuid.New().String()[:8])
	return CreateTestUserWithEmail(email)
}

func CreateTestUserWithEmail(email string) *users_dto.SignInResponseDTO {
	userService := users_services.GetUserService()

	err := userService.SignUp(&users_dto.SignUpRequestDTO{
		Email:    email,
		Password: "test-password-123",
		Name:     "Test User",
	})
	if err != nil {
		panic("failed to sign up test user: " + err.Error())
	}

	user, err := userService.GetUserByEmail(email)
	if err != nil || user == nil {
		panic("failed to load test user")
	}

	response, err := userService.GenerateAccessToken(user)
	if err != nil {
		panic("failed to generate test token: " + err.Error())
	}

	return response
}
