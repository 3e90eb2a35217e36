package users_services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"etude-backend/internal/config"
	users_dto "etude-backend/internal/features/users/dto"
	users_enums "etude-backend/internal/features/users/enums"
	users_models "etude-backend/internal/features/users/models"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

func (s *UserService) HandleGitHubOAuth(
	code, redirectUri string,
) (*users_dto.OAuthCallbackResponseDTO, error) {
	env := config.GetEnv()

	oauthConfig := &oauth2.Config{
		ClientID:     env.GitHubClientID,
		ClientSecret: env.GitHubClientSecret,
		RedirectURL:  redirectUri,
		Endpoint:     github.Endpoint,
		Scopes:       []string{"user:email"},
	}

	var githubUser struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Login string `json:"login"`
	}

	if err := fetchOAuthUser(oauthConfig, code, "https://api.github.com/user", &githubUser); err != nil {
		return nil, err
	}

	if githubUser.Email == "" {
		return nil, errors.New("github account has no accessible email")
	}

	name := githubUser.Name
	if name == "" {
		name = githubUser.Login
	}

	return s.getOrCreateUserFromOAuth(
		fmt.Sprintf("%d", githubUser.ID),
		githubUser.Email,
		name,
		"github",
	)
}

func (s *UserService) HandleGoogleOAuth(
	code, redirectUri string,
) (*users_dto.OAuthCallbackResponseDTO, error) {
	env := config.GetEnv()

	oauthConfig := &oauth2.Config{
		ClientID:     env.GoogleClientID,
		ClientSecret: env.GoogleClientSecret,
		RedirectURL:  redirectUri,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
	}

	var googleUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	err := fetchOAuthUser(
		oauthConfig,
		code,
		"https://www.googleapis.com/oauth2/v2/userinfo",
		&googleUser,
	)
	if err != nil {
		return nil, err
	}

	if googleUser.Email == "" {
		return nil, errors.New("google account has no email")
	}

	name := googleUser.Name
	if name == "" {
		name = "User"
	}

	return s.getOrCreateUserFromOAuth(googleUser.ID, googleUser.Email, name, "google")
}

func fetchOAuthUser(oauthConfig *oauth2.Config, code, userAPIURL string, out any) error {
	token, err := oauthConfig.Exchange(context.Background(), code)
	if err != nil {
		return fmt.Errorf("failed to exchange code: %w", err)
	}

	client := oauthConfig.Client(context.Background(), token)
	resp, err := client.Get(userAPIURL)
	if err != nil {
		return fmt.Errorf("failed to get user info: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("oauth provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse user info: %w", err)
	}

	return nil
}

func (s *UserService) getOrCreateUserFromOAuth(
	oauthID, email, name, provider string,
) (*users_dto.OAuthCallbackResponseDTO, error) {
	var existingUser *users_models.User
	var err error

	if provider == "github" {
		existingUser, err = s.userRepository.GetUserByGitHubOAuthID(oauthID)
	} else {
		existingUser, err = s.userRepository.GetUserByGoogleOAuthID(oauthID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to check OAuth ID: %w", err)
	}

	if existingUser != nil {
		return s.oauthSignInResponse(existingUser, provider, false)
	}

	userByEmail, err := s.userRepository.GetUserByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	if userByEmail != nil {
		oauthColumn := "github_oauth_id"
		if provider == "google" {
			oauthColumn = "google_oauth_id"
		}

		if err := s.userRepository.LinkOAuthID(userByEmail.ID, oauthColumn, oauthID); err != nil {
			return nil, fmt.Errorf("failed to link OAuth ID: %w", err)
		}

		return s.oauthSignInResponse(userByEmail, provider, false)
	}

	var githubOAuthID, googleOAuthID *string
	if provider == "github" {
		githubOAuthID = &oauthID
	} else {
		googleOAuthID = &oauthID
	}

	newUser := &users_models.User{
		ID:                   uuid.New(),
		Email:                email,
		Name:                 name,
		HashedPassword:       nil,
		PasswordCreationTime: time.Now().UTC(),
		Status:               users_enums.UserStatusActive,
		GitHubOAuthID:        githubOAuthID,
		GoogleOAuthID:        googleOAuthID,
		CreatedAt:            time.Now().UTC(),
	}

	if err := s.userRepository.CreateUser(newUser); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.notifySignUpListeners(newUser); err != nil {
		return nil, err
	}

	return s.oauthSignInResponse(newUser, provider, true)
}

func (s *UserService) oauthSignInResponse(
	user *users_models.User,
	provider string,
	isNewUser bool,
) (*users_dto.OAuthCallbackResponseDTO, error) {
	tokenResponse, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	if s.auditLogWriter != nil {
		message := fmt.Sprintf("User signed in via %s", provider)
		if isNewUser {
			message = fmt.Sprintf("User registered via %s OAuth: %s", provider, user.Email)
		}
		s.auditLogWriter.WriteAuditLog(message, &user.ID, nil)
	}

	return &users_dto.OAuthCallbackResponseDTO{
		UserID:    user.ID,
		Email:     user.Email,
		Token:     tokenResponse.Token,
		IsNewUser: isNewUser,
	}, nil
}
