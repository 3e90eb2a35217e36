package users_models

import (
	"time"

	users_enums "etude-backend/internal/features/users/enums"
	"etude-backend/internal/storage"

	"github.com/google/uuid"
)

func init() {
	storage.RegisterModel(&User{})
}

type User struct {
	ID                   uuid.UUID              `json:"id"                   gorm:"column:id;primaryKey"`
	Email                string                 `json:"email"                gorm:"column:email;uniqueIndex;not null"`
	Name                 string                 `json:"name"                 gorm:"column:name;not null"`
	HashedPassword       *string                `json:"-"                    gorm:"column:hashed_password"`
	PasswordCreationTime time.Time              `json:"-"                    gorm:"column:password_creation_time"`
	Status               users_enums.UserStatus `json:"status"               gorm:"column:status;not null"`
	GitHubOAuthID        *string                `json:"-"                    gorm:"column:github_oauth_id"`
	GoogleOAuthID        *string                `json:"-"                    gorm:"column:google_oauth_id"`
	CreatedAt            time.Time              `json:"createdAt"            gorm:"column:created_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsActiveUser() bool {
	return u.Status == users_enums.UserStatusActive
}

func (u *User) HasPassword() bool {
	return u.HashedPassword != nil && *u.HashedPassword != ""
}
