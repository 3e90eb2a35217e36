package users_interfaces

import (
	users_models "etude-backend/internal/features/users/models"

	"github.com/google/uuid"
)

type AuditLogWriter interface {
	WriteAuditLog(message string, userID *uuid.UUID, workspaceID *uuid.UUID)
}

// UserSignUpListener is notified after a user account becomes active,
// whether via password signup or first OAuth sign-in. The workspaces
// feature uses it to provision the default workspace.
type UserSignUpListener interface {
	OnUserSignedUp(user *users_models.User) error
}
