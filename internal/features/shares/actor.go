package shares

import "github.com/google/uuid"

// Actor identifies who is requesting access, either a registered user by
// ID or an invitee known only by email.
type Actor struct {
	userID *uuid.UUID
	email  string
}

func ActorByID(userID uuid.UUID) Actor {
	return Actor{userID: &userID}
}

func ActorByEmail(email string) Actor {
	return Actor{email: email}
}

func (a Actor) UserID() (uuid.UUID, bool) {
	if a.userID == nil {
		return uuid.Nil, false
	}
	return *a.userID, true
}

func (a Actor) Email() string {
	return a.email
}
