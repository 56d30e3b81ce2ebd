package services

import "github.com/google/uuid"

// Principal is the authenticated caller, decoded from the bearer token.
type Principal struct {
	UserID     uuid.UUID
	Email      string
	ProjectID  uuid.UUID
	PlatformID *uuid.UUID
}

func (p Principal) RequirePlatform() (uuid.UUID, error) {
	if p.PlatformID == nil || *p.PlatformID == uuid.Nil {
		return uuid.Nil, ErrPlatformRequired
	}
	return *p.PlatformID, nil
}
