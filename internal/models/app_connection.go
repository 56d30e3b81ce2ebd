package models

import (
	"time"

	"github.com/google/uuid"
)

type AppConnectionType string

const AppConnectionTypeSecretText AppConnectionType = "SECRET_TEXT"

// AppConnection is a stored credential. The secret itself stays sealed in the
// database and is never part of this struct.
type AppConnection struct {
	ID        uuid.UUID         `json:"id"`
	ProjectID uuid.UUID         `json:"project_id"`
	AppName   string            `json:"app_name"`
	Name      string            `json:"name"`
	Type      AppConnectionType `json:"type"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
