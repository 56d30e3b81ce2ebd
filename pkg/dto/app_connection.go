package dto

import (
	"time"

	"github.com/google/uuid"
)

const AppConnectionTypeSecretText = "SECRET_TEXT"

type AppConnectionValue struct {
	Type       string `json:"type"`
	SecretText string `json:"secret_text"`
}

type UpsertAppConnectionRequest struct {
	ProjectID *uuid.UUID         `json:"project_id,omitempty"`
	AppName   string             `json:"app_name"`
	Name      string             `json:"name"`
	Value     AppConnectionValue `json:"value"`
}

type AppConnectionResponse struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	AppName   string    `json:"app_name"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AppConnectionListResponse struct {
	Data []AppConnectionResponse `json:"data"`
}
