package dto

import (
	"time"

	"github.com/google/uuid"
)

type AddProjectMemberRequest struct {
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type AcceptInvitationRequest struct {
	Token string `json:"token"`
}

type AcceptInvitationResponse struct {
	Registered bool `json:"registered"`
}

type ProjectMemberResponse struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  uuid.UUID  `json:"project_id"`
	PlatformID *uuid.UUID `json:"platform_id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ProjectMemberPageResponse struct {
	Data []ProjectMemberResponse `json:"data"`
	Next *string                 `json:"next"`
}
