package models

import (
	"time"

	"github.com/google/uuid"
)

type MemberRole string

const (
	MemberRoleAdmin    MemberRole = "ADMIN"
	MemberRoleEditor   MemberRole = "EDITOR"
	MemberRoleOperator MemberRole = "OPERATOR"
	MemberRoleViewer   MemberRole = "VIEWER"
)

func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleAdmin, MemberRoleEditor, MemberRoleOperator, MemberRoleViewer:
		return true
	}
	return false
}

type MemberStatus string

const (
	MemberStatusPending MemberStatus = "PENDING"
	MemberStatusActive  MemberStatus = "ACTIVE"
)

func (s MemberStatus) Valid() bool {
	return s == MemberStatusPending || s == MemberStatusActive
}

// ProjectMember is a user's admission to a project. The invitation token hash
// and its expiry live only in the database and are never loaded here.
type ProjectMember struct {
	ID         uuid.UUID    `json:"id"`
	ProjectID  uuid.UUID    `json:"project_id"`
	PlatformID *uuid.UUID   `json:"platform_id,omitempty"`
	Email      string       `json:"email"`
	Role       MemberRole   `json:"role"`
	Status     MemberStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at"`
}
