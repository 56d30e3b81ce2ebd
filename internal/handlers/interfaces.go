package handlers

import (
	"context"

	"github.com/dimitrije/flowdesk-api/internal/models"
	"github.com/dimitrije/flowdesk-api/internal/services"
	"github.com/google/uuid"
)

// ProjectMemberServiceInterface defines the methods used by handlers from ProjectMemberService
type ProjectMemberServiceInterface interface {
	List(ctx context.Context, projectID uuid.UUID, cursor string, limit int) (*services.Page[models.ProjectMember], error)
	UpsertAndSend(ctx context.Context, params services.UpsertMemberParams) (*models.ProjectMember, error)
	Accept(ctx context.Context, token string) (*models.ProjectMember, error)
	Delete(ctx context.Context, projectID, memberID uuid.UUID) error
	DeleteByUserExternalID(ctx context.Context, params services.DeleteByExternalIDParams) error
}

// UserServiceInterface defines the methods used by handlers from UserService
type UserServiceInterface interface {
	GetByPlatformAndEmail(ctx context.Context, platformID *uuid.UUID, email string) (*models.User, error)
}

// FeatureGateInterface defines the methods used by handlers from FeatureGate
type FeatureGateInterface interface {
	AssertPlatformOwner(ctx context.Context, p services.Principal) error
	AssertEmbeddingEnabled(ctx context.Context, p services.Principal) error
}

// AppConnectionServiceInterface defines the methods used by handlers from AppConnectionService
type AppConnectionServiceInterface interface {
	Upsert(ctx context.Context, params services.UpsertConnectionParams) (*models.AppConnection, error)
	List(ctx context.Context, projectID uuid.UUID) ([]models.AppConnection, error)
}

// Compile-time interface checks
var (
	_ ProjectMemberServiceInterface = (*services.ProjectMemberService)(nil)
	_ UserServiceInterface          = (*services.UserService)(nil)
	_ FeatureGateInterface          = (*services.FeatureGate)(nil)
	_ AppConnectionServiceInterface = (*services.AppConnectionService)(nil)
)
