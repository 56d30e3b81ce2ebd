package testutil

import (
	"context"

	"github.com/dimitrije/flowdesk-api/internal/models"
	"github.com/dimitrije/flowdesk-api/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProjectMemberService mocks the ProjectMemberService
type MockProjectMemberService struct {
	mock.Mock
}

func (m *MockProjectMemberService) List(ctx context.Context, projectID uuid.UUID, cursor string, limit int) (*services.Page[models.ProjectMember], error) {
	args := m.Called(ctx, projectID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Page[models.ProjectMember]), args.Error(1)
}

func (m *MockProjectMemberService) UpsertAndSend(ctx context.Context, params services.UpsertMemberParams) (*models.ProjectMember, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectMember), args.Error(1)
}

func (m *MockProjectMemberService) Accept(ctx context.Context, token string) (*models.ProjectMember, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProjectMember), args.Error(1)
}

func (m *MockProjectMemberService) Delete(ctx context.Context, projectID, memberID uuid.UUID) error {
	args := m.Called(ctx, projectID, memberID)
	return args.Error(0)
}

func (m *MockProjectMemberService) DeleteByUserExternalID(ctx context.Context, params services.DeleteByExternalIDParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

// MockUserService mocks the UserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetByPlatformAndEmail(ctx context.Context, platformID *uuid.UUID, email string) (*models.User, error) {
	args := m.Called(ctx, platformID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockFeatureGate mocks the FeatureGate
type MockFeatureGate struct {
	mock.Mock
}

func (m *MockFeatureGate) AssertPlatformOwner(ctx context.Context, p services.Principal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockFeatureGate) AssertEmbeddingEnabled(ctx context.Context, p services.Principal) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockAppConnectionService mocks the AppConnectionService
type MockAppConnectionService struct {
	mock.Mock
}

func (m *MockAppConnectionService) Upsert(ctx context.Context, params services.UpsertConnectionParams) (*models.AppConnection, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AppConnection), args.Error(1)
}

func (m *MockAppConnectionService) List(ctx context.Context, projectID uuid.UUID) ([]models.AppConnection, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppConnection), args.Error(1)
}

// MockInvitationSender captures invitations instead of emailing them
type MockInvitationSender struct {
	mock.Mock
}

func (m *MockInvitationSender) SendProjectInvitation(ctx context.Context, inv services.Invitation) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}
