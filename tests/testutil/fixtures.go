package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/dimitrije/flowdesk-api/internal/database"
	"github.com/dimitrije/flowdesk-api/internal/models"
	"github.com/google/uuid"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email: fmt.Sprintf("user%d@example.com", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, platform_id, external_id)
		VALUES ($1, $2, $3)
		RETURNING id, email, platform_id, external_id, created_at, updated_at
	`, user.Email, user.PlatformID, user.ExternalID).Scan(
		&user.ID, &user.Email, &user.PlatformID, &user.ExternalID,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithPlatform places the user on a platform
func WithPlatform(platform *models.Platform) UserOption {
	return func(u *models.User) {
		u.PlatformID = &platform.ID
	}
}

// WithExternalID sets the id the embedding platform knows the user by
func WithExternalID(externalID string) UserOption {
	return func(u *models.User) {
		u.ExternalID = &externalID
	}
}

// CreatePlatform creates a test platform owned by the given user
func (f *Fixtures) CreatePlatform(t *testing.T, owner *models.User, opts ...PlatformOption) *models.Platform {
	t.Helper()
	f.counter++

	platform := &models.Platform{
		OwnerID: owner.ID,
		Name:    fmt.Sprintf("Test Platform %d", f.counter),
	}

	for _, opt := range opts {
		opt(platform)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO platforms (owner_id, name, embedding_enabled)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, name, embedding_enabled, created_at, updated_at
	`, platform.OwnerID, platform.Name, platform.EmbeddingEnabled).Scan(
		&platform.ID, &platform.OwnerID, &platform.Name, &platform.EmbeddingEnabled,
		&platform.CreatedAt, &platform.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create platform: %v", err)
	}

	return platform
}

// PlatformOption configures a test platform
type PlatformOption func(*models.Platform)

// WithEmbedding turns the embedding capability on
func WithEmbedding() PlatformOption {
	return func(p *models.Platform) {
		p.EmbeddingEnabled = true
	}
}

// CreateProject creates a test project owned by the given user
func (f *Fixtures) CreateProject(t *testing.T, owner *models.User, opts ...ProjectOption) *models.Project {
	t.Helper()
	f.counter++

	project := &models.Project{
		OwnerID:     owner.ID,
		PlatformID:  owner.PlatformID,
		DisplayName: fmt.Sprintf("Test Project %d", f.counter),
	}

	for _, opt := range opts {
		opt(project)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO projects (platform_id, owner_id, display_name)
		VALUES ($1, $2, $3)
		RETURNING id, platform_id, owner_id, display_name, created_at, updated_at
	`, project.PlatformID, project.OwnerID, project.DisplayName).Scan(
		&project.ID, &project.PlatformID, &project.OwnerID, &project.DisplayName,
		&project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}

	return project
}

// ProjectOption configures a test project
type ProjectOption func(*models.Project)

// WithDisplayName sets the project's display name
func WithDisplayName(name string) ProjectOption {
	return func(p *models.Project) {
		p.DisplayName = name
	}
}

// CreateMember inserts a project member directly, bypassing invitation delivery
func (f *Fixtures) CreateMember(t *testing.T, project *models.Project, email string, status models.MemberStatus) *models.ProjectMember {
	t.Helper()

	member := &models.ProjectMember{}
	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO project_members (project_id, platform_id, email, role, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, project_id, platform_id, email, role, status, created_at, updated_at
	`, project.ID, project.PlatformID, email, string(models.MemberRoleViewer), string(status)).Scan(
		&member.ID, &member.ProjectID, &member.PlatformID, &member.Email,
		(*string)(&member.Role), (*string)(&member.Status), &member.CreatedAt, &member.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create project member: %v", err)
	}

	return member
}

// ExpireInvitation moves a pending member's invitation expiry into the past
func (f *Fixtures) ExpireInvitation(t *testing.T, memberID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		UPDATE project_members SET invitation_expires_at = NOW() - INTERVAL '1 minute' WHERE id = $1
	`, memberID)
	if err != nil {
		t.Fatalf("failed to expire invitation: %v", err)
	}
}
