package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/dimitrije/flowdesk-api/internal/database"
	"github.com/dimitrije/flowdesk-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InvitationSender delivers the accept link to an invitee.
type InvitationSender interface {
	SendProjectInvitation(ctx context.Context, inv Invitation) error
}

type UpsertMemberParams struct {
	Email      string
	Role       models.MemberRole
	Status     models.MemberStatus
	ProjectID  uuid.UUID
	PlatformID *uuid.UUID
}

type DeleteByExternalIDParams struct {
	UserExternalID string
	PlatformID     *uuid.UUID
	ProjectID      uuid.UUID
}

type ProjectMemberService struct {
	db            *database.DB
	users         *UserService
	sender        InvitationSender
	frontendURL   string
	invitationTTL time.Duration
}

func NewProjectMemberService(db *database.DB, users *UserService, sender InvitationSender, frontendURL string, invitationTTL time.Duration) *ProjectMemberService {
	return &ProjectMemberService{
		db:            db,
		users:         users,
		sender:        sender,
		frontendURL:   strings.TrimRight(frontendURL, "/"),
		invitationTTL: invitationTTL,
	}
}

const memberColumns = `id, project_id, platform_id, email, role, status, created_at, updated_at`

func scanMember(row pgx.Row, m *models.ProjectMember) error {
	return row.Scan(&m.ID, &m.ProjectID, &m.PlatformID, &m.Email,
		(*string)(&m.Role), (*string)(&m.Status), &m.CreatedAt, &m.UpdatedAt)
}

// List returns one page of a project's members ordered by (created_at, id).
// An empty cursor starts at the beginning. Next is nil on the last page.
func (s *ProjectMemberService) List(ctx context.Context, projectID uuid.UUID, cursorToken string, limit int) (*Page[models.ProjectMember], error) {
	limit, err := NormalizeLimit(limit)
	if err != nil {
		return nil, err
	}
	after, err := decodeCursor(cursorToken)
	if err != nil {
		return nil, err
	}

	var rows pgx.Rows
	if after == nil {
		rows, err = s.db.Pool.Query(ctx, `
			SELECT `+memberColumns+`
			FROM project_members
			WHERE project_id = $1
			ORDER BY created_at, id
			LIMIT $2
		`, projectID, limit+1)
	} else {
		rows, err = s.db.Pool.Query(ctx, `
			SELECT `+memberColumns+`
			FROM project_members
			WHERE project_id = $1 AND (created_at, id) > ($2::timestamptz, $3::uuid)
			ORDER BY created_at, id
			LIMIT $4
		`, projectID, after.CreatedAt, after.ID, limit+1)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}
	defer rows.Close()

	members := make([]models.ProjectMember, 0, limit)
	for rows.Next() {
		var m models.ProjectMember
		if err := scanMember(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan project member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list project members: %w", err)
	}

	page := &Page[models.ProjectMember]{Data: members}
	if len(members) > limit {
		page.Data = members[:limit]
		last := page.Data[limit-1]
		next := encodeCursor(last.CreatedAt, last.ID)
		page.Next = &next
	}
	return page, nil
}

// UpsertAndSend creates or updates the member for (project, email). A PENDING
// member gets a fresh invitation token and the invite email is sent before the
// transaction commits, so a failed delivery leaves no record behind. An ACTIVE
// member is never demoted back to PENDING.
func (s *ProjectMemberService) UpsertAndSend(ctx context.Context, params UpsertMemberParams) (*models.ProjectMember, error) {
	email, err := NormalizeEmail(params.Email)
	if err != nil {
		return nil, err
	}
	if !params.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if !params.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	var plainToken, tokenHash *string
	var expiresAt *time.Time
	if params.Status == models.MemberStatusPending {
		token, hash, err := GenerateInvitationToken()
		if err != nil {
			return nil, err
		}
		exp := time.Now().Add(s.invitationTTL)
		plainToken, tokenHash, expiresAt = &token, &hash, &exp
	}

	tx, err := s.db.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var projectName string
	err = tx.QueryRow(ctx, `SELECT display_name FROM projects WHERE id = $1`, params.ProjectID).Scan(&projectName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAuthorization
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	var member models.ProjectMember
	err = scanMember(tx.QueryRow(ctx, `
		INSERT INTO project_members (project_id, platform_id, email, role, status, invitation_token_hash, invitation_expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (project_id, email) DO UPDATE SET
			role = EXCLUDED.role,
			status = CASE WHEN project_members.status = 'ACTIVE' THEN 'ACTIVE' ELSE EXCLUDED.status END,
			invitation_token_hash = CASE WHEN project_members.status = 'ACTIVE' THEN NULL ELSE EXCLUDED.invitation_token_hash END,
			invitation_expires_at = CASE WHEN project_members.status = 'ACTIVE' THEN NULL ELSE EXCLUDED.invitation_expires_at END,
			updated_at = NOW()
		RETURNING `+memberColumns,
		params.ProjectID, params.PlatformID, email, string(params.Role), string(params.Status), tokenHash, expiresAt,
	), &member)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert project member: %w", err)
	}

	if plainToken != nil && member.Status == models.MemberStatusPending {
		err = s.sender.SendProjectInvitation(ctx, Invitation{
			To:          member.Email,
			ProjectName: projectName,
			Role:        string(member.Role),
			AcceptURL:   s.acceptURL(*plainToken),
			ExpiresAt:   *expiresAt,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvitationDelivery, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &member, nil
}

// Accept redeems an invitation token. Malformed, unknown, consumed and expired
// tokens all fail with ErrInvitationDenied.
func (s *ProjectMemberService) Accept(ctx context.Context, token string) (*models.ProjectMember, error) {
	if !IsInvitationTokenFormat(token) {
		return nil, ErrInvitationDenied
	}

	var member models.ProjectMember
	err := scanMember(s.db.Pool.QueryRow(ctx, `
		UPDATE project_members
		SET status = 'ACTIVE', invitation_token_hash = NULL, invitation_expires_at = NULL, updated_at = NOW()
		WHERE invitation_token_hash = $1 AND status = 'PENDING' AND invitation_expires_at > NOW()
		RETURNING `+memberColumns,
		HashToken(token),
	), &member)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvitationDenied
		}
		return nil, fmt.Errorf("failed to accept invitation: %w", err)
	}

	return &member, nil
}

func (s *ProjectMemberService) Delete(ctx context.Context, projectID, memberID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM project_members WHERE id = $1 AND project_id = $2
	`, memberID, projectID)
	if err != nil {
		return fmt.Errorf("failed to delete project member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

func (s *ProjectMemberService) DeleteByUserExternalID(ctx context.Context, params DeleteByExternalIDParams) error {
	if params.PlatformID == nil {
		return ErrPlatformRequired
	}

	user, err := s.users.GetByPlatformAndExternalID(ctx, *params.PlatformID, params.UserExternalID)
	if err != nil {
		return err
	}

	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM project_members WHERE project_id = $1 AND email = $2
	`, params.ProjectID, strings.ToLower(user.Email))
	if err != nil {
		return fmt.Errorf("failed to delete project member: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// DeleteExpiredInvitations removes PENDING members whose invitation expired.
func (s *ProjectMemberService) DeleteExpiredInvitations(ctx context.Context) (int64, error) {
	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM project_members
		WHERE status = 'PENDING' AND invitation_expires_at < NOW()
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired invitations: %w", err)
	}
	return result.RowsAffected(), nil
}

func (s *ProjectMemberService) acceptURL(token string) string {
	return s.frontendURL + "/invitation?token=" + url.QueryEscape(token)
}

// NormalizeEmail lowercases and trims email and rejects anything that is not a bare address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
