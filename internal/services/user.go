package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dimitrije/flowdesk-api/internal/database"
	"github.com/dimitrije/flowdesk-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserService struct {
	db *database.DB
}

func NewUserService(db *database.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetByPlatformAndEmail(ctx context.Context, platformID *uuid.UUID, email string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, platform_id, external_id, created_at, updated_at
		FROM users
		WHERE platform_id IS NOT DISTINCT FROM $1 AND lower(email) = $2
	`, platformID, strings.ToLower(email)).Scan(
		&user.ID, &user.Email, &user.PlatformID, &user.ExternalID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (s *UserService) GetByPlatformAndExternalID(ctx context.Context, platformID uuid.UUID, externalID string) (*models.User, error) {
	var user models.User
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, email, platform_id, external_id, created_at, updated_at
		FROM users
		WHERE platform_id = $1 AND external_id = $2
	`, platformID, externalID).Scan(
		&user.ID, &user.Email, &user.PlatformID, &user.ExternalID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
