package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dimitrije/flowdesk-api/internal/database"
	"github.com/dimitrije/flowdesk-api/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PlatformService struct {
	db *database.DB
}

func NewPlatformService(db *database.DB) *PlatformService {
	return &PlatformService{db: db}
}

func (s *PlatformService) GetByID(ctx context.Context, platformID uuid.UUID) (*models.Platform, error) {
	var platform models.Platform
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, owner_id, name, embedding_enabled, created_at, updated_at
		FROM platforms WHERE id = $1
	`, platformID).Scan(&platform.ID, &platform.OwnerID, &platform.Name, &platform.EmbeddingEnabled, &platform.CreatedAt, &platform.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPlatformNotFound
		}
		return nil, fmt.Errorf("failed to get platform: %w", err)
	}
	return &platform, nil
}

func (s *PlatformService) SetEmbeddingEnabled(ctx context.Context, platformID uuid.UUID, enabled bool) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE platforms SET embedding_enabled = $1, updated_at = NOW()
		WHERE id = $2
	`, enabled, platformID)
	if err != nil {
		return fmt.Errorf("failed to update platform: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrPlatformNotFound
	}
	return nil
}
