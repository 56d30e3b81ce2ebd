package services

import (
	"context"
	"fmt"

	"github.com/dimitrije/flowdesk-api/internal/database"
	"github.com/dimitrije/flowdesk-api/internal/models"
	"github.com/dimitrije/flowdesk-api/pkg/connection"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UpsertConnectionParams struct {
	ProjectID  uuid.UUID
	AppName    string
	Name       string
	Type       models.AppConnectionType
	SecretText string
}

type AppConnectionService struct {
	db     *database.DB
	sealer *Sealer
}

func NewAppConnectionService(db *database.DB, sealer *Sealer) *AppConnectionService {
	return &AppConnectionService{db: db, sealer: sealer}
}

const connectionColumns = `id, project_id, app_name, name, type, created_at, updated_at`

func scanConnection(row pgx.Row, c *models.AppConnection) error {
	return row.Scan(&c.ID, &c.ProjectID, &c.AppName, &c.Name, (*string)(&c.Type), &c.CreatedAt, &c.UpdatedAt)
}

// Upsert stores a secret-text connection keyed by (project, name). The secret
// is sealed before it reaches the database.
func (s *AppConnectionService) Upsert(ctx context.Context, params UpsertConnectionParams) (*models.AppConnection, error) {
	if params.AppName == "" {
		return nil, ErrAppNameRequired
	}
	if params.Name == "" {
		return nil, ErrConnectionNameRequired
	}
	if !connection.ValidName(params.Name) {
		return nil, ErrConnectionNameInvalid
	}
	if params.Type != models.AppConnectionTypeSecretText {
		return nil, ErrConnectionTypeInvalid
	}
	if params.SecretText == "" {
		return nil, ErrInvalidSecret
	}

	sealed, err := s.sealer.Seal(params.SecretText)
	if err != nil {
		return nil, err
	}

	var conn models.AppConnection
	err = scanConnection(s.db.Pool.QueryRow(ctx, `
		INSERT INTO app_connections (project_id, app_name, name, type, sealed_value)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (project_id, name) DO UPDATE SET
			app_name = EXCLUDED.app_name,
			type = EXCLUDED.type,
			sealed_value = EXCLUDED.sealed_value,
			updated_at = NOW()
		RETURNING `+connectionColumns,
		params.ProjectID, params.AppName, params.Name, string(params.Type), sealed,
	), &conn)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert app connection: %w", err)
	}

	return &conn, nil
}

func (s *AppConnectionService) List(ctx context.Context, projectID uuid.UUID) ([]models.AppConnection, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+connectionColumns+`
		FROM app_connections
		WHERE project_id = $1
		ORDER BY name
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list app connections: %w", err)
	}
	defer rows.Close()

	conns := []models.AppConnection{}
	for rows.Next() {
		var c models.AppConnection
		if err := scanConnection(rows, &c); err != nil {
			return nil, fmt.Errorf("failed to scan app connection: %w", err)
		}
		conns = append(conns, c)
	}
	return conns, rows.Err()
}
