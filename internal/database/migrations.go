package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		email VARCHAR(255) NOT NULL,
		platform_id UUID,
		external_id VARCHAR(255),
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS platforms (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		embedding_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// users.platform_id is declared before platforms exists
	`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'users_platform_id_fkey') THEN
			ALTER TABLE users ADD CONSTRAINT users_platform_id_fkey
				FOREIGN KEY (platform_id) REFERENCES platforms(id) ON DELETE CASCADE;
		END IF;
	END $$`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_platform_email ON users(platform_id, email)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_platform_external_id ON users(platform_id, external_id) WHERE external_id IS NOT NULL`,

	`CREATE TABLE IF NOT EXISTS projects (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		platform_id UUID REFERENCES platforms(id) ON DELETE CASCADE,
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		display_name VARCHAR(255) NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS project_members (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		platform_id UUID REFERENCES platforms(id) ON DELETE CASCADE,
		email VARCHAR(255) NOT NULL,
		role VARCHAR(20) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
		invitation_token_hash VARCHAR(64),
		invitation_expires_at TIMESTAMP WITH TIME ZONE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(project_id, email)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_project_members_project_created ON project_members(project_id, created_at, id)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_project_members_token_hash ON project_members(invitation_token_hash) WHERE invitation_token_hash IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_project_members_pending_expiry ON project_members(invitation_expires_at) WHERE status = 'PENDING'`,

	`CREATE TABLE IF NOT EXISTS app_connections (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		project_id UUID NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		app_name VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		type VARCHAR(50) NOT NULL,
		sealed_value TEXT NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(project_id, name)
	)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
