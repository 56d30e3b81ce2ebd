package models

import (
	"time"

	"github.com/google/uuid"
)

type Platform struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	Name             string    `json:"name"`
	EmbeddingEnabled bool      `json:"embedding_enabled"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (p *Platform) IsOwnedBy(userID uuid.UUID) bool {
	return p.OwnerID == userID
}
