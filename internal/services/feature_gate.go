package services

import (
	"context"

	"github.com/dimitrije/flowdesk-api/internal/models"
	"github.com/google/uuid"
)

type PlatformGetter interface {
	GetByID(ctx context.Context, platformID uuid.UUID) (*models.Platform, error)
}

// FeatureGate checks platform-scoped capabilities of a principal. Every call
// reads the platform fresh, nothing is cached between requests.
type FeatureGate struct {
	platforms PlatformGetter
}

func NewFeatureGate(platforms PlatformGetter) *FeatureGate {
	return &FeatureGate{platforms: platforms}
}

func (g *FeatureGate) AssertPlatformOwner(ctx context.Context, p Principal) error {
	_, err := g.ownedPlatform(ctx, p)
	return err
}

func (g *FeatureGate) AssertEmbeddingEnabled(ctx context.Context, p Principal) error {
	platform, err := g.ownedPlatform(ctx, p)
	if err != nil {
		return err
	}
	if !platform.EmbeddingEnabled {
		return ErrEmbeddingDisabled
	}
	return nil
}

func (g *FeatureGate) ownedPlatform(ctx context.Context, p Principal) (*models.Platform, error) {
	platformID, err := p.RequirePlatform()
	if err != nil {
		return nil, err
	}

	platform, err := g.platforms.GetByID(ctx, platformID)
	if err != nil {
		return nil, err
	}

	if !platform.IsOwnedBy(p.UserID) {
		return nil, ErrPlatformNotOwned
	}
	return platform, nil
}
