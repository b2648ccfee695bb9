package repository

import (
	"context"
	"time"

	"social-manager/domain/model"
)

// TokenUpdate is a rotation delta to persist onto a channel. An empty
// RefreshToken means "keep the stored one" (access-token-only refresh).
type TokenUpdate struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    *time.Time
}

// IChannel persists connected platform channels.
type IChannel interface {
	GetByID(ctx context.Context, id string) (*model.Channel, error)
	GetByPlatformAccount(ctx context.Context, platform, platformAccountID string) (*model.Channel, error)
	ListByBrand(ctx context.Context, brandID, platform string) ([]*model.Channel, error)
	Upsert(ctx context.Context, channel *model.Channel) error
	UpdateTokens(ctx context.Context, channelID string, upd TokenUpdate) error
	Delete(ctx context.Context, id string) error
	DeleteAllForBrand(ctx context.Context, brandID, platform string) (int, error)
}
