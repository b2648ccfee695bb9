package repository

import (
	"context"

	"social-manager/domain/model"
)

// IBrand persists brands and their publish configuration.
type IBrand interface {
	Create(ctx context.Context, brand *model.Brand) error
	GetByID(ctx context.Context, id string) (*model.Brand, error)
	Delete(ctx context.Context, id string) error
	UpdateYouTubeCredentials(ctx context.Context, brandID, clientID, encryptedSecret string) error
	ClearYouTubeCredentials(ctx context.Context, brandID string) error

	GetPublishConfig(ctx context.Context, brandID string) (*model.PublishConfig, error)
	UpsertPublishConfig(ctx context.Context, cfg *model.PublishConfig) error
}
