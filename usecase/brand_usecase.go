package usecase

import (
	"context"

	"github.com/google/uuid"

	"social-manager/domain/model"
	"social-manager/domain/repository"
	"social-manager/infrastructure/cache"
	"social-manager/infrastructure/logger"
	apperrors "social-manager/pkg/errors"
)

type IBrandUsecase interface {
	CreateBrand(ctx context.Context, userID, name string) (*model.Brand, error)
	GetBrand(ctx context.Context, id string) (*model.Brand, error)
	DeleteBrand(ctx context.Context, id string) error

	SetYouTubeCredentials(ctx context.Context, brandID, clientID, clientSecret string) error
	ClearYouTubeCredentials(ctx context.Context, brandID string) error

	GetPublishConfig(ctx context.Context, brandID string) (*model.PublishConfig, error)
	SetPublishConfig(ctx context.Context, cfg *model.PublishConfig) error
}

type brandUsecase struct {
	brands      repository.IBrand
	channels    repository.IChannel
	vault       repository.IVault
	healthCache cache.IHealthCache
}

func NewBrandUsecase(brands repository.IBrand, channels repository.IChannel, vault repository.IVault, healthCache cache.IHealthCache) IBrandUsecase {
	return &brandUsecase{brands: brands, channels: channels, vault: vault, healthCache: healthCache}
}

func (u *brandUsecase) CreateBrand(ctx context.Context, userID, name string) (*model.Brand, error) {
	if userID == "" || name == "" {
		return nil, apperrors.Validation("user id and name are required")
	}
	brand := &model.Brand{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
	}
	if err := u.brands.Create(ctx, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (u *brandUsecase) GetBrand(ctx context.Context, id string) (*model.Brand, error) {
	return u.brands.GetByID(ctx, id)
}

func (u *brandUsecase) DeleteBrand(ctx context.Context, id string) error {
	// Channels, scripts and publish records go with it via FK cascade.
	return u.brands.Delete(ctx, id)
}

// SetYouTubeCredentials stores a brand's own API project credentials. The
// client secret only ever touches the database encrypted.
func (u *brandUsecase) SetYouTubeCredentials(ctx context.Context, brandID, clientID, clientSecret string) error {
	if clientID == "" || clientSecret == "" {
		return apperrors.Validation("client id and client secret are required")
	}
	if _, err := u.brands.GetByID(ctx, brandID); err != nil {
		return err
	}
	enc, err := u.vault.Encrypt(clientSecret)
	if err != nil {
		return err
	}
	if err := u.brands.UpdateYouTubeCredentials(ctx, brandID, clientID, enc); err != nil {
		return err
	}
	logger.GetLogger().WithField("brand_id", brandID).Info("youtube credentials updated")
	return nil
}

func (u *brandUsecase) ClearYouTubeCredentials(ctx context.Context, brandID string) error {
	// Channels authorized under the removed OAuth client can no longer be
	// refreshed, so they go too, along with any cached health verdicts.
	channels, err := u.channels.ListByBrand(ctx, brandID, model.PlatformYouTube)
	if err != nil {
		return err
	}
	if err := u.brands.ClearYouTubeCredentials(ctx, brandID); err != nil {
		return err
	}
	removed, err := u.channels.DeleteAllForBrand(ctx, brandID, model.PlatformYouTube)
	if err != nil {
		return err
	}
	for _, ch := range channels {
		u.healthCache.Invalidate(ctx, ch.ID)
	}
	logger.GetLogger().WithField("brand_id", brandID).
		WithField("channels_removed", removed).
		Info("youtube credentials cleared")
	return nil
}

func (u *brandUsecase) GetPublishConfig(ctx context.Context, brandID string) (*model.PublishConfig, error) {
	return u.brands.GetPublishConfig(ctx, brandID)
}

func (u *brandUsecase) SetPublishConfig(ctx context.Context, cfg *model.PublishConfig) error {
	if cfg == nil || cfg.BrandID == "" {
		return apperrors.Validation("brand id is required")
	}
	return u.brands.UpsertPublishConfig(ctx, cfg)
}
