package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"social-manager/domain/dto"
	"social-manager/domain/model"
	"social-manager/domain/repository"
	"social-manager/infrastructure/cache"
	"social-manager/infrastructure/logger"
	apperrors "social-manager/pkg/errors"
)

type IChannelUsecase interface {
	AuthURL(ctx context.Context, brandID string) (string, error)
	HandleCallback(ctx context.Context, code, brandID string) (*model.Channel, error)
	ListChannels(ctx context.Context, brandID string) ([]*model.Channel, error)
	DisconnectChannel(ctx context.Context, channelID string) error
	DisconnectAllForBrand(ctx context.Context, brandID string) (int, error)
	CheckHealth(ctx context.Context, channelID string) (*dto.ChannelHealth, error)
	GetVideo(ctx context.Context, channelID, videoID string) (*model.VideoDetails, error)
	UpdateVideo(ctx context.Context, channelID, videoID string, meta *model.YouTubeMetadata) error
	DeleteVideo(ctx context.Context, channelID, videoID string) error
}

type channelUsecase struct {
	channels    repository.IChannel
	brands      repository.IBrand
	flow        repository.IOAuthFlow
	tokens      repository.ITokenManager
	healthCache cache.IHealthCache
}

func NewChannelUsecase(
	channels repository.IChannel,
	brands repository.IBrand,
	flow repository.IOAuthFlow,
	tokens repository.ITokenManager,
	healthCache cache.IHealthCache,
) IChannelUsecase {
	return &channelUsecase{
		channels:    channels,
		brands:      brands,
		flow:        flow,
		tokens:      tokens,
		healthCache: healthCache,
	}
}

func (u *channelUsecase) AuthURL(ctx context.Context, brandID string) (string, error) {
	brand, err := u.brands.GetByID(ctx, brandID)
	if err != nil {
		return "", err
	}
	// state carries the brand id through the provider round trip.
	return u.flow.AuthURL(brand, brandID)
}

// HandleCallback finishes the connect flow: exchange the code, discover which
// channel the tokens belong to, and link it to the brand. A channel already
// linked to a different brand is a conflict, never a silent takeover.
func (u *channelUsecase) HandleCallback(ctx context.Context, code, brandID string) (*model.Channel, error) {
	if code == "" {
		return nil, apperrors.Validation("authorization code is required")
	}
	brand, err := u.brands.GetByID(ctx, brandID)
	if err != nil {
		return nil, err
	}

	token, err := u.flow.Exchange(ctx, brand, code)
	if err != nil {
		return nil, err
	}
	client, err := u.flow.ClientForToken(ctx, brand, token)
	if err != nil {
		return nil, err
	}
	accountID, title, err := client.ChannelIdentity(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := u.channels.GetByPlatformAccount(ctx, model.PlatformYouTube, accountID)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.BrandID != brandID {
		return nil, apperrors.Conflict("channel already linked to another brand")
	}

	ch := &model.Channel{
		ID:                uuid.NewString(),
		BrandID:           brandID,
		Platform:          model.PlatformYouTube,
		PlatformAccountID: accountID,
		Title:             title,
		AccessToken:       token.AccessToken,
		RefreshToken:      token.RefreshToken,
	}
	if scope, ok := token.Extra("scope").(string); ok {
		ch.Scope = scope
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		ch.TokenExpiresAt = &expiry
	}
	if existing != nil {
		ch.ID = existing.ID
	}
	if err := u.channels.Upsert(ctx, ch); err != nil {
		return nil, err
	}

	u.healthCache.Invalidate(ctx, ch.ID)
	logger.GetLogger().
		WithField("brand_id", brandID).
		WithField("platform_account_id", accountID).
		Info("channel connected")
	return ch, nil
}

func (u *channelUsecase) ListChannels(ctx context.Context, brandID string) ([]*model.Channel, error) {
	return u.channels.ListByBrand(ctx, brandID, model.PlatformYouTube)
}

func (u *channelUsecase) DisconnectChannel(ctx context.Context, channelID string) error {
	if err := u.channels.Delete(ctx, channelID); err != nil {
		return err
	}
	u.healthCache.Invalidate(ctx, channelID)
	return nil
}

func (u *channelUsecase) DisconnectAllForBrand(ctx context.Context, brandID string) (int, error) {
	return u.channels.DeleteAllForBrand(ctx, brandID, model.PlatformYouTube)
}

// CheckHealth reports whether a channel's credentials still work and, when
// they don't, whether reconnecting would fix it. Verdicts are cached briefly
// so dashboards don't hammer the API.
func (u *channelUsecase) CheckHealth(ctx context.Context, channelID string) (*dto.ChannelHealth, error) {
	if cached, ok := u.healthCache.Get(ctx, channelID); ok {
		return cached, nil
	}

	ch, err := u.channels.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	// Either token missing means the channel cannot outlive its current
	// access token, so only a fresh consent can help.
	if ch.AccessToken == "" || ch.RefreshToken == "" {
		return u.record(ctx, channelID, &dto.ChannelHealth{
			NeedsReconnect: true,
			Error:          "channel is missing stored tokens",
		}), nil
	}
	brand, err := u.brands.GetByID(ctx, ch.BrandID)
	if err != nil {
		return nil, err
	}
	if !brand.HasYouTubeCredentials() {
		return u.record(ctx, channelID, &dto.ChannelHealth{
			NeedsReconnect: true,
			Error:          "youtube credentials not configured",
		}), nil
	}

	client, err := u.tokens.ClientForChannel(ctx, channelID)
	if err != nil {
		return u.record(ctx, channelID, classifyHealthError(err)), nil
	}
	if err := client.Probe(ctx); err != nil {
		return u.record(ctx, channelID, classifyHealthError(err)), nil
	}
	return u.record(ctx, channelID, &dto.ChannelHealth{IsValid: true}), nil
}

func (u *channelUsecase) GetVideo(ctx context.Context, channelID, videoID string) (*model.VideoDetails, error) {
	client, err := u.tokens.ClientForChannel(ctx, channelID)
	if err != nil {
		return nil, err
	}
	return client.VideoDetails(ctx, videoID)
}

func (u *channelUsecase) UpdateVideo(ctx context.Context, channelID, videoID string, meta *model.YouTubeMetadata) error {
	client, err := u.tokens.ClientForChannel(ctx, channelID)
	if err != nil {
		return err
	}
	return client.UpdateVideo(ctx, videoID, meta)
}

func (u *channelUsecase) DeleteVideo(ctx context.Context, channelID, videoID string) error {
	client, err := u.tokens.ClientForChannel(ctx, channelID)
	if err != nil {
		return err
	}
	return client.DeleteVideo(ctx, videoID)
}

func (u *channelUsecase) record(ctx context.Context, channelID string, health *dto.ChannelHealth) *dto.ChannelHealth {
	u.healthCache.Set(ctx, channelID, health)
	return health
}

// reconnectPatterns mark errors that only a fresh OAuth consent can fix.
var reconnectPatterns = []string{
	"invalid_grant",
	"invalid_client",
	"unauthorized",
	"401",
	"invalid credentials",
	"token expired",
	"token has been expired",
	"revoked",
}

func classifyHealthError(err error) *dto.ChannelHealth {
	if apperrors.Is(err, apperrors.ErrReauthRequired) || apperrors.Is(err, apperrors.ErrConfiguration) {
		return &dto.ChannelHealth{NeedsReconnect: true, Error: err.Error()}
	}
	msg := strings.ToLower(err.Error())
	for _, p := range reconnectPatterns {
		if strings.Contains(msg, p) {
			return &dto.ChannelHealth{NeedsReconnect: true, Error: err.Error()}
		}
	}
	// Quota, network and other transient trouble: unhealthy now, but a
	// reconnect would change nothing.
	return &dto.ChannelHealth{Error: err.Error()}
}
