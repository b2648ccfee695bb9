package youtube

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"social-manager/domain/model"
	"social-manager/domain/repository"
	"social-manager/infrastructure/logger"
	"social-manager/infrastructure/metrics"
	apperrors "social-manager/pkg/errors"
)

// refreshSkew is how long before expiry a token is refreshed proactively, so
// an upload never starts with a token about to die mid-request.
const refreshSkew = 5 * time.Minute

// TokenManagerConfig carries the OAuth settings that are the same for every
// brand. Client id and secret are per brand and come from the database.
type TokenManagerConfig struct {
	RedirectURI string
	Scopes      []string
}

// TokenManager builds authenticated YouTube clients for stored channels. It
// owns token freshness: expiring tokens are refreshed before a client is
// handed out, and any rotation the OAuth transport performs mid-flight is
// written back to the channel record.
type TokenManager struct {
	channels repository.IChannel
	brands   repository.IBrand
	vault    repository.IVault
	cfg      TokenManagerConfig

	// endpoint is google.Endpoint in production; tests point it at a fake.
	endpoint oauth2.Endpoint
}

func NewTokenManager(channels repository.IChannel, brands repository.IBrand, vault repository.IVault, cfg TokenManagerConfig) *TokenManager {
	return &TokenManager{
		channels: channels,
		brands:   brands,
		vault:    vault,
		cfg:      cfg,
		endpoint: google.Endpoint,
	}
}

// OAuthConfig assembles the per-brand oauth2 configuration, decrypting the
// stored client secret.
func (m *TokenManager) OAuthConfig(brand *model.Brand) (*oauth2.Config, error) {
	if !brand.HasYouTubeCredentials() {
		return nil, apperrors.Configuration("brand has no YouTube API credentials")
	}
	secret, err := m.vault.Decrypt(brand.YouTubeClientSecretEnc)
	if err != nil {
		return nil, err
	}
	return &oauth2.Config{
		ClientID:     brand.YouTubeClientID,
		ClientSecret: secret,
		RedirectURL:  m.cfg.RedirectURI,
		Scopes:       m.cfg.Scopes,
		Endpoint:     m.endpoint,
	}, nil
}

// AuthURL builds the consent URL for connecting a channel. Offline access
// with a forced consent prompt guarantees a refresh token comes back even on
// repeat connects.
func (m *TokenManager) AuthURL(brand *model.Brand, state string) (string, error) {
	cfg, err := m.OAuthConfig(brand)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent")), nil
}

// Exchange trades the callback's authorization code for tokens.
func (m *TokenManager) Exchange(ctx context.Context, brand *model.Brand, code string) (*oauth2.Token, error) {
	cfg, err := m.OAuthConfig(brand)
	if err != nil {
		return nil, err
	}
	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, apperrors.Upstream("authorization code exchange failed", err)
	}
	return token, nil
}

// ClientForToken builds a client from tokens that have no channel row yet,
// used during the connect callback to discover the channel identity.
func (m *TokenManager) ClientForToken(ctx context.Context, brand *model.Brand, token *oauth2.Token) (repository.IYouTubeClient, error) {
	cfg, err := m.OAuthConfig(brand)
	if err != nil {
		return nil, err
	}
	return NewClient(ctx, cfg.Client(ctx, token))
}

// ClientForChannel returns a ready-to-use client for the channel, refreshing
// the access token first when it is missing, expired, or inside the refresh
// window.
func (m *TokenManager) ClientForChannel(ctx context.Context, channelID string) (repository.IYouTubeClient, error) {
	ch, err := m.channels.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if ch.Platform != model.PlatformYouTube {
		return nil, apperrors.UnsupportedPlatform(ch.Platform)
	}

	brand, err := m.brands.GetByID(ctx, ch.BrandID)
	if err != nil {
		return nil, err
	}
	oauthCfg, err := m.OAuthConfig(brand)
	if err != nil {
		return nil, err
	}

	// A channel without a refresh token is unrecoverable once the access
	// token lapses, so refuse it up front instead of letting it die at
	// expiry.
	if ch.RefreshToken == "" {
		return nil, apperrors.ReauthRequired("no refresh token stored for this channel", nil)
	}

	token := &oauth2.Token{
		AccessToken:  ch.AccessToken,
		RefreshToken: ch.RefreshToken,
		TokenType:    "Bearer",
	}
	if ch.TokenExpiresAt != nil {
		token.Expiry = *ch.TokenExpiresAt
	}

	if ch.TokenExpiringWithin(time.Now(), refreshSkew) {
		token, err = m.refresh(ctx, oauthCfg, ch, token)
		if err != nil {
			return nil, err
		}
	}

	src := &persistingTokenSource{
		base:      oauthCfg.TokenSource(ctx, token),
		channels:  m.channels,
		channelID: ch.ID,
		last:      token,
	}
	return NewClient(ctx, oauth2.NewClient(ctx, src))
}

func (m *TokenManager) refresh(ctx context.Context, cfg *oauth2.Config, ch *model.Channel, token *oauth2.Token) (*oauth2.Token, error) {
	// A refresh-only token forces the round trip even when the access token
	// is technically still inside its lifetime.
	fresh, err := cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: token.RefreshToken}).Token()
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return nil, classifyRefreshError(err)
	}
	metrics.TokenRefreshes.WithLabelValues("success").Inc()
	if err := persistRotation(ctx, m.channels, ch.ID, token, fresh); err != nil {
		return nil, err
	}
	logger.GetLogger().WithField("channel_id", ch.ID).Info("access token refreshed")
	return fresh, nil
}

// classifyRefreshError separates revoked credentials, which need the user to
// reconnect, from transient upstream trouble.
func classifyRefreshError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		body := strings.ToLower(string(retrieveErr.Body))
		if strings.Contains(body, "invalid_grant") || strings.Contains(body, "invalid_client") {
			return apperrors.ReauthRequired("refresh token rejected", err)
		}
	}
	if strings.Contains(strings.ToLower(err.Error()), "invalid_grant") {
		return apperrors.ReauthRequired("refresh token rejected", err)
	}
	return apperrors.Upstream("token refresh failed", err)
}

func persistRotation(ctx context.Context, channels repository.IChannel, channelID string, prev, next *oauth2.Token) error {
	upd := repository.TokenUpdate{AccessToken: next.AccessToken}
	if !next.Expiry.IsZero() {
		expiry := next.Expiry
		upd.ExpiresAt = &expiry
	}
	// A new refresh token only comes back when the provider rotates it.
	if next.RefreshToken != "" && next.RefreshToken != prev.RefreshToken {
		upd.RefreshToken = next.RefreshToken
	}
	return channels.UpdateTokens(ctx, channelID, upd)
}

// persistingTokenSource wraps an oauth2.TokenSource and writes any rotation
// back to storage, so a refresh triggered mid-request by the transport is
// never lost.
type persistingTokenSource struct {
	base      oauth2.TokenSource
	channels  repository.IChannel
	channelID string

	mu   sync.Mutex
	last *oauth2.Token
}

func (s *persistingTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.base.Token()
	if err != nil {
		return nil, classifyRefreshError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.AccessToken != s.last.AccessToken {
		if err := persistRotation(context.Background(), s.channels, s.channelID, s.last, t); err != nil {
			logger.GetLogger().WithField("channel_id", s.channelID).WithError(err).
				Error("failed to persist rotated token")
		}
		s.last = t
	}
	return t, nil
}
