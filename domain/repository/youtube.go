package repository

import (
	"context"
	"io"

	"golang.org/x/oauth2"

	"social-manager/domain/model"
)

// IYouTubeClient is an authenticated, ready-to-use client bound to one
// channel's credentials.
type IYouTubeClient interface {
	// UploadVideo streams media to the platform and returns the assigned
	// video id.
	UploadVideo(ctx context.Context, meta *model.YouTubeMetadata, media io.Reader) (string, error)
	// ChannelIdentity returns the platform account id and display title of the
	// authenticated channel.
	ChannelIdentity(ctx context.Context) (id, title string, err error)
	// Probe issues one minimal read-only call to verify the credentials work.
	Probe(ctx context.Context) error
	// VideoDetails fetches current title, stats and duration for a video.
	VideoDetails(ctx context.Context, videoID string) (*model.VideoDetails, error)
	UpdateVideo(ctx context.Context, videoID string, meta *model.YouTubeMetadata) error
	DeleteVideo(ctx context.Context, videoID string) error
}

// ITokenManager produces a currently-valid client for a channel, refreshing
// and persisting tokens as needed.
type ITokenManager interface {
	ClientForChannel(ctx context.Context, channelID string) (IYouTubeClient, error)
}

// IOAuthFlow drives the authorization-code connect flow with a brand's own
// API credentials.
type IOAuthFlow interface {
	// AuthURL builds the consent screen URL. state round-trips through the
	// provider and comes back on the callback.
	AuthURL(brand *model.Brand, state string) (string, error)
	// Exchange trades an authorization code for tokens.
	Exchange(ctx context.Context, brand *model.Brand, code string) (*oauth2.Token, error)
	// ClientForToken builds a client directly from freshly exchanged tokens,
	// before any channel row exists.
	ClientForToken(ctx context.Context, brand *model.Brand, token *oauth2.Token) (IYouTubeClient, error)
}
