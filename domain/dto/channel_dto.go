package dto

import "time"

// ChannelHealth classifies the result of a credential probe. NeedsReconnect
// distinguishes "broken until the user redoes OAuth consent" from transient
// failures (quota, network) that resolve on their own.
type ChannelHealth struct {
	IsValid        bool   `json:"is_valid"`
	NeedsReconnect bool   `json:"needs_reconnect"`
	Error          string `json:"error,omitempty"`
}

// ConnectCallbackRequest carries the OAuth authorization code exchange input.
// BrandID travels in the OAuth state parameter.
type ConnectCallbackRequest struct {
	Code    string `json:"code" binding:"required"`
	BrandID string `json:"brand_id" binding:"required"`
}

// ChannelResponse is the public view of a connected channel. Tokens never
// leave the server.
type ChannelResponse struct {
	ID                string     `json:"id"`
	BrandID           string     `json:"brand_id"`
	Platform          string     `json:"platform"`
	PlatformAccountID string     `json:"platform_account_id"`
	Title             string     `json:"title"`
	TokenExpiresAt    *time.Time `json:"token_expires_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}
