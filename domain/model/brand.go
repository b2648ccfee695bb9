package model

import "time"

// Brand is the tenant entity. All channels, scripts and publish records hang
// off a brand; deleting a brand cascades to them.
type Brand struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	// YouTube API app credentials. The client secret is stored encrypted
	// (vault blob) and must never appear in logs or responses.
	YouTubeClientID        string    `json:"youtube_client_id,omitempty"`
	YouTubeClientSecretEnc string    `json:"-"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// HasYouTubeCredentials reports whether API credentials are configured.
func (b *Brand) HasYouTubeCredentials() bool {
	return b.YouTubeClientID != "" && b.YouTubeClientSecretEnc != ""
}

// PublishConfig is one-to-one with Brand and governs orchestrator branching.
type PublishConfig struct {
	BrandID         string `json:"brand_id"`
	RequireApproval bool   `json:"require_approval"`
	AutoPublish     bool   `json:"auto_publish"`
}

// DefaultPublishConfig returns the config used when a brand has none stored.
func DefaultPublishConfig(brandID string) *PublishConfig {
	return &PublishConfig{BrandID: brandID, RequireApproval: true, AutoPublish: false}
}
