package model

import "time"

// Platform identifiers. YouTube is the only platform currently wired.
const PlatformYouTube = "youtube"

// Channel is one authorized destination account on a platform, owned by
// exactly one brand. (Platform, PlatformAccountID) is globally unique: the
// same external channel can never be linked to two brands at once.
type Channel struct {
	ID                string     `json:"id"`
	BrandID           string     `json:"brand_id"`
	Platform          string     `json:"platform"`
	PlatformAccountID string     `json:"platform_account_id"`
	Title             string     `json:"title"`
	AccessToken       string     `json:"-"`
	RefreshToken      string     `json:"-"`
	TokenExpiresAt    *time.Time `json:"token_expires_at,omitempty"`
	Scope             string     `json:"scope,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TokenExpiringWithin reports whether the stored access token expires within d
// of now. A nil expiry is treated as already expired so a refresh is attempted.
func (c *Channel) TokenExpiringWithin(now time.Time, d time.Duration) bool {
	if c.TokenExpiresAt == nil {
		return true
	}
	return !now.Add(d).Before(*c.TokenExpiresAt)
}
