package model

import "time"

// Publish statuses. failed is always retry-eligible; published is terminal.
const (
	PublishStatusPendingApproval = "pending_approval"
	PublishStatusApproved        = "approved"
	PublishStatusPublishing      = "publishing"
	PublishStatusPublished       = "published"
	PublishStatusFailed          = "failed"
)

// Publish is the fan-out unit: exactly one row per (script, channel) pair once
// publishing has been initiated for that script.
type Publish struct {
	ID              string     `json:"id"`
	ScriptID        string     `json:"script_id"`
	ChannelID       string     `json:"channel_id"`
	Status          string     `json:"status"`
	PlatformVideoID string     `json:"platform_video_id,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// ChannelTitle is joined in by list queries for display, not persisted here.
	ChannelTitle string `json:"channel_title,omitempty"`
}

// VideoDetails is the platform's view of an already-published video.
type VideoDetails struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	PrivacyStatus   string `json:"privacy_status"`
	ViewCount       uint64 `json:"view_count"`
	LikeCount       uint64 `json:"like_count"`
	DurationSeconds int    `json:"duration_seconds"`
	DurationLabel   string `json:"duration_label"`
}

// YouTubeMetadata is the derived, platform-limit-enforced publish metadata
// handed to the upload call.
type YouTubeMetadata struct {
	Title                   string   `json:"title"`
	Description             string   `json:"description"`
	Tags                    []string `json:"tags"`
	PrivacyStatus           string   `json:"privacy_status"`
	MadeForKids             bool     `json:"made_for_kids"`
	SelfDeclaredMadeForKids bool     `json:"self_declared_made_for_kids"`
	ContainsSyntheticMedia  bool     `json:"contains_synthetic_media"`
	CategoryID              string   `json:"category_id"`
}
