package model

import "time"

// Script lifecycle statuses.
const (
	ScriptStatusDraft      = "draft"
	ScriptStatusScheduled  = "scheduled"
	ScriptStatusGenerating = "generating"
	ScriptStatusCompleted  = "completed"
	ScriptStatusFailed     = "failed"
)

// Job lifecycle statuses mirror the generation service's job states.
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
	JobStatusCancelled  = "cancelled"
)

// Script is a generation definition plus its lifecycle and output.
type Script struct {
	ID            string          `json:"id"`
	BrandID       string          `json:"brand_id"`
	Title         string          `json:"title"`
	Document      *ScriptDocument `json:"document"`
	Status        string          `json:"status"`
	ScheduledAt   *time.Time      `json:"scheduled_at,omitempty"`
	VideoURL      string          `json:"video_url,omitempty"`
	VideoDuration float64         `json:"video_duration,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ScriptDocument is the generation definition authored by the user. Stored as
// JSONB; the media list carries per-platform publish metadata blocks.
type ScriptDocument struct {
	Title           string        `json:"title"`
	Scenes          []Scene       `json:"scenes"`
	BackgroundMusic string        `json:"background_music,omitempty"`
	Watermark       string        `json:"watermark,omitempty"`
	Media           []MediaTarget `json:"media,omitempty"`
}

// Scene is one image + voiceover segment of the generated video.
type Scene struct {
	Image     string  `json:"image"`
	Voiceover string  `json:"voiceover"`
	Zoom      string  `json:"zoom,omitempty"`
	ZoomRatio float64 `json:"zoom_ratio,omitempty"`
	Watermark string  `json:"watermark,omitempty"`
}

// MediaTarget holds the platform-specific publish metadata embedded in a
// script document. Exactly one platform block is set per entry.
type MediaTarget struct {
	YouTube *YouTubeTarget `json:"youtube,omitempty"`
}

// YouTubeTarget is the authored YouTube publish metadata.
type YouTubeTarget struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Hashtags    []string `json:"hashtags,omitempty"`
}

// Job is one generation attempt for a script. Only the most recent completed
// job's output is authoritative for publishing.
type Job struct {
	ID            string    `json:"id"`
	ScriptID      string    `json:"script_id"`
	ExternalJobID string    `json:"external_job_id"`
	Status        string    `json:"status"`
	Progress      int       `json:"progress"`
	CurrentScene  int       `json:"current_scene"`
	TotalScenes   int       `json:"total_scenes"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	VideoURL      string    `json:"video_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
