package dto

// GenerationRequest is the payload submitted to the video generation service.
// It is the script document minus any platform publish metadata.
type GenerationRequest struct {
	Title           string            `json:"title"`
	Scenes          []GenerationScene `json:"scenes"`
	BackgroundMusic string            `json:"background_music,omitempty"`
	Watermark       string            `json:"watermark,omitempty"`
	WebhookURL      string            `json:"webhook_url,omitempty"`
}

// GenerationScene mirrors model.Scene on the wire.
type GenerationScene struct {
	Image     string  `json:"image"`
	Voiceover string  `json:"voiceover"`
	Zoom      string  `json:"zoom,omitempty"`
	ZoomRatio float64 `json:"zoom_ratio,omitempty"`
	Watermark string  `json:"watermark,omitempty"`
}

// JobCreateResponse is returned by the generation service on submit.
type JobCreateResponse struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	StatusURL string `json:"status_url,omitempty"`
}

// JobStatusResponse is the generation service's view of one job.
type JobStatusResponse struct {
	JobID        string  `json:"job_id"`
	Status       string  `json:"status"`
	Title        string  `json:"title,omitempty"`
	Progress     int     `json:"progress,omitempty"`
	CurrentScene int     `json:"current_scene,omitempty"`
	TotalScenes  int     `json:"total_scenes,omitempty"`
	ErrorMessage string  `json:"error_message,omitempty"`
	VideoURL     string  `json:"video_url,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
	CreatedAt    string  `json:"created_at,omitempty"`
	UpdatedAt    string  `json:"updated_at,omitempty"`
}

// JobListOptions filters the generation service's job listing.
// Encoded with go-querystring.
type JobListOptions struct {
	Status string `url:"status,omitempty"`
	Limit  int    `url:"limit,omitempty"`
}

// JobListResponse wraps the generation service's job listing.
type JobListResponse struct {
	Jobs []JobStatusResponse `json:"jobs"`
}

// ScheduledRunFailure records one script a scheduled sweep could not submit.
type ScheduledRunFailure struct {
	ScriptID string `json:"script_id"`
	Error    string `json:"error"`
}

// ScheduledRunResult reports one sweep over due scheduled scripts.
type ScheduledRunResult struct {
	Due       int                   `json:"due"`
	Submitted int                   `json:"submitted"`
	Failures  []ScheduledRunFailure `json:"failures,omitempty"`
}
