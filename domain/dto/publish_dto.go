package dto

// PublishRequest triggers fan-out for a script.
type PublishRequest struct {
	ScriptID string `json:"script_id" binding:"required"`
}

// PublishFanOutResult reports the outcome of a fan-out call.
type PublishFanOutResult struct {
	RequireApproval bool `json:"require_approval"`
	ChannelsTotal   int  `json:"channels_total"`
	NewRecords      int  `json:"new_records"`
}

// ApproveRequest approves a set of publish records. All ids must belong to the
// same script.
type ApproveRequest struct {
	PublishIDs []string `json:"publish_ids" binding:"required"`
}

// RetryRequest retries a set of failed publish records.
type RetryRequest struct {
	PublishIDs []string `json:"publish_ids" binding:"required"`
}

// PublishActionResult reports how many records an approve/retry call touched.
type PublishActionResult struct {
	Published int `json:"published,omitempty"`
	Retried   int `json:"retried,omitempty"`
}
