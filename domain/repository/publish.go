package repository

import (
	"context"

	"social-manager/domain/model"
)

// IPublish persists the per-(script, channel) fan-out units.
type IPublish interface {
	// CreateMissing inserts rows for the given channels that don't already
	// have a publish record for this script, with the given initial status.
	// Existing rows are untouched; returns the number of new rows. The unique
	// (script_id, channel_id) constraint is the backstop under races.
	CreateMissing(ctx context.Context, scriptID string, channelIDs []string, initialStatus string) (int, error)

	GetByIDs(ctx context.Context, ids []string) ([]*model.Publish, error)
	ListByScript(ctx context.Context, scriptID string) ([]*model.Publish, error)
	ListByScriptAndStatus(ctx context.Context, scriptID, status string) ([]*model.Publish, error)

	// Approve flips the listed rows from pending_approval to approved; rows in
	// any other state are silently skipped. Returns rows actually updated.
	Approve(ctx context.Context, ids []string) (int, error)

	// ResetForRetry flips the listed rows back to approved and clears the
	// stored error. Caller guarantees they are currently failed.
	ResetForRetry(ctx context.Context, ids []string) (int, error)

	MarkPublishing(ctx context.Context, id string) error
	MarkPublished(ctx context.Context, id, platformVideoID string) error
	MarkFailed(ctx context.Context, id, errorMessage string) error
}
