package repository

import (
	"context"
	"time"

	"social-manager/domain/model"
)

// IScript persists generation scripts.
type IScript interface {
	Create(ctx context.Context, script *model.Script) error
	GetByID(ctx context.Context, id string) (*model.Script, error)
	ListByBrand(ctx context.Context, brandID string) ([]*model.Script, error)
	UpdateStatus(ctx context.Context, id, status string) error
	SetOutput(ctx context.Context, id, videoURL string, duration float64) error
	SetSchedule(ctx context.Context, id string, at time.Time) error
	ListDueScheduled(ctx context.Context, now time.Time) ([]*model.Script, error)
	Delete(ctx context.Context, id string) error
}

// IJob persists generation attempts. A script may have several jobs; only the
// most recent completed one is authoritative for publishing.
type IJob interface {
	Create(ctx context.Context, job *model.Job) error
	GetByID(ctx context.Context, id string) (*model.Job, error)
	LatestCompletedForScript(ctx context.Context, scriptID string) (*model.Job, error)
	ListForScript(ctx context.Context, scriptID string) ([]*model.Job, error)
	UpdateProgress(ctx context.Context, id string, status string, progress, currentScene, totalScenes int) error
	MarkCompleted(ctx context.Context, id, videoURL string) error
	MarkFailed(ctx context.Context, id, errorMessage string) error
}
