package usecase

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"social-manager/domain/dto"
	"social-manager/domain/model"
	"social-manager/domain/repository"
	"social-manager/infrastructure/logger"
	"social-manager/infrastructure/metrics"
	apperrors "social-manager/pkg/errors"
)

type IScriptUsecase interface {
	CreateScript(ctx context.Context, brandID, title string, doc *model.ScriptDocument) (*model.Script, error)
	GetScript(ctx context.Context, id string) (*model.Script, error)
	ListScripts(ctx context.Context, brandID string) ([]*model.Script, error)
	ScheduleScript(ctx context.Context, id string, at time.Time) error
	DeleteScript(ctx context.Context, id string) error

	SubmitGeneration(ctx context.Context, scriptID string) (*model.Job, error)
	RunScheduledScripts(ctx context.Context) (*dto.ScheduledRunResult, error)
	RefreshJobStatus(ctx context.Context, jobID string) (*model.Job, error)
	ListGeneratorJobs(ctx context.Context, opts *dto.JobListOptions) (*dto.JobListResponse, error)
	CancelJob(ctx context.Context, jobID string) error
}

type scriptUsecase struct {
	scripts   repository.IScript
	jobs      repository.IJob
	generator repository.IVideoGenerator
}

func NewScriptUsecase(scripts repository.IScript, jobs repository.IJob, generator repository.IVideoGenerator) IScriptUsecase {
	return &scriptUsecase{scripts: scripts, jobs: jobs, generator: generator}
}

func (u *scriptUsecase) CreateScript(ctx context.Context, brandID, title string, doc *model.ScriptDocument) (*model.Script, error) {
	if brandID == "" {
		return nil, apperrors.Validation("brand id is required")
	}
	if doc == nil || len(doc.Scenes) == 0 {
		return nil, apperrors.Validation("script document needs at least one scene")
	}
	for i, scene := range doc.Scenes {
		if scene.Image == "" || scene.Voiceover == "" {
			return nil, apperrors.Validation("scene " + strconv.Itoa(i+1) + " needs image and voiceover")
		}
	}
	if title == "" {
		title = doc.Title
	}
	if title == "" {
		return nil, apperrors.Validation("script title is required")
	}

	script := &model.Script{
		ID:       uuid.NewString(),
		BrandID:  brandID,
		Title:    title,
		Document: doc,
		Status:   model.ScriptStatusDraft,
	}
	if err := u.scripts.Create(ctx, script); err != nil {
		return nil, err
	}
	return script, nil
}

func (u *scriptUsecase) GetScript(ctx context.Context, id string) (*model.Script, error) {
	return u.scripts.GetByID(ctx, id)
}

func (u *scriptUsecase) ListScripts(ctx context.Context, brandID string) ([]*model.Script, error) {
	return u.scripts.ListByBrand(ctx, brandID)
}

// ScheduleScript queues a script for unattended generation once the given
// time passes. The scheduled sweep submits it from there.
func (u *scriptUsecase) ScheduleScript(ctx context.Context, id string, at time.Time) error {
	if at.IsZero() {
		return apperrors.Validation("scheduled time is required")
	}
	script, err := u.scripts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if script.Status == model.ScriptStatusGenerating {
		return apperrors.InvalidState("script is already generating")
	}
	if err := u.scripts.SetSchedule(ctx, id, at); err != nil {
		return err
	}
	logger.GetLogger().
		WithField("script_id", id).
		WithField("scheduled_at", at.UTC()).
		Info("script scheduled for generation")
	return nil
}

// RunScheduledScripts submits every scheduled script whose time has passed.
// One script blowing up must not stall the rest: it is marked failed,
// recorded in the result, and the sweep moves on. Meant to be hit by an
// external scheduler (cron) at whatever cadence fits.
func (u *scriptUsecase) RunScheduledScripts(ctx context.Context) (*dto.ScheduledRunResult, error) {
	due, err := u.scripts.ListDueScheduled(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	log := logger.GetLogger()
	result := &dto.ScheduledRunResult{Due: len(due)}
	for _, script := range due {
		if _, err := u.SubmitGeneration(ctx, script.ID); err != nil {
			log.WithField("script_id", script.ID).WithError(err).Warn("scheduled generation failed")
			if markErr := u.scripts.UpdateStatus(ctx, script.ID, model.ScriptStatusFailed); markErr != nil {
				log.WithField("script_id", script.ID).WithError(markErr).Error("failed to record failure")
			}
			result.Failures = append(result.Failures, dto.ScheduledRunFailure{
				ScriptID: script.ID,
				Error:    err.Error(),
			})
			continue
		}
		result.Submitted++
	}

	log.WithField("due", result.Due).
		WithField("submitted", result.Submitted).
		Info("scheduled script sweep completed")
	return result, nil
}

func (u *scriptUsecase) DeleteScript(ctx context.Context, id string) error {
	return u.scripts.Delete(ctx, id)
}

// SubmitGeneration hands the script document to the generation service and
// records the job. The payload is the document minus any platform publish
// metadata; that stays local until publish time.
func (u *scriptUsecase) SubmitGeneration(ctx context.Context, scriptID string) (*model.Job, error) {
	script, err := u.scripts.GetByID(ctx, scriptID)
	if err != nil {
		return nil, err
	}
	if script.Document == nil {
		return nil, apperrors.InvalidState("script has no document")
	}

	req := &dto.GenerationRequest{
		Title:           script.Document.Title,
		BackgroundMusic: script.Document.BackgroundMusic,
		Watermark:       script.Document.Watermark,
	}
	if req.Title == "" {
		req.Title = script.Title
	}
	for _, s := range script.Document.Scenes {
		req.Scenes = append(req.Scenes, dto.GenerationScene{
			Image:     s.Image,
			Voiceover: s.Voiceover,
			Zoom:      s.Zoom,
			ZoomRatio: s.ZoomRatio,
			Watermark: s.Watermark,
		})
	}

	created, err := u.generator.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	metrics.GenerationJobsSubmitted.Inc()

	job := &model.Job{
		ID:            uuid.NewString(),
		ScriptID:      scriptID,
		ExternalJobID: created.JobID,
		Status:        model.JobStatusPending,
	}
	if created.Status != "" {
		job.Status = created.Status
	}
	if err := u.jobs.Create(ctx, job); err != nil {
		return nil, err
	}
	if err := u.scripts.UpdateStatus(ctx, scriptID, model.ScriptStatusGenerating); err != nil {
		return nil, err
	}
	logger.GetLogger().
		WithField("script_id", scriptID).
		WithField("external_job_id", created.JobID).
		Info("generation job submitted")
	return job, nil
}

// RefreshJobStatus polls the generation service for one job and persists
// whatever it learns: progress while processing, output on completion,
// failure details otherwise.
func (u *scriptUsecase) RefreshJobStatus(ctx context.Context, jobID string) (*model.Job, error) {
	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	status, err := u.generator.GetStatus(ctx, job.ExternalJobID)
	if err != nil {
		return nil, err
	}

	switch status.Status {
	case model.JobStatusCompleted:
		if err := u.jobs.MarkCompleted(ctx, job.ID, status.VideoURL); err != nil {
			return nil, err
		}
		if err := u.scripts.SetOutput(ctx, job.ScriptID, status.VideoURL, status.Duration); err != nil {
			return nil, err
		}
	case model.JobStatusFailed:
		if err := u.jobs.MarkFailed(ctx, job.ID, status.ErrorMessage); err != nil {
			return nil, err
		}
		if err := u.scripts.UpdateStatus(ctx, job.ScriptID, model.ScriptStatusFailed); err != nil {
			return nil, err
		}
	default:
		if err := u.jobs.UpdateProgress(ctx, job.ID, status.Status, status.Progress, status.CurrentScene, status.TotalScenes); err != nil {
			return nil, err
		}
	}
	return u.jobs.GetByID(ctx, jobID)
}

func (u *scriptUsecase) ListGeneratorJobs(ctx context.Context, opts *dto.JobListOptions) (*dto.JobListResponse, error) {
	return u.generator.ListJobs(ctx, opts)
}

func (u *scriptUsecase) CancelJob(ctx context.Context, jobID string) error {
	job, err := u.jobs.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status == model.JobStatusCompleted || job.Status == model.JobStatusFailed {
		return apperrors.InvalidState("job already finished")
	}
	if err := u.generator.Cancel(ctx, job.ExternalJobID); err != nil {
		return err
	}
	return u.jobs.UpdateProgress(ctx, job.ID, model.JobStatusCancelled, job.Progress, job.CurrentScene, job.TotalScenes)
}
