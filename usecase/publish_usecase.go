package usecase

import (
	"bytes"
	"context"

	"social-manager/domain/dto"
	"social-manager/domain/model"
	"social-manager/domain/repository"
	"social-manager/infrastructure/logger"
	"social-manager/infrastructure/metrics"
	"social-manager/infrastructure/pubsub"
	"social-manager/infrastructure/utils"
	apperrors "social-manager/pkg/errors"
)

type IPublishUsecase interface {
	PublishToAllChannels(ctx context.Context, scriptID string) (*dto.PublishFanOutResult, error)
	ApprovePublishes(ctx context.Context, publishIDs []string) (*dto.PublishActionResult, error)
	RetryFailedPublishes(ctx context.Context, publishIDs []string) (*dto.PublishActionResult, error)
	PublishStatus(ctx context.Context, scriptID string) ([]*model.Publish, error)
}

type publishUsecase struct {
	publishes repository.IPublish
	scripts   repository.IScript
	jobs      repository.IJob
	channels  repository.IChannel
	brands    repository.IBrand
	tokens    repository.ITokenManager
	generator repository.IVideoGenerator
	events    pubsub.IPublishEvents
}

func NewPublishUsecase(
	publishes repository.IPublish,
	scripts repository.IScript,
	jobs repository.IJob,
	channels repository.IChannel,
	brands repository.IBrand,
	tokens repository.ITokenManager,
	generator repository.IVideoGenerator,
	events pubsub.IPublishEvents,
) IPublishUsecase {
	return &publishUsecase{
		publishes: publishes,
		scripts:   scripts,
		jobs:      jobs,
		channels:  channels,
		brands:    brands,
		tokens:    tokens,
		generator: generator,
		events:    events,
	}
}

// PublishToAllChannels fans a script out to every linked channel of its
// brand. Re-running it only fills gaps: channels that already have a publish
// record for this script keep theirs untouched, whatever state it is in.
func (u *publishUsecase) PublishToAllChannels(ctx context.Context, scriptID string) (*dto.PublishFanOutResult, error) {
	script, job, err := u.scriptWithCompletedJob(ctx, scriptID)
	if err != nil {
		return nil, err
	}

	linked, err := u.channels.ListByBrand(ctx, script.BrandID, model.PlatformYouTube)
	if err != nil {
		return nil, err
	}
	if len(linked) == 0 {
		return nil, apperrors.Validation("no channels linked to this brand")
	}

	cfg, err := u.brands.GetPublishConfig(ctx, script.BrandID)
	if err != nil {
		return nil, err
	}

	initialStatus := model.PublishStatusPendingApproval
	if !cfg.RequireApproval {
		initialStatus = model.PublishStatusApproved
	}

	channelIDs := make([]string, len(linked))
	for i, ch := range linked {
		channelIDs[i] = ch.ID
	}
	created, err := u.publishes.CreateMissing(ctx, scriptID, channelIDs, initialStatus)
	if err != nil {
		return nil, err
	}

	logger.GetLogger().
		WithField("script_id", scriptID).
		WithField("channels_total", len(linked)).
		WithField("new_records", created).
		Info("publish fan-out")

	if !cfg.RequireApproval || cfg.AutoPublish {
		if err := u.publishApproved(ctx, script, job); err != nil {
			return nil, err
		}
	}

	return &dto.PublishFanOutResult{
		RequireApproval: cfg.RequireApproval,
		ChannelsTotal:   len(linked),
		NewRecords:      created,
	}, nil
}

// ApprovePublishes moves the listed records past the approval gate and
// dispatches them. Records not awaiting approval are skipped, not failed.
func (u *publishUsecase) ApprovePublishes(ctx context.Context, publishIDs []string) (*dto.PublishActionResult, error) {
	if len(publishIDs) == 0 {
		return nil, apperrors.Validation("no publish ids given")
	}

	approved, err := u.publishes.Approve(ctx, publishIDs)
	if err != nil {
		return nil, err
	}

	records, err := u.publishes.GetByIDs(ctx, publishIDs)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, apperrors.NotFound("publish records not found")
	}

	script, job, err := u.scriptWithCompletedJob(ctx, records[0].ScriptID)
	if err != nil {
		return nil, err
	}
	if err := u.publishApproved(ctx, script, job); err != nil {
		return nil, err
	}

	return &dto.PublishActionResult{Published: approved}, nil
}

// RetryFailedPublishes re-runs only the listed failed records. Listing an id
// in any other state aborts the whole request so a typo can't re-upload an
// already published video.
func (u *publishUsecase) RetryFailedPublishes(ctx context.Context, publishIDs []string) (*dto.PublishActionResult, error) {
	if len(publishIDs) == 0 {
		return nil, apperrors.Validation("no publish ids given")
	}

	records, err := u.publishes.GetByIDs(ctx, publishIDs)
	if err != nil {
		return nil, err
	}
	if len(records) != len(publishIDs) {
		return nil, apperrors.NotFound("publish records not found")
	}
	for _, rec := range records {
		if rec.Status != model.PublishStatusFailed {
			return nil, apperrors.InvalidState("publish " + rec.ID + " is not failed")
		}
	}

	reset, err := u.publishes.ResetForRetry(ctx, publishIDs)
	if err != nil {
		return nil, err
	}

	script, job, err := u.scriptWithCompletedJob(ctx, records[0].ScriptID)
	if err != nil {
		return nil, err
	}
	if err := u.publishApproved(ctx, script, job); err != nil {
		return nil, err
	}

	return &dto.PublishActionResult{Retried: reset}, nil
}

func (u *publishUsecase) PublishStatus(ctx context.Context, scriptID string) ([]*model.Publish, error) {
	return u.publishes.ListByScript(ctx, scriptID)
}

func (u *publishUsecase) scriptWithCompletedJob(ctx context.Context, scriptID string) (*model.Script, *model.Job, error) {
	script, err := u.scripts.GetByID(ctx, scriptID)
	if err != nil {
		return nil, nil, err
	}
	job, err := u.jobs.LatestCompletedForScript(ctx, scriptID)
	if err != nil {
		return nil, nil, err
	}
	if job == nil {
		return nil, nil, apperrors.InvalidState("script has no completed generation job")
	}
	return script, job, nil
}

// publishApproved uploads the script's video to every channel whose record is
// currently approved. Metadata is derived and the video downloaded exactly
// once per dispatch. Channels are processed sequentially and a failure on one
// is recorded on its row without touching the others.
func (u *publishUsecase) publishApproved(ctx context.Context, script *model.Script, job *model.Job) error {
	meta, err := ExtractYouTubeMetadata(script.Document)
	if err != nil {
		return err
	}
	video, err := u.generator.Download(ctx, job.ExternalJobID)
	if err != nil {
		return err
	}

	approved, err := u.publishes.ListByScriptAndStatus(ctx, script.ID, model.PublishStatusApproved)
	if err != nil {
		return err
	}

	log := logger.GetLogger().WithField("script_id", script.ID)
	published, failed := 0, 0
	for _, rec := range approved {
		if err := u.publishes.MarkPublishing(ctx, rec.ID); err != nil {
			log.WithField("publish_id", rec.ID).WithError(err).Error("failed to mark publishing")
			failed++
			continue
		}
		if err := u.publishOne(ctx, rec, meta, video); err != nil {
			failed++
			metrics.PublishOutcomes.WithLabelValues("failed").Inc()
			log.WithField("publish_id", rec.ID).
				WithField("channel_id", rec.ChannelID).
				WithError(err).
				Error("publish failed")
			if markErr := u.publishes.MarkFailed(ctx, rec.ID, err.Error()); markErr != nil {
				log.WithField("publish_id", rec.ID).WithError(markErr).Error("failed to record failure")
			}
			continue
		}
		published++
		metrics.PublishOutcomes.WithLabelValues("published").Inc()
	}

	log.WithField("published", published).WithField("failed", failed).Info("dispatch completed")

	if u.events != nil && len(approved) > 0 {
		event := pubsub.PublishEvent{
			ScriptID:   script.ID,
			Published:  published,
			Failed:     failed,
			OccurredAt: utils.GetCurrentTime(),
		}
		if err := u.events.DispatchCompleted(ctx, event); err != nil {
			log.WithError(err).Warn("failed to emit publish event")
		}
	}
	return nil
}

func (u *publishUsecase) publishOne(ctx context.Context, rec *model.Publish, meta *model.YouTubeMetadata, video []byte) error {
	client, err := u.tokens.ClientForChannel(ctx, rec.ChannelID)
	if err != nil {
		return err
	}
	videoID, err := client.UploadVideo(ctx, meta, bytes.NewReader(video))
	if err != nil {
		return err
	}
	return u.publishes.MarkPublished(ctx, rec.ID, videoID)
}
