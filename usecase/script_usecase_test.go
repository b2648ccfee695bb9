package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"social-manager/domain/dto"
	"social-manager/domain/model"
	apperrors "social-manager/pkg/errors"
	"social-manager/usecase"
)

func draftScript() *model.Script {
	return &model.Script{
		ID:      "script-1",
		BrandID: "brand-1",
		Title:   "Morning Routine",
		Status:  model.ScriptStatusDraft,
		Document: &model.ScriptDocument{
			Title: "Morning Routine",
			Scenes: []model.Scene{
				{Image: "a.png", Voiceover: "first"},
				{Image: "b.png", Voiceover: "second"},
			},
		},
	}
}

func TestCreateScript_Validation(t *testing.T) {
	uc := usecase.NewScriptUsecase(new(MockScriptRepo), new(MockJobRepo), new(MockVideoGenerator))

	_, err := uc.CreateScript(context.Background(), "", "t", &model.ScriptDocument{Scenes: []model.Scene{{Image: "a", Voiceover: "v"}}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = uc.CreateScript(context.Background(), "brand-1", "t", &model.ScriptDocument{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = uc.CreateScript(context.Background(), "brand-1", "t", &model.ScriptDocument{Scenes: []model.Scene{{Image: "a"}}})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateScript_Persists(t *testing.T) {
	scripts := new(MockScriptRepo)
	scripts.On("Create", mock.Anything, mock.MatchedBy(func(s *model.Script) bool {
		return s.ID != "" && s.BrandID == "brand-1" && s.Status == model.ScriptStatusDraft
	})).Return(nil).Once()

	uc := usecase.NewScriptUsecase(scripts, new(MockJobRepo), new(MockVideoGenerator))
	script, err := uc.CreateScript(context.Background(), "brand-1", "", &model.ScriptDocument{
		Title:  "From Document",
		Scenes: []model.Scene{{Image: "a.png", Voiceover: "v"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "From Document", script.Title)
	scripts.AssertExpectations(t)
}

func TestScheduleScript_SetsSchedule(t *testing.T) {
	scripts := new(MockScriptRepo)
	scripts.On("GetByID", mock.Anything, "script-1").Return(draftScript(), nil)

	at := time.Now().Add(2 * time.Hour)
	scripts.On("SetSchedule", mock.Anything, "script-1", at).Return(nil).Once()

	uc := usecase.NewScriptUsecase(scripts, new(MockJobRepo), new(MockVideoGenerator))
	require.NoError(t, uc.ScheduleScript(context.Background(), "script-1", at))
	scripts.AssertExpectations(t)
}

// TestScheduleScript_RejectsRunningGeneration verifies a script with a job in
// flight can't be queued again behind its back.
func TestScheduleScript_RejectsRunningGeneration(t *testing.T) {
	scripts := new(MockScriptRepo)
	script := draftScript()
	script.Status = model.ScriptStatusGenerating
	scripts.On("GetByID", mock.Anything, "script-1").Return(script, nil)

	uc := usecase.NewScriptUsecase(scripts, new(MockJobRepo), new(MockVideoGenerator))
	err := uc.ScheduleScript(context.Background(), "script-1", time.Now().Add(time.Hour))

	require.ErrorIs(t, err, apperrors.ErrInvalidState)
	scripts.AssertNotCalled(t, "SetSchedule", mock.Anything, mock.Anything, mock.Anything)
}

// TestRunScheduledScripts_PerScriptFailureIsolation sweeps two due scripts
// where the generator rejects the second one; the first is still submitted
// and the second is marked failed and reported without stopping the sweep.
func TestRunScheduledScripts_PerScriptFailureIsolation(t *testing.T) {
	scripts := new(MockScriptRepo)
	jobs := new(MockJobRepo)
	generator := new(MockVideoGenerator)

	when := time.Now().Add(-time.Minute)
	first := draftScript()
	first.Status = model.ScriptStatusScheduled
	first.ScheduledAt = &when
	second := draftScript()
	second.ID = "script-2"
	second.Status = model.ScriptStatusScheduled
	second.ScheduledAt = &when

	scripts.On("ListDueScheduled", mock.Anything, mock.Anything).
		Return([]*model.Script{first, second}, nil).Once()

	scripts.On("GetByID", mock.Anything, "script-1").Return(first, nil)
	generator.On("Submit", mock.Anything, mock.MatchedBy(func(req *dto.GenerationRequest) bool {
		return req.Title == "Morning Routine"
	})).Return(&dto.JobCreateResponse{JobID: "ext-1", Status: "pending"}, nil).Once()
	jobs.On("Create", mock.Anything, mock.MatchedBy(func(j *model.Job) bool {
		return j.ScriptID == "script-1" && j.ExternalJobID == "ext-1"
	})).Return(nil).Once()
	scripts.On("UpdateStatus", mock.Anything, "script-1", model.ScriptStatusGenerating).Return(nil).Once()

	scripts.On("GetByID", mock.Anything, "script-2").Return(second, nil)
	generator.On("Submit", mock.Anything, mock.Anything).
		Return(nil, apperrors.Upstream("video generator returned 500", errors.New("render worker crashed"))).Once()
	scripts.On("UpdateStatus", mock.Anything, "script-2", model.ScriptStatusFailed).Return(nil).Once()

	uc := usecase.NewScriptUsecase(scripts, jobs, generator)
	res, err := uc.RunScheduledScripts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, res.Due)
	assert.Equal(t, 1, res.Submitted)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "script-2", res.Failures[0].ScriptID)
	scripts.AssertExpectations(t)
	generator.AssertExpectations(t)
	jobs.AssertExpectations(t)
}

// TestSubmitGeneration_StripsPublishMetadata verifies the payload sent to the
// generator carries scenes but not the per-platform publish blocks.
func TestSubmitGeneration_StripsPublishMetadata(t *testing.T) {
	scripts := new(MockScriptRepo)
	jobs := new(MockJobRepo)
	generator := new(MockVideoGenerator)

	script := draftScript()
	script.Document.Media = []model.MediaTarget{{YouTube: &model.YouTubeTarget{Title: "public title"}}}
	scripts.On("GetByID", mock.Anything, "script-1").Return(script, nil)

	generator.On("Submit", mock.Anything, mock.MatchedBy(func(req *dto.GenerationRequest) bool {
		return req.Title == "Morning Routine" && len(req.Scenes) == 2
	})).Return(&dto.JobCreateResponse{JobID: "ext-1", Status: "pending"}, nil).Once()

	jobs.On("Create", mock.Anything, mock.MatchedBy(func(j *model.Job) bool {
		return j.ScriptID == "script-1" && j.ExternalJobID == "ext-1" && j.Status == model.JobStatusPending
	})).Return(nil).Once()
	scripts.On("UpdateStatus", mock.Anything, "script-1", model.ScriptStatusGenerating).Return(nil).Once()

	uc := usecase.NewScriptUsecase(scripts, jobs, generator)
	job, err := uc.SubmitGeneration(context.Background(), "script-1")

	require.NoError(t, err)
	assert.Equal(t, "ext-1", job.ExternalJobID)
	generator.AssertExpectations(t)
	jobs.AssertExpectations(t)
}

func TestRefreshJobStatus_CompletionStoresOutput(t *testing.T) {
	scripts := new(MockScriptRepo)
	jobs := new(MockJobRepo)
	generator := new(MockVideoGenerator)

	stored := &model.Job{ID: "job-1", ScriptID: "script-1", ExternalJobID: "ext-1", Status: model.JobStatusProcessing}
	jobs.On("GetByID", mock.Anything, "job-1").Return(stored, nil)
	generator.On("GetStatus", mock.Anything, "ext-1").Return(&dto.JobStatusResponse{
		JobID:    "ext-1",
		Status:   model.JobStatusCompleted,
		VideoURL: "/api/v1/download/ext-1",
		Duration: 42.5,
	}, nil)
	jobs.On("MarkCompleted", mock.Anything, "job-1", "/api/v1/download/ext-1").Return(nil).Once()
	scripts.On("SetOutput", mock.Anything, "script-1", "/api/v1/download/ext-1", 42.5).Return(nil).Once()

	uc := usecase.NewScriptUsecase(scripts, jobs, generator)
	_, err := uc.RefreshJobStatus(context.Background(), "job-1")

	require.NoError(t, err)
	jobs.AssertExpectations(t)
	scripts.AssertExpectations(t)
}

func TestRefreshJobStatus_FailureRecordsError(t *testing.T) {
	scripts := new(MockScriptRepo)
	jobs := new(MockJobRepo)
	generator := new(MockVideoGenerator)

	stored := &model.Job{ID: "job-1", ScriptID: "script-1", ExternalJobID: "ext-1", Status: model.JobStatusProcessing}
	jobs.On("GetByID", mock.Anything, "job-1").Return(stored, nil)
	generator.On("GetStatus", mock.Anything, "ext-1").Return(&dto.JobStatusResponse{
		JobID:        "ext-1",
		Status:       model.JobStatusFailed,
		ErrorMessage: "render worker crashed",
	}, nil)
	jobs.On("MarkFailed", mock.Anything, "job-1", "render worker crashed").Return(nil).Once()
	scripts.On("UpdateStatus", mock.Anything, "script-1", model.ScriptStatusFailed).Return(nil).Once()

	uc := usecase.NewScriptUsecase(scripts, jobs, generator)
	_, err := uc.RefreshJobStatus(context.Background(), "job-1")

	require.NoError(t, err)
	jobs.AssertExpectations(t)
	scripts.AssertExpectations(t)
}

func TestCancelJob_FinishedJobRejected(t *testing.T) {
	jobs := new(MockJobRepo)
	generator := new(MockVideoGenerator)

	jobs.On("GetByID", mock.Anything, "job-1").
		Return(&model.Job{ID: "job-1", Status: model.JobStatusCompleted}, nil)

	uc := usecase.NewScriptUsecase(new(MockScriptRepo), jobs, generator)
	err := uc.CancelJob(context.Background(), "job-1")

	require.ErrorIs(t, err, apperrors.ErrInvalidState)
	generator.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
}
