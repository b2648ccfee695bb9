package usecase_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"

	"social-manager/domain/dto"
	"social-manager/domain/model"
	"social-manager/domain/repository"
	"social-manager/infrastructure/pubsub"
)

// Mock implementations shared by the usecase tests.

type MockPublishRepo struct {
	mock.Mock
}

func (m *MockPublishRepo) CreateMissing(ctx context.Context, scriptID string, channelIDs []string, initialStatus string) (int, error) {
	args := m.Called(ctx, scriptID, channelIDs, initialStatus)
	return args.Int(0), args.Error(1)
}

func (m *MockPublishRepo) GetByIDs(ctx context.Context, ids []string) ([]*model.Publish, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Publish), args.Error(1)
}

func (m *MockPublishRepo) ListByScript(ctx context.Context, scriptID string) ([]*model.Publish, error) {
	args := m.Called(ctx, scriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Publish), args.Error(1)
}

func (m *MockPublishRepo) ListByScriptAndStatus(ctx context.Context, scriptID, status string) ([]*model.Publish, error) {
	args := m.Called(ctx, scriptID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Publish), args.Error(1)
}

func (m *MockPublishRepo) Approve(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockPublishRepo) ResetForRetry(ctx context.Context, ids []string) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}

func (m *MockPublishRepo) MarkPublishing(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPublishRepo) MarkPublished(ctx context.Context, id, platformVideoID string) error {
	args := m.Called(ctx, id, platformVideoID)
	return args.Error(0)
}

func (m *MockPublishRepo) MarkFailed(ctx context.Context, id, errorMessage string) error {
	args := m.Called(ctx, id, errorMessage)
	return args.Error(0)
}

type MockScriptRepo struct {
	mock.Mock
}

func (m *MockScriptRepo) Create(ctx context.Context, s *model.Script) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockScriptRepo) GetByID(ctx context.Context, id string) (*model.Script, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Script), args.Error(1)
}

func (m *MockScriptRepo) ListByBrand(ctx context.Context, brandID string) ([]*model.Script, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Script), args.Error(1)
}

func (m *MockScriptRepo) UpdateStatus(ctx context.Context, id, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockScriptRepo) SetOutput(ctx context.Context, id, videoURL string, duration float64) error {
	args := m.Called(ctx, id, videoURL, duration)
	return args.Error(0)
}

func (m *MockScriptRepo) SetSchedule(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *MockScriptRepo) ListDueScheduled(ctx context.Context, now time.Time) ([]*model.Script, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Script), args.Error(1)
}

func (m *MockScriptRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, j *model.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id string) (*model.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

func (m *MockJobRepo) LatestCompletedForScript(ctx context.Context, scriptID string) (*model.Job, error) {
	args := m.Called(ctx, scriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Job), args.Error(1)
}

func (m *MockJobRepo) ListForScript(ctx context.Context, scriptID string) ([]*model.Job, error) {
	args := m.Called(ctx, scriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Job), args.Error(1)
}

func (m *MockJobRepo) UpdateProgress(ctx context.Context, id string, status string, progress, currentScene, totalScenes int) error {
	args := m.Called(ctx, id, status, progress, currentScene, totalScenes)
	return args.Error(0)
}

func (m *MockJobRepo) MarkCompleted(ctx context.Context, id, videoURL string) error {
	args := m.Called(ctx, id, videoURL)
	return args.Error(0)
}

func (m *MockJobRepo) MarkFailed(ctx context.Context, id, errorMessage string) error {
	args := m.Called(ctx, id, errorMessage)
	return args.Error(0)
}

type MockChannelRepo struct {
	mock.Mock
}

func (m *MockChannelRepo) GetByID(ctx context.Context, id string) (*model.Channel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Channel), args.Error(1)
}

func (m *MockChannelRepo) GetByPlatformAccount(ctx context.Context, platform, platformAccountID string) (*model.Channel, error) {
	args := m.Called(ctx, platform, platformAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Channel), args.Error(1)
}

func (m *MockChannelRepo) ListByBrand(ctx context.Context, brandID, platform string) ([]*model.Channel, error) {
	args := m.Called(ctx, brandID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Channel), args.Error(1)
}

func (m *MockChannelRepo) Upsert(ctx context.Context, c *model.Channel) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChannelRepo) UpdateTokens(ctx context.Context, channelID string, upd repository.TokenUpdate) error {
	args := m.Called(ctx, channelID, upd)
	return args.Error(0)
}

func (m *MockChannelRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChannelRepo) DeleteAllForBrand(ctx context.Context, brandID, platform string) (int, error) {
	args := m.Called(ctx, brandID, platform)
	return args.Int(0), args.Error(1)
}

type MockBrandRepo struct {
	mock.Mock
}

func (m *MockBrandRepo) Create(ctx context.Context, b *model.Brand) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBrandRepo) GetByID(ctx context.Context, id string) (*model.Brand, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Brand), args.Error(1)
}

func (m *MockBrandRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBrandRepo) UpdateYouTubeCredentials(ctx context.Context, brandID, clientID, clientSecretEnc string) error {
	args := m.Called(ctx, brandID, clientID, clientSecretEnc)
	return args.Error(0)
}

func (m *MockBrandRepo) ClearYouTubeCredentials(ctx context.Context, brandID string) error {
	args := m.Called(ctx, brandID)
	return args.Error(0)
}

func (m *MockBrandRepo) GetPublishConfig(ctx context.Context, brandID string) (*model.PublishConfig, error) {
	args := m.Called(ctx, brandID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PublishConfig), args.Error(1)
}

func (m *MockBrandRepo) UpsertPublishConfig(ctx context.Context, cfg *model.PublishConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) ClientForChannel(ctx context.Context, channelID string) (repository.IYouTubeClient, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.IYouTubeClient), args.Error(1)
}

type MockYouTubeClient struct {
	mock.Mock
}

func (m *MockYouTubeClient) UploadVideo(ctx context.Context, meta *model.YouTubeMetadata, media io.Reader) (string, error) {
	args := m.Called(ctx, meta, media)
	return args.String(0), args.Error(1)
}

func (m *MockYouTubeClient) ChannelIdentity(ctx context.Context) (string, string, error) {
	args := m.Called(ctx)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockYouTubeClient) Probe(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockYouTubeClient) VideoDetails(ctx context.Context, videoID string) (*model.VideoDetails, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VideoDetails), args.Error(1)
}

func (m *MockYouTubeClient) UpdateVideo(ctx context.Context, videoID string, meta *model.YouTubeMetadata) error {
	args := m.Called(ctx, videoID, meta)
	return args.Error(0)
}

func (m *MockYouTubeClient) DeleteVideo(ctx context.Context, videoID string) error {
	args := m.Called(ctx, videoID)
	return args.Error(0)
}

type MockVideoGenerator struct {
	mock.Mock
}

func (m *MockVideoGenerator) Submit(ctx context.Context, req *dto.GenerationRequest) (*dto.JobCreateResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobCreateResponse), args.Error(1)
}

func (m *MockVideoGenerator) GetStatus(ctx context.Context, jobID string) (*dto.JobStatusResponse, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobStatusResponse), args.Error(1)
}

func (m *MockVideoGenerator) Download(ctx context.Context, jobID string) ([]byte, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockVideoGenerator) ListJobs(ctx context.Context, opts *dto.JobListOptions) (*dto.JobListResponse, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobListResponse), args.Error(1)
}

func (m *MockVideoGenerator) Cancel(ctx context.Context, jobID string) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

type MockPublishEvents struct {
	mock.Mock
}

func (m *MockPublishEvents) DispatchCompleted(ctx context.Context, event pubsub.PublishEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockOAuthFlow struct {
	mock.Mock
}

func (m *MockOAuthFlow) AuthURL(brand *model.Brand, state string) (string, error) {
	args := m.Called(brand, state)
	return args.String(0), args.Error(1)
}

func (m *MockOAuthFlow) Exchange(ctx context.Context, brand *model.Brand, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, brand, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockOAuthFlow) ClientForToken(ctx context.Context, brand *model.Brand, token *oauth2.Token) (repository.IYouTubeClient, error) {
	args := m.Called(ctx, brand, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.IYouTubeClient), args.Error(1)
}

type MockHealthCache struct {
	mock.Mock
}

func (m *MockHealthCache) Get(ctx context.Context, channelID string) (*dto.ChannelHealth, bool) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*dto.ChannelHealth), args.Bool(1)
}

func (m *MockHealthCache) Set(ctx context.Context, channelID string, health *dto.ChannelHealth) {
	m.Called(ctx, channelID, health)
}

func (m *MockHealthCache) Invalidate(ctx context.Context, channelID string) {
	m.Called(ctx, channelID)
}

type MockVault struct {
	mock.Mock
}

func (m *MockVault) Encrypt(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockVault) Decrypt(blob string) (string, error) {
	args := m.Called(blob)
	return args.String(0), args.Error(1)
}
