package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"social-manager/domain/dto"
	"social-manager/domain/model"
	httpHandler "social-manager/interfaces/http"
	apperrors "social-manager/pkg/errors"
)

type MockPublishUsecase struct {
	mock.Mock
}

func (m *MockPublishUsecase) PublishToAllChannels(ctx context.Context, scriptID string) (*dto.PublishFanOutResult, error) {
	args := m.Called(ctx, scriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublishFanOutResult), args.Error(1)
}

func (m *MockPublishUsecase) ApprovePublishes(ctx context.Context, publishIDs []string) (*dto.PublishActionResult, error) {
	args := m.Called(ctx, publishIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublishActionResult), args.Error(1)
}

func (m *MockPublishUsecase) RetryFailedPublishes(ctx context.Context, publishIDs []string) (*dto.PublishActionResult, error) {
	args := m.Called(ctx, publishIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublishActionResult), args.Error(1)
}

func (m *MockPublishUsecase) PublishStatus(ctx context.Context, scriptID string) ([]*model.Publish, error) {
	args := m.Called(ctx, scriptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Publish), args.Error(1)
}

func newPublishRouter(uc *MockPublishUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := httpHandler.NewPublishHandler(uc)
	router := gin.New()
	router.POST("/api/scripts/:scriptId/publish", handler.PublishToAllChannels)
	router.GET("/api/scripts/:scriptId/publishes", handler.PublishStatus)
	router.POST("/api/publishes/approve", handler.ApprovePublishes)
	router.POST("/api/publishes/retry", handler.RetryFailedPublishes)
	return router
}

func TestPublishToAllChannels_ReturnsFanOutResult(t *testing.T) {
	uc := new(MockPublishUsecase)
	uc.On("PublishToAllChannels", mock.Anything, "script-1").
		Return(&dto.PublishFanOutResult{RequireApproval: true, ChannelsTotal: 3, NewRecords: 2}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scripts/script-1/publish", nil)
	newPublishRouter(uc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"channels_total":3`)
	assert.Contains(t, w.Body.String(), `"new_records":2`)
	uc.AssertExpectations(t)
}

func TestPublishToAllChannels_InvalidStateMapsTo409(t *testing.T) {
	uc := new(MockPublishUsecase)
	uc.On("PublishToAllChannels", mock.Anything, "script-1").
		Return(nil, apperrors.InvalidState("script has no completed generation job"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scripts/script-1/publish", nil)
	newPublishRouter(uc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestApprovePublishes_BadBody(t *testing.T) {
	uc := new(MockPublishUsecase)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/publishes/approve", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	newPublishRouter(uc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	uc.AssertNotCalled(t, "ApprovePublishes", mock.Anything, mock.Anything)
}

func TestApprovePublishes_PassesIDs(t *testing.T) {
	uc := new(MockPublishUsecase)
	uc.On("ApprovePublishes", mock.Anything, []string{"p-1", "p-2"}).
		Return(&dto.PublishActionResult{Published: 2}, nil)

	w := httptest.NewRecorder()
	body := strings.NewReader(`{"publish_ids":["p-1","p-2"]}`)
	req := httptest.NewRequest(http.MethodPost, "/api/publishes/approve", body)
	req.Header.Set("Content-Type", "application/json")
	newPublishRouter(uc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	uc.AssertExpectations(t)
}

func TestPublishStatus_EmptyListIsNotNull(t *testing.T) {
	uc := new(MockPublishUsecase)
	uc.On("PublishStatus", mock.Anything, "script-1").Return([]*model.Publish{}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/scripts/script-1/publishes", nil)
	newPublishRouter(uc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"publishes":[]`)
}
