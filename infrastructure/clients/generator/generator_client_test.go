package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-manager/domain/dto"
	apperrors "social-manager/pkg/errors"
)

func TestClient_Submit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/generate", r.URL.Path)

		var req dto.GenerationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Morning routine", req.Title)
		assert.Len(t, req.Scenes, 2)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(dto.JobCreateResponse{JobID: "job-1", Status: "pending"})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	res, err := client.Submit(context.Background(), &dto.GenerationRequest{
		Title: "Morning routine",
		Scenes: []dto.GenerationScene{
			{Image: "a.png", Voiceover: "first"},
			{Image: "b.png", Voiceover: "second"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "job-1", res.JobID)
	assert.Equal(t, "pending", res.Status)
}

func TestClient_GetStatus_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	res, err := client.GetStatus(context.Background(), "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, res)
}

func TestClient_ListJobs_EncodesOptions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/jobs", r.URL.Path)
		assert.Equal(t, "completed", r.URL.Query().Get("status"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(dto.JobListResponse{Jobs: []dto.JobStatusResponse{
			{JobID: "job-1", Status: "completed", VideoURL: "/api/v1/download/job-1"},
		}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	res, err := client.ListJobs(context.Background(), &dto.JobListOptions{Status: "completed", Limit: 5})
	require.NoError(t, err)
	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "job-1", res.Jobs[0].JobID)
}

func TestClient_Download(t *testing.T) {
	payload := []byte("fake-mp4-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/download/job-1", r.URL.Path)
		w.Header().Set("Content-Type", "video/mp4")
		w.Write(payload)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	data, err := client.Download(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestClient_Download_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "render worker crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	data, err := client.Download(context.Background(), "job-1")
	require.ErrorIs(t, err, apperrors.ErrUpstream)
	assert.Nil(t, data)
	assert.Contains(t, err.Error(), "500")
}

func TestClient_Cancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/jobs/job-1/cancel", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	require.NoError(t, client.Cancel(context.Background(), "job-1"))
}
