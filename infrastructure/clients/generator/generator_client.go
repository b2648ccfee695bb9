package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"

	"social-manager/domain/dto"
	"social-manager/domain/repository"
	"social-manager/infrastructure/logger"
	apperrors "social-manager/pkg/errors"
)

// Client talks to the video generation service over its REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) repository.IVideoGenerator {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Minute},
	}
}

func (c *Client) Submit(ctx context.Context, req *dto.GenerationRequest) (*dto.JobCreateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	var res dto.JobCreateResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/generate", bytes.NewReader(body), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) GetStatus(ctx context.Context, jobID string) (*dto.JobStatusResponse, error) {
	var res dto.JobStatusResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/status/"+jobID, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Download fetches the rendered video for a completed job. The whole file is
// buffered in memory; generated shorts stay well under typical upload limits.
func (c *Client) Download(ctx context.Context, jobID string) ([]byte, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/v1/download/"+jobID, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, c.upstreamError(resp)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Upstream("reading generated video", err)
	}
	return data, nil
}

func (c *Client) ListJobs(ctx context.Context, opts *dto.JobListOptions) (*dto.JobListResponse, error) {
	path := "/api/v1/jobs"
	if opts != nil {
		v, err := query.Values(opts)
		if err != nil {
			return nil, err
		}
		if encoded := v.Encode(); encoded != "" {
			path += "?" + encoded
		}
	}
	var res dto.JobListResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Cancel(ctx context.Context, jobID string) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/v1/jobs/"+jobID+"/cancel", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return apperrors.NotFound("generation job not found")
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return c.upstreamError(resp)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.GetLogger().WithField("path", path).WithError(err).Error("video generator request failed")
		return nil, apperrors.Upstream("video generator unreachable", err)
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	resp, err := c.do(ctx, method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return apperrors.NotFound("generation job not found")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.upstreamError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Upstream("decoding video generator response", err)
	}
	return nil
}

func (c *Client) upstreamError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return apperrors.Upstream(
		fmt.Sprintf("video generator returned %d", resp.StatusCode),
		fmt.Errorf("%s", strings.TrimSpace(string(snippet))))
}
