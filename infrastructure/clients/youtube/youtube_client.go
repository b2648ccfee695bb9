package youtube

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"social-manager/domain/model"
	"social-manager/domain/repository"
	"social-manager/infrastructure/utils"
	apperrors "social-manager/pkg/errors"
)

// Client wraps the YouTube Data API v3 for one channel's credentials. The
// http.Client it is built with must already carry a valid token source.
type Client struct {
	service *youtube.Service
}

func NewClient(ctx context.Context, httpClient *http.Client) (repository.IYouTubeClient, error) {
	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// UploadVideo streams the media to YouTube and returns the id of the created
// video.
func (c *Client) UploadVideo(ctx context.Context, meta *model.YouTubeMetadata, media io.Reader) (string, error) {
	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryID,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           meta.PrivacyStatus,
			MadeForKids:             meta.MadeForKids,
			SelfDeclaredMadeForKids: meta.SelfDeclaredMadeForKids,
			ContainsSyntheticMedia:  meta.ContainsSyntheticMedia,
			// MadeForKids is false; without ForceSendFields the zero value
			// would be dropped from the request and YouTube would leave the
			// audience undeclared.
			ForceSendFields: []string{"MadeForKids", "SelfDeclaredMadeForKids", "ContainsSyntheticMedia"},
		},
	}

	call := c.service.Videos.Insert([]string{"snippet", "status"}, video).
		Context(ctx).
		Media(media, googleapi.ContentType("video/mp4"))

	created, err := call.Do()
	if err != nil {
		return "", apperrors.Upstream("video upload failed", err)
	}
	return created.Id, nil
}

// ChannelIdentity returns the id and title of the channel the credentials
// belong to.
func (c *Client) ChannelIdentity(ctx context.Context) (string, string, error) {
	res, err := c.service.Channels.List([]string{"id", "snippet"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return "", "", apperrors.Upstream("channel lookup failed", err)
	}
	if len(res.Items) == 0 {
		return "", "", apperrors.Upstream("no channel for these credentials", nil)
	}
	ch := res.Items[0]
	return ch.Id, ch.Snippet.Title, nil
}

// Probe issues the cheapest possible authenticated read. Any error is
// returned verbatim so callers can classify it.
func (c *Client) Probe(ctx context.Context) error {
	_, err := c.service.Channels.List([]string{"id"}).Mine(true).Context(ctx).Do()
	return err
}

// VideoDetails returns the platform's current view of a video. The API
// reports duration as ISO 8601 (PT1M30S); it is converted to seconds here.
func (c *Client) VideoDetails(ctx context.Context, videoID string) (*model.VideoDetails, error) {
	res, err := c.service.Videos.List([]string{"snippet", "status", "statistics", "contentDetails"}).
		Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, apperrors.Upstream("video lookup failed", err)
	}
	if len(res.Items) == 0 {
		return nil, apperrors.NotFound("video not found")
	}
	v := res.Items[0]
	details := &model.VideoDetails{ID: v.Id}
	if v.Snippet != nil {
		details.Title = v.Snippet.Title
		details.Description = v.Snippet.Description
	}
	if v.Status != nil {
		details.PrivacyStatus = v.Status.PrivacyStatus
	}
	if v.Statistics != nil {
		details.ViewCount = v.Statistics.ViewCount
		details.LikeCount = v.Statistics.LikeCount
	}
	if v.ContentDetails != nil {
		details.DurationSeconds = utils.ParseISODuration(v.ContentDetails.Duration)
		details.DurationLabel = utils.FormatDuration(details.DurationSeconds)
	}
	return details, nil
}

func (c *Client) UpdateVideo(ctx context.Context, videoID string, meta *model.YouTubeMetadata) error {
	video := &youtube.Video{
		Id: videoID,
		Snippet: &youtube.VideoSnippet{
			Title:       meta.Title,
			Description: meta.Description,
			Tags:        meta.Tags,
			CategoryId:  meta.CategoryID,
		},
	}
	_, err := c.service.Videos.Update([]string{"snippet"}, video).Context(ctx).Do()
	if err != nil {
		return apperrors.Upstream("video update failed", err)
	}
	return nil
}

func (c *Client) DeleteVideo(ctx context.Context, videoID string) error {
	err := c.service.Videos.Delete(videoID).Context(ctx).Do()
	if err != nil {
		return apperrors.Upstream("video delete failed", err)
	}
	return nil
}
