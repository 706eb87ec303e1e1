package platform

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/ytget/yt-classroom/internal/model"
)

// Parts requested from the videos endpoint
var videoParts = []string{"snippet", "liveStreamingDetails"}

// Errors returned by metadata lookups
var (
	ErrMetadataDisabled = errors.New("video metadata lookup is not configured")
	ErrVideoNotFound    = errors.New("video not found")
)

// YouTubeMetadataService looks up video titles and live status through the
// YouTube Data API.
type YouTubeMetadataService struct {
	client *youtube.Service
}

// NewYouTubeMetadataService creates a lookup client authenticated by API key
func NewYouTubeMetadataService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeMetadataService, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMetadataDisabled
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "youtube.NewService")
	}
	return &YouTubeMetadataService{client: client}, nil
}

// Lookup returns the title and live status of a video
func (s *YouTubeMetadataService) Lookup(ctx context.Context, videoID string) (*model.VideoMeta, error) {
	resp, err := s.client.Videos.List(videoParts).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, errors.Wrapf(err, "videos.list %s", videoID)
	}
	if len(resp.Items) == 0 {
		return nil, errors.Wrapf(ErrVideoNotFound, "videos.list %s", videoID)
	}
	return videoMetaFromItem(resp.Items[0]), nil
}

// DisabledMetadataService is used when no API key is configured. Every
// lookup fails, so rows fall back to stored titles.
type DisabledMetadataService struct{}

// Lookup always returns ErrMetadataDisabled
func (DisabledMetadataService) Lookup(context.Context, string) (*model.VideoMeta, error) {
	return nil, ErrMetadataDisabled
}

func videoMetaFromItem(item *youtube.Video) *model.VideoMeta {
	meta := &model.VideoMeta{ID: item.Id}
	if item.Snippet != nil {
		meta.Title = item.Snippet.Title
	}
	meta.Live = isLiveNow(item.LiveStreamingDetails)
	return meta
}

// isLiveNow reports a broadcast that started and has not ended
func isLiveNow(details *youtube.VideoLiveStreamingDetails) bool {
	if details == nil {
		return false
	}
	return details.ActualStartTime != "" && details.ActualEndTime == ""
}
