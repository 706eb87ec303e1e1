package platform

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"google.golang.org/api/youtube/v3"
)

func TestIsLiveNow(t *testing.T) {
	tests := []struct {
		name     string
		details  *youtube.VideoLiveStreamingDetails
		expected bool
	}{
		{"not a broadcast", nil, false},
		{"scheduled", &youtube.VideoLiveStreamingDetails{ScheduledStartTime: "2024-01-01T10:00:00Z"}, false},
		{"live", &youtube.VideoLiveStreamingDetails{ActualStartTime: "2024-01-01T10:00:00Z"}, true},
		{"ended", &youtube.VideoLiveStreamingDetails{ActualStartTime: "2024-01-01T10:00:00Z", ActualEndTime: "2024-01-01T11:00:00Z"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isLiveNow(tt.details); got != tt.expected {
				t.Errorf("isLiveNow() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestVideoMetaFromItem(t *testing.T) {
	item := &youtube.Video{
		Id:                   "abc",
		Snippet:              &youtube.VideoSnippet{Title: "Algebra basics"},
		LiveStreamingDetails: &youtube.VideoLiveStreamingDetails{ActualStartTime: "2024-01-01T10:00:00Z"},
	}

	meta := videoMetaFromItem(item)
	if meta.ID != "abc" || meta.Title != "Algebra basics" || !meta.Live {
		t.Errorf("unexpected meta: %+v", meta)
	}

	bare := videoMetaFromItem(&youtube.Video{Id: "x"})
	if bare.Title != "" || bare.Live {
		t.Errorf("expected empty meta, got %+v", bare)
	}
}

func TestMetadataDisabled(t *testing.T) {
	if _, err := NewYouTubeMetadataService(context.Background(), "  "); errors.Cause(err) != ErrMetadataDisabled {
		t.Errorf("expected ErrMetadataDisabled, got %v", err)
	}

	_, err := DisabledMetadataService{}.Lookup(context.Background(), "abc")
	if errors.Cause(err) != ErrMetadataDisabled {
		t.Errorf("expected ErrMetadataDisabled, got %v", err)
	}
}
