package catalog

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/ytget/yt-classroom/internal/gateway"
	"github.com/ytget/yt-classroom/internal/model"
)

// ImportPlaylist appends one lesson per playlist video to courseID, in
// playlist order, after the existing lessons. It stops at the first failed
// write and returns the lessons created so far.
func (s *Service) ImportPlaylist(ctx context.Context, courseID string, playlist *model.Playlist) ([]model.Lesson, error) {
	if playlist == nil || playlist.Len() == 0 {
		return nil, gateway.InvalidError(gateway.OpAdd, "playlist has no videos")
	}

	next, err := s.NextLessonIndex(ctx, courseID)
	if err != nil {
		return nil, err
	}

	created := make([]model.Lesson, 0, playlist.Len())
	for _, video := range playlist.Videos {
		title := strings.TrimSpace(video.Title)
		if title == "" {
			title = video.ID
		}
		lesson := model.Lesson{
			CourseID:  courseID,
			Title:     title,
			YouTubeID: video.ID,
			Index:     next,
		}
		id, err := s.store.Add(ctx, gateway.LessonsPath(courseID), map[string]any{
			gateway.FieldTitle:     lesson.Title,
			gateway.FieldYouTubeID: lesson.YouTubeID,
			gateway.FieldIndex:     lesson.Index,
		})
		if err != nil {
			return created, errors.Wrapf(err, "import video %s", video.ID)
		}
		lesson.ID = id
		created = append(created, lesson)
		next++
	}

	s.log.Info("playlist imported", "course", courseID, "playlist", playlist.ID, "lessons", len(created))
	return created, nil
}
