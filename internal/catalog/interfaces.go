package catalog

import (
	"context"

	"github.com/ytget/yt-classroom/internal/model"
)

// MetadataLookup resolves a video id to its metadata
type MetadataLookup interface {
	Lookup(ctx context.Context, videoID string) (*model.VideoMeta, error)
}

// PlaylistSource expands a playlist URL into its videos
type PlaylistSource interface {
	ParsePlaylist(ctx context.Context, rawURL string) (*model.Playlist, error)
}

// RowFunc receives one enriched lesson row as soon as it settles.
// It may be called from several goroutines at once.
type RowFunc func(position int, row model.LessonRow)
