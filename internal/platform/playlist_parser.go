package platform

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-classroom/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistParseTimeout = 60 * time.Second
)

// Errors returned by the playlist parser
var (
	ErrNotPlaylistURL = errors.New("URL does not reference a playlist")
	ErrEmptyPlaylist  = errors.New("playlist has no videos")
)

// PlaylistFetchFunc lists the videos of a playlist by id
type PlaylistFetchFunc func(ctx context.Context, playlistID string) ([]*model.PlaylistVideo, error)

// PlaylistParserService expands YouTube playlists into their videos
type PlaylistParserService struct {
	timeout time.Duration
	fetch   PlaylistFetchFunc
}

// NewPlaylistParserService creates a parser backed by ytdlp
func NewPlaylistParserService() *PlaylistParserService {
	return &PlaylistParserService{
		timeout: DefaultPlaylistParseTimeout,
		fetch:   fetchWithYTDLP,
	}
}

// NewPlaylistParserServiceWithFetcher creates a parser over a custom fetcher
func NewPlaylistParserServiceWithFetcher(fetch PlaylistFetchFunc) *PlaylistParserService {
	p := NewPlaylistParserService()
	p.fetch = fetch
	return p
}

// SetTimeout sets the timeout for playlist parsing
func (p *PlaylistParserService) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		p.timeout = timeout
	}
}

// ParsePlaylist resolves a playlist URL into its videos, in playlist order
func (p *PlaylistParserService) ParsePlaylist(ctx context.Context, rawURL string) (*model.Playlist, error) {
	playlistID, ok := ExtractPlaylistID(rawURL)
	if !ok {
		return nil, errors.Wrapf(ErrNotPlaylistURL, "parse %q", rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	videos, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch playlist %s", playlistID)
	}

	playlist := model.NewPlaylist(playlistID, rawURL)
	for _, v := range videos {
		playlist.AddVideo(v)
	}
	if playlist.Len() == 0 {
		return nil, errors.Wrapf(ErrEmptyPlaylist, "playlist %s", playlistID)
	}

	return playlist, nil
}

func fetchWithYTDLP(ctx context.Context, playlistID string) ([]*model.PlaylistVideo, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	videos := make([]*model.PlaylistVideo, 0, len(items))
	for _, it := range items {
		videos = append(videos, &model.PlaylistVideo{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   WatchURL(it.VideoID),
		})
	}
	return videos, nil
}
