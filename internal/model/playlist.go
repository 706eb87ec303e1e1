package model

import "time"

// PlaylistVideo is one entry of a YouTube playlist being imported as lessons
type PlaylistVideo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Playlist is the parsed content of a YouTube playlist
type Playlist struct {
	ID        string           `json:"id"`
	URL       string           `json:"url"`
	Videos    []*PlaylistVideo `json:"videos"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewPlaylist creates a new playlist instance
func NewPlaylist(id, url string) *Playlist {
	return &Playlist{
		ID:        id,
		URL:       url,
		Videos:    make([]*PlaylistVideo, 0),
		CreatedAt: time.Now(),
	}
}

// AddVideo adds a video to the playlist, skipping entries without an id
func (p *Playlist) AddVideo(video *PlaylistVideo) {
	if video == nil || video.ID == "" {
		return
	}
	p.Videos = append(p.Videos, video)
}

// Len returns the number of videos in the playlist
func (p *Playlist) Len() int {
	return len(p.Videos)
}
