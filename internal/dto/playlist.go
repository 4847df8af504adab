package dto

import (
	"Vega_Tube/internal/model"
	"time"
)

// PlaylistVideoItem 是播放列表里视频的缩略投影
type PlaylistVideoItem struct {
	ID       uint64 `json:"id"`
	Title    string `json:"title"`
	CoverURL string `json:"cover_url"`
}

type PlaylistResponse struct {
	ID          uint64              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	CreatedAt   time.Time           `json:"created_at"`
	Videos      []PlaylistVideoItem `json:"videos"`
}

func ToPlaylistResponse(playlist *model.Playlist) PlaylistResponse {
	videos := make([]PlaylistVideoItem, 0, len(playlist.Videos))
	for i := range playlist.Videos {
		videos = append(videos, PlaylistVideoItem{
			ID:       playlist.Videos[i].ID,
			Title:    playlist.Videos[i].Title,
			CoverURL: playlist.Videos[i].CoverURL,
		})
	}
	return PlaylistResponse{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		CreatedAt:   playlist.CreatedAt,
		Videos:      videos,
	}
}

func ToPlaylistResponses(playlists []model.Playlist) []PlaylistResponse {
	response := make([]PlaylistResponse, 0, len(playlists))
	for i := range playlists {
		response = append(response, ToPlaylistResponse(&playlists[i]))
	}
	return response
}
