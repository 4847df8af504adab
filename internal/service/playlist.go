package service

import (
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type PlaylistService interface {
	CreatePlaylist(ownerID uint64, name, description string) (*model.Playlist, error)
	GetUserPlaylists(ownerID uint64) ([]model.Playlist, error)
	GetPlaylistByID(playlistID uint64) (*model.Playlist, error)
	UpdatePlaylist(playlistID, ownerID uint64, name, description string) (*model.Playlist, error)
	DeletePlaylist(playlistID, ownerID uint64) error
	AddVideoToPlaylist(playlistID, videoID, ownerID uint64) (*model.Playlist, error)
	RemoveVideoFromPlaylist(playlistID, videoID, ownerID uint64) (*model.Playlist, error)
}

type playlistService struct {
	playlistRepo repository.PlaylistRepository
	videoRepo    repository.VideoRepository
}

func NewPlaylistService(playlistRepo repository.PlaylistRepository, videoRepo repository.VideoRepository) PlaylistService {
	return &playlistService{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
	}
}

func (s *playlistService) CreatePlaylist(ownerID uint64, name, description string) (*model.Playlist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errs.ErrValidation
	}
	newPlaylist := &model.Playlist{
		OwnerID:     ownerID,
		Name:        name,
		Description: description,
	}
	if err := s.playlistRepo.Create(newPlaylist); err != nil {
		return nil, err
	}
	return s.playlistRepo.FindByID(newPlaylist.ID)
}

func (s *playlistService) GetUserPlaylists(ownerID uint64) ([]model.Playlist, error) {
	return s.playlistRepo.ListByOwner(ownerID)
}

func (s *playlistService) GetPlaylistByID(playlistID uint64) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.FindByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return playlist, nil
}

func (s *playlistService) findOwned(playlistID, ownerID uint64) (*model.Playlist, error) {
	playlist, err := s.GetPlaylistByID(playlistID)
	if err != nil {
		return nil, err
	}
	if playlist.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	return playlist, nil
}

func (s *playlistService) UpdatePlaylist(playlistID, ownerID uint64, name, description string) (*model.Playlist, error) {
	if _, err := s.findOwned(playlistID, ownerID); err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if strings.TrimSpace(name) != "" {
		fields["name"] = name
	}
	if description != "" {
		fields["description"] = description
	}
	if len(fields) == 0 {
		return nil, errs.ErrValidation
	}
	if _, err := s.playlistRepo.UpdateFields(playlistID, fields); err != nil {
		return nil, err
	}
	return s.playlistRepo.FindByID(playlistID)
}

func (s *playlistService) DeletePlaylist(playlistID, ownerID uint64) error {
	if _, err := s.findOwned(playlistID, ownerID); err != nil {
		return err
	}
	_, err := s.playlistRepo.Delete(playlistID)
	return err
}

// 收藏视频到列表：1、确认列表是自己的 2、确认视频存在 3、查重，已在列表里就报冲突
func (s *playlistService) AddVideoToPlaylist(playlistID, videoID, ownerID uint64) (*model.Playlist, error) {
	if _, err := s.findOwned(playlistID, ownerID); err != nil {
		return nil, err
	}
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	exists, err := s.playlistRepo.HasVideo(playlistID, videoID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errs.ErrAlreadyExists
	}
	if err := s.playlistRepo.AddVideo(playlistID, videoID); err != nil {
		// 并发下查重可能恰好擦肩而过，靠联合主键兜底
		if isDuplicateKeyErr(err) {
			return nil, errs.ErrAlreadyExists
		}
		return nil, err
	}
	return s.playlistRepo.FindByID(playlistID)
}

func (s *playlistService) RemoveVideoFromPlaylist(playlistID, videoID, ownerID uint64) (*model.Playlist, error) {
	if _, err := s.findOwned(playlistID, ownerID); err != nil {
		return nil, err
	}
	rows, err := s.playlistRepo.RemoveVideo(playlistID, videoID)
	if err != nil {
		return nil, err
	}
	// 本来就不在列表里，移除无从谈起
	if rows == 0 {
		return nil, errs.ErrValidation
	}
	return s.playlistRepo.FindByID(playlistID)
}
