package repository

import (
	"Vega_Tube/internal/model"

	"gorm.io/gorm"
)

type PlaylistRepository interface {
	Create(playlist *model.Playlist) error
	FindByID(playlistID uint64) (*model.Playlist, error)
	ListByOwner(ownerID uint64) ([]model.Playlist, error)
	UpdateFields(playlistID uint64, fields map[string]interface{}) (int64, error)
	Delete(playlistID uint64) (int64, error)

	// 播放列表的视频成员集合：加入靠联合主键查重，移出按行数判断之前在不在
	AddVideo(playlistID, videoID uint64) error
	RemoveVideo(playlistID, videoID uint64) (int64, error)
	HasVideo(playlistID, videoID uint64) (bool, error)
	// RemoveVideoFromAll 视频被删时，把它从所有播放列表里摘掉
	RemoveVideoFromAll(videoID uint64) error

	WithTx(tx *gorm.DB) PlaylistRepository
}

type playlistRepository struct {
	db *gorm.DB
}

func NewPlaylistRepository(db *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 playlistRepository 实例
func (r *playlistRepository) WithTx(tx *gorm.DB) PlaylistRepository {
	return &playlistRepository{db: tx}
}

func (r *playlistRepository) Create(playlist *model.Playlist) error {
	return r.db.Create(playlist).Error
}

func (r *playlistRepository) FindByID(playlistID uint64) (*model.Playlist, error) {
	var result model.Playlist
	err := r.db.Preload("Videos").First(&result, playlistID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *playlistRepository) ListByOwner(ownerID uint64) ([]model.Playlist, error) {
	var playlists []model.Playlist
	err := r.db.Preload("Videos").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Find(&playlists).Error
	return playlists, err
}

func (r *playlistRepository) UpdateFields(playlistID uint64, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(&model.Playlist{}).Where("id = ?", playlistID).Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *playlistRepository) Delete(playlistID uint64) (int64, error) {
	// 先清成员关系再删列表本体
	if err := r.db.Where("playlist_id = ?", playlistID).Delete(&model.PlaylistVideo{}).Error; err != nil {
		return 0, err
	}
	result := r.db.Delete(&model.Playlist{}, playlistID)
	return result.RowsAffected, result.Error
}

func (r *playlistRepository) AddVideo(playlistID, videoID uint64) error {
	return r.db.Create(&model.PlaylistVideo{PlaylistID: playlistID, VideoID: videoID}).Error
}

func (r *playlistRepository) RemoveVideo(playlistID, videoID uint64) (int64, error) {
	result := r.db.Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Delete(&model.PlaylistVideo{})
	return result.RowsAffected, result.Error
}

func (r *playlistRepository) HasVideo(playlistID, videoID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ? AND video_id = ?", playlistID, videoID).
		Count(&count).Error
	return count > 0, err
}

func (r *playlistRepository) RemoveVideoFromAll(videoID uint64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.PlaylistVideo{}).Error
}
