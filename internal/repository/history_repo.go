package repository

import (
	"Vega_Tube/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HistoryRepository interface {
	// RecordView 把观看者插入视频的观看集合，返回是否首次观看
	// OnConflict DoNothing就是MySQL版的$addToSet：重复观看不报错、不新增行
	RecordView(videoID, viewerID uint64) (bool, error)
	// AddToHistory 把视频加入用户的观看历史集合，重复观看不产生重复条目
	AddToHistory(userID, videoID uint64) error

	// ListByUser 观看历史和视频表、用户表三方join：每个条目带完整视频信息和作者摘要
	ListByUser(userID uint64) ([]model.WatchHistory, error)

	DeleteByVideo(videoID uint64) error

	WithTx(tx *gorm.DB) HistoryRepository
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 historyRepository 实例
func (r *historyRepository) WithTx(tx *gorm.DB) HistoryRepository {
	return &historyRepository{db: tx}
}

func (r *historyRepository) RecordView(videoID, viewerID uint64) (bool, error) {
	view := &model.VideoView{VideoID: videoID, ViewerID: viewerID}
	// 尝试插入，如果因为唯一键冲突失败，就什么都不做
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "video_id"}, {Name: "viewer_id"}},
		DoNothing: true,
	}).Create(view)
	if result.Error != nil {
		return false, result.Error
	}
	// RowsAffected==1说明真插进去了，是首次观看；0说明集合里本来就有
	return result.RowsAffected > 0, nil
}

func (r *historyRepository) AddToHistory(userID, videoID uint64) error {
	entry := &model.WatchHistory{UserID: userID, VideoID: videoID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoNothing: true,
	}).Create(entry).Error
}

func (r *historyRepository) ListByUser(userID uint64) ([]model.WatchHistory, error) {
	var entries []model.WatchHistory
	err := r.db.
		Preload("Video").
		Preload("Video.Owner").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&entries).Error
	return entries, err
}

func (r *historyRepository) DeleteByVideo(videoID uint64) error {
	if err := r.db.Unscoped().Where("video_id = ?", videoID).Delete(&model.WatchHistory{}).Error; err != nil {
		return err
	}
	return r.db.Unscoped().Where("video_id = ?", videoID).Delete(&model.VideoView{}).Error
}
