package repository

import (
	"Vega_Tube/internal/model"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(like *model.Like) error
	// Delete 按(用户,目标)删除点赞行，返回影响行数：>0说明之前点过赞，这次是“取消”
	Delete(userID uint64, targetType model.LikeTarget, targetID uint64) (int64, error)

	CountForTarget(targetType model.LikeTarget, targetID uint64) (int64, error)
	// FindVideosLikedBy 点赞集合和视频表的join，取出一个用户赞过的所有视频（带作者）
	FindVideosLikedBy(userID uint64) ([]model.Video, error)
	// CountVideoLikesByOwner 统计某频道主名下所有视频收到的点赞总数（dashboard用）
	CountVideoLikesByOwner(ownerID uint64) (int64, error)

	DeleteByTarget(targetType model.LikeTarget, targetID uint64) error

	WithTx(tx *gorm.DB) LikeRepository
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 likeRepository 实例
func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

func (r *likeRepository) Create(like *model.Like) error {
	return r.db.Create(like).Error
}

func (r *likeRepository) Delete(userID uint64, targetType model.LikeTarget, targetID uint64) (int64, error) {
	// 必须Unscoped硬删除：软删除的残留行还占着联合唯一索引，会把用户下一次点赞拦在门外
	result := r.db.Unscoped().
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&model.Like{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *likeRepository) CountForTarget(targetType model.LikeTarget, targetID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) FindVideosLikedBy(userID uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.
		Joins("JOIN likes ON likes.target_id = videos.id AND likes.target_type = ?", model.LikeTargetVideo).
		Where("likes.user_id = ?", userID).
		Order("likes.created_at desc").
		Preload("Owner").
		Find(&videos).Error
	return videos, err
}

func (r *likeRepository) CountVideoLikesByOwner(ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Like{}).
		Joins("JOIN videos ON videos.id = likes.target_id").
		Where("likes.target_type = ? AND videos.owner_id = ?", model.LikeTargetVideo, ownerID).
		Count(&count).Error
	return count, err
}

// 视频被删时级联清理它身上的点赞
func (r *likeRepository) DeleteByTarget(targetType model.LikeTarget, targetID uint64) error {
	return r.db.Unscoped().
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Delete(&model.Like{}).Error
}
