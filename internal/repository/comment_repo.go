package repository

import (
	"Vega_Tube/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(commentID uint64) (*model.Comment, error)

	// 分页获取一个视频的评论
	ListByVideo(videoID uint64, offset, limit int) ([]model.Comment, error)
	CountByVideo(videoID uint64) (int64, error)

	UpdateContent(commentID uint64, content string) (int64, error)
	Delete(commentID uint64) (int64, error)
	DeleteByVideo(videoID uint64) error

	WithTx(tx *gorm.DB) CommentRepository
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// WithTx 返回一个新的、使用事务的 commentRepository 实例
func (r *commentRepository) WithTx(tx *gorm.DB) CommentRepository {
	return &commentRepository{db: tx}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

// 利用commentID找comment，顺便把Owner结构Preload出来
func (r *commentRepository) FindByID(commentID uint64) (*model.Comment, error) {
	var result model.Comment
	err := r.db.Preload("Owner").First(&result, commentID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *commentRepository) ListByVideo(videoID uint64, offset, limit int) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.
		Preload("Owner"). // 预加载评论作者，一次性把关联信息查出来
		Where("video_id = ?", videoID).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&comments).Error
	return comments, err
}

func (r *commentRepository) CountByVideo(videoID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

func (r *commentRepository) UpdateContent(commentID uint64, content string) (int64, error) {
	result := r.db.Model(&model.Comment{}).Where("id = ?", commentID).Update("content", content)
	return result.RowsAffected, result.Error
}

func (r *commentRepository) Delete(commentID uint64) (int64, error) {
	result := r.db.Delete(&model.Comment{}, commentID)
	return result.RowsAffected, result.Error
}

// 视频被删时级联清理它的评论
func (r *commentRepository) DeleteByVideo(videoID uint64) error {
	return r.db.Where("video_id = ?", videoID).Delete(&model.Comment{}).Error
}
