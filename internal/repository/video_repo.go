package repository

import (
	"Vega_Tube/internal/model"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(video *model.Video) error
	FindByID(videoID uint64) (*model.Video, error)
	FindLatestPublished(limit uint64) ([]model.Video, error)
	FindByOwner(ownerID uint64, limit int) ([]model.Video, error)
	UpdateFields(videoID uint64, fields map[string]interface{}) (int64, error)
	Delete(videoID uint64) (int64, error)
	// TogglePublished 用一条UPDATE把is_published取反，天然原子，不需要先读后写
	TogglePublished(videoID uint64) (int64, error)

	IncrementLikeCount(videoID uint64) error
	DecrementLikeCount(videoID uint64) error
	IncrementViewCount(videoID uint64) error

	CountByOwner(ownerID uint64) (int64, error)
	SumViewsByOwner(ownerID uint64) (int64, error)

	GetVideoCache(videoID uint64) (*model.Video, error)
	SetVideoCache(video *model.Video) error
	InvalidateVideoCache(videoID uint64) error

	WithTx(tx *gorm.DB) VideoRepository
}

type videoRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewVideoRepository(db *gorm.DB, rdb *redis.Client) VideoRepository {
	return &videoRepository{
		db:  db,
		rdb: rdb,
	}
}

// WithTx 返回一个新的、使用事务的 videoRepository 实例。事务中不操作Redis
func (r *videoRepository) WithTx(tx *gorm.DB) VideoRepository {
	return &videoRepository{
		db: tx,
	}
}

func (r *videoRepository) Create(video *model.Video) error {
	return r.db.Create(video).Error
}

// 利用videoID找视频，Preload出其中的Owner结构。先查缓存，未命中再查库并回填
func (r *videoRepository) FindByID(videoID uint64) (*model.Video, error) {
	video, err := r.GetVideoCache(videoID)
	if err == nil && video != nil {
		// 缓存命中，直接返回
		return video, nil
	}

	var dbVideo model.Video
	err = r.db.Preload("Owner").First(&dbVideo, videoID).Error
	if err != nil {
		return nil, err // 数据库也没找到，就真的没有了
	}

	// 读到数据后写回缓存，方便下次读取
	_ = r.SetVideoCache(&dbVideo)

	return &dbVideo, nil
}

// 按时间倒序查询最新的已发布视频，Feed流只出已发布的
func (r *videoRepository) FindLatestPublished(limit uint64) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Preload("Owner").
		Where("is_published = ?", true).
		Order("created_at desc").
		Limit(int(limit)).
		Find(&videos).Error
	if err != nil {
		return nil, err
	}
	return videos, nil
}

// 频道主自己的内容列表，未发布的也要出
func (r *videoRepository) FindByOwner(ownerID uint64, limit int) ([]model.Video, error) {
	var videos []model.Video
	err := r.db.Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Limit(limit).
		Find(&videos).Error
	return videos, err
}

func (r *videoRepository) UpdateFields(videoID uint64, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(&model.Video{}).Where("id = ?", videoID).Updates(fields)
	if result.Error != nil {
		return 0, result.Error
	}
	_ = r.InvalidateVideoCache(videoID)
	return result.RowsAffected, nil
}

func (r *videoRepository) Delete(videoID uint64) (int64, error) {
	result := r.db.Delete(&model.Video{}, videoID)
	if result.Error != nil {
		return 0, result.Error
	}
	_ = r.InvalidateVideoCache(videoID)
	return result.RowsAffected, nil
}

func (r *videoRepository) TogglePublished(videoID uint64) (int64, error) {
	// UPDATE videos SET is_published = NOT is_published WHERE id = ?
	result := r.db.Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("is_published", gorm.Expr("NOT is_published"))
	if result.Error != nil {
		return 0, result.Error
	}
	_ = r.InvalidateVideoCache(videoID)
	return result.RowsAffected, nil
}

func (r *videoRepository) IncrementLikeCount(videoID uint64) error {
	// 用gorm表达式做原子自增：UPDATE videos SET like_count = like_count + 1 WHERE id = ?
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error
}

func (r *videoRepository) DecrementLikeCount(videoID uint64) error {
	// like_count > 0的条件防止并发下减出负数
	return r.db.Model(&model.Video{}).Where("id = ? AND like_count > 0", videoID).
		UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
}

func (r *videoRepository) IncrementViewCount(videoID uint64) error {
	return r.db.Model(&model.Video{}).Where("id = ?", videoID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *videoRepository) CountByOwner(ownerID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, err
}

// 频道总观看数 = 该频道所有视频去重观看人数之和
func (r *videoRepository) SumViewsByOwner(ownerID uint64) (int64, error) {
	var total int64
	err := r.db.Model(&model.Video{}).Where("owner_id = ?", ownerID).
		Select("COALESCE(SUM(view_count), 0)").Scan(&total).Error
	return total, err
}

// 返回存储单个视频信息的字符串Key
func (r *videoRepository) keyVideoInfo(videoID uint64) string {
	return fmt.Sprintf("video:info:%d", videoID)
}

// 从Redis缓存中获取单个Video信息：1、利用VideoID组装key 2、拿key去rdb中取JSON 3、反序列化
func (r *videoRepository) GetVideoCache(videoID uint64) (*model.Video, error) {
	if r.rdb == nil {
		return nil, nil
	}
	key := r.keyVideoInfo(videoID)
	videoJSON, err := r.rdb.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return nil, nil // 缓存不存在，但Redis正常工作
	} else if err != nil {
		return nil, err // Redis本身出错了
	}
	var video model.Video
	if err := json.Unmarshal([]byte(videoJSON), &video); err != nil {
		return nil, err
	}
	return &video, nil
}

// 将单个视频信息存入Redis缓存，过期时间加随机抖动防止缓存雪崩
func (r *videoRepository) SetVideoCache(video *model.Video) error {
	if r.rdb == nil {
		return nil
	}
	key := r.keyVideoInfo(video.ID)
	videoJSON, err := json.Marshal(video)
	if err != nil {
		return err
	}
	expiration := time.Minute*5 + time.Duration(rand.Intn(60))*time.Second
	return r.rdb.Set(context.Background(), key, videoJSON, expiration).Err()
}

// 写库之后删缓存，宁可多一次回源也不能让用户看到旧数据
func (r *videoRepository) InvalidateVideoCache(videoID uint64) error {
	if r.rdb == nil {
		return nil
	}
	return r.rdb.Del(context.Background(), r.keyVideoInfo(videoID)).Err()
}
