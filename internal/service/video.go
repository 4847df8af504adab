package service

import (
	"Vega_Tube/internal/data"
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
	"Vega_Tube/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/streadway/amqp"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	QueueView = "vega.view.queue"
)

// ViewMessage 观看事件，消费者进程拿它去持久化观看集合和观看历史
type ViewMessage struct {
	UserID  uint64 `json:"user_id"`
	VideoID uint64 `json:"video_id"`
}

type VideoService interface {
	PublishVideo(ctx context.Context, ownerID uint64, title, description, videoPath, coverPath string) (*model.Video, error)
	GetFeed(limit uint64) ([]model.Video, error)
	// GetVideoByID 读视频详情，顺带发一条观看事件（异步落库，不阻塞读路径）
	GetVideoByID(videoID, viewerID uint64) (*model.Video, error)
	GetMyVideos(ownerID uint64) ([]model.Video, error)
	UpdateVideo(ctx context.Context, videoID, ownerID uint64, title, description, coverPath string) (*model.Video, error)
	DeleteVideo(ctx context.Context, videoID, ownerID uint64) error
	// TogglePublishStatus 翻转发布状态，和内容编辑互相独立
	TogglePublishStatus(videoID, ownerID uint64) (*model.Video, error)
}

type videoService struct {
	sf singleflight.Group

	videoRepo    repository.VideoRepository
	uow          data.UnitOfWork
	media        MediaHost
	rabbitMQConn *amqp.Connection
}

func NewVideoService(videoRepo repository.VideoRepository, uow data.UnitOfWork, media MediaHost, rabbitMQConn *amqp.Connection) VideoService {
	if rabbitMQConn != nil {
		// 队列声明是幂等的，有就不会重复创建
		ch, err := rabbitMQConn.Channel()
		if err != nil {
			panic("无法打开RabbitMQ Channel")
		}
		defer ch.Close()
		if _, err := ch.QueueDeclare(QueueView, true, false, false, false, nil); err != nil {
			panic("无法声明观看事件队列")
		}
	}
	return &videoService{
		videoRepo:    videoRepo,
		uow:          uow,
		media:        media,
		rabbitMQConn: rabbitMQConn,
	}
}

// 发布视频：1、视频文件上传媒体托管 2、ffprobe探测时长 3、封面上传 4、落库
// 本地暂存文件由handler统一defer清理，这里任何一步失败直接往上抛
func (s *videoService) PublishVideo(ctx context.Context, ownerID uint64, title, description, videoPath, coverPath string) (*model.Video, error) {
	videoURL, err := s.media.Upload(ctx, videoPath, "videos")
	if err != nil {
		logger.Log.WithError(err).Error("视频上传失败")
		return nil, errs.ErrUpstream
	}

	duration, err := s.media.ProbeDuration(ctx, videoPath)
	if err != nil {
		// 时长探测失败不值得让整个发布失败，记日志后按0处理
		logger.Log.WithError(err).Warn("视频时长探测失败")
		duration = 0
	}

	coverURL, err := s.media.Upload(ctx, coverPath, "thumbnails")
	if err != nil {
		logger.Log.WithError(err).Error("封面上传失败")
		_ = s.media.Delete(ctx, videoURL)
		return nil, errs.ErrUpstream
	}

	newVideo := &model.Video{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		VideoURL:    videoURL,
		CoverURL:    coverURL,
		Duration:    duration,
		IsPublished: true,
	}
	if err := s.videoRepo.Create(newVideo); err != nil {
		_ = s.media.Delete(ctx, videoURL)
		_ = s.media.Delete(ctx, coverURL)
		return nil, err
	}
	return newVideo, nil
}

// 获取视频Feed流
func (s *videoService) GetFeed(limit uint64) ([]model.Video, error) {
	// 限制limit长度
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.videoRepo.FindLatestPublished(limit)
}

// 根据videoID查找视频：1、查Redis缓存 2、未命中走SingleFlight回源数据库，
// 同一个videoID的并发回源只放一个请求过去，防止缓存击穿 3、发观看事件
func (s *videoService) GetVideoByID(videoID, viewerID uint64) (*model.Video, error) {
	video, err := s.videoRepo.GetVideoCache(videoID)
	if err != nil && err != redis.Nil {
		// 不是缓存未命中，而是Redis本身出错了，记日志后继续走数据库
		logger.Log.WithError(err).Warn("读视频缓存失败")
	}

	if video == nil {
		key := fmt.Sprintf("get_video_%d", videoID)
		result, sfErr, _ := s.sf.Do(key, func() (interface{}, error) {
			return s.videoRepo.FindByID(videoID)
		})
		if sfErr != nil {
			if errors.Is(sfErr, gorm.ErrRecordNotFound) {
				return nil, errs.ErrNotFound
			}
			return nil, sfErr
		}
		// SingleFlight的返回值是interface{}，需要断言回来
		video = result.(*model.Video)
	}

	// 观看事件异步落库：观看集合和观看历史都是集合语义，消费者那边用唯一索引去重
	s.publishViewEvent(ViewMessage{UserID: viewerID, VideoID: videoID})

	return video, nil
}

// 发送消息到RabbitMQ：1、创建一次性channel 2、序列化消息 3、发布
// 观看事件丢了就丢了，只记日志，不能让读接口因为MQ抖动而失败
func (s *videoService) publishViewEvent(msg ViewMessage) {
	if s.rabbitMQConn == nil {
		return
	}
	ch, err := s.rabbitMQConn.Channel()
	if err != nil {
		logger.Log.WithError(err).Warn("观看事件Channel创建失败")
		return
	}
	defer ch.Close()

	body, err := json.Marshal(msg)
	if err != nil {
		logger.Log.WithError(err).Warn("观看事件序列化失败")
		return
	}

	if err := ch.Publish("", QueueView, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	}); err != nil {
		logger.Log.WithError(err).Warn("观看事件发布失败")
	}
}

func (s *videoService) GetMyVideos(ownerID uint64) ([]model.Video, error) {
	return s.videoRepo.FindByOwner(ownerID, 50)
}

// findOwned 查视频并校验归属。不是自己的视频统一按“不存在”处理，不泄露资源存在性
func (s *videoService) findOwned(videoID, ownerID uint64) (*model.Video, error) {
	video, err := s.videoRepo.FindByID(videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if video.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	return video, nil
}

// 更新视频：只允许改标题、简介和封面，视频本体不可替换
func (s *videoService) UpdateVideo(ctx context.Context, videoID, ownerID uint64, title, description, coverPath string) (*model.Video, error) {
	video, err := s.findOwned(videoID, ownerID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if title != "" {
		fields["title"] = title
	}
	if description != "" {
		fields["description"] = description
	}
	if coverPath != "" {
		newCover, err := s.media.Upload(ctx, coverPath, "thumbnails")
		if err != nil {
			logger.Log.WithError(err).Error("封面上传失败")
			return nil, errs.ErrUpstream
		}
		fields["cover_url"] = newCover
		if err := s.media.Delete(ctx, video.CoverURL); err != nil {
			logger.Log.WithError(err).Warn("旧封面清理失败")
		}
	}
	if len(fields) == 0 {
		return nil, errs.ErrValidation
	}

	if _, err := s.videoRepo.UpdateFields(videoID, fields); err != nil {
		return nil, err
	}
	return s.videoRepo.FindByID(videoID)
}

// 删除视频：级联清理必须原子——点赞、评论、播放列表成员、观看集合/历史和视频本体
// 要么一起删掉要么都留着，不能出现指向已删视频的悬空引用
func (s *videoService) DeleteVideo(ctx context.Context, videoID, ownerID uint64) error {
	video, err := s.findOwned(videoID, ownerID)
	if err != nil {
		return err
	}

	err = s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if err := repos.LikeRepo.DeleteByTarget(model.LikeTargetVideo, videoID); err != nil {
			return err
		}
		if err := repos.CommentRepo.DeleteByVideo(videoID); err != nil {
			return err
		}
		if err := repos.PlaylistRepo.RemoveVideoFromAll(videoID); err != nil {
			return err
		}
		if err := repos.HistoryRepo.DeleteByVideo(videoID); err != nil {
			return err
		}
		_, err := repos.VideoRepo.Delete(videoID)
		return err
	})
	if err != nil {
		return err
	}
	_ = s.videoRepo.InvalidateVideoCache(videoID)

	// 媒体资源是外部系统，删不掉不回滚数据库，尽力而为+日志
	if err := s.media.Delete(ctx, video.VideoURL); err != nil {
		logger.Log.WithError(err).Warn("视频媒体资源清理失败")
	}
	if err := s.media.Delete(ctx, video.CoverURL); err != nil {
		logger.Log.WithError(err).Warn("封面媒体资源清理失败")
	}
	return nil
}

func (s *videoService) TogglePublishStatus(videoID, ownerID uint64) (*model.Video, error) {
	if _, err := s.findOwned(videoID, ownerID); err != nil {
		return nil, err
	}
	if _, err := s.videoRepo.TogglePublished(videoID); err != nil {
		return nil, err
	}
	return s.videoRepo.FindByID(videoID)
}
