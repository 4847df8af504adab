package service

import (
	"Vega_Tube/internal/data"
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
	"Vega_Tube/pkg/logger"
	"context"
	"errors"
	"strconv"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	// 遵循：项目名.业务领域.实体/功能
	keyVideoLikeCountHash = "video:like_counts"
	keyVideoLikersSet     = "video:likers"
)

// 点赞服务：video/comment/tweet三种目标共用一套切换逻辑
type LikeService interface {
	// Toggle 切换点赞状态，返回切换后的状态：true=本次是“点赞”，false=本次是“取消”
	// 每次调用严格翻转一次，连续调两次回到原状态
	ToggleVideoLike(userID, videoID uint64) (bool, error)
	ToggleCommentLike(userID, commentID uint64) (bool, error)
	ToggleTweetLike(userID, tweetID uint64) (bool, error)

	GetLikeCount(targetType model.LikeTarget, targetID uint64) (int64, error)
	GetLikedVideos(userID uint64) ([]model.Video, error)
}

type likeService struct {
	likeRepo    repository.LikeRepository
	videoRepo   repository.VideoRepository
	commentRepo repository.CommentRepository
	tweetRepo   repository.TweetRepository
	uow         data.UnitOfWork

	rdb *redis.Client
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	videoRepo repository.VideoRepository,
	commentRepo repository.CommentRepository,
	tweetRepo repository.TweetRepository,
	uow data.UnitOfWork,
	rdb *redis.Client,
) LikeService {
	return &likeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
		uow:         uow,
		rdb:         rdb,
	}
}

func (s *likeService) ToggleVideoLike(userID, videoID uint64) (bool, error) {
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.ErrNotFound
		}
		return false, err
	}
	liked, err := s.toggle(userID, model.LikeTargetVideo, videoID)
	if err != nil {
		return false, err
	}
	// MySQL是点赞数据的唯一真相，Redis里的点赞者集合只是给读路径用的镜像，
	// 写失败只记日志，不能反过来拖垮切换操作
	s.mirrorVideoLike(videoID, userID, liked)
	return liked, nil
}

func (s *likeService) ToggleCommentLike(userID, commentID uint64) (bool, error) {
	if _, err := s.commentRepo.FindByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.ErrNotFound
		}
		return false, err
	}
	return s.toggle(userID, model.LikeTargetComment, commentID)
}

func (s *likeService) ToggleTweetLike(userID, tweetID uint64) (bool, error) {
	if _, err := s.tweetRepo.FindByID(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.ErrNotFound
		}
		return false, err
	}
	return s.toggle(userID, model.LikeTargetTweet, tweetID)
}

// toggle 在一个事务里完成状态翻转：
// 1、先按(用户,目标)删行，删到了就说明之前是“已点赞”，本次是取消
// 2、没删到就插入一行，联合唯一索引替我们挡住并发下的重复插入
// 3、目标是视频时，冗余的like_count在同一个事务里增减，保证和likes表一致
// 整个翻转就是一次原子的条件更新，没有先读后写的竞态窗口
func (s *likeService) toggle(userID uint64, targetType model.LikeTarget, targetID uint64) (bool, error) {
	var liked bool
	err := s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		rows, err := repos.LikeRepo.Delete(userID, targetType, targetID)
		if err != nil {
			return err
		}
		if rows > 0 {
			liked = false
			if targetType == model.LikeTargetVideo {
				return repos.VideoRepo.DecrementLikeCount(targetID)
			}
			return nil
		}

		if err := repos.LikeRepo.Create(&model.Like{
			UserID:     userID,
			TargetType: targetType,
			TargetID:   targetID,
		}); err != nil {
			if isDuplicateKeyErr(err) {
				// 并发的另一次切换抢先插入了，当作本次点赞已生效，计数不再加
				liked = true
				return nil
			}
			return err
		}
		liked = true
		if targetType == model.LikeTargetVideo {
			return repos.VideoRepo.IncrementLikeCount(targetID)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return liked, nil
}

// 把切换结果同步进Redis镜像：点赞者集合+计数哈希，Pipeline打包发送
func (s *likeService) mirrorVideoLike(videoID, userID uint64, liked bool) {
	if s.rdb == nil {
		return
	}
	videoIDStr := strconv.FormatUint(videoID, 10)
	userIDStr := strconv.FormatUint(userID, 10)

	pipe := s.rdb.Pipeline()
	if liked {
		pipe.SAdd(context.Background(), keyVideoLikersSet+":"+videoIDStr, userIDStr)
		pipe.HIncrBy(context.Background(), keyVideoLikeCountHash, videoIDStr, 1)
	} else {
		pipe.SRem(context.Background(), keyVideoLikersSet+":"+videoIDStr, userIDStr)
		pipe.HIncrBy(context.Background(), keyVideoLikeCountHash, videoIDStr, -1)
	}
	if _, err := pipe.Exec(context.Background()); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Warn("Redis点赞镜像同步失败")
	}
}

func (s *likeService) GetLikeCount(targetType model.LikeTarget, targetID uint64) (int64, error) {
	return s.likeRepo.CountForTarget(targetType, targetID)
}

func (s *likeService) GetLikedVideos(userID uint64) ([]model.Video, error) {
	return s.likeRepo.FindVideosLikedBy(userID)
}
