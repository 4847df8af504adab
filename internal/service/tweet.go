package service

import (
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
	"Vega_Tube/pkg/logger"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type TweetService interface {
	CreateTweet(ownerID uint64, content string) (*model.Tweet, error)
	GetUserTweets(userID uint64) ([]model.Tweet, error)
	UpdateTweet(tweetID, ownerID uint64, content string) (*model.Tweet, error)
	DeleteTweet(tweetID, ownerID uint64) error
}

type tweetService struct {
	tweetRepo repository.TweetRepository
	userRepo  repository.UserRepository
	likeRepo  repository.LikeRepository
}

func NewTweetService(tweetRepo repository.TweetRepository, userRepo repository.UserRepository, likeRepo repository.LikeRepository) TweetService {
	return &tweetService{
		tweetRepo: tweetRepo,
		userRepo:  userRepo,
		likeRepo:  likeRepo,
	}
}

func (s *tweetService) CreateTweet(ownerID uint64, content string) (*model.Tweet, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errs.ErrValidation
	}
	newTweet := &model.Tweet{
		OwnerID: ownerID,
		Content: content,
	}
	if err := s.tweetRepo.Create(newTweet); err != nil {
		return nil, err
	}
	return s.tweetRepo.FindByID(newTweet.ID)
}

// 查某个用户的动态列表，用户不存在时直接报404而不是返回空列表
func (s *tweetService) GetUserTweets(userID uint64) ([]model.Tweet, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return s.tweetRepo.ListByOwner(userID)
}

func (s *tweetService) findOwned(tweetID, ownerID uint64) (*model.Tweet, error) {
	tweet, err := s.tweetRepo.FindByID(tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	// 动态不是自己的，按不存在处理
	if tweet.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	return tweet, nil
}

func (s *tweetService) UpdateTweet(tweetID, ownerID uint64, content string) (*model.Tweet, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errs.ErrValidation
	}
	if _, err := s.findOwned(tweetID, ownerID); err != nil {
		return nil, err
	}
	if _, err := s.tweetRepo.UpdateContent(tweetID, content); err != nil {
		return nil, err
	}
	return s.tweetRepo.FindByID(tweetID)
}

func (s *tweetService) DeleteTweet(tweetID, ownerID uint64) error {
	if _, err := s.findOwned(tweetID, ownerID); err != nil {
		return err
	}
	if _, err := s.tweetRepo.Delete(tweetID); err != nil {
		return err
	}
	// 动态已删，残留的点赞行尽力清理，失败只记日志
	if err := s.likeRepo.DeleteByTarget(model.LikeTargetTweet, tweetID); err != nil {
		logger.Log.WithError(err).WithField("tweetID", tweetID).Warn("清理动态点赞记录失败")
	}
	return nil
}
