package service

import (
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
	"errors"

	"gorm.io/gorm"
)

type SubscriptionService interface {
	// Toggle 切换关注关系，返回切换后的状态：true=本次关注了，false=本次取消了
	Toggle(subscriberID, channelID uint64) (bool, error)
	GetSubscribers(channelID uint64) ([]model.User, error)
	GetSubscribedChannels(subscriberID uint64) ([]model.User, error)
}

type subscriptionService struct {
	subRepo  repository.SubscriptionRepository
	userRepo repository.UserRepository
}

func NewSubscriptionService(subRepo repository.SubscriptionRepository, userRepo repository.UserRepository) SubscriptionService {
	return &subscriptionService{
		subRepo:  subRepo,
		userRepo: userRepo,
	}
}

// 切换关注：1、不允许关注自己 2、确认频道主存在 3、先删边，删到了就是取关
// 4、没删到就加边，联合唯一索引挡住并发下的重复关注
// 删边/加边各自都是一条原子语句，没有先查后写的竞态
func (s *subscriptionService) Toggle(subscriberID, channelID uint64) (bool, error) {
	if subscriberID == channelID {
		return false, errs.ErrValidation
	}
	if _, err := s.userRepo.FindByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.ErrNotFound
		}
		return false, err
	}

	rows, err := s.subRepo.Delete(subscriberID, channelID)
	if err != nil {
		return false, err
	}
	if rows > 0 {
		return false, nil
	}

	if err := s.subRepo.Create(&model.Subscription{
		SubscriberID: subscriberID,
		ChannelID:    channelID,
	}); err != nil {
		if isDuplicateKeyErr(err) {
			// 并发的另一次切换抢先加了边，当作本次关注已生效
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (s *subscriptionService) GetSubscribers(channelID uint64) ([]model.User, error) {
	return s.subRepo.ListSubscribers(channelID)
}

func (s *subscriptionService) GetSubscribedChannels(subscriberID uint64) ([]model.User, error) {
	return s.subRepo.ListSubscribedChannels(subscriberID)
}
