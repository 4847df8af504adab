package repository

import (
	"Vega_Tube/internal/model"

	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(sub *model.Subscription) error
	// Delete 返回影响行数：>0说明这条关注边之前存在，这次切换是“取消关注”
	Delete(subscriberID, channelID uint64) (int64, error)

	CountSubscribers(channelID uint64) (int64, error)
	CountSubscribedTo(subscriberID uint64) (int64, error)
	IsSubscribed(subscriberID, channelID uint64) (bool, error)

	ListSubscribers(channelID uint64) ([]model.User, error)
	ListSubscribedChannels(subscriberID uint64) ([]model.User, error)
}

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *subscriptionRepository) Delete(subscriberID, channelID uint64) (int64, error) {
	// 硬删除，理由同likes：软删除残留会被联合唯一索引拦住下一次关注
	result := r.db.Unscoped().
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Delete(&model.Subscription{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *subscriptionRepository) CountSubscribers(channelID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("channel_id = ?", channelID).Count(&count).Error
	return count, err
}

func (r *subscriptionRepository) CountSubscribedTo(subscriberID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).Where("subscriber_id = ?", subscriberID).Count(&count).Error
	return count, err
}

// 成员测试：当前访问者在不在这个频道的订阅者集合里
func (r *subscriptionRepository) IsSubscribed(subscriberID, channelID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Subscription{}).
		Where("subscriber_id = ? AND channel_id = ?", subscriberID, channelID).
		Count(&count).Error
	return count > 0, err
}

// 某个频道的粉丝列表：subscriptions和users做join，投影成用户记录
func (r *subscriptionRepository) ListSubscribers(channelID uint64) ([]model.User, error) {
	var users []model.User
	err := r.db.Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.subscriber_id = users.id").
		Where("subscriptions.channel_id = ?", channelID).
		Find(&users).Error
	return users, err
}

// 某个用户关注的频道列表
func (r *subscriptionRepository) ListSubscribedChannels(subscriberID uint64) ([]model.User, error) {
	var users []model.User
	err := r.db.Model(&model.User{}).
		Joins("JOIN subscriptions ON subscriptions.channel_id = users.id").
		Where("subscriptions.subscriber_id = ?", subscriberID).
		Find(&users).Error
	return users, err
}
