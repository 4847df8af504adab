package model

// Subscription 是“关注”这条有向边：SubscriberID关注了ChannelID
// 联合唯一索引保证同一对(订阅者,频道)最多一条边，切换订阅就是删边/加边
type Subscription struct {
	BaseModel
	SubscriberID uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel"`
	ChannelID    uint64 `gorm:"not null;uniqueIndex:idx_subscriber_channel;index"`

	Subscriber User `gorm:"foreignKey:SubscriberID"`
	Channel    User `gorm:"foreignKey:ChannelID"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
