package model

// WatchHistory 是用户观看历史的集合：同一个视频看N遍也只有一行（联合唯一索引），
// 排序靠CreatedAt，也就是“第一次观看的时间”，重复观看不会把视频顶到最前面
type WatchHistory struct {
	BaseModel
	UserID  uint64 `gorm:"not null;uniqueIndex:idx_user_video"`
	VideoID uint64 `gorm:"not null;uniqueIndex:idx_user_video"`

	Video Video `gorm:"foreignKey:VideoID"`
}

func (WatchHistory) TableName() string {
	return "watch_histories"
}
