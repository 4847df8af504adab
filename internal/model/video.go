package model

// Video的归属关系在创建时确定，OwnerID之后不再变更
// LikeCount和ViewCount是冗余计数，真实数据分别在likes表和video_views表里，
// 计数的增减和边表的插入/删除放在同一个事务中，保证两边一致
type Video struct {
	BaseModel
	OwnerID     uint64 `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`

	VideoURL string `gorm:"not null"` // 媒体托管服务返回的视频播放地址
	CoverURL string `gorm:"not null"` // 封面图地址
	Duration float64

	// 发布状态独立于内容编辑，单独一个接口翻转
	IsPublished bool   `gorm:"default:false"`
	LikeCount   uint64 `gorm:"default:0"`
	ViewCount   uint64 `gorm:"default:0"` // 去重后的观看人数，不是播放次数

	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}

// VideoView 记录“哪些用户看过这个视频”，联合唯一索引让同一个用户重复观看只留一行，
// 这样count(*)天然就是去重观看人数
type VideoView struct {
	BaseModel
	VideoID  uint64 `gorm:"not null;uniqueIndex:idx_video_viewer"`
	ViewerID uint64 `gorm:"not null;uniqueIndex:idx_video_viewer"`
}

func (VideoView) TableName() string {
	return "video_views"
}
