package model

type Comment struct {
	BaseModel
	VideoID uint64 `gorm:"not null;index"` // index加速“查某个视频的全部评论”
	OwnerID uint64 `gorm:"not null;index"`
	// TEXT是MySQL专门存长文本的类型，最大65,535个字符
	Content string `gorm:"type:text;not null"`

	Owner User `gorm:"foreignKey:OwnerID"`
}

func (Comment) TableName() string {
	return "comments"
}
