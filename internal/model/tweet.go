package model

// Tweet 是频道主发的短动态，归属关系创建后不变
type Tweet struct {
	BaseModel
	OwnerID uint64 `gorm:"not null;index"`
	Content string `gorm:"type:text;not null"`

	Owner User `gorm:"foreignKey:OwnerID"`
}

func (Tweet) TableName() string {
	return "tweets"
}
