package model

// 点赞目标的类型，一条点赞记录只属于video/comment/tweet三者之一
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// Like 是显式的集合成员关系：(UserID, TargetType, TargetID)三元组唯一，
// 靠MySQL的联合唯一索引“自动查重”，一个用户对同一个目标最多点赞一次
// 切换点赞就是删掉这一行（取消）或插入这一行（点赞）
type Like struct {
	BaseModel
	UserID     uint64     `gorm:"not null;uniqueIndex:idx_user_target"`
	TargetType LikeTarget `gorm:"size:16;not null;uniqueIndex:idx_user_target"`
	TargetID   uint64     `gorm:"not null;uniqueIndex:idx_user_target;index:idx_target"`
}

// 表名不符合GORM的复数规则时，要用TableName()方法显式规定
func (Like) TableName() string {
	return "likes"
}
