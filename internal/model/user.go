package model

// User 是身份记录。Username入库前统一转小写，和Email一起由MySQL的唯一索引保证不重复
// Password只存bcrypt哈希；RefreshToken是唯一一份会话状态，同一时间只有一个有效会话，
// 登录/登出/轮换时由token签发方和会话轮换方写入，其他任何地方都不允许碰它
type User struct {
	BaseModel
	Username string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email    string `gorm:"uniqueIndex;size:128;not null" json:"email"`
	FullName string `gorm:"size:128;not null" json:"fullname"`
	// json:"-"确保密码哈希和刷新令牌永远不会被序列化进任何响应
	Password     string  `gorm:"not null" json:"-"`
	RefreshToken *string `json:"-"`

	AvatarURL string `json:"avatar"`
	CoverURL  string `json:"cover_image"`
}
