package dto

import (
	"Vega_Tube/internal/model"
	"time"
)

// UserSummary 是嵌套在其他资源里的作者摘要投影，只暴露展示用的三个字段
type UserSummary struct {
	FullName string `json:"fullname"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func ToUserSummary(u *model.User) UserSummary {
	return UserSummary{
		FullName: u.FullName,
		Username: u.Username,
		Avatar:   u.AvatarURL,
	}
}

// UserResponse 是对外的完整用户资料，密码哈希和refresh token在模型上就是json:"-"，
// 这里再用白名单转换兜一层底
type UserResponse struct {
	ID         uint64    `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"fullname"`
	Avatar     string    `json:"avatar"`
	CoverImage string    `json:"cover_image"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Email:      u.Email,
		FullName:   u.FullName,
		Avatar:     u.AvatarURL,
		CoverImage: u.CoverURL,
		CreatedAt:  u.CreatedAt,
	}
}

func ToUserResponses(users []model.User) []UserResponse {
	response := make([]UserResponse, 0, len(users))
	for i := range users {
		response = append(response, ToUserResponse(&users[i]))
	}
	return response
}

// ChannelProfileResponse 是频道主页的读模型：用户资料+订阅图谱上的派生数据
type ChannelProfileResponse struct {
	UserResponse
	SubscriberCount   int64 `json:"subscribers_count"`
	SubscribedToCount int64 `json:"channels_subscribed_to_count"`
	IsSubscribed      bool  `json:"is_subscribed"`
}

// TokenPairResponse 登录和刷新接口返回的一对令牌
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
