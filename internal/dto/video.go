package dto

import (
	"Vega_Tube/internal/model"
	"time"
)

type VideoResponse struct {
	ID          uint64    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	CoverURL    string    `json:"cover_url"`
	Duration    float64   `json:"duration"`
	IsPublished bool      `json:"is_published"`
	LikeCount   uint64    `json:"like_count"`
	// 去重后的观看人数，不是播放次数
	ViewCount uint64      `json:"view_count"`
	Owner     UserSummary `json:"owner"`
}

// ToVideoResponse 把DB模型转换为API响应模型，并正确利用Preload返回的数据
func ToVideoResponse(video *model.Video) VideoResponse {
	resp := VideoResponse{
		ID:          video.ID,
		CreatedAt:   video.CreatedAt,
		Title:       video.Title,
		Description: video.Description,
		VideoURL:    video.VideoURL,
		CoverURL:    video.CoverURL,
		Duration:    video.Duration,
		IsPublished: video.IsPublished,
		LikeCount:   video.LikeCount,
		ViewCount:   video.ViewCount,
	}
	// 检查Owner是否被成功Preload，没有就只能留空摘要
	if video.Owner.ID != 0 {
		resp.Owner = ToUserSummary(&video.Owner)
	}
	return resp
}

func ToVideoResponses(videos []model.Video) []VideoResponse {
	response := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		response = append(response, ToVideoResponse(&videos[i]))
	}
	return response
}

// WatchHistoryItem 是观看历史条目：视频信息+打平成单个对象的作者摘要
// （聚合管道里“取数组第一个元素”的展平语义，这里由join+单对象投影天然保证）
type WatchHistoryItem struct {
	WatchedAt time.Time     `json:"watched_at"`
	Video     VideoResponse `json:"video"`
}

func ToWatchHistoryItems(entries []model.WatchHistory) []WatchHistoryItem {
	items := make([]WatchHistoryItem, 0, len(entries))
	for i := range entries {
		items = append(items, WatchHistoryItem{
			WatchedAt: entries[i].CreatedAt,
			Video:     ToVideoResponse(&entries[i].Video),
		})
	}
	return items
}
