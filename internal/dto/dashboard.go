package dto

// ChannelStatsResponse 频道后台的统计读模型
type ChannelStatsResponse struct {
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalVideos      int64 `json:"total_videos"`
	TotalLikes       int64 `json:"total_likes"`
	TotalViews       int64 `json:"total_views"`
}
