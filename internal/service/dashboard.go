package service

import (
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
)

// ChannelStats 创作者后台的汇总数字，四个数分别来自四张表的聚合
type ChannelStats struct {
	TotalSubscribers int64 `json:"total_subscribers"`
	TotalVideos      int64 `json:"total_videos"`
	TotalLikes       int64 `json:"total_likes"`
	TotalViews       int64 `json:"total_views"`
}

type DashboardService interface {
	GetChannelStats(channelID uint64) (*ChannelStats, error)
	GetChannelVideos(channelID uint64) ([]model.Video, error)
}

type dashboardService struct {
	videoRepo repository.VideoRepository
	likeRepo  repository.LikeRepository
	subRepo   repository.SubscriptionRepository
}

func NewDashboardService(videoRepo repository.VideoRepository, likeRepo repository.LikeRepository, subRepo repository.SubscriptionRepository) DashboardService {
	return &dashboardService{
		videoRepo: videoRepo,
		likeRepo:  likeRepo,
		subRepo:   subRepo,
	}
}

func (s *dashboardService) GetChannelStats(channelID uint64) (*ChannelStats, error) {
	subscribers, err := s.subRepo.CountSubscribers(channelID)
	if err != nil {
		return nil, err
	}
	videos, err := s.videoRepo.CountByOwner(channelID)
	if err != nil {
		return nil, err
	}
	likes, err := s.likeRepo.CountVideoLikesByOwner(channelID)
	if err != nil {
		return nil, err
	}
	views, err := s.videoRepo.SumViewsByOwner(channelID)
	if err != nil {
		return nil, err
	}
	return &ChannelStats{
		TotalSubscribers: subscribers,
		TotalVideos:      videos,
		TotalLikes:       likes,
		TotalViews:       views,
	}, nil
}

// GetChannelVideos 给创作者看自己的全部视频，包括未发布的
func (s *dashboardService) GetChannelVideos(channelID uint64) ([]model.Video, error) {
	return s.videoRepo.FindByOwner(channelID, 50)
}
