package service

import (
	"Vega_Tube/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dashboardFixture struct {
	svc       DashboardService
	videoRepo *fakeVideoRepo
	subRepo   *fakeSubscriptionRepo
}

func newDashboardFixture() *dashboardFixture {
	videoRepo := newFakeVideoRepo()
	subRepo := newFakeSubscriptionRepo()
	return &dashboardFixture{
		svc:       NewDashboardService(videoRepo, newFakeLikeRepo(), subRepo),
		videoRepo: videoRepo,
		subRepo:   subRepo,
	}
}

// 后台视频列表只返回该创作者自己的视频，别人的不混进来
func TestGetChannelVideos(t *testing.T) {
	f := newDashboardFixture()
	require.NoError(t, f.videoRepo.Create(&model.Video{OwnerID: 1, Title: "mine"}))
	require.NoError(t, f.videoRepo.Create(&model.Video{OwnerID: 2, Title: "theirs"}))
	require.NoError(t, f.videoRepo.Create(&model.Video{OwnerID: 1, Title: "also mine"}))

	videos, err := f.svc.GetChannelVideos(1)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	for _, v := range videos {
		assert.Equal(t, uint64(1), v.OwnerID)
	}
}

// 汇总数字：视频数和播放量按创作者聚合，订阅数按频道聚合
func TestGetChannelStats(t *testing.T) {
	f := newDashboardFixture()
	require.NoError(t, f.videoRepo.Create(&model.Video{OwnerID: 1, Title: "a", ViewCount: 3}))
	require.NoError(t, f.videoRepo.Create(&model.Video{OwnerID: 1, Title: "b", ViewCount: 4}))
	require.NoError(t, f.videoRepo.Create(&model.Video{OwnerID: 2, Title: "c", ViewCount: 100}))
	require.NoError(t, f.subRepo.Create(&model.Subscription{SubscriberID: 5, ChannelID: 1}))
	require.NoError(t, f.subRepo.Create(&model.Subscription{SubscriberID: 6, ChannelID: 1}))

	stats, err := f.svc.GetChannelStats(1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalSubscribers)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(7), stats.TotalViews)
}
