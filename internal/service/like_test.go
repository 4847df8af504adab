package service

import (
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type likeFixture struct {
	svc       LikeService
	videoRepo *fakeVideoRepo
	likeRepo  *fakeLikeRepo
}

func newLikeFixture() *likeFixture {
	videoRepo := newFakeVideoRepo()
	likeRepo := newFakeLikeRepo()
	commentRepo := newFakeCommentRepo()
	tweetRepo := newFakeTweetRepo()
	uow := &fakeUnitOfWork{
		videoRepo:   videoRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
		historyRepo: newFakeHistoryRepo(),
	}
	return &likeFixture{
		svc:       NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo, uow, nil),
		videoRepo: videoRepo,
		likeRepo:  likeRepo,
	}
}

// 切换必须严格翻转：赞->取消->赞，且冗余计数和likes表同步变化
func TestToggleVideoLikeFlips(t *testing.T) {
	f := newLikeFixture()
	video := &model.Video{OwnerID: 1, Title: "t"}
	require.NoError(t, f.videoRepo.Create(video))

	liked, err := f.svc.ToggleVideoLike(42, video.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, uint64(1), f.videoRepo.videos[video.ID].LikeCount)

	liked, err = f.svc.ToggleVideoLike(42, video.ID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, uint64(0), f.videoRepo.videos[video.ID].LikeCount)

	liked, err = f.svc.ToggleVideoLike(42, video.ID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, uint64(1), f.videoRepo.videos[video.ID].LikeCount)
}

// 同一个用户反复点赞，likes表里最多一行
func TestToggleVideoLikeNoDuplicates(t *testing.T) {
	f := newLikeFixture()
	video := &model.Video{OwnerID: 1, Title: "t"}
	require.NoError(t, f.videoRepo.Create(video))

	_, err := f.svc.ToggleVideoLike(42, video.ID)
	require.NoError(t, err)
	count, err := f.svc.GetLikeCount(model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 不同用户各算一行
	_, err = f.svc.ToggleVideoLike(43, video.ID)
	require.NoError(t, err)
	count, err = f.svc.GetLikeCount(model.LikeTargetVideo, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestToggleLikeTargetMissing(t *testing.T) {
	f := newLikeFixture()

	_, err := f.svc.ToggleVideoLike(42, 999)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = f.svc.ToggleCommentLike(42, 999)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = f.svc.ToggleTweetLike(42, 999)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

// 评论和动态的点赞不碰视频的冗余计数
func TestToggleCommentLike(t *testing.T) {
	videoRepo := newFakeVideoRepo()
	likeRepo := newFakeLikeRepo()
	commentRepo := newFakeCommentRepo()
	uow := &fakeUnitOfWork{videoRepo: videoRepo, likeRepo: likeRepo, commentRepo: commentRepo}
	svc := NewLikeService(likeRepo, videoRepo, commentRepo, newFakeTweetRepo(), uow, nil)

	comment := &model.Comment{VideoID: 1, OwnerID: 1, Content: "不错"}
	require.NoError(t, commentRepo.Create(comment))

	liked, err := svc.ToggleCommentLike(42, comment.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	count, err := svc.GetLikeCount(model.LikeTargetComment, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	liked, err = svc.ToggleCommentLike(42, comment.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}
