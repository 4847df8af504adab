package service

import (
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubFixture(t *testing.T) (SubscriptionService, *fakeSubscriptionRepo, *fakeUserRepo) {
	t.Helper()
	userRepo := newFakeUserRepo()
	subRepo := newFakeSubscriptionRepo()
	// 两个用户：1是订阅者，2是频道主
	require.NoError(t, userRepo.Create(&model.User{Username: "alice", Email: "alice@test.com"}))
	require.NoError(t, userRepo.Create(&model.User{Username: "bob", Email: "bob@test.com"}))
	return NewSubscriptionService(subRepo, userRepo), subRepo, userRepo
}

// 关注切换的往返律：两次切换回到原点，每次返回值严格交替
func TestToggleSubscriptionRoundTrip(t *testing.T) {
	svc, subRepo, _ := newSubFixture(t)

	subscribed, err := svc.Toggle(1, 2)
	require.NoError(t, err)
	assert.True(t, subscribed)

	ok, err := subRepo.IsSubscribed(1, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	subscribed, err = svc.Toggle(1, 2)
	require.NoError(t, err)
	assert.False(t, subscribed)

	ok, err = subRepo.IsSubscribed(1, 2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestToggleSubscriptionSelf(t *testing.T) {
	svc, _, _ := newSubFixture(t)
	_, err := svc.Toggle(1, 1)
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestToggleSubscriptionChannelMissing(t *testing.T) {
	svc, _, _ := newSubFixture(t)
	_, err := svc.Toggle(1, 999)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

// 订阅是有向边：A关注B不等于B关注A，计数按方向分开算
func TestSubscriptionCountsDirectional(t *testing.T) {
	svc, subRepo, userRepo := newSubFixture(t)
	require.NoError(t, userRepo.Create(&model.User{Username: "carol", Email: "carol@test.com"}))

	_, err := svc.Toggle(1, 2)
	require.NoError(t, err)
	_, err = svc.Toggle(3, 2)
	require.NoError(t, err)

	subscribers, err := subRepo.CountSubscribers(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), subscribers)

	subscribedTo, err := subRepo.CountSubscribedTo(1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), subscribedTo)

	// 反方向没有边
	ok, err := subRepo.IsSubscribed(2, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
