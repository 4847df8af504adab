package service

import (
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/token"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestIssuer() *token.Issuer {
	return token.NewIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func newTestUserService(userRepo *fakeUserRepo, media *fakeMedia) UserService {
	return NewUserService(userRepo, newFakeSubscriptionRepo(), newFakeHistoryRepo(), newTestIssuer(), media)
}

func registerInput(username string) RegisterInput {
	return RegisterInput{
		Username:   username,
		Email:      username + "@test.com",
		FullName:   "测试用户",
		Password:   "password123",
		AvatarPath: "/tmp/avatar.png",
	}
}

func TestRegister(t *testing.T) {
	userRepo := newFakeUserRepo()
	media := &fakeMedia{}
	svc := newTestUserService(userRepo, media)

	user, err := svc.Register(context.Background(), registerInput("Alice"))
	require.NoError(t, err)
	// 用户名一律小写归一化
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, user.AvatarURL)
	// 密码不能明文落库
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
}

func TestRegisterDuplicate(t *testing.T) {
	userRepo := newFakeUserRepo()
	media := &fakeMedia{}
	svc := newTestUserService(userRepo, media)

	_, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)

	// 查重直接拦下，连上传都不该发生
	uploadsBefore := media.uploads
	_, err = svc.Register(context.Background(), registerInput("alice"))
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
	assert.Equal(t, uploadsBefore, media.uploads)
	assert.Len(t, userRepo.users, 1)
}

// 并发注册绕过了查重、在Create时撞上唯一索引的场景：
// 用户行没写进去，已上传的媒体资源必须回收
func TestRegisterDuplicateRace(t *testing.T) {
	userRepo := newFakeUserRepo()
	media := &fakeMedia{}
	svc := newTestUserService(userRepo, media)

	_, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)

	// 模拟竞态窗口：查重读不到已有用户，但Create仍然会冲突
	userRepo.hideFromLookup = true
	_, err = svc.Register(context.Background(), registerInput("alice"))
	assert.ErrorIs(t, err, errs.ErrAlreadyExists)
	assert.Len(t, media.deleted, 1)
	assert.Len(t, userRepo.users, 1)
}

func TestRegisterUploadFailure(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo, &fakeMedia{failAll: true})

	_, err := svc.Register(context.Background(), registerInput("alice"))
	assert.ErrorIs(t, err, errs.ErrUpstream)
	assert.Empty(t, userRepo.users)
}

func TestLogin(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo, &fakeMedia{})
	_, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)

	user, access, refresh, err := svc.Login("alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	// refresh token必须持久化到用户行，后续轮换要逐字节比对
	stored := userRepo.users[user.ID].RefreshToken
	require.NotNil(t, stored)
	assert.Equal(t, refresh, *stored)

	// 邮箱也能登录
	_, _, _, err = svc.Login("alice@test.com", "password123")
	assert.NoError(t, err)
}

// “用户不存在”和“密码错误”必须是同一个错误，防止用户名枚举
func TestLoginInvalidCredentialsUniform(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo, &fakeMedia{})
	_, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)

	_, _, _, errWrongPassword := svc.Login("alice", "wrong")
	_, _, _, errNoSuchUser := svc.Login("nobody", "password123")

	assert.ErrorIs(t, errWrongPassword, errs.ErrInvalidCredentials)
	assert.ErrorIs(t, errNoSuchUser, errs.ErrInvalidCredentials)
}

func TestRefreshTokens(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo, &fakeMedia{})
	user, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)
	_, _, refresh, err := svc.Login("alice", "password123")
	require.NoError(t, err)

	access2, refresh2, err := svc.RefreshTokens(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access2)
	// 轮换后库里存的是新令牌
	stored := userRepo.users[user.ID].RefreshToken
	require.NotNil(t, stored)
	assert.Equal(t, refresh2, *stored)
}

func TestRefreshTokensFailures(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo, &fakeMedia{})
	user, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)
	_, _, refresh, err := svc.Login("alice", "password123")
	require.NoError(t, err)

	// 没带令牌
	_, _, err = svc.RefreshTokens("")
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	// 签名校验不过
	_, _, err = svc.RefreshTokens(refresh + "tampered")
	assert.ErrorIs(t, err, errs.ErrInvalidToken)

	// 重放检测：库里的令牌已被换掉，旧令牌再来就该被拒
	other := "some-other-session-token"
	userRepo.users[user.ID].RefreshToken = &other
	_, _, err = svc.RefreshTokens(refresh)
	assert.ErrorIs(t, err, errs.ErrTokenReused)

	// 登出后库里没有令牌，任何刷新都按重放处理
	require.NoError(t, svc.Logout(user.ID))
	_, _, err = svc.RefreshTokens(refresh)
	assert.ErrorIs(t, err, errs.ErrTokenReused)
}

func TestChangePassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo, &fakeMedia{})
	user, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(user.ID, "wrong", "newpass"), errs.ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(user.ID, "password123", "newpass"))
	_, _, _, err = svc.Login("alice", "newpass")
	assert.NoError(t, err)
	_, _, _, err = svc.Login("alice", "password123")
	assert.ErrorIs(t, err, errs.ErrInvalidCredentials)
}

func TestGetChannelProfile(t *testing.T) {
	userRepo := newFakeUserRepo()
	subRepo := newFakeSubscriptionRepo()
	svc := NewUserService(userRepo, subRepo, newFakeHistoryRepo(), newTestIssuer(), &fakeMedia{})

	alice, err := svc.Register(context.Background(), registerInput("alice"))
	require.NoError(t, err)
	bob, err := svc.Register(context.Background(), registerInput("bob"))
	require.NoError(t, err)

	require.NoError(t, subRepo.Create(&model.Subscription{SubscriberID: bob.ID, ChannelID: alice.ID}))

	profile, err := svc.GetChannelProfile("alice", bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.SubscriberCount)
	assert.True(t, profile.IsSubscribed)

	// 没订阅的访问者看同一个频道
	profile, err = svc.GetChannelProfile("alice", alice.ID)
	require.NoError(t, err)
	assert.False(t, profile.IsSubscribed)

	_, err = svc.GetChannelProfile("nobody", bob.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
