package service

import (
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
	"Vega_Tube/internal/token"
	"Vega_Tube/pkg/logger"
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput 注册所需的全部字段。AvatarPath必填、CoverPath可选，都是本地暂存路径，
// 由handler负责落盘和清理，service只管把它们换成持久URL
type RegisterInput struct {
	Username string
	Email    string
	FullName string
	Password string

	AvatarPath string
	CoverPath  string
}

// ChannelProfile 频道主页读模型：用户资料+订阅图谱的三个派生值
type ChannelProfile struct {
	User              model.User
	SubscriberCount   int64
	SubscribedToCount int64
	IsSubscribed      bool
}

// 用户服务接口：注册/登录/登出、会话轮换、资料维护、频道主页和观看历史
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Login(identifier, password string) (*model.User, string, string, error)
	Logout(userID uint64) error
	// RefreshTokens 刷新令牌轮换，见方法注释里的状态机
	RefreshTokens(refreshToken string) (string, string, error)
	ChangePassword(userID uint64, oldPassword, newPassword string) error

	GetByID(userID uint64) (*model.User, error)
	UpdateAccount(userID uint64, fullname, email string) (*model.User, error)
	UpdateAvatar(ctx context.Context, userID uint64, localPath string) (*model.User, error)
	UpdateCover(ctx context.Context, userID uint64, localPath string) (*model.User, error)

	GetChannelProfile(username string, viewerID uint64) (*ChannelProfile, error)
	GetWatchHistory(userID uint64) ([]model.WatchHistory, error)
	SearchUsers(keyword string) ([]model.User, error)
}

type userService struct {
	userRepo    repository.UserRepository
	subRepo     repository.SubscriptionRepository
	historyRepo repository.HistoryRepository
	issuer      *token.Issuer
	media       MediaHost
}

func NewUserService(
	userRepo repository.UserRepository,
	subRepo repository.SubscriptionRepository,
	historyRepo repository.HistoryRepository,
	issuer *token.Issuer,
	media MediaHost,
) UserService {
	return &userService{
		userRepo:    userRepo,
		subRepo:     subRepo,
		historyRepo: historyRepo,
		issuer:      issuer,
		media:       media,
	}
}

// 注册逻辑：1、用户名小写归一化 2、按用户名+邮箱查重 3、上传头像（必填）和封面（可选）
// 4、密码加密存储 5、创建用户表项。唯一索引兜住并发注册的竞态，冲突时回收已上传的媒体资源
func (s *userService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))

	_, err := s.userRepo.FindByUsernameOrEmail(username, input.Email)
	if err == nil {
		return nil, errs.ErrAlreadyExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	avatarURL, err := s.media.Upload(ctx, input.AvatarPath, "avatars")
	if err != nil {
		logger.Log.WithError(err).Error("头像上传失败")
		return nil, errs.ErrUpstream
	}
	var coverURL string
	if input.CoverPath != "" {
		coverURL, err = s.media.Upload(ctx, input.CoverPath, "covers")
		if err != nil {
			logger.Log.WithError(err).Error("封面上传失败")
			_ = s.media.Delete(ctx, avatarURL)
			return nil, errs.ErrUpstream
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Username:  username,
		Email:     input.Email,
		FullName:  input.FullName,
		Password:  string(hashedPassword),
		AvatarURL: avatarURL,
		CoverURL:  coverURL,
	}

	if err := s.userRepo.Create(newUser); err != nil {
		// 查重和创建之间有竞态窗口，撞上唯一索引说明有人抢先注册了
		// 用户行没写进去，把刚上传的媒体资源也收回来，保证没有任何半成品落库
		_ = s.media.Delete(ctx, avatarURL)
		if coverURL != "" {
			_ = s.media.Delete(ctx, coverURL)
		}
		if isDuplicateKeyErr(err) {
			return nil, errs.ErrAlreadyExists
		}
		return nil, err
	}
	return newUser, nil
}

// 登录逻辑：1、用户名或邮箱二选一查找 2、bcrypt比对密码 3、签发并持久化一对令牌
// “用户不存在”和“密码错误”必须返回同一个错误，防止用户名枚举
func (s *userService) Login(identifier, password string) (*model.User, string, string, error) {
	user, err := s.userRepo.FindByUsernameOrEmail(strings.ToLower(identifier), identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", errs.ErrInvalidCredentials
		}
		return nil, "", "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", "", errs.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.issuePair(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, accessToken, refreshToken, nil
}

// issuePair 签发一对新令牌，并把refresh token持久化到用户行上——
// 新令牌覆盖旧令牌，意味着同一时间只有一个会话有效，旧会话的refresh token立刻作废
func (s *userService) issuePair(user *model.User) (string, string, error) {
	accessToken, err := s.issuer.SignAccessToken(user)
	if err != nil {
		return "", "", err
	}
	refreshToken, err := s.issuer.SignRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}
	if err := s.userRepo.UpdateRefreshToken(user.ID, &refreshToken); err != nil {
		return "", "", err
	}
	return accessToken, refreshToken, nil
}

// 登出：清掉库里的refresh token，这个会话从此无法再刷新
func (s *userService) Logout(userID uint64) error {
	return s.userRepo.UpdateRefreshToken(userID, nil)
}

// RefreshTokens 刷新令牌轮换，一条直线状态机，任何一步失败都是终态，调用方只能重新登录：
// 1、没带令牌 -> ErrUnauthorized
// 2、签名或有效期校验失败 -> ErrInvalidToken
// 3、载荷里的用户不存在 -> ErrInvalidToken
// 4、和库里持久化的令牌逐字节比对，不一致 -> ErrTokenReused（说明它已被上次轮换淘汰，典型的重放）
// 5、签发新对，并用CAS原子替换库里的旧令牌，输掉并发竞争同样按重放处理
func (s *userService) RefreshTokens(refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", errs.ErrUnauthorized
	}

	userID, err := s.issuer.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", "", errs.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", errs.ErrInvalidToken
		}
		return "", "", err
	}

	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return "", "", errs.ErrTokenReused
	}

	newAccess, err := s.issuer.SignAccessToken(user)
	if err != nil {
		return "", "", err
	}
	newRefresh, err := s.issuer.SignRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}

	// 读取和替换之间可能插进来另一次轮换，所以替换必须带旧值条件（CAS）
	swapped, err := s.userRepo.RotateRefreshToken(user.ID, refreshToken, newRefresh)
	if err != nil {
		return "", "", err
	}
	if !swapped {
		return "", "", errs.ErrTokenReused
	}
	return newAccess, newRefresh, nil
}

func (s *userService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errs.ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(userID, string(hashed))
}

func (s *userService) GetByID(userID uint64) (*model.User, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateAccount(userID uint64, fullname, email string) (*model.User, error) {
	if err := s.userRepo.UpdateAccount(userID, fullname, email); err != nil {
		// 改邮箱可能撞上别人的唯一索引
		if isDuplicateKeyErr(err) {
			return nil, errs.ErrAlreadyExists
		}
		return nil, err
	}
	return s.GetByID(userID)
}

// 换头像：1、查出旧URL 2、上传新图 3、落库 4、尽力删除旧资源，删不掉只记日志不影响主流程
func (s *userService) UpdateAvatar(ctx context.Context, userID uint64, localPath string) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	newURL, err := s.media.Upload(ctx, localPath, "avatars")
	if err != nil {
		logger.Log.WithError(err).Error("头像上传失败")
		return nil, errs.ErrUpstream
	}
	if err := s.userRepo.UpdateAvatar(userID, newURL); err != nil {
		return nil, err
	}
	if user.AvatarURL != "" {
		if err := s.media.Delete(ctx, user.AvatarURL); err != nil {
			logger.Log.WithError(err).Warn("旧头像清理失败")
		}
	}
	return s.GetByID(userID)
}

func (s *userService) UpdateCover(ctx context.Context, userID uint64, localPath string) (*model.User, error) {
	user, err := s.GetByID(userID)
	if err != nil {
		return nil, err
	}
	newURL, err := s.media.Upload(ctx, localPath, "covers")
	if err != nil {
		logger.Log.WithError(err).Error("封面上传失败")
		return nil, errs.ErrUpstream
	}
	if err := s.userRepo.UpdateCover(userID, newURL); err != nil {
		return nil, err
	}
	if user.CoverURL != "" {
		if err := s.media.Delete(ctx, user.CoverURL); err != nil {
			logger.Log.WithError(err).Warn("旧封面清理失败")
		}
	}
	return s.GetByID(userID)
}

// 频道主页：1、按用户名定位频道主 2、数粉丝 3、数关注 4、测试访问者在不在粉丝集合里
// 原来一条聚合管道干的事，这里拆成三次显式查询，投影语义保持不变
func (s *userService) GetChannelProfile(username string, viewerID uint64) (*ChannelProfile, error) {
	user, err := s.userRepo.FindByUsername(strings.ToLower(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	subscriberCount, err := s.subRepo.CountSubscribers(user.ID)
	if err != nil {
		return nil, err
	}
	subscribedToCount, err := s.subRepo.CountSubscribedTo(user.ID)
	if err != nil {
		return nil, err
	}
	isSubscribed, err := s.subRepo.IsSubscribed(viewerID, user.ID)
	if err != nil {
		return nil, err
	}

	return &ChannelProfile{
		User:              *user,
		SubscriberCount:   subscriberCount,
		SubscribedToCount: subscribedToCount,
		IsSubscribed:      isSubscribed,
	}, nil
}

func (s *userService) GetWatchHistory(userID uint64) ([]model.WatchHistory, error) {
	return s.historyRepo.ListByUser(userID)
}

func (s *userService) SearchUsers(keyword string) ([]model.User, error) {
	return s.userRepo.SearchByUsername(strings.ToLower(keyword), 20)
}
