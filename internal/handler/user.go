package handler

import (
	"Vega_Tube/internal/dto"
	"Vega_Tube/internal/service"
	"Vega_Tube/pkg/logger"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	RefreshAccessToken(c *gin.Context)
	ChangePassword(c *gin.Context)
	GetCurrentUser(c *gin.Context)
	UpdateAccount(c *gin.Context)
	UpdateAvatar(c *gin.Context)
	UpdateCoverImage(c *gin.Context)
	GetChannelProfile(c *gin.Context)
	GetWatchHistory(c *gin.Context)
	SearchUsers(c *gin.Context)
}

// 对Service进行封装
type userHandler struct {
	UserService service.UserService
}

func NewUserHandler(userService service.UserService) UserHandler {
	return &userHandler{UserService: userService}
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type UpdateAccountRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

// setAuthCookies 把令牌对同时写进HttpOnly Cookie，方便浏览器端之外还支持Header方式
func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetCookie("accessToken", accessToken, 3600, "/", "", false, true)
	c.SetCookie("refreshToken", refreshToken, 3600*24*10, "/", "", false, true)
}

func clearAuthCookies(c *gin.Context) {
	c.SetCookie("accessToken", "", -1, "/", "", false, true)
	c.SetCookie("refreshToken", "", -1, "/", "", false, true)
}

// 注册：1、multipart表单里取文本字段和头像/封面文件 2、文件先落临时目录 3、交给service完成上传和落库
func (h *userHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	email := c.PostForm("email")
	fullname := c.PostForm("fullname")
	password := c.PostForm("password")
	if username == "" || email == "" || fullname == "" || password == "" {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	avatarPath, cleanAvatar, err := saveFormFile(c, "avatar")
	if err != nil {
		logger.Log.WithError(err).Error("保存头像临时文件失败")
		sendErrorResponse(c, http.StatusInternalServerError, "文件处理失败")
		return
	}
	defer cleanAvatar()
	if avatarPath == "" {
		sendErrorResponse(c, http.StatusBadRequest, "缺少头像文件")
		return
	}

	coverPath, cleanCover, err := saveFormFile(c, "cover_image")
	if err != nil {
		logger.Log.WithError(err).Error("保存封面临时文件失败")
		sendErrorResponse(c, http.StatusInternalServerError, "文件处理失败")
		return
	}
	defer cleanCover()

	logCtx := logger.Log.WithField("username", username)
	logCtx.Info("开始处理用户注册请求")

	user, err := h.UserService.Register(c.Request.Context(), service.RegisterInput{
		Username:   username,
		Email:      email,
		FullName:   fullname,
		Password:   password,
		AvatarPath: avatarPath,
		CoverPath:  coverPath,
	})
	if err != nil {
		logCtx.WithError(err).Error("用户注册业务逻辑处理失败")
		sendError(c, err, "注册失败")
		return
	}

	logCtx.WithField("user_id", user.ID).Info("用户注册成功")
	sendSuccess(c, http.StatusCreated, dto.ToUserResponse(user), "注册成功")
}

// 登录：1、用户名或邮箱二选一 2、service校验后签发令牌对 3、令牌对既写Cookie也放响应体
func (h *userHandler) Login(c *gin.Context) {
	var req LoginRequest
	// c.ShouldBindJSON，绑定和校验，如果context中不包含req的“required”字段，则会返回错误
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Log.WithError(err).Error("登录请求参数解析失败")
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	identifier := req.Username
	if identifier == "" {
		identifier = req.Email
	}
	if identifier == "" {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	logCtx := logger.Log.WithField("identifier", identifier)
	logCtx.Info("开始处理用户登录请求")

	user, accessToken, refreshToken, err := h.UserService.Login(identifier, req.Password)
	if err != nil {
		logCtx.WithError(err).Error("用户登录业务逻辑处理失败")
		sendError(c, err, "登录失败")
		return
	}

	logCtx.Info("用户登录成功")
	setAuthCookies(c, accessToken, refreshToken)
	sendSuccess(c, http.StatusOK, gin.H{
		"user": dto.ToUserResponse(user),
		"tokens": dto.TokenPairResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, "登录成功")
}

// 登出：清掉服务端保存的refresh token和客户端Cookie，access token自身等过期
func (h *userHandler) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.UserService.Logout(userID); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("用户登出处理失败")
		sendError(c, err, "登出失败")
		return
	}
	clearAuthCookies(c)
	sendSuccess(c, http.StatusOK, nil, "登出成功")
}

// 刷新令牌：优先取请求体，没有就回落到Cookie；旧令牌换一对新令牌
func (h *userHandler) RefreshAccessToken(c *gin.Context) {
	var req RefreshTokenRequest
	// 刷新令牌允许只带Cookie不带body，这里的绑定失败不致命
	_ = c.ShouldBindJSON(&req)
	incoming := req.RefreshToken
	if incoming == "" {
		incoming, _ = c.Cookie("refreshToken")
	}

	accessToken, refreshToken, err := h.UserService.RefreshTokens(incoming)
	if err != nil {
		logger.Log.WithError(err).Warn("刷新令牌失败")
		sendError(c, err, "刷新令牌失败")
		return
	}

	setAuthCookies(c, accessToken, refreshToken)
	sendSuccess(c, http.StatusOK, dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, "令牌刷新成功")
}

func (h *userHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.UserService.ChangePassword(userID, req.OldPassword, req.NewPassword); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("修改密码处理失败")
		sendError(c, err, "修改密码失败")
		return
	}
	sendSuccess(c, http.StatusOK, nil, "密码修改成功")
}

func (h *userHandler) GetCurrentUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, err := h.UserService.GetByID(userID)
	if err != nil {
		sendError(c, err, "获取用户信息失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponse(user), "成功获取用户信息")
}

func (h *userHandler) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.UserService.UpdateAccount(userID, req.FullName, req.Email)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("更新账户资料失败")
		sendError(c, err, "更新账户资料失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponse(user), "账户资料更新成功")
}

// 换头像：新文件上传成功后service会顺手删掉旧文件
func (h *userHandler) UpdateAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	localPath, cleanup, err := saveFormFile(c, "avatar")
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "文件处理失败")
		return
	}
	defer cleanup()
	if localPath == "" {
		sendErrorResponse(c, http.StatusBadRequest, "缺少头像文件")
		return
	}

	user, err := h.UserService.UpdateAvatar(c.Request.Context(), userID, localPath)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("更新头像失败")
		sendError(c, err, "更新头像失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponse(user), "头像更新成功")
}

func (h *userHandler) UpdateCoverImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	localPath, cleanup, err := saveFormFile(c, "cover_image")
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "文件处理失败")
		return
	}
	defer cleanup()
	if localPath == "" {
		sendErrorResponse(c, http.StatusBadRequest, "缺少封面文件")
		return
	}

	user, err := h.UserService.UpdateCover(c.Request.Context(), userID, localPath)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Error("更新封面失败")
		sendError(c, err, "更新封面失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponse(user), "封面更新成功")
}

// 频道主页：按用户名查资料，附带订阅数和当前访问者是否已订阅
func (h *userHandler) GetChannelProfile(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		sendErrorResponse(c, http.StatusBadRequest, "无效的用户名")
		return
	}
	viewerID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := h.UserService.GetChannelProfile(username, viewerID)
	if err != nil {
		sendError(c, err, "获取频道信息失败")
		return
	}

	response := dto.ChannelProfileResponse{
		UserResponse:      dto.ToUserResponse(&profile.User),
		SubscriberCount:   profile.SubscriberCount,
		SubscribedToCount: profile.SubscribedToCount,
		IsSubscribed:      profile.IsSubscribed,
	}
	sendSuccess(c, http.StatusOK, response, "成功获取频道信息")
}

func (h *userHandler) GetWatchHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := h.UserService.GetWatchHistory(userID)
	if err != nil {
		sendError(c, err, "获取观看历史失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToWatchHistoryItems(entries), "成功获取观看历史")
}

func (h *userHandler) SearchUsers(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("query"))
	if keyword == "" {
		sendErrorResponse(c, http.StatusBadRequest, "缺少搜索关键词")
		return
	}
	users, err := h.UserService.SearchUsers(keyword)
	if err != nil {
		sendError(c, err, "搜索用户失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponses(users), "搜索完成")
}
