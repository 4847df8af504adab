package handler

import (
	"Vega_Tube/internal/dto"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/service"
	"Vega_Tube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LikeHandler interface {
	ToggleVideoLike(c *gin.Context)
	ToggleCommentLike(c *gin.Context)
	ToggleTweetLike(c *gin.Context)
	GetVideoLikeCount(c *gin.Context)
	GetCommentLikeCount(c *gin.Context)
	GetTweetLikeCount(c *gin.Context)
	GetLikedVideos(c *gin.Context)
}

type likeHandler struct {
	LikeService service.LikeService
}

func NewLikeHandler(likeService service.LikeService) LikeHandler {
	return &likeHandler{LikeService: likeService}
}

// 三种目标的切换逻辑一模一样，收敛到一个私有方法，差异只在路径参数名和service入口
func (h *likeHandler) toggle(c *gin.Context, paramName string, fn func(userID, targetID uint64) (bool, error)) {
	targetID, ok := parseIDParam(c, paramName)
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	liked, err := fn(userID, targetID)
	if err != nil {
		logger.Log.WithError(err).WithField("target_id", targetID).Error("切换点赞状态失败")
		sendError(c, err, "切换点赞状态失败")
		return
	}

	message := "已取消点赞"
	if liked {
		message = "点赞成功"
	}
	sendSuccess(c, http.StatusOK, gin.H{"liked": liked}, message)
}

func (h *likeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, "video_id", h.LikeService.ToggleVideoLike)
}

func (h *likeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, "comment_id", h.LikeService.ToggleCommentLike)
}

func (h *likeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, "tweet_id", h.LikeService.ToggleTweetLike)
}

func (h *likeHandler) likeCount(c *gin.Context, paramName string, targetType model.LikeTarget) {
	targetID, ok := parseIDParam(c, paramName)
	if !ok {
		return
	}
	count, err := h.LikeService.GetLikeCount(targetType, targetID)
	if err != nil {
		sendError(c, err, "获取点赞数失败")
		return
	}
	sendSuccess(c, http.StatusOK, gin.H{"like_count": count}, "成功获取点赞数")
}

func (h *likeHandler) GetVideoLikeCount(c *gin.Context) {
	h.likeCount(c, "video_id", model.LikeTargetVideo)
}

func (h *likeHandler) GetCommentLikeCount(c *gin.Context) {
	h.likeCount(c, "comment_id", model.LikeTargetComment)
}

func (h *likeHandler) GetTweetLikeCount(c *gin.Context) {
	h.likeCount(c, "tweet_id", model.LikeTargetTweet)
}

// 我点过赞的视频列表
func (h *likeHandler) GetLikedVideos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videos, err := h.LikeService.GetLikedVideos(userID)
	if err != nil {
		sendError(c, err, "获取点赞视频失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponses(videos), "成功获取点赞视频")
}
