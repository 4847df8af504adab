package handler

import (
	"Vega_Tube/internal/dto"
	"Vega_Tube/internal/service"
	"Vega_Tube/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CommentHandler interface {
	AddComment(c *gin.Context)
	GetComments(c *gin.Context)
	UpdateComment(c *gin.Context)
	DeleteComment(c *gin.Context)
}

type commentHandler struct {
	CommentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) CommentHandler {
	return &commentHandler{CommentService: commentService}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// 发评论：1、路径上的视频ID+请求体的内容 2、service校验视频存在后落库
func (h *commentHandler) AddComment(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	comment, err := h.CommentService.AddComment(userID, videoID, req.Content)
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Error("发表评论失败")
		sendError(c, err, "发表评论失败")
		return
	}
	sendSuccess(c, http.StatusCreated, dto.ToCommentResponse(comment), "评论发表成功")
}

func (h *commentHandler) GetComments(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	comments, total, err := h.CommentService.GetComments(videoID, page, pageSize)
	if err != nil {
		sendError(c, err, "获取评论失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToCommentListResponse(comments, total), "成功获取评论")
}

func (h *commentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	comment, err := h.CommentService.UpdateComment(commentID, userID, req.Content)
	if err != nil {
		sendError(c, err, "更新评论失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToCommentResponse(comment), "评论更新成功")
}

func (h *commentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.CommentService.DeleteComment(commentID, userID); err != nil {
		sendError(c, err, "删除评论失败")
		return
	}
	sendSuccess(c, http.StatusOK, nil, "评论删除成功")
}
