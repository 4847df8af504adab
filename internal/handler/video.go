package handler

import (
	"Vega_Tube/internal/dto"
	"Vega_Tube/internal/service"
	"Vega_Tube/pkg/logger"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type VideoHandler interface {
	PublishVideo(c *gin.Context)
	GetFeed(c *gin.Context)
	GetVideoByID(c *gin.Context)
	GetMyVideos(c *gin.Context)
	UpdateVideo(c *gin.Context)
	DeleteVideo(c *gin.Context)
	TogglePublishStatus(c *gin.Context)
}

type videoHandler struct {
	VideoService service.VideoService
}

func NewVideoHandler(videoService service.VideoService) VideoHandler {
	return &videoHandler{VideoService: videoService}
}

// parseIDParam URL路径参数转uint64，名字由各路由自己定
func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		sendErrorResponse(c, http.StatusBadRequest, "无效的ID")
		return 0, false
	}
	return id, true
}

// 发布视频：1、multipart里必须有视频文件，封面可选 2、临时落盘后交给service上传媒体托管并落库
func (h *videoHandler) PublishVideo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	title := c.PostForm("title")
	description := c.PostForm("description")
	if title == "" {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}

	videoPath, cleanVideo, err := saveFormFile(c, "video_file")
	if err != nil {
		logger.Log.WithError(err).Error("保存视频临时文件失败")
		sendErrorResponse(c, http.StatusInternalServerError, "文件处理失败")
		return
	}
	defer cleanVideo()
	if videoPath == "" {
		sendErrorResponse(c, http.StatusBadRequest, "缺少视频文件")
		return
	}

	coverPath, cleanCover, err := saveFormFile(c, "cover_image")
	if err != nil {
		logger.Log.WithError(err).Error("保存封面临时文件失败")
		sendErrorResponse(c, http.StatusInternalServerError, "文件处理失败")
		return
	}
	defer cleanCover()
	if coverPath == "" {
		sendErrorResponse(c, http.StatusBadRequest, "缺少封面文件")
		return
	}

	logCtx := logger.Log.WithField("owner_id", userID)
	logCtx.Info("开始处理发布视频请求")

	video, err := h.VideoService.PublishVideo(c.Request.Context(), userID, title, description, videoPath, coverPath)
	if err != nil {
		logCtx.WithError(err).Error("发布视频业务处理失败")
		sendError(c, err, "发布视频失败")
		return
	}

	logCtx.WithField("video_id", video.ID).Info("视频发布成功")
	sendSuccess(c, http.StatusCreated, dto.ToVideoResponse(video), "视频发布成功")
}

func (h *videoHandler) GetFeed(c *gin.Context) {
	limit, _ := strconv.ParseUint(c.DefaultQuery("limit", "20"), 10, 64)
	videos, err := h.VideoService.GetFeed(limit)
	if err != nil {
		logger.Log.WithError(err).Error("获取视频流失败")
		sendError(c, err, "获取视频流失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponses(videos), "成功获取视频流")
}

// 看视频：读详情的同时由service异步记一次观看
func (h *videoHandler) GetVideoByID(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	video, err := h.VideoService.GetVideoByID(videoID, userID)
	if err != nil {
		sendError(c, err, "获取视频失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponse(video), "成功获取视频")
}

func (h *videoHandler) GetMyVideos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videos, err := h.VideoService.GetMyVideos(userID)
	if err != nil {
		sendError(c, err, "获取视频列表失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponses(videos), "成功获取视频列表")
}

// 更新视频：标题/简介走表单文本字段，封面是可选的新文件
func (h *videoHandler) UpdateVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	title := c.PostForm("title")
	description := c.PostForm("description")

	coverPath, cleanCover, err := saveFormFile(c, "cover_image")
	if err != nil {
		sendErrorResponse(c, http.StatusInternalServerError, "文件处理失败")
		return
	}
	defer cleanCover()

	video, err := h.VideoService.UpdateVideo(c.Request.Context(), videoID, userID, title, description, coverPath)
	if err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Error("更新视频失败")
		sendError(c, err, "更新视频失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponse(video), "视频更新成功")
}

func (h *videoHandler) DeleteVideo(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.VideoService.DeleteVideo(c.Request.Context(), videoID, userID); err != nil {
		logger.Log.WithError(err).WithField("video_id", videoID).Error("删除视频失败")
		sendError(c, err, "删除视频失败")
		return
	}
	sendSuccess(c, http.StatusOK, nil, "视频删除成功")
}

func (h *videoHandler) TogglePublishStatus(c *gin.Context) {
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	video, err := h.VideoService.TogglePublishStatus(videoID, userID)
	if err != nil {
		sendError(c, err, "切换发布状态失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponse(video), "发布状态切换成功")
}
