package handler

import (
	"Vega_Tube/internal/dto"
	"Vega_Tube/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PlaylistHandler interface {
	CreatePlaylist(c *gin.Context)
	GetUserPlaylists(c *gin.Context)
	GetPlaylistByID(c *gin.Context)
	UpdatePlaylist(c *gin.Context)
	DeletePlaylist(c *gin.Context)
	AddVideoToPlaylist(c *gin.Context)
	RemoveVideoFromPlaylist(c *gin.Context)
}

type playlistHandler struct {
	PlaylistService service.PlaylistService
}

func NewPlaylistHandler(playlistService service.PlaylistService) PlaylistHandler {
	return &playlistHandler{PlaylistService: playlistService}
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *playlistHandler) CreatePlaylist(c *gin.Context) {
	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	playlist, err := h.PlaylistService.CreatePlaylist(userID, req.Name, req.Description)
	if err != nil {
		sendError(c, err, "创建播放列表失败")
		return
	}
	sendSuccess(c, http.StatusCreated, dto.ToPlaylistResponse(playlist), "播放列表创建成功")
}

// 查某个用户的播放列表，谁都能看
func (h *playlistHandler) GetUserPlaylists(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	playlists, err := h.PlaylistService.GetUserPlaylists(userID)
	if err != nil {
		sendError(c, err, "获取播放列表失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponses(playlists), "成功获取播放列表")
}

func (h *playlistHandler) GetPlaylistByID(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlist_id")
	if !ok {
		return
	}
	playlist, err := h.PlaylistService.GetPlaylistByID(playlistID)
	if err != nil {
		sendError(c, err, "获取播放列表失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponse(playlist), "成功获取播放列表")
}

func (h *playlistHandler) UpdatePlaylist(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlist_id")
	if !ok {
		return
	}
	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	playlist, err := h.PlaylistService.UpdatePlaylist(playlistID, userID, req.Name, req.Description)
	if err != nil {
		sendError(c, err, "更新播放列表失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponse(playlist), "播放列表更新成功")
}

func (h *playlistHandler) DeletePlaylist(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlist_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.PlaylistService.DeletePlaylist(playlistID, userID); err != nil {
		sendError(c, err, "删除播放列表失败")
		return
	}
	sendSuccess(c, http.StatusOK, nil, "播放列表删除成功")
}

// 收藏视频进列表，重复收藏会报409
func (h *playlistHandler) AddVideoToPlaylist(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlist_id")
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	playlist, err := h.PlaylistService.AddVideoToPlaylist(playlistID, videoID, userID)
	if err != nil {
		sendError(c, err, "添加视频失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponse(playlist), "视频已加入播放列表")
}

func (h *playlistHandler) RemoveVideoFromPlaylist(c *gin.Context) {
	playlistID, ok := parseIDParam(c, "playlist_id")
	if !ok {
		return
	}
	videoID, ok := parseIDParam(c, "video_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	playlist, err := h.PlaylistService.RemoveVideoFromPlaylist(playlistID, videoID, userID)
	if err != nil {
		sendError(c, err, "移除视频失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToPlaylistResponse(playlist), "视频已移出播放列表")
}
