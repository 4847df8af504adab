package handler

import (
	"Vega_Tube/internal/dto"
	"Vega_Tube/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type DashboardHandler interface {
	GetChannelStats(c *gin.Context)
	GetChannelVideos(c *gin.Context)
}

type dashboardHandler struct {
	DashboardService service.DashboardService
}

func NewDashboardHandler(dashboardService service.DashboardService) DashboardHandler {
	return &dashboardHandler{DashboardService: dashboardService}
}

// 创作者后台统计：粉丝数/视频数/获赞数/播放量四个聚合
func (h *dashboardHandler) GetChannelStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	stats, err := h.DashboardService.GetChannelStats(userID)
	if err != nil {
		sendError(c, err, "获取频道统计失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ChannelStatsResponse{
		TotalSubscribers: stats.TotalSubscribers,
		TotalVideos:      stats.TotalVideos,
		TotalLikes:       stats.TotalLikes,
		TotalViews:       stats.TotalViews,
	}, "成功获取频道统计")
}

// 创作者看自己全部视频，未发布的也在内
func (h *dashboardHandler) GetChannelVideos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	videos, err := h.DashboardService.GetChannelVideos(userID)
	if err != nil {
		sendError(c, err, "获取频道视频失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToVideoResponses(videos), "成功获取频道视频")
}
