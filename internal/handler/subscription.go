package handler

import (
	"Vega_Tube/internal/dto"
	"Vega_Tube/internal/service"
	"Vega_Tube/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler interface {
	ToggleSubscription(c *gin.Context)
	GetChannelSubscribers(c *gin.Context)
	GetSubscribedChannels(c *gin.Context)
}

type subscriptionHandler struct {
	SubscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) SubscriptionHandler {
	return &subscriptionHandler{SubscriptionService: subscriptionService}
}

// 关注/取关切换，和点赞一样是严格翻转语义
func (h *subscriptionHandler) ToggleSubscription(c *gin.Context) {
	channelID, ok := parseIDParam(c, "channel_id")
	if !ok {
		return
	}
	subscriberID, ok := currentUserID(c)
	if !ok {
		return
	}

	subscribed, err := h.SubscriptionService.Toggle(subscriberID, channelID)
	if err != nil {
		logger.Log.WithError(err).WithField("channel_id", channelID).Error("切换关注状态失败")
		sendError(c, err, "切换关注状态失败")
		return
	}

	message := "已取消关注"
	if subscribed {
		message = "关注成功"
	}
	sendSuccess(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}

func (h *subscriptionHandler) GetChannelSubscribers(c *gin.Context) {
	channelID, ok := parseIDParam(c, "channel_id")
	if !ok {
		return
	}
	subscribers, err := h.SubscriptionService.GetSubscribers(channelID)
	if err != nil {
		sendError(c, err, "获取粉丝列表失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponses(subscribers), "成功获取粉丝列表")
}

func (h *subscriptionHandler) GetSubscribedChannels(c *gin.Context) {
	subscriberID, ok := parseIDParam(c, "subscriber_id")
	if !ok {
		return
	}
	channels, err := h.SubscriptionService.GetSubscribedChannels(subscriberID)
	if err != nil {
		sendError(c, err, "获取关注列表失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToUserResponses(channels), "成功获取关注列表")
}
