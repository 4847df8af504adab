package handler

import (
	"Vega_Tube/internal/dto"
	"Vega_Tube/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TweetHandler interface {
	CreateTweet(c *gin.Context)
	GetUserTweets(c *gin.Context)
	UpdateTweet(c *gin.Context)
	DeleteTweet(c *gin.Context)
}

type tweetHandler struct {
	TweetService service.TweetService
}

func NewTweetHandler(tweetService service.TweetService) TweetHandler {
	return &tweetHandler{TweetService: tweetService}
}

type TweetRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *tweetHandler) CreateTweet(c *gin.Context) {
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tweet, err := h.TweetService.CreateTweet(userID, req.Content)
	if err != nil {
		sendError(c, err, "发表动态失败")
		return
	}
	sendSuccess(c, http.StatusCreated, dto.ToTweetResponse(tweet), "动态发表成功")
}

func (h *tweetHandler) GetUserTweets(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	tweets, err := h.TweetService.GetUserTweets(userID)
	if err != nil {
		sendError(c, err, "获取动态失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToTweetResponses(tweets), "成功获取动态")
}

func (h *tweetHandler) UpdateTweet(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "tweet_id")
	if !ok {
		return
	}
	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendErrorResponse(c, http.StatusBadRequest, "无效的参数")
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tweet, err := h.TweetService.UpdateTweet(tweetID, userID, req.Content)
	if err != nil {
		sendError(c, err, "更新动态失败")
		return
	}
	sendSuccess(c, http.StatusOK, dto.ToTweetResponse(tweet), "动态更新成功")
}

func (h *tweetHandler) DeleteTweet(c *gin.Context) {
	tweetID, ok := parseIDParam(c, "tweet_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.TweetService.DeleteTweet(tweetID, userID); err != nil {
		sendError(c, err, "删除动态失败")
		return
	}
	sendSuccess(c, http.StatusOK, nil, "动态删除成功")
}
