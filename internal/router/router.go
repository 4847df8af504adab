package router

import (
	"Vega_Tube/internal/handler"
	"Vega_Tube/internal/middleware"
	"Vega_Tube/internal/token"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handlers 收拢全部handler，避免SetupRouter的参数列表无限膨胀
type Handlers struct {
	User         handler.UserHandler
	Video        handler.VideoHandler
	Like         handler.LikeHandler
	Subscription handler.SubscriptionHandler
	Comment      handler.CommentHandler
	Tweet        handler.TweetHandler
	Playlist     handler.PlaylistHandler
	Dashboard    handler.DashboardHandler
}

func SetupRouter(h Handlers, issuer *token.Issuer) *gin.Engine {
	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pang",
		})
	})

	apiV1 := r.Group("/api/v1")
	auth := middleware.AuthMiddleware(issuer)
	{
		userGroup := apiV1.Group("/users")
		{
			userGroup.POST("/register", h.User.Register)
			userGroup.POST("/login", h.User.Login)
			// 刷新令牌靠refresh token自证身份，不走access token中间件
			userGroup.POST("/refresh_token", h.User.RefreshAccessToken)

			authedUsers := userGroup.Group("/", auth)
			{
				authedUsers.POST("/logout", h.User.Logout)
				authedUsers.POST("/change_password", h.User.ChangePassword)
				authedUsers.GET("/current", h.User.GetCurrentUser)
				authedUsers.PATCH("/update_account", h.User.UpdateAccount)
				authedUsers.PATCH("/avatar", h.User.UpdateAvatar)
				authedUsers.PATCH("/cover_image", h.User.UpdateCoverImage)
				authedUsers.GET("/c/:username", h.User.GetChannelProfile)
				authedUsers.GET("/history", h.User.GetWatchHistory)
				authedUsers.GET("/search", h.User.SearchUsers)
			}
		}

		videoGroup := apiV1.Group("/videos", auth)
		{
			videoGroup.POST("/", h.Video.PublishVideo)
			videoGroup.GET("/", h.Video.GetFeed)
			videoGroup.GET("/my_content", h.Video.GetMyVideos)
			videoGroup.GET("/:video_id", h.Video.GetVideoByID)
			videoGroup.PATCH("/:video_id", h.Video.UpdateVideo)
			videoGroup.DELETE("/:video_id", h.Video.DeleteVideo)
			videoGroup.PATCH("/toggle_publish/:video_id", h.Video.TogglePublishStatus)

			videoGroup.GET("/:video_id/comments", h.Comment.GetComments)
			videoGroup.POST("/:video_id/comments", h.Comment.AddComment)
		}

		likeGroup := apiV1.Group("/likes", auth)
		{
			likeGroup.POST("/toggle/v/:video_id", h.Like.ToggleVideoLike)
			likeGroup.POST("/toggle/c/:comment_id", h.Like.ToggleCommentLike)
			likeGroup.POST("/toggle/t/:tweet_id", h.Like.ToggleTweetLike)
			likeGroup.GET("/count/v/:video_id", h.Like.GetVideoLikeCount)
			likeGroup.GET("/count/c/:comment_id", h.Like.GetCommentLikeCount)
			likeGroup.GET("/count/t/:tweet_id", h.Like.GetTweetLikeCount)
			likeGroup.GET("/videos", h.Like.GetLikedVideos)
		}

		subGroup := apiV1.Group("/subscriptions", auth)
		{
			subGroup.POST("/c/:channel_id", h.Subscription.ToggleSubscription)
			subGroup.GET("/c/:channel_id", h.Subscription.GetChannelSubscribers)
			subGroup.GET("/u/:subscriber_id", h.Subscription.GetSubscribedChannels)
		}

		commentGroup := apiV1.Group("/comments", auth)
		{
			commentGroup.PATCH("/:comment_id", h.Comment.UpdateComment)
			commentGroup.DELETE("/:comment_id", h.Comment.DeleteComment)
		}

		tweetGroup := apiV1.Group("/tweets", auth)
		{
			tweetGroup.POST("/", h.Tweet.CreateTweet)
			tweetGroup.GET("/user/:user_id", h.Tweet.GetUserTweets)
			tweetGroup.PATCH("/:tweet_id", h.Tweet.UpdateTweet)
			tweetGroup.DELETE("/:tweet_id", h.Tweet.DeleteTweet)
		}

		playlistGroup := apiV1.Group("/playlists", auth)
		{
			playlistGroup.POST("/", h.Playlist.CreatePlaylist)
			playlistGroup.GET("/user/:user_id", h.Playlist.GetUserPlaylists)
			playlistGroup.GET("/:playlist_id", h.Playlist.GetPlaylistByID)
			playlistGroup.PATCH("/:playlist_id", h.Playlist.UpdatePlaylist)
			playlistGroup.DELETE("/:playlist_id", h.Playlist.DeletePlaylist)
			playlistGroup.PATCH("/add/:video_id/:playlist_id", h.Playlist.AddVideoToPlaylist)
			playlistGroup.PATCH("/remove/:video_id/:playlist_id", h.Playlist.RemoveVideoFromPlaylist)
		}

		dashboardGroup := apiV1.Group("/dashboard", auth)
		{
			dashboardGroup.GET("/stats", h.Dashboard.GetChannelStats)
			dashboardGroup.GET("/videos", h.Dashboard.GetChannelVideos)
		}
	}

	return r
}
