package main

import (
	"Vega_Tube/internal/data"
	"Vega_Tube/internal/handler"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
	"Vega_Tube/internal/router"
	"Vega_Tube/internal/service"
	"Vega_Tube/internal/token"
	"Vega_Tube/pkg/logger"
	"Vega_Tube/pkg/mediahost"
	"Vega_Tube/pkg/rabbitmq"
	"Vega_Tube/pkg/redis"
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// 加载.env文件
	err := godotenv.Load()
	if err != nil {
		log.Fatalf(".env文件加载失败")
	}
	// 初始化logger
	logger.InitLogger()

	// 初始化Redis
	redisClient, err := redis.InitRedis()
	if err != nil {
		logger.Log.Fatalf("无法连接到Redis: %v", err)
	}
	logger.Log.Info("Redis连接成功")

	// 初始化RabbitMQ
	rabbitMQConn, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		logger.Log.Fatalf("无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close() // 确保程序退出时关闭连接
	logger.Log.Info("RabbitMQ连接成功")

	// 初始化媒体托管客户端（对象存储+ffprobe）
	media, err := mediahost.NewClientFromEnv(context.Background())
	if err != nil {
		logger.Log.Fatalf("无法初始化媒体托管客户端: %v", err)
	}
	logger.Log.Info("媒体托管客户端初始化成功")

	// 数据源名称，用户名:密码@网络协议(地址:端口号)/数据库名?charset=字符集&parseTime=是否解析时间&loc=时区
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		logger.Log.Fatal("MYSQL_DSN未配置")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")
	// db.AutoMigrate(),没有这个表就创建,没有属性列则创建列,没有约束则增加约束;不会主动删除和修改
	err = db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.VideoView{},
		&model.WatchHistory{},
		&model.Like{},
		&model.Subscription{},
		&model.Comment{},
		&model.Tweet{},
		&model.Playlist{},
		&model.PlaylistVideo{},
	)
	if err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	issuer := token.NewIssuerFromEnv()

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	uow := data.NewUnitOfWork(db, videoRepo, likeRepo, commentRepo, playlistRepo, historyRepo)

	userService := service.NewUserService(userRepo, subRepo, historyRepo, issuer, media)
	videoService := service.NewVideoService(videoRepo, uow, media, rabbitMQConn)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo, uow, redisClient)
	subService := service.NewSubscriptionService(subRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, videoRepo, uow)
	tweetService := service.NewTweetService(tweetRepo, userRepo, likeRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo)
	dashboardService := service.NewDashboardService(videoRepo, likeRepo, subRepo)

	handlers := router.Handlers{
		User:         handler.NewUserHandler(userService),
		Video:        handler.NewVideoHandler(videoService),
		Like:         handler.NewLikeHandler(likeService),
		Subscription: handler.NewSubscriptionHandler(subService),
		Comment:      handler.NewCommentHandler(commentService),
		Tweet:        handler.NewTweetHandler(tweetService),
		Playlist:     handler.NewPlaylistHandler(playlistService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
	}

	r := router.SetupRouter(handlers, issuer)
	logger.Log.Println("服务器将在: 8080端口启动")

	if err := r.Run(":8080"); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}
