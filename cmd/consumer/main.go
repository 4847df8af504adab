package main

import (
	"Vega_Tube/internal/data"
	"Vega_Tube/internal/repository"
	"Vega_Tube/internal/service"
	"Vega_Tube/pkg/logger"
	"Vega_Tube/pkg/rabbitmq"
	"encoding/json"
	"errors"
	"log"
	"os"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/streadway/amqp"
	gorm_mysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// 消费者进程：连接mysql和rabbitMQ，把服务端发来的观看事件异步持久化
func main() {
	if err := godotenv.Load(); err != nil {
		log.Fatalf(".env文件加载失败")
	}
	logger.InitLogger()

	// 连接数据库
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		logger.Log.Fatal("MYSQL_DSN未配置")
	}
	db, err := gorm.Open(gorm_mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到数据库: %v", err)
	}
	// 连接RabbitMQ
	rabbitMQConn, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		logger.Log.Fatalf("消费者无法连接到RabbitMQ: %v", err)
	}
	defer rabbitMQConn.Close()

	videoRepo := repository.NewVideoRepository(db, nil) // 消费者进程不操作Redis，rdb传nil
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	uow := data.NewUnitOfWork(db, videoRepo, likeRepo, commentRepo, playlistRepo, historyRepo)
	viewService := service.NewViewService(uow)

	// 开始消费消息
	consumeViews(rabbitMQConn, viewService)
}

// 观看事件消费者：1、通过mq的TCP连接创建channel 2、注册消费者 3、利用无缓冲通道持续消费观看消息
// 4、每条消息交给ViewService在一个事务里落库
func consumeViews(conn *amqp.Connection, viewService service.ViewService) {
	ch, err := conn.Channel()
	if err != nil {
		logger.Log.Fatalf("无法打开Channel: %v", err)
	}
	defer ch.Close()

	// 队列声明是幂等的，消费者先起也不会丢
	if _, err := ch.QueueDeclare(service.QueueView, true, false, false, false, nil); err != nil {
		logger.Log.Fatalf("无法声明观看事件队列: %v", err)
	}

	msgs, err := ch.Consume(
		service.QueueView, // queue
		"",                // consumer
		false,             // auto-ack: 手动确认，处理成功才算消费完成
		false,             // exclusive
		false,             // no-local
		false,             // no-wait
		nil,               // args
	)
	if err != nil {
		logger.Log.Fatalf("无法注册观看事件消费者: %v", err)
	}
	// 创建一个没有任何缓冲的bool类型通道
	forever := make(chan bool)

	go func() {
		// msgs不是切片，而是通道channel，如果通道为空不会结束循环，而会“阻塞”
		for d := range msgs {
			logCtx := logger.Log.WithField("body", string(d.Body)).WithField("redelivered", d.Redelivered)
			logCtx.Info("收到一条观看消息")

			var msg service.ViewMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				logCtx.WithError(err).Error("消息JSON解析失败")
				// 对于无法解析的“坏消息”，应该通知mq处理失败，并直接删除
				d.Nack(false, false)
				continue // 处理下一条
			}

			opErr := viewService.ApplyView(msg)

			// 根据数据库操作的结果，来决定如何“确认”消息
			if opErr != nil {
				var mysqlErr *mysql.MySQLError
				// 用errors.As来检查错误的“根”是不是一个MySQLError
				if errors.As(opErr, &mysqlErr) && mysqlErr.Number == 1062 {
					// 错误号 1062 就是 "Duplicate entry"
					logCtx.WithError(opErr).Warn("处理消息时出现重复键错误，可能是一次重复消费，消息将被确认为成功。")
					// 这不是一个需要重试的错误，直接Ack掉
					d.Ack(false)
				} else {
					// 其他类型错误，才要求重试
					logCtx.WithError(opErr).Error("处理消息失败，将进行重试")
					d.Nack(false, true)
				}
			} else {
				d.Ack(false)
			}
		}
	}()
	logger.Log.Info(" [*] 等待观看消息中. 按 CTRL+C 退出")
	// 尝试从forever通道里接收一个值，但没有发送者，这会阻止main函数退出
	<-forever
}
