package main

import (
	"Vega_Tube/internal/model"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	fmt.Println("🚀 开始填充测试数据...")

	if err := godotenv.Load(); err != nil {
		log.Fatalf("❌ .env文件加载失败")
	}

	// --- 1. 连接数据库 ---
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		log.Fatalf("❌ MYSQL_DSN未配置")
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ 无法连接到数据库: %v", err)
	}
	fmt.Println("✅ 数据库连接成功!")

	// --- 2. 清理旧数据 ---
	fmt.Println("🧹 正在清理旧数据...")
	// 注意：这将删除所有数据！
	db.Migrator().DropTable(
		&model.PlaylistVideo{},
		&model.Playlist{},
		&model.Tweet{},
		&model.Comment{},
		&model.Subscription{},
		&model.Like{},
		&model.WatchHistory{},
		&model.VideoView{},
		&model.Video{},
		&model.User{},
	)
	fmt.Println("✅ 旧表删除成功!")

	// 重新迁移，创建新表
	db.AutoMigrate(
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
	fmt.Println("✅ 数据库迁移成功!")

	rand.Seed(time.Now().UnixNano())

	// --- 3. 创建用户 ---
	fmt.Println("👥 正在创建用户...")
	userCount := 100
	// 为所有用户设置一个简单的默认密码 "password"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ 密码加密失败: %v", err)
	}
	for i := 0; i < userCount; i++ {
		user := model.User{
			Username: fmt.Sprintf("%s%d", faker.Username(), i), // 拼上序号，避免faker撞上唯一索引
			Email:    fmt.Sprintf("user%d_%s", i, faker.Email()),
			FullName: faker.Name(),
			Password: string(hashedPassword),
		}
		db.Create(&user)
	}
	fmt.Printf("✅ 成功创建 %d 个用户!\n", userCount)

	// --- 4. 创建视频 ---
	fmt.Println("🎬 正在创建视频...")
	videoCount := 500
	for i := 0; i < videoCount; i++ {
		video := model.Video{
			// 从已创建的用户中随机选一个作为频道主
			OwnerID:     uint64(rand.Intn(userCount) + 1),
			Title:       faker.Sentence(),
			Description: faker.Paragraph(),
			VideoURL:    "https://test.com/video.mp4",
			CoverURL:    "https://test.com/cover.jpg",
			Duration:    float64(rand.Intn(600) + 30),
			IsPublished: true,
		}
		db.Create(&video)
	}
	fmt.Printf("✅ 成功创建 %d 个视频!\n", videoCount)

	// --- 5. 创建随机点赞 ---
	fmt.Println("👍 正在创建随机点赞...")
	likeCount := 1000
	for i := 0; i < likeCount; i++ {
		like := model.Like{
			UserID:     uint64(rand.Intn(userCount) + 1),
			TargetType: model.LikeTargetVideo,
			TargetID:   uint64(rand.Intn(videoCount) + 1),
		}
		// 使用GORM的 OnConflict 来避免因为重复点赞而报错
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_type"}, {Name: "target_id"}},
			DoNothing: true,
		}).Create(&like)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机点赞!\n", likeCount)

	// --- 6. 创建随机关注 ---
	fmt.Println("📺 正在创建随机关注...")
	subCount := 500
	for i := 0; i < subCount; i++ {
		subscriberID := uint64(rand.Intn(userCount) + 1)
		channelID := uint64(rand.Intn(userCount) + 1)
		if subscriberID == channelID {
			continue // 不允许关注自己
		}
		sub := model.Subscription{
			SubscriberID: subscriberID,
			ChannelID:    channelID,
		}
		db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "subscriber_id"}, {Name: "channel_id"}},
			DoNothing: true,
		}).Create(&sub)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机关注!\n", subCount)

	// 把点赞数回填到videos表的冗余计数列，保持和likes表一致
	fmt.Println("🔄 正在回填视频点赞数...")
	db.Exec(`UPDATE videos v SET like_count = (
		SELECT COUNT(*) FROM likes l
		WHERE l.target_type = 'video' AND l.target_id = v.id AND l.deleted_at IS NULL
	)`)
	fmt.Println("✅ 点赞数回填完成!")

	fmt.Println("🎉🎉🎉 所有测试数据填充完毕! 🎉🎉🎉")
}
