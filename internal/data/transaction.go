package data

import (
	"Vega_Tube/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork 定义了我们事务管理器的接口
type UnitOfWork interface {
	// Execute 将一个函数包裹在数据库事务中执行。
	// 它会为这个函数提供能在事务中工作的 Repositories。
	Execute(func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories 持有所有需要在同一个事务中操作的 Repository。
// 点赞切换（删行/插行+计数增减）和删除视频的级联清理都要跨多张表，必须原子提交
type TransactionalRepositories struct {
	VideoRepo    repository.VideoRepository
	LikeRepo     repository.LikeRepository
	CommentRepo  repository.CommentRepository
	PlaylistRepo repository.PlaylistRepository
	HistoryRepo  repository.HistoryRepository
}

// db是事务的入口和管理者
type gormUnitOfWork struct {
	db           *gorm.DB
	videoRepo    repository.VideoRepository
	likeRepo     repository.LikeRepository
	commentRepo  repository.CommentRepository
	playlistRepo repository.PlaylistRepository
	historyRepo  repository.HistoryRepository
}

// NewUnitOfWork 创建一个新的、基于GORM的“工作单元”。
// 注意，它接收的是原始的、非事务的 repositories。
func NewUnitOfWork(
	db *gorm.DB,
	videoRepo repository.VideoRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
	playlistRepo repository.PlaylistRepository,
	historyRepo repository.HistoryRepository,
) UnitOfWork {
	return &gormUnitOfWork{
		db:           db,
		videoRepo:    videoRepo,
		likeRepo:     likeRepo,
		commentRepo:  commentRepo,
		playlistRepo: playlistRepo,
		historyRepo:  historyRepo,
	}
}

// 契约：fn func(repos *TransactionalRepositories) error
// 为fn创建事务，把绑定了该事务的Repo副本“注入”进去；fn返回error则整体回滚，返回nil则提交
func (u *gormUnitOfWork) Execute(fn func(repos *TransactionalRepositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		// 临时创建“一次性”的、绑定了特定事务的Repo副本
		transactionalRepos := &TransactionalRepositories{
			VideoRepo:    u.videoRepo.WithTx(tx),
			LikeRepo:     u.likeRepo.WithTx(tx),
			CommentRepo:  u.commentRepo.WithTx(tx),
			PlaylistRepo: u.playlistRepo.WithTx(tx),
			HistoryRepo:  u.historyRepo.WithTx(tx),
		}
		return fn(transactionalRepos)
	})
}
