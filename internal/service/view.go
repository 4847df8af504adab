package service

import (
	"Vega_Tube/internal/data"
)

// ViewService 观看事件的落库逻辑，服务端发消息、消费者进程调用这里
type ViewService interface {
	ApplyView(msg ViewMessage) error
}

type viewService struct {
	uow data.UnitOfWork
}

func NewViewService(uow data.UnitOfWork) ViewService {
	return &viewService{uow: uow}
}

// ApplyView 一条消息一个事务：1、把观看者插入视频的观看集合 2、只有首次观看才给播放量+1
// 3、无论是否首次都补一条观看历史（历史表也是集合语义，重复观看不产生重复条目）
func (s *viewService) ApplyView(msg ViewMessage) error {
	return s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		firstView, err := repos.HistoryRepo.RecordView(msg.VideoID, msg.UserID)
		if err != nil {
			return err // 事务中，返回任何error都会导致回滚
		}
		// 播放量只认首次观看，重复播放不刷数字
		if firstView {
			if err := repos.VideoRepo.IncrementViewCount(msg.VideoID); err != nil {
				return err
			}
		}
		return repos.HistoryRepo.AddToHistory(msg.UserID, msg.VideoID)
	})
}
