package service

import (
	"Vega_Tube/internal/data"
	"Vega_Tube/internal/errs"
	"Vega_Tube/internal/model"
	"Vega_Tube/internal/repository"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type CommentService interface {
	AddComment(ownerID, videoID uint64, content string) (*model.Comment, error)
	// 分页获取一个视频的评论，顺带返回总数
	GetComments(videoID uint64, page, pageSize int) ([]model.Comment, int64, error)
	UpdateComment(commentID, ownerID uint64, content string) (*model.Comment, error)
	DeleteComment(commentID, ownerID uint64) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	videoRepo   repository.VideoRepository
	uow         data.UnitOfWork
}

func NewCommentService(commentRepo repository.CommentRepository, videoRepo repository.VideoRepository, uow data.UnitOfWork) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
		uow:         uow,
	}
}

// 发评论：1、内容不能是纯空白 2、确认视频存在 3、落库后带着作者信息再查出来返回
func (s *commentService) AddComment(ownerID, videoID uint64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errs.ErrValidation
	}
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}

	newComment := &model.Comment{
		OwnerID: ownerID,
		VideoID: videoID,
		Content: content,
	}
	if err := s.commentRepo.Create(newComment); err != nil {
		return nil, err
	}
	// 创建成功后立刻带关联数据查出来，FindByID顺带Preload出Owner
	return s.commentRepo.FindByID(newComment.ID)
}

func (s *commentService) GetComments(videoID uint64, page, pageSize int) ([]model.Comment, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	if _, err := s.videoRepo.FindByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, errs.ErrNotFound
		}
		return nil, 0, err
	}

	comments, err := s.commentRepo.ListByVideo(videoID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.commentRepo.CountByVideo(videoID)
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// findOwned 查评论并校验归属，不是自己的评论统一按“不存在”处理
func (s *commentService) findOwned(commentID, ownerID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	if comment.OwnerID != ownerID {
		return nil, errs.ErrNotFound
	}
	return comment, nil
}

func (s *commentService) UpdateComment(commentID, ownerID uint64, content string) (*model.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, errs.ErrValidation
	}
	if _, err := s.findOwned(commentID, ownerID); err != nil {
		return nil, err
	}
	if _, err := s.commentRepo.UpdateContent(commentID, content); err != nil {
		return nil, err
	}
	return s.commentRepo.FindByID(commentID)
}

// 删评论：评论本体和它身上的点赞在同一个事务里清掉
func (s *commentService) DeleteComment(commentID, ownerID uint64) error {
	if _, err := s.findOwned(commentID, ownerID); err != nil {
		return err
	}
	return s.uow.Execute(func(repos *data.TransactionalRepositories) error {
		if err := repos.LikeRepo.DeleteByTarget(model.LikeTargetComment, commentID); err != nil {
			return err
		}
		_, err := repos.CommentRepo.Delete(commentID)
		return err
	})
}
