package dto

import (
	"Vega_Tube/internal/model"
	"time"
)

type CommentResponse struct {
	ID        uint64      `json:"id"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
	Author    UserSummary `json:"author"`
}

func ToCommentResponse(comment *model.Comment) CommentResponse {
	resp := CommentResponse{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
	// 安全地填充作者信息，Owner没被Preload时ID是0
	if comment.Owner.ID != 0 {
		resp.Author = ToUserSummary(&comment.Owner)
	}
	return resp
}

// CommentListResponse 带总数的评论列表，前端分页用
type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
	Total    int64             `json:"total"`
}

func ToCommentListResponse(comments []model.Comment, total int64) CommentListResponse {
	response := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		response = append(response, ToCommentResponse(&comments[i]))
	}
	return CommentListResponse{Comments: response, Total: total}
}
