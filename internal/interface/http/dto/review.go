package dto

import (
	"github.com/xiebiao/bookcatalog/internal/domain/comment"
)

// RatingRequest 评分请求
type RatingRequest struct {
	Score int `json:"score" binding:"required" example:"5"`
}

// CommentRequest 评论请求
type CommentRequest struct {
	Content string `json:"content" binding:"required,max=1000" example:"值得一读"`
}

// CommentResponse 评论响应
type CommentResponse struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	UserID    uint   `json:"user_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// ToCommentResponses 批量转换
func ToCommentResponses(comments []*comment.Comment) []CommentResponse {
	out := make([]CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = CommentResponse{
			ID:        c.ID,
			BookID:    c.BookID,
			UserID:    c.UserID,
			Content:   c.Content,
			CreatedAt: c.CreatedAt.Format(TimeLayout),
		}
	}
	return out
}
