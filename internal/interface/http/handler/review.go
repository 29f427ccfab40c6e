package handler

import (
	"github.com/gin-gonic/gin"

	apprating "github.com/xiebiao/bookcatalog/internal/application/rating"
	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// ReviewHandler 评分和评论
type ReviewHandler struct {
	recordRating   *apprating.RecordRatingUseCase
	commentService comment.Service
}

// NewReviewHandler 创建评分评论处理器
func NewReviewHandler(recordRating *apprating.RecordRatingUseCase, commentService comment.Service) *ReviewHandler {
	return &ReviewHandler{recordRating: recordRating, commentService: commentService}
}

// Rate 当前用户为图书评分
// @Summary      评分
// @Description  写入评分并在同一事务中重算平均分
// @Tags         评分
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int               true "图书ID"
// @Param        request body dto.RatingRequest true "分值1-5"
// @Success      201 {object} response.Response{data=apprating.RecordRatingResponse}
// @Failure      400 {object} response.Response "分值越界"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/ratings [post]
func (h *ReviewHandler) Rate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.recordRating.Execute(c.Request.Context(), apprating.RecordRatingRequest{
		UserID: middleware.MustGetUserID(c),
		BookID: id,
		Score:  req.Score,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Comment 发表评论
// @Summary      发表评论
// @Tags         评论
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                true "图书ID"
// @Param        request body dto.CommentRequest true "评论内容"
// @Success      201 {object} response.Response{data=dto.CommentResponse}
// @Router       /api/v1/books/{id}/comments [post]
func (h *ReviewHandler) Comment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cm, err := h.commentService.Add(c.Request.Context(), middleware.MustGetUserID(c), id, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToCommentResponses([]*comment.Comment{cm})[0])
}

// Comments 图书的评论
// @Summary      评论列表
// @Tags         评论
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=[]dto.CommentResponse}
// @Router       /api/v1/books/{id}/comments [get]
func (h *ReviewHandler) Comments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	comments, err := h.commentService.ListByBook(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCommentResponses(comments))
}
