package handler

import (
	"github.com/gin-gonic/gin"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	authorService    author.Service
	bookService      book.Service
	removeDuplicates *appauthor.RemoveDuplicatesUseCase
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(authorService author.Service, bookService book.Service, removeDuplicates *appauthor.RemoveDuplicatesUseCase) *AuthorHandler {
	return &AuthorHandler{
		authorService:    authorService,
		bookService:      bookService,
		removeDuplicates: removeDuplicates,
	}
}

// Register 批量登记作者
// @Summary      登记作者
// @Description  遇到第一个不合法的作者即停止
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.RegisterAuthorsRequest true "作者列表"
// @Success      201 {object} response.Response{data=[]dto.AuthorResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Router       /api/v1/authors [post]
func (h *AuthorHandler) Register(c *gin.Context) {
	var req dto.RegisterAuthorsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	authors := make([]*author.Author, len(req.Authors))
	for i := range req.Authors {
		authors[i] = req.Authors[i].ToEntity()
	}
	saved, err := h.authorService.RegisterBatch(c.Request.Context(), authors)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToAuthorResponses(saved))
}

// Get 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	a, err := h.authorService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToAuthorResponse(a))
}

// Books 作者的图书
// @Summary      作者的图书
// @Tags         作者
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /api/v1/authors/{id}/books [get]
func (h *AuthorHandler) Books(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	books, err := h.bookService.ListByAuthor(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookResponses(books))
}

// RemoveDuplicates 按(名,姓,出版社)去重
// @Summary      作者去重
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.DuplicatesResponse}
// @Router       /api/v1/authors/dedup [post]
func (h *AuthorHandler) RemoveDuplicates(c *gin.Context) {
	result, err := h.removeDuplicates.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	ids := make([]uint, len(result.Removed))
	for i, a := range result.Removed {
		ids[i] = a.ID
	}
	response.Success(c, &dto.DuplicatesResponse{Kept: len(result.Survivors), RemovedIDs: ids})
}
