package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	apprating "github.com/xiebiao/bookcatalog/internal/application/rating"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	bookService      book.Service
	listBooks        *appbook.ListBooksUseCase
	registerBooks    *appbook.RegisterBooksUseCase
	updateBook       *appbook.UpdateBookUseCase
	applyDiscount    *appbook.ApplyDiscountUseCase
	removeDuplicates *appbook.RemoveDuplicatesUseCase
	averageRating    *apprating.AverageRatingUseCase
	recomputeRating  *apprating.RecomputeRatingUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	bookService book.Service,
	listBooks *appbook.ListBooksUseCase,
	registerBooks *appbook.RegisterBooksUseCase,
	updateBook *appbook.UpdateBookUseCase,
	applyDiscount *appbook.ApplyDiscountUseCase,
	removeDuplicates *appbook.RemoveDuplicatesUseCase,
	averageRating *apprating.AverageRatingUseCase,
	recomputeRating *apprating.RecomputeRatingUseCase,
) *BookHandler {
	return &BookHandler{
		bookService:      bookService,
		listBooks:        listBooks,
		registerBooks:    registerBooks,
		updateBook:       updateBook,
		applyDiscount:    applyDiscount,
		removeDuplicates: removeDuplicates,
		averageRating:    averageRating,
		recomputeRating:  recomputeRating,
	}
}

// Register 批量登记图书
// @Summary      登记图书
// @Description  按顺序逐本登记,遇到第一本不合法的图书即停止,之前的图书保留
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.RegisterBooksRequest true "图书列表"
// @Success      201 {object} response.Response{data=dto.RegisterBooksResponse}
// @Failure      400 {object} response.Response "参数错误或ISBN校验失败"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books [post]
func (h *BookHandler) Register(c *gin.Context) {
	var req dto.RegisterBooksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	books := make([]*book.Book, len(req.Books))
	for i := range req.Books {
		books[i] = req.Books[i].ToEntity()
	}

	saved, err := h.registerBooks.Execute(c.Request.Context(), books)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, &dto.RegisterBooksResponse{Registered: dto.ToBookResponses(saved)})
}

// List 分页查询图书
// @Summary      图书列表
// @Tags         图书
// @Produce      json
// @Param        page      query int    false "页码"
// @Param        page_size query int    false "每页数量"
// @Param        keyword   query string false "关键词"
// @Param        sort_by   query string false "排序"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.listBooks.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		SortBy:   req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, dto.ToBookResponses(result.Books), result.Total, result.Page, result.PageSize)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := h.bookService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookResponse(b))
}

// GetByISBN 按ISBN查询
// @Summary      按ISBN查询
// @Tags         图书
// @Produce      json
// @Param        isbn path string true "ISBN"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/isbn/{isbn} [get]
func (h *BookHandler) GetByISBN(c *gin.Context) {
	b, err := h.bookService.GetByISBN(c.Request.Context(), c.Param("isbn"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookResponse(b))
}

// Update 部分更新
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                   true "图书ID"
// @Param        request body dto.UpdateBookRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Failure      404 {object} response.Response "图书或作者不存在"
// @Failure      409 {object} response.Response "ISBN已存在"
// @Router       /api/v1/books/{id} [patch]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.updateBook.Execute(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookResponse(b))
}

// Delete 删除图书
// @Summary      删除图书
// @Tags         图书
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.bookService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// ListByGenre 按类型查询
// @Summary      按类型查询
// @Tags         图书
// @Produce      json
// @Param        genre path string true "类型"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      409 {object} response.Response "没有匹配的图书"
// @Router       /api/v1/books/genre/{genre} [get]
func (h *BookHandler) ListByGenre(c *gin.Context) {
	books, err := h.bookService.ListByGenre(c.Request.Context(), c.Param("genre"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookResponses(books))
}

// TopSellers 销量前10
// @Summary      畅销榜
// @Tags         图书
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/books/top-sellers [get]
func (h *BookHandler) TopSellers(c *gin.Context) {
	books, err := h.bookService.TopSellers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookResponses(books))
}

// ListByMinRating 评分不低于min的图书
// @Summary      按评分筛选
// @Tags         图书
// @Produce      json
// @Param        min query number false "最低评分"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/books/rated [get]
func (h *BookHandler) ListByMinRating(c *gin.Context) {
	var req dto.MinRatingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	books, err := h.bookService.ListByMinRating(c.Request.Context(), req.Min)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookResponses(books))
}

// AverageRating 平均评分
// @Summary      平均评分
// @Tags         评分
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=apprating.AverageRatingResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/rating [get]
func (h *BookHandler) AverageRating(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.averageRating.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// OverrideRating 管理员直接设置评分,不经过重算
// @Summary      覆盖评分
// @Tags         评分
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "图书ID"
// @Param        request body dto.OverrideRatingRequest true "评分"
// @Success      200 {object} response.Response{data=dto.BookResponse}
// @Router       /api/v1/books/{id}/rating [put]
func (h *BookHandler) OverrideRating(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.OverrideRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	b, err := h.bookService.OverrideRating(c.Request.Context(), id, *req.Rating)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookResponse(b))
}

// RecomputeRating 按全部评分重新计算
// @Summary      重算评分
// @Tags         评分
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response
// @Router       /api/v1/books/{id}/rating/recompute [post]
func (h *BookHandler) RecomputeRating(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	avg, err := h.recomputeRating.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"book_id": id, "average": avg})
}

// ApplyDiscount 按出版社打折
// @Summary      出版社折扣
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.DiscountRequest true "出版社和折扣比例"
// @Success      200 {object} response.Response{data=appbook.ApplyDiscountResponse}
// @Failure      409 {object} response.Response "没有匹配的图书"
// @Router       /api/v1/books/discount [post]
func (h *BookHandler) ApplyDiscount(c *gin.Context) {
	var req dto.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.applyDiscount.Execute(c.Request.Context(), appbook.ApplyDiscountRequest{
		Publisher: req.Publisher,
		Percent:   req.Percent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// RemoveDuplicates 按ISBN去重
// @Summary      图书去重
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.DuplicatesResponse}
// @Router       /api/v1/books/dedup [post]
func (h *BookHandler) RemoveDuplicates(c *gin.Context) {
	result, err := h.removeDuplicates.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	ids := make([]uint, len(result.Removed))
	for i, b := range result.Removed {
		ids[i] = b.ID
	}
	response.Success(c, &dto.DuplicatesResponse{Kept: len(result.Survivors), RemovedIDs: ids})
}
