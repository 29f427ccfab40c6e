package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookcatalog/internal/domain/cart"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// CartHandler 当前用户的购物车
type CartHandler struct {
	cartService cart.Service
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(cartService cart.Service) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// Books 购物车中的图书
// @Summary      购物车图书
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Failure      409 {object} response.Response "购物车为空"
// @Router       /api/v1/cart/books [get]
func (h *CartHandler) Books(c *gin.Context) {
	books, err := h.cartService.ListBooks(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookResponses(books))
}

// AddBook 加入购物车,购物车不存在时创建
// @Summary      加入购物车
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRefRequest true "图书"
// @Success      200 {object} response.Response{data=dto.CartResponse}
// @Router       /api/v1/cart/books [post]
func (h *CartHandler) AddBook(c *gin.Context) {
	var req dto.BookRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	sc, err := h.cartService.AddBook(c.Request.Context(), middleware.MustGetUserID(c), req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToCartResponse(sc))
}

// RemoveBook 移出购物车
// @Summary      移出购物车
// @Tags         购物车
// @Security     BearerAuth
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "图书不在购物车中"
// @Router       /api/v1/cart/books/{bookId} [delete]
func (h *CartHandler) RemoveBook(c *gin.Context) {
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}
	if err := h.cartService.RemoveBook(c.Request.Context(), middleware.MustGetUserID(c), bookID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Subtotal 价格合计
// @Summary      购物车合计
// @Tags         购物车
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dto.SubtotalResponse}
// @Router       /api/v1/cart/subtotal [get]
func (h *CartHandler) Subtotal(c *gin.Context) {
	total, err := h.cartService.Subtotal(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, &dto.SubtotalResponse{Subtotal: total, SubtotalYuan: dto.FormatPriceYuan(total)})
}
