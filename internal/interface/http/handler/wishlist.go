package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	appwishlist "github.com/xiebiao/bookcatalog/internal/application/wishlist"
	"github.com/xiebiao/bookcatalog/internal/domain/wishlist"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// WishlistHandler 心愿单HTTP处理器,只能操作自己的心愿单
type WishlistHandler struct {
	wishlistService wishlist.Service
	moveToCart      *appwishlist.MoveToCartUseCase
}

// NewWishlistHandler 创建心愿单处理器
func NewWishlistHandler(wishlistService wishlist.Service, moveToCart *appwishlist.MoveToCartUseCase) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService, moveToCart: moveToCart}
}

// Create 创建心愿单
// @Summary      创建心愿单
// @Tags         心愿单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateWishlistRequest true "名称"
// @Success      201 {object} response.Response{data=dto.WishlistResponse}
// @Failure      409 {object} response.Response "名称重复"
// @Router       /api/v1/wishlists [post]
func (h *WishlistHandler) Create(c *gin.Context) {
	var req dto.CreateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	w, err := h.wishlistService.Create(c.Request.Context(), middleware.MustGetUserID(c), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToWishlistResponse(w))
}

// Mine 当前用户的心愿单
// @Summary      我的心愿单
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.WishlistResponse}
// @Router       /api/v1/wishlists [get]
func (h *WishlistHandler) Mine(c *gin.Context) {
	lists, err := h.wishlistService.ListByUser(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dto.WishlistResponse, len(lists))
	for i, w := range lists {
		out[i] = dto.ToWishlistResponse(w)
	}
	response.Success(c, out)
}

// Books 心愿单中的图书
// @Summary      心愿单图书
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "心愿单ID"
// @Success      200 {object} response.Response{data=[]dto.BookResponse}
// @Router       /api/v1/wishlists/{id}/books [get]
func (h *WishlistHandler) Books(c *gin.Context) {
	id, ok := h.owned(c)
	if !ok {
		return
	}
	books, err := h.wishlistService.ListBooks(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToBookResponses(books))
}

// AddBook 加入图书
// @Summary      加入心愿单
// @Tags         心愿单
// @Accept       json
// @Security     BearerAuth
// @Param        id      path int                true "心愿单ID"
// @Param        request body dto.BookRefRequest true "图书"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "图书已在心愿单中"
// @Router       /api/v1/wishlists/{id}/books [post]
func (h *WishlistHandler) AddBook(c *gin.Context) {
	id, ok := h.owned(c)
	if !ok {
		return
	}
	var req dto.BookRefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.wishlistService.AddBook(c.Request.Context(), id, req.BookID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// RemoveBook 移除图书
// @Summary      移出心愿单
// @Tags         心愿单
// @Security     BearerAuth
// @Param        id     path int true "心愿单ID"
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response
// @Failure      409 {object} response.Response "图书不在心愿单中"
// @Router       /api/v1/wishlists/{id}/books/{bookId} [delete]
func (h *WishlistHandler) RemoveBook(c *gin.Context) {
	id, ok := h.owned(c)
	if !ok {
		return
	}
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}
	if err := h.wishlistService.RemoveBook(c.Request.Context(), id, bookID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// MoveToCart 从心愿单移入购物车
// @Summary      移入购物车
// @Description  从心愿单移除并加入购物车,两步在同一事务中完成
// @Tags         心愿单
// @Produce      json
// @Security     BearerAuth
// @Param        id     path int true "心愿单ID"
// @Param        bookId path int true "图书ID"
// @Success      200 {object} response.Response{data=appwishlist.MoveToCartResponse}
// @Failure      404 {object} response.Response "心愿单或图书不存在"
// @Failure      409 {object} response.Response "图书不在心愿单中"
// @Router       /api/v1/wishlists/{id}/books/{bookId}/move-to-cart [post]
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	bookID, ok := pathID(c, "bookId")
	if !ok {
		return
	}

	result, err := h.moveToCart.Execute(c.Request.Context(), appwishlist.MoveToCartRequest{
		WishlistID:  id,
		BookID:      bookID,
		RequesterID: middleware.MustGetUserID(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// owned 解析心愿单ID并检查归属
func (h *WishlistHandler) owned(c *gin.Context) (uint, bool) {
	id, ok := pathID(c, "id")
	if !ok {
		return 0, false
	}
	if err := h.checkOwner(c.Request.Context(), id, middleware.MustGetUserID(c)); err != nil {
		response.Error(c, err)
		return 0, false
	}
	return id, true
}

func (h *WishlistHandler) checkOwner(ctx context.Context, id, userID uint) error {
	w, err := h.wishlistService.Get(ctx, id)
	if err != nil {
		return err
	}
	if !w.IsOwnedBy(userID) {
		return apperrors.ErrForbidden
	}
	return nil
}
