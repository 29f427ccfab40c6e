// Package router 注册HTTP路由
package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// Handlers 全部HTTP处理器
type Handlers struct {
	User     *handler.UserHandler
	Book     *handler.BookHandler
	Author   *handler.AuthorHandler
	Review   *handler.ReviewHandler
	Wishlist *handler.WishlistHandler
	Cart     *handler.CartHandler
}

// New 创建并配置Gin引擎
//
// 公开接口:注册、登录、图书和作者查询、评分与评论查询
// 其余接口需要登录
func New(cfg *config.Config, log *zap.Logger, h *Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), middleware.Recovery(log))

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong", "status": "healthy"})
	})
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler()))
	}
	// 访问 /swagger/index.html 查看API文档,生产环境建议关闭
	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	requireAuth := auth.RequireAuth()
	v1 := r.Group("/api/v1")

	// 用户
	users := v1.Group("/users")
	{
		users.POST("/register", h.User.Register)
		users.POST("/login", h.User.Login)
		users.POST("/logout", requireAuth, h.User.Logout)
		users.GET("/:username", requireAuth, h.User.Get)
		users.PATCH("/:username", requireAuth, h.User.Update)
		users.DELETE("/:username", requireAuth, h.User.Delete)
		users.POST("/:username/credit-cards", requireAuth, h.User.AddCreditCard)
		users.GET("/:username/credit-cards", requireAuth, h.User.ListCreditCards)
	}

	// 图书
	books := v1.Group("/books")
	{
		books.GET("", h.Book.List)
		books.GET("/top-sellers", h.Book.TopSellers)
		books.GET("/rated", h.Book.ListByMinRating)
		books.GET("/isbn/:isbn", h.Book.GetByISBN)
		books.GET("/genre/:genre", h.Book.ListByGenre)
		books.GET("/:id", h.Book.Get)
		books.GET("/:id/rating", h.Book.AverageRating)
		books.GET("/:id/comments", h.Review.Comments)

		books.POST("", requireAuth, h.Book.Register)
		books.POST("/discount", requireAuth, h.Book.ApplyDiscount)
		books.POST("/dedup", requireAuth, h.Book.RemoveDuplicates)
		books.PATCH("/:id", requireAuth, h.Book.Update)
		books.DELETE("/:id", requireAuth, h.Book.Delete)
		books.PUT("/:id/rating", requireAuth, h.Book.OverrideRating)
		books.POST("/:id/rating/recompute", requireAuth, h.Book.RecomputeRating)
		books.POST("/:id/ratings", requireAuth, h.Review.Rate)
		books.POST("/:id/comments", requireAuth, h.Review.Comment)
	}

	// 作者
	authors := v1.Group("/authors")
	{
		authors.GET("/:id", h.Author.Get)
		authors.GET("/:id/books", h.Author.Books)
		authors.POST("", requireAuth, h.Author.Register)
		authors.POST("/dedup", requireAuth, h.Author.RemoveDuplicates)
	}

	// 心愿单
	wishlists := v1.Group("/wishlists", requireAuth)
	{
		wishlists.POST("", h.Wishlist.Create)
		wishlists.GET("", h.Wishlist.Mine)
		wishlists.GET("/:id/books", h.Wishlist.Books)
		wishlists.POST("/:id/books", h.Wishlist.AddBook)
		wishlists.DELETE("/:id/books/:bookId", h.Wishlist.RemoveBook)
		wishlists.POST("/:id/books/:bookId/move-to-cart", h.Wishlist.MoveToCart)
	}

	// 购物车
	shoppingCart := v1.Group("/cart", requireAuth)
	{
		shoppingCart.GET("/books", h.Cart.Books)
		shoppingCart.POST("/books", h.Cart.AddBook)
		shoppingCart.DELETE("/books/:bookId", h.Cart.RemoveBook)
		shoppingCart.GET("/subtotal", h.Cart.Subtotal)
	}

	return r
}
