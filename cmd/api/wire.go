//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	appauthor "github.com/xiebiao/bookcatalog/internal/application/author"
	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	apprating "github.com/xiebiao/bookcatalog/internal/application/rating"
	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	appwishlist "github.com/xiebiao/bookcatalog/internal/application/wishlist"
	"github.com/xiebiao/bookcatalog/internal/domain/author"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/cart"
	"github.com/xiebiao/bookcatalog/internal/domain/comment"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/domain/wishlist"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/messaging"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookcatalog/internal/interface/http/handler"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	"github.com/xiebiao/bookcatalog/internal/interface/http/router"
)

// infrastructureSet 数据库、Redis、消息队列
var infrastructureSet = wire.NewSet(
	mysql.NewDB,
	redis.NewClient,
	redis.NewSessionStore,
	wire.Bind(new(appuser.SessionStore), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	messaging.NewEventPublisher,
	provideJWTManager,
)

// repositorySet 仓储
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewBookRepository,
	mysql.NewAuthorRepository,
	mysql.NewRatingRepository,
	mysql.NewCommentRepository,
	mysql.NewWishlistRepository,
	mysql.NewCartRepository,
	mysql.NewTxManager,
)

// domainSet 领域服务
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
	author.NewService,
	comment.NewService,
	wishlist.NewService,
	cart.NewService,
)

// applicationSet 用例
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewRegisterBooksUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewApplyDiscountUseCase,
	appbook.NewRemoveDuplicatesUseCase,
	appauthor.NewRemoveDuplicatesUseCase,
	apprating.NewRecordRatingUseCase,
	apprating.NewRecomputeRatingUseCase,
	apprating.NewAverageRatingUseCase,
	appwishlist.NewMoveToCartUseCase,
)

// interfaceSet HTTP层
var interfaceSet = wire.NewSet(
	middleware.NewAuthMiddleware,
	handler.NewUserHandler,
	handler.NewBookHandler,
	handler.NewAuthorHandler,
	handler.NewReviewHandler,
	handler.NewWishlistHandler,
	handler.NewCartHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)

// InitializeApp 组装整个应用
// cleanup按创建的逆序关闭消息队列、Redis和数据库连接
func InitializeApp(cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil, nil
}
