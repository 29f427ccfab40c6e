package handler

import (
	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookcatalog/internal/application/user"
	"github.com/xiebiao/bookcatalog/internal/domain/user"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// UserHandler 用户HTTP处理器
// Handler只负责解析请求、调用应用层、返回响应
type UserHandler struct {
	userService     user.Service
	registerUseCase *appuser.RegisterUseCase
	loginUseCase    *appuser.LoginUseCase
	logoutUseCase   *appuser.LogoutUseCase
}

// NewUserHandler 创建用户处理器
func NewUserHandler(
	userService user.Service,
	registerUseCase *appuser.RegisterUseCase,
	loginUseCase *appuser.LoginUseCase,
	logoutUseCase *appuser.LogoutUseCase,
) *UserHandler {
	return &UserHandler{
		userService:     userService,
		registerUseCase: registerUseCase,
		loginUseCase:    loginUseCase,
		logoutUseCase:   logoutUseCase,
	}
}

// Register 用户注册
// @Summary      用户注册
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} response.Response{data=dto.UserResponse} "注册成功"
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "用户名已被占用"
// @Router       /api/v1/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.registerUseCase.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username:    req.Username,
		Password:    req.Password,
		Name:        req.Name,
		Email:       req.Email,
		HomeAddress: req.HomeAddress,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Login 用户登录
// @Summary      用户登录
// @Tags         用户
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appuser.LoginResponse} "登录成功"
// @Failure      401 {object} response.Response "用户名或密码错误"
// @Router       /api/v1/users/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: req.Username,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Logout 登出,当前Token加入黑名单
// @Summary      用户登出
// @Tags         用户
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/v1/users/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	err := h.logoutUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), middleware.GetAccessToken(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Get 按用户名查询
// @Summary      用户信息
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "用户名"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      404 {object} response.Response "用户不存在"
// @Router       /api/v1/users/{username} [get]
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(u))
}

// Update 部分更新,只能修改自己的资料
// @Summary      更新用户
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username path string                true "用户名"
// @Param        request  body dto.UpdateUserRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=dto.UserResponse}
// @Failure      403 {object} response.Response "无权限"
// @Failure      409 {object} response.Response "用户名已被占用"
// @Router       /api/v1/users/{username} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	username, ok := self(c)
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.userService.Update(c.Request.Context(), username, req.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.ToUserResponse(u))
}

// Delete 注销账号,同时删除购物车和信用卡
// @Summary      删除用户
// @Tags         用户
// @Security     BearerAuth
// @Param        username path string true "用户名"
// @Success      200 {object} response.Response
// @Failure      403 {object} response.Response "无权限"
// @Router       /api/v1/users/{username} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	username, ok := self(c)
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), username); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// AddCreditCard 绑定信用卡
// @Summary      绑定信用卡
// @Tags         用户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username path string                true "用户名"
// @Param        request  body dto.CreditCardRequest true "卡信息"
// @Success      201 {object} response.Response{data=dto.CreditCardResponse}
// @Router       /api/v1/users/{username}/credit-cards [post]
func (h *UserHandler) AddCreditCard(c *gin.Context) {
	username, ok := self(c)
	if !ok {
		return
	}
	var req dto.CreditCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	card, err := h.userService.AddCreditCard(c.Request.Context(), username, &user.CreditCard{
		CardNumber:     req.CardNumber,
		ExpirationDate: req.ExpirationDate,
		CVV:            req.CVV,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ToCreditCardResponse(card))
}

// ListCreditCards 信用卡列表
// @Summary      信用卡列表
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Param        username path string true "用户名"
// @Success      200 {object} response.Response{data=[]dto.CreditCardResponse}
// @Router       /api/v1/users/{username}/credit-cards [get]
func (h *UserHandler) ListCreditCards(c *gin.Context) {
	username, ok := self(c)
	if !ok {
		return
	}
	cards, err := h.userService.ListCreditCards(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	out := make([]dto.CreditCardResponse, len(cards))
	for i, card := range cards {
		out[i] = dto.ToCreditCardResponse(card)
	}
	response.Success(c, out)
}

// self 路径中的用户名必须是当前登录用户
func self(c *gin.Context) (string, bool) {
	username := c.Param("username")
	if username != middleware.GetUsername(c) {
		response.Error(c, apperrors.ErrForbidden)
		return "", false
	}
	return username, true
}
