/*
 * @author: sun977
 * @date: 2025.09.12
 * @description: 会话接口处理器(登录/登出/用户信息/路由)
 * @func:
 * 1.Login: 用户名密码登录，签发JWT
 * 2.Logout: 登出(无状态JWT，仅记录审计日志)
 * 3.GetInfo: 当前用户信息+角色+权限标识
 * 4.GetRouters: 前端路由投影(走缓存)
 */
package auth

import (
	"errors"
	"net/http"

	"adminmaster/internal/model"
	"adminmaster/internal/pkg/utils"
	"adminmaster/internal/service/auth"
	"adminmaster/internal/service/system"

	"github.com/gin-gonic/gin"
)

// SessionHandler 会话处理器
type SessionHandler struct {
	sessionService *auth.SessionService
	menuService    *system.MenuService
}

// NewSessionHandler 创建会话处理器实例
func NewSessionHandler(sessionService *auth.SessionService, menuService *system.MenuService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		menuService:    menuService,
	}
}

// Login 用户登录
// POST /login
func (h *SessionHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, model.APIResponse{
			Code: 400,
			Msg:  "请求参数格式错误",
		})
		return
	}

	resp, err := h.sessionService.Login(c.Request.Context(), &req, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidCredentials):
			// 登录失败保持 HTTP 200，前端按 code 提示
			c.JSON(http.StatusOK, model.APIResponse{
				Code: 400,
				Msg:  model.ErrInvalidCredentials.Error(),
			})
		case errors.Is(err, model.ErrUserDisabled):
			c.JSON(http.StatusOK, model.APIResponse{
				Code: 403,
				Msg:  model.ErrUserDisabled.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, model.APIResponse{
				Code: 500,
				Msg:  "服务器内部错误",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":  200,
		"msg":   "操作成功",
		"token": resp.Token,
	})
}

// Logout 用户登出
// POST /logout
func (h *SessionHandler) Logout(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)
	username := utils.GetCurrentUsername(c)

	if err := h.sessionService.Logout(c.Request.Context(), userID, username, c.ClientIP()); err != nil {
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code: 500,
			Msg:  "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{Code: 200, Msg: "退出成功"})
}

// GetInfo 获取当前登录用户信息
// GET /getInfo
func (h *SessionHandler) GetInfo(c *gin.Context) {
	userID := utils.GetCurrentUserID(c)

	resp, err := h.sessionService.GetInfo(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{
				Code:    404,
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code: 500,
			Msg:  "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetRouters 获取前端路由投影
// GET /getRouters
func (h *SessionHandler) GetRouters(c *gin.Context) {
	routers, err := h.menuService.GetRouters(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.APIResponse{
			Code: 500,
			Msg:  "服务器内部错误",
		})
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code: 200,
		Msg:  "操作成功",
		Data: routers,
	})
}
