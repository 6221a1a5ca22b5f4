/**
 * 路由:公共路由
 * @author: sun977
 * @date: 2025.09.14
 * @description: 公共路由，包含登录等不需要认证的路由
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupPublicRoutes 设置公共路由
func (r *Router) setupPublicRoutes(root *gin.RouterGroup) {
	// 用户登录(带认证专用限流，防止暴力破解)
	root.POST("/login", r.middlewareManager.GinAuthRateLimitMiddleware(), r.sessionHandler.Login)
}
