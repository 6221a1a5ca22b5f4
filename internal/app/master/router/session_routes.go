/**
 * 路由:会话路由
 * @author: sun977
 * @date: 2025.09.14
 * @description: 包含需要JWT认证的当前用户会话路由
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupSessionRoutes 设置会话路由
func (r *Router) setupSessionRoutes(root *gin.RouterGroup) {
	// 会话相关路由（需要JWT认证和用户状态检查）
	session := root.Group("")
	session.Use(r.middlewareManager.GinJWTAuthMiddleware())
	session.Use(r.middlewareManager.GinUserActiveMiddleware())
	{
		// 用户登出
		session.POST("/logout", r.sessionHandler.Logout)
		// 获取当前用户信息(含角色和权限标识)
		session.GET("/getInfo", r.sessionHandler.GetInfo)
		// 获取前端路由投影
		session.GET("/getRouters", r.sessionHandler.GetRouters)
	}
}
