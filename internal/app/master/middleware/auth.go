/**
 * 中间件:认证相关中间件
 * @author: sun977
 * @date: 2025.09.14
 * @description: 定义认证相关中间件
 * @func:
 *   - GinJWTAuthMiddleware: Gin JWT认证中间件
 *   - GinUserActiveMiddleware: 检查用户是否可用中间件
 *   - GinAdminRoleMiddleware: 检查用户是否具有管理员角色中间件
 */
package middleware

import (
	"net/http"

	"adminmaster/internal/model"
	"adminmaster/internal/pkg/auth"
	"adminmaster/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// =============================================================================
// JWT认证相关中间件
// =============================================================================

// GinJWTAuthMiddleware Gin JWT认证中间件
// 验证请求头中的JWT令牌，并将用户信息存储到Gin上下文中
// 配置在 security.auth.skip_paths 中的路径跳过认证
// 使用方式: router.Use(middlewareManager.GinJWTAuthMiddleware())
func (m *MiddlewareManager) GinJWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 跳过白名单路径(登录/健康检查等)
		path := c.Request.URL.Path
		for _, skipPath := range m.securityConfig.Auth.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		clientIP := c.ClientIP()
		requestID := c.GetString("request_id")

		// 从请求头中提取访问令牌
		accessToken := auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		if accessToken == "" {
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code: http.StatusUnauthorized,
				Msg:  "缺少访问令牌",
			})
			c.Abort()
			return
		}

		// 验证令牌
		claims, err := m.jwtManager.ValidateAccessToken(accessToken)
		if err != nil {
			logger.LogError(err, requestID, 0, clientIP, path, c.Request.Method, map[string]interface{}{
				"operation": "token_validation",
				"client_ip": clientIP,
				"timestamp": logger.NowFormatted(),
			})
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code: http.StatusUnauthorized,
				Msg:  "令牌无效或已过期",
			})
			c.Abort()
			return
		}

		// 将用户信息写入Gin上下文，供后续中间件与handler使用
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role_keys", claims.RoleKeys)

		c.Next()
	}
}

// =============================================================================
// 用户状态验证中间件
// =============================================================================

// GinUserActiveMiddleware Gin用户状态中间件
// 令牌有效但账户已被禁用或删除时拒绝请求，保证禁用立即生效
// 使用方式: router.Use(middlewareManager.GinUserActiveMiddleware())
func (m *MiddlewareManager) GinUserActiveMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("user_id")
		if !exists {
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code: http.StatusUnauthorized,
				Msg:  "用户未认证",
			})
			c.Abort()
			return
		}

		userIDInt, ok := userID.(int64)
		if !ok {
			c.JSON(http.StatusInternalServerError, model.APIResponse{
				Code: http.StatusInternalServerError,
				Msg:  "用户标识类型错误",
			})
			c.Abort()
			return
		}

		user, err := m.userRepo.GetUserByID(c.Request.Context(), userIDInt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, model.APIResponse{
				Code: http.StatusInternalServerError,
				Msg:  "服务器内部错误",
			})
			c.Abort()
			return
		}
		if user == nil || user.Status != model.StatusNormal {
			c.JSON(http.StatusForbidden, model.APIResponse{
				Code: http.StatusForbidden,
				Msg:  "用户已被禁用",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// =============================================================================
// 角色权限验证中间件
// =============================================================================

// GinAdminRoleMiddleware Gin管理员角色中间件
// 验证令牌角色声明中是否包含管理员角色
// 使用方式: router.Use(middlewareManager.GinAdminRoleMiddleware())
func (m *MiddlewareManager) GinAdminRoleMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleKeys, exists := c.Get("role_keys")
		if !exists {
			c.JSON(http.StatusUnauthorized, model.APIResponse{
				Code: http.StatusUnauthorized,
				Msg:  "用户未认证",
			})
			c.Abort()
			return
		}

		keys, ok := roleKeys.([]string)
		if !ok {
			c.JSON(http.StatusInternalServerError, model.APIResponse{
				Code: http.StatusInternalServerError,
				Msg:  "角色声明类型错误",
			})
			c.Abort()
			return
		}

		for _, key := range keys {
			if key == model.AdminRoleKey {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, model.APIResponse{
			Code: http.StatusForbidden,
			Msg:  "需要管理员权限",
		})
		c.Abort()
	}
}
