/**
 * 中间件:日志相关中间件
 * @author: sun977
 * @date: 2025.09.14
 * @description: 定义日志中间件
 * @func:
 *   - GinLoggingMiddleware Gin日志中间件[同时把客户端IP存储到Gin上下文和标准上下文,供后续使用]
 */
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"adminmaster/internal/pkg/logger"
	"adminmaster/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// GinLoggingMiddleware Gin日志中间件
// 记录所有HTTP请求的访问日志和错误日志
// 使用方式: router.Use(middlewareManager.GinLoggingMiddleware())
func (m *MiddlewareManager) GinLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		clientIP := utils.NormalizeIP(c.ClientIP())
		requestID := c.GetString("request_id")
		userAgent := c.GetHeader("User-Agent")

		// 存储到Gin上下文
		c.Set("client_ip", clientIP)

		// 存储到标准上下文
		// handler之下的service/repository层只持有标准上下文，
		// 客户端IP通过统一键透传，便于审计日志取用
		ctx := context.WithValue(c.Request.Context(), utils.ContextKeyClientIP, clientIP)
		c.Request = c.Request.WithContext(ctx)

		// 处理请求
		c.Next()

		// 跳过白名单路径(健康检查等)的访问日志
		path := c.Request.URL.Path
		for _, skipPath := range m.securityConfig.Logging.SkipPaths {
			if path == skipPath {
				return
			}
		}

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		// 获取用户信息（如果已认证）
		userID := uint(0)
		username := ""
		if uid, exists := c.Get("user_id"); exists {
			if uidInt, ok := uid.(int64); ok && uidInt > 0 {
				userID = uint(uidInt)
			}
		}
		if uname, exists := c.Get("username"); exists {
			if unameStr, ok := uname.(string); ok {
				username = unameStr
			}
		}

		if m.securityConfig.Logging.EnableRequestLog {
			logger.LogBusinessOperation("http_request", userID, username, clientIP, requestID, "success", "API Request", map[string]interface{}{
				"operation":     "http_request",
				"method":        c.Request.Method,
				"url":           c.Request.URL.String(),
				"status_code":   statusCode,
				"duration":      duration.Milliseconds(),
				"client_ip":     clientIP,
				"username":      username,
				"user_agent":    userAgent,
				"request_id":    requestID,
				"referer":       c.Request.Referer(),
				"request_size":  c.Request.ContentLength,
				"response_size": int64(c.Writer.Size()),
				"timestamp":     logger.NowFormatted(),
			})
		}

		// 慢请求告警
		if threshold := m.securityConfig.Logging.SlowRequestThreshold; threshold > 0 && duration > threshold {
			logger.WithFields(map[string]interface{}{
				"operation":  "slow_request",
				"method":     c.Request.Method,
				"url":        c.Request.URL.String(),
				"duration":   duration.Milliseconds(),
				"client_ip":  clientIP,
				"request_id": requestID,
			}).Warn("Slow request detected")
		}

		// 如果是错误状态码，记录错误日志
		if statusCode >= 400 {
			errorMsg := http.StatusText(statusCode)
			if errs := c.Errors; len(errs) > 0 {
				errorMsg = errs.String()
			}

			logger.LogError(fmt.Errorf("HTTP %d: %s", statusCode, errorMsg), requestID, userID, clientIP, path, c.Request.Method, map[string]interface{}{
				"operation":   "http_request",
				"method":      c.Request.Method,
				"url":         c.Request.URL.String(),
				"status_code": statusCode,
				"username":    username,
				"client_ip":   clientIP,
				"user_agent":  userAgent,
				"request_id":  requestID,
				"timestamp":   logger.NowFormatted(),
			})
		}
	}
}
