/**
 * 路由:健康检查路由
 * @author: sun977
 * @date: 2025.09.14
 * @description: 包含健康检查路由
 * @func:
 */

package router

import (
	"net/http"

	"adminmaster/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// setupHealthRoutes 设置健康检查路由
func (r *Router) setupHealthRoutes(root *gin.RouterGroup) {
	// 健康检查
	root.GET("/health", r.healthCheck)
	// 就绪检查
	root.GET("/ready", r.readinessCheck)
	// 存活检查
	root.GET("/live", r.livenessCheck)
}

// 健康检查处理器
func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": logger.NowFormatted(),
	})
}

// readinessCheck 就绪检查处理器
// 检查数据库和Redis连接是否可用
func (r *Router) readinessCheck(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if sqlDB, err := r.db.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		checks["mysql"] = "unavailable"
		ready = false
	} else {
		checks["mysql"] = "ok"
	}

	if r.redisClient != nil {
		if err := r.redisClient.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = "unavailable"
			// Redis不可用时服务降级运行，不影响就绪状态
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	statusText := "ready"
	if !ready {
		status = http.StatusServiceUnavailable
		statusText = "not_ready"
	}

	c.JSON(status, gin.H{
		"status":    statusText,
		"checks":    checks,
		"timestamp": logger.NowFormatted(),
	})
}

// livenessCheck 存活检查处理器
func (r *Router) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": logger.NowFormatted(),
	})
}
