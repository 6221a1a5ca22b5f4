package middleware

import (
	"sync"

	"adminmaster/internal/config"
	"adminmaster/internal/pkg/auth"
	"adminmaster/internal/repository/mysql"
)

// MiddlewareManager 中间件管理器
// 负责管理所有Gin框架的中间件，提供统一的中间件接口
type MiddlewareManager struct {
	jwtManager      *auth.JWTManager       // JWT管理器，用于令牌校验
	userRepo        *mysql.UserRepository  // 用户仓储，用于用户状态校验
	securityConfig  *config.SecurityConfig // 安全配置，用于中间件配置
	rateLimiter     RateLimiter
	rateLimiterOnce sync.Once
}

// NewMiddlewareManager 创建中间件管理器
func NewMiddlewareManager(jwtManager *auth.JWTManager, userRepo *mysql.UserRepository, securityConfig *config.SecurityConfig) *MiddlewareManager {
	return &MiddlewareManager{
		jwtManager:     jwtManager,
		userRepo:       userRepo,
		securityConfig: securityConfig,
	}
}
