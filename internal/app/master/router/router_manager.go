/**
 * 路由:路由管理器
 * @author: sun977
 * @date: 2025.09.14
 * @description: 路由管理器，包含Router结构体、NewRouter函数和SetupRoutes主函数
 * @func:
 */
package router

import (
	"adminmaster/internal/app/master/middleware"
	"adminmaster/internal/config"
	authHandler "adminmaster/internal/handler/auth"
	systemHandler "adminmaster/internal/handler/system"
	authPkg "adminmaster/internal/pkg/auth"
	"adminmaster/internal/pkg/logger"
	"adminmaster/internal/repository/mysql"
	redisRepo "adminmaster/internal/repository/redis"
	authService "adminmaster/internal/service/auth"
	systemService "adminmaster/internal/service/system"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Router 路由管理器
type Router struct {
	config            *config.Config
	engine            *gin.Engine
	db                *gorm.DB
	redisClient       *redis.Client
	middlewareManager *middleware.MiddlewareManager
	sessionHandler    *authHandler.SessionHandler
	userHandler       *systemHandler.UserHandler
	roleHandler       *systemHandler.RoleHandler
	menuHandler       *systemHandler.MenuHandler
	deptHandler       *systemHandler.DeptHandler
	dictHandler       *systemHandler.DictHandler
	configHandler     *systemHandler.ConfigHandler
}

// NewRouter 创建路由管理器实例
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Router {
	// 初始化工具包
	jwtManager := authPkg.NewJWTManager(
		cfg.Security.JWT.Secret,
		cfg.Security.JWT.Issuer,
		cfg.Security.JWT.AccessTokenExpire,
	)
	passwordManager := authPkg.NewPasswordManager(nil)

	// 初始化数据访问层
	userRepo := mysql.NewUserRepository(db)
	roleRepo := mysql.NewRoleRepository(db)
	menuRepo := mysql.NewMenuRepository(db)
	deptRepo := mysql.NewDeptRepository(db)
	dictRepo := mysql.NewDictRepository(db)
	configRepo := mysql.NewConfigRepository(db)
	cacheRepo := redisRepo.NewCacheRepository(redisClient)

	// 初始化服务层(控制器是服务集合,先初始化服务,然后服务装填成控制器)
	deptService := systemService.NewDeptService(deptRepo)
	menuService := systemService.NewMenuService(menuRepo, roleRepo, cacheRepo)
	dictService := systemService.NewDictService(dictRepo, cacheRepo)
	configService := systemService.NewConfigService(configRepo, cacheRepo)
	roleService := systemService.NewRoleService(roleRepo, userRepo, menuRepo)
	userService := systemService.NewUserService(userRepo, roleRepo, deptRepo, deptService, passwordManager)
	sessionService := authService.NewSessionService(userRepo, menuRepo, passwordManager, jwtManager)

	// 初始化中间件管理器
	middlewareManager := middleware.NewMiddlewareManager(jwtManager, userRepo, &cfg.Security)

	// 初始化处理器
	sessionHandler := authHandler.NewSessionHandler(sessionService, menuService)
	userHandler := systemHandler.NewUserHandler(userService, roleService, deptService)
	roleHandler := systemHandler.NewRoleHandler(roleService, deptService)
	menuHandler := systemHandler.NewMenuHandler(menuService)
	deptHandler := systemHandler.NewDeptHandler(deptService)
	dictHandler := systemHandler.NewDictHandler(dictService)
	configHandler := systemHandler.NewConfigHandler(configService)

	// 创建Gin引擎
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	return &Router{
		config:            cfg,
		engine:            engine,
		db:                db,
		redisClient:       redisClient,
		middlewareManager: middlewareManager,
		sessionHandler:    sessionHandler,
		userHandler:       userHandler,
		roleHandler:       roleHandler,
		menuHandler:       menuHandler,
		deptHandler:       deptHandler,
		dictHandler:       dictHandler,
		configHandler:     configHandler,
	}
}

// SetupRoutes 设置全局中间件和路由
// 在这里配置调用各个路由模块
func (r *Router) SetupRoutes() {
	// 1) 先注册全局中间件；2) 再注册各模块路由。
	r.registerGlobalMiddleware()
	r.registerRoutes()
}

// GetEngine 获取Gin引擎实例
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// registerGlobalMiddleware 注册全局中间件
// 将全局中间件的挂载集中在一个方法中，便于统一管理与测试
func (r *Router) registerGlobalMiddleware() {
	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerGlobalMiddleware",
		"operation": "register_global_middleware",
		"func_name": "router.registerGlobalMiddleware",
	}).Info("开始注册全局中间件")

	// 系统恢复中间件，防止 panic 直接导致进程崩溃
	r.engine.Use(gin.Recovery())

	// 请求ID中间件(放在日志中间件之前，保证日志能取到请求ID)
	r.engine.Use(r.middlewareManager.GinRequestIDMiddleware())
	// CORS 中间件
	r.engine.Use(r.middlewareManager.GinCORSMiddleware())
	// 安全响应头中间件
	r.engine.Use(r.middlewareManager.GinSecurityHeadersMiddleware())
	// 统一日志中间件
	r.engine.Use(r.middlewareManager.GinLoggingMiddleware())
	// 限流中间件
	r.engine.Use(r.middlewareManager.GinRateLimitMiddleware())

	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerGlobalMiddleware",
		"operation": "register_global_middleware",
		"func_name": "router.registerGlobalMiddleware",
	}).Info("全局中间件注册完成")
}

// registerRoutes 注册路由
// 将"中间件注册"和"各模块路由注册"的步骤分离，提升可维护性与可测试性
func (r *Router) registerRoutes() {
	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"func_name": "router.registerRoutes",
	}).Info("开始注册路由")

	root := r.engine.Group("")

	// 公共路由（不需要认证）
	r.setupPublicRoutes(root)
	// 会话路由（需要 JWT 认证）
	r.setupSessionRoutes(root)
	// 系统管理路由（需要 JWT 认证和管理员权限）
	r.setupSystemRoutes(root)
	// 健康检查路由
	r.setupHealthRoutes(root)

	logger.WithFields(map[string]interface{}{
		"path":      "router_manager.registerRoutes",
		"operation": "register_routes",
		"func_name": "router.registerRoutes",
	}).Info("路由注册完成")
}
