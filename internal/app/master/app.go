/*
 * @author: sun977
 * @date: 2025.09.14
 * @description: 应用装配，负责配置加载、日志初始化、数据库/Redis连接与路由装配
 * @func: NewApp/GetConfig/GetRouter/Close
 */
package master

import (
	"fmt"

	"adminmaster/internal/app/master/router"
	"adminmaster/internal/config"
	"adminmaster/internal/pkg/database"
	"adminmaster/internal/pkg/logger"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// App 应用程序结构体
type App struct {
	config      *config.Config
	router      *router.Router
	db          *gorm.DB
	redisClient *redis.Client
}

// NewApp 创建新的应用程序实例
// 装配顺序: 配置 -> 日志 -> MySQL -> Redis(可降级) -> 路由
func NewApp() (*App, error) {
	// 加载配置(路径与环境可通过环境变量覆盖)
	cfg, err := config.LoadConfig("", "")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 初始化日志
	if _, err := logger.InitLogger(&cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	// 初始化MySQL连接
	db, err := database.NewMySQLConnection(&cfg.Database.MySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect mysql: %w", err)
	}

	// 初始化Redis连接
	// Redis仅承载路由投影/字典/参数缓存，连接失败时降级为直查数据库
	redisClient, err := database.NewRedisConnection(&cfg.Database.Redis)
	if err != nil {
		logger.WithFields(map[string]interface{}{
			"operation": "redis_connection",
			"func_name": "master.NewApp",
			"error":     err.Error(),
		}).Warn("Redis连接失败，缓存功能降级")
		redisClient = nil
	}

	// 初始化路由器
	r := router.NewRouter(db, redisClient, cfg)
	r.SetupRoutes()

	// 启动配置热加载，日志配置变更时重建日志器
	// 监听失败不阻塞启动，仅损失热加载能力
	if err := config.StartConfigWatcher("", ""); err != nil {
		logger.WithFields(map[string]interface{}{
			"operation": "config_watcher",
			"func_name": "master.NewApp",
			"error":     err.Error(),
		}).Warn("配置监听启动失败，热加载不可用")
	} else {
		config.AddConfigReloadCallback(reloadLogConfig)
	}

	logger.WithFields(map[string]interface{}{
		"operation":   "app_init",
		"func_name":   "master.NewApp",
		"app_name":    cfg.App.Name,
		"environment": cfg.App.Environment,
	}).Info("应用初始化完成")

	return &App{
		config:      cfg,
		router:      r,
		db:          db,
		redisClient: redisClient,
	}, nil
}

// GetConfig 获取应用配置
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetRouter 获取路由器实例
func (a *App) GetRouter() *router.Router {
	return a.router
}

// reloadLogConfig 配置重载回调，日志配置变化时以新配置重建日志器
func reloadLogConfig(oldConfig, newConfig *config.Config) error {
	if oldConfig != nil && oldConfig.Log == newConfig.Log {
		return nil
	}
	if _, err := logger.InitLogger(&newConfig.Log); err != nil {
		return fmt.Errorf("failed to reinit logger: %w", err)
	}
	logger.WithFields(map[string]interface{}{
		"operation": "log_config_reload",
		"func_name": "master.reloadLogConfig",
		"level":     newConfig.Log.Level,
	}).Info("日志配置已热加载")
	return nil
}

// Close 释放应用持有的连接资源
func (a *App) Close() error {
	if err := config.StopConfigWatcher(); err != nil {
		logger.WithFields(map[string]interface{}{
			"operation": "config_watcher_stop",
			"func_name": "master.Close",
			"error":     err.Error(),
		}).Warn("配置监听关闭失败")
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logger.WithFields(map[string]interface{}{
				"operation": "redis_close",
				"func_name": "master.Close",
				"error":     err.Error(),
			}).Warn("Redis连接关闭失败")
		}
	}

	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql db: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close mysql: %w", err)
		}
	}
	return nil
}
