/*
 * @author: sun977
 * @date: 2025.09.12
 * @description: 参数配置管理服务
 * @func:
 * 1.参数CRUD(软删除，键名唯一，内置参数禁删)
 * 2.按键名取值(带缓存)与缓存刷新
 */
package system

import (
	"context"
	"fmt"

	"adminmaster/internal/model"
	"adminmaster/internal/pkg/logger"
	"adminmaster/internal/repository/mysql"
	"adminmaster/internal/repository/redis"
)

// ConfigService 参数配置管理服务
type ConfigService struct {
	configRepo *mysql.ConfigRepository
	cacheRepo  *redis.CacheRepository
}

// NewConfigService 创建参数配置服务实例
func NewConfigService(configRepo *mysql.ConfigRepository, cacheRepo *redis.CacheRepository) *ConfigService {
	return &ConfigService{
		configRepo: configRepo,
		cacheRepo:  cacheRepo,
	}
}

// ListConfigs 获取参数配置列表(分页)
func (s *ConfigService) ListConfigs(ctx context.Context, query *model.ConfigQuery) ([]*model.Config, int64, error) {
	query.Normalize()
	configs, total, err := s.configRepo.ListConfigs(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list configs: %w", err)
	}
	return configs, total, nil
}

// GetConfig 根据ID获取参数配置
func (s *ConfigService) GetConfig(ctx context.Context, configID int64) (*model.Config, error) {
	cfg, err := s.configRepo.GetConfigByID(ctx, configID)
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("参数[%d]不存在: %w", configID, model.ErrNotFound)
	}
	return cfg, nil
}

// GetConfigValueByKey 按键名获取参数值(优先读缓存，未命中回源并回写)
func (s *ConfigService) GetConfigValueByKey(ctx context.Context, configKey string) (string, error) {
	value, hit, err := s.cacheRepo.GetConfigValue(ctx, configKey)
	if err != nil {
		logger.LogError(err, "", 0, "", "config_cache", "GET", map[string]interface{}{
			"operation":  "get_config_cache",
			"config_key": configKey,
			"timestamp":  logger.NowFormatted(),
		})
	}
	if hit {
		return value, nil
	}

	cfg, err := s.configRepo.GetConfigByKey(ctx, configKey)
	if err != nil {
		return "", fmt.Errorf("failed to get config by key: %w", err)
	}
	if cfg == nil {
		return "", fmt.Errorf("参数键名[%s]不存在: %w", configKey, model.ErrNotFound)
	}

	if err := s.cacheRepo.SetConfigValue(ctx, configKey, cfg.ConfigValue); err != nil {
		logger.LogError(err, "", 0, "", "config_cache", "SET", map[string]interface{}{
			"operation":  "set_config_cache",
			"config_key": configKey,
			"timestamp":  logger.NowFormatted(),
		})
	}
	return cfg.ConfigValue, nil
}

// CreateConfig 创建参数配置
func (s *ConfigService) CreateConfig(ctx context.Context, req *model.CreateConfigRequest, operator string) (*model.Config, error) {
	count, err := s.configRepo.CountByConfigKey(ctx, req.ConfigKey, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check config key: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("参数键名[%s]已存在: %w", req.ConfigKey, model.ErrConflict)
	}

	cfg := &model.Config{
		ConfigName:  req.ConfigName,
		ConfigKey:   req.ConfigKey,
		ConfigValue: req.ConfigValue,
		ConfigType:  defaultString(req.ConfigType, model.ConfigCustom),
		Remark:      req.Remark,
	}
	cfg.CreateBy = operator
	cfg.UpdateBy = operator

	if err := s.configRepo.CreateConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to create config: %w", err)
	}

	logger.LogBusinessOperation("config_create", 0, operator, "", "", "success", "参数创建成功", map[string]interface{}{
		"config_id":  cfg.ConfigID,
		"config_key": cfg.ConfigKey,
	})
	return cfg, nil
}

// UpdateConfig 更新参数配置(body-id 兼容路径传入 req.ConfigID)
func (s *ConfigService) UpdateConfig(ctx context.Context, configID int64, req *model.UpdateConfigRequest, operator string) (*model.Config, error) {
	if configID == 0 {
		configID = req.ConfigID
	}
	if configID == 0 {
		return nil, model.NewValidationError("configId", "参数主键不能为空")
	}

	cfg, err := s.configRepo.GetConfigByID(ctx, configID)
	if err != nil {
		return nil, fmt.Errorf("failed to get config: %w", err)
	}
	if cfg == nil {
		return nil, fmt.Errorf("参数[%d]不存在: %w", configID, model.ErrNotFound)
	}

	oldKey := cfg.ConfigKey
	if req.ConfigKey != nil && *req.ConfigKey != oldKey {
		count, err := s.configRepo.CountByConfigKey(ctx, *req.ConfigKey, configID)
		if err != nil {
			return nil, fmt.Errorf("failed to check config key: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("参数键名[%s]已存在: %w", *req.ConfigKey, model.ErrConflict)
		}
		cfg.ConfigKey = *req.ConfigKey
	}
	if req.ConfigName != nil {
		cfg.ConfigName = *req.ConfigName
	}
	if req.ConfigValue != nil {
		cfg.ConfigValue = *req.ConfigValue
	}
	if req.ConfigType != nil {
		cfg.ConfigType = *req.ConfigType
	}
	if req.Remark != nil {
		cfg.Remark = *req.Remark
	}
	cfg.UpdateBy = operator

	if err := s.configRepo.UpdateConfig(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to update config: %w", err)
	}

	// 旧键名缓存失效，新值下次读取时回源
	s.invalidateKeyCache(ctx, oldKey)
	if cfg.ConfigKey != oldKey {
		s.invalidateKeyCache(ctx, cfg.ConfigKey)
	}

	logger.LogBusinessOperation("config_update", 0, operator, "", "", "success", "参数更新成功", map[string]interface{}{
		"config_id": cfg.ConfigID,
	})
	return cfg, nil
}

// DeleteConfig 删除参数配置(软删除)
// 系统内置参数拒绝删除
func (s *ConfigService) DeleteConfig(ctx context.Context, configID int64, operator string) error {
	cfg, err := s.configRepo.GetConfigByID(ctx, configID)
	if err != nil {
		return fmt.Errorf("failed to get config: %w", err)
	}
	if cfg == nil {
		return fmt.Errorf("参数[%d]不存在: %w", configID, model.ErrNotFound)
	}
	if cfg.IsBuiltIn() {
		return fmt.Errorf("系统内置参数[%s]不允许删除: %w", cfg.ConfigKey, model.ErrForbiddenReference)
	}

	if err := s.configRepo.SoftDeleteConfig(ctx, configID, operator); err != nil {
		return fmt.Errorf("failed to delete config: %w", err)
	}

	s.invalidateKeyCache(ctx, cfg.ConfigKey)
	logger.LogBusinessOperation("config_delete", 0, operator, "", "", "success", "参数删除成功", map[string]interface{}{
		"config_id":  configID,
		"config_key": cfg.ConfigKey,
	})
	return nil
}

// RefreshCache 清除全部参数缓存(管理端刷新动作)
func (s *ConfigService) RefreshCache(ctx context.Context, operator string) error {
	if err := s.cacheRepo.DeleteAllConfigValues(ctx); err != nil {
		return fmt.Errorf("failed to refresh config cache: %w", err)
	}
	logger.LogBusinessOperation("config_cache_refresh", 0, operator, "", "", "success", "参数缓存已刷新", nil)
	return nil
}

// invalidateKeyCache 单键缓存失效，失败仅记录日志
func (s *ConfigService) invalidateKeyCache(ctx context.Context, configKey string) {
	if err := s.cacheRepo.DeleteConfigValue(ctx, configKey); err != nil {
		logger.LogError(err, "", 0, "", "config_cache", "DEL", map[string]interface{}{
			"operation":  "invalidate_config_cache",
			"config_key": configKey,
			"timestamp":  logger.NowFormatted(),
		})
	}
}
