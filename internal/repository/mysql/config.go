/*
 * 参数配置仓库层:系统参数数据访问
 * @author: sun977
 * @date: 2025.09.11
 * @description: 单纯数据访问,不应该包含业务逻辑
 */
package mysql

import (
	"context"

	"adminmaster/internal/model"
	"adminmaster/internal/pkg/logger"

	"gorm.io/gorm"
)

// ConfigRepository 参数配置仓库结构体
type ConfigRepository struct {
	db *gorm.DB // 数据库连接
}

// NewConfigRepository 创建参数配置仓库实例
func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{
		db: db,
	}
}

// active 返回仅包含未删除参数的查询作用域
func (r *ConfigRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Config{}).Where("del_flag = ?", model.DelFlagNormal)
}

// CreateConfig 创建参数配置
func (r *ConfigRepository) CreateConfig(ctx context.Context, cfg *model.Config) error {
	err := r.db.WithContext(ctx).Create(cfg).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "config_create", "POST", map[string]interface{}{
			"operation":  "create_config",
			"config_key": cfg.ConfigKey,
			"timestamp":  logger.NowFormatted(),
		})
	}
	return err
}

// GetConfigByID 根据ID获取参数配置
func (r *ConfigRepository) GetConfigByID(ctx context.Context, id int64) (*model.Config, error) {
	var cfg model.Config
	err := r.db.WithContext(ctx).
		Where("del_flag = ?", model.DelFlagNormal).
		First(&cfg, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		return nil, err
	}
	return &cfg, nil
}

// GetConfigByKey 根据参数键名获取参数配置
func (r *ConfigRepository) GetConfigByKey(ctx context.Context, configKey string) (*model.Config, error) {
	var cfg model.Config
	err := r.db.WithContext(ctx).
		Where("config_key = ? AND del_flag = ?", configKey, model.DelFlagNormal).
		First(&cfg).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// ListConfigs 获取参数配置列表(分页，按创建时间倒序)
func (r *ConfigRepository) ListConfigs(ctx context.Context, query *model.ConfigQuery) ([]*model.Config, int64, error) {
	db := r.active(ctx)

	if query.ConfigName != "" {
		db = db.Where("config_name LIKE ?", "%"+query.ConfigName+"%")
	}
	if query.ConfigKey != "" {
		db = db.Where("config_key LIKE ?", "%"+query.ConfigKey+"%")
	}
	if query.ConfigType != "" {
		db = db.Where("config_type = ?", query.ConfigType)
	}
	if query.BeginTime != "" {
		db = db.Where("create_time >= ?", query.BeginTime)
	}
	if query.EndTime != "" {
		db = db.Where("create_time <= ?", query.EndTime)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var configs []*model.Config
	offset := (query.PageNum - 1) * query.PageSize
	err := db.Order("create_time DESC, config_id DESC").
		Offset(offset).Limit(query.PageSize).
		Find(&configs).Error
	return configs, total, err
}

// UpdateConfig 更新参数配置
func (r *ConfigRepository) UpdateConfig(ctx context.Context, cfg *model.Config) error {
	return r.db.WithContext(ctx).Save(cfg).Error
}

// SoftDeleteConfig 软删除参数配置(业务层保证非内置参数)
func (r *ConfigRepository) SoftDeleteConfig(ctx context.Context, configID int64, updateBy string) error {
	result := r.db.WithContext(ctx).Model(&model.Config{}).
		Where("config_id = ? AND del_flag = ?", configID, model.DelFlagNormal).
		Updates(map[string]interface{}{
			"del_flag":  model.DelFlagDeleted,
			"update_by": updateBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByConfigKey 统计同键名的未删除参数数量(排除指定ID)
func (r *ConfigRepository) CountByConfigKey(ctx context.Context, configKey string, excludeID int64) (int64, error) {
	var count int64
	db := r.active(ctx).Where("config_key = ?", configKey)
	if excludeID > 0 {
		db = db.Where("config_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count, err
}
