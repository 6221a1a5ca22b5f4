/**
 * 缓存仓库层:路由/字典/参数缓存数据访问
 * @author: sun977
 * @date: 2025.09.11
 * @description: 缓存数据交互层(Redis存储,适合多实例部署)
 * @func: 单纯数据访问,不应该包含业务逻辑
 * @note: client 为 nil 时全部退化为缓存未命中/空操作，方便单测环境不依赖 Redis
 */
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"adminmaster/internal/model"

	"github.com/go-redis/redis/v8"
)

// 缓存键与过期时间
// 路由缓存是全局固定键，只缓存一份全量投影结果，仅由管理端刷新动作或TTL失效
const (
	routerCacheKey  = "adminmaster:routers"
	routerCacheTTL  = time.Hour
	dictOptionKey   = "adminmaster:dict_optionselect"
	dictOptionTTL   = 5 * time.Minute
	configKeyPrefix = "adminmaster:sys_config:"
)

// CacheRepository Redis缓存存储库
type CacheRepository struct {
	client *redis.Client
}

// NewCacheRepository 创建缓存存储库实例
func NewCacheRepository(client *redis.Client) *CacheRepository {
	return &CacheRepository{
		client: client,
	}
}

// GetRouters 获取缓存的路由投影，未命中返回 nil
func (r *CacheRepository) GetRouters(ctx context.Context) ([]*model.Router, error) {
	if r.client == nil {
		return nil, nil
	}

	data, err := r.client.Get(ctx, routerCacheKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get router cache: %w", err)
	}

	var routers []*model.Router
	if err := json.Unmarshal([]byte(data), &routers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal router cache: %w", err)
	}
	return routers, nil
}

// SetRouters 缓存路由投影(整体替换，固定一小时过期)
func (r *CacheRepository) SetRouters(ctx context.Context, routers []*model.Router) error {
	if r.client == nil {
		return nil
	}

	data, err := json.Marshal(routers)
	if err != nil {
		return fmt.Errorf("failed to marshal routers: %w", err)
	}

	if err := r.client.Set(ctx, routerCacheKey, data, routerCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to store router cache: %w", err)
	}
	return nil
}

// DeleteRouters 清除路由缓存(管理端刷新动作触发)
func (r *CacheRepository) DeleteRouters(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, routerCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to delete router cache: %w", err)
	}
	return nil
}

// GetDictOptions 获取缓存的字典类型下拉选项，未命中返回 nil
func (r *CacheRepository) GetDictOptions(ctx context.Context) ([]*model.DictTypeOption, error) {
	if r.client == nil {
		return nil, nil
	}

	data, err := r.client.Get(ctx, dictOptionKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get dict option cache: %w", err)
	}

	var options []*model.DictTypeOption
	if err := json.Unmarshal([]byte(data), &options); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dict option cache: %w", err)
	}
	return options, nil
}

// SetDictOptions 缓存字典类型下拉选项
func (r *CacheRepository) SetDictOptions(ctx context.Context, options []*model.DictTypeOption) error {
	if r.client == nil {
		return nil
	}

	data, err := json.Marshal(options)
	if err != nil {
		return fmt.Errorf("failed to marshal dict options: %w", err)
	}

	if err := r.client.Set(ctx, dictOptionKey, data, dictOptionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store dict option cache: %w", err)
	}
	return nil
}

// DeleteDictOptions 清除字典类型下拉选项缓存
func (r *CacheRepository) DeleteDictOptions(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, dictOptionKey).Err(); err != nil {
		return fmt.Errorf("failed to delete dict option cache: %w", err)
	}
	return nil
}

// GetConfigValue 按参数键名获取缓存的参数值，第二个返回值标记是否命中
func (r *CacheRepository) GetConfigValue(ctx context.Context, configKey string) (string, bool, error) {
	if r.client == nil {
		return "", false, nil
	}

	value, err := r.client.Get(ctx, configKeyPrefix+configKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get config cache: %w", err)
	}
	return value, true, nil
}

// SetConfigValue 缓存参数值(不设过期，由刷新动作或参数变更清除)
func (r *CacheRepository) SetConfigValue(ctx context.Context, configKey, value string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Set(ctx, configKeyPrefix+configKey, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to store config cache: %w", err)
	}
	return nil
}

// DeleteConfigValue 清除单个参数缓存
func (r *CacheRepository) DeleteConfigValue(ctx context.Context, configKey string) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, configKeyPrefix+configKey).Err(); err != nil {
		return fmt.Errorf("failed to delete config cache: %w", err)
	}
	return nil
}

// DeleteAllConfigValues 清除全部参数缓存(参数管理的刷新缓存动作)
func (r *CacheRepository) DeleteAllConfigValues(ctx context.Context) error {
	if r.client == nil {
		return nil
	}

	keys, err := r.client.Keys(ctx, configKeyPrefix+"*").Result()
	if err != nil {
		return fmt.Errorf("failed to list config cache keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete config cache keys: %w", err)
	}
	return nil
}
