/*
 * 字典仓库层:字典类型与字典数据访问
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

// DictRepository 字典仓库结构体
// 同时覆盖字典类型(sys_dict_type)和字典数据(sys_dict_data)两张表
type DictRepository struct {
	db *gorm.DB // 数据库连接
}

// NewDictRepository 创建字典仓库实例
func NewDictRepository(db *gorm.DB) *DictRepository {
	return &DictRepository{
		db: db,
	}
}

// activeTypes 返回仅包含未删除字典类型的查询作用域
func (r *DictRepository) activeTypes(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.DictType{}).Where("del_flag = ?", model.DelFlagNormal)
}

// activeData 返回仅包含未删除字典数据的查询作用域
func (r *DictRepository) activeData(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.DictData{}).Where("del_flag = ?", model.DelFlagNormal)
}

// CreateDictType 创建字典类型
func (r *DictRepository) CreateDictType(ctx context.Context, dictType *model.DictType) error {
	err := r.db.WithContext(ctx).Create(dictType).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "dict_type_create", "POST", map[string]interface{}{
			"operation": "create_dict_type",
			"dict_type": dictType.DictType,
			"timestamp": logger.NowFormatted(),
		})
	}
	return err
}

// GetDictTypeByID 根据ID获取字典类型
func (r *DictRepository) GetDictTypeByID(ctx context.Context, id int64) (*model.DictType, error) {
	var dictType model.DictType
	err := r.db.WithContext(ctx).
		Where("del_flag = ?", model.DelFlagNormal).
		First(&dictType, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		return nil, err
	}
	return &dictType, nil
}

// GetDictTypeByType 根据类型标识获取字典类型
func (r *DictRepository) GetDictTypeByType(ctx context.Context, dictType string) (*model.DictType, error) {
	var dt model.DictType
	err := r.db.WithContext(ctx).
		Where("dict_type = ? AND del_flag = ?", dictType, model.DelFlagNormal).
		First(&dt).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &dt, nil
}

// ListDictTypes 获取字典类型列表(分页，按创建时间倒序)
func (r *DictRepository) ListDictTypes(ctx context.Context, query *model.DictTypeQuery) ([]*model.DictType, int64, error) {
	db := r.activeTypes(ctx)

	if query.DictName != "" {
		db = db.Where("dict_name LIKE ?", "%"+query.DictName+"%")
	}
	if query.DictType != "" {
		db = db.Where("dict_type LIKE ?", "%"+query.DictType+"%")
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var types []*model.DictType
	offset := (query.PageNum - 1) * query.PageSize
	err := db.Order("create_time DESC, dict_id DESC").
		Offset(offset).Limit(query.PageSize).
		Find(&types).Error
	return types, total, err
}

// ListAllDictTypes 获取全部未删除字典类型(用于下拉选项)
func (r *DictRepository) ListAllDictTypes(ctx context.Context) ([]*model.DictType, error) {
	var types []*model.DictType
	err := r.activeTypes(ctx).Order("dict_id").Find(&types).Error
	return types, err
}

// UpdateDictType 更新字典类型
func (r *DictRepository) UpdateDictType(ctx context.Context, dictType *model.DictType) error {
	return r.db.WithContext(ctx).Save(dictType).Error
}

// SoftDeleteDictType 软删除字典类型(业务层保证无关联数据)
func (r *DictRepository) SoftDeleteDictType(ctx context.Context, dictID int64, updateBy string) error {
	result := r.db.WithContext(ctx).Model(&model.DictType{}).
		Where("dict_id = ? AND del_flag = ?", dictID, model.DelFlagNormal).
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

// CountDictTypeByType 统计同类型标识的未删除字典类型数量(排除指定ID)
func (r *DictRepository) CountDictTypeByType(ctx context.Context, dictType string, excludeID int64) (int64, error) {
	var count int64
	db := r.activeTypes(ctx).Where("dict_type = ?", dictType)
	if excludeID > 0 {
		db = db.Where("dict_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count, err
}

// CreateDictData 创建字典数据
func (r *DictRepository) CreateDictData(ctx context.Context, data *model.DictData) error {
	err := r.db.WithContext(ctx).Create(data).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "dict_data_create", "POST", map[string]interface{}{
			"operation":  "create_dict_data",
			"dict_type":  data.DictType,
			"dict_label": data.DictLabel,
			"timestamp":  logger.NowFormatted(),
		})
	}
	return err
}

// GetDictDataByID 根据ID获取字典数据
func (r *DictRepository) GetDictDataByID(ctx context.Context, id int64) (*model.DictData, error) {
	var data model.DictData
	err := r.db.WithContext(ctx).
		Where("del_flag = ?", model.DelFlagNormal).
		First(&data, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &data, nil
}

// ListDictData 获取字典数据列表(分页，按排序号排列)
func (r *DictRepository) ListDictData(ctx context.Context, query *model.DictDataQuery) ([]*model.DictData, int64, error) {
	db := r.activeData(ctx)

	if query.DictType != "" {
		db = db.Where("dict_type = ?", query.DictType)
	}
	if query.DictLabel != "" {
		db = db.Where("dict_label LIKE ?", "%"+query.DictLabel+"%")
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*model.DictData
	offset := (query.PageNum - 1) * query.PageSize
	err := db.Order("dict_sort, dict_code").Offset(offset).Limit(query.PageSize).Find(&rows).Error
	return rows, total, err
}

// ListDictDataByType 获取指定类型的正常状态字典数据(按排序号排列)
func (r *DictRepository) ListDictDataByType(ctx context.Context, dictType string) ([]*model.DictData, error) {
	var rows []*model.DictData
	err := r.activeData(ctx).
		Where("dict_type = ? AND status = ?", dictType, model.StatusNormal).
		Order("dict_sort, dict_code").
		Find(&rows).Error
	return rows, err
}

// UpdateDictData 更新字典数据
func (r *DictRepository) UpdateDictData(ctx context.Context, data *model.DictData) error {
	return r.db.WithContext(ctx).Save(data).Error
}

// SoftDeleteDictData 软删除字典数据
func (r *DictRepository) SoftDeleteDictData(ctx context.Context, dictCode int64, updateBy string) error {
	result := r.db.WithContext(ctx).Model(&model.DictData{}).
		Where("dict_code = ? AND del_flag = ?", dictCode, model.DelFlagNormal).
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

// CountDictDataByType 统计指定类型下的未删除字典数据数量(用于类型删除前校验)
func (r *DictRepository) CountDictDataByType(ctx context.Context, dictType string) (int64, error) {
	var count int64
	err := r.activeData(ctx).Where("dict_type = ?", dictType).Count(&count).Error
	return count, err
}

// UpdateDictDataType 字典类型标识变更时同步更新字典数据
func (r *DictRepository) UpdateDictDataType(ctx context.Context, oldType, newType string) error {
	return r.db.WithContext(ctx).Model(&model.DictData{}).
		Where("dict_type = ?", oldType).
		Update("dict_type", newType).Error
}
