/*
 * @author: sun977
 * @date: 2025.09.12
 * @description: 字典管理服务
 * @func:
 * 1.字典类型CRUD(软删除，类型编码唯一)
 * 2.字典数据CRUD(类型编码变更联动)
 * 3.类型下拉选项(带缓存)与缓存刷新
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

// DictService 字典管理服务
type DictService struct {
	dictRepo  *mysql.DictRepository
	cacheRepo *redis.CacheRepository
}

// NewDictService 创建字典服务实例
func NewDictService(dictRepo *mysql.DictRepository, cacheRepo *redis.CacheRepository) *DictService {
	return &DictService{
		dictRepo:  dictRepo,
		cacheRepo: cacheRepo,
	}
}

// ListDictTypes 获取字典类型列表(分页)
func (s *DictService) ListDictTypes(ctx context.Context, query *model.DictTypeQuery) ([]*model.DictType, int64, error) {
	query.Normalize()
	types, total, err := s.dictRepo.ListDictTypes(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list dict types: %w", err)
	}
	return types, total, nil
}

// GetDictType 根据ID获取字典类型
func (s *DictService) GetDictType(ctx context.Context, dictID int64) (*model.DictType, error) {
	dictType, err := s.dictRepo.GetDictTypeByID(ctx, dictID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dict type: %w", err)
	}
	if dictType == nil {
		return nil, fmt.Errorf("字典类型[%d]不存在: %w", dictID, model.ErrNotFound)
	}
	return dictType, nil
}

// CreateDictType 创建字典类型
func (s *DictService) CreateDictType(ctx context.Context, req *model.CreateDictTypeRequest, operator string) (*model.DictType, error) {
	count, err := s.dictRepo.CountDictTypeByType(ctx, req.DictType, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check dict type: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("字典类型[%s]已存在: %w", req.DictType, model.ErrConflict)
	}

	dictType := &model.DictType{
		DictName: req.DictName,
		DictType: req.DictType,
		Status:   defaultString(req.Status, model.StatusNormal),
		Remark:   req.Remark,
	}
	dictType.CreateBy = operator
	dictType.UpdateBy = operator

	if err := s.dictRepo.CreateDictType(ctx, dictType); err != nil {
		return nil, fmt.Errorf("failed to create dict type: %w", err)
	}

	s.invalidateOptionCache(ctx)
	logger.LogBusinessOperation("dict_type_create", 0, operator, "", "", "success", "字典类型创建成功", map[string]interface{}{
		"dict_id":   dictType.DictID,
		"dict_type": dictType.DictType,
	})
	return dictType, nil
}

// UpdateDictType 更新字典类型(body-id 兼容路径传入 req.DictID)
// 类型编码变更时联动更新该类型下的全部字典数据
func (s *DictService) UpdateDictType(ctx context.Context, dictID int64, req *model.UpdateDictTypeRequest, operator string) (*model.DictType, error) {
	if dictID == 0 {
		dictID = req.DictID
	}
	if dictID == 0 {
		return nil, model.NewValidationError("dictId", "字典主键不能为空")
	}

	dictType, err := s.dictRepo.GetDictTypeByID(ctx, dictID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dict type: %w", err)
	}
	if dictType == nil {
		return nil, fmt.Errorf("字典类型[%d]不存在: %w", dictID, model.ErrNotFound)
	}

	oldType := dictType.DictType
	if req.DictType != nil && *req.DictType != oldType {
		count, err := s.dictRepo.CountDictTypeByType(ctx, *req.DictType, dictID)
		if err != nil {
			return nil, fmt.Errorf("failed to check dict type: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("字典类型[%s]已存在: %w", *req.DictType, model.ErrConflict)
		}
		dictType.DictType = *req.DictType
	}
	if req.DictName != nil {
		dictType.DictName = *req.DictName
	}
	if req.Status != nil {
		dictType.Status = *req.Status
	}
	if req.Remark != nil {
		dictType.Remark = *req.Remark
	}
	dictType.UpdateBy = operator

	if err := s.dictRepo.UpdateDictType(ctx, dictType); err != nil {
		return nil, fmt.Errorf("failed to update dict type: %w", err)
	}

	if dictType.DictType != oldType {
		if err := s.dictRepo.UpdateDictDataType(ctx, oldType, dictType.DictType); err != nil {
			return nil, fmt.Errorf("failed to sync dict data type: %w", err)
		}
	}

	s.invalidateOptionCache(ctx)
	logger.LogBusinessOperation("dict_type_update", 0, operator, "", "", "success", "字典类型更新成功", map[string]interface{}{
		"dict_id": dictType.DictID,
	})
	return dictType, nil
}

// DeleteDictType 删除字典类型(软删除)
// 类型下仍有字典数据时拒绝删除
func (s *DictService) DeleteDictType(ctx context.Context, dictID int64, operator string) error {
	dictType, err := s.dictRepo.GetDictTypeByID(ctx, dictID)
	if err != nil {
		return fmt.Errorf("failed to get dict type: %w", err)
	}
	if dictType == nil {
		return fmt.Errorf("字典类型[%d]不存在: %w", dictID, model.ErrNotFound)
	}

	count, err := s.dictRepo.CountDictDataByType(ctx, dictType.DictType)
	if err != nil {
		return fmt.Errorf("failed to count dict data: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("字典类型[%s]下存在字典数据，不允许删除: %w", dictType.DictType, model.ErrForbiddenReference)
	}

	if err := s.dictRepo.SoftDeleteDictType(ctx, dictID, operator); err != nil {
		return fmt.Errorf("failed to delete dict type: %w", err)
	}

	s.invalidateOptionCache(ctx)
	logger.LogBusinessOperation("dict_type_delete", 0, operator, "", "", "success", "字典类型删除成功", map[string]interface{}{
		"dict_id": dictID,
	})
	return nil
}

// OptionSelect 获取字典类型下拉选项(带缓存)
func (s *DictService) OptionSelect(ctx context.Context) ([]*model.DictTypeOption, error) {
	cached, err := s.cacheRepo.GetDictOptions(ctx)
	if err != nil {
		logger.LogError(err, "", 0, "", "dict_option_cache", "GET", map[string]interface{}{
			"operation": "get_dict_option_cache",
			"timestamp": logger.NowFormatted(),
		})
	}
	if cached != nil {
		return cached, nil
	}

	types, err := s.dictRepo.ListAllDictTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list dict types: %w", err)
	}

	options := make([]*model.DictTypeOption, 0, len(types))
	for _, t := range types {
		options = append(options, &model.DictTypeOption{
			DictID:   t.DictID,
			DictName: t.DictName,
			DictType: t.DictType,
		})
	}

	if err := s.cacheRepo.SetDictOptions(ctx, options); err != nil {
		logger.LogError(err, "", 0, "", "dict_option_cache", "SET", map[string]interface{}{
			"operation": "set_dict_option_cache",
			"timestamp": logger.NowFormatted(),
		})
	}
	return options, nil
}

// RefreshCache 清除字典缓存(管理端刷新动作)
func (s *DictService) RefreshCache(ctx context.Context, operator string) error {
	if err := s.cacheRepo.DeleteDictOptions(ctx); err != nil {
		return fmt.Errorf("failed to refresh dict cache: %w", err)
	}
	logger.LogBusinessOperation("dict_cache_refresh", 0, operator, "", "", "success", "字典缓存已刷新", nil)
	return nil
}

// ListDictData 获取字典数据列表(分页)
func (s *DictService) ListDictData(ctx context.Context, query *model.DictDataQuery) ([]*model.DictData, int64, error) {
	query.Normalize()
	rows, total, err := s.dictRepo.ListDictData(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list dict data: %w", err)
	}
	return rows, total, nil
}

// GetDictData 根据编码获取字典数据
func (s *DictService) GetDictData(ctx context.Context, dictCode int64) (*model.DictData, error) {
	data, err := s.dictRepo.GetDictDataByID(ctx, dictCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get dict data: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("字典数据[%d]不存在: %w", dictCode, model.ErrNotFound)
	}
	return data, nil
}

// GetDictDataByType 获取指定类型的正常状态字典数据(前端下拉使用)
func (s *DictService) GetDictDataByType(ctx context.Context, dictType string) ([]*model.DictData, error) {
	rows, err := s.dictRepo.ListDictDataByType(ctx, dictType)
	if err != nil {
		return nil, fmt.Errorf("failed to list dict data by type: %w", err)
	}
	if rows == nil {
		rows = []*model.DictData{}
	}
	return rows, nil
}

// CreateDictData 创建字典数据
func (s *DictService) CreateDictData(ctx context.Context, req *model.CreateDictDataRequest, operator string) (*model.DictData, error) {
	// 所属字典类型必须存在
	dictType, err := s.dictRepo.GetDictTypeByType(ctx, req.DictType)
	if err != nil {
		return nil, fmt.Errorf("failed to get dict type: %w", err)
	}
	if dictType == nil {
		return nil, model.NewValidationError("dictType", "所属字典类型不存在")
	}

	data := &model.DictData{
		DictSort:  req.DictSort,
		DictLabel: req.DictLabel,
		DictValue: req.DictValue,
		DictType:  req.DictType,
		CssClass:  req.CssClass,
		ListClass: defaultString(req.ListClass, "default"),
		Status:    defaultString(req.Status, model.StatusNormal),
		Remark:    req.Remark,
	}
	data.CreateBy = operator
	data.UpdateBy = operator

	if err := s.dictRepo.CreateDictData(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to create dict data: %w", err)
	}

	logger.LogBusinessOperation("dict_data_create", 0, operator, "", "", "success", "字典数据创建成功", map[string]interface{}{
		"dict_code":  data.DictCode,
		"dict_type":  data.DictType,
		"dict_label": data.DictLabel,
	})
	return data, nil
}

// UpdateDictData 更新字典数据(body-id 兼容路径传入 req.DictCode)
func (s *DictService) UpdateDictData(ctx context.Context, dictCode int64, req *model.UpdateDictDataRequest, operator string) (*model.DictData, error) {
	if dictCode == 0 {
		dictCode = req.DictCode
	}
	if dictCode == 0 {
		return nil, model.NewValidationError("dictCode", "字典编码不能为空")
	}

	data, err := s.dictRepo.GetDictDataByID(ctx, dictCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get dict data: %w", err)
	}
	if data == nil {
		return nil, fmt.Errorf("字典数据[%d]不存在: %w", dictCode, model.ErrNotFound)
	}

	if req.DictType != nil && *req.DictType != data.DictType {
		dictType, err := s.dictRepo.GetDictTypeByType(ctx, *req.DictType)
		if err != nil {
			return nil, fmt.Errorf("failed to get dict type: %w", err)
		}
		if dictType == nil {
			return nil, model.NewValidationError("dictType", "所属字典类型不存在")
		}
		data.DictType = *req.DictType
	}
	if req.DictSort != nil {
		data.DictSort = *req.DictSort
	}
	if req.DictLabel != nil {
		data.DictLabel = *req.DictLabel
	}
	if req.DictValue != nil {
		data.DictValue = *req.DictValue
	}
	if req.CssClass != nil {
		data.CssClass = *req.CssClass
	}
	if req.ListClass != nil {
		data.ListClass = *req.ListClass
	}
	if req.Status != nil {
		data.Status = *req.Status
	}
	if req.Remark != nil {
		data.Remark = *req.Remark
	}
	data.UpdateBy = operator

	if err := s.dictRepo.UpdateDictData(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to update dict data: %w", err)
	}

	logger.LogBusinessOperation("dict_data_update", 0, operator, "", "", "success", "字典数据更新成功", map[string]interface{}{
		"dict_code": data.DictCode,
	})
	return data, nil
}

// DeleteDictData 删除字典数据(软删除)
func (s *DictService) DeleteDictData(ctx context.Context, dictCode int64, operator string) error {
	data, err := s.dictRepo.GetDictDataByID(ctx, dictCode)
	if err != nil {
		return fmt.Errorf("failed to get dict data: %w", err)
	}
	if data == nil {
		return fmt.Errorf("字典数据[%d]不存在: %w", dictCode, model.ErrNotFound)
	}

	if err := s.dictRepo.SoftDeleteDictData(ctx, dictCode, operator); err != nil {
		return fmt.Errorf("failed to delete dict data: %w", err)
	}

	logger.LogBusinessOperation("dict_data_delete", 0, operator, "", "", "success", "字典数据删除成功", map[string]interface{}{
		"dict_code": dictCode,
	})
	return nil
}

// invalidateOptionCache 类型集合变更后清除下拉选项缓存，失败仅记录日志
func (s *DictService) invalidateOptionCache(ctx context.Context) {
	if err := s.cacheRepo.DeleteDictOptions(ctx); err != nil {
		logger.LogError(err, "", 0, "", "dict_option_cache", "DEL", map[string]interface{}{
			"operation": "invalidate_dict_option_cache",
			"timestamp": logger.NowFormatted(),
		})
	}
}
