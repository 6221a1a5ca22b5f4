/*
 * 部门仓库层:部门数据访问
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

// DeptRepository 部门仓库结构体
type DeptRepository struct {
	db *gorm.DB // 数据库连接
}

// NewDeptRepository 创建部门仓库实例
func NewDeptRepository(db *gorm.DB) *DeptRepository {
	return &DeptRepository{
		db: db,
	}
}

// active 返回仅包含未删除部门的查询作用域
func (r *DeptRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Dept{}).Where("del_flag = ?", model.DelFlagNormal)
}

// CreateDept 创建部门
func (r *DeptRepository) CreateDept(ctx context.Context, dept *model.Dept) error {
	err := r.db.WithContext(ctx).Create(dept).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "dept_create", "POST", map[string]interface{}{
			"operation": "create_dept",
			"dept_name": dept.DeptName,
			"timestamp": logger.NowFormatted(),
		})
	}
	return err
}

// GetDeptByID 根据ID获取部门
func (r *DeptRepository) GetDeptByID(ctx context.Context, id int64) (*model.Dept, error) {
	var dept model.Dept
	err := r.db.WithContext(ctx).
		Where("del_flag = ?", model.DelFlagNormal).
		First(&dept, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "", uint(id), "", "dept_get", "GET", map[string]interface{}{
			"operation": "get_dept_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &dept, nil
}

// ListDepts 获取部门列表(不分页，按父级和排序号排列)
func (r *DeptRepository) ListDepts(ctx context.Context, query *model.DeptQuery) ([]*model.Dept, error) {
	db := r.active(ctx)

	if query != nil {
		if query.DeptName != "" {
			db = db.Where("dept_name LIKE ?", "%"+query.DeptName+"%")
		}
		if query.Status != "" {
			db = db.Where("status = ?", query.Status)
		}
	}

	var depts []*model.Dept
	err := db.Order("parent_id, order_num, dept_id").Find(&depts).Error
	return depts, err
}

// ListAllDepts 获取全部未删除部门(用于构建部门树)
func (r *DeptRepository) ListAllDepts(ctx context.Context) ([]*model.Dept, error) {
	var depts []*model.Dept
	err := r.active(ctx).Order("parent_id, order_num, dept_id").Find(&depts).Error
	return depts, err
}

// UpdateDept 更新部门信息
func (r *DeptRepository) UpdateDept(ctx context.Context, dept *model.Dept) error {
	err := r.db.WithContext(ctx).Save(dept).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "dept_update", "PUT", map[string]interface{}{
			"operation": "update_dept",
			"dept_id":   dept.DeptID,
			"timestamp": logger.NowFormatted(),
		})
	}
	return err
}

// SoftDeleteDept 软删除部门(置删除标记)
func (r *DeptRepository) SoftDeleteDept(ctx context.Context, deptID int64, updateBy string) error {
	result := r.db.WithContext(ctx).Model(&model.Dept{}).
		Where("dept_id = ? AND del_flag = ?", deptID, model.DelFlagNormal).
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

// HasChildren 判断部门是否存在未删除的子部门
func (r *DeptRepository) HasChildren(ctx context.Context, deptID int64) (bool, error) {
	var count int64
	err := r.active(ctx).Where("parent_id = ?", deptID).Count(&count).Error
	return count > 0, err
}

// HasUsers 判断部门下是否存在未删除用户
func (r *DeptRepository) HasUsers(ctx context.Context, deptID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("dept_id = ? AND del_flag = ?", deptID, model.DelFlagNormal).
		Count(&count).Error
	return count > 0, err
}

// CountByNameUnderParent 统计同级同名部门数量(排除指定ID)
func (r *DeptRepository) CountByNameUnderParent(ctx context.Context, deptName string, parentID, excludeID int64) (int64, error) {
	var count int64
	db := r.active(ctx).Where("dept_name = ? AND parent_id = ?", deptName, parentID)
	if excludeID > 0 {
		db = db.Where("dept_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count, err
}

// DeptExistsByID 根据ID判断未删除部门是否存在
func (r *DeptRepository) DeptExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.active(ctx).Where("dept_id = ?", id).Count(&count).Error
	return count > 0, err
}
