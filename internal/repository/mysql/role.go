/*
 * 角色仓库层:角色数据访问
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
	"gorm.io/gorm/clause"
)

// RoleRepository 角色仓库结构体
type RoleRepository struct {
	db *gorm.DB // 数据库连接
}

// NewRoleRepository 创建角色仓库实例
func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{
		db: db,
	}
}

// active 返回仅包含未删除角色的查询作用域
func (r *RoleRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Role{}).Where("sys_role.del_flag = ?", model.DelFlagNormal)
}

// CreateRole 创建角色并绑定菜单(事务)
func (r *RoleRepository) CreateRole(ctx context.Context, role *model.Role, menuIDs []int64) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Menus", "Users").Create(role).Error; err != nil {
			return err
		}
		return insertRoleMenus(tx, role.RoleID, menuIDs)
	})
	if err != nil {
		logger.LogError(err, "", 0, "", "role_create", "POST", map[string]interface{}{
			"operation": "create_role",
			"role_name": role.RoleName,
			"timestamp": logger.NowFormatted(),
		})
	}
	return err
}

// insertRoleMenus 插入角色菜单关联(去重)
func insertRoleMenus(tx *gorm.DB, roleID int64, menuIDs []int64) error {
	if len(menuIDs) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(menuIDs))
	rows := make([]model.RoleMenu, 0, len(menuIDs))
	for _, menuID := range menuIDs {
		if _, ok := seen[menuID]; ok {
			continue
		}
		seen[menuID] = struct{}{}
		rows = append(rows, model.RoleMenu{RoleID: roleID, MenuID: menuID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// GetRoleByID 根据ID获取角色
func (r *RoleRepository) GetRoleByID(ctx context.Context, id int64) (*model.Role, error) {
	var role model.Role
	err := r.db.WithContext(ctx).
		Where("del_flag = ?", model.DelFlagNormal).
		First(&role, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "", uint(id), "", "role_get", "GET", map[string]interface{}{
			"operation": "get_role_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &role, nil
}

// ListRoles 获取角色列表(分页)
func (r *RoleRepository) ListRoles(ctx context.Context, query *model.RoleQuery) ([]*model.Role, int64, error) {
	db := r.active(ctx)

	if query.RoleName != "" {
		db = db.Where("role_name LIKE ?", "%"+query.RoleName+"%")
	}
	if query.RoleKey != "" {
		db = db.Where("role_key LIKE ?", "%"+query.RoleKey+"%")
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
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

	var roles []*model.Role
	offset := (query.PageNum - 1) * query.PageSize
	err := db.Order("role_sort, role_id").
		Offset(offset).Limit(query.PageSize).
		Find(&roles).Error
	return roles, total, err
}

// ListAllRoles 获取全部未删除角色(用于角色选项)
func (r *RoleRepository) ListAllRoles(ctx context.Context) ([]*model.Role, error) {
	var roles []*model.Role
	err := r.active(ctx).Order("role_sort, role_id").Find(&roles).Error
	return roles, err
}

// GetRolesByUserID 获取用户关联的角色列表
func (r *RoleRepository) GetRolesByUserID(ctx context.Context, userID int64) ([]*model.Role, error) {
	var roles []*model.Role
	err := r.active(ctx).
		Joins("JOIN sys_user_role ON sys_user_role.role_id = sys_role.role_id").
		Where("sys_user_role.user_id = ?", userID).
		Order("sys_role.role_sort").
		Find(&roles).Error
	return roles, err
}

// UpdateRole 更新角色信息
func (r *RoleRepository) UpdateRole(ctx context.Context, role *model.Role) error {
	err := r.db.WithContext(ctx).Omit("Menus", "Users").Save(role).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "role_update", "PUT", map[string]interface{}{
			"operation": "update_role",
			"role_id":   role.RoleID,
			"timestamp": logger.NowFormatted(),
		})
	}
	return err
}

// UpdateRoleFields 使用 map 更新角色特定字段
func (r *RoleRepository) UpdateRoleFields(ctx context.Context, roleID int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Role{}).
		Where("role_id = ? AND del_flag = ?", roleID, model.DelFlagNormal).
		Updates(fields).Error
}

// ReplaceRoleMenus 整体替换角色菜单关联(事务内删旧插新)
func (r *RoleRepository) ReplaceRoleMenus(ctx context.Context, roleID int64, menuIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&model.RoleMenu{}).Error; err != nil {
			return err
		}
		return insertRoleMenus(tx, roleID, menuIDs)
	})
}

// GetMenuIDsByRoleID 获取角色已绑定的菜单ID列表
func (r *RoleRepository) GetMenuIDsByRoleID(ctx context.Context, roleID int64) ([]int64, error) {
	var menuIDs []int64
	err := r.db.WithContext(ctx).Model(&model.RoleMenu{}).
		Where("role_id = ?", roleID).
		Pluck("menu_id", &menuIDs).Error
	return menuIDs, err
}

// SoftDeleteRole 软删除角色(置删除标记并清理菜单/用户关联)
func (r *RoleRepository) SoftDeleteRole(ctx context.Context, roleID int64, updateBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Role{}).
			Where("role_id = ? AND del_flag = ?", roleID, model.DelFlagNormal).
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
		if err := tx.Where("role_id = ?", roleID).Delete(&model.RoleMenu{}).Error; err != nil {
			return err
		}
		return tx.Where("role_id = ?", roleID).Delete(&model.UserRole{}).Error
	})
}

// CountByRoleName 统计同名未删除角色数量(排除指定ID)
func (r *RoleRepository) CountByRoleName(ctx context.Context, roleName string, excludeID int64) (int64, error) {
	var count int64
	db := r.active(ctx).Where("role_name = ?", roleName)
	if excludeID > 0 {
		db = db.Where("role_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count, err
}

// CountByRoleKey 统计同权限字符未删除角色数量(排除指定ID)
func (r *RoleRepository) CountByRoleKey(ctx context.Context, roleKey string, excludeID int64) (int64, error) {
	var count int64
	db := r.active(ctx).Where("role_key = ?", roleKey)
	if excludeID > 0 {
		db = db.Where("role_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count, err
}

// CountRoleUsers 统计角色已分配的用户数量(用于删除前校验)
func (r *RoleRepository) CountRoleUsers(ctx context.Context, roleID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Where("role_id = ?", roleID).
		Count(&count).Error
	return count, err
}

// RoleExistsByID 根据ID判断未删除角色是否存在
func (r *RoleRepository) RoleExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.active(ctx).Where("role_id = ?", id).Count(&count).Error
	return count > 0, err
}
