/*
 * 菜单仓库层:菜单数据访问
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

// MenuRepository 菜单仓库结构体
type MenuRepository struct {
	db *gorm.DB // 数据库连接
}

// NewMenuRepository 创建菜单仓库实例
func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{
		db: db,
	}
}

// active 返回仅包含未删除菜单的查询作用域
func (r *MenuRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Menu{}).Where("del_flag = ?", model.DelFlagNormal)
}

// CreateMenu 创建菜单
func (r *MenuRepository) CreateMenu(ctx context.Context, menu *model.Menu) error {
	err := r.db.WithContext(ctx).Omit("Roles").Create(menu).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "menu_create", "POST", map[string]interface{}{
			"operation": "create_menu",
			"menu_name": menu.MenuName,
			"timestamp": logger.NowFormatted(),
		})
	}
	return err
}

// GetMenuByID 根据ID获取菜单
func (r *MenuRepository) GetMenuByID(ctx context.Context, id int64) (*model.Menu, error) {
	var menu model.Menu
	err := r.db.WithContext(ctx).
		Where("del_flag = ?", model.DelFlagNormal).
		First(&menu, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "", uint(id), "", "menu_get", "GET", map[string]interface{}{
			"operation": "get_menu_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &menu, nil
}

// ListMenus 获取菜单列表(不分页，按父级和排序号排列)
func (r *MenuRepository) ListMenus(ctx context.Context, query *model.MenuQuery) ([]*model.Menu, error) {
	db := r.active(ctx)

	if query != nil {
		if query.MenuName != "" {
			db = db.Where("menu_name LIKE ?", "%"+query.MenuName+"%")
		}
		if query.Status != "" {
			db = db.Where("status = ?", query.Status)
		}
	}

	var menus []*model.Menu
	err := db.Order("parent_id, order_num, menu_id").Find(&menus).Error
	return menus, err
}

// ListRoutableMenus 获取全部可路由菜单(目录和菜单，状态正常)
// 路由投影直接使用该结果
func (r *MenuRepository) ListRoutableMenus(ctx context.Context) ([]*model.Menu, error) {
	var menus []*model.Menu
	err := r.active(ctx).
		Where("menu_type IN ? AND status = ?",
			[]string{model.MenuTypeDir, model.MenuTypeMenu}, model.StatusNormal).
		Order("parent_id, order_num, menu_id").
		Find(&menus).Error
	return menus, err
}

// ListPermsByUserID 获取用户经由角色持有的权限标识(去重由调用方处理)
func (r *MenuRepository) ListPermsByUserID(ctx context.Context, userID int64) ([]string, error) {
	var perms []string
	err := r.active(ctx).
		Joins("JOIN sys_role_menu ON sys_role_menu.menu_id = sys_menu.menu_id").
		Joins("JOIN sys_user_role ON sys_user_role.role_id = sys_role_menu.role_id").
		Where("sys_user_role.user_id = ? AND sys_menu.status = ? AND sys_menu.perms <> ''",
			userID, model.StatusNormal).
		Pluck("sys_menu.perms", &perms).Error
	return perms, err
}

// UpdateMenu 更新菜单信息
func (r *MenuRepository) UpdateMenu(ctx context.Context, menu *model.Menu) error {
	err := r.db.WithContext(ctx).Omit("Roles").Save(menu).Error
	if err != nil {
		logger.LogError(err, "", 0, "", "menu_update", "PUT", map[string]interface{}{
			"operation": "update_menu",
			"menu_id":   menu.MenuID,
			"timestamp": logger.NowFormatted(),
		})
	}
	return err
}

// SoftDeleteMenu 软删除菜单(置删除标记，业务层保证无子菜单且未被角色引用)
func (r *MenuRepository) SoftDeleteMenu(ctx context.Context, menuID int64, updateBy string) error {
	result := r.db.WithContext(ctx).Model(&model.Menu{}).
		Where("menu_id = ? AND del_flag = ?", menuID, model.DelFlagNormal).
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

// CountChildren 统计未删除的直接子菜单数量
func (r *MenuRepository) CountChildren(ctx context.Context, parentID int64) (int64, error) {
	var count int64
	err := r.active(ctx).Where("parent_id = ?", parentID).Count(&count).Error
	return count, err
}

// CountRoleRefs 统计引用菜单的角色数量
func (r *MenuRepository) CountRoleRefs(ctx context.Context, menuID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RoleMenu{}).
		Where("menu_id = ?", menuID).
		Count(&count).Error
	return count, err
}

// CountByNameUnderParent 统计同级同名未删除菜单数量(排除指定ID)
func (r *MenuRepository) CountByNameUnderParent(ctx context.Context, menuName string, parentID, excludeID int64) (int64, error) {
	var count int64
	db := r.active(ctx).Where("menu_name = ? AND parent_id = ?", menuName, parentID)
	if excludeID > 0 {
		db = db.Where("menu_id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count, err
}

// MenuExistsByID 根据ID判断未删除菜单是否存在
func (r *MenuRepository) MenuExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.active(ctx).Where("menu_id = ?", id).Count(&count).Error
	return count > 0, err
}

// FilterExistingMenuIDs 过滤出实际存在且未删除的菜单ID(保持输入顺序)
func (r *MenuRepository) FilterExistingMenuIDs(ctx context.Context, menuIDs []int64) ([]int64, error) {
	if len(menuIDs) == 0 {
		return nil, nil
	}
	var existing []int64
	err := r.active(ctx).Where("menu_id IN ?", menuIDs).Pluck("menu_id", &existing).Error
	if err != nil {
		return nil, err
	}
	existingSet := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}
	filtered := make([]int64, 0, len(existing))
	for _, id := range menuIDs {
		if _, ok := existingSet[id]; ok {
			filtered = append(filtered, id)
		}
	}
	return filtered, nil
}
