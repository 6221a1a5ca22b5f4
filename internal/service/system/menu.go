/*
 * @author: sun977
 * @date: 2025.09.12
 * @description: 菜单管理服务
 * @func:
 * 1.菜单CRUD(软删除)
 * 2.菜单下拉树/角色菜单树
 * 3.前端路由生成与缓存刷新
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

// MenuService 菜单管理服务
type MenuService struct {
	menuRepo  *mysql.MenuRepository
	roleRepo  *mysql.RoleRepository
	cacheRepo *redis.CacheRepository
}

// NewMenuService 创建菜单服务实例
func NewMenuService(
	menuRepo *mysql.MenuRepository,
	roleRepo *mysql.RoleRepository,
	cacheRepo *redis.CacheRepository,
) *MenuService {
	return &MenuService{
		menuRepo:  menuRepo,
		roleRepo:  roleRepo,
		cacheRepo: cacheRepo,
	}
}

// ListMenus 获取菜单列表(扁平，不分页)
func (s *MenuService) ListMenus(ctx context.Context, query *model.MenuQuery) ([]*model.Menu, error) {
	menus, err := s.menuRepo.ListMenus(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	return menus, nil
}

// GetMenu 根据ID获取菜单
func (s *MenuService) GetMenu(ctx context.Context, menuID int64) (*model.Menu, error) {
	menu, err := s.menuRepo.GetMenuByID(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	if menu == nil {
		return nil, fmt.Errorf("菜单[%d]不存在: %w", menuID, model.ErrNotFound)
	}
	return menu, nil
}

// CreateMenu 创建菜单
func (s *MenuService) CreateMenu(ctx context.Context, req *model.CreateMenuRequest, operator string) (*model.Menu, error) {
	if err := s.validateMenuType(req.MenuType); err != nil {
		return nil, err
	}
	if err := s.checkParentExists(ctx, req.ParentID); err != nil {
		return nil, err
	}

	// 同一父节点下菜单名称唯一
	count, err := s.menuRepo.CountByNameUnderParent(ctx, req.MenuName, req.ParentID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check menu name: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("菜单名称[%s]已存在: %w", req.MenuName, model.ErrConflict)
	}

	menu := &model.Menu{
		ParentID:  req.ParentID,
		MenuName:  req.MenuName,
		OrderNum:  req.OrderNum,
		Path:      req.Path,
		Component: req.Component,
		Query:     req.Query,
		IsFrame:   defaultString(req.IsFrame, model.FrameInternal),
		IsCache:   defaultString(req.IsCache, model.CacheEnabled),
		MenuType:  req.MenuType,
		Visible:   defaultString(req.Visible, model.VisibleShown),
		Status:    defaultString(req.Status, model.StatusNormal),
		Perms:     req.Perms,
		Icon:      req.Icon,
		Remark:    req.Remark,
	}
	menu.CreateBy = operator
	menu.UpdateBy = operator

	if err := s.menuRepo.CreateMenu(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to create menu: %w", err)
	}

	logger.LogBusinessOperation("menu_create", 0, operator, "", "", "success", "菜单创建成功", map[string]interface{}{
		"menu_id":   menu.MenuID,
		"menu_name": menu.MenuName,
		"menu_type": menu.MenuType,
	})
	return menu, nil
}

// UpdateMenu 更新菜单(body-id 兼容路径传入 req.MenuID)
func (s *MenuService) UpdateMenu(ctx context.Context, menuID int64, req *model.UpdateMenuRequest, operator string) (*model.Menu, error) {
	if menuID == 0 {
		menuID = req.MenuID
	}
	if menuID == 0 {
		return nil, model.NewValidationError("menuId", "菜单ID不能为空")
	}

	menu, err := s.menuRepo.GetMenuByID(ctx, menuID)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	if menu == nil {
		return nil, fmt.Errorf("菜单[%d]不存在: %w", menuID, model.ErrNotFound)
	}

	if req.MenuType != nil {
		if err := s.validateMenuType(*req.MenuType); err != nil {
			return nil, err
		}
		menu.MenuType = *req.MenuType
	}
	if req.ParentID != nil {
		if *req.ParentID == menu.MenuID {
			return nil, model.NewValidationError("parentId", "上级菜单不能选择自身")
		}
		if err := s.checkParentExists(ctx, *req.ParentID); err != nil {
			return nil, err
		}
		menu.ParentID = *req.ParentID
	}
	if req.MenuName != nil {
		menu.MenuName = *req.MenuName
	}

	count, err := s.menuRepo.CountByNameUnderParent(ctx, menu.MenuName, menu.ParentID, menu.MenuID)
	if err != nil {
		return nil, fmt.Errorf("failed to check menu name: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("菜单名称[%s]已存在: %w", menu.MenuName, model.ErrConflict)
	}

	if req.OrderNum != nil {
		menu.OrderNum = *req.OrderNum
	}
	if req.Path != nil {
		menu.Path = *req.Path
	}
	if req.Component != nil {
		menu.Component = *req.Component
	}
	if req.Query != nil {
		menu.Query = *req.Query
	}
	if req.IsFrame != nil {
		menu.IsFrame = *req.IsFrame
	}
	if req.IsCache != nil {
		menu.IsCache = *req.IsCache
	}
	if req.Visible != nil {
		menu.Visible = *req.Visible
	}
	if req.Status != nil {
		menu.Status = *req.Status
	}
	if req.Perms != nil {
		menu.Perms = *req.Perms
	}
	if req.Icon != nil {
		menu.Icon = *req.Icon
	}
	if req.Remark != nil {
		menu.Remark = *req.Remark
	}
	menu.UpdateBy = operator

	if err := s.menuRepo.UpdateMenu(ctx, menu); err != nil {
		return nil, fmt.Errorf("failed to update menu: %w", err)
	}

	logger.LogBusinessOperation("menu_update", 0, operator, "", "", "success", "菜单更新成功", map[string]interface{}{
		"menu_id": menu.MenuID,
	})
	return menu, nil
}

// DeleteMenu 删除菜单(软删除)
// 存在子菜单或被角色引用时拒绝删除
func (s *MenuService) DeleteMenu(ctx context.Context, menuID int64, operator string) error {
	menu, err := s.menuRepo.GetMenuByID(ctx, menuID)
	if err != nil {
		return fmt.Errorf("failed to get menu: %w", err)
	}
	if menu == nil {
		return fmt.Errorf("菜单[%d]不存在: %w", menuID, model.ErrNotFound)
	}

	childCount, err := s.menuRepo.CountChildren(ctx, menuID)
	if err != nil {
		return fmt.Errorf("failed to count children: %w", err)
	}
	if childCount > 0 {
		return fmt.Errorf("存在子菜单，不允许删除: %w", model.ErrForbiddenReference)
	}

	refCount, err := s.menuRepo.CountRoleRefs(ctx, menuID)
	if err != nil {
		return fmt.Errorf("failed to count role refs: %w", err)
	}
	if refCount > 0 {
		return fmt.Errorf("菜单已分配给角色，不允许删除: %w", model.ErrForbiddenReference)
	}

	if err := s.menuRepo.SoftDeleteMenu(ctx, menuID, operator); err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}

	logger.LogBusinessOperation("menu_delete", 0, operator, "", "", "success", "菜单删除成功", map[string]interface{}{
		"menu_id": menuID,
	})
	return nil
}

// TreeSelect 获取菜单下拉树
func (s *MenuService) TreeSelect(ctx context.Context, query *model.MenuQuery) ([]*model.TreeSelectNode, error) {
	menus, err := s.menuRepo.ListMenus(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	tree, err := buildMenuTreeSelect(menus)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		tree = []*model.TreeSelectNode{}
	}
	return tree, nil
}

// RoleMenuTreeSelect 获取角色菜单树(完整菜单树 + 该角色已勾选的菜单ID)
func (s *MenuService) RoleMenuTreeSelect(ctx context.Context, roleID int64) ([]*model.TreeSelectNode, []int64, error) {
	exists, err := s.roleRepo.RoleExistsByID(ctx, roleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check role: %w", err)
	}
	if !exists {
		return nil, nil, fmt.Errorf("角色[%d]不存在: %w", roleID, model.ErrNotFound)
	}

	tree, err := s.TreeSelect(ctx, &model.MenuQuery{})
	if err != nil {
		return nil, nil, err
	}

	checkedKeys, err := s.roleRepo.GetMenuIDsByRoleID(ctx, roleID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get role menu ids: %w", err)
	}
	if checkedKeys == nil {
		checkedKeys = []int64{}
	}
	return tree, checkedKeys, nil
}

// GetRouters 获取前端路由(优先读缓存，未命中则投影全量可路由菜单并回写缓存)
// 菜单变更不主动失效缓存，依赖TTL或管理端刷新动作
func (s *MenuService) GetRouters(ctx context.Context) ([]*model.Router, error) {
	cached, err := s.cacheRepo.GetRouters(ctx)
	if err != nil {
		// 缓存读取失败降级为直查数据库
		logger.LogError(err, "", 0, "", "router_cache", "GET", map[string]interface{}{
			"operation": "get_router_cache",
			"timestamp": logger.NowFormatted(),
		})
	}
	if cached != nil {
		return cached, nil
	}

	menus, err := s.menuRepo.ListRoutableMenus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list routable menus: %w", err)
	}

	routers, err := ProjectRouters(menus)
	if err != nil {
		return nil, fmt.Errorf("failed to project routers: %w", err)
	}

	if err := s.cacheRepo.SetRouters(ctx, routers); err != nil {
		logger.LogError(err, "", 0, "", "router_cache", "SET", map[string]interface{}{
			"operation": "set_router_cache",
			"timestamp": logger.NowFormatted(),
		})
	}
	return routers, nil
}

// RefreshRouterCache 清除路由缓存(管理端刷新动作)
func (s *MenuService) RefreshRouterCache(ctx context.Context, operator string) error {
	if err := s.cacheRepo.DeleteRouters(ctx); err != nil {
		return fmt.Errorf("failed to refresh router cache: %w", err)
	}
	logger.LogBusinessOperation("router_cache_refresh", 0, operator, "", "", "success", "路由缓存已刷新", nil)
	return nil
}

// validateMenuType 校验菜单类型取值
func (s *MenuService) validateMenuType(menuType string) error {
	switch menuType {
	case model.MenuTypeDir, model.MenuTypeMenu, model.MenuTypeButton:
		return nil
	default:
		return model.NewValidationError("menuType", "菜单类型必须为 M/C/F")
	}
}

// checkParentExists 校验父菜单存在(0 表示根)
func (s *MenuService) checkParentExists(ctx context.Context, parentID int64) error {
	if parentID == 0 {
		return nil
	}
	exists, err := s.menuRepo.MenuExistsByID(ctx, parentID)
	if err != nil {
		return fmt.Errorf("failed to check parent menu: %w", err)
	}
	if !exists {
		return model.NewValidationError("parentId", "上级菜单不存在")
	}
	return nil
}

// defaultString 空字符串时返回默认值
func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
