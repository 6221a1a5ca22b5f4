/*
 * @author: sun977
 * @date: 2025.09.12
 * @description: 角色管理服务
 * @func:
 * 1.角色CRUD(软删除，名称/权限字符唯一)
 * 2.角色菜单授权(整体替换，过滤无效菜单)
 * 3.角色用户授权(已分配/未分配/批量授权/取消授权)
 * 4.数据范围设置(仅存储)
 */
package system

import (
	"context"
	"fmt"

	"adminmaster/internal/model"
	"adminmaster/internal/pkg/logger"
	"adminmaster/internal/repository/mysql"
)

// RoleService 角色管理服务
type RoleService struct {
	roleRepo *mysql.RoleRepository
	userRepo *mysql.UserRepository
	menuRepo *mysql.MenuRepository
}

// NewRoleService 创建角色服务实例
func NewRoleService(
	roleRepo *mysql.RoleRepository,
	userRepo *mysql.UserRepository,
	menuRepo *mysql.MenuRepository,
) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		userRepo: userRepo,
		menuRepo: menuRepo,
	}
}

// ListRoles 获取角色列表(分页，按角色排序号排列)
func (s *RoleService) ListRoles(ctx context.Context, query *model.RoleQuery) ([]*model.Role, int64, error) {
	query.Normalize()
	roles, total, err := s.roleRepo.ListRoles(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, total, nil
}

// ListAllRoles 获取全部角色(下拉选项)
func (s *RoleService) ListAllRoles(ctx context.Context) ([]*model.Role, error) {
	roles, err := s.roleRepo.ListAllRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

// GetRole 根据ID获取角色
func (s *RoleService) GetRole(ctx context.Context, roleID int64) (*model.Role, error) {
	role, err := s.roleRepo.GetRoleByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("角色[%d]不存在: %w", roleID, model.ErrNotFound)
	}
	return role, nil
}

// CreateRole 创建角色(角色与菜单授权在同一事务内落库)
func (s *RoleService) CreateRole(ctx context.Context, req *model.CreateRoleRequest, operator string) (*model.Role, error) {
	if err := s.checkRoleUnique(ctx, req.RoleName, req.RoleKey, 0); err != nil {
		return nil, err
	}

	role := &model.Role{
		RoleName:          req.RoleName,
		RoleKey:           req.RoleKey,
		RoleSort:          req.RoleSort,
		DataScope:         defaultString(req.DataScope, model.DataScopeAll),
		MenuCheckStrictly: boolToInt(req.MenuCheckStrictly, true),
		DeptCheckStrictly: boolToInt(req.DeptCheckStrictly, true),
		Status:            defaultString(req.Status, model.StatusNormal),
		Remark:            req.Remark,
	}
	role.CreateBy = operator
	role.UpdateBy = operator

	// 过滤掉不存在或已删除的菜单
	menuIDs, err := s.menuRepo.FilterExistingMenuIDs(ctx, req.MenuIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to filter menu ids: %w", err)
	}

	if err := s.roleRepo.CreateRole(ctx, role, menuIDs); err != nil {
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	logger.LogBusinessOperation("role_create", 0, operator, "", "", "success", "角色创建成功", map[string]interface{}{
		"role_id":   role.RoleID,
		"role_name": role.RoleName,
		"role_key":  role.RoleKey,
	})
	return role, nil
}

// UpdateRole 更新角色(body-id 兼容路径传入 req.RoleID)
// req.MenuIDs 非 nil 时整体替换角色菜单，空列表表示清空授权
func (s *RoleService) UpdateRole(ctx context.Context, roleID int64, req *model.UpdateRoleRequest, operator string) (*model.Role, error) {
	if roleID == 0 {
		roleID = req.RoleID
	}
	if roleID == 0 {
		return nil, model.NewValidationError("roleId", "角色ID不能为空")
	}

	role, err := s.roleRepo.GetRoleByID(ctx, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("角色[%d]不存在: %w", roleID, model.ErrNotFound)
	}
	if role.IsAdmin() {
		return nil, model.NewValidationError("roleId", "不允许操作超级管理员角色")
	}

	if req.RoleName != nil {
		role.RoleName = *req.RoleName
	}
	if req.RoleKey != nil {
		role.RoleKey = *req.RoleKey
	}
	if err := s.checkRoleUnique(ctx, role.RoleName, role.RoleKey, role.RoleID); err != nil {
		return nil, err
	}

	if req.RoleSort != nil {
		role.RoleSort = *req.RoleSort
	}
	if req.DataScope != nil {
		role.DataScope = *req.DataScope
	}
	if req.MenuCheckStrictly != nil {
		role.MenuCheckStrictly = boolToInt(req.MenuCheckStrictly, true)
	}
	if req.DeptCheckStrictly != nil {
		role.DeptCheckStrictly = boolToInt(req.DeptCheckStrictly, true)
	}
	if req.Status != nil {
		role.Status = *req.Status
	}
	if req.Remark != nil {
		role.Remark = *req.Remark
	}
	role.UpdateBy = operator

	if err := s.roleRepo.UpdateRole(ctx, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	if req.MenuIDs != nil {
		menuIDs, err := s.menuRepo.FilterExistingMenuIDs(ctx, *req.MenuIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to filter menu ids: %w", err)
		}
		if err := s.roleRepo.ReplaceRoleMenus(ctx, role.RoleID, menuIDs); err != nil {
			return nil, fmt.Errorf("failed to replace role menus: %w", err)
		}
	}

	logger.LogBusinessOperation("role_update", 0, operator, "", "", "success", "角色更新成功", map[string]interface{}{
		"role_id": role.RoleID,
	})
	return role, nil
}

// DeleteRole 删除角色(软删除，连带清理菜单/用户授权)
// 有用户在用时拒绝删除
func (s *RoleService) DeleteRole(ctx context.Context, roleID int64, operator string) error {
	role, err := s.roleRepo.GetRoleByID(ctx, roleID)
	if err != nil {
		return fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return fmt.Errorf("角色[%d]不存在: %w", roleID, model.ErrNotFound)
	}
	if role.IsAdmin() {
		return model.NewValidationError("roleId", "不允许操作超级管理员角色")
	}

	userCount, err := s.roleRepo.CountRoleUsers(ctx, roleID)
	if err != nil {
		return fmt.Errorf("failed to count role users: %w", err)
	}
	if userCount > 0 {
		return fmt.Errorf("角色[%s]已分配用户，不允许删除: %w", role.RoleName, model.ErrForbiddenReference)
	}

	if err := s.roleRepo.SoftDeleteRole(ctx, roleID, operator); err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
	}

	logger.LogBusinessOperation("role_delete", 0, operator, "", "", "success", "角色删除成功", map[string]interface{}{
		"role_id": roleID,
	})
	return nil
}

// ChangeStatus 变更角色状态
func (s *RoleService) ChangeStatus(ctx context.Context, roleID int64, status, operator string) error {
	role, err := s.roleRepo.GetRoleByID(ctx, roleID)
	if err != nil {
		return fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return fmt.Errorf("角色[%d]不存在: %w", roleID, model.ErrNotFound)
	}
	if role.IsAdmin() {
		return model.NewValidationError("roleId", "不允许操作超级管理员角色")
	}
	if status != model.StatusNormal && status != model.StatusDisabled {
		return model.NewValidationError("status", "状态取值非法")
	}

	err = s.roleRepo.UpdateRoleFields(ctx, roleID, map[string]interface{}{
		"status":    status,
		"update_by": operator,
	})
	if err != nil {
		return fmt.Errorf("failed to change role status: %w", err)
	}

	logger.LogBusinessOperation("role_change_status", 0, operator, "", "", "success", "角色状态变更成功", map[string]interface{}{
		"role_id": roleID,
		"status":  status,
	})
	return nil
}

// SetDataScope 设置角色数据范围(仅存储，本核心不参与查询过滤)
func (s *RoleService) SetDataScope(ctx context.Context, req *model.DataScopeRequest, operator string) error {
	role, err := s.roleRepo.GetRoleByID(ctx, req.RoleID)
	if err != nil {
		return fmt.Errorf("failed to get role: %w", err)
	}
	if role == nil {
		return fmt.Errorf("角色[%d]不存在: %w", req.RoleID, model.ErrNotFound)
	}
	if role.IsAdmin() {
		return model.NewValidationError("roleId", "不允许操作超级管理员角色")
	}

	switch req.DataScope {
	case model.DataScopeAll, model.DataScopeCustom, model.DataScopeDept,
		model.DataScopeDeptBelow, model.DataScopeSelfOnly:
	default:
		return model.NewValidationError("dataScope", "数据范围取值必须为 1-5")
	}

	fields := map[string]interface{}{
		"data_scope": req.DataScope,
		"update_by":  operator,
	}
	if req.DeptCheckStrictly != nil {
		fields["dept_check_strictly"] = boolToInt(req.DeptCheckStrictly, true)
	}
	if err := s.roleRepo.UpdateRoleFields(ctx, req.RoleID, fields); err != nil {
		return fmt.Errorf("failed to set data scope: %w", err)
	}

	logger.LogBusinessOperation("role_data_scope", 0, operator, "", "", "success", "角色数据范围设置成功", map[string]interface{}{
		"role_id":    req.RoleID,
		"data_scope": req.DataScope,
	})
	return nil
}

// AllocatedUsers 查询已分配该角色的用户(分页)
func (s *RoleService) AllocatedUsers(ctx context.Context, roleID int64, query *model.UserQuery) ([]*model.User, int64, error) {
	if err := s.mustRoleExist(ctx, roleID); err != nil {
		return nil, 0, err
	}
	query.Normalize()
	users, total, err := s.userRepo.ListAllocatedUsers(ctx, roleID, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list allocated users: %w", err)
	}
	return users, total, nil
}

// UnallocatedUsers 查询未分配该角色的用户(分页，与已分配集合互补)
func (s *RoleService) UnallocatedUsers(ctx context.Context, roleID int64, query *model.UserQuery) ([]*model.User, int64, error) {
	if err := s.mustRoleExist(ctx, roleID); err != nil {
		return nil, 0, err
	}
	query.Normalize()
	users, total, err := s.userRepo.ListUnallocatedUsers(ctx, roleID, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list unallocated users: %w", err)
	}
	return users, total, nil
}

// CancelAuthUser 取消单个用户授权(幂等，授权关系不存在时同样成功)
func (s *RoleService) CancelAuthUser(ctx context.Context, req *model.AuthUserCancelRequest, operator string) error {
	if err := s.mustRoleExist(ctx, req.RoleID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUserRoles(ctx, req.RoleID, []int64{req.UserID}); err != nil {
		return fmt.Errorf("failed to cancel auth user: %w", err)
	}

	logger.LogBusinessOperation("role_auth_cancel", 0, operator, "", "", "success", "取消用户授权成功", map[string]interface{}{
		"role_id": req.RoleID,
		"user_id": req.UserID,
	})
	return nil
}

// CancelAuthUsers 批量取消用户授权
func (s *RoleService) CancelAuthUsers(ctx context.Context, roleID int64, userIDs []int64, operator string) error {
	if err := s.mustRoleExist(ctx, roleID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUserRoles(ctx, roleID, userIDs); err != nil {
		return fmt.Errorf("failed to cancel auth users: %w", err)
	}

	logger.LogBusinessOperation("role_auth_cancel_all", 0, operator, "", "", "success", "批量取消用户授权成功", map[string]interface{}{
		"role_id":  roleID,
		"user_ids": userIDs,
	})
	return nil
}

// SelectAuthUsers 批量授权用户(重复授权忽略，不产生重复关联)
func (s *RoleService) SelectAuthUsers(ctx context.Context, roleID int64, userIDs []int64, operator string) error {
	if err := s.mustRoleExist(ctx, roleID); err != nil {
		return err
	}
	if err := s.userRepo.InsertUserRolesIgnore(ctx, roleID, userIDs); err != nil {
		return fmt.Errorf("failed to select auth users: %w", err)
	}

	logger.LogBusinessOperation("role_auth_select", 0, operator, "", "", "success", "批量授权用户成功", map[string]interface{}{
		"role_id":  roleID,
		"user_ids": userIDs,
	})
	return nil
}

// checkRoleUnique 角色名称与权限字符在未删除行内唯一
func (s *RoleService) checkRoleUnique(ctx context.Context, roleName, roleKey string, excludeID int64) error {
	count, err := s.roleRepo.CountByRoleName(ctx, roleName, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check role name: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("角色名称[%s]已存在: %w", roleName, model.ErrConflict)
	}

	count, err = s.roleRepo.CountByRoleKey(ctx, roleKey, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check role key: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("权限字符[%s]已存在: %w", roleKey, model.ErrConflict)
	}
	return nil
}

// mustRoleExist 角色不存在时返回 NotFound
func (s *RoleService) mustRoleExist(ctx context.Context, roleID int64) error {
	exists, err := s.roleRepo.RoleExistsByID(ctx, roleID)
	if err != nil {
		return fmt.Errorf("failed to check role: %w", err)
	}
	if !exists {
		return fmt.Errorf("角色[%d]不存在: %w", roleID, model.ErrNotFound)
	}
	return nil
}

// boolToInt 树选择关联显示标志的 bool -> int 转换，nil 时取默认值
func boolToInt(v *bool, def bool) int {
	b := def
	if v != nil {
		b = *v
	}
	if b {
		return 1
	}
	return 0
}
