/*
 * @author: sun977
 * @date: 2025.09.12
 * @description: 用户管理服务
 * @func:
 * 1.用户CRUD(软删除，用户名唯一)
 * 2.角色分配(整体替换，未知角色静默跳过)
 * 3.密码重置/自助修改/状态变更/头像/个人信息
 */
package system

import (
	"context"
	"fmt"

	"adminmaster/internal/model"
	"adminmaster/internal/pkg/auth"
	"adminmaster/internal/pkg/logger"
	"adminmaster/internal/repository/mysql"
)

// UserService 用户管理服务
type UserService struct {
	userRepo        *mysql.UserRepository
	roleRepo        *mysql.RoleRepository
	deptRepo        *mysql.DeptRepository
	deptService     *DeptService
	passwordManager *auth.PasswordManager
}

// NewUserService 创建用户服务实例
func NewUserService(
	userRepo *mysql.UserRepository,
	roleRepo *mysql.RoleRepository,
	deptRepo *mysql.DeptRepository,
	deptService *DeptService,
	passwordManager *auth.PasswordManager,
) *UserService {
	return &UserService{
		userRepo:        userRepo,
		roleRepo:        roleRepo,
		deptRepo:        deptRepo,
		deptService:     deptService,
		passwordManager: passwordManager,
	}
}

// ListUsers 获取用户列表(分页，按创建时间倒序)
// 按部门过滤时包含该部门的全部后代部门
func (s *UserService) ListUsers(ctx context.Context, query *model.UserQuery) ([]*model.User, int64, error) {
	query.Normalize()

	var deptIDs []int64
	if query.DeptID > 0 {
		ids, err := s.deptService.DescendantIDs(ctx, query.DeptID)
		if err != nil {
			return nil, 0, err
		}
		deptIDs = ids
	}

	users, total, err := s.userRepo.ListUsers(ctx, query, deptIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser 根据ID获取用户(含部门与启用角色)
func (s *UserService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("用户[%d]不存在: %w", userID, model.ErrNotFound)
	}
	return user, nil
}

// CreateUser 创建用户
func (s *UserService) CreateUser(ctx context.Context, req *model.CreateUserRequest, operator string) (*model.User, error) {
	count, err := s.userRepo.CountByUsername(ctx, req.UserName, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("用户名[%s]已存在: %w", req.UserName, model.ErrConflict)
	}

	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return nil, model.NewValidationError("password", err.Error())
	}
	hash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.checkDeptAssignable(ctx, req.DeptID); err != nil {
		return nil, err
	}

	user := &model.User{
		Username:    req.UserName,
		NickName:    req.NickName,
		Password:    hash,
		Phonenumber: req.Phonenumber,
		Email:       req.Email,
		Sex:         defaultString(req.Sex, model.SexUnknown),
		Status:      defaultString(req.Status, model.StatusNormal),
		Remark:      req.Remark,
		DeptID:      req.DeptID,
	}
	user.CreateBy = operator
	user.UpdateBy = operator

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if len(req.RoleIDs) > 0 {
		if err := s.replaceRolesFiltered(ctx, user.ID, req.RoleIDs); err != nil {
			return nil, err
		}
	}

	logger.LogBusinessOperation("user_create", uint(user.ID), operator, "", "", "success", "用户创建成功", map[string]interface{}{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, nil
}

// UpdateUser 更新用户(body-id 兼容路径传入 req.UserID)
// req.RoleIDs 非 nil 时整体替换用户角色，未知角色静默跳过
func (s *UserService) UpdateUser(ctx context.Context, userID int64, req *model.UpdateUserRequest, operator string) (*model.User, error) {
	if userID == 0 {
		userID = req.UserID
	}
	if userID == 0 {
		return nil, model.NewValidationError("userId", "用户ID不能为空")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("用户[%d]不存在: %w", userID, model.ErrNotFound)
	}

	if req.DeptID != nil {
		if err := s.checkDeptAssignable(ctx, req.DeptID); err != nil {
			return nil, err
		}
		user.DeptID = req.DeptID
	}
	if req.NickName != nil {
		user.NickName = *req.NickName
	}
	if req.Phonenumber != nil {
		user.Phonenumber = *req.Phonenumber
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Sex != nil {
		user.Sex = *req.Sex
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.Remark != nil {
		user.Remark = *req.Remark
	}
	user.UpdateBy = operator

	if err := s.userRepo.UpdateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	if req.RoleIDs != nil {
		if err := s.replaceRolesFiltered(ctx, user.ID, req.RoleIDs); err != nil {
			return nil, err
		}
	}

	logger.LogBusinessOperation("user_update", uint(user.ID), operator, "", "", "success", "用户更新成功", map[string]interface{}{
		"user_id": user.ID,
	})
	return user, nil
}

// DeleteUser 删除用户(软删除，连带清理角色授权)
func (s *UserService) DeleteUser(ctx context.Context, userID, operatorID int64, operator string) error {
	if userID == operatorID {
		return model.NewValidationError("userId", "当前登录用户不能删除自己")
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("用户[%d]不存在: %w", userID, model.ErrNotFound)
	}
	if user.HasRoleKey(model.AdminRoleKey) {
		return model.NewValidationError("userId", "不允许删除超级管理员用户")
	}

	if err := s.userRepo.SoftDeleteUser(ctx, userID, operator); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	logger.LogBusinessOperation("user_delete", uint(userID), operator, "", "", "success", "用户删除成功", map[string]interface{}{
		"user_id": userID,
	})
	return nil
}

// ResetPassword 管理端重置用户密码
func (s *UserService) ResetPassword(ctx context.Context, req *model.ResetPwdRequest, operator string) error {
	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("用户[%d]不存在: %w", req.UserID, model.ErrNotFound)
	}

	if err := auth.ValidatePasswordStrength(req.Password); err != nil {
		return model.NewValidationError("password", err.Error())
	}
	hash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.userRepo.UpdateUserFields(ctx, req.UserID, map[string]interface{}{
		"password":  hash,
		"update_by": operator,
	})
	if err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}

	logger.LogBusinessOperation("user_reset_pwd", uint(req.UserID), operator, "", "", "success", "用户密码重置成功", map[string]interface{}{
		"user_id": req.UserID,
	})
	return nil
}

// ChangeStatus 变更用户状态
func (s *UserService) ChangeStatus(ctx context.Context, userID int64, status, operator string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("用户[%d]不存在: %w", userID, model.ErrNotFound)
	}
	if status != model.StatusNormal && status != model.StatusDisabled {
		return model.NewValidationError("status", "状态取值非法")
	}

	err = s.userRepo.UpdateUserFields(ctx, userID, map[string]interface{}{
		"status":    status,
		"update_by": operator,
	})
	if err != nil {
		return fmt.Errorf("failed to change user status: %w", err)
	}

	logger.LogBusinessOperation("user_change_status", uint(userID), operator, "", "", "success", "用户状态变更成功", map[string]interface{}{
		"user_id": userID,
		"status":  status,
	})
	return nil
}

// AssignRoles 整体替换用户角色(原子替换，未知角色静默跳过)
func (s *UserService) AssignRoles(ctx context.Context, userID int64, roleIDs []int64, operator string) error {
	exists, err := s.userRepo.UserExistsByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return fmt.Errorf("用户[%d]不存在: %w", userID, model.ErrNotFound)
	}

	if err := s.replaceRolesFiltered(ctx, userID, roleIDs); err != nil {
		return err
	}

	logger.LogBusinessOperation("user_auth_role", uint(userID), operator, "", "", "success", "用户角色授权成功", map[string]interface{}{
		"user_id":  userID,
		"role_ids": roleIDs,
	})
	return nil
}

// GetAuthRole 查询用户授权角色(全部启用角色 + 当前持有标记)
func (s *UserService) GetAuthRole(ctx context.Context, userID int64) (*model.AuthRoleResponse, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	allRoles, err := s.roleRepo.ListAllRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}

	held := make(map[int64]bool, len(user.Roles))
	for _, r := range user.Roles {
		held[r.RoleID] = true
	}

	flags := make([]*model.RoleFlag, 0, len(allRoles))
	for _, r := range allRoles {
		flags = append(flags, &model.RoleFlag{Role: *r, Flag: held[r.RoleID]})
	}
	return &model.AuthRoleResponse{User: user, Roles: flags}, nil
}

// GetProfile 获取个人信息
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*model.ProfileResponse, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	roleIDs, err := s.userRepo.GetUserRoleIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user role ids: %w", err)
	}
	if roleIDs == nil {
		roleIDs = []int64{}
	}
	return &model.ProfileResponse{User: user, RoleIDs: roleIDs, PostIDs: []int64{}}, nil
}

// UpdateProfile 修改个人信息(仅昵称/手机号/邮箱/性别)
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{"update_by": user.Username}
	if req.NickName != nil {
		fields["nick_name"] = *req.NickName
	}
	if req.Phonenumber != nil {
		fields["phonenumber"] = *req.Phonenumber
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Sex != nil {
		fields["sex"] = *req.Sex
	}

	if err := s.userRepo.UpdateUserFields(ctx, userID, fields); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	logger.LogBusinessOperation("user_update_profile", uint(userID), user.Username, "", "", "success", "个人信息修改成功", nil)
	return nil
}

// UpdatePassword 用户自助修改密码(校验旧密码)
func (s *UserService) UpdatePassword(ctx context.Context, userID int64, req *model.UpdatePwdRequest) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	ok, err := s.passwordManager.VerifyPassword(req.OldPassword, user.Password)
	if err != nil {
		return fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return model.NewValidationError("oldPassword", "旧密码错误")
	}
	if req.NewPassword == req.OldPassword {
		return model.NewValidationError("newPassword", "新密码不能与旧密码相同")
	}
	if err := auth.ValidatePasswordStrength(req.NewPassword); err != nil {
		return model.NewValidationError("newPassword", err.Error())
	}

	hash, err := s.passwordManager.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = s.userRepo.UpdateUserFields(ctx, userID, map[string]interface{}{
		"password":  hash,
		"update_by": user.Username,
	})
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.LogBusinessOperation("user_update_pwd", uint(userID), user.Username, "", "", "success", "密码修改成功", nil)
	return nil
}

// UpdateAvatar 更新用户头像
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, avatar string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	err = s.userRepo.UpdateUserFields(ctx, userID, map[string]interface{}{
		"avatar":    avatar,
		"update_by": user.Username,
	})
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	return nil
}

// replaceRolesFiltered 过滤掉不存在/已删除的角色后整体替换用户角色
func (s *UserService) replaceRolesFiltered(ctx context.Context, userID int64, roleIDs []int64) error {
	filtered, err := s.filterExistingRoleIDs(ctx, roleIDs)
	if err != nil {
		return err
	}
	if err := s.userRepo.ReplaceUserRoles(ctx, userID, filtered); err != nil {
		return fmt.Errorf("failed to replace user roles: %w", err)
	}
	return nil
}

// filterExistingRoleIDs 保序去重，剔除未知角色ID
func (s *UserService) filterExistingRoleIDs(ctx context.Context, roleIDs []int64) ([]int64, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}

	roles, err := s.roleRepo.ListAllRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	known := make(map[int64]bool, len(roles))
	for _, r := range roles {
		known[r.RoleID] = true
	}

	seen := make(map[int64]bool, len(roleIDs))
	filtered := make([]int64, 0, len(roleIDs))
	for _, id := range roleIDs {
		if known[id] && !seen[id] {
			seen[id] = true
			filtered = append(filtered, id)
		}
	}
	return filtered, nil
}

// checkDeptAssignable 校验归属部门存在且未删除(nil 表示不分配部门)
func (s *UserService) checkDeptAssignable(ctx context.Context, deptID *int64) error {
	if deptID == nil || *deptID == 0 {
		return nil
	}
	exists, err := s.deptRepo.DeptExistsByID(ctx, *deptID)
	if err != nil {
		return fmt.Errorf("failed to check dept: %w", err)
	}
	if !exists {
		return model.NewValidationError("deptId", "归属部门不存在")
	}
	return nil
}
