/**
 * 用户仓库层:用户数据访问
 * @author: sun977
 * @date: 2025.08.29
 * @description: 用户数据访问
 * @func:单纯数据访问,不应该包含业务逻辑
 */
package mysql

import (
	"context"

	"adminmaster/internal/model"
	"adminmaster/internal/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository 用户仓库结构体
// 负责处理用户相关的数据访问，不包含业务逻辑
type UserRepository struct {
	db *gorm.DB // 数据库连接
}

// NewUserRepository 创建用户仓库实例
// 注入数据库连接，专注于数据访问操作
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// active 返回仅包含未删除用户的查询作用域
func (r *UserRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.User{}).Where("sys_user.del_flag = ?", model.DelFlagNormal)
}

// CreateUser 创建用户（纯数据访问）
// 直接将用户数据插入数据库，不包含业务逻辑验证
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) error {
	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		logger.LogError(result.Error, "", uint(user.ID), "", "user_create", "POST", map[string]interface{}{
			"operation": "create_user",
			"username":  user.Username,
			"timestamp": logger.NowFormatted(),
		})
	}
	return result.Error
}

// GetUserByID 根据ID获取用户(带部门和角色)
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Dept").
		Preload("Roles", "status = ?", model.StatusNormal).
		Where("del_flag = ?", model.DelFlagNormal).
		First(&user, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "", uint(id), "", "user_get", "GET", map[string]interface{}{
			"operation": "get_user_by_id",
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername 根据用户名获取用户
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Dept").
		Preload("Roles", "status = ?", model.StatusNormal).
		Where("username = ? AND del_flag = ?", username, model.DelFlagNormal).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // 返回 nil 而不是错误，让业务层处理
		}
		logger.LogError(err, "", 0, "", "user_get", "GET", map[string]interface{}{
			"operation": "get_user_by_username",
			"username":  username,
			"timestamp": logger.NowFormatted(),
		})
		return nil, err
	}
	return &user, nil
}

// ListUsers 获取用户列表(分页)
// deptIDs 非空时限定部门范围(含子部门，调用方展开)
func (r *UserRepository) ListUsers(ctx context.Context, query *model.UserQuery, deptIDs []int64) ([]*model.User, int64, error) {
	db := r.active(ctx)

	if query.UserName != "" {
		// userName 同时模糊匹配用户名与昵称
		like := "%" + query.UserName + "%"
		db = db.Where("(username LIKE ? OR nick_name LIKE ?)", like, like)
	}
	if query.Phonenumber != "" {
		db = db.Where("phonenumber LIKE ?", "%"+query.Phonenumber+"%")
	}
	if query.Status != "" {
		db = db.Where("status = ?", query.Status)
	}
	if len(deptIDs) > 0 {
		db = db.Where("dept_id IN ?", deptIDs)
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

	var users []*model.User
	offset := (query.PageNum - 1) * query.PageSize
	err := db.Preload("Dept").
		Order("create_time DESC, id DESC").
		Offset(offset).Limit(query.PageSize).
		Find(&users).Error
	return users, total, err
}

// UpdateUser 更新用户信息
func (r *UserRepository) UpdateUser(ctx context.Context, user *model.User) error {
	err := r.db.WithContext(ctx).Omit("Roles", "Dept").Save(user).Error
	if err != nil {
		logger.LogError(err, "", uint(user.ID), "", "user_update", "PUT", map[string]interface{}{
			"operation": "update_user",
			"username":  user.Username,
			"timestamp": logger.NowFormatted(),
		})
	}
	return err
}

// UpdateUserFields 使用 map 更新用户特定字段
// 主要用于原子更新操作，如密码重置和状态变更
func (r *UserRepository) UpdateUserFields(ctx context.Context, userID int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ? AND del_flag = ?", userID, model.DelFlagNormal).
		Updates(fields).Error
}

// SoftDeleteUser 软删除用户(置删除标记并清理角色关联)
func (r *UserRepository) SoftDeleteUser(ctx context.Context, userID int64, updateBy string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.User{}).
			Where("id = ? AND del_flag = ?", userID, model.DelFlagNormal).
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
		return tx.Where("user_id = ?", userID).Delete(&model.UserRole{}).Error
	})
}

// CountByUsername 统计同名未删除用户数量(排除指定ID，用于唯一性校验)
func (r *UserRepository) CountByUsername(ctx context.Context, username string, excludeID int64) (int64, error) {
	var count int64
	db := r.active(ctx).Where("username = ?", username)
	if excludeID > 0 {
		db = db.Where("id <> ?", excludeID)
	}
	err := db.Count(&count).Error
	return count, err
}

// UserExistsByID 根据ID判断未删除用户是否存在
func (r *UserRepository) UserExistsByID(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.active(ctx).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ReplaceUserRoles 整体替换用户角色关联(事务内删旧插新)
func (r *UserRepository) ReplaceUserRoles(ctx context.Context, userID int64, roleIDs []int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.UserRole{}).Error; err != nil {
			return err
		}
		if len(roleIDs) == 0 {
			return nil
		}
		rows := make([]model.UserRole, 0, len(roleIDs))
		for _, roleID := range roleIDs {
			rows = append(rows, model.UserRole{UserID: userID, RoleID: roleID})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
}

// GetUserRoleIDs 获取用户已分配的角色ID列表
func (r *UserRepository) GetUserRoleIDs(ctx context.Context, userID int64) ([]int64, error) {
	var roleIDs []int64
	err := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Where("user_id = ?", userID).
		Pluck("role_id", &roleIDs).Error
	return roleIDs, err
}

// InsertUserRolesIgnore 批量为角色授权用户，已存在的关联忽略
func (r *UserRepository) InsertUserRolesIgnore(ctx context.Context, roleID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(userIDs))
	rows := make([]model.UserRole, 0, len(userIDs))
	for _, userID := range userIDs {
		if _, ok := seen[userID]; ok {
			continue
		}
		seen[userID] = struct{}{}
		rows = append(rows, model.UserRole{UserID: userID, RoleID: roleID})
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

// DeleteUserRoles 批量取消角色的用户授权(幂等)
func (r *UserRepository) DeleteUserRoles(ctx context.Context, roleID int64, userIDs []int64) error {
	if len(userIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("role_id = ? AND user_id IN ?", roleID, userIDs).
		Delete(&model.UserRole{}).Error
}

// ListAllocatedUsers 查询已分配指定角色的用户列表(分页)
func (r *UserRepository) ListAllocatedUsers(ctx context.Context, roleID int64, query *model.UserQuery) ([]*model.User, int64, error) {
	db := r.active(ctx).
		Joins("JOIN sys_user_role ON sys_user_role.user_id = sys_user.id").
		Where("sys_user_role.role_id = ?", roleID)

	if query.UserName != "" {
		db = db.Where("sys_user.username LIKE ?", "%"+query.UserName+"%")
	}
	if query.Phonenumber != "" {
		db = db.Where("sys_user.phonenumber LIKE ?", "%"+query.Phonenumber+"%")
	}
	if query.Status != "" {
		db = db.Where("sys_user.status = ?", query.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*model.User
	offset := (query.PageNum - 1) * query.PageSize
	err := db.Preload("Dept").
		Order("sys_user.id DESC").
		Offset(offset).Limit(query.PageSize).
		Find(&users).Error
	return users, total, err
}

// ListUnallocatedUsers 查询未分配指定角色的用户列表(分页)
func (r *UserRepository) ListUnallocatedUsers(ctx context.Context, roleID int64, query *model.UserQuery) ([]*model.User, int64, error) {
	sub := r.db.WithContext(ctx).Model(&model.UserRole{}).
		Select("user_id").
		Where("role_id = ?", roleID)

	db := r.active(ctx).Where("sys_user.id NOT IN (?)", sub)

	if query.UserName != "" {
		db = db.Where("sys_user.username LIKE ?", "%"+query.UserName+"%")
	}
	if query.Phonenumber != "" {
		db = db.Where("sys_user.phonenumber LIKE ?", "%"+query.Phonenumber+"%")
	}
	if query.Status != "" {
		db = db.Where("sys_user.status = ?", query.Status)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []*model.User
	offset := (query.PageNum - 1) * query.PageSize
	err := db.Preload("Dept").
		Order("sys_user.id DESC").
		Offset(offset).Limit(query.PageSize).
		Find(&users).Error
	return users, total, err
}
