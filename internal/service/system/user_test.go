package system

import (
	"context"
	"testing"

	"adminmaster/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRoles(t *testing.T, db *gorm.DB) (admin, common *model.Role) {
	t.Helper()
	admin = &model.Role{RoleName: "超级管理员", RoleKey: model.AdminRoleKey, RoleSort: 1, Status: model.StatusNormal}
	common = &model.Role{RoleName: "普通角色", RoleKey: "common", RoleSort: 2, Status: model.StatusNormal}
	mustCreate(t, db, admin)
	mustCreate(t, db, common)
	return admin, common
}

func TestUserCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	_, common := seedRoles(t, db)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, &model.CreateUserRequest{
		UserName: "zhangsan",
		NickName: "张三",
		Password: "Passw0rd",
		RoleIDs:  []int64{common.RoleID},
	}, "admin")
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	// 明文密码不落库
	assert.NotEqual(t, "Passw0rd", created.Password)

	got, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "zhangsan", got.Username)
	require.Len(t, got.Roles, 1)
	assert.Equal(t, "common", got.Roles[0].RoleKey)
}

func TestUserCreateUsernameConflict(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "zhangsan", Password: "Passw0rd"}, "admin")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "zhangsan", Password: "Passw0rd"}, "admin")
	require.ErrorIs(t, err, model.ErrConflict)
}

func TestUserCreateWeakPassword(t *testing.T) {
	svc := newTestUserService(newTestDB(t))

	for _, pwd := range []string{"short", "12345678", "onlyletters"} {
		_, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{UserName: "u_" + pwd, Password: pwd}, "admin")
		require.Error(t, err, "password %q should be rejected", pwd)
		assert.True(t, model.IsValidationError(err))
	}
}

func TestUserCreateUnknownDept(t *testing.T) {
	svc := newTestUserService(newTestDB(t))

	_, err := svc.CreateUser(context.Background(), &model.CreateUserRequest{
		UserName: "zhangsan",
		Password: "Passw0rd",
		DeptID:   int64Ptr(999),
	}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestUserAssignRolesSkipsUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	_, common := seedRoles(t, db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "zhangsan", Password: "Passw0rd"}, "admin")
	require.NoError(t, err)

	// 未知角色与重复角色静默跳过
	err = svc.AssignRoles(ctx, user.ID, []int64{common.RoleID, 999, common.RoleID}, "admin")
	require.NoError(t, err)

	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{common.RoleID}, profile.RoleIDs)
}

func TestUserAssignRolesReplacesAtomically(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	admin, common := seedRoles(t, db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{
		UserName: "zhangsan",
		Password: "Passw0rd",
		RoleIDs:  []int64{common.RoleID},
	}, "admin")
	require.NoError(t, err)

	// 整体替换，旧授权清除
	require.NoError(t, svc.AssignRoles(ctx, user.ID, []int64{admin.RoleID}, "admin"))
	profile, err := svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{admin.RoleID}, profile.RoleIDs)

	// 空列表清空授权
	require.NoError(t, svc.AssignRoles(ctx, user.ID, nil, "admin"))
	profile, err = svc.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.RoleIDs)
}

func TestUserAssignRolesNotFound(t *testing.T) {
	svc := newTestUserService(newTestDB(t))

	err := svc.AssignRoles(context.Background(), 777, nil, "admin")
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "777")
}

func TestUserDeleteSelfRefused(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "zhangsan", Password: "Passw0rd"}, "admin")
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, user.ID, user.ID, "zhangsan")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestUserDeleteAdminRefused(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	admin, _ := seedRoles(t, db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{
		UserName: "superuser",
		Password: "Passw0rd",
		RoleIDs:  []int64{admin.RoleID},
	}, "admin")
	require.NoError(t, err)

	err = svc.DeleteUser(ctx, user.ID, 0, "operator")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestUserDeleteHidesUserAndClearsRoles(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	_, common := seedRoles(t, db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{
		UserName: "zhangsan",
		Password: "Passw0rd",
		RoleIDs:  []int64{common.RoleID},
	}, "admin")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID, 0, "operator"))

	_, err = svc.GetUser(ctx, user.ID)
	require.ErrorIs(t, err, model.ErrNotFound)

	// 角色关联连带清理
	var count int64
	require.NoError(t, db.Model(&model.UserRole{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)

	// 删除后用户名可复用
	_, err = svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "zhangsan", Password: "Passw0rd"}, "admin")
	require.NoError(t, err)
}

func TestUserChangeStatusValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "zhangsan", Password: "Passw0rd"}, "admin")
	require.NoError(t, err)

	err = svc.ChangeStatus(ctx, user.ID, "9", "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	require.NoError(t, svc.ChangeStatus(ctx, user.ID, model.StatusDisabled, "admin"))
	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDisabled, got.Status)
}

func TestUserUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "zhangsan", Password: "Passw0rd"}, "admin")
	require.NoError(t, err)

	// 旧密码错误
	err = svc.UpdatePassword(ctx, user.ID, &model.UpdatePwdRequest{OldPassword: "wrong1pwd", NewPassword: "NewPass1"})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	// 新旧密码相同
	err = svc.UpdatePassword(ctx, user.ID, &model.UpdatePwdRequest{OldPassword: "Passw0rd", NewPassword: "Passw0rd"})
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	// 正常修改后新密码可登录验证
	err = svc.UpdatePassword(ctx, user.ID, &model.UpdatePwdRequest{OldPassword: "Passw0rd", NewPassword: "NewPass1"})
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	ok, err := svc.passwordManager.VerifyPassword("NewPass1", got.Password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserResetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "zhangsan", Password: "Passw0rd"}, "admin")
	require.NoError(t, err)

	err = svc.ResetPassword(ctx, &model.ResetPwdRequest{UserID: user.ID, Password: "Reset123"}, "admin")
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	ok, err := svc.passwordManager.VerifyPassword("Reset123", got.Password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUserGetAuthRoleFlags(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	_, common := seedRoles(t, db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{
		UserName: "zhangsan",
		Password: "Passw0rd",
		RoleIDs:  []int64{common.RoleID},
	}, "admin")
	require.NoError(t, err)

	resp, err := svc.GetAuthRole(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, resp.Roles, 2)

	flags := make(map[string]bool, 2)
	for _, rf := range resp.Roles {
		flags[rf.Role.RoleKey] = rf.Flag
	}
	assert.False(t, flags[model.AdminRoleKey])
	assert.True(t, flags["common"])
}

func TestUserListFiltersByDeptSubtree(t *testing.T) {
	db := newTestDB(t)
	deptSvc := newTestDeptService(db)
	svc := newTestUserService(db)
	ctx := context.Background()

	root, err := deptSvc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: 0, DeptName: "总公司"}, "admin")
	require.NoError(t, err)
	child, err := deptSvc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: root.DeptID, DeptName: "研发部门"}, "admin")
	require.NoError(t, err)
	other, err := deptSvc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: 0, DeptName: "别处"}, "admin")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "inroot", Password: "Passw0rd", DeptID: &root.DeptID}, "admin")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "inchild", Password: "Passw0rd", DeptID: &child.DeptID}, "admin")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "elsewhere", Password: "Passw0rd", DeptID: &other.DeptID}, "admin")
	require.NoError(t, err)

	users, total, err := svc.ListUsers(ctx, &model.UserQuery{DeptID: root.DeptID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	names := make([]string, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
	}
	assert.ElementsMatch(t, []string{"inroot", "inchild"}, names)
}

func TestUserListMatchesUsernameOrNickname(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "zhangsan", NickName: "运维张", Password: "Passw0rd"}, "admin")
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "lisi", NickName: "李四", Password: "Passw0rd"}, "admin")
	require.NoError(t, err)

	// userName 参数同时模糊匹配用户名与昵称
	users, total, err := svc.ListUsers(ctx, &model.UserQuery{UserName: "运维张"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "zhangsan", users[0].Username)

	users, total, err = svc.ListUsers(ctx, &model.UserQuery{UserName: "zhang"})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "zhangsan", users[0].Username)

	_, total, err = svc.ListUsers(ctx, &model.UserQuery{UserName: "王五"})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUserUpdateProfileFields(t *testing.T) {
	db := newTestDB(t)
	svc := newTestUserService(db)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{UserName: "zhangsan", Password: "Passw0rd"}, "admin")
	require.NoError(t, err)

	err = svc.UpdateProfile(ctx, user.ID, &model.UpdateProfileRequest{
		NickName: strPtr("三爷"),
		Email:    strPtr("zhangsan@example.com"),
	})
	require.NoError(t, err)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "三爷", got.NickName)
	assert.Equal(t, "zhangsan@example.com", got.Email)
}
