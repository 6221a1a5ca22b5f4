package system

import (
	"context"
	"testing"

	"adminmaster/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedAdminRole(t *testing.T, db *gorm.DB) *model.Role {
	t.Helper()
	admin := &model.Role{RoleName: "超级管理员", RoleKey: model.AdminRoleKey, RoleSort: 1, Status: model.StatusNormal}
	mustCreate(t, db, admin)
	return admin
}

func TestRoleCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	ctx := context.Background()

	menu := leafMenu(0, 0, "用户管理", "user", "system/user/index")
	mustCreate(t, db, menu)

	role, err := svc.CreateRole(ctx, &model.CreateRoleRequest{
		RoleName: "运维",
		RoleKey:  "ops",
		RoleSort: 3,
		MenuIDs:  []int64{menu.MenuID, 999}, // 未知菜单入库前剔除
	}, "admin")
	require.NoError(t, err)
	require.NotZero(t, role.RoleID)
	assert.Equal(t, model.DataScopeAll, role.DataScope)
	assert.Equal(t, 1, role.MenuCheckStrictly)

	got, err := svc.GetRole(ctx, role.RoleID)
	require.NoError(t, err)
	assert.Equal(t, "ops", got.RoleKey)

	var count int64
	require.NoError(t, db.Model(&model.RoleMenu{}).Where("role_id = ?", role.RoleID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRoleCreateConflicts(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	ctx := context.Background()

	_, err := svc.CreateRole(ctx, &model.CreateRoleRequest{RoleName: "运维", RoleKey: "ops"}, "admin")
	require.NoError(t, err)

	_, err = svc.CreateRole(ctx, &model.CreateRoleRequest{RoleName: "运维", RoleKey: "ops2"}, "admin")
	require.ErrorIs(t, err, model.ErrConflict)

	_, err = svc.CreateRole(ctx, &model.CreateRoleRequest{RoleName: "运维2", RoleKey: "ops"}, "admin")
	require.ErrorIs(t, err, model.ErrConflict)
}

func TestRoleUpdateReplacesMenus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	ctx := context.Background()

	m1 := leafMenu(0, 0, "用户管理", "user", "system/user/index")
	m2 := leafMenu(0, 0, "角色管理", "role", "system/role/index")
	mustCreate(t, db, m1)
	mustCreate(t, db, m2)

	role, err := svc.CreateRole(ctx, &model.CreateRoleRequest{
		RoleName: "运维",
		RoleKey:  "ops",
		MenuIDs:  []int64{m1.MenuID},
	}, "admin")
	require.NoError(t, err)

	// 整体替换为 m2
	_, err = svc.UpdateRole(ctx, role.RoleID, &model.UpdateRoleRequest{MenuIDs: &[]int64{m2.MenuID}}, "admin")
	require.NoError(t, err)

	var menuIDs []int64
	require.NoError(t, db.Model(&model.RoleMenu{}).Where("role_id = ?", role.RoleID).Pluck("menu_id", &menuIDs).Error)
	assert.Equal(t, []int64{m2.MenuID}, menuIDs)

	// 空列表清空授权；nil 不触碰
	empty := []int64{}
	_, err = svc.UpdateRole(ctx, role.RoleID, &model.UpdateRoleRequest{MenuIDs: &empty}, "admin")
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&model.RoleMenu{}).Where("role_id = ?", role.RoleID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRoleUpdateBodyIDFallback(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, &model.CreateRoleRequest{RoleName: "运维", RoleKey: "ops"}, "admin")
	require.NoError(t, err)

	updated, err := svc.UpdateRole(ctx, 0, &model.UpdateRoleRequest{RoleID: role.RoleID, RoleName: strPtr("运维组")}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "运维组", updated.RoleName)

	_, err = svc.UpdateRole(ctx, 0, &model.UpdateRoleRequest{RoleName: strPtr("x")}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestRoleAdminProtected(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	admin := seedAdminRole(t, db)
	ctx := context.Background()

	_, err := svc.UpdateRole(ctx, admin.RoleID, &model.UpdateRoleRequest{RoleName: strPtr("改名")}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	err = svc.DeleteRole(ctx, admin.RoleID, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	err = svc.ChangeStatus(ctx, admin.RoleID, model.StatusDisabled, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	err = svc.SetDataScope(ctx, &model.DataScopeRequest{RoleID: admin.RoleID, DataScope: model.DataScopeDept}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestRoleDeleteRefusedWhenAssigned(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, &model.CreateRoleRequest{RoleName: "运维", RoleKey: "ops"}, "admin")
	require.NoError(t, err)

	user := &model.User{Username: "zhangsan", Password: "x", Status: model.StatusNormal}
	mustCreate(t, db, user)
	mustCreate(t, db, &model.UserRole{UserID: user.ID, RoleID: role.RoleID})

	err = svc.DeleteRole(ctx, role.RoleID, "admin")
	require.ErrorIs(t, err, model.ErrForbiddenReference)

	// 取消授权后可删
	require.NoError(t, svc.CancelAuthUsers(ctx, role.RoleID, []int64{user.ID}, "admin"))
	require.NoError(t, svc.DeleteRole(ctx, role.RoleID, "admin"))

	_, err = svc.GetRole(ctx, role.RoleID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestRoleSetDataScope(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, &model.CreateRoleRequest{RoleName: "运维", RoleKey: "ops"}, "admin")
	require.NoError(t, err)

	err = svc.SetDataScope(ctx, &model.DataScopeRequest{RoleID: role.RoleID, DataScope: "9"}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	err = svc.SetDataScope(ctx, &model.DataScopeRequest{RoleID: role.RoleID, DataScope: model.DataScopeDeptBelow}, "admin")
	require.NoError(t, err)

	got, err := svc.GetRole(ctx, role.RoleID)
	require.NoError(t, err)
	assert.Equal(t, model.DataScopeDeptBelow, got.DataScope)
}

func TestRoleAllocatedUnallocatedComplement(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, &model.CreateRoleRequest{RoleName: "运维", RoleKey: "ops"}, "admin")
	require.NoError(t, err)

	u1 := &model.User{Username: "zhangsan", Password: "x", Status: model.StatusNormal}
	u2 := &model.User{Username: "lisi", Password: "x", Status: model.StatusNormal}
	mustCreate(t, db, u1)
	mustCreate(t, db, u2)
	mustCreate(t, db, &model.UserRole{UserID: u1.ID, RoleID: role.RoleID})

	allocated, total, err := svc.AllocatedUsers(ctx, role.RoleID, &model.UserQuery{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "zhangsan", allocated[0].Username)

	unallocated, total, err := svc.UnallocatedUsers(ctx, role.RoleID, &model.UserQuery{})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "lisi", unallocated[0].Username)
}

func TestRoleAuthUserListsFilterByStatus(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, &model.CreateRoleRequest{RoleName: "运维", RoleKey: "ops"}, "admin")
	require.NoError(t, err)

	active := &model.User{Username: "zhangsan", Password: "x", Status: model.StatusNormal}
	disabled := &model.User{Username: "lisi", Password: "x", Status: model.StatusDisabled}
	free := &model.User{Username: "wangwu", Password: "x", Status: model.StatusDisabled}
	mustCreate(t, db, active)
	mustCreate(t, db, disabled)
	mustCreate(t, db, free)
	mustCreate(t, db, &model.UserRole{UserID: active.ID, RoleID: role.RoleID})
	mustCreate(t, db, &model.UserRole{UserID: disabled.ID, RoleID: role.RoleID})

	allocated, total, err := svc.AllocatedUsers(ctx, role.RoleID, &model.UserQuery{Status: model.StatusNormal})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "zhangsan", allocated[0].Username)

	unallocated, total, err := svc.UnallocatedUsers(ctx, role.RoleID, &model.UserQuery{Status: model.StatusDisabled})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	assert.Equal(t, "wangwu", unallocated[0].Username)
}

func TestRoleAuthUserListsOrderedByIDDesc(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, &model.CreateRoleRequest{RoleName: "运维", RoleKey: "ops"}, "admin")
	require.NoError(t, err)

	first := &model.User{Username: "zhangsan", Password: "x", Status: model.StatusNormal}
	second := &model.User{Username: "lisi", Password: "x", Status: model.StatusNormal}
	mustCreate(t, db, first)
	mustCreate(t, db, second)
	mustCreate(t, db, &model.UserRole{UserID: first.ID, RoleID: role.RoleID})
	mustCreate(t, db, &model.UserRole{UserID: second.ID, RoleID: role.RoleID})

	allocated, _, err := svc.AllocatedUsers(ctx, role.RoleID, &model.UserQuery{})
	require.NoError(t, err)
	require.Len(t, allocated, 2)
	assert.Equal(t, "lisi", allocated[0].Username)
	assert.Equal(t, "zhangsan", allocated[1].Username)
}

func TestRoleSelectAuthUsersIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, &model.CreateRoleRequest{RoleName: "运维", RoleKey: "ops"}, "admin")
	require.NoError(t, err)

	user := &model.User{Username: "zhangsan", Password: "x", Status: model.StatusNormal}
	mustCreate(t, db, user)

	require.NoError(t, svc.SelectAuthUsers(ctx, role.RoleID, []int64{user.ID}, "admin"))
	// 重复授权不产生重复关联
	require.NoError(t, svc.SelectAuthUsers(ctx, role.RoleID, []int64{user.ID}, "admin"))

	var count int64
	require.NoError(t, db.Model(&model.UserRole{}).Where("role_id = ? AND user_id = ?", role.RoleID, user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRoleCancelAuthUserIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestRoleService(db)
	ctx := context.Background()

	role, err := svc.CreateRole(ctx, &model.CreateRoleRequest{RoleName: "运维", RoleKey: "ops"}, "admin")
	require.NoError(t, err)

	// 授权关系不存在时同样成功
	err = svc.CancelAuthUser(ctx, &model.AuthUserCancelRequest{RoleID: role.RoleID, UserID: 777}, "admin")
	require.NoError(t, err)
}

func TestRoleOpsNotFound(t *testing.T) {
	svc := newTestRoleService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.GetRole(ctx, 404)
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "404")

	_, _, err = svc.AllocatedUsers(ctx, 404, &model.UserQuery{})
	require.ErrorIs(t, err, model.ErrNotFound)

	err = svc.SelectAuthUsers(ctx, 404, nil, "admin")
	require.ErrorIs(t, err, model.ErrNotFound)
}
