package system

import (
	"context"
	"testing"

	"adminmaster/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuCreateDefaults(t *testing.T) {
	svc := newTestMenuService(newTestDB(t))
	ctx := context.Background()

	menu, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{
		MenuName: "系统管理",
		Path:     "system",
		MenuType: model.MenuTypeDir,
	}, "admin")
	require.NoError(t, err)
	require.NotZero(t, menu.MenuID)
	assert.Equal(t, model.FrameInternal, menu.IsFrame)
	assert.Equal(t, model.CacheEnabled, menu.IsCache)
	assert.Equal(t, model.VisibleShown, menu.Visible)
	assert.Equal(t, model.StatusNormal, menu.Status)
}

func TestMenuCreateValidations(t *testing.T) {
	svc := newTestMenuService(newTestDB(t))
	ctx := context.Background()

	// 类型取值非法
	_, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "x", MenuType: "Z"}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))

	// 父菜单不存在
	_, err = svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "x", MenuType: model.MenuTypeMenu, ParentID: 999}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestMenuSiblingNameConflict(t *testing.T) {
	svc := newTestMenuService(newTestDB(t))
	ctx := context.Background()

	dir, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "系统管理", MenuType: model.MenuTypeDir}, "admin")
	require.NoError(t, err)

	_, err = svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "用户管理", MenuType: model.MenuTypeMenu, ParentID: dir.MenuID}, "admin")
	require.NoError(t, err)

	// 同父重名冲突
	_, err = svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "用户管理", MenuType: model.MenuTypeMenu, ParentID: dir.MenuID}, "admin")
	require.ErrorIs(t, err, model.ErrConflict)

	// 不同父节点下可重名
	_, err = svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "用户管理", MenuType: model.MenuTypeMenu, ParentID: 0}, "admin")
	require.NoError(t, err)
}

func TestMenuUpdateSelfParentRejected(t *testing.T) {
	svc := newTestMenuService(newTestDB(t))
	ctx := context.Background()

	menu, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "系统管理", MenuType: model.MenuTypeDir}, "admin")
	require.NoError(t, err)

	_, err = svc.UpdateMenu(ctx, menu.MenuID, &model.UpdateMenuRequest{ParentID: &menu.MenuID}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestMenuUpdateBodyIDFallback(t *testing.T) {
	svc := newTestMenuService(newTestDB(t))
	ctx := context.Background()

	menu, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "系统管理", MenuType: model.MenuTypeDir}, "admin")
	require.NoError(t, err)

	updated, err := svc.UpdateMenu(ctx, 0, &model.UpdateMenuRequest{MenuID: menu.MenuID, Icon: strPtr("system")}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "system", updated.Icon)

	_, err = svc.UpdateMenu(ctx, 0, &model.UpdateMenuRequest{Icon: strPtr("x")}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestMenuDeleteGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMenuService(db)
	ctx := context.Background()

	dir, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "系统管理", MenuType: model.MenuTypeDir}, "admin")
	require.NoError(t, err)
	leaf, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "用户管理", MenuType: model.MenuTypeMenu, ParentID: dir.MenuID}, "admin")
	require.NoError(t, err)

	// 有子菜单拒绝删除
	err = svc.DeleteMenu(ctx, dir.MenuID, "admin")
	require.ErrorIs(t, err, model.ErrForbiddenReference)

	// 被角色引用拒绝删除
	role := &model.Role{RoleName: "运维", RoleKey: "ops", Status: model.StatusNormal}
	mustCreate(t, db, role)
	mustCreate(t, db, &model.RoleMenu{RoleID: role.RoleID, MenuID: leaf.MenuID})
	err = svc.DeleteMenu(ctx, leaf.MenuID, "admin")
	require.ErrorIs(t, err, model.ErrForbiddenReference)

	// 解除引用后自底向上删除
	require.NoError(t, db.Where("role_id = ? AND menu_id = ?", role.RoleID, leaf.MenuID).Delete(&model.RoleMenu{}).Error)
	require.NoError(t, svc.DeleteMenu(ctx, leaf.MenuID, "admin"))
	require.NoError(t, svc.DeleteMenu(ctx, dir.MenuID, "admin"))

	_, err = svc.GetMenu(ctx, leaf.MenuID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestMenuDeleteNotFound(t *testing.T) {
	svc := newTestMenuService(newTestDB(t))

	err := svc.DeleteMenu(context.Background(), 12345, "admin")
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "12345")
}

func TestMenuTreeSelectIncludesButtons(t *testing.T) {
	svc := newTestMenuService(newTestDB(t))
	ctx := context.Background()

	dir, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "系统管理", MenuType: model.MenuTypeDir}, "admin")
	require.NoError(t, err)
	leaf, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "用户管理", MenuType: model.MenuTypeMenu, ParentID: dir.MenuID}, "admin")
	require.NoError(t, err)
	_, err = svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "用户新增", MenuType: model.MenuTypeButton, ParentID: leaf.MenuID, Perms: "system:user:add"}, "admin")
	require.NoError(t, err)

	tree, err := svc.TreeSelect(ctx, &model.MenuQuery{})
	require.NoError(t, err)
	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	// 按钮出现在下拉树中
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "用户新增", tree[0].Children[0].Children[0].Label)
}

func TestMenuRoleMenuTreeSelect(t *testing.T) {
	db := newTestDB(t)
	svc := newTestMenuService(db)
	ctx := context.Background()

	dir, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "系统管理", MenuType: model.MenuTypeDir}, "admin")
	require.NoError(t, err)
	leaf, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "用户管理", MenuType: model.MenuTypeMenu, ParentID: dir.MenuID}, "admin")
	require.NoError(t, err)

	role := &model.Role{RoleName: "运维", RoleKey: "ops", Status: model.StatusNormal}
	mustCreate(t, db, role)
	mustCreate(t, db, &model.RoleMenu{RoleID: role.RoleID, MenuID: leaf.MenuID})

	tree, checked, err := svc.RoleMenuTreeSelect(ctx, role.RoleID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, []int64{leaf.MenuID}, checked)

	_, _, err = svc.RoleMenuTreeSelect(ctx, 404)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestMenuGetRoutersWithoutCache(t *testing.T) {
	svc := newTestMenuService(newTestDB(t))
	ctx := context.Background()

	dir, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "系统管理", Path: "system", MenuType: model.MenuTypeDir}, "admin")
	require.NoError(t, err)
	leaf, err := svc.CreateMenu(ctx, &model.CreateMenuRequest{
		MenuName:  "用户管理",
		Path:      "user",
		Component: "system/user/index",
		MenuType:  model.MenuTypeMenu,
		ParentID:  dir.MenuID,
	}, "admin")
	require.NoError(t, err)
	// 按钮与停用菜单不参与路由
	_, err = svc.CreateMenu(ctx, &model.CreateMenuRequest{MenuName: "用户新增", MenuType: model.MenuTypeButton, ParentID: leaf.MenuID}, "admin")
	require.NoError(t, err)
	_, err = svc.CreateMenu(ctx, &model.CreateMenuRequest{
		MenuName: "停用菜单",
		Path:     "disabled",
		MenuType: model.MenuTypeMenu,
		Status:   model.StatusDisabled,
	}, "admin")
	require.NoError(t, err)

	routers, err := svc.GetRouters(ctx)
	require.NoError(t, err)
	require.Len(t, routers, 1)
	assert.Equal(t, model.ComponentLayout, routers[0].Component)
	require.NotNil(t, routers[0].Children)
	require.Len(t, *routers[0].Children, 1)
	assert.Equal(t, "system/user/index", (*routers[0].Children)[0].Component)
}

func TestMenuRefreshRouterCacheNoop(t *testing.T) {
	svc := newTestMenuService(newTestDB(t))
	require.NoError(t, svc.RefreshRouterCache(context.Background(), "admin"))
}
