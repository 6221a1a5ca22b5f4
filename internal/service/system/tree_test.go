package system

import (
	"testing"

	"adminmaster/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDept(id, parentID int64, name string) *model.Dept {
	return &model.Dept{DeptID: id, ParentID: parentID, DeptName: name, Status: model.StatusNormal}
}

func TestBuildDeptTreeSelectNesting(t *testing.T) {
	depts := []*model.Dept{
		testDept(100, 0, "总公司"),
		testDept(101, 100, "研发部门"),
		testDept(102, 100, "运维部门"),
		testDept(103, 101, "前端组"),
	}

	tree, err := buildDeptTreeSelect(depts)
	require.NoError(t, err)
	require.Len(t, tree, 1)

	root := tree[0]
	assert.Equal(t, int64(100), root.ID)
	assert.Equal(t, "总公司", root.Label)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "研发部门", root.Children[0].Label)
	assert.Equal(t, "运维部门", root.Children[1].Label)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "前端组", root.Children[0].Children[0].Label)

	// 叶子节点不携带 children
	assert.Nil(t, root.Children[1].Children)
}

func TestBuildDeptTreeSelectOrphanDropped(t *testing.T) {
	depts := []*model.Dept{
		testDept(100, 0, "总公司"),
		testDept(200, 999, "孤儿部门"),
	}

	tree, err := buildDeptTreeSelect(depts)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, int64(100), tree[0].ID)
}

func TestBuildDeptTreeCarriesFullFields(t *testing.T) {
	parent := testDept(100, 0, "总公司")
	parent.Leader = "张三"
	depts := []*model.Dept{parent, testDept(101, 100, "研发部门")}

	tree, err := buildDeptTree(depts)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "张三", tree[0].Leader)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, "研发部门", tree[0].Children[0].DeptName)
}

func TestBuildMenuTreeSelect(t *testing.T) {
	menus := []*model.Menu{
		dirMenu(1, 0, "系统管理", "system"),
		leafMenu(100, 1, "用户管理", "user", "system/user/index"),
		{MenuID: 1000, ParentID: 100, MenuName: "用户查询", MenuType: model.MenuTypeButton},
	}

	tree, err := buildMenuTreeSelect(menus)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, "系统管理", tree[0].Label)
	require.Len(t, tree[0].Children, 1)

	// 下拉树包含按钮节点(菜单授权勾选使用)
	user := tree[0].Children[0]
	require.Len(t, user.Children, 1)
	assert.Equal(t, "用户查询", user.Children[0].Label)
}

func TestBuildDeptTreeSelectCyclicHierarchy(t *testing.T) {
	// 脏数据:同一ID既是根下子节点又是自身子节点，子树展开无法终止
	depts := []*model.Dept{
		testDept(100, 0, "总公司"),
		testDept(100, 100, "总公司"),
	}

	_, err := buildDeptTreeSelect(depts)
	require.ErrorIs(t, err, model.ErrCyclicHierarchy)
}

func TestBuildForestMultipleRoots(t *testing.T) {
	depts := []*model.Dept{
		testDept(100, 0, "甲公司"),
		testDept(200, 0, "乙公司"),
	}

	tree, err := buildDeptTreeSelect(depts)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "甲公司", tree[0].Label)
	assert.Equal(t, "乙公司", tree[1].Label)
}
