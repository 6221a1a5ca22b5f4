package system

import (
	"context"
	"strconv"
	"testing"

	"adminmaster/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedDeptTree(t *testing.T, svc *DeptService) (root, child, grandchild *model.Dept) {
	t.Helper()
	ctx := context.Background()

	root, err := svc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: 0, DeptName: "总公司"}, "admin")
	require.NoError(t, err)

	child, err = svc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: root.DeptID, DeptName: "研发部门"}, "admin")
	require.NoError(t, err)

	grandchild, err = svc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: child.DeptID, DeptName: "前端组"}, "admin")
	require.NoError(t, err)
	return root, child, grandchild
}

func TestDeptCreateResolvesAncestors(t *testing.T) {
	svc := newTestDeptService(newTestDB(t))
	root, child, grandchild := seedDeptTree(t, svc)

	assert.Equal(t, "0", root.Ancestors)
	assert.Equal(t, "0,"+itoa(root.DeptID), child.Ancestors)
	assert.Equal(t, child.Ancestors+","+itoa(child.DeptID), grandchild.Ancestors)
}

func TestDeptCreateRejectsUnknownParent(t *testing.T) {
	svc := newTestDeptService(newTestDB(t))

	_, err := svc.CreateDept(context.Background(), &model.CreateDeptRequest{ParentID: 999, DeptName: "孤儿"}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestDeptCreateRejectsDisabledParent(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDeptService(db)
	ctx := context.Background()

	root, err := svc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: 0, DeptName: "总公司", Status: model.StatusDisabled}, "admin")
	require.NoError(t, err)

	_, err = svc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: root.DeptID, DeptName: "子部门"}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestDeptNameConflictUnderSameParent(t *testing.T) {
	svc := newTestDeptService(newTestDB(t))
	ctx := context.Background()

	root, err := svc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: 0, DeptName: "总公司"}, "admin")
	require.NoError(t, err)

	_, err = svc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: root.DeptID, DeptName: "研发部门"}, "admin")
	require.NoError(t, err)

	// 同父同名冲突
	_, err = svc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: root.DeptID, DeptName: "研发部门"}, "admin")
	require.ErrorIs(t, err, model.ErrConflict)

	// 不同父允许同名
	_, err = svc.CreateDept(ctx, &model.CreateDeptRequest{ParentID: 0, DeptName: "研发部门"}, "admin")
	require.NoError(t, err)
}

func TestDeptUpdateMoveRecomputesAncestors(t *testing.T) {
	svc := newTestDeptService(newTestDB(t))
	root, _, grandchild := seedDeptTree(t, svc)

	moved, err := svc.UpdateDept(context.Background(), grandchild.DeptID, &model.UpdateDeptRequest{
		ParentID: int64Ptr(root.DeptID),
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, root.DeptID, moved.ParentID)
	assert.Equal(t, "0,"+itoa(root.DeptID), moved.Ancestors)
}

func TestDeptUpdateRejectsSelfParent(t *testing.T) {
	svc := newTestDeptService(newTestDB(t))
	root, _, _ := seedDeptTree(t, svc)

	_, err := svc.UpdateDept(context.Background(), root.DeptID, &model.UpdateDeptRequest{
		ParentID: int64Ptr(root.DeptID),
	}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestDeptDeleteGuards(t *testing.T) {
	db := newTestDB(t)
	svc := newTestDeptService(db)
	ctx := context.Background()
	root, child, grandchild := seedDeptTree(t, svc)

	// 有下级部门拒绝删除
	err := svc.DeleteDept(ctx, child.DeptID, "admin")
	require.ErrorIs(t, err, model.ErrForbiddenReference)

	// 有在用用户拒绝删除
	mustCreate(t, db, &model.User{Username: "zhangsan", Status: model.StatusNormal, DeptID: &grandchild.DeptID})
	err = svc.DeleteDept(ctx, grandchild.DeptID, "admin")
	require.ErrorIs(t, err, model.ErrForbiddenReference)

	// 清理用户后可正常删除，自下而上
	require.NoError(t, db.Where("username = ?", "zhangsan").Delete(&model.User{}).Error)
	require.NoError(t, svc.DeleteDept(ctx, grandchild.DeptID, "admin"))
	require.NoError(t, svc.DeleteDept(ctx, child.DeptID, "admin"))
	require.NoError(t, svc.DeleteDept(ctx, root.DeptID, "admin"))

	// 软删除后不再可见
	_, err = svc.GetDept(ctx, root.DeptID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestDeptDeleteNotFound(t *testing.T) {
	svc := newTestDeptService(newTestDB(t))

	err := svc.DeleteDept(context.Background(), 12345, "admin")
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "12345")
}

func TestDeptDescendantIDs(t *testing.T) {
	svc := newTestDeptService(newTestDB(t))
	root, child, grandchild := seedDeptTree(t, svc)

	ids, err := svc.DescendantIDs(context.Background(), root.DeptID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{root.DeptID, child.DeptID, grandchild.DeptID}, ids)

	ids, err = svc.DescendantIDs(context.Background(), grandchild.DeptID)
	require.NoError(t, err)
	assert.Equal(t, []int64{grandchild.DeptID}, ids)
}

func TestDeptListExclude(t *testing.T) {
	svc := newTestDeptService(newTestDB(t))
	root, child, grandchild := seedDeptTree(t, svc)

	depts, err := svc.ListDeptsExclude(context.Background(), child.DeptID)
	require.NoError(t, err)

	ids := make([]int64, 0, len(depts))
	for _, d := range depts {
		ids = append(ids, d.DeptID)
	}
	assert.Contains(t, ids, root.DeptID)
	assert.NotContains(t, ids, child.DeptID)
	assert.NotContains(t, ids, grandchild.DeptID)
}

func TestDeptTreeSelect(t *testing.T) {
	svc := newTestDeptService(newTestDB(t))
	root, child, grandchild := seedDeptTree(t, svc)

	tree, err := svc.TreeSelect(context.Background(), &model.DeptQuery{})
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.Equal(t, root.DeptID, tree[0].ID)
	require.Len(t, tree[0].Children, 1)
	assert.Equal(t, child.DeptID, tree[0].Children[0].ID)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, grandchild.DeptID, tree[0].Children[0].Children[0].ID)
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
