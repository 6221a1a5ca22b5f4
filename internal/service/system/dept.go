/*
 * @author: sun977
 * @date: 2025.09.12
 * @description: 部门管理服务
 * @func:
 * 1.部门CRUD(软删除，维护祖级列表)
 * 2.部门树/部门下拉树
 */
package system

import (
	"context"
	"fmt"
	"strconv"

	"adminmaster/internal/model"
	"adminmaster/internal/pkg/logger"
	"adminmaster/internal/repository/mysql"
)

// DeptService 部门管理服务
type DeptService struct {
	deptRepo *mysql.DeptRepository
}

// NewDeptService 创建部门服务实例
func NewDeptService(deptRepo *mysql.DeptRepository) *DeptService {
	return &DeptService{
		deptRepo: deptRepo,
	}
}

// ListDepts 获取部门列表(扁平，不分页)
func (s *DeptService) ListDepts(ctx context.Context, query *model.DeptQuery) ([]*model.Dept, error) {
	depts, err := s.deptRepo.ListDepts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list depts: %w", err)
	}
	return depts, nil
}

// GetDept 根据ID获取部门
func (s *DeptService) GetDept(ctx context.Context, deptID int64) (*model.Dept, error) {
	dept, err := s.deptRepo.GetDeptByID(ctx, deptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dept: %w", err)
	}
	if dept == nil {
		return nil, fmt.Errorf("部门[%d]不存在: %w", deptID, model.ErrNotFound)
	}
	return dept, nil
}

// CreateDept 创建部门
func (s *DeptService) CreateDept(ctx context.Context, req *model.CreateDeptRequest, operator string) (*model.Dept, error) {
	ancestors, err := s.resolveAncestors(ctx, req.ParentID)
	if err != nil {
		return nil, err
	}

	// 同一父节点下部门名称唯一
	count, err := s.deptRepo.CountByNameUnderParent(ctx, req.DeptName, req.ParentID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to check dept name: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("部门名称[%s]已存在: %w", req.DeptName, model.ErrConflict)
	}

	dept := &model.Dept{
		ParentID:  req.ParentID,
		Ancestors: ancestors,
		DeptName:  req.DeptName,
		OrderNum:  req.OrderNum,
		Leader:    req.Leader,
		Phone:     req.Phone,
		Email:     req.Email,
		Status:    defaultString(req.Status, model.StatusNormal),
	}
	dept.CreateBy = operator
	dept.UpdateBy = operator

	if err := s.deptRepo.CreateDept(ctx, dept); err != nil {
		return nil, fmt.Errorf("failed to create dept: %w", err)
	}

	logger.LogBusinessOperation("dept_create", 0, operator, "", "", "success", "部门创建成功", map[string]interface{}{
		"dept_id":   dept.DeptID,
		"dept_name": dept.DeptName,
	})
	return dept, nil
}

// UpdateDept 更新部门(body-id 兼容路径传入 req.DeptID)
func (s *DeptService) UpdateDept(ctx context.Context, deptID int64, req *model.UpdateDeptRequest, operator string) (*model.Dept, error) {
	if deptID == 0 {
		deptID = req.DeptID
	}
	if deptID == 0 {
		return nil, model.NewValidationError("deptId", "部门ID不能为空")
	}

	dept, err := s.deptRepo.GetDeptByID(ctx, deptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get dept: %w", err)
	}
	if dept == nil {
		return nil, fmt.Errorf("部门[%d]不存在: %w", deptID, model.ErrNotFound)
	}

	if req.ParentID != nil && *req.ParentID != dept.ParentID {
		if *req.ParentID == dept.DeptID {
			return nil, model.NewValidationError("parentId", "上级部门不能选择自身")
		}
		ancestors, err := s.resolveAncestors(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		dept.ParentID = *req.ParentID
		dept.Ancestors = ancestors
	}
	if req.DeptName != nil {
		dept.DeptName = *req.DeptName
	}

	count, err := s.deptRepo.CountByNameUnderParent(ctx, dept.DeptName, dept.ParentID, dept.DeptID)
	if err != nil {
		return nil, fmt.Errorf("failed to check dept name: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("部门名称[%s]已存在: %w", dept.DeptName, model.ErrConflict)
	}

	if req.OrderNum != nil {
		dept.OrderNum = *req.OrderNum
	}
	if req.Leader != nil {
		dept.Leader = *req.Leader
	}
	if req.Phone != nil {
		dept.Phone = *req.Phone
	}
	if req.Email != nil {
		dept.Email = *req.Email
	}
	if req.Status != nil {
		dept.Status = *req.Status
	}
	dept.UpdateBy = operator

	if err := s.deptRepo.UpdateDept(ctx, dept); err != nil {
		return nil, fmt.Errorf("failed to update dept: %w", err)
	}

	logger.LogBusinessOperation("dept_update", 0, operator, "", "", "success", "部门更新成功", map[string]interface{}{
		"dept_id": dept.DeptID,
	})
	return dept, nil
}

// DeleteDept 删除部门(软删除)
// 存在下级部门或在用用户时拒绝删除
func (s *DeptService) DeleteDept(ctx context.Context, deptID int64, operator string) error {
	dept, err := s.deptRepo.GetDeptByID(ctx, deptID)
	if err != nil {
		return fmt.Errorf("failed to get dept: %w", err)
	}
	if dept == nil {
		return fmt.Errorf("部门[%d]不存在: %w", deptID, model.ErrNotFound)
	}

	hasChildren, err := s.deptRepo.HasChildren(ctx, deptID)
	if err != nil {
		return fmt.Errorf("failed to check children: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("存在下级部门，不允许删除: %w", model.ErrForbiddenReference)
	}

	hasUsers, err := s.deptRepo.HasUsers(ctx, deptID)
	if err != nil {
		return fmt.Errorf("failed to check dept users: %w", err)
	}
	if hasUsers {
		return fmt.Errorf("部门存在用户，不允许删除: %w", model.ErrForbiddenReference)
	}

	if err := s.deptRepo.SoftDeleteDept(ctx, deptID, operator); err != nil {
		return fmt.Errorf("failed to delete dept: %w", err)
	}

	logger.LogBusinessOperation("dept_delete", 0, operator, "", "", "success", "部门删除成功", map[string]interface{}{
		"dept_id": deptID,
	})
	return nil
}

// DeptTree 获取完整部门树(携带部门全量字段)
func (s *DeptService) DeptTree(ctx context.Context, query *model.DeptQuery) ([]*model.DeptTreeNode, error) {
	depts, err := s.deptRepo.ListDepts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list depts: %w", err)
	}
	tree, err := buildDeptTree(depts)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		tree = []*model.DeptTreeNode{}
	}
	return tree, nil
}

// TreeSelect 获取部门下拉树
func (s *DeptService) TreeSelect(ctx context.Context, query *model.DeptQuery) ([]*model.TreeSelectNode, error) {
	depts, err := s.deptRepo.ListDepts(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list depts: %w", err)
	}
	tree, err := buildDeptTreeSelect(depts)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		tree = []*model.TreeSelectNode{}
	}
	return tree, nil
}

// ListDeptsExclude 获取排除指定部门及其全部后代的部门列表
// 编辑部门时选择父部门使用，防止把部门挂到自己的子树下
func (s *DeptService) ListDeptsExclude(ctx context.Context, deptID int64) ([]*model.Dept, error) {
	depts, err := s.deptRepo.ListDepts(ctx, &model.DeptQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to list depts: %w", err)
	}

	excluded, err := s.DescendantIDs(ctx, deptID)
	if err != nil {
		return nil, err
	}
	excludedSet := make(map[int64]bool, len(excluded))
	for _, id := range excluded {
		excludedSet[id] = true
	}

	result := make([]*model.Dept, 0, len(depts))
	for _, d := range depts {
		if !excludedSet[d.DeptID] {
			result = append(result, d)
		}
	}
	return result, nil
}

// DescendantIDs 返回指定部门及其全部后代部门的ID集合
// 用户列表按部门过滤时使用，后代展开在服务层完成，避免依赖数据库方言函数
func (s *DeptService) DescendantIDs(ctx context.Context, deptID int64) ([]int64, error) {
	depts, err := s.deptRepo.ListAllDepts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list depts: %w", err)
	}

	ids := []int64{deptID}
	seen := map[int64]bool{deptID: true}
	// 按层展开，每轮收集 parent_id 在已知集合中的部门
	for changed := true; changed; {
		changed = false
		for _, d := range depts {
			if seen[d.DeptID] || !seen[d.ParentID] {
				continue
			}
			seen[d.DeptID] = true
			ids = append(ids, d.DeptID)
			changed = true
		}
	}
	return ids, nil
}

// resolveAncestors 计算新挂载点的祖级列表(父部门祖级列表 + 父ID)
func (s *DeptService) resolveAncestors(ctx context.Context, parentID int64) (string, error) {
	if parentID == 0 {
		return "0", nil
	}
	parent, err := s.deptRepo.GetDeptByID(ctx, parentID)
	if err != nil {
		return "", fmt.Errorf("failed to get parent dept: %w", err)
	}
	if parent == nil {
		return "", model.NewValidationError("parentId", "上级部门不存在")
	}
	if !parent.IsActive() {
		return "", model.NewValidationError("parentId", "上级部门已停用")
	}
	return parent.Ancestors + "," + strconv.FormatInt(parent.DeptID, 10), nil
}
