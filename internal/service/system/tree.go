/*
 * 树构建:扁平父链接记录 -> 嵌套森林
 * @author: sun977
 * @date: 2025.09.12
 * @description: 部门树/菜单树/路由投影共用的纯函数构建逻辑
 * @note: 输入必须已按 (parent_id, order_num) 升序排列，兄弟节点顺序依赖输入顺序的稳定性；
 *        无法从根到达的孤儿节点直接丢弃；深度以节点总数为上限，超限判定为环路
 */
package system

import (
	"adminmaster/internal/model"
)

// buildForest 将扁平节点序列构建为嵌套森林
// idOf/parentOf 提取节点标识，wrap 负责把节点与其已构建的子树包装为输出节点
func buildForest[T any, N any](
	nodes []T,
	rootParentID int64,
	idOf func(T) int64,
	parentOf func(T) int64,
	wrap func(T, []N) N,
) ([]N, error) {
	// 一次线性扫描建立 parent_id -> 子节点 索引，保持输入顺序
	index := make(map[int64][]T, len(nodes))
	for _, n := range nodes {
		pid := parentOf(n)
		index[pid] = append(index[pid], n)
	}

	maxDepth := len(nodes)

	var build func(parentID int64, depth int) ([]N, error)
	build = func(parentID int64, depth int) ([]N, error) {
		if depth > maxDepth {
			return nil, model.ErrCyclicHierarchy
		}

		children := index[parentID]
		if len(children) == 0 {
			return nil, nil
		}

		out := make([]N, 0, len(children))
		for _, child := range children {
			sub, err := build(idOf(child), depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, wrap(child, sub))
		}
		return out, nil
	}

	return build(rootParentID, 0)
}

// buildDeptTree 构建完整部门树(携带部门全量字段)
func buildDeptTree(depts []*model.Dept) ([]*model.DeptTreeNode, error) {
	return buildForest(depts, 0,
		func(d *model.Dept) int64 { return d.DeptID },
		func(d *model.Dept) int64 { return d.ParentID },
		func(d *model.Dept, children []*model.DeptTreeNode) *model.DeptTreeNode {
			return &model.DeptTreeNode{Dept: *d, Children: children}
		})
}

// buildDeptTreeSelect 构建部门下拉树(id/label 精简节点，叶子省略 children)
func buildDeptTreeSelect(depts []*model.Dept) ([]*model.TreeSelectNode, error) {
	return buildForest(depts, 0,
		func(d *model.Dept) int64 { return d.DeptID },
		func(d *model.Dept) int64 { return d.ParentID },
		func(d *model.Dept, children []*model.TreeSelectNode) *model.TreeSelectNode {
			return &model.TreeSelectNode{ID: d.DeptID, Label: d.DeptName, Children: children}
		})
}

// buildMenuTreeSelect 构建菜单下拉树(叶子省略 children)
func buildMenuTreeSelect(menus []*model.Menu) ([]*model.TreeSelectNode, error) {
	return buildForest(menus, 0,
		func(m *model.Menu) int64 { return m.MenuID },
		func(m *model.Menu) int64 { return m.ParentID },
		func(m *model.Menu, children []*model.TreeSelectNode) *model.TreeSelectNode {
			return &model.TreeSelectNode{ID: m.MenuID, Label: m.MenuName, Children: children}
		})
}
