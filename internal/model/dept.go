/**
 * 模型:部门模型
 * @author: sun977
 * @date: 2025.09.18
 * @description: 部门数据模型，parent_id 自引用构成部门树
 * @func: Dept 结构体及相关方法
 */
package model

// Dept 部门模型
// parent_id = 0 表示根部门；树形结构由 (parent_id, order_num) 排序后在服务层构建
type Dept struct {
	DeptID    int64  `json:"deptId" gorm:"column:dept_id;primaryKey;autoIncrement;comment:部门ID"`
	ParentID  int64  `json:"parentId" gorm:"column:parent_id;default:0;index;comment:父部门ID"`
	Ancestors string `json:"ancestors" gorm:"size:50;comment:祖级列表"`
	DeptName  string `json:"deptName" gorm:"size:30;not null;comment:部门名称"`
	OrderNum  int    `json:"orderNum" gorm:"default:0;comment:显示顺序"`
	Leader    string `json:"leader" gorm:"size:20;comment:负责人"`
	Phone     string `json:"phone" gorm:"size:11;comment:联系电话"`
	Email     string `json:"email" gorm:"size:50;comment:邮箱"`
	Status    string `json:"status" gorm:"size:1;default:0;index;comment:部门状态:0-正常,1-停用"`
	BaseModel
}

// TableName 指定部门表名
func (Dept) TableName() string {
	return "sys_dept"
}

// IsActive 检查部门是否处于正常状态
func (d *Dept) IsActive() bool {
	return d.Status == StatusNormal
}

// DeptTreeNode 部门树节点(带子节点的部门完整数据)
// children 为空时整个字段省略，与 treeselect 的行为保持一致
type DeptTreeNode struct {
	Dept
	Children []*DeptTreeNode `json:"children,omitempty"`
}
