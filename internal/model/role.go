/**
 * 模型:角色模型
 * @author: sun977
 * @date: 2025.09.18
 * @description: 角色数据模型，包含数据范围、菜单关联与用户关联
 * @func: Role / RoleMenu 结构体及相关方法
 */
package model

// 数据范围取值(仅存储，本系统核心不做数据范围过滤)
const (
	DataScopeAll        = "1" // 全部数据权限
	DataScopeCustom     = "2" // 自定数据权限
	DataScopeDept       = "3" // 本部门数据权限
	DataScopeDeptBelow  = "4" // 本部门及以下数据权限
	DataScopeSelfOnly   = "5" // 仅本人数据权限
	AdminRoleKey        = "admin"
)

// Role 角色模型
type Role struct {
	RoleID            int64  `json:"roleId" gorm:"column:role_id;primaryKey;autoIncrement;comment:角色ID"`
	RoleName          string `json:"roleName" gorm:"size:30;not null;comment:角色名称"`
	RoleKey           string `json:"roleKey" gorm:"size:100;not null;comment:权限字符"` // 唯一性在非删除行内保证，由服务层校验
	RoleSort          int    `json:"roleSort" gorm:"default:0;comment:角色排序"`
	DataScope         string `json:"dataScope" gorm:"size:1;default:1;comment:数据范围:1-5"`
	MenuCheckStrictly int    `json:"menuCheckStrictly" gorm:"default:1;comment:菜单树选择项是否关联显示"`
	DeptCheckStrictly int    `json:"deptCheckStrictly" gorm:"default:1;comment:部门树选择项是否关联显示"`
	Status            string `json:"status" gorm:"size:1;default:0;index;comment:角色状态:0-正常,1-停用"`
	Remark            string `json:"remark" gorm:"type:text;comment:备注"`
	BaseModel

	// 关联关系
	Menus []*Menu `json:"-" gorm:"many2many:sys_role_menu;joinForeignKey:role_id;joinReferences:menu_id"`
	Users []*User `json:"-" gorm:"many2many:sys_user_role;joinForeignKey:role_id;joinReferences:user_id"`
}

// TableName 指定角色表名
func (Role) TableName() string {
	return "sys_role"
}

// IsActive 检查角色是否处于正常状态
func (r *Role) IsActive() bool {
	return r.Status == StatusNormal
}

// IsAdmin 检查是否为管理员角色
func (r *Role) IsAdmin() bool {
	return r.RoleKey == AdminRoleKey
}

// RoleMenu 角色菜单关联表
type RoleMenu struct {
	RoleID int64 `json:"roleId" gorm:"column:role_id;primaryKey"` // 联合主键
	MenuID int64 `json:"menuId" gorm:"column:menu_id;primaryKey"` // 联合主键
}

// TableName 指定角色菜单关联表名
func (RoleMenu) TableName() string {
	return "sys_role_menu"
}
