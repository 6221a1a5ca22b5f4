/**
 * 模型:菜单模型
 * @author: sun977
 * @date: 2025.09.18
 * @description: 菜单数据模型，parent_id 自引用构成菜单树，角色通过 sys_role_menu 多对多关联
 * @func: Menu 结构体及相关方法
 */
package model

import "strings"

// 菜单类型
const (
	MenuTypeDir    = "M" // 目录
	MenuTypeMenu   = "C" // 菜单(叶子页面)
	MenuTypeButton = "F" // 按钮(不参与路由生成)
)

// 是否外链(is_frame)
const (
	FrameExternal = "0" // 外链
	FrameInternal = "1" // 非外链
)

// 是否缓存(is_cache)
const (
	CacheEnabled  = "0" // 缓存
	CacheDisabled = "1" // 不缓存
)

// 显示状态(visible)
const (
	VisibleShown  = "0" // 显示
	VisibleHidden = "1" // 隐藏
)

// Menu 菜单模型
type Menu struct {
	MenuID   int64  `json:"menuId" gorm:"column:menu_id;primaryKey;autoIncrement;comment:菜单ID"`
	ParentID int64  `json:"parentId" gorm:"column:parent_id;default:0;index;comment:父菜单ID"`
	MenuName string `json:"menuName" gorm:"size:50;not null;comment:菜单名称"`
	OrderNum int    `json:"orderNum" gorm:"default:0;comment:显示顺序"`
	Path     string `json:"path" gorm:"size:200;comment:路由地址"`
	Component string `json:"component" gorm:"size:200;comment:组件路径"`
	Query    string `json:"query" gorm:"size:255;comment:路由参数"`
	IsFrame  string `json:"isFrame" gorm:"size:1;default:1;comment:是否外链:0-是,1-否"`
	IsCache  string `json:"isCache" gorm:"size:1;default:0;comment:是否缓存:0-缓存,1-不缓存"`
	MenuType string `json:"menuType" gorm:"size:1;default:M;comment:菜单类型:M-目录,C-菜单,F-按钮"`
	Visible  string `json:"visible" gorm:"size:1;default:0;comment:显示状态:0-显示,1-隐藏"`
	Status   string `json:"status" gorm:"size:1;default:0;index;comment:菜单状态:0-正常,1-停用"`
	Perms    string `json:"perms" gorm:"size:100;comment:权限标识"`
	Icon     string `json:"icon" gorm:"size:100;comment:菜单图标"`
	Remark   string `json:"remark" gorm:"type:text;comment:备注"`
	BaseModel

	// 关联关系
	Roles []*Role `json:"-" gorm:"many2many:sys_role_menu;joinForeignKey:menu_id;joinReferences:role_id"`
}

// TableName 指定菜单表名
func (Menu) TableName() string {
	return "sys_menu"
}

// IsActive 检查菜单是否处于正常状态
func (m *Menu) IsActive() bool {
	return m.Status == StatusNormal
}

// IsHidden 检查菜单是否隐藏
func (m *Menu) IsHidden() bool {
	return m.Visible == VisibleHidden
}

// IsExternalLink 检查菜单是否为 http(s) 外链
func (m *Menu) IsExternalLink() bool {
	return m.IsFrame == FrameExternal &&
		(strings.HasPrefix(m.Path, "http://") || strings.HasPrefix(m.Path, "https://"))
}

// RouteName 生成前端路由组件注册名(剔除 - 与 _ )
// 剔除后可能与其他菜单重名，这是接受的行为，前端以最后注册者为准
func (m *Menu) RouteName() string {
	name := strings.ReplaceAll(m.MenuName, "-", "")
	return strings.ReplaceAll(name, "_", "")
}
