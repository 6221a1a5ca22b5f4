/**
 * 模型:请求模型
 * @author: sun977
 * @date: 2025.09.18
 * @description: API请求数据模型，字段名与前端线上格式(camelCase)一一对应，
 *               不做运行时反射改名，全部为显式DTO
 * @func: 各种Request结构体定义
 */
package model

// LoginRequest 登录请求结构
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // 用户名，必填
	Password string `json:"password" binding:"required"` // 密码，必填
}

// PageQuery 分页参数(query string)
type PageQuery struct {
	PageNum  int `form:"pageNum"`  // 页码，默认1
	PageSize int `form:"pageSize"` // 每页大小，默认10
}

// Normalize 填充分页默认值
func (p *PageQuery) Normalize() {
	if p.PageNum <= 0 {
		p.PageNum = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = 10
	}
}

// UserQuery 用户列表过滤参数
type UserQuery struct {
	PageQuery
	UserName    string `form:"userName"`    // 用户名/昵称模糊匹配
	Phonenumber string `form:"phonenumber"` // 手机号模糊匹配
	Status      string `form:"status"`      // 状态精确匹配
	DeptID      int64  `form:"deptId"`      // 部门精确匹配
	BeginTime   string `form:"beginTime"`   // 创建时间下界
	EndTime     string `form:"endTime"`     // 创建时间上界
}

// CreateUserRequest 创建用户请求结构
type CreateUserRequest struct {
	UserName    string  `json:"userName" binding:"required"` // 用户名，必填
	NickName    string  `json:"nickName"`
	Password    string  `json:"password" binding:"required"` // 明文密码，服务层哈希后入库
	Phonenumber string  `json:"phonenumber"`
	Email       string  `json:"email"`
	Sex         string  `json:"sex"`
	Status      string  `json:"status"`
	Remark      string  `json:"remark"`
	DeptID      *int64  `json:"deptId"`
	RoleIDs     []int64 `json:"roleIds"` // 初始角色，可选
}

// UpdateUserRequest 更新用户请求结构(集合更新时 userId 放在请求体)
type UpdateUserRequest struct {
	UserID      int64   `json:"userId"` // PUT /system/user (body-id 兼容路径)使用
	NickName    *string `json:"nickName"`
	Phonenumber *string `json:"phonenumber"`
	Email       *string `json:"email"`
	Sex         *string `json:"sex"`
	Avatar      *string `json:"avatar"`
	Status      *string `json:"status"` // 指针区分零值与未设置
	Remark      *string `json:"remark"`
	DeptID      *int64  `json:"deptId"`
	RoleIDs     []int64 `json:"roleIds"` // 非nil时整体替换用户角色
}

// ResetPwdRequest 重置密码请求
type ResetPwdRequest struct {
	UserID   int64  `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ChangeStatusRequest 用户/角色状态变更请求
type ChangeStatusRequest struct {
	UserID int64  `json:"userId"`
	RoleID int64  `json:"roleId"`
	Status string `json:"status" binding:"required"`
}

// UpdatePwdRequest 用户自助修改密码请求
type UpdatePwdRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// AvatarRequest 头像更新请求
type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// AuthRoleRequest 用户授权角色请求(整体替换)
type AuthRoleRequest struct {
	UserID  int64   `json:"userId" binding:"required"`
	RoleIDs []int64 `json:"roleIds"`
}

// UpdateProfileRequest 个人信息修改请求
type UpdateProfileRequest struct {
	NickName    *string `json:"nickName"`
	Phonenumber *string `json:"phonenumber"`
	Email       *string `json:"email"`
	Sex         *string `json:"sex"`
}

// RoleQuery 角色列表过滤参数
type RoleQuery struct {
	PageQuery
	RoleName  string `form:"roleName"`
	RoleKey   string `form:"roleKey"`
	Status    string `form:"status"`
	BeginTime string `form:"beginTime"`
	EndTime   string `form:"endTime"`
}

// CreateRoleRequest 创建角色请求结构
type CreateRoleRequest struct {
	RoleName          string  `json:"roleName" binding:"required"`
	RoleKey           string  `json:"roleKey" binding:"required"`
	RoleSort          int     `json:"roleSort"`
	Status            string  `json:"status"`
	Remark            string  `json:"remark"`
	DataScope         string  `json:"dataScope"`
	MenuCheckStrictly *bool   `json:"menuCheckStrictly"`
	DeptCheckStrictly *bool   `json:"deptCheckStrictly"`
	MenuIDs           []int64 `json:"menuIds"` // 角色菜单，入库前过滤掉不存在/已删除的菜单
}

// UpdateRoleRequest 更新角色请求结构
type UpdateRoleRequest struct {
	RoleID            int64    `json:"roleId"` // body-id 兼容路径使用
	RoleName          *string  `json:"roleName"`
	RoleKey           *string  `json:"roleKey"`
	RoleSort          *int     `json:"roleSort"`
	Status            *string  `json:"status"`
	Remark            *string  `json:"remark"`
	DataScope         *string  `json:"dataScope"`
	MenuCheckStrictly *bool    `json:"menuCheckStrictly"`
	DeptCheckStrictly *bool    `json:"deptCheckStrictly"`
	MenuIDs           *[]int64 `json:"menuIds"` // 非nil时整体替换角色菜单(含空列表清空)
}

// DataScopeRequest 角色数据范围设置请求(仅存储，不参与查询过滤)
type DataScopeRequest struct {
	RoleID            int64   `json:"roleId" binding:"required"`
	DataScope         string  `json:"dataScope" binding:"required"`
	DeptCheckStrictly *bool   `json:"deptCheckStrictly"`
	DeptIDs           []int64 `json:"deptIds"` // 兼容前端传参，当前不持久化
}

// AuthUserCancelRequest 取消单个用户授权请求
type AuthUserCancelRequest struct {
	RoleID int64 `json:"roleId" binding:"required"`
	UserID int64 `json:"userId" binding:"required"`
}

// MenuQuery 菜单列表过滤参数(不分页)
type MenuQuery struct {
	MenuName string `form:"menuName"` // 名称模糊匹配
	Status   string `form:"status"`   // 状态精确匹配
}

// CreateMenuRequest 创建菜单请求结构
type CreateMenuRequest struct {
	ParentID  int64  `json:"parentId"`
	MenuName  string `json:"menuName" binding:"required"`
	OrderNum  int    `json:"orderNum"`
	Path      string `json:"path"`
	Component string `json:"component"`
	Query     string `json:"query"`
	IsFrame   string `json:"isFrame"`
	IsCache   string `json:"isCache"`
	MenuType  string `json:"menuType" binding:"required"`
	Visible   string `json:"visible"`
	Status    string `json:"status"`
	Perms     string `json:"perms"`
	Icon      string `json:"icon"`
	Remark    string `json:"remark"`
}

// UpdateMenuRequest 更新菜单请求结构
type UpdateMenuRequest struct {
	MenuID    int64   `json:"menuId"` // body-id 兼容路径使用
	ParentID  *int64  `json:"parentId"`
	MenuName  *string `json:"menuName"`
	OrderNum  *int    `json:"orderNum"`
	Path      *string `json:"path"`
	Component *string `json:"component"`
	Query     *string `json:"query"`
	IsFrame   *string `json:"isFrame"`
	IsCache   *string `json:"isCache"`
	MenuType  *string `json:"menuType"`
	Visible   *string `json:"visible"`
	Status    *string `json:"status"`
	Perms     *string `json:"perms"`
	Icon      *string `json:"icon"`
	Remark    *string `json:"remark"`
}

// DeptQuery 部门列表过滤参数(不分页)
type DeptQuery struct {
	DeptName string `form:"deptName"`
	Status   string `form:"status"`
}

// CreateDeptRequest 创建部门请求结构
type CreateDeptRequest struct {
	ParentID int64  `json:"parentId"`
	DeptName string `json:"deptName" binding:"required"`
	OrderNum int    `json:"orderNum"`
	Leader   string `json:"leader"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Status   string `json:"status"`
}

// UpdateDeptRequest 更新部门请求结构
type UpdateDeptRequest struct {
	DeptID   int64   `json:"deptId"` // body-id 兼容路径使用
	ParentID *int64  `json:"parentId"`
	DeptName *string `json:"deptName"`
	OrderNum *int    `json:"orderNum"`
	Leader   *string `json:"leader"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Status   *string `json:"status"`
}

// DictTypeQuery 字典类型过滤参数
type DictTypeQuery struct {
	PageQuery
	DictName string `form:"dictName"`
	DictType string `form:"dictType"`
	Status   string `form:"status"`
}

// CreateDictTypeRequest 创建字典类型请求
type CreateDictTypeRequest struct {
	DictName string `json:"dictName" binding:"required"`
	DictType string `json:"dictType" binding:"required"`
	Status   string `json:"status"`
	Remark   string `json:"remark"`
}

// UpdateDictTypeRequest 更新字典类型请求
type UpdateDictTypeRequest struct {
	DictID   int64   `json:"dictId"` // body-id 兼容路径使用
	DictName *string `json:"dictName"`
	DictType *string `json:"dictType"`
	Status   *string `json:"status"`
	Remark   *string `json:"remark"`
}

// DictDataQuery 字典数据过滤参数
type DictDataQuery struct {
	PageQuery
	DictType  string `form:"dictType"`
	DictLabel string `form:"dictLabel"`
	Status    string `form:"status"`
}

// CreateDictDataRequest 创建字典数据请求
type CreateDictDataRequest struct {
	DictSort  int    `json:"dictSort"`
	DictLabel string `json:"dictLabel" binding:"required"`
	DictValue string `json:"dictValue" binding:"required"`
	DictType  string `json:"dictType" binding:"required"`
	CssClass  string `json:"cssClass"`
	ListClass string `json:"listClass"`
	Status    string `json:"status"`
	Remark    string `json:"remark"`
}

// UpdateDictDataRequest 更新字典数据请求
type UpdateDictDataRequest struct {
	DictCode  int64   `json:"dictCode"` // body-id 兼容路径使用
	DictSort  *int    `json:"dictSort"`
	DictLabel *string `json:"dictLabel"`
	DictValue *string `json:"dictValue"`
	DictType  *string `json:"dictType"`
	CssClass  *string `json:"cssClass"`
	ListClass *string `json:"listClass"`
	Status    *string `json:"status"`
	Remark    *string `json:"remark"`
}

// ConfigQuery 参数配置过滤参数
type ConfigQuery struct {
	PageQuery
	ConfigName string `form:"configName"`
	ConfigKey  string `form:"configKey"`
	ConfigType string `form:"configType"`
	BeginTime  string `form:"beginTime"`
	EndTime    string `form:"endTime"`
}

// CreateConfigRequest 创建参数配置请求
type CreateConfigRequest struct {
	ConfigName  string `json:"configName" binding:"required"`
	ConfigKey   string `json:"configKey" binding:"required"`
	ConfigValue string `json:"configValue"`
	ConfigType  string `json:"configType"`
	Remark      string `json:"remark"`
}

// UpdateConfigRequest 更新参数配置请求
type UpdateConfigRequest struct {
	ConfigID    int64   `json:"configId"` // body-id 兼容路径使用
	ConfigName  *string `json:"configName"`
	ConfigKey   *string `json:"configKey"`
	ConfigValue *string `json:"configValue"`
	ConfigType  *string `json:"configType"`
	Remark      *string `json:"remark"`
}
