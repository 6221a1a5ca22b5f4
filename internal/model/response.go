/**
 * 模型:响应模型
 * @author: sun977
 * @date: 2025.09.18
 * @description: API响应数据模型，统一 {code, msg} 信封；
 *               错误经 handler 边界翻译为 {code, message}
 * @func: 各种Response结构体定义
 */
package model

// APIResponse 通用API响应结构
// 成功与验证失败均返回 HTTP 200，调用方以 code 字段区分
type APIResponse struct {
	Code int         `json:"code"`           // 业务状态码，200 表示成功
	Msg  string      `json:"msg"`            // 响应消息
	Data interface{} `json:"data,omitempty"` // 响应数据，可选
}

// ErrorResponse 边界错误信封
// 所有业务错误最终汇入该结构，message 取第一条可读错误信息
type ErrorResponse struct {
	Code    int    `json:"code"`    // 与HTTP状态语义对应的业务码
	Message string `json:"message"` // 第一条人类可读错误消息
}

// PageResponse 分页列表响应结构
type PageResponse struct {
	Total int64       `json:"total"` // 总记录数
	Rows  interface{} `json:"rows"`  // 当前页数据
	Code  int         `json:"code"`
	Msg   string      `json:"msg"`
}

// LoginResponse 登录响应结构
type LoginResponse struct {
	Token string `json:"token"` // 访问令牌
}

// UserInfo getInfo 响应中的用户信息
type UserInfo struct {
	UserID      int64  `json:"userId"`
	UserName    string `json:"userName"`
	NickName    string `json:"nickName"`
	Avatar      string `json:"avatar"`
	Phonenumber string `json:"phonenumber"`
	Email       string `json:"email"`
	Sex         string `json:"sex"`
}

// GetInfoResponse getInfo 响应结构
type GetInfoResponse struct {
	Code               int      `json:"code"`
	Msg                string   `json:"msg"`
	User               UserInfo `json:"user"`
	Roles              []string `json:"roles"`       // 角色权限字符列表
	Permissions        []string `json:"permissions"` // 权限标识列表，admin 为 ["*:*:*"]
	IsDefaultModifyPwd bool     `json:"isDefaultModifyPwd"`
	IsPasswordExpired  bool     `json:"isPasswordExpired"`
}

// TreeSelectNode 树选择节点(部门树/菜单树公用)
// children 为空时省略该字段，前端依赖该行为渲染叶子节点
type TreeSelectNode struct {
	ID       int64             `json:"id"`
	Label    string            `json:"label"`
	Children []*TreeSelectNode `json:"children,omitempty"`
}

// RoleMenuTreeResponse 角色菜单树响应(菜单树+已勾选的菜单ID)
type RoleMenuTreeResponse struct {
	Code        int               `json:"code"`
	Msg         string            `json:"msg"`
	Menus       []*TreeSelectNode `json:"menus"`
	CheckedKeys []int64           `json:"checkedKeys"`
}

// RoleDeptTreeResponse 角色部门树响应
type RoleDeptTreeResponse struct {
	Code        int               `json:"code"`
	Msg         string            `json:"msg"`
	Depts       []*TreeSelectNode `json:"depts"`
	CheckedKeys []int64           `json:"checkedKeys"`
}

// AuthRoleResponse 用户授权角色查询响应
type AuthRoleResponse struct {
	User  *User       `json:"user"`
	Roles []*RoleFlag `json:"roles"` // 全量启用角色，flag 标记当前用户是否持有
}

// RoleFlag 角色+持有标记
type RoleFlag struct {
	Role
	Flag bool `json:"flag"`
}

// ProfileResponse 个人信息响应
type ProfileResponse struct {
	User    *User   `json:"user"`
	RoleIDs []int64 `json:"roleIds"`
	PostIDs []int64 `json:"postIds"` // 岗位暂未实现，保持字段兼容，恒为空
}
