/*
 * @author: sun977
 * @date: 2025.09.13
 * @description: 角色管理接口处理器
 * @func:
 * 1.角色列表/详情/增删改/状态/数据范围
 * 2.角色用户授权(已分配/未分配/授权/取消)
 * 3.角色部门树
 */
package system

import (
	"adminmaster/internal/model"
	"adminmaster/internal/pkg/utils"
	"adminmaster/internal/service/system"

	"github.com/gin-gonic/gin"
)

// RoleHandler 角色管理处理器
type RoleHandler struct {
	roleService *system.RoleService
	deptService *system.DeptService
}

// NewRoleHandler 创建角色管理处理器实例
func NewRoleHandler(roleService *system.RoleService, deptService *system.DeptService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
		deptService: deptService,
	}
}

// List 角色列表
// GET /system/role/list
func (h *RoleHandler) List(c *gin.Context) {
	var query model.RoleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBadRequest(c, err)
		return
	}

	roles, total, err := h.roleService.ListRoles(c.Request.Context(), &query)
	if err != nil {
		fail(c, err)
		return
	}
	okPage(c, roles, total)
}

// OptionSelect 全部角色下拉选项
// GET /system/role/optionselect
func (h *RoleHandler) OptionSelect(c *gin.Context) {
	roles, err := h.roleService.ListAllRoles(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, roles)
}

// Get 角色详情
// GET /system/role/:roleId
func (h *RoleHandler) Get(c *gin.Context) {
	roleID, valid := pathID(c, "roleId")
	if !valid {
		return
	}

	role, err := h.roleService.GetRole(c.Request.Context(), roleID)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, role)
}

// Create 创建角色
// POST /system/role
func (h *RoleHandler) Create(c *gin.Context) {
	var req model.CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, role)
}

// Update 更新角色
// PUT /system/role/:roleId 及 PUT /system/role (body-id 兼容路径)
func (h *RoleHandler) Update(c *gin.Context) {
	var roleID int64
	if c.Param("roleId") != "" {
		id, valid := pathID(c, "roleId")
		if !valid {
			return
		}
		roleID = id
	}

	var req model.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	role, err := h.roleService.UpdateRole(c.Request.Context(), roleID, &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, role)
}

// Delete 删除角色(软删除)
// DELETE /system/role/:roleId
func (h *RoleHandler) Delete(c *gin.Context) {
	roleID, valid := pathID(c, "roleId")
	if !valid {
		return
	}

	if err := h.roleService.DeleteRole(c.Request.Context(), roleID, utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// ChangeStatus 变更角色状态
// PUT /system/role/changeStatus
func (h *RoleHandler) ChangeStatus(c *gin.Context) {
	var req model.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}
	if req.RoleID == 0 {
		fail(c, model.NewValidationError("roleId", "角色ID不能为空"))
		return
	}

	err := h.roleService.ChangeStatus(c.Request.Context(), req.RoleID, req.Status, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// DataScope 设置角色数据范围(仅存储)
// PUT /system/role/dataScope
func (h *RoleHandler) DataScope(c *gin.Context) {
	var req model.DataScopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	if err := h.roleService.SetDataScope(c.Request.Context(), &req, utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// DeptTree 角色部门树(部门下拉树 + 已勾选部门，当前恒为空)
// GET /system/role/deptTree/:roleId
func (h *RoleHandler) DeptTree(c *gin.Context) {
	if _, valid := pathID(c, "roleId"); !valid {
		return
	}

	tree, err := h.deptService.TreeSelect(c.Request.Context(), &model.DeptQuery{})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(200, model.RoleDeptTreeResponse{
		Code:        200,
		Msg:         "操作成功",
		Depts:       tree,
		CheckedKeys: []int64{},
	})
}

// AllocatedList 已分配该角色的用户列表
// GET /system/role/authUser/allocatedList
func (h *RoleHandler) AllocatedList(c *gin.Context) {
	roleID, valid := queryID(c, "roleId")
	if !valid {
		return
	}

	var query model.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBadRequest(c, err)
		return
	}

	users, total, err := h.roleService.AllocatedUsers(c.Request.Context(), roleID, &query)
	if err != nil {
		fail(c, err)
		return
	}
	okPage(c, users, total)
}

// UnallocatedList 未分配该角色的用户列表
// GET /system/role/authUser/unallocatedList
func (h *RoleHandler) UnallocatedList(c *gin.Context) {
	roleID, valid := queryID(c, "roleId")
	if !valid {
		return
	}

	var query model.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBadRequest(c, err)
		return
	}

	users, total, err := h.roleService.UnallocatedUsers(c.Request.Context(), roleID, &query)
	if err != nil {
		fail(c, err)
		return
	}
	okPage(c, users, total)
}

// CancelAuthUser 取消单个用户授权(幂等)
// PUT /system/role/authUser/cancel
func (h *RoleHandler) CancelAuthUser(c *gin.Context) {
	var req model.AuthUserCancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	if err := h.roleService.CancelAuthUser(c.Request.Context(), &req, utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// CancelAuthUserAll 批量取消用户授权
// PUT /system/role/authUser/cancelAll?roleId=&userIds=1,2,3
func (h *RoleHandler) CancelAuthUserAll(c *gin.Context) {
	roleID, valid := queryID(c, "roleId")
	if !valid {
		return
	}
	userIDs, valid := queryIDs(c, "userIds")
	if !valid {
		return
	}

	err := h.roleService.CancelAuthUsers(c.Request.Context(), roleID, userIDs, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// SelectAuthUserAll 批量授权用户
// PUT /system/role/authUser/selectAll?roleId=&userIds=1,2,3
func (h *RoleHandler) SelectAuthUserAll(c *gin.Context) {
	roleID, valid := queryID(c, "roleId")
	if !valid {
		return
	}
	userIDs, valid := queryIDs(c, "userIds")
	if !valid {
		return
	}

	err := h.roleService.SelectAuthUsers(c.Request.Context(), roleID, userIDs, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c)
}
