/*
 * @author: sun977
 * @date: 2025.09.13
 * @description: 用户管理接口处理器
 * @func:
 * 1.用户列表/详情/增删改
 * 2.重置密码/状态变更/角色授权
 * 3.个人中心(资料/密码/头像)
 * 4.部门树查询
 */
package system

import (
	"adminmaster/internal/model"
	"adminmaster/internal/pkg/utils"
	"adminmaster/internal/service/system"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户管理处理器
type UserHandler struct {
	userService *system.UserService
	roleService *system.RoleService
	deptService *system.DeptService
}

// NewUserHandler 创建用户管理处理器实例
func NewUserHandler(
	userService *system.UserService,
	roleService *system.RoleService,
	deptService *system.DeptService,
) *UserHandler {
	return &UserHandler{
		userService: userService,
		roleService: roleService,
		deptService: deptService,
	}
}

// List 用户列表
// GET /system/user/list
func (h *UserHandler) List(c *gin.Context) {
	var query model.UserQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBadRequest(c, err)
		return
	}

	users, total, err := h.userService.ListUsers(c.Request.Context(), &query)
	if err != nil {
		fail(c, err)
		return
	}
	okPage(c, users, total)
}

// Get 用户详情(附带全部角色供前端勾选)
// GET /system/user/:userId
func (h *UserHandler) Get(c *gin.Context) {
	userID, valid := pathID(c, "userId")
	if !valid {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	roles, err := h.roleService.ListAllRoles(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	roleIDs := make([]int64, 0, len(user.Roles))
	for _, r := range user.Roles {
		roleIDs = append(roleIDs, r.RoleID)
	}

	c.JSON(200, gin.H{
		"code":    200,
		"msg":     "操作成功",
		"data":    user,
		"roleIds": roleIDs,
		"roles":   roles,
	})
}

// Create 创建用户
// POST /system/user
func (h *UserHandler) Create(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, user)
}

// Update 更新用户
// PUT /system/user/:userId 及 PUT /system/user (body-id 兼容路径)
func (h *UserHandler) Update(c *gin.Context) {
	var userID int64
	if c.Param("userId") != "" {
		id, valid := pathID(c, "userId")
		if !valid {
			return
		}
		userID = id
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, user)
}

// Delete 删除用户(软删除)
// DELETE /system/user/:userId
func (h *UserHandler) Delete(c *gin.Context) {
	userID, valid := pathID(c, "userId")
	if !valid {
		return
	}

	err := h.userService.DeleteUser(c.Request.Context(), userID,
		utils.GetCurrentUserID(c), utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// ResetPwd 重置用户密码
// PUT /system/user/resetPwd
func (h *UserHandler) ResetPwd(c *gin.Context) {
	var req model.ResetPwdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), &req, utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// ChangeStatus 变更用户状态
// PUT /system/user/changeStatus
func (h *UserHandler) ChangeStatus(c *gin.Context) {
	var req model.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}
	if req.UserID == 0 {
		fail(c, model.NewValidationError("userId", "用户ID不能为空"))
		return
	}

	err := h.userService.ChangeStatus(c.Request.Context(), req.UserID, req.Status, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// DeptTree 部门下拉树
// GET /system/user/deptTree
func (h *UserHandler) DeptTree(c *gin.Context) {
	var query model.DeptQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBadRequest(c, err)
		return
	}

	tree, err := h.deptService.TreeSelect(c.Request.Context(), &query)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, tree)
}

// AuthRole 查询用户授权角色
// GET /system/user/authRole/:userId
func (h *UserHandler) AuthRole(c *gin.Context) {
	userID, valid := pathID(c, "userId")
	if !valid {
		return
	}

	resp, err := h.userService.GetAuthRole(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"code":  200,
		"msg":   "操作成功",
		"user":  resp.User,
		"roles": resp.Roles,
	})
}

// UpdateAuthRole 用户角色授权(整体替换)
// PUT /system/user/authRole
func (h *UserHandler) UpdateAuthRole(c *gin.Context) {
	var req model.AuthRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	err := h.userService.AssignRoles(c.Request.Context(), req.UserID, req.RoleIDs, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// Profile 获取个人信息
// GET /system/user/profile
func (h *UserHandler) Profile(c *gin.Context) {
	resp, err := h.userService.GetProfile(c.Request.Context(), utils.GetCurrentUserID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"code":    200,
		"msg":     "操作成功",
		"data":    resp.User,
		"roleIds": resp.RoleIDs,
		"postIds": resp.PostIDs,
	})
}

// UpdateProfile 修改个人信息
// PUT /system/user/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req model.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	err := h.userService.UpdateProfile(c.Request.Context(), utils.GetCurrentUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// UpdatePwd 自助修改密码
// PUT /system/user/profile/updatePwd
func (h *UserHandler) UpdatePwd(c *gin.Context) {
	var req model.UpdatePwdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	err := h.userService.UpdatePassword(c.Request.Context(), utils.GetCurrentUserID(c), &req)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// Avatar 更新头像
// POST /system/user/profile/avatar
func (h *UserHandler) Avatar(c *gin.Context) {
	var req model.AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	err := h.userService.UpdateAvatar(c.Request.Context(), utils.GetCurrentUserID(c), req.Avatar)
	if err != nil {
		fail(c, err)
		return
	}
	ok(c)
}
