/*
 * @author: sun977
 * @date: 2025.09.13
 * @description: 部门管理接口处理器
 * @func:
 * 1.部门列表/详情/增删改
 * 2.排除指定节点的部门列表(编辑时选父部门用)
 */
package system

import (
	"adminmaster/internal/model"
	"adminmaster/internal/pkg/utils"
	"adminmaster/internal/service/system"

	"github.com/gin-gonic/gin"
)

// DeptHandler 部门管理处理器
type DeptHandler struct {
	deptService *system.DeptService
}

// NewDeptHandler 创建部门管理处理器实例
func NewDeptHandler(deptService *system.DeptService) *DeptHandler {
	return &DeptHandler{deptService: deptService}
}

// List 部门列表(扁平，不分页)
// GET /system/dept/list
func (h *DeptHandler) List(c *gin.Context) {
	var query model.DeptQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBadRequest(c, err)
		return
	}

	depts, err := h.deptService.ListDepts(c.Request.Context(), &query)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, depts)
}

// ListExclude 排除指定部门及其后代的部门列表
// GET /system/dept/list/exclude/:deptId
func (h *DeptHandler) ListExclude(c *gin.Context) {
	deptID, valid := pathID(c, "deptId")
	if !valid {
		return
	}

	depts, err := h.deptService.ListDeptsExclude(c.Request.Context(), deptID)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, depts)
}

// Get 部门详情
// GET /system/dept/:deptId
func (h *DeptHandler) Get(c *gin.Context) {
	deptID, valid := pathID(c, "deptId")
	if !valid {
		return
	}

	dept, err := h.deptService.GetDept(c.Request.Context(), deptID)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, dept)
}

// Create 创建部门
// POST /system/dept
func (h *DeptHandler) Create(c *gin.Context) {
	var req model.CreateDeptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	dept, err := h.deptService.CreateDept(c.Request.Context(), &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, dept)
}

// Update 更新部门
// PUT /system/dept/:deptId 及 PUT /system/dept (body-id 兼容路径)
func (h *DeptHandler) Update(c *gin.Context) {
	var deptID int64
	if c.Param("deptId") != "" {
		id, valid := pathID(c, "deptId")
		if !valid {
			return
		}
		deptID = id
	}

	var req model.UpdateDeptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	dept, err := h.deptService.UpdateDept(c.Request.Context(), deptID, &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, dept)
}

// Delete 删除部门(软删除，存在子部门或在职用户时拒绝)
// DELETE /system/dept/:deptId
func (h *DeptHandler) Delete(c *gin.Context) {
	deptID, valid := pathID(c, "deptId")
	if !valid {
		return
	}

	if err := h.deptService.DeleteDept(c.Request.Context(), deptID, utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}
