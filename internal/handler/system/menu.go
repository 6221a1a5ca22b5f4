/*
 * @author: sun977
 * @date: 2025.09.13
 * @description: 菜单管理接口处理器
 * @func:
 * 1.菜单列表/详情/增删改
 * 2.菜单下拉树与角色菜单树
 * 3.路由缓存刷新
 */
package system

import (
	"adminmaster/internal/model"
	"adminmaster/internal/pkg/utils"
	"adminmaster/internal/service/system"

	"github.com/gin-gonic/gin"
)

// MenuHandler 菜单管理处理器
type MenuHandler struct {
	menuService *system.MenuService
}

// NewMenuHandler 创建菜单管理处理器实例
func NewMenuHandler(menuService *system.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// List 菜单列表(扁平，不分页)
// GET /system/menu/list
func (h *MenuHandler) List(c *gin.Context) {
	var query model.MenuQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBadRequest(c, err)
		return
	}

	menus, err := h.menuService.ListMenus(c.Request.Context(), &query)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, menus)
}

// Get 菜单详情
// GET /system/menu/:menuId
func (h *MenuHandler) Get(c *gin.Context) {
	menuID, valid := pathID(c, "menuId")
	if !valid {
		return
	}

	menu, err := h.menuService.GetMenu(c.Request.Context(), menuID)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, menu)
}

// TreeSelect 菜单下拉树
// GET /system/menu/treeselect
func (h *MenuHandler) TreeSelect(c *gin.Context) {
	var query model.MenuQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBadRequest(c, err)
		return
	}

	tree, err := h.menuService.TreeSelect(c.Request.Context(), &query)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, tree)
}

// RoleMenuTreeSelect 角色菜单树(菜单树+该角色已勾选的菜单ID)
// GET /system/menu/roleMenuTreeselect/:roleId
func (h *MenuHandler) RoleMenuTreeSelect(c *gin.Context) {
	roleID, valid := pathID(c, "roleId")
	if !valid {
		return
	}

	tree, checkedKeys, err := h.menuService.RoleMenuTreeSelect(c.Request.Context(), roleID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(200, model.RoleMenuTreeResponse{
		Code:        200,
		Msg:         "操作成功",
		Menus:       tree,
		CheckedKeys: checkedKeys,
	})
}

// Create 创建菜单
// POST /system/menu
func (h *MenuHandler) Create(c *gin.Context) {
	var req model.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	menu, err := h.menuService.CreateMenu(c.Request.Context(), &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, menu)
}

// Update 更新菜单
// PUT /system/menu/:menuId 及 PUT /system/menu (body-id 兼容路径)
func (h *MenuHandler) Update(c *gin.Context) {
	var menuID int64
	if c.Param("menuId") != "" {
		id, valid := pathID(c, "menuId")
		if !valid {
			return
		}
		menuID = id
	}

	var req model.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	menu, err := h.menuService.UpdateMenu(c.Request.Context(), menuID, &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, menu)
}

// Delete 删除菜单(软删除，存在子菜单或被角色引用时拒绝)
// DELETE /system/menu/:menuId
func (h *MenuHandler) Delete(c *gin.Context) {
	menuID, valid := pathID(c, "menuId")
	if !valid {
		return
	}

	if err := h.menuService.DeleteMenu(c.Request.Context(), menuID, utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// RefreshCache 清除路由投影缓存
// DELETE /system/menu/refreshCache
func (h *MenuHandler) RefreshCache(c *gin.Context) {
	if err := h.menuService.RefreshRouterCache(c.Request.Context(), utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}
