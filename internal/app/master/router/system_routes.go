/**
 * 路由:系统管理路由
 * @author: sun977
 * @date: 2025.09.14
 * @description: 定义系统管理路由(用户/角色/菜单/部门/字典/参数)
 * @func:
 */
package router

import (
	"github.com/gin-gonic/gin"
)

// setupSystemRoutes 设置系统管理路由
func (r *Router) setupSystemRoutes(root *gin.RouterGroup) {
	// 系统管理路由（需要JWT认证、用户状态检查和管理员权限检查）
	system := root.Group("/system")
	system.Use(r.middlewareManager.GinJWTAuthMiddleware())    // JWT认证中间件
	system.Use(r.middlewareManager.GinUserActiveMiddleware()) // 用户状态检查中间件
	system.Use(r.middlewareManager.GinAdminRoleMiddleware())  // 管理员权限检查中间件
	{
		// 用户管理
		user := system.Group("/user")
		{
			user.GET("/list", r.userHandler.List)            // 获取用户列表
			user.GET("/deptTree", r.userHandler.DeptTree)    // 获取部门下拉树
			user.GET("/profile", r.userHandler.Profile)      // 获取当前用户个人信息
			user.PUT("/profile", r.userHandler.UpdateProfile)
			user.PUT("/profile/updatePwd", r.userHandler.UpdatePwd) // 修改当前用户密码
			user.POST("/profile/avatar", r.userHandler.Avatar)      // 更新当前用户头像
			user.GET("/authRole/:userId", r.userHandler.AuthRole)   // 查询用户可分配角色
			user.PUT("/authRole", r.userHandler.UpdateAuthRole)     // 保存用户角色分配
			user.PUT("/resetPwd", r.userHandler.ResetPwd)           // 管理员重置用户密码
			user.PUT("/changeStatus", r.userHandler.ChangeStatus)   // 变更用户状态
			user.GET("/:userId", r.userHandler.Get)                 // 获取用户详情
			user.POST("", r.userHandler.Create)                     // 创建用户(包含角色分配)
			user.PUT("", r.userHandler.Update)                      // 更新用户(body携带用户ID)
			user.PUT("/:userId", r.userHandler.Update)              // 更新用户
			user.DELETE("/:userId", r.userHandler.Delete)           // 删除用户(软删除)
		}

		// 角色管理
		role := system.Group("/role")
		{
			role.GET("/list", r.roleHandler.List)                 // 获取角色列表
			role.GET("/optionselect", r.roleHandler.OptionSelect) // 获取全部角色下拉选项
			role.GET("/deptTree/:roleId", r.roleHandler.DeptTree) // 获取角色部门树
			role.PUT("/dataScope", r.roleHandler.DataScope)       // 设置角色数据范围
			role.PUT("/changeStatus", r.roleHandler.ChangeStatus) // 变更角色状态
			role.GET("/authUser/allocatedList", r.roleHandler.AllocatedList)     // 已分配用户列表
			role.GET("/authUser/unallocatedList", r.roleHandler.UnallocatedList) // 未分配用户列表
			role.PUT("/authUser/cancel", r.roleHandler.CancelAuthUser)           // 取消单个用户授权
			role.PUT("/authUser/cancelAll", r.roleHandler.CancelAuthUserAll)     // 批量取消用户授权
			role.PUT("/authUser/selectAll", r.roleHandler.SelectAuthUserAll)     // 批量授权用户
			role.GET("/:roleId", r.roleHandler.Get)       // 获取角色详情
			role.POST("", r.roleHandler.Create)           // 创建角色(包含菜单分配)
			role.PUT("", r.roleHandler.Update)            // 更新角色(body携带角色ID)
			role.PUT("/:roleId", r.roleHandler.Update)    // 更新角色
			role.DELETE("/:roleId", r.roleHandler.Delete) // 删除角色(软删除)
		}

		// 菜单管理
		menu := system.Group("/menu")
		{
			menu.GET("/list", r.menuHandler.List)             // 获取菜单列表
			menu.GET("/treeselect", r.menuHandler.TreeSelect) // 获取菜单下拉树
			menu.GET("/roleMenuTreeselect/:roleId", r.menuHandler.RoleMenuTreeSelect) // 获取角色菜单树
			menu.DELETE("/refreshCache", r.menuHandler.RefreshCache)                  // 清除路由投影缓存
			menu.GET("/:menuId", r.menuHandler.Get)       // 获取菜单详情
			menu.POST("", r.menuHandler.Create)           // 创建菜单
			menu.PUT("", r.menuHandler.Update)            // 更新菜单(body携带菜单ID)
			menu.PUT("/:menuId", r.menuHandler.Update)    // 更新菜单
			menu.DELETE("/:menuId", r.menuHandler.Delete) // 删除菜单(软删除)
		}

		// 部门管理
		dept := system.Group("/dept")
		{
			dept.GET("/list", r.deptHandler.List)                         // 获取部门列表
			dept.GET("/list/exclude/:deptId", r.deptHandler.ListExclude)  // 排除指定子树的部门列表
			dept.GET("/:deptId", r.deptHandler.Get)       // 获取部门详情
			dept.POST("", r.deptHandler.Create)           // 创建部门
			dept.PUT("", r.deptHandler.Update)            // 更新部门(body携带部门ID)
			dept.PUT("/:deptId", r.deptHandler.Update)    // 更新部门
			dept.DELETE("/:deptId", r.deptHandler.Delete) // 删除部门(软删除)
		}

		// 字典管理
		dict := system.Group("/dict")
		{
			dictType := dict.Group("/type")
			{
				dictType.GET("/list", r.dictHandler.TypeList)                  // 获取字典类型列表
				dictType.GET("/optionselect", r.dictHandler.TypeOptionSelect)  // 全部字典类型下拉选项
				dictType.DELETE("/refreshCache", r.dictHandler.TypeRefreshCache) // 清除字典缓存
				dictType.GET("/:dictId", r.dictHandler.TypeGet)       // 获取字典类型详情
				dictType.POST("", r.dictHandler.TypeCreate)           // 创建字典类型
				dictType.PUT("", r.dictHandler.TypeUpdate)            // 更新字典类型(body携带ID)
				dictType.PUT("/:dictId", r.dictHandler.TypeUpdate)    // 更新字典类型
				dictType.DELETE("/:dictId", r.dictHandler.TypeDelete) // 删除字典类型(软删除)
			}

			dictData := dict.Group("/data")
			{
				dictData.GET("/list", r.dictHandler.DataList)            // 获取字典数据列表
				dictData.GET("/type/:dictType", r.dictHandler.DataByType) // 按类型获取字典数据
				dictData.GET("/:dictCode", r.dictHandler.DataGet)       // 获取字典数据详情
				dictData.POST("", r.dictHandler.DataCreate)             // 创建字典数据
				dictData.PUT("", r.dictHandler.DataUpdate)              // 更新字典数据(body携带ID)
				dictData.PUT("/:dictCode", r.dictHandler.DataUpdate)    // 更新字典数据
				dictData.DELETE("/:dictCode", r.dictHandler.DataDelete) // 删除字典数据(软删除)
			}
		}

		// 参数配置
		cfg := system.Group("/config")
		{
			cfg.GET("/list", r.configHandler.List)                     // 获取参数列表
			cfg.GET("/configKey/:configKey", r.configHandler.GetByKey) // 按键名获取参数值
			cfg.DELETE("/refreshCache", r.configHandler.RefreshCache)  // 清除参数缓存
			cfg.GET("/:configId", r.configHandler.Get)       // 获取参数详情
			cfg.POST("", r.configHandler.Create)             // 创建参数
			cfg.PUT("", r.configHandler.Update)              // 更新参数(body携带ID)
			cfg.PUT("/:configId", r.configHandler.Update)    // 更新参数
			cfg.DELETE("/:configId", r.configHandler.Delete) // 删除参数(软删除)
		}
	}
}
