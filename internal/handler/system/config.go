/*
 * @author: sun977
 * @date: 2025.09.13
 * @description: 参数配置接口处理器
 * @func:
 * 1.参数列表/详情/增删改
 * 2.按参数键名查询参数值(走缓存)
 * 3.参数缓存刷新
 */
package system

import (
	"adminmaster/internal/model"
	"adminmaster/internal/pkg/utils"
	"adminmaster/internal/service/system"

	"github.com/gin-gonic/gin"
)

// ConfigHandler 参数配置处理器
type ConfigHandler struct {
	configService *system.ConfigService
}

// NewConfigHandler 创建参数配置处理器实例
func NewConfigHandler(configService *system.ConfigService) *ConfigHandler {
	return &ConfigHandler{configService: configService}
}

// List 参数列表
// GET /system/config/list
func (h *ConfigHandler) List(c *gin.Context) {
	var query model.ConfigQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBadRequest(c, err)
		return
	}

	configs, total, err := h.configService.ListConfigs(c.Request.Context(), &query)
	if err != nil {
		fail(c, err)
		return
	}
	okPage(c, configs, total)
}

// Get 参数详情
// GET /system/config/:configId
func (h *ConfigHandler) Get(c *gin.Context) {
	configID, valid := pathID(c, "configId")
	if !valid {
		return
	}

	config, err := h.configService.GetConfig(c.Request.Context(), configID)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, config)
}

// GetByKey 按参数键名查询参数值(缓存优先)
// GET /system/config/configKey/:configKey
func (h *ConfigHandler) GetByKey(c *gin.Context) {
	configKey := c.Param("configKey")
	if configKey == "" {
		fail(c, model.NewValidationError("configKey", "参数键名不能为空"))
		return
	}

	value, err := h.configService.GetConfigValueByKey(c.Request.Context(), configKey)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(200, model.APIResponse{Code: 200, Msg: value})
}

// Create 创建参数
// POST /system/config
func (h *ConfigHandler) Create(c *gin.Context) {
	var req model.CreateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	config, err := h.configService.CreateConfig(c.Request.Context(), &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, config)
}

// Update 更新参数
// PUT /system/config/:configId 及 PUT /system/config (body-id 兼容路径)
func (h *ConfigHandler) Update(c *gin.Context) {
	var configID int64
	if c.Param("configId") != "" {
		id, valid := pathID(c, "configId")
		if !valid {
			return
		}
		configID = id
	}

	var req model.UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	config, err := h.configService.UpdateConfig(c.Request.Context(), configID, &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, config)
}

// Delete 删除参数(软删除，内置参数拒绝删除)
// DELETE /system/config/:configId
func (h *ConfigHandler) Delete(c *gin.Context) {
	configID, valid := pathID(c, "configId")
	if !valid {
		return
	}

	if err := h.configService.DeleteConfig(c.Request.Context(), configID, utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// RefreshCache 清除参数值缓存
// DELETE /system/config/refreshCache
func (h *ConfigHandler) RefreshCache(c *gin.Context) {
	if err := h.configService.RefreshCache(c.Request.Context(), utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}
