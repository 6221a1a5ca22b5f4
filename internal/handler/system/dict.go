/*
 * @author: sun977
 * @date: 2025.09.13
 * @description: 字典管理接口处理器
 * @func:
 * 1.字典类型列表/详情/增删改/下拉选项/缓存刷新
 * 2.字典数据列表/详情/增删改/按类型查询
 */
package system

import (
	"adminmaster/internal/model"
	"adminmaster/internal/pkg/utils"
	"adminmaster/internal/service/system"

	"github.com/gin-gonic/gin"
)

// DictHandler 字典管理处理器(类型与数据)
type DictHandler struct {
	dictService *system.DictService
}

// NewDictHandler 创建字典管理处理器实例
func NewDictHandler(dictService *system.DictService) *DictHandler {
	return &DictHandler{dictService: dictService}
}

// TypeList 字典类型列表
// GET /system/dict/type/list
func (h *DictHandler) TypeList(c *gin.Context) {
	var query model.DictTypeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBadRequest(c, err)
		return
	}

	types, total, err := h.dictService.ListDictTypes(c.Request.Context(), &query)
	if err != nil {
		fail(c, err)
		return
	}
	okPage(c, types, total)
}

// TypeOptionSelect 全部字典类型下拉选项(走缓存)
// GET /system/dict/type/optionselect
func (h *DictHandler) TypeOptionSelect(c *gin.Context) {
	types, err := h.dictService.OptionSelect(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, types)
}

// TypeGet 字典类型详情
// GET /system/dict/type/:dictId
func (h *DictHandler) TypeGet(c *gin.Context) {
	dictID, valid := pathID(c, "dictId")
	if !valid {
		return
	}

	dictType, err := h.dictService.GetDictType(c.Request.Context(), dictID)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, dictType)
}

// TypeCreate 创建字典类型
// POST /system/dict/type
func (h *DictHandler) TypeCreate(c *gin.Context) {
	var req model.CreateDictTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	dictType, err := h.dictService.CreateDictType(c.Request.Context(), &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, dictType)
}

// TypeUpdate 更新字典类型(类型编码变更时同步字典数据)
// PUT /system/dict/type/:dictId 及 PUT /system/dict/type (body-id 兼容路径)
func (h *DictHandler) TypeUpdate(c *gin.Context) {
	var dictID int64
	if c.Param("dictId") != "" {
		id, valid := pathID(c, "dictId")
		if !valid {
			return
		}
		dictID = id
	}

	var req model.UpdateDictTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	dictType, err := h.dictService.UpdateDictType(c.Request.Context(), dictID, &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, dictType)
}

// TypeDelete 删除字典类型(软删除，仍有字典数据时拒绝)
// DELETE /system/dict/type/:dictId
func (h *DictHandler) TypeDelete(c *gin.Context) {
	dictID, valid := pathID(c, "dictId")
	if !valid {
		return
	}

	if err := h.dictService.DeleteDictType(c.Request.Context(), dictID, utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// TypeRefreshCache 清除字典下拉选项缓存
// DELETE /system/dict/type/refreshCache
func (h *DictHandler) TypeRefreshCache(c *gin.Context) {
	if err := h.dictService.RefreshCache(c.Request.Context(), utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}

// DataList 字典数据列表
// GET /system/dict/data/list
func (h *DictHandler) DataList(c *gin.Context) {
	var query model.DictDataQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		failBadRequest(c, err)
		return
	}

	data, total, err := h.dictService.ListDictData(c.Request.Context(), &query)
	if err != nil {
		fail(c, err)
		return
	}
	okPage(c, data, total)
}

// DataByType 按字典类型查询字典数据(前端下拉框数据源)
// GET /system/dict/data/type/:dictType
func (h *DictHandler) DataByType(c *gin.Context) {
	dictType := c.Param("dictType")
	if dictType == "" {
		fail(c, model.NewValidationError("dictType", "字典类型不能为空"))
		return
	}

	data, err := h.dictService.GetDictDataByType(c.Request.Context(), dictType)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, data)
}

// DataGet 字典数据详情
// GET /system/dict/data/:dictCode
func (h *DictHandler) DataGet(c *gin.Context) {
	dictCode, valid := pathID(c, "dictCode")
	if !valid {
		return
	}

	data, err := h.dictService.GetDictData(c.Request.Context(), dictCode)
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, data)
}

// DataCreate 创建字典数据
// POST /system/dict/data
func (h *DictHandler) DataCreate(c *gin.Context) {
	var req model.CreateDictDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	data, err := h.dictService.CreateDictData(c.Request.Context(), &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, data)
}

// DataUpdate 更新字典数据
// PUT /system/dict/data/:dictCode 及 PUT /system/dict/data (body-id 兼容路径)
func (h *DictHandler) DataUpdate(c *gin.Context) {
	var dictCode int64
	if c.Param("dictCode") != "" {
		id, valid := pathID(c, "dictCode")
		if !valid {
			return
		}
		dictCode = id
	}

	var req model.UpdateDictDataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failBadRequest(c, err)
		return
	}

	data, err := h.dictService.UpdateDictData(c.Request.Context(), dictCode, &req, utils.GetCurrentUsername(c))
	if err != nil {
		fail(c, err)
		return
	}
	okData(c, data)
}

// DataDelete 删除字典数据(软删除)
// DELETE /system/dict/data/:dictCode
func (h *DictHandler) DataDelete(c *gin.Context) {
	dictCode, valid := pathID(c, "dictCode")
	if !valid {
		return
	}

	if err := h.dictService.DeleteDictData(c.Request.Context(), dictCode, utils.GetCurrentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	ok(c)
}
