/*
 * @author: sun977
 * @date: 2025.09.13
 * @description: 处理器公共响应辅助:统一 {code,msg} 信封与错误翻译
 * @note: 成功与验证失败均为 HTTP 200，错误仅以 code 区分；
 *        NotFound/Conflict 同时反映在HTTP状态上
 */
package system

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"adminmaster/internal/model"

	"github.com/gin-gonic/gin"
)

// ok 成功响应(无数据)
func ok(c *gin.Context) {
	c.JSON(http.StatusOK, model.APIResponse{Code: 200, Msg: "操作成功"})
}

// okData 成功响应(携带数据)
func okData(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, model.APIResponse{Code: 200, Msg: "操作成功", Data: data})
}

// okPage 分页列表响应
func okPage(c *gin.Context, rows interface{}, total int64) {
	c.JSON(http.StatusOK, model.PageResponse{Code: 200, Msg: "操作成功", Total: total, Rows: rows})
}

// fail 按错误分类翻译为统一错误信封
func fail(c *gin.Context, err error) {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		// 字段级验证错误，回显最先发现的一条
		c.JSON(http.StatusOK, model.ErrorResponse{Code: 400, Message: ve.Message})
	case errors.Is(err, model.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Code: 404, Message: err.Error()})
	case errors.Is(err, model.ErrConflict):
		c.JSON(http.StatusConflict, model.ErrorResponse{Code: 409, Message: err.Error()})
	case errors.Is(err, model.ErrForbiddenReference):
		c.JSON(http.StatusOK, model.ErrorResponse{Code: 500, Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Code: 500, Message: "服务器内部错误"})
	}
}

// failBadRequest 请求体解析失败
func failBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusOK, model.ErrorResponse{Code: 400, Message: "请求参数格式错误"})
}

// pathID 解析路径中的整型ID参数
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusOK, model.ErrorResponse{Code: 400, Message: name + " 参数非法"})
		return 0, false
	}
	return id, true
}

// queryIDs 解析查询串中的逗号分隔ID列表(cancelAll/selectAll 使用)
func queryIDs(c *gin.Context, name string) ([]int64, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusOK, model.ErrorResponse{Code: 400, Message: name + " 参数不能为空"})
		return nil, false
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusOK, model.ErrorResponse{Code: 400, Message: name + " 参数非法"})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

// queryID 解析查询串中的单个整型ID
func queryID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusOK, model.ErrorResponse{Code: 400, Message: name + " 参数非法"})
		return 0, false
	}
	return id, true
}
