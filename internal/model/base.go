/**
 * 模型:基础模型
 * @author: sun977
 * @date: 2025.09.18
 * @description: 公共审计字段与通用状态常量，所有业务表复用
 * @func: BaseModel 结构体及软删除/状态常量
 */
package model

import "time"

// 软删除标志
const (
	DelFlagNormal  = "0" // 正常
	DelFlagDeleted = "1" // 已删除(逻辑删除，行保留)
)

// 通用状态
const (
	StatusNormal   = "0" // 正常
	StatusDisabled = "1" // 停用
)

// BaseModel 公共审计字段
// 所有业务实体内嵌该结构体，创建/更新时由服务层从当前登录人填充 CreateBy/UpdateBy，
// 时间戳由 GORM 自动维护。删除统一走 DelFlag 软删除，默认查询必须排除已删除行。
type BaseModel struct {
	CreateBy   string    `json:"createBy" gorm:"size:64;comment:创建者"`
	UpdateBy   string    `json:"updateBy" gorm:"size:64;comment:更新者"`
	CreateTime time.Time `json:"createTime" gorm:"autoCreateTime;comment:创建时间"`
	UpdateTime time.Time `json:"updateTime" gorm:"autoUpdateTime;comment:更新时间"`
	DelFlag    string    `json:"-" gorm:"size:1;default:0;index;comment:删除标志:0-正常,1-删除"`
}

// IsDeleted 判断行是否已被软删除
func (m *BaseModel) IsDeleted() bool {
	return m.DelFlag == DelFlagDeleted
}
