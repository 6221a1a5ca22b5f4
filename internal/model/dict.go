/**
 * 模型:字典模型
 * @author: sun977
 * @date: 2025.09.18
 * @description: 字典类型与字典数据模型，二者通过 dict_type 编码字符串逻辑关联(非外键)
 * @func: DictType / DictData 结构体
 */
package model

// DictType 字典类型
type DictType struct {
	DictID   int64  `json:"dictId" gorm:"column:dict_id;primaryKey;autoIncrement;comment:字典主键"`
	DictName string `json:"dictName" gorm:"size:100;not null;comment:字典名称"`
	DictType string `json:"dictType" gorm:"column:dict_type;size:100;not null;index;comment:字典类型编码"` // 唯一性在非删除行内保证
	Status   string `json:"status" gorm:"size:1;default:0;comment:状态:0-正常,1-停用"`
	Remark   string `json:"remark" gorm:"type:text;comment:备注"`
	BaseModel
}

// TableName 指定字典类型表名
func (DictType) TableName() string {
	return "sys_dict_type"
}

// DictData 字典数据
type DictData struct {
	DictCode  int64  `json:"dictCode" gorm:"column:dict_code;primaryKey;autoIncrement;comment:字典编码"`
	DictSort  int    `json:"dictSort" gorm:"default:0;comment:字典排序"`
	DictLabel string `json:"dictLabel" gorm:"size:100;not null;comment:字典标签"`
	DictValue string `json:"dictValue" gorm:"size:100;not null;comment:字典键值"`
	DictType  string `json:"dictType" gorm:"column:dict_type;size:100;index;comment:所属字典类型编码"`
	CssClass  string `json:"cssClass" gorm:"size:100;comment:样式属性"`
	ListClass string `json:"listClass" gorm:"size:20;default:default;comment:回显样式"`
	Status    string `json:"status" gorm:"size:1;default:0;comment:状态:0-正常,1-停用"`
	Remark    string `json:"remark" gorm:"type:text;comment:备注"`
	BaseModel
}

// TableName 指定字典数据表名
func (DictData) TableName() string {
	return "sys_dict_data"
}

// DictTypeOption 字典类型下拉选项(optionselect 响应，带缓存)
type DictTypeOption struct {
	DictID   int64  `json:"dictId"`
	DictName string `json:"dictName"`
	DictType string `json:"dictType"`
}
