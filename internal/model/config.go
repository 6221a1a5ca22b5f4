/**
 * 模型:参数配置模型
 * @author: sun977
 * @date: 2025.09.18
 * @description: 系统参数配置数据模型
 * @func: Config 结构体
 */
package model

// 系统内置标志(config_type)
const (
	ConfigBuiltIn = "Y" // 系统内置，禁止删除
	ConfigCustom  = "N" // 用户自定义
)

// Config 参数配置模型
type Config struct {
	ConfigID    int64  `json:"configId" gorm:"column:config_id;primaryKey;autoIncrement;comment:参数主键"`
	ConfigName  string `json:"configName" gorm:"size:100;not null;comment:参数名称"`
	ConfigKey   string `json:"configKey" gorm:"size:100;not null;index;comment:参数键名"` // 唯一性在非删除行内保证
	ConfigValue string `json:"configValue" gorm:"size:500;comment:参数键值"`
	ConfigType  string `json:"configType" gorm:"size:1;default:Y;comment:系统内置:Y-是,N-否"`
	Remark      string `json:"remark" gorm:"type:text;comment:备注"`
	BaseModel
}

// TableName 指定参数配置表名
func (Config) TableName() string {
	return "sys_config"
}

// IsBuiltIn 检查是否为系统内置参数
func (c *Config) IsBuiltIn() bool {
	return c.ConfigType == ConfigBuiltIn
}
