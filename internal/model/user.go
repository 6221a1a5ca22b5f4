/**
 * 模型:用户模型
 * @author: sun977
 * @date: 2025.09.18
 * @description: 用户数据模型，包含用户基本信息、状态管理和角色关联
 * @func: User / UserRole 结构体及相关方法
 */
package model

// 用户性别
const (
	SexMale    = "0" // 男
	SexFemale  = "1" // 女
	SexUnknown = "2" // 未知
)

// User 用户模型
type User struct {
	ID          int64  `json:"userId" gorm:"column:id;primaryKey;autoIncrement;comment:用户ID"`
	Username    string `json:"userName" gorm:"column:username;size:50;not null;comment:用户名"` // 唯一性在非删除行内保证，由服务层校验
	NickName    string `json:"nickName" gorm:"size:30;comment:用户昵称"`
	Password    string `json:"-" gorm:"size:128;not null;comment:密码哈希"` // 加密存储，不在JSON中返回
	Phonenumber string `json:"phonenumber" gorm:"size:11;comment:手机号码"`
	Email       string `json:"email" gorm:"size:50;comment:邮箱"`
	Sex         string `json:"sex" gorm:"size:1;default:2;comment:性别:0-男,1-女,2-未知"`
	Avatar      string `json:"avatar" gorm:"size:100;comment:头像地址"`
	Status      string `json:"status" gorm:"size:1;default:0;index;comment:用户状态:0-正常,1-停用"`
	Remark      string `json:"remark" gorm:"size:500;comment:备注"`
	DeptID      *int64 `json:"deptId" gorm:"column:dept_id;index;comment:部门ID"` // 可为空，使用指针区分未分配部门
	BaseModel

	// 关联关系
	Dept  *Dept   `json:"dept,omitempty" gorm:"foreignKey:DeptID;references:DeptID"`
	Roles []*Role `json:"roles,omitempty" gorm:"many2many:sys_user_role;joinForeignKey:user_id;joinReferences:role_id"`
}

// TableName 指定用户表名
func (User) TableName() string {
	return "sys_user"
}

// IsActive 检查用户是否处于正常状态
func (u *User) IsActive() bool {
	return u.Status == StatusNormal
}

// HasRoleKey 检查用户是否拥有指定权限字符的角色
func (u *User) HasRoleKey(roleKey string) bool {
	for _, role := range u.Roles {
		if role.RoleKey == roleKey {
			return true
		}
	}
	return false
}

// UserRole 用户角色关联表
type UserRole struct {
	UserID int64 `json:"userId" gorm:"column:user_id;primaryKey"` // 联合主键
	RoleID int64 `json:"roleId" gorm:"column:role_id;primaryKey"` // 联合主键
}

// TableName 指定用户角色关联表名
func (UserRole) TableName() string {
	return "sys_user_role"
}
