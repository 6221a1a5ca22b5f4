/*
*
  - 数据库迁移工具
  - @author: sun977
  - @date: 2025.09.15
  - @description: 数据库模型迁移和初始数据填充工具
  - @usage: go run main.go -env=dev -seed=true -drop=false
    -drop
    是否先删除表（危险操作）
    -env string
    环境标识 (test, dev, prod) (default "dev")
    -seed
    是否填充初始数据 (default true)
    -verbose
    是否显示详细日志

示例:
main -env=dev -seed=true     # 开发环境迁移并填充初始数据
main -env=prod -seed=false   # 生产环境仅迁移表结构
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"adminmaster/internal/config"
	"adminmaster/internal/model"
	"adminmaster/internal/pkg/auth"
	"adminmaster/internal/pkg/database"
	"adminmaster/internal/pkg/logger"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MigrateOptions 迁移选项配置
type MigrateOptions struct {
	Environment string // 环境标识: test, dev, prod
	SeedData    bool   // 是否填充初始数据
	DropFirst   bool   // 是否先删除表（危险操作）
	Verbose     bool   // 是否显示详细日志
}

// migrateModels 参与迁移的全部表模型
// 关联表显式列出，保证联合主键按模型定义建表
var migrateModels = []interface{}{
	&model.Dept{},
	&model.User{},
	&model.Role{},
	&model.UserRole{},
	&model.Menu{},
	&model.RoleMenu{},
	&model.DictType{},
	&model.DictData{},
	&model.Config{},
}

func main() {
	// 解析命令行参数
	opts := parseFlags()

	// 加载配置
	cfg, err := config.LoadConfig("", opts.Environment)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	// 初始化日志管理器
	logManager, err := logger.InitLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"path":        "cmd/migrate/main.go",
		"operation":   "database_migration",
		"func_name":   "main",
		"environment": opts.Environment,
		"seed_data":   opts.SeedData,
		"drop_first":  opts.DropFirst,
	}).Info("开始数据库迁移")

	// 初始化数据库连接
	db, err := database.NewMySQLConnection(&cfg.Database.MySQL)
	if err != nil {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "database_connection",
			"func_name": "main",
			"error":     err.Error(),
		}).Fatal("数据库连接失败")
	}

	// 执行迁移
	if err := performMigration(db, opts, logManager); err != nil {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "database_migration",
			"func_name": "main",
			"error":     err.Error(),
		}).Fatal("数据库迁移失败")
	}

	logManager.GetLogger().WithFields(logrus.Fields{
		"path":      "cmd/migrate/main.go",
		"operation": "database_migration",
		"func_name": "main",
	}).Info("数据库迁移完成")
}

// parseFlags 解析命令行参数
func parseFlags() *MigrateOptions {
	opts := &MigrateOptions{}

	flag.StringVar(&opts.Environment, "env", "dev", "环境标识 (test, dev, prod)")
	flag.BoolVar(&opts.SeedData, "seed", true, "是否填充初始数据")
	flag.BoolVar(&opts.DropFirst, "drop", false, "是否先删除表（危险操作）")
	flag.BoolVar(&opts.Verbose, "verbose", false, "是否显示详细日志")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "AdminMaster 数据库迁移工具\n\n")
		fmt.Fprintf(os.Stderr, "用法: %s [选项]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "选项:\n")
		flag.PrintDefaults()
	}

	flag.Parse()
	return opts
}

// performMigration 执行迁移流程: 删表(可选) -> 建表 -> 填充初始数据(可选)
func performMigration(db *gorm.DB, opts *MigrateOptions, logManager *logger.LoggerManager) error {
	if opts.DropFirst {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "drop_tables",
			"func_name": "performMigration",
		}).Warn("删除已有表")
		if err := db.Migrator().DropTable(migrateModels...); err != nil {
			return fmt.Errorf("failed to drop tables: %w", err)
		}
	}

	if err := db.AutoMigrate(migrateModels...); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}

	if opts.SeedData {
		if err := seedInitialData(db, logManager); err != nil {
			return fmt.Errorf("failed to seed data: %w", err)
		}
	}

	return nil
}

// seedInitialData 填充初始数据
// 幂等: 管理员用户已存在时跳过全部填充
func seedInitialData(db *gorm.DB, logManager *logger.LoggerManager) error {
	var count int64
	if err := db.Model(&model.User{}).Where("username = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "seed_data",
			"func_name": "seedInitialData",
		}).Info("初始数据已存在，跳过填充")
		return nil
	}

	passwordManager := auth.NewPasswordManager(nil)
	hashedPassword, err := passwordManager.HashPassword("Admin@123456")
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// 根部门
		rootDept := &model.Dept{
			DeptID:    100,
			ParentID:  0,
			Ancestors: "0",
			DeptName:  "AdminMaster科技",
			OrderNum:  0,
			Leader:    "admin",
			Status:    model.StatusNormal,
			BaseModel: model.BaseModel{CreateBy: "admin"},
		}
		childDepts := []*model.Dept{
			{DeptID: 101, ParentID: 100, Ancestors: "0,100", DeptName: "研发部门", OrderNum: 1, Status: model.StatusNormal, BaseModel: model.BaseModel{CreateBy: "admin"}},
			{DeptID: 102, ParentID: 100, Ancestors: "0,100", DeptName: "运维部门", OrderNum: 2, Status: model.StatusNormal, BaseModel: model.BaseModel{CreateBy: "admin"}},
		}
		if err := tx.Create(rootDept).Error; err != nil {
			return err
		}
		if err := tx.Create(&childDepts).Error; err != nil {
			return err
		}

		// 角色
		roles := []*model.Role{
			{RoleID: 1, RoleName: "超级管理员", RoleKey: model.AdminRoleKey, RoleSort: 1, DataScope: model.DataScopeAll, Status: model.StatusNormal, Remark: "超级管理员", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{RoleID: 2, RoleName: "普通角色", RoleKey: "common", RoleSort: 2, DataScope: model.DataScopeDeptBelow, Status: model.StatusNormal, Remark: "普通角色", BaseModel: model.BaseModel{CreateBy: "admin"}},
		}
		if err := tx.Create(&roles).Error; err != nil {
			return err
		}

		// 管理员用户
		deptID := rootDept.DeptID
		adminUser := &model.User{
			ID:        1,
			Username:  "admin",
			NickName:  "超级管理员",
			Password:  hashedPassword,
			Email:     "admin@example.com",
			Sex:       model.SexMale,
			Status:    model.StatusNormal,
			Remark:    "管理员",
			DeptID:    &deptID,
			BaseModel: model.BaseModel{CreateBy: "admin"},
		}
		if err := tx.Create(adminUser).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.UserRole{UserID: 1, RoleID: 1}).Error; err != nil {
			return err
		}

		// 系统管理菜单树
		menus := []*model.Menu{
			{MenuID: 1, ParentID: 0, MenuName: "系统管理", OrderNum: 1, Path: "system", MenuType: model.MenuTypeDir, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Icon: "system", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{MenuID: 100, ParentID: 1, MenuName: "用户管理", OrderNum: 1, Path: "user", Component: "system/user/index", MenuType: model.MenuTypeMenu, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Perms: "system:user:list", Icon: "user", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{MenuID: 101, ParentID: 1, MenuName: "角色管理", OrderNum: 2, Path: "role", Component: "system/role/index", MenuType: model.MenuTypeMenu, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Perms: "system:role:list", Icon: "peoples", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{MenuID: 102, ParentID: 1, MenuName: "菜单管理", OrderNum: 3, Path: "menu", Component: "system/menu/index", MenuType: model.MenuTypeMenu, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Perms: "system:menu:list", Icon: "tree-table", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{MenuID: 103, ParentID: 1, MenuName: "部门管理", OrderNum: 4, Path: "dept", Component: "system/dept/index", MenuType: model.MenuTypeMenu, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Perms: "system:dept:list", Icon: "tree", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{MenuID: 104, ParentID: 1, MenuName: "字典管理", OrderNum: 5, Path: "dict", Component: "system/dict/index", MenuType: model.MenuTypeMenu, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Perms: "system:dict:list", Icon: "dict", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{MenuID: 105, ParentID: 1, MenuName: "参数设置", OrderNum: 6, Path: "config", Component: "system/config/index", MenuType: model.MenuTypeMenu, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Perms: "system:config:list", Icon: "edit", BaseModel: model.BaseModel{CreateBy: "admin"}},
			// 用户管理按钮
			{MenuID: 1000, ParentID: 100, MenuName: "用户查询", OrderNum: 1, MenuType: model.MenuTypeButton, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Perms: "system:user:query", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{MenuID: 1001, ParentID: 100, MenuName: "用户新增", OrderNum: 2, MenuType: model.MenuTypeButton, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Perms: "system:user:add", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{MenuID: 1002, ParentID: 100, MenuName: "用户修改", OrderNum: 3, MenuType: model.MenuTypeButton, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Perms: "system:user:edit", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{MenuID: 1003, ParentID: 100, MenuName: "用户删除", OrderNum: 4, MenuType: model.MenuTypeButton, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Perms: "system:user:remove", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{MenuID: 1004, ParentID: 100, MenuName: "重置密码", OrderNum: 5, MenuType: model.MenuTypeButton, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled, Visible: model.VisibleShown, Status: model.StatusNormal, Perms: "system:user:resetPwd", BaseModel: model.BaseModel{CreateBy: "admin"}},
		}
		if err := tx.Create(&menus).Error; err != nil {
			return err
		}

		// 普通角色授予系统管理下的查询入口
		roleMenus := []*model.RoleMenu{
			{RoleID: 2, MenuID: 1},
			{RoleID: 2, MenuID: 100},
			{RoleID: 2, MenuID: 1000},
		}
		if err := tx.Create(&roleMenus).Error; err != nil {
			return err
		}

		// 字典类型与数据
		dictTypes := []*model.DictType{
			{DictName: "用户性别", DictType: "sys_user_sex", Status: model.StatusNormal, Remark: "用户性别列表", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{DictName: "系统开关", DictType: "sys_normal_disable", Status: model.StatusNormal, Remark: "系统开关列表", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{DictName: "菜单状态", DictType: "sys_show_hide", Status: model.StatusNormal, Remark: "菜单状态列表", BaseModel: model.BaseModel{CreateBy: "admin"}},
		}
		if err := tx.Create(&dictTypes).Error; err != nil {
			return err
		}
		dictData := []*model.DictData{
			{DictSort: 1, DictLabel: "男", DictValue: "0", DictType: "sys_user_sex", Status: model.StatusNormal, BaseModel: model.BaseModel{CreateBy: "admin"}},
			{DictSort: 2, DictLabel: "女", DictValue: "1", DictType: "sys_user_sex", Status: model.StatusNormal, BaseModel: model.BaseModel{CreateBy: "admin"}},
			{DictSort: 3, DictLabel: "未知", DictValue: "2", DictType: "sys_user_sex", Status: model.StatusNormal, BaseModel: model.BaseModel{CreateBy: "admin"}},
			{DictSort: 1, DictLabel: "正常", DictValue: "0", DictType: "sys_normal_disable", ListClass: "primary", Status: model.StatusNormal, BaseModel: model.BaseModel{CreateBy: "admin"}},
			{DictSort: 2, DictLabel: "停用", DictValue: "1", DictType: "sys_normal_disable", ListClass: "danger", Status: model.StatusNormal, BaseModel: model.BaseModel{CreateBy: "admin"}},
			{DictSort: 1, DictLabel: "显示", DictValue: "0", DictType: "sys_show_hide", ListClass: "primary", Status: model.StatusNormal, BaseModel: model.BaseModel{CreateBy: "admin"}},
			{DictSort: 2, DictLabel: "隐藏", DictValue: "1", DictType: "sys_show_hide", ListClass: "danger", Status: model.StatusNormal, BaseModel: model.BaseModel{CreateBy: "admin"}},
		}
		if err := tx.Create(&dictData).Error; err != nil {
			return err
		}

		// 系统参数
		configs := []*model.Config{
			{ConfigName: "用户管理-账号初始密码", ConfigKey: "sys.user.initPassword", ConfigValue: "Admin@123456", ConfigType: model.ConfigBuiltIn, Remark: "初始化密码", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{ConfigName: "账号自助-验证码开关", ConfigKey: "sys.account.captchaEnabled", ConfigValue: "true", ConfigType: model.ConfigBuiltIn, Remark: "是否开启验证码功能", BaseModel: model.BaseModel{CreateBy: "admin"}},
			{ConfigName: "账号自助-是否开启用户注册功能", ConfigKey: "sys.account.registerUser", ConfigValue: "false", ConfigType: model.ConfigBuiltIn, Remark: "是否开启注册用户功能", BaseModel: model.BaseModel{CreateBy: "admin"}},
		}
		if err := tx.Create(&configs).Error; err != nil {
			return err
		}

		logManager.GetLogger().WithFields(logrus.Fields{
			"path":      "cmd/migrate/main.go",
			"operation": "seed_data",
			"func_name": "seedInitialData",
		}).Info("初始数据填充完成")
		return nil
	})
}
