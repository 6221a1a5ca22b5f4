/*
 * 服务层测试公共设施
 * 使用内存 SQLite 驱动，缓存仓库不注入 Redis 客户端(退化为空操作)
 */
package system

import (
	"testing"

	"adminmaster/internal/model"
	"adminmaster/internal/pkg/auth"
	"adminmaster/internal/repository/mysql"
	"adminmaster/internal/repository/redis"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 打开内存数据库并迁移全部业务表
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&model.Dept{},
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Menu{},
		&model.RoleMenu{},
		&model.DictType{},
		&model.DictData{},
		&model.Config{},
	)
	require.NoError(t, err)
	return db
}

// noopCache 返回未接入 Redis 的缓存仓库，所有操作退化为未命中/空操作
func noopCache() *redis.CacheRepository {
	return redis.NewCacheRepository(nil)
}

func newTestDeptService(db *gorm.DB) *DeptService {
	return NewDeptService(mysql.NewDeptRepository(db))
}

func newTestMenuService(db *gorm.DB) *MenuService {
	return NewMenuService(mysql.NewMenuRepository(db), mysql.NewRoleRepository(db), noopCache())
}

func newTestRoleService(db *gorm.DB) *RoleService {
	return NewRoleService(mysql.NewRoleRepository(db), mysql.NewUserRepository(db), mysql.NewMenuRepository(db))
}

func newTestDictService(db *gorm.DB) *DictService {
	return NewDictService(mysql.NewDictRepository(db), noopCache())
}

func newTestConfigService(db *gorm.DB) *ConfigService {
	return NewConfigService(mysql.NewConfigRepository(db), noopCache())
}

// newTestUserService 使用低强度Argon2参数，避免测试被哈希计算拖慢
func newTestUserService(db *gorm.DB) *UserService {
	pm := auth.NewPasswordManager(&auth.PasswordConfig{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
	return NewUserService(
		mysql.NewUserRepository(db),
		mysql.NewRoleRepository(db),
		mysql.NewDeptRepository(db),
		newTestDeptService(db),
		pm,
	)
}

// mustCreate 直接落库一条记录(绕过服务层校验的测试数据准备)
func mustCreate(t *testing.T, db *gorm.DB, value interface{}) {
	t.Helper()
	require.NoError(t, db.Create(value).Error)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func int64Ptr(i int64) *int64 { return &i }
