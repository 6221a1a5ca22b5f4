package auth

import (
	"context"
	"testing"
	"time"

	"adminmaster/internal/model"
	"adminmaster/internal/pkg/auth"
	"adminmaster/internal/repository/mysql"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	err = db.AutoMigrate(&model.Dept{}, &model.User{}, &model.Role{}, &model.UserRole{}, &model.Menu{}, &model.RoleMenu{})
	require.NoError(t, err)
	return db
}

func newTestSessionService(db *gorm.DB) *SessionService {
	pm := auth.NewPasswordManager(&auth.PasswordConfig{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	jm := auth.NewJWTManager("unit-test-secret-key-0123456789abcdef", "adminmaster", time.Hour)
	return NewSessionService(mysql.NewUserRepository(db), mysql.NewMenuRepository(db), pm, jm)
}

// seedUser 写入携带指定角色的可登录用户，密码为明文入参的哈希
func seedUser(t *testing.T, db *gorm.DB, svc *SessionService, username, password, status string, roles ...*model.Role) *model.User {
	t.Helper()
	hash, err := svc.passwordManager.HashPassword(password)
	require.NoError(t, err)

	user := &model.User{Username: username, NickName: username, Password: hash, Status: status}
	require.NoError(t, db.Create(user).Error)
	for _, role := range roles {
		require.NoError(t, db.Create(&model.UserRole{UserID: user.ID, RoleID: role.RoleID}).Error)
	}
	return user
}

func TestLoginSuccess(t *testing.T) {
	db := newTestDB(t)
	svc := newTestSessionService(db)

	role := &model.Role{RoleName: "运维", RoleKey: "ops", Status: model.StatusNormal}
	require.NoError(t, db.Create(role).Error)
	user := seedUser(t, db, svc, "zhangsan", "Passw0rd", model.StatusNormal, role)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Username: "zhangsan", Password: "Passw0rd"}, "127.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	// 令牌携带用户身份与角色标识
	claims, err := svc.jwtManager.ValidateAccessToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "zhangsan", claims.Username)
	assert.Equal(t, []string{"ops"}, claims.RoleKeys)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newTestSessionService(newTestDB(t))

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "nobody", Password: "Passw0rd"}, "127.0.0.1")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := newTestSessionService(db)
	seedUser(t, db, svc, "zhangsan", "Passw0rd", model.StatusNormal)

	// 密码错误与用户不存在返回同一错误
	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "zhangsan", Password: "WrongPwd1"}, "127.0.0.1")
	require.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestLoginDisabledUser(t *testing.T) {
	db := newTestDB(t)
	svc := newTestSessionService(db)
	seedUser(t, db, svc, "zhangsan", "Passw0rd", model.StatusDisabled)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Username: "zhangsan", Password: "Passw0rd"}, "127.0.0.1")
	require.ErrorIs(t, err, model.ErrUserDisabled)
}

func TestLoginNilRequest(t *testing.T) {
	svc := newTestSessionService(newTestDB(t))

	_, err := svc.Login(context.Background(), nil, "127.0.0.1")
	require.Error(t, err)
}

func TestGetInfoAdminWildcard(t *testing.T) {
	db := newTestDB(t)
	svc := newTestSessionService(db)

	admin := &model.Role{RoleName: "超级管理员", RoleKey: model.AdminRoleKey, Status: model.StatusNormal}
	require.NoError(t, db.Create(admin).Error)
	user := seedUser(t, db, svc, "superuser", "Passw0rd", model.StatusNormal, admin)

	info, err := svc.GetInfo(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{model.AdminRoleKey}, info.Roles)
	assert.Equal(t, []string{"*:*:*"}, info.Permissions)
	assert.Equal(t, "superuser", info.User.UserName)
}

func TestGetInfoPermissionsDeduped(t *testing.T) {
	db := newTestDB(t)
	svc := newTestSessionService(db)

	role := &model.Role{RoleName: "运维", RoleKey: "ops", Status: model.StatusNormal}
	require.NoError(t, db.Create(role).Error)
	user := seedUser(t, db, svc, "zhangsan", "Passw0rd", model.StatusNormal, role)

	menus := []*model.Menu{
		{MenuName: "用户查询", MenuType: model.MenuTypeButton, Perms: "system:user:query", Status: model.StatusNormal, Visible: model.VisibleShown, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled},
		{MenuName: "用户列表", MenuType: model.MenuTypeMenu, Perms: "system:user:query", Status: model.StatusNormal, Visible: model.VisibleShown, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled},
		{MenuName: "用户新增", MenuType: model.MenuTypeButton, Perms: "system:user:add", Status: model.StatusNormal, Visible: model.VisibleShown, IsFrame: model.FrameInternal, IsCache: model.CacheEnabled},
	}
	for _, m := range menus {
		require.NoError(t, db.Create(m).Error)
		require.NoError(t, db.Create(&model.RoleMenu{RoleID: role.RoleID, MenuID: m.MenuID}).Error)
	}

	info, err := svc.GetInfo(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ops"}, info.Roles)
	assert.ElementsMatch(t, []string{"system:user:query", "system:user:add"}, info.Permissions)
}

func TestGetInfoNotFound(t *testing.T) {
	svc := newTestSessionService(newTestDB(t))

	_, err := svc.GetInfo(context.Background(), 777)
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "777")
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	svc := newTestSessionService(newTestDB(t))
	require.NoError(t, svc.Logout(context.Background(), 1, "zhangsan", "127.0.0.1"))
}
