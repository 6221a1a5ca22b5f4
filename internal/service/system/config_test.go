package system

import (
	"context"
	"testing"

	"adminmaster/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCreateKeyConflict(t *testing.T) {
	svc := newTestConfigService(newTestDB(t))
	ctx := context.Background()

	created, err := svc.CreateConfig(ctx, &model.CreateConfigRequest{
		ConfigName:  "主框架页-默认皮肤样式名称",
		ConfigKey:   "sys.index.skinName",
		ConfigValue: "skin-blue",
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, model.ConfigCustom, created.ConfigType)

	_, err = svc.CreateConfig(ctx, &model.CreateConfigRequest{
		ConfigName: "重复键",
		ConfigKey:  "sys.index.skinName",
	}, "admin")
	require.ErrorIs(t, err, model.ErrConflict)
}

func TestConfigGetValueByKey(t *testing.T) {
	svc := newTestConfigService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.CreateConfig(ctx, &model.CreateConfigRequest{
		ConfigName:  "账号自助-是否开启用户注册功能",
		ConfigKey:   "sys.account.registerUser",
		ConfigValue: "false",
	}, "admin")
	require.NoError(t, err)

	value, err := svc.GetConfigValueByKey(ctx, "sys.account.registerUser")
	require.NoError(t, err)
	assert.Equal(t, "false", value)

	_, err = svc.GetConfigValueByKey(ctx, "no.such.key")
	require.ErrorIs(t, err, model.ErrNotFound)
	assert.Contains(t, err.Error(), "no.such.key")
}

func TestConfigUpdateKeyConflictAndBodyID(t *testing.T) {
	svc := newTestConfigService(newTestDB(t))
	ctx := context.Background()

	a, err := svc.CreateConfig(ctx, &model.CreateConfigRequest{ConfigName: "a", ConfigKey: "sys.a"}, "admin")
	require.NoError(t, err)
	b, err := svc.CreateConfig(ctx, &model.CreateConfigRequest{ConfigName: "b", ConfigKey: "sys.b"}, "admin")
	require.NoError(t, err)

	// 改成已有键名冲突
	_, err = svc.UpdateConfig(ctx, b.ConfigID, &model.UpdateConfigRequest{ConfigKey: strPtr("sys.a")}, "admin")
	require.ErrorIs(t, err, model.ErrConflict)

	// body-id 兼容路径
	updated, err := svc.UpdateConfig(ctx, 0, &model.UpdateConfigRequest{ConfigID: a.ConfigID, ConfigValue: strPtr("v2")}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.ConfigValue)

	_, err = svc.UpdateConfig(ctx, 0, &model.UpdateConfigRequest{ConfigValue: strPtr("x")}, "admin")
	require.Error(t, err)
	assert.True(t, model.IsValidationError(err))
}

func TestConfigDeleteBuiltInRefused(t *testing.T) {
	svc := newTestConfigService(newTestDB(t))
	ctx := context.Background()

	builtIn, err := svc.CreateConfig(ctx, &model.CreateConfigRequest{
		ConfigName: "主框架页-侧边栏主题",
		ConfigKey:  "sys.index.sideTheme",
		ConfigType: model.ConfigBuiltIn,
	}, "admin")
	require.NoError(t, err)

	err = svc.DeleteConfig(ctx, builtIn.ConfigID, "admin")
	require.ErrorIs(t, err, model.ErrForbiddenReference)

	custom, err := svc.CreateConfig(ctx, &model.CreateConfigRequest{ConfigName: "自定义", ConfigKey: "sys.custom"}, "admin")
	require.NoError(t, err)
	require.NoError(t, svc.DeleteConfig(ctx, custom.ConfigID, "admin"))

	_, err = svc.GetConfig(ctx, custom.ConfigID)
	require.ErrorIs(t, err, model.ErrNotFound)

	// 删除后键名可复用
	_, err = svc.CreateConfig(ctx, &model.CreateConfigRequest{ConfigName: "自定义", ConfigKey: "sys.custom"}, "admin")
	require.NoError(t, err)
}

func TestConfigListFilters(t *testing.T) {
	svc := newTestConfigService(newTestDB(t))
	ctx := context.Background()

	_, err := svc.CreateConfig(ctx, &model.CreateConfigRequest{ConfigName: "皮肤", ConfigKey: "sys.index.skinName", ConfigType: model.ConfigBuiltIn}, "admin")
	require.NoError(t, err)
	_, err = svc.CreateConfig(ctx, &model.CreateConfigRequest{ConfigName: "验证码开关", ConfigKey: "sys.account.captchaEnabled"}, "admin")
	require.NoError(t, err)

	_, total, err := svc.ListConfigs(ctx, &model.ConfigQuery{ConfigType: model.ConfigBuiltIn})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	_, total, err = svc.ListConfigs(ctx, &model.ConfigQuery{ConfigKey: "sys.account"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestConfigRefreshCacheNoop(t *testing.T) {
	svc := newTestConfigService(newTestDB(t))
	require.NoError(t, svc.RefreshCache(context.Background(), "admin"))
}
