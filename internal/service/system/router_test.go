package system

import (
	"testing"

	"adminmaster/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dirMenu(id, parentID int64, name, path string) *model.Menu {
	return &model.Menu{
		MenuID:   id,
		ParentID: parentID,
		MenuName: name,
		Path:     path,
		MenuType: model.MenuTypeDir,
		IsFrame:  model.FrameInternal,
		IsCache:  model.CacheEnabled,
		Visible:  model.VisibleShown,
		Status:   model.StatusNormal,
	}
}

func leafMenu(id, parentID int64, name, path, component string) *model.Menu {
	return &model.Menu{
		MenuID:    id,
		ParentID:  parentID,
		MenuName:  name,
		Path:      path,
		Component: component,
		MenuType:  model.MenuTypeMenu,
		IsFrame:   model.FrameInternal,
		IsCache:   model.CacheEnabled,
		Visible:   model.VisibleShown,
		Status:    model.StatusNormal,
	}
}

func TestProjectRoutersDirComponents(t *testing.T) {
	menus := []*model.Menu{
		dirMenu(1, 0, "系统管理", "system"),
		dirMenu(2, 1, "日志管理", "log"),
		leafMenu(100, 2, "操作日志", "operlog", "monitor/operlog/index"),
	}

	routers, err := ProjectRouters(menus)
	require.NoError(t, err)
	require.Len(t, routers, 1)

	root := routers[0]
	assert.Equal(t, model.ComponentLayout, root.Component)
	assert.True(t, root.AlwaysShow)
	require.NotNil(t, root.Children)
	require.Len(t, *root.Children, 1)

	sub := (*root.Children)[0]
	assert.Equal(t, model.ComponentParentView, sub.Component)
	require.NotNil(t, sub.Children)
	require.Len(t, *sub.Children, 1)

	leaf := (*sub.Children)[0]
	assert.Equal(t, "monitor/operlog/index", leaf.Component)
	assert.Nil(t, leaf.Children)
}

func TestProjectRoutersEmptyDirKeepsChildren(t *testing.T) {
	routers, err := ProjectRouters([]*model.Menu{dirMenu(1, 0, "空目录", "empty")})
	require.NoError(t, err)
	require.Len(t, routers, 1)

	// 空目录仍携带 children 字段，对应空数组
	require.NotNil(t, routers[0].Children)
	assert.Empty(t, *routers[0].Children)
}

func TestProjectRoutersButtonExcluded(t *testing.T) {
	button := &model.Menu{
		MenuID:   1000,
		ParentID: 1,
		MenuName: "用户查询",
		MenuType: model.MenuTypeButton,
		Perms:    "system:user:query",
		Status:   model.StatusNormal,
	}
	menus := []*model.Menu{
		dirMenu(1, 0, "系统管理", "system"),
		button,
	}

	routers, err := ProjectRouters(menus)
	require.NoError(t, err)
	require.Len(t, routers, 1)
	assert.Empty(t, *routers[0].Children)
}

func TestProjectRoutersExternalLink(t *testing.T) {
	external := leafMenu(200, 0, "官网", "https://example.com", "")
	external.IsFrame = model.FrameExternal

	routers, err := ProjectRouters([]*model.Menu{external})
	require.NoError(t, err)
	require.Len(t, routers, 1)
	assert.Equal(t, model.ComponentInnerLink, routers[0].Component)
}

func TestProjectRoutersLeafDefaultComponent(t *testing.T) {
	routers, err := ProjectRouters([]*model.Menu{leafMenu(300, 0, "首页", "index", "")})
	require.NoError(t, err)
	require.Len(t, routers, 1)
	assert.Equal(t, model.ComponentLayout, routers[0].Component)
}

func TestProjectRoutersPathFallback(t *testing.T) {
	routers, err := ProjectRouters([]*model.Menu{leafMenu(42, 0, "无路径", "", "some/index")})
	require.NoError(t, err)
	require.Len(t, routers, 1)
	assert.Equal(t, "/42", routers[0].Path)
}

func TestProjectRoutersNameStripping(t *testing.T) {
	routers, err := ProjectRouters([]*model.Menu{leafMenu(1, 0, "oper-log_view", "operlog", "x/index")})
	require.NoError(t, err)
	require.Len(t, routers, 1)
	assert.Equal(t, "operlogview", routers[0].Name)
}

func TestProjectRoutersHiddenFlag(t *testing.T) {
	hidden := leafMenu(1, 0, "隐藏页", "hidden", "x/index")
	hidden.Visible = model.VisibleHidden

	routers, err := ProjectRouters([]*model.Menu{hidden})
	require.NoError(t, err)
	require.Len(t, routers, 1)
	assert.True(t, routers[0].Hidden)
}

func TestProjectRoutersMeta(t *testing.T) {
	leaf := leafMenu(1, 0, "用户管理", "user", "system/user/index")
	leaf.Icon = "user"
	leaf.IsCache = model.CacheDisabled
	leaf.Query = `{"tab":"1"}`

	routers, err := ProjectRouters([]*model.Menu{leaf})
	require.NoError(t, err)
	require.Len(t, routers, 1)

	meta := routers[0].Meta
	require.NotNil(t, meta)
	assert.Equal(t, "用户管理", meta.Title)
	assert.Equal(t, "user", meta.Icon)
	assert.True(t, meta.NoCache)
	assert.Equal(t, `{"tab":"1"}`, meta.Query)
}

func TestProjectRoutersOrphanDropped(t *testing.T) {
	// 父节点不存在的孤儿节点不出现在任何位置
	menus := []*model.Menu{
		dirMenu(1, 0, "系统管理", "system"),
		leafMenu(100, 999, "孤儿页", "orphan", "x/index"),
	}

	routers, err := ProjectRouters(menus)
	require.NoError(t, err)
	require.Len(t, routers, 1)
	assert.Empty(t, *routers[0].Children)
}

func TestProjectRoutersSiblingOrderPreserved(t *testing.T) {
	menus := []*model.Menu{
		leafMenu(1, 0, "甲", "a", "a/index"),
		leafMenu(2, 0, "乙", "b", "b/index"),
		leafMenu(3, 0, "丙", "c", "c/index"),
	}

	routers, err := ProjectRouters(menus)
	require.NoError(t, err)
	require.Len(t, routers, 3)
	assert.Equal(t, "a", routers[0].Path)
	assert.Equal(t, "b", routers[1].Path)
	assert.Equal(t, "c", routers[2].Path)
}
