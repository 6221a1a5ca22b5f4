/*
 * 路由投影:菜单树 -> 前端路由描述
 * @author: sun977
 * @date: 2025.09.12
 * @description: 纯函数，将可路由菜单(目录/菜单，状态正常，未删除)投影为前端路由结构
 * @note: 按钮类型不参与投影；目录节点始终携带 children(可为空)；
 *        投影结果整体缓存于固定键下，菜单变更不主动失效，接受TTL内的陈旧快照
 */
package system

import (
	"strconv"

	"adminmaster/internal/model"
)

// ProjectRouters 将菜单集合投影为前端路由森林
// menus 需已按 (parent_id, order_num) 升序排列
func ProjectRouters(menus []*model.Menu) ([]*model.Router, error) {
	index := make(map[int64][]*model.Menu, len(menus))
	for _, m := range menus {
		index[m.ParentID] = append(index[m.ParentID], m)
	}

	maxDepth := len(menus)

	var build func(parentID int64, depth int) ([]*model.Router, error)
	build = func(parentID int64, depth int) ([]*model.Router, error) {
		if depth > maxDepth {
			return nil, model.ErrCyclicHierarchy
		}

		routers := make([]*model.Router, 0, len(index[parentID]))
		for _, menu := range index[parentID] {
			route, err := projectOne(menu, parentID == 0, func() ([]*model.Router, error) {
				return build(menu.MenuID, depth+1)
			})
			if err != nil {
				return nil, err
			}
			if route != nil {
				routers = append(routers, route)
			}
		}
		return routers, nil
	}

	return build(0, 0)
}

// projectOne 投影单个菜单节点，返回 nil 表示该节点不产出路由(按钮及未知类型)
func projectOne(menu *model.Menu, isRoot bool, buildChildren func() ([]*model.Router, error)) (*model.Router, error) {
	switch menu.MenuType {
	case model.MenuTypeDir:
		children, err := buildChildren()
		if err != nil {
			return nil, err
		}
		component := model.ComponentParentView
		if isRoot {
			component = model.ComponentLayout
		}
		route := &model.Router{
			Name:       menu.RouteName(),
			Path:       routePath(menu),
			Hidden:     menu.IsHidden(),
			Component:  component,
			AlwaysShow: true,
			Meta:       routeMeta(menu),
		}
		// 目录节点始终携带 children，空目录对应空数组
		route.SetChildren(children)
		return route, nil

	case model.MenuTypeMenu:
		component := menu.Component
		if menu.IsExternalLink() {
			component = model.ComponentInnerLink
		} else if component == "" {
			component = model.ComponentLayout
		}
		return &model.Router{
			Name:      menu.RouteName(),
			Path:      routePath(menu),
			Hidden:    menu.IsHidden(),
			Component: component,
			Meta:      routeMeta(menu),
		}, nil

	default:
		// 按钮类型(及其他未知类型)不产出路由
		return nil, nil
	}
}

// routePath 路由地址，空路径以 /{menuId} 兜底，保证产出路由的地址非空
func routePath(menu *model.Menu) string {
	if menu.Path == "" {
		return "/" + strconv.FormatInt(menu.MenuID, 10)
	}
	return menu.Path
}

// routeMeta 路由元信息，icon/query 为空时省略
func routeMeta(menu *model.Menu) *model.RouteMeta {
	return &model.RouteMeta{
		Title:   menu.MenuName,
		Icon:    menu.Icon,
		NoCache: menu.IsCache == model.CacheDisabled,
		Query:   menu.Query,
	}
}
