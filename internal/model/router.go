/**
 * 模型:前端路由模型
 * @author: sun977
 * @date: 2025.09.18
 * @description: getRouters 响应的路由描述结构，由菜单树投影生成
 * @func: Router / RouteMeta 结构体
 */
package model

// 路由投影使用的固定组件名
const (
	ComponentLayout     = "Layout"     // 根目录容器组件
	ComponentParentView = "ParentView" // 非根目录容器组件
	ComponentInnerLink  = "InnerLink"  // 外链内嵌组件
)

// RouteMeta 路由元信息
type RouteMeta struct {
	Title   string `json:"title"`           // 菜单名称
	Icon    string `json:"icon,omitempty"`  // 菜单图标，空则省略
	NoCache bool   `json:"noCache"`         // 是否不缓存
	Query   string `json:"query,omitempty"` // 路由参数，非空才携带
}

// Router 路由描述结构
// 目录节点始终携带 children 字段(可为空数组)，菜单/外链节点不携带，
// 该差异前端可观测，使用指针切片保持语义
type Router struct {
	Name       string     `json:"name"`                 // 组件注册名，菜单名去掉 - 和 _
	Path       string     `json:"path"`                 // 路由地址，空则以 /{menuId} 兜底
	Hidden     bool       `json:"hidden"`               // visible == 隐藏
	Component  string     `json:"component"`            // 组件路径
	AlwaysShow bool       `json:"alwaysShow,omitempty"` // 目录节点恒为 true
	Meta       *RouteMeta `json:"meta"`
	Children   *[]*Router `json:"children,omitempty"`
}

// SetChildren 赋值 children 字段(目录节点调用，空列表也要携带)
func (r *Router) SetChildren(children []*Router) {
	if children == nil {
		children = []*Router{}
	}
	r.Children = &children
}
