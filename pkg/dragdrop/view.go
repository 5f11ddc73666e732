package dragdrop

// Highlighter 高亮旁路通道
// 引擎只告诉渲染层给哪个单元格加/减哪些标签，具体视觉效果由渲染层决定
type Highlighter interface {
	AddTags(cellID string, tags []string)
	RemoveTags(cellID string, tags []string)
}

// Ghost 拖拽时跟随指针的视觉代理，由渲染层创建
type Ghost interface {
	// Bounds 返回代理的宽高，用于把代理居中放在指针下方
	Bounds() (w, h float64)
	// Show 让代理可见（拖起）
	Show()
	// MoveTo 把代理左上角移动到 (x, y)
	MoveTo(x, y float64)
	// SnapBack 回到源位置并淡出（放置被拒绝）
	SnapBack()
	// Remove 销毁代理（放置成功）
	Remove()
}

// View 渲染层协作者
type View interface {
	Highlighter

	// Lift 给源元素加上拖拽中的标签
	Lift(itemID string, tags []string)
	// Settle 移除源元素上的拖拽标签
	Settle(itemID string, tags []string)
	// NewGhost 为物品请求一个视觉代理，sourceCell 可能为空（物品不在网格上）
	NewGhost(itemID, sourceCell string) Ghost
	// Reparent 把物品的渲染元素移动到新的父单元格
	Reparent(itemID, fromCell, toCell string)
}

// NopView 不做任何渲染的 View，适用于无界面场景和测试
type NopView struct{}

func (NopView) AddTags(string, []string)        {}
func (NopView) RemoveTags(string, []string)     {}
func (NopView) Lift(string, []string)           {}
func (NopView) Settle(string, []string)         {}
func (NopView) Reparent(string, string, string) {}

func (NopView) NewGhost(string, string) Ghost {
	return nopGhost{}
}

type nopGhost struct{}

func (nopGhost) Bounds() (float64, float64) { return 0, 0 }
func (nopGhost) Show()                      {}
func (nopGhost) MoveTo(float64, float64)    {}
func (nopGhost) SnapBack()                  {}
func (nopGhost) Remove()                    {}
