package components

// GhostComponent 标记实体为拖拽代理（跟随指针的半透明物品图像）
// 与 PositionComponent 和 ItemComponent 配合使用
type GhostComponent struct {
	// ItemID 被拖拽的物品
	ItemID string

	// Width, Height 代理尺寸（像素）
	Width, Height float64

	// Visible 是否绘制
	Visible bool

	// Alpha 透明度 (0.0-1.0)
	Alpha float64

	// SnappingBack 放置被拒绝后正在飞回源位置并淡出
	SnappingBack bool
	// FromX, FromY 开始飞回时的位置
	FromX, FromY float64
	// HomeX, HomeY 源位置
	HomeX, HomeY float64
	// Elapsed 飞回动画已经过的时间（秒）
	Elapsed float64
}
