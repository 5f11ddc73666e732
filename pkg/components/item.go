package components

import "image/color"

// ItemComponent 标记实体为背包中的物品
//
// 物品实体的 PositionComponent 总是对齐到锚点单元格的左上角，
// 尺寸（像素）由足迹和单元格大小决定。
type ItemComponent struct {
	ItemID string
	Name   string
	Color  color.RGBA

	// Cols, Rows 足迹尺寸（单元格）
	Cols, Rows int

	// CellID 当前锚点单元格，为空表示物品在托盘上
	CellID string

	// Lifted 拖拽期间为 true，渲染时降低不透明度
	Lifted   bool
	LiftTags []string
}
