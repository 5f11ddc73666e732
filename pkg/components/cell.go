package components

// CellComponent 标记实体为背包网格中的一个单元格
// 与 PositionComponent、ClickableComponent、HoverHighlightComponent 配合使用
type CellComponent struct {
	CellID string
	Group  string
	Row    int
	Col    int
}
