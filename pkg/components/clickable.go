package components

// ClickableComponent 标记实体可以被指针命中
// 命中区域从 PositionComponent 开始，宽高为 Width x Height
type ClickableComponent struct {
	Width     float64 // 命中区域的宽度(像素)
	Height    float64 // 命中区域的高度(像素)
	IsEnabled bool    // 是否参与命中测试(拖拽中的物品会被禁用)
}

// Contains 判断点 (x, y) 是否落在以 (originX, originY) 为左上角的命中区域内
func (c *ClickableComponent) Contains(originX, originY, x, y float64) bool {
	if !c.IsEnabled {
		return false
	}
	return x >= originX && x < originX+c.Width && y >= originY && y < originY+c.Height
}
