package utils

// GridGeometry 一个分组网格在屏幕上的几何参数
type GridGeometry struct {
	OriginX    float64 // 网格起始X坐标
	OriginY    float64 // 网格起始Y坐标
	Columns    int     // 列数
	Rows       int     // 行数
	CellWidth  float64 // 每格宽度
	CellHeight float64 // 每格高度
}

// Width 网格总宽度
func (g GridGeometry) Width() float64 {
	return float64(g.Columns) * g.CellWidth
}

// Height 网格总高度
func (g GridGeometry) Height() float64 {
	return float64(g.Rows) * g.CellHeight
}

// MouseToGridCoords 将指针屏幕坐标转换为网格坐标
// 参数:
//   - mouseX, mouseY: 指针的屏幕坐标
//
// 返回:
//   - col: 列索引
//   - row: 行索引
//   - isValid: 是否在网格范围内
func (g GridGeometry) MouseToGridCoords(mouseX, mouseY float64) (col, row int, isValid bool) {
	if g.Columns <= 0 || g.Rows <= 0 || g.CellWidth <= 0 || g.CellHeight <= 0 {
		return 0, 0, false
	}

	if mouseX < g.OriginX || mouseX >= g.OriginX+g.Width() ||
		mouseY < g.OriginY || mouseY >= g.OriginY+g.Height() {
		return 0, 0, false
	}

	col = int((mouseX - g.OriginX) / g.CellWidth)
	row = int((mouseY - g.OriginY) / g.CellHeight)

	// 防止浮点数计算误差导致的越界
	if col >= g.Columns {
		col = g.Columns - 1
	}
	if row >= g.Rows {
		row = g.Rows - 1
	}

	return col, row, true
}

// GridToScreenCoords 将网格坐标转换为格子左上角的屏幕坐标
func (g GridGeometry) GridToScreenCoords(col, row int) (x, y float64) {
	x = g.OriginX + float64(col)*g.CellWidth
	y = g.OriginY + float64(row)*g.CellHeight
	return x, y
}

// CellCenter 返回格子中心的屏幕坐标
func (g GridGeometry) CellCenter(col, row int) (centerX, centerY float64) {
	x, y := g.GridToScreenCoords(col, row)
	return x + g.CellWidth/2, y + g.CellHeight/2
}
