package game

import "log"

// Hotbar 快捷栏的选中状态
//
// 选中序号在两端循环：从最后一格向后移动回到第一格，反之亦然。
type Hotbar struct {
	cells    []string
	selected int
}

// NewHotbar 创建快捷栏
// 参数:
//   - cellIDs: 快捷栏单元格 ID，按从左到右的顺序
func NewHotbar(cellIDs []string) *Hotbar {
	return &Hotbar{cells: append([]string(nil), cellIDs...)}
}

// Len 返回格子数
func (h *Hotbar) Len() int {
	return len(h.cells)
}

// Selected 返回当前选中的序号
func (h *Hotbar) Selected() int {
	return h.selected
}

// SelectedCell 返回当前选中的单元格 ID，快捷栏为空时返回 false
func (h *Hotbar) SelectedCell() (string, bool) {
	if len(h.cells) == 0 {
		return "", false
	}
	return h.cells[h.selected], true
}

// Select 选中第 i 格，越界的序号按格子数取模
func (h *Hotbar) Select(i int) {
	n := len(h.cells)
	if n == 0 {
		return
	}
	h.selected = ((i % n) + n) % n
	log.Printf("[Hotbar] Selected slot %d (%s)", h.selected, h.cells[h.selected])
}

// Next 选中下一格
func (h *Hotbar) Next() {
	h.Select(h.selected + 1)
}

// Prev 选中上一格
func (h *Hotbar) Prev() {
	h.Select(h.selected - 1)
}
