package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/gridbag/pkg/config"
)

var (
	labelStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	debugStyle  = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

func rgb(hex string) tcell.Color {
	c := config.MustParseHexColor(hex)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// cellStyle 取 tagOrder 中优先级最高且配置了颜色的标签
func (b *Board) cellStyle(cellID string) tcell.Style {
	bg := rgb(b.layout.CellColor)
	for _, tag := range b.layout.TagOrder {
		hex, ok := b.layout.TagColors[tag]
		if ok && b.HasTag(cellID, tag) {
			bg = rgb(hex)
		}
	}
	return tcell.StyleDefault.Background(bg).Foreground(rgb(b.layout.GridLineColor))
}

// Draw 把整个背包画到屏幕上
func (b *Board) Draw(s tcell.Screen) {
	s.Clear()

	drawText(s, marginX, 0, labelStyle, "gridbag  drag with the mouse, d: debug, q: quit")
	for y, label := range b.labels {
		drawText(s, marginX, y, labelStyle, label)
	}

	for _, id := range b.cellOrder {
		r := b.cells[id]
		style := b.cellStyle(id)
		for dy := 0; dy < r.h; dy++ {
			for dx := 0; dx < r.w; dx++ {
				ch := ' '
				if dx == 0 && dy == 0 {
					ch = '·'
				}
				s.SetContent(r.x+dx, r.y+dy, ch, nil, style)
			}
		}
	}

	for _, id := range b.itemOrder {
		it := b.items[id]
		fill := '█'
		if it.lifted {
			fill = '░'
		}
		style := tcell.StyleDefault.Foreground(rgb(it.def.Color))
		fillRect(s, b.itemRect(it), fill, style)
		if !it.lifted {
			r := b.itemRect(it)
			drawText(s, r.x, r.y, style.Reverse(true), truncate(it.def.Name, r.w))
		}
	}

	if g := b.ghost; g != nil && g.visible {
		it := b.items[g.itemID]
		r := rect{x: int(g.x + 0.5), y: int(g.y + 0.5), w: int(g.w), h: int(g.h)}
		fillRect(s, r, '▒', tcell.StyleDefault.Foreground(rgb(it.def.Color)))
	}

	_, height := s.Size()
	drawText(s, marginX, height-1, statusStyle, b.status)

	if b.showDebug {
		x := marginX + b.maxColumns()*cellCols + 4
		for i, line := range b.DebugLines() {
			drawText(s, x, 1+i, debugStyle, line)
		}
	}
	s.Show()
}

// DebugLines 占用表调试信息，每个锚点一行
func (b *Board) DebugLines() []string {
	occupancy := b.coord.Occupancy()
	lines := []string{fmt.Sprintf("records: %d", occupancy.Len())}
	for _, rec := range occupancy.Anchors() {
		lines = append(lines, fmt.Sprintf("%s @ %s (%dx%d)", rec.ItemID, rec.CellID, rec.Size.W, rec.Size.H))
	}
	return lines
}

func (b *Board) maxColumns() int {
	n := 0
	for _, g := range b.layout.Groups {
		if g.Columns > n {
			n = g.Columns
		}
	}
	return n
}

func fillRect(s tcell.Screen, r rect, ch rune, style tcell.Style) {
	for dy := 0; dy < r.h; dy++ {
		for dx := 0; dx < r.w; dx++ {
			s.SetContent(r.x+dx, r.y+dy, ch, nil, style)
		}
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, style)
	}
}

func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) > n {
		return string(runes[:n])
	}
	return text
}
