// Package tui 在终端里渲染背包并把鼠标事件交给拖放引擎
//
// Board 自己实现 dragdrop.View：高亮标签、拖起状态和代理位置都保存在 Board 上，
// 每帧由 Draw 画到 tcell 屏幕。一个网格单元格占 cellCols x cellRows 个字符。
package tui

import (
	"fmt"
	"log"

	"github.com/decker502/gridbag/internal/audio"
	"github.com/decker502/gridbag/pkg/config"
	"github.com/decker502/gridbag/pkg/dragdrop"
	"github.com/decker502/gridbag/pkg/inventory"
)

// 终端布局常量
const (
	cellCols = 4 // 每个单元格的字符宽度
	cellRows = 2 // 每个单元格的字符高度
	marginX  = 2
	groupGap = 1
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

type boardItem struct {
	def    config.ItemDef
	cellID string
	tray   rect
	lifted bool
}

// Board 终端背包
type Board struct {
	layout *config.LayoutConfig
	coord  *inventory.Coordinator
	cues   audio.Player

	cells     map[string]rect
	cellOrder []string
	labels    map[int]string // 行号 -> 分组标题
	trayY     int
	zones     map[string]*dragdrop.Registration[config.ItemDef]
	tags      map[string]map[string]struct{}

	items     map[string]*boardItem
	itemOrder []string
	ghost     *ghost

	hovered   string
	pressed   bool
	status    string
	showDebug bool
}

// NewBoard 装配背包并计算终端布局
func NewBoard(layout *config.LayoutConfig, catalog *config.ItemCatalog, cues audio.Player) (*Board, error) {
	if cues == nil {
		cues = audio.Nop{}
	}
	b := &Board{
		layout: layout,
		cues:   cues,
		cells:  make(map[string]rect),
		labels: make(map[int]string),
		zones:  make(map[string]*dragdrop.Registration[config.ItemDef]),
		tags:   make(map[string]map[string]struct{}),
		items:  make(map[string]*boardItem),
	}
	b.coord = inventory.New(layout, b)

	inv, err := inventory.Build(b.coord, layout, catalog)
	if err != nil {
		b.coord.Close()
		return nil, fmt.Errorf("failed to build inventory: %w", err)
	}

	// 分组自上而下排列，每个分组上方一行标题
	top := make(map[string]int, len(layout.Groups))
	y := 1
	for _, g := range layout.Groups {
		b.labels[y] = g.Name
		top[g.Name] = y + 1
		y += 1 + g.Rows*cellRows + groupGap
	}
	b.trayY = y + 1
	b.labels[y] = "tray"

	for _, c := range inv.Cells {
		b.cells[c.ID] = rect{
			x: marginX + c.Col*cellCols,
			y: top[c.Group.Name] + c.Row*cellRows,
			w: cellCols,
			h: cellRows,
		}
		b.cellOrder = append(b.cellOrder, c.ID)
		b.zones[c.ID] = c.Zone
	}

	trayX := marginX
	for _, it := range inv.Items {
		item := &boardItem{def: it.Def, cellID: it.CellID}
		if it.CellID == "" {
			item.tray = rect{x: trayX, y: b.trayY, w: it.Def.Size.W * cellCols, h: it.Def.Size.H * cellRows}
			trayX += item.tray.w + 1
		}
		b.items[it.Def.ID] = item
		b.itemOrder = append(b.itemOrder, it.Def.ID)
	}

	log.Printf("[Board] Ready: %d cells, %d items", len(b.cells), len(b.items))
	return b, nil
}

// Coordinator 返回拖放协调器
func (b *Board) Coordinator() *inventory.Coordinator {
	return b.coord
}

// Status 返回状态栏文字
func (b *Board) Status() string {
	return b.status
}

// Close 拆除协调器
func (b *Board) Close() {
	b.coord.Close()
}

// itemRect 物品当前占据的字符矩形
func (b *Board) itemRect(it *boardItem) rect {
	if it.cellID == "" {
		return it.tray
	}
	anchor := b.cells[it.cellID]
	return rect{x: anchor.x, y: anchor.y, w: it.def.Size.W * cellCols, h: it.def.Size.H * cellRows}
}

// CellAt 返回字符坐标处的单元格
func (b *Board) CellAt(x, y int) (string, bool) {
	for _, id := range b.cellOrder {
		if b.cells[id].contains(x, y) {
			return id, true
		}
	}
	return "", false
}

// ItemAt 返回字符坐标处的物品，拖起的物品不参与命中测试
func (b *Board) ItemAt(x, y int) (string, bool) {
	for i := len(b.itemOrder) - 1; i >= 0; i-- {
		it := b.items[b.itemOrder[i]]
		if !it.lifted && b.itemRect(it).contains(x, y) {
			return it.def.ID, true
		}
	}
	return "", false
}

// HasTag 单元格是否带有标签
func (b *Board) HasTag(cellID, tag string) bool {
	_, ok := b.tags[cellID][tag]
	return ok
}

// AddTags 实现 dragdrop.Highlighter
func (b *Board) AddTags(cellID string, tags []string) {
	set, ok := b.tags[cellID]
	if !ok {
		set = make(map[string]struct{})
		b.tags[cellID] = set
	}
	for _, t := range tags {
		set[t] = struct{}{}
	}
}

// RemoveTags 实现 dragdrop.Highlighter
func (b *Board) RemoveTags(cellID string, tags []string) {
	for _, t := range tags {
		delete(b.tags[cellID], t)
	}
}

// Lift 实现 dragdrop.View，拖起的物品改用 ░ 绘制
func (b *Board) Lift(itemID string, _ []string) {
	if it, ok := b.items[itemID]; ok {
		it.lifted = true
	}
}

// Settle 实现 dragdrop.View
func (b *Board) Settle(itemID string, _ []string) {
	if it, ok := b.items[itemID]; ok {
		it.lifted = false
	}
}

// NewGhost 代理从物品当前位置出发
func (b *Board) NewGhost(itemID, _ string) dragdrop.Ghost {
	it, ok := b.items[itemID]
	if !ok {
		return dragdrop.NopView{}.NewGhost(itemID, "")
	}
	r := b.itemRect(it)
	b.ghost = &ghost{board: b, itemID: itemID, x: float64(r.x), y: float64(r.y), w: float64(r.w), h: float64(r.h)}
	return b.ghost
}

// Reparent 实现 dragdrop.View，物品移到新的锚点单元格
func (b *Board) Reparent(itemID, fromCell, toCell string) {
	if it, ok := b.items[itemID]; ok {
		it.cellID = toCell
		log.Printf("[Board] Reparented %s: %q -> %s", itemID, fromCell, toCell)
	}
}

// ghost 跟随鼠标的字符矩形
type ghost struct {
	board      *Board
	itemID     string
	x, y, w, h float64
	visible    bool
}

func (g *ghost) Bounds() (float64, float64) { return g.w, g.h }
func (g *ghost) Show()                      { g.visible = true }
func (g *ghost) MoveTo(x, y float64)        { g.x, g.y = x, y }

// SnapBack 终端里没有动画，代理直接消失
func (g *ghost) SnapBack() { g.Remove() }

func (g *ghost) Remove() {
	g.visible = false
	if g.board.ghost == g {
		g.board.ghost = nil
	}
}
