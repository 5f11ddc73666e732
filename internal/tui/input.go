package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/gridbag/internal/audio"
)

// HandleEvent 处理一个 tcell 事件，返回 false 表示退出
func (b *Board) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'd':
				b.showDebug = !b.showDebug
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		b.HandlePointer(x, y, ev.Buttons()&tcell.Button1 != 0)
	}
	return true
}

// HandlePointer 处理一次鼠标采样
// 左键按下的第一个采样开始拖拽，按住期间的采样移动代理，松开时放置
func (b *Board) HandlePointer(x, y int, down bool) {
	switch {
	case down && !b.pressed:
		b.pressed = true
		b.pickUp(x, y)
	case down && b.pressed:
		if b.coord.Dragging() {
			b.coord.PointerMove(float64(x), float64(y))
			b.setHovered(x, y)
		}
	case !down && b.pressed:
		b.pressed = false
		b.drop(x, y)
	}
}

func (b *Board) pickUp(x, y int) {
	itemID, ok := b.ItemAt(x, y)
	if !ok {
		return
	}
	d, ok := b.coord.Draggable(itemID)
	if !ok || !d.PointerDown() {
		return
	}
	b.cues.Play(audio.CuePickUp)
	b.status = fmt.Sprintf("dragging %s", itemID)
	b.setHovered(x, y)
}

func (b *Board) drop(x, y int) {
	if !b.coord.Dragging() {
		return
	}
	target, _ := b.CellAt(x, y)
	b.leave()

	res := b.coord.PointerUp(target)
	if res.Committed {
		b.status = fmt.Sprintf("%s -> %s", res.ItemID, res.Verdict.Footprint[0])
		b.cues.Play(audio.CueCommit)
		return
	}
	b.status = fmt.Sprintf("%s rejected (%s)", res.ItemID, res.Verdict.Reason)
	b.cues.Play(audio.CueReject)
}

// setHovered 鼠标跨过单元格边界时先离开旧单元格再进入新单元格
func (b *Board) setHovered(x, y int) {
	cellID, _ := b.CellAt(x, y)
	if cellID == b.hovered {
		return
	}
	b.leave()
	b.hovered = cellID
	if zone, ok := b.zones[cellID]; ok {
		zone.HoverEnter()
	}
}

func (b *Board) leave() {
	if zone, ok := b.zones[b.hovered]; ok {
		zone.HoverLeave()
	}
	b.hovered = ""
}
