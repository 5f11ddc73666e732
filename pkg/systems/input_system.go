package systems

import (
	"log"

	"github.com/decker502/gridbag/pkg/dragdrop"
	"github.com/decker502/gridbag/pkg/game"
	"github.com/decker502/gridbag/pkg/utils"
)

// InputSystem 把指针输入翻译成拖放引擎的事件
//
// 按下：命中物品时对其拖拽源调用 PointerDown。
// 移动：转发指针样本，并在指针跨过单元格边界时触发离开/进入。
// 松开：以指针下方的单元格为目标结束会话。
type InputSystem[T any] struct {
	coord   *dragdrop.Coordinator[T]
	view    *EntityView
	hotbar  *game.Hotbar
	tracker *utils.PointerTracker

	zones   map[string]*dragdrop.Registration[T]
	hovered string

	// OnPickUp 会话开始后调用
	OnPickUp func(itemID string)
	// OnDrop 每次会话结束后调用
	OnDrop func(dragdrop.DropResult)
}

// NewInputSystem 创建输入系统
// hotbar 可以为 nil
func NewInputSystem[T any](coord *dragdrop.Coordinator[T], view *EntityView, hotbar *game.Hotbar) *InputSystem[T] {
	return &InputSystem[T]{
		coord:   coord,
		view:    view,
		hotbar:  hotbar,
		tracker: utils.NewPointerTracker(),
		zones:   make(map[string]*dragdrop.Registration[T]),
	}
}

// AddZone 登记单元格的悬停句柄
func (s *InputSystem[T]) AddZone(reg *dragdrop.Registration[T]) {
	s.zones[reg.Cell().ID] = reg
}

// Hovered 返回指针当前所在的单元格
func (s *InputSystem[T]) Hovered() string {
	return s.hovered
}

// Update 读取本帧的 ebiten 输入
func (s *InputSystem[T]) Update() {
	s.HandlePointer(s.tracker.Read())

	digit, pressed := utils.JustPressedDigit()
	s.HandleHotbar(utils.WheelSteps(), digit, pressed)
}

// HandlePointer 处理一帧的指针状态
func (s *InputSystem[T]) HandlePointer(state utils.PointerState) {
	x, y := float64(state.X), float64(state.Y)

	if state.JustPressed && !s.coord.Dragging() {
		s.pickUp(x, y)
		return
	}

	if !s.coord.Dragging() {
		return
	}

	if state.Pressed && state.Moved {
		s.coord.PointerMove(x, y)
		s.updateHover(x, y)
	}

	if state.JustReleased {
		s.drop(x, y)
	}
}

func (s *InputSystem[T]) pickUp(x, y float64) {
	itemID, ok := s.view.ItemAt(x, y)
	if !ok {
		return
	}
	d, ok := s.coord.Draggable(itemID)
	if !ok {
		log.Printf("[InputSystem] Item %s has no draggable", itemID)
		return
	}
	if !d.PointerDown() {
		return
	}
	if s.OnPickUp != nil {
		s.OnPickUp(itemID)
	}
	s.updateHover(x, y)
}

func (s *InputSystem[T]) drop(x, y float64) {
	target, _ := s.view.CellAt(x, y)
	s.setHovered("")

	res := s.coord.PointerUp(target)
	if s.OnDrop != nil && res.Handled {
		s.OnDrop(res)
	}
}

// updateHover 指针跨过单元格边界时先离开旧单元格再进入新单元格
func (s *InputSystem[T]) updateHover(x, y float64) {
	cellID, _ := s.view.CellAt(x, y)
	s.setHovered(cellID)
}

func (s *InputSystem[T]) setHovered(cellID string) {
	if cellID == s.hovered {
		return
	}
	if reg, ok := s.zones[s.hovered]; ok {
		reg.HoverLeave()
	}
	s.hovered = cellID
	if reg, ok := s.zones[cellID]; ok {
		reg.HoverEnter()
	}
}

// HandleHotbar 处理快捷栏选择
// 参数:
//   - wheel: 滚轮方向，-1 上一格，1 下一格
//   - digit: 数字键对应的 0 基序号
//   - digitPressed: 本帧是否按下了数字键
func (s *InputSystem[T]) HandleHotbar(wheel, digit int, digitPressed bool) {
	if s.hotbar == nil {
		return
	}
	if digitPressed && digit < s.hotbar.Len() {
		s.hotbar.Select(digit)
		return
	}
	switch {
	case wheel > 0:
		s.hotbar.Next()
	case wheel < 0:
		s.hotbar.Prev()
	}
}
