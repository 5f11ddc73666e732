// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerState 单帧的指针状态，统一鼠标和触摸输入
type PointerState struct {
	// X, Y 指针位置（屏幕坐标）
	X, Y int
	// Pressed 是否处于按下状态
	Pressed bool
	// JustPressed 本帧刚按下
	JustPressed bool
	// JustReleased 本帧刚松开，X/Y 为松开前最后的位置
	JustReleased bool
	// Moved 相比上一帧位置发生变化
	Moved bool
	// IsTouch 是否来自触摸输入
	IsTouch bool
}

// PointerTracker 跟踪指针的按下、移动与松开
//
// 触摸松开的那一帧已经取不到触摸位置，所以记住最后一次位置。
type PointerTracker struct {
	pressed      bool
	lastX, lastY int
	touchID      ebiten.TouchID
	touching     bool
}

// NewPointerTracker 创建指针跟踪器
func NewPointerTracker() *PointerTracker {
	return &PointerTracker{touchID: -1}
}

// Step 根据本帧的原始采样计算 PointerState
// 参数:
//   - pressed: 本帧是否按下
//   - x, y: 本帧指针位置（pressed 为 false 的触摸输入可以传任意值）
//   - touch: 是否来自触摸
func (p *PointerTracker) Step(pressed bool, x, y int, touch bool) PointerState {
	state := PointerState{Pressed: pressed, IsTouch: touch}

	// 触摸抬起后没有位置，沿用上一帧
	if touch && !pressed {
		x, y = p.lastX, p.lastY
	}

	state.X, state.Y = x, y
	state.JustPressed = pressed && !p.pressed
	state.JustReleased = !pressed && p.pressed
	state.Moved = x != p.lastX || y != p.lastY

	p.pressed = pressed
	p.lastX, p.lastY = x, y
	return state
}

// Read 从 ebiten 读取本帧指针状态，触摸优先
func (p *PointerTracker) Read() PointerState {
	if p.touching {
		// 跟踪中的触摸是否仍然存在
		for _, id := range ebiten.AppendTouchIDs(nil) {
			if id == p.touchID {
				x, y := ebiten.TouchPosition(id)
				return p.Step(true, x, y, true)
			}
		}
		p.touching = false
		p.touchID = -1
		return p.Step(false, 0, 0, true)
	}

	if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
		p.touching = true
		p.touchID = ids[0]
		x, y := ebiten.TouchPosition(ids[0])
		return p.Step(true, x, y, true)
	}

	x, y := ebiten.CursorPosition()
	return p.Step(ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), x, y, false)
}

// WheelSteps 返回本帧滚轮方向：向上为 -1，向下为 1，没有滚动为 0
func WheelSteps() int {
	_, dy := ebiten.Wheel()
	switch {
	case dy > 0:
		return -1
	case dy < 0:
		return 1
	}
	return 0
}

// JustPressedDigit 返回本帧刚按下的数字键 1-9 对应的 0 基序号
func JustPressedDigit() (int, bool) {
	for i := 0; i < 9; i++ {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			return i, true
		}
	}
	return 0, false
}
