package systems

import (
	"fmt"
	"testing"

	"github.com/decker502/gridbag/pkg/dragdrop"
	"github.com/decker502/gridbag/pkg/ecs"
	"github.com/decker502/gridbag/pkg/game"
	"github.com/decker502/gridbag/pkg/utils"
)

const testCellSize = 40.0

// testWorld 一个 4x4、格子 40 像素、原点 (0,0) 的背包
type testWorld struct {
	em     *ecs.EntityManager
	view   *EntityView
	coord  *dragdrop.Coordinator[string]
	input  *InputSystem[string]
	hotbar *game.Hotbar
	drops  []dragdrop.DropResult
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	em := ecs.NewEntityManager()
	view := NewEntityView(em)
	coord := dragdrop.NewCoordinator[string](4, view)
	hotbar := game.NewHotbar([]string{"h0", "h1", "h2"})
	w := &testWorld{em: em, view: view, coord: coord, hotbar: hotbar}
	w.input = NewInputSystem(coord, view, hotbar)
	w.input.OnDrop = func(res dragdrop.DropResult) { w.drops = append(w.drops, res) }

	for i := 0; i < 16; i++ {
		id := fmt.Sprintf("c%d", i)
		row, col := i/4, i%4
		reg, err := coord.Dropzone(id, dragdrop.CellOptions{
			ItemsLimit:     1,
			HoverStartTags: []string{"available"},
			HoverEnterTags: []string{"hover"},
		})
		if err != nil {
			t.Fatalf("Dropzone(%s) error: %v", id, err)
		}
		view.AddCell(id, dragdrop.DefaultGroup, row, col, float64(col)*testCellSize, float64(row)*testCellSize, testCellSize, testCellSize)
		w.input.AddZone(reg)
	}
	return w
}

// mount 挂载物品并创建对应的物品实体
func (w *testWorld) mount(t *testing.T, itemID, cellID string, size dragdrop.Size) {
	t.Helper()
	if _, err := w.coord.Mount(dragdrop.DraggableOptions[string]{
		ID:       itemID,
		Item:     itemID,
		CellID:   cellID,
		Size:     size,
		DragTags: []string{"dragging"},
	}); err != nil {
		t.Fatalf("Mount(%s) error: %v", itemID, err)
	}
	w.view.AddItem(itemID, itemID, testColor, size.W, size.H, cellID, 0, 0)
}

// gesture 依次送入按下、移动、松开三帧
func (w *testWorld) gesture(fromX, fromY, toX, toY int) {
	w.input.HandlePointer(utils.PointerState{X: fromX, Y: fromY, Pressed: true, JustPressed: true, Moved: true})
	w.input.HandlePointer(utils.PointerState{X: toX, Y: toY, Pressed: true, Moved: true})
	w.input.HandlePointer(utils.PointerState{X: toX, Y: toY, JustReleased: true})
}
