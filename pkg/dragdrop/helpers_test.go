package dragdrop

import (
	"fmt"
	"sort"
	"testing"
)

// recordingView 记录引擎发给渲染层的所有调用
type recordingView struct {
	tags      map[string]map[string]bool
	lifted    map[string]bool
	reparents []string
	ghosts    []*recordingGhost

	// onReparent 在 Reparent 被调用时执行，用于检查提交过程中的中间状态
	onReparent func(itemID, from, to string)
}

func newRecordingView() *recordingView {
	return &recordingView{
		tags:   make(map[string]map[string]bool),
		lifted: make(map[string]bool),
	}
}

func (v *recordingView) AddTags(cellID string, tags []string) {
	if v.tags[cellID] == nil {
		v.tags[cellID] = make(map[string]bool)
	}
	for _, tag := range tags {
		v.tags[cellID][tag] = true
	}
}

func (v *recordingView) RemoveTags(cellID string, tags []string) {
	for _, tag := range tags {
		delete(v.tags[cellID], tag)
	}
}

func (v *recordingView) Lift(itemID string, tags []string)   { v.lifted[itemID] = true }
func (v *recordingView) Settle(itemID string, tags []string) { v.lifted[itemID] = false }

func (v *recordingView) NewGhost(itemID, sourceCell string) Ghost {
	g := &recordingGhost{itemID: itemID, w: 40, h: 20}
	v.ghosts = append(v.ghosts, g)
	return g
}

func (v *recordingView) Reparent(itemID, from, to string) {
	v.reparents = append(v.reparents, fmt.Sprintf("%s:%s->%s", itemID, from, to))
	if v.onReparent != nil {
		v.onReparent(itemID, from, to)
	}
}

// taggedCells 返回仍带有 tag 的单元格（已排序）
func (v *recordingView) taggedCells(tag string) []string {
	var ids []string
	for id, set := range v.tags {
		if set[tag] {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

type recordingGhost struct {
	itemID  string
	w, h    float64
	x, y    float64
	visible bool
	snapped bool
	removed bool
}

func (g *recordingGhost) Bounds() (float64, float64) { return g.w, g.h }
func (g *recordingGhost) Show()                      { g.visible = true }
func (g *recordingGhost) MoveTo(x, y float64)        { g.x, g.y = x, y }

func (g *recordingGhost) SnapBack() {
	g.snapped = true
	g.visible = false
}

func (g *recordingGhost) Remove() {
	g.removed = true
	g.visible = false
}

// cellID 测试用单元格命名
func cellID(i int) string {
	return fmt.Sprintf("c%d", i)
}

// newTestCoordinator 创建一个 rowWidth 宽、共 n 个单元格的默认分组
func newTestCoordinator(t *testing.T, rowWidth, n int, opts CellOptions) (*Coordinator[string], *recordingView, []*Registration[string]) {
	t.Helper()
	view := newRecordingView()
	c := NewCoordinator[string](rowWidth, view)
	regs := make([]*Registration[string], 0, n)
	for i := 0; i < n; i++ {
		reg, err := c.Dropzone(cellID(i), opts)
		if err != nil {
			t.Fatalf("Dropzone(%s) error: %v", cellID(i), err)
		}
		regs = append(regs, reg)
	}
	return c, view, regs
}

// mustMount 挂载拖拽源，失败时终止测试
func mustMount(t *testing.T, c *Coordinator[string], opts DraggableOptions[string]) *Draggable[string] {
	t.Helper()
	d, err := c.Mount(opts)
	if err != nil {
		t.Fatalf("Mount(%+v) error: %v", opts, err)
	}
	return d
}

// drag 模拟一次完整的按下-移动-松开手势
func drag(t *testing.T, c *Coordinator[string], d *Draggable[string], target string) DropResult {
	t.Helper()
	if !d.PointerDown() {
		t.Fatalf("PointerDown on %s was refused", d.ID())
	}
	c.PointerMove(100, 100)
	return c.PointerUp(target)
}

// occupiedBy 返回物品占用的所有单元格（已排序）
func occupiedBy(c *Coordinator[string], itemID string) []string {
	var ids []string
	for _, rec := range c.Occupancy().Records() {
		if rec.ItemID == itemID && !rec.Empty() {
			ids = append(ids, rec.CellID)
		}
	}
	sort.Strings(ids)
	return ids
}

func cellIDs(indices ...int) []string {
	ids := make([]string, 0, len(indices))
	for _, i := range indices {
		ids = append(ids, cellID(i))
	}
	sort.Strings(ids)
	return ids
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
