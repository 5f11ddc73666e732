package dragdrop

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

var (
	startTags = []string{"available"}
	enterTags = []string{"target"}
)

func highlightOptions(limit int) CellOptions {
	return CellOptions{ItemsLimit: limit, HoverStartTags: startTags, HoverEnterTags: enterTags}
}

// TestDropOntoEmptyGrid 空的 4x4 网格，把 1x1 物品放到索引 0
func TestDropOntoEmptyGrid(t *testing.T) {
	c, view, _ := newTestCoordinator(t, 4, 16, highlightOptions(1))
	d := mustMount(t, c, DraggableOptions[string]{ID: "apple", Item: "apple"})

	if c.Occupancy().Len() != 0 {
		t.Fatalf("expected empty table before drop, got %d records", c.Occupancy().Len())
	}

	res := drag(t, c, d, cellID(0))
	if !res.Handled || !res.Committed {
		t.Fatalf("drop on empty cell should commit, got %+v", res)
	}

	records := c.Occupancy().Records()
	if len(records) != 1 {
		t.Fatalf("expected exactly 1 record, got %d", len(records))
	}
	if rec := records[0]; rec.CellID != cellID(0) || !rec.IsAnchor() || rec.Payload != "apple" {
		t.Errorf("unexpected record %+v", rec)
	}
	if anchor, _ := c.Occupancy().AnchorOf("apple"); anchor != cellID(0) {
		t.Errorf("AnchorOf(apple) = %q, want %q", anchor, cellID(0))
	}
	if len(view.ghosts) != 1 || !view.ghosts[0].removed {
		t.Error("ghost should be removed after a committed drop")
	}
	if !reflect.DeepEqual(view.reparents, []string{"apple:->c0"}) {
		t.Errorf("reparents = %v", view.reparents)
	}
}

// TestDropWrapRejected 行宽 4，2x1 物品在锚点 5；放到索引 7 需要 {7,8}，8 会换行，必须拒绝
func TestDropWrapRejected(t *testing.T) {
	c, view, _ := newTestCoordinator(t, 4, 16, highlightOptions(1))
	d := mustMount(t, c, DraggableOptions[string]{ID: "bow", Item: "bow", CellID: cellID(5), Size: Size{W: 2, H: 1}})

	if got := occupiedBy(c, "bow"); !equalStrings(got, cellIDs(5, 6)) {
		t.Fatalf("initial occupancy = %v, want %v", got, cellIDs(5, 6))
	}

	before := c.Occupancy().Records()
	res := drag(t, c, d, cellID(7))
	if res.Committed {
		t.Fatal("drop at index 7 must be rejected")
	}
	if res.Verdict.Reason != ReasonWrap {
		t.Errorf("reason = %s, want wrap", res.Verdict.Reason)
	}
	if after := c.Occupancy().Records(); !reflect.DeepEqual(before, after) {
		t.Error("rejected drop mutated the occupancy table")
	}
	if !view.ghosts[0].snapped {
		t.Error("ghost should snap back on rollback")
	}
}

// TestDropCapacityRejected 容量为 1 的单元格已有物品 A，放入物品 B 被拒绝，A 不变
func TestDropCapacityRejected(t *testing.T) {
	c, _, _ := newTestCoordinator(t, 4, 16, highlightOptions(1))
	mustMount(t, c, DraggableOptions[string]{ID: "A", Item: "a", CellID: cellID(3)})
	b := mustMount(t, c, DraggableOptions[string]{ID: "B", Item: "b", CellID: cellID(8)})

	res := drag(t, c, b, cellID(3))
	if res.Committed {
		t.Fatal("drop onto full cell must be rejected")
	}
	if res.Verdict.Reason != ReasonCapacity {
		t.Errorf("reason = %s, want capacity", res.Verdict.Reason)
	}
	if anchor, _ := c.Occupancy().AnchorOf("A"); anchor != cellID(3) {
		t.Errorf("A moved to %q", anchor)
	}
	if anchor, _ := c.Occupancy().AnchorOf("B"); anchor != cellID(8) {
		t.Errorf("B should return to its source, anchor=%q", anchor)
	}
	if rec, _ := c.Occupancy().RecordAt(cellID(3)); rec.Payload != "a" {
		t.Errorf("cell 3 payload = %q, want a", rec.Payload)
	}
}

// TestDropConflictWithoutLimit 未配置容量时，冲突检查仍然阻止覆盖其他物品
func TestDropConflictWithoutLimit(t *testing.T) {
	c, _, _ := newTestCoordinator(t, 4, 16, CellOptions{})
	mustMount(t, c, DraggableOptions[string]{ID: "A", Item: "a", CellID: cellID(6)})
	b := mustMount(t, c, DraggableOptions[string]{ID: "B", Item: "b", CellID: cellID(0), Size: Size{W: 2, H: 2}})

	// {1,2,5,6} 中的 6 属于 A
	res := drag(t, c, b, cellID(1))
	if res.Committed || res.Verdict.Reason != ReasonConflict {
		t.Errorf("expected conflict, got committed=%v reason=%s", res.Committed, res.Verdict.Reason)
	}
}

// TestMoveTwoByTwoOneRight 2x2 物品从锚点 0 右移到锚点 1，最终占用 {1,2,5,6}
func TestMoveTwoByTwoOneRight(t *testing.T) {
	c, _, _ := newTestCoordinator(t, 4, 16, highlightOptions(1))
	d := mustMount(t, c, DraggableOptions[string]{ID: "chest", Item: "chest", CellID: cellID(0), Size: Size{W: 2, H: 2}})

	if got := occupiedBy(c, "chest"); !equalStrings(got, cellIDs(0, 1, 4, 5)) {
		t.Fatalf("initial occupancy = %v, want %v", got, cellIDs(0, 1, 4, 5))
	}

	res := drag(t, c, d, cellID(1))
	if !res.Committed {
		t.Fatalf("nudge right should succeed, reason=%s", res.Verdict.Reason)
	}
	if got := occupiedBy(c, "chest"); !equalStrings(got, cellIDs(1, 2, 5, 6)) {
		t.Errorf("final occupancy = %v, want %v", got, cellIDs(1, 2, 5, 6))
	}

	for _, i := range []int{0, 4} {
		rec, ok := c.Occupancy().RecordAt(cellID(i))
		if !ok || !rec.Empty() {
			t.Errorf("cell %d should be vacated but kept as an empty record, got %+v (exists=%v)", i, rec, ok)
		}
	}
	anchor, _ := c.Occupancy().RecordAt(cellID(1))
	if !anchor.IsAnchor() || anchor.Payload != "chest" {
		t.Errorf("cell 1 should hold the payload, got %+v", anchor)
	}
	for _, i := range []int{2, 5, 6} {
		rec, _ := c.Occupancy().RecordAt(cellID(i))
		if !rec.IsDependent() || rec.RelatesTo != cellID(1) {
			t.Errorf("cell %d should back-reference c1, got %+v", i, rec)
		}
	}
}

// TestCommitVacatesBeforeWrite 提交时旧足迹在写入新足迹之前被完全腾空
func TestCommitVacatesBeforeWrite(t *testing.T) {
	c, view, _ := newTestCoordinator(t, 4, 16, CellOptions{})
	d := mustMount(t, c, DraggableOptions[string]{ID: "rod", Item: "rod", CellID: cellID(0), Size: Size{W: 1, H: 3}})

	view.onReparent = func(itemID, from, to string) {
		anchors := 0
		for _, rec := range c.Occupancy().Records() {
			if rec.IsAnchor() && rec.ItemID == itemID {
				anchors++
			}
			if rec.RelatesTo == from && from != to {
				t.Errorf("cell %s still references old anchor %s", rec.CellID, from)
			}
		}
		if anchors != 1 {
			t.Errorf("item %s has %d anchors during commit, want 1", itemID, anchors)
		}
	}

	if res := drag(t, c, d, cellID(3)); !res.Committed {
		t.Fatalf("move should commit, reason=%s", res.Verdict.Reason)
	}
	if got := occupiedBy(c, "rod"); !equalStrings(got, cellIDs(3, 7, 11)) {
		t.Errorf("occupancy = %v, want %v", got, cellIDs(3, 7, 11))
	}
	for _, i := range []int{0, 4, 8} {
		if owner, ok := c.Occupancy().OwnerOf(cellID(i)); ok {
			t.Errorf("old cell %d still owned by %s", i, owner)
		}
	}
}

// TestNoOpDropLeavesTableUnchanged 放回自身当前位置总是允许，且占用表不变
func TestNoOpDropLeavesTableUnchanged(t *testing.T) {
	c, _, _ := newTestCoordinator(t, 4, 16, highlightOptions(1))
	d := mustMount(t, c, DraggableOptions[string]{ID: "chest", Item: "chest", CellID: cellID(5), Size: Size{W: 2, H: 2}})
	mustMount(t, c, DraggableOptions[string]{ID: "gem", Item: "gem", CellID: cellID(0)})

	before := c.Occupancy().Records()
	res := drag(t, c, d, cellID(5))
	if !res.Committed {
		t.Fatalf("no-op drop must be allowed, reason=%s", res.Verdict.Reason)
	}
	if after := c.Occupancy().Records(); !reflect.DeepEqual(before, after) {
		t.Errorf("no-op drop changed the table:\nbefore=%+v\nafter=%+v", before, after)
	}
}

// TestHighlightsClearedAfterDrag 任何拖拽结束后不再有单元格带有高亮标签
func TestHighlightsClearedAfterDrag(t *testing.T) {
	for _, target := range []string{cellID(10), cellID(3), "", "missing"} {
		c, view, regs := newTestCoordinator(t, 4, 16, highlightOptions(1))
		mustMount(t, c, DraggableOptions[string]{ID: "A", Item: "a", CellID: cellID(3)})
		d := mustMount(t, c, DraggableOptions[string]{ID: "B", Item: "b", CellID: cellID(0), Size: Size{W: 1, H: 2}})

		d.PointerDown()
		if got := len(view.taggedCells("available")); got != 15 {
			t.Errorf("hover-start tags on %d cells, want 15 (every cell except A's)", got)
		}
		regs[9].HoverEnter()
		regs[9].HoverLeave()
		regs[10].HoverEnter()
		c.PointerMove(10, 10)
		c.PointerUp(target)

		if cells := c.Registry().HighlightedCells(); len(cells) != 0 {
			t.Errorf("target %q: cells still highlighted in registry: %v", target, cells)
		}
		if cells := view.taggedCells("available"); len(cells) != 0 {
			t.Errorf("target %q: hover-start tags left on %v", target, cells)
		}
		if cells := view.taggedCells("target"); len(cells) != 0 {
			t.Errorf("target %q: hover-enter tags left on %v", target, cells)
		}
		for _, reg := range regs {
			if cell := reg.Cell(); cell.HoverStartActive() || cell.HoverEnterActive() {
				t.Errorf("target %q: %s still active (start=%v enter=%v)", target, cell.ID, cell.HoverStartActive(), cell.HoverEnterActive())
			}
		}
		if c.Dragging() {
			t.Errorf("target %q: session still active", target)
		}
	}
}

// TestHoverEnterClaimsAreIndependent 离开一个单元格不会清除其他足迹仍覆盖的单元格的高亮
func TestHoverEnterClaimsAreIndependent(t *testing.T) {
	c, view, regs := newTestCoordinator(t, 4, 16, highlightOptions(0))
	d := mustMount(t, c, DraggableOptions[string]{ID: "bow", Item: "bow", Size: Size{W: 2, H: 1}})
	d.PointerDown()

	regs[0].HoverEnter() // 点亮 {0,1}
	regs[1].HoverEnter() // 点亮 {1,2}
	if got := view.taggedCells("target"); !equalStrings(got, cellIDs(0, 1, 2)) {
		t.Fatalf("after two enters target tags = %v, want %v", got, cellIDs(0, 1, 2))
	}

	regs[0].HoverLeave()
	if got := view.taggedCells("target"); !equalStrings(got, cellIDs(1, 2)) {
		t.Errorf("after leaving c0 target tags = %v, want %v", got, cellIDs(1, 2))
	}
	// c1 仍被 c1 自身的足迹认领
	if regs[0].Cell().HoverEnterActive() || !regs[1].Cell().HoverEnterActive() {
		t.Errorf("claims after leaving c0: c0=%v c1=%v, want false true",
			regs[0].Cell().HoverEnterActive(), regs[1].Cell().HoverEnterActive())
	}
	if !regs[0].Cell().HoverStartActive() {
		t.Error("hover-start highlight should survive hover leave")
	}

	regs[1].HoverLeave()
	if got := view.taggedCells("target"); len(got) != 0 {
		t.Errorf("after leaving all cells target tags = %v, want none", got)
	}

	// 从最后一列进入时足迹会换行，不应点亮任何单元格
	regs[3].HoverEnter()
	if got := view.taggedCells("target"); len(got) != 0 {
		t.Errorf("wrapping footprint highlighted %v", got)
	}
	c.PointerUp("")
}

// TestSessionStateMachine 测试会话状态迁移与单会话约束
func TestSessionStateMachine(t *testing.T) {
	c, view, _ := newTestCoordinator(t, 4, 8, CellOptions{})
	a := mustMount(t, c, DraggableOptions[string]{ID: "a", Item: "a", CellID: cellID(0), DragTags: []string{"grabbed"}})
	b := mustMount(t, c, DraggableOptions[string]{ID: "b", Item: "b", CellID: cellID(1)})

	if !a.PointerDown() {
		t.Fatal("first PointerDown refused")
	}
	s := c.Session()
	if s.State() != StateArmed {
		t.Errorf("state after PointerDown = %s, want armed", s.State())
	}
	if !view.lifted["a"] || !view.ghosts[0].visible {
		t.Error("source should be lifted and ghost visible after arming")
	}

	if b.PointerDown() {
		t.Error("second PointerDown must be refused while a session is active")
	}

	c.PointerMove(200, 100)
	if s.State() != StateDragging {
		t.Errorf("state after PointerMove = %s, want dragging", s.State())
	}
	// 代理以指针为中心（recordingGhost 为 40x20）
	if g := view.ghosts[0]; g.x != 180 || g.y != 90 {
		t.Errorf("ghost at (%v, %v), want (180, 90)", g.x, g.y)
	}

	res := c.PointerUp(cellID(5))
	if !res.Committed {
		t.Fatalf("drop should commit, reason=%s", res.Verdict.Reason)
	}
	if s.State() != StateIdle {
		t.Errorf("state after PointerUp = %s, want idle", s.State())
	}
	if view.lifted["a"] {
		t.Error("source should be settled after drop")
	}

	// 没有活动会话时 PointerUp 被忽略
	if res := c.PointerUp(cellID(2)); res.Handled {
		t.Error("PointerUp without a session should not be handled")
	}
}

// TestDropTargetValidation 缺少标识、未注册、分组不符、已拆除的目标都回滚
func TestDropTargetValidation(t *testing.T) {
	c, _, regs := newTestCoordinator(t, 4, 8, CellOptions{})
	if err := c.DefineGroup("hotbar", 5); err != nil {
		t.Fatalf("DefineGroup error: %v", err)
	}
	if _, err := c.Dropzone("hot-0", CellOptions{Group: "hotbar"}); err != nil {
		t.Fatalf("Dropzone error: %v", err)
	}
	d := mustMount(t, c, DraggableOptions[string]{ID: "a", Item: "a", CellID: cellID(0)})
	regs[6].Teardown()

	tests := []struct {
		target string
		want   RejectReason
	}{
		{"", ReasonUnknownTarget},
		{"nowhere", ReasonUnknownTarget},
		{"hot-0", ReasonGroup},
		{cellID(6), ReasonDetached},
	}
	for _, tt := range tests {
		res := drag(t, c, d, tt.target)
		if res.Committed || res.Verdict.Reason != tt.want {
			t.Errorf("target %q: committed=%v reason=%s, want reason %s", tt.target, res.Committed, res.Verdict.Reason, tt.want)
		}
	}
	if anchor, _ := c.Occupancy().AnchorOf("a"); anchor != cellID(0) {
		t.Errorf("item moved to %q after rejected drops", anchor)
	}
}

// TestCrossGroupDrop 接受多个分组的物品可以在分组之间移动
func TestCrossGroupDrop(t *testing.T) {
	c, _, _ := newTestCoordinator(t, 4, 8, CellOptions{ItemsLimit: 1})
	if err := c.DefineGroup("hotbar", 5); err != nil {
		t.Fatalf("DefineGroup error: %v", err)
	}
	for i := 0; i < 5; i++ {
		if _, err := c.Dropzone("hot-"+string(rune('0'+i)), CellOptions{Group: "hotbar", ItemsLimit: 1}); err != nil {
			t.Fatalf("Dropzone error: %v", err)
		}
	}
	d := mustMount(t, c, DraggableOptions[string]{
		ID: "sword", Item: "sword", CellID: cellID(2),
		Groups: []string{DefaultGroup, "hotbar"},
	})

	if res := drag(t, c, d, "hot-4"); !res.Committed {
		t.Fatalf("drop into hotbar should commit, reason=%s", res.Verdict.Reason)
	}
	if owner, ok := c.Occupancy().OwnerOf(cellID(2)); ok {
		t.Errorf("old bag cell still owned by %s", owner)
	}
	if anchor, _ := c.Occupancy().AnchorOf("sword"); anchor != "hot-4" {
		t.Errorf("anchor = %q, want hot-4", anchor)
	}
}

// TestMountErrors 测试挂载拖拽源时的错误
func TestMountErrors(t *testing.T) {
	c, _, _ := newTestCoordinator(t, 4, 8, CellOptions{})
	mustMount(t, c, DraggableOptions[string]{ID: "a", Item: "a", CellID: cellID(0), Size: Size{W: 2, H: 1}})

	if _, err := c.Mount(DraggableOptions[string]{ID: "a"}); !errors.Is(err, ErrDuplicateItemID) {
		t.Errorf("duplicate id error = %v, want ErrDuplicateItemID", err)
	}
	if _, err := c.Mount(DraggableOptions[string]{CellID: "nope"}); !errors.Is(err, ErrUnknownCell) {
		t.Errorf("unknown cell error = %v, want ErrUnknownCell", err)
	}
	if _, err := c.Mount(DraggableOptions[string]{CellID: cellID(1)}); !errors.Is(err, ErrPlacementRejected) {
		t.Errorf("overlapping mount error = %v, want ErrPlacementRejected", err)
	}
	if _, err := c.Mount(DraggableOptions[string]{CellID: cellID(3), Size: Size{W: 2, H: 1}}); !errors.Is(err, ErrPlacementRejected) {
		t.Errorf("wrapping mount error = %v, want ErrPlacementRejected", err)
	}

	d, err := c.Mount(DraggableOptions[string]{Item: "loose"})
	if err != nil {
		t.Fatalf("mount without cell error: %v", err)
	}
	if d.ID() == "" {
		t.Error("generated item id should not be empty")
	}
}

// TestMountChecksGroupAndDetached 初始挂载与放置一样校验分组和拆除状态
func TestMountChecksGroupAndDetached(t *testing.T) {
	c, _, regs := newTestCoordinator(t, 4, 8, CellOptions{ItemsLimit: 1})
	if err := c.DefineGroup("hotbar", 3); err != nil {
		t.Fatalf("DefineGroup error: %v", err)
	}
	if _, err := c.Dropzone("h0", CellOptions{Group: "hotbar", ItemsLimit: 1}); err != nil {
		t.Fatalf("Dropzone(h0) error: %v", err)
	}

	// 默认分组的物品不能挂载到快捷栏
	_, err := c.Mount(DraggableOptions[string]{ID: "shield", Item: "shield", CellID: "h0"})
	if !errors.Is(err, ErrPlacementRejected) || !strings.Contains(err.Error(), ReasonGroup.String()) {
		t.Errorf("mount into foreign group error = %v, want ErrPlacementRejected (group)", err)
	}
	if _, ok := c.Occupancy().AnchorOf("shield"); ok {
		t.Error("rejected mount should not create a record")
	}
	if _, ok := c.Draggable("shield"); ok {
		t.Error("rejected mount should not register a draggable")
	}

	// 接受快捷栏的物品可以挂载，并且原地放下总是允许的
	potion := mustMount(t, c, DraggableOptions[string]{ID: "potion", Item: "potion", CellID: "h0", Groups: []string{"hotbar"}})
	if res := drag(t, c, potion, "h0"); !res.Committed {
		t.Errorf("no-op drop after mount should commit, reason=%s", res.Verdict.Reason)
	}

	regs[5].Teardown()
	if !regs[5].Cell().Detached() {
		t.Fatal("teardown should mark the cell detached")
	}
	_, err = c.Mount(DraggableOptions[string]{ID: "gem", Item: "gem", CellID: cellID(5)})
	if !errors.Is(err, ErrPlacementRejected) || !strings.Contains(err.Error(), ReasonDetached.String()) {
		t.Errorf("mount onto detached cell error = %v, want ErrPlacementRejected (detached)", err)
	}
}

// TestDraggableUpdateAndTeardown 测试原地更新负载与拆除拖拽源
func TestDraggableUpdateAndTeardown(t *testing.T) {
	c, view, _ := newTestCoordinator(t, 4, 8, highlightOptions(1))
	d := mustMount(t, c, DraggableOptions[string]{ID: "a", Item: "torch", CellID: cellID(2)})

	d.Update("lit torch")
	if rec, _ := c.Occupancy().RecordAt(cellID(2)); rec.Payload != "lit torch" {
		t.Errorf("payload = %q, want updated payload", rec.Payload)
	}

	d.PointerDown()
	d.Teardown()
	if c.Dragging() {
		t.Error("teardown of dragged item should end the session")
	}
	if !view.ghosts[0].snapped {
		t.Error("teardown during drag should roll back")
	}
	if len(c.Registry().HighlightedCells()) != 0 {
		t.Error("highlights should be cleared after teardown rollback")
	}
	if d.PointerDown() {
		t.Error("detached draggable should refuse PointerDown")
	}
	if _, ok := c.Draggable("a"); ok {
		t.Error("detached draggable should not be listed")
	}
	if anchor, _ := c.Occupancy().AnchorOf("a"); anchor != cellID(2) {
		t.Errorf("record should survive teardown, anchor=%q", anchor)
	}
}

// TestCoordinatorClose 关闭后所有操作都是空操作
func TestCoordinatorClose(t *testing.T) {
	c, _, regs := newTestCoordinator(t, 4, 8, highlightOptions(1))
	d := mustMount(t, c, DraggableOptions[string]{ID: "a", Item: "a", CellID: cellID(0)})
	d.PointerDown()

	c.Close()
	if c.Dragging() {
		t.Error("Close should roll back the active session")
	}
	if d.PointerDown() {
		t.Error("PointerDown after Close should be refused")
	}
	regs[1].HoverEnter()
	if _, err := c.Dropzone("late", CellOptions{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Dropzone after Close error = %v, want ErrClosed", err)
	}
	if _, err := c.Mount(DraggableOptions[string]{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Mount after Close error = %v, want ErrClosed", err)
	}
}
