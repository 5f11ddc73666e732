// Package dragdrop 实现网格背包的拖放放置引擎
//
// 引擎跟踪哪些格子被占用、校验多格物品能否放在目标位置，
// 并在物品移动时协调物品与单元格的关系。渲染、输入轮询等都是外部协作者：
// 引擎只消费指针位置样本、限定在可拖拽/可放置区域上的按下/松开事件，
// 并通过 View 输出高亮标签和视觉代理请求。
//
// 引擎是单线程、事件驱动的，不是并发安全的。
package dragdrop

import (
	"errors"
	"fmt"
	"log"
)

// 拖拽源相关的错误
var (
	ErrDuplicateItemID   = errors.New("item id already mounted")
	ErrUnknownCell       = errors.New("cell is not registered")
	ErrPlacementRejected = errors.New("placement rejected")
	ErrClosed            = errors.New("coordinator is closed")
)

// DropResult 一次松开指针的结果
type DropResult struct {
	// Handled 是否有活动会话处理了本次事件
	Handled   bool
	Committed bool
	Verdict   PlacementVerdict
	ItemID    string
	Target    string
}

// Coordinator 拖放协调器
//
// 由初始化背包界面的作用域持有，同一时刻只持有一个活动会话；
// 随作用域一起通过 Close 拆除，不存在进程级的全局订阅列表。
type Coordinator[T any] struct {
	registry   *Registry
	table      *Table[T]
	view       View
	reconciler *Reconciler[T]

	draggables map[string]*Draggable[T]
	dragOrder  []string
	session    *Session[T]
	nextItemID int
	closed     bool
}

// NewCoordinator 创建协调器
// 参数:
//   - rowWidth: 默认分组的行宽
//   - view: 渲染协作者，为 nil 时使用 NopView
func NewCoordinator[T any](rowWidth int, view View) *Coordinator[T] {
	if view == nil {
		view = NopView{}
	}
	table := NewTable[T]()
	return &Coordinator[T]{
		registry:   NewRegistry(rowWidth),
		table:      table,
		view:       view,
		reconciler: NewReconciler(table, view),
		draggables: make(map[string]*Draggable[T]),
	}
}

// Registry 返回单元格注册表
func (c *Coordinator[T]) Registry() *Registry {
	return c.registry
}

// Occupancy 返回占用表的只读实时视图
func (c *Coordinator[T]) Occupancy() Occupancy[T] {
	return c.table
}

// DefineGroup 定义一个独立网格分组及其行宽
func (c *Coordinator[T]) DefineGroup(name string, rowWidth int) error {
	_, err := c.registry.DefineGroup(name, rowWidth)
	return err
}

// Session 返回当前活动会话，没有时返回 nil
func (c *Coordinator[T]) Session() *Session[T] {
	return c.session
}

// Dragging 是否有活动会话
func (c *Coordinator[T]) Dragging() bool {
	return c.session != nil
}

// Draggable 按物品 ID 查找已挂载的拖拽源
func (c *Coordinator[T]) Draggable(itemID string) (*Draggable[T], bool) {
	d, ok := c.draggables[itemID]
	return d, ok
}

// Draggables 按挂载顺序返回所有拖拽源
func (c *Coordinator[T]) Draggables() []*Draggable[T] {
	out := make([]*Draggable[T], 0, len(c.dragOrder))
	for _, id := range c.dragOrder {
		out = append(out, c.draggables[id])
	}
	return out
}

// Registration 单元格注册句柄
// 输入层在指针进入/离开该单元格时调用 HoverEnter/HoverLeave
type Registration[T any] struct {
	coord *Coordinator[T]
	cell  *Cell
}

// Cell 返回注册的单元格
func (r *Registration[T]) Cell() *Cell {
	return r.cell
}

// HoverEnter 指针进入单元格
func (r *Registration[T]) HoverEnter() {
	r.coord.hoverEnter(r.cell)
}

// HoverLeave 指针离开单元格
func (r *Registration[T]) HoverLeave() {
	r.coord.hoverLeave(r.cell)
}

// Teardown 拆除悬停处理器，单元格本身保留在注册表中（注册顺序决定邻接关系）
func (r *Registration[T]) Teardown() {
	if r.cell.detached {
		return
	}
	r.coord.hoverLeave(r.cell)
	r.cell.detached = true
}

// Dropzone 把一个元素标记为放置单元格
func (c *Coordinator[T]) Dropzone(id string, opts CellOptions) (*Registration[T], error) {
	if c.closed {
		return nil, ErrClosed
	}
	cell, err := c.registry.Register(id, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to register dropzone: %w", err)
	}
	return &Registration[T]{coord: c, cell: cell}, nil
}

// DraggableOptions 拖拽源选项
type DraggableOptions[T any] struct {
	// Item 物品负载
	Item T
	// ID 物品的固定标识，为空时自动生成
	ID string
	// CellID 初始挂载的单元格，为空表示物品不在网格上
	CellID string
	// Size 足迹尺寸，默认 1x1
	Size Size
	// DragTags 拖拽期间加到源元素上的标签
	DragTags []string
	// Groups 可放置的分组，默认只有 DefaultGroup
	Groups []string
}

// Draggable 拖拽源句柄
type Draggable[T any] struct {
	coord    *Coordinator[T]
	id       string
	opts     DraggableOptions[T]
	detached bool
}

// ID 返回物品 ID
func (d *Draggable[T]) ID() string {
	return d.id
}

// Item 返回当前物品负载
func (d *Draggable[T]) Item() T {
	return d.opts.Item
}

// Size 返回足迹尺寸
func (d *Draggable[T]) Size() Size {
	return d.opts.Size
}

// Mount 把一个元素标记为拖拽源
// 指定了 CellID 时会像一次放置那样校验并写入初始记录
func (c *Coordinator[T]) Mount(opts DraggableOptions[T]) (*Draggable[T], error) {
	if c.closed {
		return nil, ErrClosed
	}
	if opts.ID == "" {
		c.nextItemID++
		opts.ID = fmt.Sprintf("item-%d", c.nextItemID)
	}
	if _, exists := c.draggables[opts.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateItemID, opts.ID)
	}
	opts.Size = opts.Size.normalize()
	if len(opts.Groups) == 0 {
		opts.Groups = []string{DefaultGroup}
	}

	if opts.CellID != "" {
		cell, ok := c.registry.Lookup(opts.CellID)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCell, opts.CellID)
		}
		verdict := c.evaluateMount(opts, cell)
		if !verdict.Allowed {
			return nil, fmt.Errorf("%w: item %s at %s (%s)", ErrPlacementRejected, opts.ID, opts.CellID, verdict.Reason)
		}
		c.table.vacate(opts.ID)
		c.table.occupy(opts.ID, opts.Item, opts.Size, verdict.Footprint)
	}

	d := &Draggable[T]{coord: c, id: opts.ID, opts: opts}
	c.draggables[opts.ID] = d
	c.dragOrder = append(c.dragOrder, opts.ID)
	return d, nil
}

// Update 原地替换物品负载（锚点不变）
func (d *Draggable[T]) Update(item T) {
	d.opts.Item = item
	d.coord.table.setPayload(d.id, item)
	if s := d.coord.session; s != nil && s.ItemID == d.id {
		s.Payload = item
	}
}

// PointerDown 在拖拽源上按下指针，开始一次拖拽会话
// 已有活动会话或拖拽源已拆除时返回 false
func (d *Draggable[T]) PointerDown() bool {
	if d.detached {
		return false
	}
	return d.coord.arm(d)
}

// Teardown 拆除拖拽源；若它正在被拖拽，先回滚当前会话
// 占用表中的记录保留，物品仍在背包里
func (d *Draggable[T]) Teardown() {
	if d.detached {
		return
	}
	c := d.coord
	if s := c.session; s != nil && s.ItemID == d.id {
		c.finish(s, PlacementVerdict{Reason: ReasonDetached})
	}
	d.detached = true
	delete(c.draggables, d.id)
	for i, id := range c.dragOrder {
		if id == d.id {
			c.dragOrder = append(c.dragOrder[:i], c.dragOrder[i+1:]...)
			break
		}
	}
}

// arm Idle → Armed
func (c *Coordinator[T]) arm(d *Draggable[T]) bool {
	if c.closed {
		return false
	}
	if c.session != nil {
		log.Printf("[Coordinator] Ignoring pointer-down on %s: %s is already being dragged", d.id, c.session.ItemID)
		return false
	}

	source, _ := c.table.AnchorOf(d.id)
	s := newSession(d.id, d.opts.Item, d.opts.Size, source, d.opts.Groups, d.opts.DragTags)
	s.advance(StateArmed)

	c.view.Lift(s.ItemID, s.DragTags)
	s.ghost = c.view.NewGhost(s.ItemID, source)
	if s.ghost != nil {
		s.ghost.Show()
	}
	c.session = s
	c.highlightAvailable(s)

	log.Printf("[Coordinator] Drag started: item=%s source=%q", s.ItemID, source)
	return true
}

// PointerMove 指针移动样本
// 代理以指针为中心跟随；首个样本把会话从 Armed 推进到 Dragging
func (c *Coordinator[T]) PointerMove(x, y float64) {
	s := c.session
	if s == nil {
		return
	}
	s.pointerX, s.pointerY = x, y
	if s.state == StateArmed {
		s.advance(StateDragging)
	}
	if s.ghost != nil {
		w, h := s.ghost.Bounds()
		s.ghost.MoveTo(x-w/2, y-h/2)
	}
}

// PointerUp 松开指针
// 参数:
//   - targetCellID: 指针下方的单元格 ID，不在任何单元格上时为空
//
// 返回:
//   - DropResult: 是否提交以及校验结果；没有活动会话时 Handled 为 false
func (c *Coordinator[T]) PointerUp(targetCellID string) DropResult {
	s := c.session
	if s == nil {
		return DropResult{}
	}
	verdict := c.Evaluate(s, targetCellID)
	committed := c.finish(s, verdict)
	return DropResult{
		Handled:   true,
		Committed: committed,
		Verdict:   verdict,
		ItemID:    s.ItemID,
		Target:    targetCellID,
	}
}

// Evaluate 计算会话放到目标单元格的最终裁决（不修改任何状态）
func (c *Coordinator[T]) Evaluate(s *Session[T], targetCellID string) PlacementVerdict {
	if targetCellID == "" {
		return PlacementVerdict{Reason: ReasonUnknownTarget}
	}
	cell, ok := c.registry.Lookup(targetCellID)
	if !ok {
		return PlacementVerdict{Reason: ReasonUnknownTarget}
	}
	return c.evaluateCell(s, cell)
}

func (c *Coordinator[T]) evaluateCell(s *Session[T], cell *Cell) PlacementVerdict {
	if cell.detached {
		return PlacementVerdict{Reason: ReasonDetached}
	}
	if !s.accepts(cell.Group) {
		return PlacementVerdict{Reason: ReasonGroup}
	}
	grid, _ := c.registry.Grid(cell.Group)
	cells, reason := footprint(grid, cell.Index, s.Size)
	if reason != ReasonNone {
		return PlacementVerdict{Reason: reason}
	}
	return CanPlace(c.table, cells, cell.ID, s.ItemID)
}

// evaluateMount 初始挂载与放置使用相同的拆除、分组和足迹校验
func (c *Coordinator[T]) evaluateMount(opts DraggableOptions[T], cell *Cell) PlacementVerdict {
	if cell.detached {
		return PlacementVerdict{Reason: ReasonDetached}
	}
	if !containsGroup(opts.Groups, cell.Group) {
		return PlacementVerdict{Reason: ReasonGroup}
	}
	grid, _ := c.registry.Grid(cell.Group)
	cells, reason := footprint(grid, cell.Index, opts.Size)
	if reason != ReasonNone {
		return PlacementVerdict{Reason: reason}
	}
	return CanPlace(c.table, cells, cell.ID, opts.ID)
}

// finish Dragging → Committed/RolledBack → Idle
func (c *Coordinator[T]) finish(s *Session[T], verdict PlacementVerdict) bool {
	committed := false
	if verdict.Allowed {
		committed = c.reconciler.Commit(s, verdict)
	}
	if !committed {
		c.reconciler.Rollback(s)
	}

	c.clearHighlights()
	s.advance(StateIdle)
	c.session = nil

	if committed {
		log.Printf("[Coordinator] Drop committed: item=%s anchor=%s cells=%d", s.ItemID, verdict.Footprint[0], len(verdict.Footprint))
	} else {
		log.Printf("[Coordinator] Drop rolled back: item=%s reason=%s", s.ItemID, verdict.Reason)
	}
	return committed
}

// highlightAvailable 给会话可放置分组中所有可用单元格加上 hover-start 标签
func (c *Coordinator[T]) highlightAvailable(s *Session[T]) {
	for _, group := range s.Groups {
		grid, ok := c.registry.Grid(group)
		if !ok {
			continue
		}
		for _, cell := range grid.cells {
			if cell.detached || !c.available(cell, s.ItemID) {
				continue
			}
			cell.hoverStart = true
			if len(cell.Options.HoverStartTags) > 0 {
				c.view.AddTags(cell.ID, cell.Options.HoverStartTags)
			}
		}
	}
}

// available 单元格是否还能接收 movingItemID（容量检查）
func (c *Coordinator[T]) available(cell *Cell, movingItemID string) bool {
	limit := cell.Options.ItemsLimit
	if limit <= 0 {
		return true
	}
	return c.table.occupants(cell.ID, movingItemID) < limit
}

// hoverEnter 指针进入单元格：从该单元格计算足迹，可放置时点亮全部覆盖单元格
func (c *Coordinator[T]) hoverEnter(entered *Cell) {
	s := c.session
	if s == nil || entered.detached {
		return
	}
	if _, already := s.hovered[entered.ID]; already {
		return
	}
	verdict := c.evaluateCell(s, entered)
	if !verdict.Allowed {
		return
	}

	for _, id := range verdict.Footprint {
		cell, _ := c.registry.Lookup(id)
		if cell.enterClaims == nil {
			cell.enterClaims = make(map[string]struct{})
		}
		first := len(cell.enterClaims) == 0
		cell.enterClaims[entered.ID] = struct{}{}
		if first && len(cell.Options.HoverEnterTags) > 0 {
			c.view.AddTags(cell.ID, cell.Options.HoverEnterTags)
		}
	}
	s.hovered[entered.ID] = verdict.Footprint
}

// hoverLeave 指针离开单元格：只撤销该单元格自己的声明
func (c *Coordinator[T]) hoverLeave(left *Cell) {
	s := c.session
	if s == nil {
		return
	}
	claimed, ok := s.hovered[left.ID]
	if !ok {
		return
	}
	delete(s.hovered, left.ID)

	for _, id := range claimed {
		cell, _ := c.registry.Lookup(id)
		if _, held := cell.enterClaims[left.ID]; !held {
			continue
		}
		delete(cell.enterClaims, left.ID)
		if len(cell.enterClaims) == 0 && len(cell.Options.HoverEnterTags) > 0 {
			c.view.RemoveTags(cell.ID, cell.Options.HoverEnterTags)
		}
	}
}

// clearHighlights 无条件清除整个注册表上的所有高亮标签
func (c *Coordinator[T]) clearHighlights() {
	c.registry.eachCell(func(cell *Cell) {
		if len(cell.Options.HoverStartTags) > 0 {
			c.view.RemoveTags(cell.ID, cell.Options.HoverStartTags)
		}
		if len(cell.Options.HoverEnterTags) > 0 {
			c.view.RemoveTags(cell.ID, cell.Options.HoverEnterTags)
		}
		cell.hoverStart = false
		cell.enterClaims = nil
	})
}

// Close 拆除协调器：回滚活动会话、拆除所有拖拽源和单元格处理器
func (c *Coordinator[T]) Close() {
	if c.closed {
		return
	}
	for _, d := range c.Draggables() {
		d.Teardown()
	}
	c.registry.eachCell(func(cell *Cell) {
		cell.detached = true
	})
	c.closed = true
}
