package dragdrop

// Reconciler 在松开指针时提交新的占用关系，或回滚到拖拽前的状态
type Reconciler[T any] struct {
	table *Table[T]
	view  View
}

// NewReconciler 创建 Reconciler，view 为 nil 时使用 NopView
func NewReconciler[T any](table *Table[T], view View) *Reconciler[T] {
	if view == nil {
		view = NopView{}
	}
	return &Reconciler[T]{table: table, view: view}
}

// Commit 提交一次有效的放置
// 顺序固定：先腾空旧足迹，再写入新足迹，然后移动渲染元素，最后移除代理。
// 旧足迹在写入前已完全腾空，不存在同时被两处占用的中间状态。
func (r *Reconciler[T]) Commit(s *Session[T], verdict PlacementVerdict) bool {
	if !verdict.Allowed || !s.advance(StateCommitted) {
		return false
	}

	from, _ := r.table.AnchorOf(s.ItemID)
	r.table.vacate(s.ItemID)
	r.table.occupy(s.ItemID, s.Payload, s.Size, verdict.Footprint)

	r.view.Reparent(s.ItemID, from, verdict.Footprint[0])
	if s.ghost != nil {
		s.ghost.Remove()
	}
	r.view.Settle(s.ItemID, s.DragTags)
	return true
}

// Rollback 放弃本次放置：代理弹回源位置并淡出，占用表不变
func (r *Reconciler[T]) Rollback(s *Session[T]) bool {
	if !s.advance(StateRolledBack) {
		return false
	}
	if s.ghost != nil {
		s.ghost.SnapBack()
	}
	r.view.Settle(s.ItemID, s.DragTags)
	return true
}
