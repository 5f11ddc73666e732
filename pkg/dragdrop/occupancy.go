package dragdrop

// Size 物品足迹尺寸（单位：格）
type Size struct {
	W int `yaml:"width"`
	H int `yaml:"height"`
}

// normalize 非正的宽高按 1 处理
func (s Size) normalize() Size {
	if s.W < 1 {
		s.W = 1
	}
	if s.H < 1 {
		s.H = 1
	}
	return s
}

// Area 足迹覆盖的格子数
func (s Size) Area() int {
	n := s.normalize()
	return n.W * n.H
}

// Record 单元格上的占用记录
//
// 锚点单元格持有物品负载（HasPayload=true），
// 依附单元格只记录指向锚点单元格的反向引用（RelatesTo），不持有负载。
// 记录被清空后不会删除，单元格槽位可以复用。
type Record[T any] struct {
	CellID     string
	ItemID     string
	Payload    T
	HasPayload bool
	RelatesTo  string
	Size       Size
}

// IsAnchor 是否为锚点记录
func (r Record[T]) IsAnchor() bool {
	return r.HasPayload
}

// IsDependent 是否为依附记录
func (r Record[T]) IsDependent() bool {
	return !r.HasPayload && r.RelatesTo != ""
}

// Empty 记录是否已清空（可复用）
func (r Record[T]) Empty() bool {
	return !r.HasPayload && r.RelatesTo == ""
}

// AnchorCell 返回记录所属的锚点单元格，空记录返回 ""
func (r Record[T]) AnchorCell() string {
	if r.HasPayload {
		return r.CellID
	}
	return r.RelatesTo
}

// Occupancy 占用表的只读视图，供渲染代码读取
type Occupancy[T any] interface {
	RecordAt(cellID string) (Record[T], bool)
	AnchorOf(itemID string) (string, bool)
	OwnerOf(cellID string) (string, bool)
	Records() []Record[T]
	Anchors() []Record[T]
	Len() int
}

// Table 占用表：物品与单元格关系的唯一权威状态
// 不是并发安全的，所有调用都应发生在同一个事件循环中
type Table[T any] struct {
	records map[string]*Record[T]
	order   []string          // 记录创建顺序，保证遍历稳定
	anchors map[string]string // itemID -> 锚点单元格 ID
}

// NewTable 创建空占用表
func NewTable[T any]() *Table[T] {
	return &Table[T]{
		records: make(map[string]*Record[T]),
		anchors: make(map[string]string),
	}
}

// RecordAt 返回单元格上记录的副本
func (t *Table[T]) RecordAt(cellID string) (Record[T], bool) {
	rec, ok := t.records[cellID]
	if !ok {
		return Record[T]{}, false
	}
	return *rec, true
}

// AnchorOf 返回物品当前的锚点单元格
func (t *Table[T]) AnchorOf(itemID string) (string, bool) {
	cell, ok := t.anchors[itemID]
	return cell, ok
}

// OwnerOf 返回占用该单元格的物品 ID（锚点或依附均可）
func (t *Table[T]) OwnerOf(cellID string) (string, bool) {
	rec, ok := t.records[cellID]
	if !ok || rec.Empty() {
		return "", false
	}
	return rec.ItemID, true
}

// Records 按创建顺序返回所有记录的副本（包括已清空的记录）
func (t *Table[T]) Records() []Record[T] {
	out := make([]Record[T], 0, len(t.order))
	for _, id := range t.order {
		out = append(out, *t.records[id])
	}
	return out
}

// Anchors 返回所有持有负载的锚点记录
func (t *Table[T]) Anchors() []Record[T] {
	out := make([]Record[T], 0, len(t.anchors))
	for _, id := range t.order {
		if rec := t.records[id]; rec.HasPayload {
			out = append(out, *rec)
		}
	}
	return out
}

// Len 返回记录总数
func (t *Table[T]) Len() int {
	return len(t.order)
}

// ownedBy 判断记录是否属于正在移动的物品
// 匹配规则：与物品原锚点单元格的反向引用相等（或就是原锚点本身）
func (t *Table[T]) ownedBy(rec *Record[T], itemID string) bool {
	anchor, ok := t.anchors[itemID]
	if !ok || itemID == "" {
		return false
	}
	if rec.HasPayload && rec.ItemID != itemID {
		return false
	}
	return rec.AnchorCell() == anchor
}

// occupants 统计单元格上除 movingItemID 以外的物品数
func (t *Table[T]) occupants(cellID, movingItemID string) int {
	rec, ok := t.records[cellID]
	if !ok || rec.Empty() || t.ownedBy(rec, movingItemID) {
		return 0
	}
	return 1
}

// ensure 获取记录，不存在时惰性创建
func (t *Table[T]) ensure(cellID string) *Record[T] {
	if rec, ok := t.records[cellID]; ok {
		return rec
	}
	rec := &Record[T]{CellID: cellID}
	t.records[cellID] = rec
	t.order = append(t.order, cellID)
	return rec
}

// vacate 清空物品的锚点负载以及所有指向该锚点的反向引用
func (t *Table[T]) vacate(itemID string) {
	anchor, ok := t.anchors[itemID]
	if !ok {
		return
	}
	var zero T
	for _, id := range t.order {
		rec := t.records[id]
		if id == anchor && rec.HasPayload {
			rec.Payload = zero
			rec.HasPayload = false
			rec.ItemID = ""
			rec.Size = Size{}
			continue
		}
		if rec.RelatesTo == anchor {
			rec.RelatesTo = ""
			rec.ItemID = ""
			rec.Size = Size{}
		}
	}
	delete(t.anchors, itemID)
}

// occupy 在足迹上写入新的占用关系
// footprint[0] 为锚点，其余单元格写入反向引用
func (t *Table[T]) occupy(itemID string, payload T, size Size, footprint []string) {
	if len(footprint) == 0 {
		return
	}
	size = size.normalize()
	anchor := footprint[0]
	for i, cellID := range footprint {
		rec := t.ensure(cellID)
		rec.ItemID = itemID
		rec.Size = size
		if i == 0 {
			rec.Payload = payload
			rec.HasPayload = true
			rec.RelatesTo = ""
			continue
		}
		var zero T
		rec.Payload = zero
		rec.HasPayload = false
		rec.RelatesTo = anchor
	}
	t.anchors[itemID] = anchor
}

// setPayload 原地替换锚点负载
func (t *Table[T]) setPayload(itemID string, payload T) bool {
	anchor, ok := t.anchors[itemID]
	if !ok {
		return false
	}
	t.records[anchor].Payload = payload
	return true
}
