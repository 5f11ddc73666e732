package dragdrop

// RejectReason 放置被拒绝的原因
// 只用于日志和测试，不会向最终用户展示
type RejectReason int

const (
	ReasonNone RejectReason = iota
	// ReasonWrap 足迹跨越了行边界
	ReasonWrap
	// ReasonOverflow 足迹超出了网格末尾
	ReasonOverflow
	// ReasonEmptyFootprint 没有可用的足迹单元格
	ReasonEmptyFootprint
	// ReasonConflict 覆盖的单元格属于其他物品
	ReasonConflict
	// ReasonCapacity 单元格已达到容量上限
	ReasonCapacity
	// ReasonUnknownTarget 目标缺少标识或未注册
	ReasonUnknownTarget
	// ReasonGroup 目标分组不接受该物品
	ReasonGroup
	// ReasonDetached 目标单元格已被拆除
	ReasonDetached
)

func (r RejectReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonWrap:
		return "wrap"
	case ReasonOverflow:
		return "overflow"
	case ReasonEmptyFootprint:
		return "empty-footprint"
	case ReasonConflict:
		return "conflict"
	case ReasonCapacity:
		return "capacity"
	case ReasonUnknownTarget:
		return "unknown-target"
	case ReasonGroup:
		return "group"
	case ReasonDetached:
		return "detached"
	}
	return "unknown"
}

// PlacementVerdict 放置校验结果
type PlacementVerdict struct {
	Allowed bool
	Reason  RejectReason

	// Footprint 足迹覆盖的单元格 ID，第一个为锚点
	Footprint []string
	// NewRecords 尚无记录、需要惰性创建依附记录的单元格
	NewRecords []string
	// Reassign 已有（空的或属于移动物品自身的）记录、需要重新分配的单元格
	Reassign []string
}

// FootprintCells 计算以 anchorIndex 为锚点、尺寸为 size 的足迹
//
// 逐行遍历 size.H 行，每行步进行宽；行内遍历 size.W 列。
// 列越过行边界（col+k >= rowWidth）或索引超出注册表长度时返回 nil，
// 绝不返回部分结果。
func FootprintCells(g *Grid, anchorIndex int, size Size) []*Cell {
	cells, _ := footprint(g, anchorIndex, size)
	return cells
}

func footprint(g *Grid, anchorIndex int, size Size) ([]*Cell, RejectReason) {
	if g == nil || anchorIndex < 0 || anchorIndex >= len(g.cells) {
		return nil, ReasonOverflow
	}
	size = size.normalize()
	_, col := g.RowCol(anchorIndex)

	cells := make([]*Cell, 0, size.W*size.H)
	for r := 0; r < size.H; r++ {
		for k := 0; k < size.W; k++ {
			if col+k >= g.RowWidth {
				return nil, ReasonWrap
			}
			index := anchorIndex + r*g.RowWidth + k
			if index >= len(g.cells) {
				return nil, ReasonOverflow
			}
			cells = append(cells, g.cells[index])
		}
	}
	return cells, ReasonNone
}

// CanPlace 校验足迹上的每个单元格是否都可被 movingItemID 占用
//
// 已有记录的单元格：只有当记录属于正在移动的物品（与其原锚点的反向引用相等）
// 或记录已被清空时才允许；持有其他物品负载、或引用其他锚点的单元格会阻止放置。
// 没有记录的单元格进入 NewRecords，等待提交时惰性创建。
// 每个覆盖单元格的容量限制独立检查。
//
// 本函数不修改任何状态，相同输入重复调用结果一致。
func CanPlace[T any](t *Table[T], cells []*Cell, targetCellID, movingItemID string) PlacementVerdict {
	verdict := PlacementVerdict{}
	if len(cells) == 0 {
		verdict.Reason = ReasonEmptyFootprint
		return verdict
	}

	ids := make([]string, 0, len(cells))
	if targetCellID == "" {
		targetCellID = cells[0].ID
	}
	// 目标必须是足迹中的一个单元格，否则锚点未经校验
	inFootprint := false
	for _, c := range cells {
		if c.ID == targetCellID {
			inFootprint = true
			break
		}
	}
	if !inFootprint {
		verdict.Reason = ReasonUnknownTarget
		return verdict
	}
	ids = append(ids, targetCellID)
	for _, c := range cells {
		if c.ID != targetCellID {
			ids = append(ids, c.ID)
		}
	}

	for _, c := range cells {
		if limit := c.Options.ItemsLimit; limit > 0 && t.occupants(c.ID, movingItemID) >= limit {
			return PlacementVerdict{Reason: ReasonCapacity}
		}

		rec, exists := t.records[c.ID]
		if !exists {
			verdict.NewRecords = append(verdict.NewRecords, c.ID)
			continue
		}
		if rec.Empty() || t.ownedBy(rec, movingItemID) {
			verdict.Reassign = append(verdict.Reassign, c.ID)
			continue
		}
		return PlacementVerdict{Reason: ReasonConflict}
	}

	verdict.Allowed = true
	verdict.Footprint = ids
	return verdict
}
