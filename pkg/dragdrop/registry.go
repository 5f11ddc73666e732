package dragdrop

import (
	"errors"
	"fmt"
)

// DefaultGroup 未指定分组时单元格所属的分组
const DefaultGroup = "default"

// 注册相关的错误
var (
	ErrEmptyCellID     = errors.New("cell id must not be empty")
	ErrDuplicateCellID = errors.New("cell id already registered")
	ErrInvalidRowWidth = errors.New("row width must be positive")
	ErrGroupDefined    = errors.New("group already has registered cells")
)

// CellOptions 单元格注册选项
// 取代原先通过元素属性隐式传递的配置，只识别以下字段
type CellOptions struct {
	// Group 所属分组（独立网格），为空时使用 DefaultGroup
	Group string

	// ItemsLimit 单元格可同时容纳的物品数上限，0 表示不限制
	ItemsLimit int

	// HoverStartTags 拖拽开始时加到所有可用单元格上的高亮标签
	HoverStartTags []string

	// HoverEnterTags 指针进入某单元格且放置有效时，加到足迹覆盖单元格上的高亮标签
	HoverEnterTags []string
}

// Cell 已注册的放置目标
// 单元格只保存布局元数据，不持有任何物品状态（物品状态由 Table 独占）
type Cell struct {
	ID      string
	Group   string
	Index   int // 在分组内的注册序号，配合行宽计算行列
	Options CellOptions

	detached   bool
	hoverStart bool
	// enterClaims 记录是哪些被悬停的单元格的足迹检查点亮了本单元格
	// 只有集合为空时才真正移除 hover-enter 标签
	enterClaims map[string]struct{}
}

// HoverStartActive 是否正处于 hover-start 高亮
func (c *Cell) HoverStartActive() bool {
	return c.hoverStart
}

// HoverEnterActive 是否正处于 hover-enter 高亮
func (c *Cell) HoverEnterActive() bool {
	return len(c.enterClaims) > 0
}

// Detached 单元格的悬停处理器是否已被拆除
func (c *Cell) Detached() bool {
	return c.detached
}

// Grid 一个分组对应的扁平网格
// 邻接关系完全由注册顺序 + 固定行宽推导，注册顺序因此不可更改
type Grid struct {
	Name     string
	RowWidth int
	cells    []*Cell
}

// Len 返回网格中已注册的单元格数量
func (g *Grid) Len() int {
	return len(g.cells)
}

// Cell 按线性索引获取单元格
func (g *Grid) Cell(index int) (*Cell, bool) {
	if index < 0 || index >= len(g.cells) {
		return nil, false
	}
	return g.cells[index], true
}

// Cells 返回按注册顺序排列的单元格副本
func (g *Grid) Cells() []*Cell {
	out := make([]*Cell, len(g.cells))
	copy(out, g.cells)
	return out
}

// IndexOf 将 (row, col) 转换为线性索引
// 参数:
//   - row: 行索引（0 起）
//   - col: 列索引（0 起），必须小于行宽
//
// 返回:
//   - int: 线性索引
//   - bool: 位置是否落在已注册的单元格上
func (g *Grid) IndexOf(row, col int) (int, bool) {
	if row < 0 || col < 0 || col >= g.RowWidth {
		return 0, false
	}
	index := row*g.RowWidth + col
	if index >= len(g.cells) {
		return 0, false
	}
	return index, true
}

// RowCol 将线性索引转换为 (row, col)
func (g *Grid) RowCol(index int) (row, col int) {
	return index / g.RowWidth, index % g.RowWidth
}

// Registry 单元格注册表
// 每个分组是一个独立网格，拥有自己的行宽和注册顺序
type Registry struct {
	defaultRowWidth int
	groups          map[string]*Grid
	groupOrder      []string
	byID            map[string]*Cell
}

// NewRegistry 创建注册表
// defaultRowWidth 用于未显式定义的分组，非正值按 1 处理
func NewRegistry(defaultRowWidth int) *Registry {
	if defaultRowWidth <= 0 {
		defaultRowWidth = 1
	}
	return &Registry{
		defaultRowWidth: defaultRowWidth,
		groups:          make(map[string]*Grid),
		byID:            make(map[string]*Cell),
	}
}

// DefineGroup 定义分组及其行宽
// 分组一旦注册了单元格，行宽就不能再修改（否则已有足迹会失效）
func (r *Registry) DefineGroup(name string, rowWidth int) (*Grid, error) {
	if rowWidth <= 0 {
		return nil, fmt.Errorf("group %q: %w", name, ErrInvalidRowWidth)
	}
	if name == "" {
		name = DefaultGroup
	}
	if g, ok := r.groups[name]; ok {
		if g.Len() > 0 && g.RowWidth != rowWidth {
			return nil, fmt.Errorf("group %q: %w", name, ErrGroupDefined)
		}
		g.RowWidth = rowWidth
		return g, nil
	}
	g := &Grid{Name: name, RowWidth: rowWidth}
	r.groups[name] = g
	r.groupOrder = append(r.groupOrder, name)
	return g, nil
}

// Grid 获取分组网格
func (r *Registry) Grid(name string) (*Grid, bool) {
	if name == "" {
		name = DefaultGroup
	}
	g, ok := r.groups[name]
	return g, ok
}

// Groups 按定义顺序返回所有分组
func (r *Registry) Groups() []*Grid {
	out := make([]*Grid, 0, len(r.groupOrder))
	for _, name := range r.groupOrder {
		out = append(out, r.groups[name])
	}
	return out
}

// Lookup 按 ID 查找单元格
func (r *Registry) Lookup(id string) (*Cell, bool) {
	c, ok := r.byID[id]
	return c, ok
}

// Len 返回所有分组的单元格总数
func (r *Registry) Len() int {
	return len(r.byID)
}

// Register 追加注册一个单元格
// 参数:
//   - id: 单元格唯一标识
//   - opts: 注册选项
//
// 返回:
//   - *Cell: 新注册的单元格
//   - error: ID 为空或重复时返回错误
func (r *Registry) Register(id string, opts CellOptions) (*Cell, error) {
	if id == "" {
		return nil, ErrEmptyCellID
	}
	if _, exists := r.byID[id]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateCellID, id)
	}
	if opts.Group == "" {
		opts.Group = DefaultGroup
	}

	g, ok := r.groups[opts.Group]
	if !ok {
		g, _ = r.DefineGroup(opts.Group, r.defaultRowWidth)
	}

	cell := &Cell{
		ID:      id,
		Group:   opts.Group,
		Index:   len(g.cells),
		Options: opts,
	}
	g.cells = append(g.cells, cell)
	r.byID[id] = cell
	return cell, nil
}

// eachCell 按分组定义顺序、注册顺序遍历所有单元格
func (r *Registry) eachCell(fn func(*Cell)) {
	for _, name := range r.groupOrder {
		for _, c := range r.groups[name].cells {
			fn(c)
		}
	}
}

// HighlightedCells 返回仍带有任意高亮的单元格 ID
func (r *Registry) HighlightedCells() []string {
	var ids []string
	r.eachCell(func(c *Cell) {
		if c.hoverStart || len(c.enterClaims) > 0 {
			ids = append(ids, c.ID)
		}
	})
	return ids
}
