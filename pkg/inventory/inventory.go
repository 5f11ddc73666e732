// Package inventory 按布局和物品目录装配拖放协调器
//
// 图形前端和终端前端共用同一套装配逻辑：逐个分组注册单元格，
// 再按初始位置挂载物品。本包不涉及任何屏幕几何，几何由前端自行计算。
package inventory

import (
	"fmt"
	"log"

	"github.com/decker502/gridbag/pkg/config"
	"github.com/decker502/gridbag/pkg/dragdrop"
)

// Coordinator 背包使用的协调器类型，物品负载是目录中的定义
type Coordinator = dragdrop.Coordinator[config.ItemDef]

// Cell 一个已注册的单元格
type Cell struct {
	ID       string
	Group    config.GroupLayout
	Row, Col int
	Zone     *dragdrop.Registration[config.ItemDef]
}

// Item 一个已挂载的物品
type Item struct {
	Def config.ItemDef
	// CellID 初始锚点单元格，为空表示物品在托盘上
	CellID string
}

// Inventory 装配结果
type Inventory struct {
	Cells []Cell
	Items []Item
	// Hotbar 快捷栏单元格 ID，从左到右；布局没有快捷栏时为空
	Hotbar []string
}

// New 创建协调器，默认行宽取第一个分组的列数
func New(layout *config.LayoutConfig, view dragdrop.View) *Coordinator {
	rowWidth := 1
	if len(layout.Groups) > 0 {
		rowWidth = layout.Groups[0].Columns
	}
	return dragdrop.NewCoordinator[config.ItemDef](rowWidth, view)
}

// Build 注册布局中的全部单元格并挂载目录中的物品
// 参数:
//   - coord: 新建的协调器
//   - layout: 已校验的布局
//   - catalog: 已按该布局校验的物品目录
//
// 返回:
//   - *Inventory: 单元格和物品，顺序与注册/挂载顺序一致
//   - error: 分组定义或单元格注册失败；物品挂载失败只记录日志
func Build(coord *Coordinator, layout *config.LayoutConfig, catalog *config.ItemCatalog) (*Inventory, error) {
	inv := &Inventory{}
	if err := inv.registerCells(coord, layout); err != nil {
		return nil, err
	}
	inv.mountItems(coord, layout, catalog)
	return inv, nil
}

// registerCells 按行优先顺序注册每个分组的单元格
// 注册顺序就是线性索引，必须与前端计算的行列一致
func (inv *Inventory) registerCells(coord *Coordinator, layout *config.LayoutConfig) error {
	for _, g := range layout.Groups {
		if err := coord.DefineGroup(g.Name, g.Columns); err != nil {
			return fmt.Errorf("group %s: %w", g.Name, err)
		}
		for index := 0; index < g.CellCount(); index++ {
			id := g.CellID(index)
			reg, err := coord.Dropzone(id, dragdrop.CellOptions{
				Group:          g.Name,
				ItemsLimit:     g.ItemsLimit,
				HoverStartTags: g.HoverStartTags,
				HoverEnterTags: g.HoverEnterTags,
			})
			if err != nil {
				return err
			}
			inv.Cells = append(inv.Cells, Cell{
				ID:    id,
				Group: g,
				Row:   index / g.Columns,
				Col:   index % g.Columns,
				Zone:  reg,
			})
			if g.Hotbar {
				inv.Hotbar = append(inv.Hotbar, id)
			}
		}
		log.Printf("[Inventory] Group %s: %dx%d cells", g.Name, g.Columns, g.Rows)
	}
	return nil
}

// mountItems 有初始位置的物品放进网格；没有位置或位置被拒绝的物品放到托盘上
func (inv *Inventory) mountItems(coord *Coordinator, layout *config.LayoutConfig, catalog *config.ItemCatalog) {
	for _, def := range catalog.Items {
		cellID := catalog.PlacementCell(layout, def.ID)
		opts := dragdrop.DraggableOptions[config.ItemDef]{
			Item:     def,
			ID:       def.ID,
			CellID:   cellID,
			Size:     def.Size,
			DragTags: layout.DragTags,
			Groups:   def.Groups,
		}

		_, err := coord.Mount(opts)
		if err != nil && cellID != "" {
			log.Printf("[Inventory] Initial placement of %s refused, moving it to the tray: %v", def.ID, err)
			cellID, opts.CellID = "", ""
			_, err = coord.Mount(opts)
		}
		if err != nil {
			log.Printf("[Inventory] Failed to mount %s: %v", def.ID, err)
			continue
		}
		inv.Items = append(inv.Items, Item{Def: def, CellID: cellID})
	}
}

// Zones 返回全部单元格的悬停句柄
func (inv *Inventory) Zones() []*dragdrop.Registration[config.ItemDef] {
	zones := make([]*dragdrop.Registration[config.ItemDef], len(inv.Cells))
	for i, c := range inv.Cells {
		zones[i] = c.Zone
	}
	return zones
}

// InTray 返回在托盘上的物品，按挂载顺序
func (inv *Inventory) InTray() []Item {
	var tray []Item
	for _, it := range inv.Items {
		if it.CellID == "" {
			tray = append(tray, it)
		}
	}
	return tray
}
