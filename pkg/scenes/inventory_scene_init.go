package scenes

import (
	"github.com/decker502/gridbag/pkg/config"
	"github.com/decker502/gridbag/pkg/game"
	"github.com/decker502/gridbag/pkg/inventory"
	"github.com/decker502/gridbag/pkg/systems"
	"github.com/decker502/gridbag/pkg/utils"
)

// Geometry 返回分组的屏幕几何
func Geometry(g config.GroupLayout) utils.GridGeometry {
	return utils.GridGeometry{
		OriginX:    g.OriginX,
		OriginY:    g.OriginY,
		Columns:    g.Columns,
		Rows:       g.Rows,
		CellWidth:  g.CellWidth,
		CellHeight: g.CellHeight,
	}
}

// initEntities 为装配好的单元格和物品创建实体
// 网格上的物品对齐到锚点单元格，托盘上的物品从左到右排开
func (s *InventoryScene) initEntities(inv *inventory.Inventory) {
	for _, c := range inv.Cells {
		x, y := Geometry(c.Group).GridToScreenCoords(c.Col, c.Row)
		s.view.AddCell(c.ID, c.Group.Name, c.Row, c.Col, x, y, c.Group.CellWidth, c.Group.CellHeight)
	}
	if len(inv.Hotbar) > 0 {
		s.hotbar = game.NewHotbar(inv.Hotbar)
	}

	trayX := s.layout.Tray.X
	for _, it := range inv.Items {
		def := it.Def
		s.view.AddItem(def.ID, def.Name, config.MustParseHexColor(def.Color), def.Size.W, def.Size.H, it.CellID, trayX, s.layout.Tray.Y)
		if it.CellID == "" {
			trayX += float64(def.Size.W)*systems.DefaultTraySlot + s.layout.Tray.Spacing
		}
	}
}
