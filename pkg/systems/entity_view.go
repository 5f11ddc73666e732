package systems

import (
	"image/color"
	"log"

	"github.com/decker502/gridbag/pkg/components"
	"github.com/decker502/gridbag/pkg/dragdrop"
	"github.com/decker502/gridbag/pkg/ecs"
)

// GhostAlpha 拖拽代理的初始不透明度
const GhostAlpha = 0.6

// EntityView 通过 ECS 实体实现 dragdrop.View
//
// 单元格、物品和代理都是实体；引擎发出的高亮、拖起、重新挂载请求
// 直接改写对应实体的组件，RenderSystem 下一帧按组件绘制。
type EntityView struct {
	em    *ecs.EntityManager
	cells map[string]ecs.EntityID
	items map[string]ecs.EntityID
}

// NewEntityView 创建实体视图
func NewEntityView(em *ecs.EntityManager) *EntityView {
	return &EntityView{
		em:    em,
		cells: make(map[string]ecs.EntityID),
		items: make(map[string]ecs.EntityID),
	}
}

// AddCell 创建单元格实体
// 参数:
//   - cellID, group: 单元格 ID 与所属分组
//   - row, col: 网格坐标
//   - x, y, w, h: 屏幕矩形
func (v *EntityView) AddCell(cellID, group string, row, col int, x, y, w, h float64) ecs.EntityID {
	id := v.em.CreateEntity()
	v.em.AddComponent(id, &components.CellComponent{CellID: cellID, Group: group, Row: row, Col: col})
	v.em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	v.em.AddComponent(id, &components.ClickableComponent{Width: w, Height: h, IsEnabled: true})
	v.em.AddComponent(id, components.NewHoverHighlightComponent())
	v.cells[cellID] = id
	return id
}

// AddItem 创建物品实体
// cellID 不为空时物品对齐到该单元格，否则放在 (x, y)
func (v *EntityView) AddItem(itemID, name string, c color.RGBA, cols, rows int, cellID string, x, y float64) ecs.EntityID {
	id := v.em.CreateEntity()
	v.em.AddComponent(id, &components.ItemComponent{
		ItemID: itemID,
		Name:   name,
		Color:  c,
		Cols:   cols,
		Rows:   rows,
	})
	v.em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	v.em.AddComponent(id, &components.ClickableComponent{
		Width:     float64(cols) * DefaultTraySlot,
		Height:    float64(rows) * DefaultTraySlot,
		IsEnabled: true,
	})
	v.items[itemID] = id
	if cellID != "" {
		v.placeItem(id, cellID)
	}
	return id
}

// DefaultTraySlot 托盘上物品每个足迹格子的边长（像素）
const DefaultTraySlot = 32.0

// ItemEntity 按物品 ID 查找实体
func (v *EntityView) ItemEntity(itemID string) (ecs.EntityID, bool) {
	id, ok := v.items[itemID]
	return id, ok
}

// CellAt 返回包含屏幕坐标 (x, y) 的单元格
func (v *EntityView) CellAt(x, y float64) (string, bool) {
	for _, id := range ecs.GetEntitiesWith3[*components.CellComponent, *components.PositionComponent, *components.ClickableComponent](v.em) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](v.em, id)
		click, _ := ecs.GetComponent[*components.ClickableComponent](v.em, id)
		if click.Contains(pos.X, pos.Y, x, y) {
			cell, _ := ecs.GetComponent[*components.CellComponent](v.em, id)
			return cell.CellID, true
		}
	}
	return "", false
}

// ItemAt 返回屏幕坐标 (x, y) 处最上层的物品
// 拖起的物品和代理（没有 ClickableComponent）不参与命中测试
func (v *EntityView) ItemAt(x, y float64) (string, bool) {
	ids := ecs.GetEntitiesWith3[*components.ItemComponent, *components.PositionComponent, *components.ClickableComponent](v.em)
	// 后创建的实体绘制在上层，从后往前找
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		pos, _ := ecs.GetComponent[*components.PositionComponent](v.em, id)
		click, _ := ecs.GetComponent[*components.ClickableComponent](v.em, id)
		if click.Contains(pos.X, pos.Y, x, y) {
			item, _ := ecs.GetComponent[*components.ItemComponent](v.em, id)
			return item.ItemID, true
		}
	}
	return "", false
}

// TagsOf 返回单元格当前的高亮标签（已排序）
func (v *EntityView) TagsOf(cellID string) []string {
	if h := v.highlight(cellID); h != nil {
		return h.Sorted()
	}
	return nil
}

func (v *EntityView) highlight(cellID string) *components.HoverHighlightComponent {
	id, ok := v.cells[cellID]
	if !ok {
		return nil
	}
	h, _ := ecs.GetComponent[*components.HoverHighlightComponent](v.em, id)
	return h
}

func (v *EntityView) item(itemID string) (*components.ItemComponent, *components.ClickableComponent, bool) {
	id, ok := v.items[itemID]
	if !ok {
		return nil, nil, false
	}
	item, ok1 := ecs.GetComponent[*components.ItemComponent](v.em, id)
	click, ok2 := ecs.GetComponent[*components.ClickableComponent](v.em, id)
	return item, click, ok1 && ok2
}

// placeItem 把物品对齐到单元格左上角，像素尺寸随目标分组的格子大小变化
func (v *EntityView) placeItem(itemEntity ecs.EntityID, cellID string) bool {
	cellEntity, ok := v.cells[cellID]
	if !ok {
		return false
	}
	cellPos, _ := ecs.GetComponent[*components.PositionComponent](v.em, cellEntity)
	cellClick, _ := ecs.GetComponent[*components.ClickableComponent](v.em, cellEntity)

	item, _ := ecs.GetComponent[*components.ItemComponent](v.em, itemEntity)
	pos, _ := ecs.GetComponent[*components.PositionComponent](v.em, itemEntity)
	click, _ := ecs.GetComponent[*components.ClickableComponent](v.em, itemEntity)

	pos.X, pos.Y = cellPos.X, cellPos.Y
	click.Width = float64(item.Cols) * cellClick.Width
	click.Height = float64(item.Rows) * cellClick.Height
	item.CellID = cellID
	return true
}

// AddTags 实现 dragdrop.Highlighter
func (v *EntityView) AddTags(cellID string, tags []string) {
	if h := v.highlight(cellID); h != nil {
		h.Add(tags...)
	}
}

// RemoveTags 实现 dragdrop.Highlighter
func (v *EntityView) RemoveTags(cellID string, tags []string) {
	if h := v.highlight(cellID); h != nil {
		h.Remove(tags...)
	}
}

// Lift 标记物品被拖起，拖起期间不参与命中测试
func (v *EntityView) Lift(itemID string, tags []string) {
	item, click, ok := v.item(itemID)
	if !ok {
		return
	}
	item.Lifted = true
	item.LiftTags = append([]string(nil), tags...)
	click.IsEnabled = false
}

// Settle 清除拖起状态
func (v *EntityView) Settle(itemID string, tags []string) {
	item, click, ok := v.item(itemID)
	if !ok {
		return
	}
	item.Lifted = false
	item.LiftTags = nil
	click.IsEnabled = true
}

// NewGhost 在物品当前位置创建一个代理实体
func (v *EntityView) NewGhost(itemID, sourceCell string) dragdrop.Ghost {
	itemEntity, ok := v.items[itemID]
	if !ok {
		log.Printf("[EntityView] Ghost requested for unknown item %s", itemID)
		return dragdrop.NopView{}.NewGhost(itemID, sourceCell)
	}
	item, _ := ecs.GetComponent[*components.ItemComponent](v.em, itemEntity)
	pos, _ := ecs.GetComponent[*components.PositionComponent](v.em, itemEntity)
	click, _ := ecs.GetComponent[*components.ClickableComponent](v.em, itemEntity)

	id := v.em.CreateEntity()
	v.em.AddComponent(id, &components.ItemComponent{
		ItemID: item.ItemID,
		Name:   item.Name,
		Color:  item.Color,
		Cols:   item.Cols,
		Rows:   item.Rows,
	})
	v.em.AddComponent(id, &components.PositionComponent{X: pos.X, Y: pos.Y})
	v.em.AddComponent(id, &components.GhostComponent{
		ItemID: itemID,
		Width:  click.Width,
		Height: click.Height,
		Alpha:  GhostAlpha,
		HomeX:  pos.X,
		HomeY:  pos.Y,
	})
	v.em.AddComponent(id, &components.ScaleComponent{ScaleX: 1.05, ScaleY: 1.05})
	return &entityGhost{em: v.em, id: id}
}

// Reparent 把物品实体移动到新的锚点单元格
func (v *EntityView) Reparent(itemID, fromCell, toCell string) {
	itemEntity, ok := v.items[itemID]
	if !ok {
		return
	}
	if !v.placeItem(itemEntity, toCell) {
		log.Printf("[EntityView] Reparent %s: unknown cell %s", itemID, toCell)
		return
	}
	log.Printf("[EntityView] Reparented %s: %q -> %s", itemID, fromCell, toCell)
}

// entityGhost 由 GhostComponent 支撑的 dragdrop.Ghost
type entityGhost struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

func (g *entityGhost) parts() (*components.GhostComponent, *components.PositionComponent, bool) {
	ghost, ok1 := ecs.GetComponent[*components.GhostComponent](g.em, g.id)
	pos, ok2 := ecs.GetComponent[*components.PositionComponent](g.em, g.id)
	return ghost, pos, ok1 && ok2
}

func (g *entityGhost) Bounds() (float64, float64) {
	ghost, _, ok := g.parts()
	if !ok {
		return 0, 0
	}
	return ghost.Width, ghost.Height
}

func (g *entityGhost) Show() {
	if ghost, _, ok := g.parts(); ok {
		ghost.Visible = true
	}
}

func (g *entityGhost) MoveTo(x, y float64) {
	if _, pos, ok := g.parts(); ok {
		pos.X, pos.Y = x, y
	}
}

// SnapBack 交给 GhostSystem 播放飞回并淡出的动画
func (g *entityGhost) SnapBack() {
	ghost, pos, ok := g.parts()
	if !ok {
		return
	}
	ghost.SnappingBack = true
	ghost.FromX, ghost.FromY = pos.X, pos.Y
	ghost.Elapsed = 0
}

func (g *entityGhost) Remove() {
	if ghost, _, ok := g.parts(); ok {
		ghost.Visible = false
	}
	g.em.DestroyEntity(g.id)
}
