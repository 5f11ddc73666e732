package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/gridbag/pkg/components"
	"github.com/decker502/gridbag/pkg/config"
	"github.com/decker502/gridbag/pkg/ecs"
	"github.com/decker502/gridbag/pkg/game"
)

// 渲染常量
const (
	itemInset        = 3.0  // 物品矩形相对足迹的内缩（像素）
	liftedItemAlpha  = 0.35 // 拖起的物品在原位的不透明度
	selectedStroke   = 3.0  // 快捷栏选中框线宽
	debugLineSpacing = 16
)

var selectedSlotColor = color.RGBA{R: 0xf0, G: 0xd0, B: 0x40, A: 0xff}

// RenderSystem 按组件绘制单元格、物品和拖拽代理
type RenderSystem struct {
	em       *ecs.EntityManager
	settings *game.SettingsManager
	hotbar   *game.Hotbar

	tagColors  map[string]color.RGBA
	tagOrder   []string
	cellColor  color.RGBA
	lineColor  color.RGBA
	background color.RGBA

	// debugLines 调试信息来源，ShowOccupancyDebug 打开时绘制
	debugLines func() []string
}

// NewRenderSystem 创建渲染系统
// 参数:
//   - em: 实体管理器
//   - layout: 布局配置（颜色）
//   - settings: 显示设置，可以为 nil
func NewRenderSystem(em *ecs.EntityManager, layout *config.LayoutConfig, settings *game.SettingsManager) *RenderSystem {
	r := &RenderSystem{
		em:         em,
		settings:   settings,
		tagColors:  make(map[string]color.RGBA, len(layout.TagColors)),
		tagOrder:   layout.TagOrder,
		cellColor:  config.MustParseHexColor(layout.CellColor),
		lineColor:  config.MustParseHexColor(layout.GridLineColor),
		background: config.MustParseHexColor(layout.BackgroundColor),
	}
	for tag, hex := range layout.TagColors {
		r.tagColors[tag] = config.MustParseHexColor(hex)
	}
	return r
}

// SetHotbar 设置需要标出选中格的快捷栏
func (r *RenderSystem) SetHotbar(h *game.Hotbar) {
	r.hotbar = h
}

// SetDebugSource 设置调试信息来源
func (r *RenderSystem) SetDebugSource(fn func() []string) {
	r.debugLines = fn
}

func (r *RenderSystem) currentSettings() *game.InventorySettings {
	if r.settings == nil {
		return game.DefaultSettings()
	}
	return r.settings.GetSettings()
}

// CellFill 计算单元格的填充颜色
// 按 tagOrder 取优先级最高且配置了颜色的标签，颜色与底色按 HighlightAlpha 混合
func (r *RenderSystem) CellFill(h *components.HoverHighlightComponent) color.RGBA {
	if h == nil || !h.IsActive() {
		return r.cellColor
	}
	var (
		tagColor color.RGBA
		found    bool
	)
	for _, tag := range r.tagOrder {
		if c, ok := r.tagColors[tag]; ok && h.Has(tag) {
			tagColor, found = c, true
		}
	}
	if !found {
		return r.cellColor
	}
	alpha := r.currentSettings().HighlightAlpha * float64(tagColor.A) / 255
	return blend(r.cellColor, tagColor, alpha)
}

func blend(base, over color.RGBA, alpha float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a)*(1-alpha) + float64(b)*alpha + 0.5)
	}
	return color.RGBA{R: mix(base.R, over.R), G: mix(base.G, over.G), B: mix(base.B, over.B), A: 0xff}
}

func withAlpha(c color.RGBA, alpha float64) color.RGBA {
	// vector 使用预乘 alpha
	scale := func(v uint8) uint8 { return uint8(float64(v)*alpha + 0.5) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}

// Draw 绘制一帧
func (r *RenderSystem) Draw(screen *ebiten.Image) {
	screen.Fill(r.background)

	settings := r.currentSettings()
	r.drawCells(screen, settings.ShowGridLines)
	r.drawItems(screen)
	r.drawGhosts(screen)

	if settings.ShowOccupancyDebug && r.debugLines != nil {
		for i, line := range r.debugLines() {
			ebitenutil.DebugPrintAt(screen, line, 10, 10+i*debugLineSpacing)
		}
	}
}

func (r *RenderSystem) drawCells(screen *ebiten.Image, gridLines bool) {
	selected := ""
	if r.hotbar != nil {
		selected, _ = r.hotbar.SelectedCell()
	}

	for _, id := range ecs.GetEntitiesWith3[*components.CellComponent, *components.PositionComponent, *components.ClickableComponent](r.em) {
		cell, _ := ecs.GetComponent[*components.CellComponent](r.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](r.em, id)
		click, _ := ecs.GetComponent[*components.ClickableComponent](r.em, id)
		highlight, _ := ecs.GetComponent[*components.HoverHighlightComponent](r.em, id)

		x, y := float32(pos.X), float32(pos.Y)
		w, h := float32(click.Width), float32(click.Height)

		vector.DrawFilledRect(screen, x, y, w, h, r.CellFill(highlight), false)
		if gridLines {
			vector.StrokeRect(screen, x, y, w, h, 1, r.lineColor, false)
		}
		if cell.CellID == selected {
			vector.StrokeRect(screen, x+1, y+1, w-2, h-2, selectedStroke, selectedSlotColor, false)
		}
	}
}

func (r *RenderSystem) drawItems(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith3[*components.ItemComponent, *components.PositionComponent, *components.ClickableComponent](r.em) {
		item, _ := ecs.GetComponent[*components.ItemComponent](r.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](r.em, id)
		click, _ := ecs.GetComponent[*components.ClickableComponent](r.em, id)

		fill := item.Color
		if item.Lifted {
			fill = withAlpha(fill, liftedItemAlpha)
		}
		drawItemRect(screen, pos.X, pos.Y, click.Width, click.Height, 1, fill)
		if !item.Lifted {
			ebitenutil.DebugPrintAt(screen, item.Name, int(pos.X)+6, int(pos.Y)+4)
		}
	}
}

func (r *RenderSystem) drawGhosts(screen *ebiten.Image) {
	for _, id := range ecs.GetEntitiesWith3[*components.GhostComponent, *components.ItemComponent, *components.PositionComponent](r.em) {
		ghost, _ := ecs.GetComponent[*components.GhostComponent](r.em, id)
		if !ghost.Visible || ghost.Alpha <= 0 {
			continue
		}
		item, _ := ecs.GetComponent[*components.ItemComponent](r.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](r.em, id)

		scale := 1.0
		if s, ok := ecs.GetComponent[*components.ScaleComponent](r.em, id); ok {
			scale = s.ScaleX
		}
		drawItemRect(screen, pos.X, pos.Y, ghost.Width, ghost.Height, scale, withAlpha(item.Color, ghost.Alpha))
	}
}

// drawItemRect 以矩形中心为基准缩放后绘制
func drawItemRect(screen *ebiten.Image, x, y, w, h, scale float64, fill color.RGBA) {
	sw, sh := w*scale, h*scale
	x -= (sw - w) / 2
	y -= (sh - h) / 2
	vector.DrawFilledRect(
		screen,
		float32(x+itemInset),
		float32(y+itemInset),
		float32(sw-2*itemInset),
		float32(sh-2*itemInset),
		fill,
		false,
	)
}
