package scenes

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/gridbag/internal/audio"
	"github.com/decker502/gridbag/pkg/config"
	"github.com/decker502/gridbag/pkg/dragdrop"
	"github.com/decker502/gridbag/pkg/ecs"
	"github.com/decker502/gridbag/pkg/game"
	"github.com/decker502/gridbag/pkg/inventory"
	"github.com/decker502/gridbag/pkg/systems"
)

// InventoryScene 背包界面
//
// 场景持有协调器、实体管理器和所有系统；被替换或程序退出时通过 Close 一起拆除。
// 物品负载是目录中的 config.ItemDef，放置成功后占用表里的负载随物品移动。
type InventoryScene struct {
	layout   *config.LayoutConfig
	catalog  *config.ItemCatalog
	settings *game.SettingsManager
	cues     audio.Player

	// ECS 与拖放引擎
	entityManager *ecs.EntityManager
	view          *systems.EntityView
	coord         *dragdrop.Coordinator[config.ItemDef]
	hotbar        *game.Hotbar

	inputSystem  *systems.InputSystem[config.ItemDef]
	ghostSystem  *systems.GhostSystem
	renderSystem *systems.RenderSystem

	// lastDrop 最近一次松开的结果，显示在调试信息里
	lastDrop string
	closed   bool
}

// NewInventoryScene 创建背包场景
// 参数:
//   - layout: 已校验的布局
//   - catalog: 已按该布局校验的物品目录
//   - settings: 显示设置，可以为 nil
//   - cues: 提示音播放器，可以为 nil
//
// 返回:
//   - *InventoryScene: 已挂载全部单元格和物品的场景
//   - error: 分组定义或单元格注册失败
func NewInventoryScene(layout *config.LayoutConfig, catalog *config.ItemCatalog, settings *game.SettingsManager, cues audio.Player) (*InventoryScene, error) {
	if cues == nil {
		cues = audio.Nop{}
	}
	em := ecs.NewEntityManager()
	view := systems.NewEntityView(em)

	s := &InventoryScene{
		layout:        layout,
		catalog:       catalog,
		settings:      settings,
		cues:          cues,
		entityManager: em,
		view:          view,
		coord:         inventory.New(layout, view),
	}

	inv, err := inventory.Build(s.coord, layout, catalog)
	if err != nil {
		s.coord.Close()
		return nil, fmt.Errorf("failed to build inventory grid: %w", err)
	}
	s.initEntities(inv)

	s.inputSystem = systems.NewInputSystem(s.coord, view, s.hotbar)
	for _, reg := range inv.Zones() {
		s.inputSystem.AddZone(reg)
	}
	s.inputSystem.OnPickUp = s.onPickUp
	s.inputSystem.OnDrop = s.onDrop

	s.ghostSystem = systems.NewGhostSystem(em)
	s.renderSystem = systems.NewRenderSystem(em, layout, settings)
	s.renderSystem.SetHotbar(s.hotbar)
	s.renderSystem.SetDebugSource(s.DebugLines)

	log.Printf("[InventoryScene] Ready: %d cells, %d items", len(inv.Cells), len(inv.Items))
	return s, nil
}

// Coordinator 返回场景的拖放协调器
func (s *InventoryScene) Coordinator() *dragdrop.Coordinator[config.ItemDef] {
	return s.coord
}

// View 返回场景的实体视图
func (s *InventoryScene) View() *systems.EntityView {
	return s.view
}

// Hotbar 返回快捷栏，布局里没有快捷栏分组时为 nil
func (s *InventoryScene) Hotbar() *game.Hotbar {
	return s.hotbar
}

// InputSystem 返回输入系统
func (s *InventoryScene) InputSystem() *systems.InputSystem[config.ItemDef] {
	return s.inputSystem
}

// Update 更新场景
func (s *InventoryScene) Update(deltaTime float64) {
	if s.closed {
		return
	}
	s.inputSystem.Update()
	s.ghostSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制场景
func (s *InventoryScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen)
}

// Step 推进动画并清理实体，不读取输入
func (s *InventoryScene) Step(deltaTime float64) {
	s.ghostSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

func (s *InventoryScene) onPickUp(itemID string) {
	s.cues.Play(audio.CuePickUp)
}

func (s *InventoryScene) onDrop(res dragdrop.DropResult) {
	if res.Committed {
		s.lastDrop = fmt.Sprintf("%s -> %s", res.ItemID, res.Verdict.Footprint[0])
		s.cues.Play(audio.CueCommit)
		return
	}
	s.lastDrop = fmt.Sprintf("%s rejected (%s)", res.ItemID, res.Verdict.Reason)
	s.cues.Play(audio.CueReject)
}

// SaveOnExit 保存显示设置
func (s *InventoryScene) SaveOnExit() bool {
	if s.settings == nil {
		return true
	}
	if err := s.settings.Save(); err != nil {
		log.Printf("[InventoryScene] Failed to save settings: %v", err)
		return false
	}
	return true
}

// Close 拆除协调器：活动会话回滚，所有拖拽源和单元格处理器失效
func (s *InventoryScene) Close() {
	if s.closed {
		return
	}
	s.coord.Close()
	s.entityManager.RemoveMarkedEntities()
	s.closed = true
	log.Printf("[InventoryScene] Closed")
}
