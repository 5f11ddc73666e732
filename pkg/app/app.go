// Package app 提供背包应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	ebitenaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/gridbag/internal/audio"
	"github.com/decker502/gridbag/pkg/config"
	"github.com/decker502/gridbag/pkg/game"
	"github.com/decker502/gridbag/pkg/scenes"
	"github.com/decker502/gridbag/pkg/utils"
)

// 默认配置路径
const (
	DefaultLayoutPath = "data/layout.yaml"
	DefaultItemsPath  = "data/items.yaml"
	DefaultAppName    = "gridbag"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// LayoutPath 布局配置路径，为空时使用 DefaultLayoutPath
	LayoutPath string
	// ItemsPath 物品目录路径，为空时使用 DefaultItemsPath
	ItemsPath string
	// AppName gdata 存储使用的应用名，为空时使用 DefaultAppName
	AppName string
	// Mute 关闭提示音
	Mute bool
}

// App 是背包应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	layout                   *config.LayoutConfig
	cues                     audio.Player
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 使用默认路径时，调用此函数前必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.LayoutPath == "" {
		cfg.LayoutPath = DefaultLayoutPath
	}
	if cfg.ItemsPath == "" {
		cfg.ItemsPath = DefaultItemsPath
	}
	if cfg.AppName == "" {
		cfg.AppName = DefaultAppName
	}

	layout, err := config.LoadLayoutConfig(cfg.LayoutPath)
	if err != nil {
		return nil, fmt.Errorf("布局配置加载失败: %w", err)
	}
	catalog, err := config.LoadItemCatalog(cfg.ItemsPath, layout)
	if err != nil {
		return nil, fmt.Errorf("物品目录加载失败: %w", err)
	}
	log.Printf("[Config] Loaded %d groups, %d items", len(layout.Groups), len(catalog.Items))

	settings := game.NewSettingsManager(game.OpenStorage(cfg.AppName))

	var cues audio.Player = audio.Nop{}
	if !cfg.Mute {
		cues = audio.NewEbitenPlayer(ebitenaudio.NewContext(int(audio.SampleRate)))
		log.Printf("[App] Audio cues enabled")
	}

	inventory, err := scenes.NewInventoryScene(layout, catalog, settings, cues)
	if err != nil {
		return nil, fmt.Errorf("背包场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(inventory)

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	return &App{
		sceneManager: sceneManager,
		settings:     settings,
		layout:       layout,
		cues:         cues,
	}, nil
}

// Update 更新逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.layout.Screen.Width, a.layout.Screen.Height)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", a.layout.Screen.Width, a.layout.Screen.Height)
			a.pendingWindowSizeReset = false
		}
	}

	// 移动端没有键盘快捷键
	if !utils.IsMobile() {
		a.handleShortcuts()
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// handleShortcuts F11 切换全屏，G 切换网格线，D 切换占用表调试信息
func (a *App) handleShortcuts() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		log.Printf("[App] Grid lines: %v", a.settings.ToggleGridLines())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		log.Printf("[App] Occupancy debug: %v", a.settings.ToggleOccupancyDebug())
	}
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.settings.SetFullscreen(false)
		log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		return
	}
	ebiten.SetFullscreen(true)
	a.settings.SetFullscreen(true)
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	// 先填充黑色背景（全屏时左右两边为黑色）
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.layout.Screen.Width, a.layout.Screen.Height
}

// ScreenConfig 返回布局中的窗口配置
func (a *App) ScreenConfig() config.ScreenConfig {
	return a.layout.Screen
}

// Shutdown 保存设置并释放场景和音频
func (a *App) Shutdown() {
	if !a.sceneManager.SaveOnExit() {
		log.Printf("[App] Warning: failed to save on exit")
	}
	if closable, ok := a.sceneManager.GetCurrentScene().(game.Closable); ok {
		closable.Close()
	}
	a.cues.Close()
}
