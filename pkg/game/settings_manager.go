package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// InventorySettings 背包界面的显示设置
// 只保存界面偏好，不保存背包内容
type InventorySettings struct {
	ShowGridLines      bool    `yaml:"showGridLines"`      // 绘制网格线
	HighlightAlpha     float64 `yaml:"highlightAlpha"`     // 高亮颜色的不透明度 0.0 ~ 1.0
	ShowOccupancyDebug bool    `yaml:"showOccupancyDebug"` // 显示占用表调试信息
	Fullscreen         bool    `yaml:"fullscreen"`         // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *InventorySettings {
	return &InventorySettings{
		ShowGridLines:      true,
		HighlightAlpha:     0.8,
		ShowOccupancyDebug: false,
		Fullscreen:         false,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *InventorySettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "inventory"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil
//
// 返回：
//   - *SettingsManager: 设置管理器实例，加载失败时使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或文件不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil || !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 从默认值开始解码，缺失字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.HighlightAlpha = clampUnit(loaded.HighlightAlpha)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *InventorySettings {
	return sm.settings
}

// ToggleGridLines 切换网格线显示，返回新值
func (sm *SettingsManager) ToggleGridLines() bool {
	sm.settings.ShowGridLines = !sm.settings.ShowGridLines
	return sm.settings.ShowGridLines
}

// ToggleOccupancyDebug 切换占用表调试信息，返回新值
func (sm *SettingsManager) ToggleOccupancyDebug() bool {
	sm.settings.ShowOccupancyDebug = !sm.settings.ShowOccupancyDebug
	return sm.settings.ShowOccupancyDebug
}

// SetHighlightAlpha 设置高亮不透明度，限制在 0.0 ~ 1.0
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetHighlightAlpha(alpha float64) {
	sm.settings.HighlightAlpha = clampUnit(alpha)
}

// SetFullscreen 设置全屏模式
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

func clampUnit(v float64) float64 {
	if v < 0.0 {
		return 0.0
	}
	if v > 1.0 {
		return 1.0
	}
	return v
}
