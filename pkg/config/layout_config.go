package config

import (
	"fmt"
	"os"

	"github.com/decker502/gridbag/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// 布局默认值
const (
	DefaultScreenWidth  = 800
	DefaultScreenHeight = 600
	DefaultCellSize     = 48.0

	// DefaultGroupName 未命名分组使用的名称，与 dragdrop.DefaultGroup 一致
	DefaultGroupName = "default"
)

// LayoutConfig 背包界面布局
type LayoutConfig struct {
	Screen ScreenConfig  `yaml:"screen"`
	Groups []GroupLayout `yaml:"groups"`
	Tray   TrayLayout    `yaml:"tray"`

	// DragTags 拖拽期间加到源物品上的标签
	DragTags []string `yaml:"dragTags"`

	// TagColors 高亮标签 -> 十六进制颜色，后出现的标签覆盖先出现的
	TagColors map[string]string `yaml:"tagColors"`
	// TagOrder 标签绘制优先级（低到高），未列出的标签不绘制
	TagOrder []string `yaml:"tagOrder"`

	CellColor       string `yaml:"cellColor"`
	GridLineColor   string `yaml:"gridLineColor"`
	BackgroundColor string `yaml:"backgroundColor"`
}

// ScreenConfig 逻辑屏幕尺寸
type ScreenConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// GroupLayout 一个分组网格的几何与放置规则
type GroupLayout struct {
	Name       string  `yaml:"name"`
	OriginX    float64 `yaml:"originX"`
	OriginY    float64 `yaml:"originY"`
	Columns    int     `yaml:"columns"`
	Rows       int     `yaml:"rows"`
	CellWidth  float64 `yaml:"cellWidth"`
	CellHeight float64 `yaml:"cellHeight"`
	// ItemsLimit 每个单元格最多容纳的物品数，0 表示不限制
	ItemsLimit     int      `yaml:"itemsLimit"`
	HoverStartTags []string `yaml:"hoverStartTags"`
	HoverEnterTags []string `yaml:"hoverEnterTags"`
	// Hotbar 标记快捷栏分组，每个分组最多一个
	Hotbar bool `yaml:"hotbar"`
}

// CellCount 分组的单元格总数
func (g GroupLayout) CellCount() int {
	return g.Columns * g.Rows
}

// CellID 返回分组内第 index 个单元格的 ID
func (g GroupLayout) CellID(index int) string {
	return fmt.Sprintf("%s-%d", g.Name, index)
}

// TrayLayout 不在网格上的物品的摆放区域
type TrayLayout struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Spacing float64 `yaml:"spacing"`
}

// Group 按名称查找分组
func (c *LayoutConfig) Group(name string) (GroupLayout, bool) {
	for _, g := range c.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return GroupLayout{}, false
}

// HotbarGroup 返回快捷栏分组
func (c *LayoutConfig) HotbarGroup() (GroupLayout, bool) {
	for _, g := range c.Groups {
		if g.Hotbar {
			return g, true
		}
	}
	return GroupLayout{}, false
}

// LoadLayoutConfig 加载布局配置
// 参数:
//   - path: 配置文件路径，embedded 已初始化时从嵌入资源读取，否则从磁盘读取
//
// 返回:
//   - *LayoutConfig: 应用默认值并校验后的配置
//   - error: 读取、解析或校验失败
func LoadLayoutConfig(path string) (*LayoutConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read layout config file %s: %w", path, err)
	}
	cfg, err := ParseLayoutConfig(data)
	if err != nil {
		return nil, fmt.Errorf("layout config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseLayoutConfig 解析布局 YAML
func ParseLayoutConfig(data []byte) (*LayoutConfig, error) {
	var cfg LayoutConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse layout YAML: %w", err)
	}

	applyLayoutDefaults(&cfg)

	if err := validateLayoutConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid layout config: %w", err)
	}
	return &cfg, nil
}

// readConfigFile 优先读取嵌入资源
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}

func applyLayoutDefaults(cfg *LayoutConfig) {
	if cfg.Screen.Width == 0 {
		cfg.Screen.Width = DefaultScreenWidth
	}
	if cfg.Screen.Height == 0 {
		cfg.Screen.Height = DefaultScreenHeight
	}
	if cfg.Screen.Title == "" {
		cfg.Screen.Title = "gridbag"
	}
	for i := range cfg.Groups {
		g := &cfg.Groups[i]
		if g.Name == "" {
			g.Name = DefaultGroupName
		}
		if g.CellWidth == 0 {
			g.CellWidth = DefaultCellSize
		}
		if g.CellHeight == 0 {
			g.CellHeight = g.CellWidth
		}
	}
	if cfg.Tray.Spacing == 0 {
		cfg.Tray.Spacing = 8
	}
	if cfg.TagColors == nil {
		cfg.TagColors = map[string]string{}
	}
	if len(cfg.TagOrder) == 0 {
		for _, g := range cfg.Groups {
			cfg.TagOrder = appendMissing(cfg.TagOrder, g.HoverStartTags...)
		}
		for _, g := range cfg.Groups {
			cfg.TagOrder = appendMissing(cfg.TagOrder, g.HoverEnterTags...)
		}
	}
	if cfg.CellColor == "" {
		cfg.CellColor = "#2b2b33"
	}
	if cfg.GridLineColor == "" {
		cfg.GridLineColor = "#55555f"
	}
	if cfg.BackgroundColor == "" {
		cfg.BackgroundColor = "#18181c"
	}
}

func appendMissing(list []string, values ...string) []string {
	for _, v := range values {
		found := false
		for _, existing := range list {
			if existing == v {
				found = true
				break
			}
		}
		if !found {
			list = append(list, v)
		}
	}
	return list
}

func validateLayoutConfig(cfg *LayoutConfig) error {
	if len(cfg.Groups) == 0 {
		return fmt.Errorf("at least one group is required")
	}

	names := make(map[string]bool)
	hotbars := 0
	for i, g := range cfg.Groups {
		if names[g.Name] {
			return fmt.Errorf("group %d: duplicate name %q", i, g.Name)
		}
		names[g.Name] = true

		if g.Columns <= 0 || g.Rows <= 0 {
			return fmt.Errorf("group %q: columns and rows must be positive, got %dx%d", g.Name, g.Columns, g.Rows)
		}
		if g.CellWidth < 0 || g.CellHeight < 0 {
			return fmt.Errorf("group %q: cell size must not be negative", g.Name)
		}
		if g.ItemsLimit < 0 {
			return fmt.Errorf("group %q: itemsLimit must not be negative, got %d", g.Name, g.ItemsLimit)
		}
		if g.Hotbar {
			hotbars++
		}
	}
	if hotbars > 1 {
		return fmt.Errorf("at most one hotbar group is allowed, got %d", hotbars)
	}

	for tag, hex := range cfg.TagColors {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("tag color %q: %w", tag, err)
		}
	}
	for name, hex := range map[string]string{
		"cellColor":       cfg.CellColor,
		"gridLineColor":   cfg.GridLineColor,
		"backgroundColor": cfg.BackgroundColor,
	} {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
