package config

import (
	"fmt"

	"github.com/decker502/gridbag/pkg/dragdrop"
	"gopkg.in/yaml.v3"
)

// ItemDef 物品目录中的一项
type ItemDef struct {
	ID    string        `yaml:"id"`
	Name  string        `yaml:"name"`
	Color string        `yaml:"color"`
	Size  dragdrop.Size `yaml:"size"`
	// Groups 可放置的分组，为空时只能放在默认分组
	Groups []string `yaml:"groups"`
}

// Placement 物品的初始位置
type Placement struct {
	Item  string `yaml:"item"`
	Group string `yaml:"group"`
	Row   int    `yaml:"row"`
	Col   int    `yaml:"col"`
}

// ItemCatalog 物品目录和初始摆放
type ItemCatalog struct {
	Items      []ItemDef   `yaml:"items"`
	Placements []Placement `yaml:"placements"`

	byID map[string]int
}

// Lookup 按 ID 查找物品定义
func (c *ItemCatalog) Lookup(id string) (ItemDef, bool) {
	i, ok := c.byID[id]
	if !ok {
		return ItemDef{}, false
	}
	return c.Items[i], true
}

// PlacementOf 返回物品的初始位置，没有时物品放在托盘上
func (c *ItemCatalog) PlacementOf(id string) (Placement, bool) {
	for _, p := range c.Placements {
		if p.Item == id {
			return p, true
		}
	}
	return Placement{}, false
}

// PlacementCell 返回物品初始位置对应的单元格 ID，没有初始位置时返回空
func (c *ItemCatalog) PlacementCell(layout *LayoutConfig, id string) string {
	p, ok := c.PlacementOf(id)
	if !ok {
		return ""
	}
	g, ok := layout.Group(p.Group)
	if !ok {
		return ""
	}
	return g.CellID(p.Row*g.Columns + p.Col)
}

// LoadItemCatalog 加载物品目录
// 参数:
//   - path: 物品目录 YAML 路径
//   - layout: 已加载的布局，用于校验初始位置
//
// 返回:
//   - *ItemCatalog: 校验后的目录
//   - error: 读取、解析或校验失败
func LoadItemCatalog(path string, layout *LayoutConfig) (*ItemCatalog, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item catalog %s: %w", path, err)
	}
	catalog, err := ParseItemCatalog(data, layout)
	if err != nil {
		return nil, fmt.Errorf("item catalog %s: %w", path, err)
	}
	return catalog, nil
}

// ParseItemCatalog 解析物品目录 YAML
func ParseItemCatalog(data []byte, layout *LayoutConfig) (*ItemCatalog, error) {
	var catalog ItemCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse item catalog YAML: %w", err)
	}

	applyCatalogDefaults(&catalog)

	if err := validateItemCatalog(&catalog, layout); err != nil {
		return nil, fmt.Errorf("invalid item catalog: %w", err)
	}
	return &catalog, nil
}

func applyCatalogDefaults(c *ItemCatalog) {
	c.byID = make(map[string]int, len(c.Items))
	for i := range c.Items {
		item := &c.Items[i]
		if item.Name == "" {
			item.Name = item.ID
		}
		if item.Color == "" {
			item.Color = "#c8a050"
		}
		if item.Size.W <= 0 {
			item.Size.W = 1
		}
		if item.Size.H <= 0 {
			item.Size.H = 1
		}
		if len(item.Groups) == 0 {
			item.Groups = []string{DefaultGroupName}
		}
		c.byID[item.ID] = i
	}
	for i := range c.Placements {
		if c.Placements[i].Group == "" {
			c.Placements[i].Group = DefaultGroupName
		}
	}
}

func validateItemCatalog(c *ItemCatalog, layout *LayoutConfig) error {
	seen := make(map[string]bool, len(c.Items))
	for i, item := range c.Items {
		if item.ID == "" {
			return fmt.Errorf("item %d: id is required", i)
		}
		if seen[item.ID] {
			return fmt.Errorf("item %q: duplicate id", item.ID)
		}
		seen[item.ID] = true

		if _, err := ParseHexColor(item.Color); err != nil {
			return fmt.Errorf("item %q: %w", item.ID, err)
		}
		if layout != nil {
			for _, g := range item.Groups {
				if _, ok := layout.Group(g); !ok {
					return fmt.Errorf("item %q: unknown group %q", item.ID, g)
				}
			}
		}
	}

	placed := make(map[string]bool, len(c.Placements))
	for i, p := range c.Placements {
		if !seen[p.Item] {
			return fmt.Errorf("placement %d: unknown item %q", i, p.Item)
		}
		if placed[p.Item] {
			return fmt.Errorf("placement %d: item %q placed twice", i, p.Item)
		}
		placed[p.Item] = true

		if layout == nil {
			continue
		}
		g, ok := layout.Group(p.Group)
		if !ok {
			return fmt.Errorf("placement %d: unknown group %q", i, p.Group)
		}
		if p.Row < 0 || p.Row >= g.Rows || p.Col < 0 || p.Col >= g.Columns {
			return fmt.Errorf("placement %d: (%d,%d) outside group %q (%dx%d)", i, p.Row, p.Col, g.Name, g.Columns, g.Rows)
		}
		if item := c.Items[c.byID[p.Item]]; !acceptsGroup(item, p.Group) {
			return fmt.Errorf("placement %d: item %q does not accept group %q", i, p.Item, p.Group)
		}
	}
	// 足迹冲突留给引擎在挂载时校验
	return nil
}

func acceptsGroup(item ItemDef, group string) bool {
	for _, g := range item.Groups {
		if g == group {
			return true
		}
	}
	return false
}
