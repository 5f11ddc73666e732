package components

import "sort"

// HoverHighlightComponent 单元格上的高亮标签集合
//
// 拖放引擎通过 AddTags/RemoveTags 修改标签，渲染系统根据标签选择填充颜色。
// 同一个标签重复添加只记一次。
type HoverHighlightComponent struct {
	Tags map[string]struct{}
}

// NewHoverHighlightComponent 创建空的高亮组件
func NewHoverHighlightComponent() *HoverHighlightComponent {
	return &HoverHighlightComponent{Tags: make(map[string]struct{})}
}

// Add 添加标签
func (h *HoverHighlightComponent) Add(tags ...string) {
	for _, tag := range tags {
		h.Tags[tag] = struct{}{}
	}
}

// Remove 移除标签
func (h *HoverHighlightComponent) Remove(tags ...string) {
	for _, tag := range tags {
		delete(h.Tags, tag)
	}
}

// Has 是否带有标签
func (h *HoverHighlightComponent) Has(tag string) bool {
	_, ok := h.Tags[tag]
	return ok
}

// IsActive 是否有任意高亮
func (h *HoverHighlightComponent) IsActive() bool {
	return len(h.Tags) > 0
}

// Sorted 返回排序后的标签列表
func (h *HoverHighlightComponent) Sorted() []string {
	tags := make([]string, 0, len(h.Tags))
	for tag := range h.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
