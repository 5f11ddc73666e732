package scenes

import (
	"fmt"
)

// DebugLines 返回占用表的调试信息
// 每个锚点一行，最后一行是最近一次松开的结果
func (s *InventoryScene) DebugLines() []string {
	occupancy := s.coord.Occupancy()
	anchors := occupancy.Anchors()
	covered := 0
	for _, rec := range anchors {
		covered += rec.Size.Area()
	}
	lines := []string{fmt.Sprintf("records: %d  anchors: %d  covered: %d", occupancy.Len(), len(anchors), covered)}

	for _, rec := range anchors {
		lines = append(lines, fmt.Sprintf("%s @ %s (%dx%d)", rec.ItemID, rec.CellID, rec.Size.W, rec.Size.H))
	}

	if session := s.coord.Session(); session != nil {
		x, y := session.Pointer()
		lines = append(lines, fmt.Sprintf("session: %s %s hover=%s at (%.0f, %.0f)", session.ItemID, session.State(), s.inputSystem.Hovered(), x, y))
	}
	if s.lastDrop != "" {
		lines = append(lines, "last: "+s.lastDrop)
	}
	return lines
}
