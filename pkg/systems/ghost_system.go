package systems

import (
	"github.com/decker502/gridbag/pkg/components"
	"github.com/decker502/gridbag/pkg/ecs"
	"github.com/decker502/gridbag/pkg/utils"
)

// SnapBackDuration 代理飞回源位置并淡出的时长（秒）
const SnapBackDuration = 0.25

// GhostSystem 播放被拒绝放置后的代理飞回动画
type GhostSystem struct {
	em *ecs.EntityManager
}

// NewGhostSystem 创建代理动画系统
func NewGhostSystem(em *ecs.EntityManager) *GhostSystem {
	return &GhostSystem{em: em}
}

// Update 推进所有正在飞回的代理，动画结束后销毁代理实体
func (s *GhostSystem) Update(deltaTime float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.GhostComponent, *components.PositionComponent](s.em) {
		ghost, _ := ecs.GetComponent[*components.GhostComponent](s.em, id)
		if !ghost.SnappingBack {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)

		ghost.Elapsed += deltaTime
		t := utils.Clamp01(ghost.Elapsed / SnapBackDuration)

		move := utils.EaseOutCubic(t)
		pos.X = utils.Lerp(ghost.FromX, ghost.HomeX, move)
		pos.Y = utils.Lerp(ghost.FromY, ghost.HomeY, move)
		ghost.Alpha = GhostAlpha * (1 - utils.EaseInQuad(t))

		if t >= 1 {
			ghost.Visible = false
			s.em.DestroyEntity(id)
		}
	}
}
