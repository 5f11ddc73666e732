package systems

import (
	"math"
	"testing"

	"github.com/decker502/gridbag/pkg/components"
	"github.com/decker502/gridbag/pkg/dragdrop"
	"github.com/decker502/gridbag/pkg/ecs"
)

// TestGhostSnapBack 代理飞回源位置并淡出，动画结束后被销毁
func TestGhostSnapBack(t *testing.T) {
	w := newTestWorld(t)
	w.mount(t, "gem", "c0", dragdrop.Size{W: 1, H: 1})
	sys := NewGhostSystem(w.em)

	g := w.view.NewGhost("gem", "c0")
	g.Show()
	g.MoveTo(100, 80)
	g.SnapBack()

	id := ecs.GetEntitiesWith1[*components.GhostComponent](w.em)[0]
	ghost, _ := ecs.GetComponent[*components.GhostComponent](w.em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)

	sys.Update(SnapBackDuration / 2)
	// EaseOutCubic(0.5) = 0.875
	if math.Abs(pos.X-12.5) > 1e-9 || math.Abs(pos.Y-10) > 1e-9 {
		t.Errorf("halfway position = (%v,%v), want (12.5,10)", pos.X, pos.Y)
	}
	if ghost.Alpha <= 0 || ghost.Alpha >= GhostAlpha {
		t.Errorf("halfway alpha = %v, want between 0 and %v", ghost.Alpha, GhostAlpha)
	}

	sys.Update(SnapBackDuration)
	if pos.X != 0 || pos.Y != 0 || ghost.Visible {
		t.Errorf("after animation: pos=(%v,%v) visible=%v, want (0,0) false", pos.X, pos.Y, ghost.Visible)
	}
	w.em.RemoveMarkedEntities()
	if w.em.Exists(id) {
		t.Error("ghost entity should be destroyed after snapping back")
	}
}

// TestGhostSystemIgnoresFollowingGhost 跟随指针的代理不受动画影响
func TestGhostSystemIgnoresFollowingGhost(t *testing.T) {
	w := newTestWorld(t)
	w.mount(t, "gem", "c0", dragdrop.Size{W: 1, H: 1})

	g := w.view.NewGhost("gem", "c0")
	g.MoveTo(55, 66)
	NewGhostSystem(w.em).Update(1)

	id := ecs.GetEntitiesWith1[*components.GhostComponent](w.em)[0]
	pos, _ := ecs.GetComponent[*components.PositionComponent](w.em, id)
	if pos.X != 55 || pos.Y != 66 {
		t.Errorf("following ghost moved to (%v,%v)", pos.X, pos.Y)
	}
}
