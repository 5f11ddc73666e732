package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneManager 控制当前活动的场景
// 同一时刻只有一个场景的 Update 和 Draw 被调用
type SceneManager struct {
	currentScene Scene
}

// NewSceneManager 创建场景管理器，初始没有活动场景
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo 切换到新场景
// 旧场景实现了 Closable 时会先被关闭
func (sm *SceneManager) SwitchTo(scene Scene) {
	if sm.currentScene == scene {
		return
	}
	if closable, ok := sm.currentScene.(Closable); ok {
		closable.Close()
		log.Printf("[SceneManager] Closed previous scene")
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// SaveOnExit 让当前场景在退出前保存状态
// 当前场景不需要保存时返回 true
func (sm *SceneManager) SaveOnExit() bool {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		return saveable.SaveOnExit()
	}
	return true
}

// Update 更新当前场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw 绘制当前场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
