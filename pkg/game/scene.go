package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 一个界面场景，每个场景有自己的更新和绘制逻辑
type Scene interface {
	// Update 按经过的时间（秒）更新场景
	Update(deltaTime float64)

	// Draw 把场景绘制到 screen
	Draw(screen *ebiten.Image)
}

// Saveable 可选接口，场景在程序退出时保存状态
type Saveable interface {
	// SaveOnExit 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}

// Closable 可选接口，场景被替换时释放它持有的资源
type Closable interface {
	Close()
}
