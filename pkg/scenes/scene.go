package scenes

import (
	"github.com/decker502/gridbag/pkg/game"
)

// Scene 是 game.Scene 的别名
type Scene = game.Scene

// 编译期检查
var (
	_ Scene         = (*InventoryScene)(nil)
	_ game.Saveable = (*InventoryScene)(nil)
	_ game.Closable = (*InventoryScene)(nil)
)
