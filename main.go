package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/gridbag/pkg/app"
	"github.com/decker502/gridbag/pkg/embedded"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	layoutPath = flag.String("layout", "", "布局配置文件（磁盘路径），为空时使用内置布局")
	itemsPath  = flag.String("items", "", "物品目录文件（磁盘路径），为空时使用内置目录")
	mute       = flag.Bool("mute", false, "关闭提示音")
)

func main() {
	flag.Parse()

	// 指定了磁盘配置时不使用嵌入资源
	if *layoutPath == "" && *itemsPath == "" {
		embedded.Init(dataFS)
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		LayoutPath: *layoutPath,
		ItemsPath:  *itemsPath,
		Mute:       *mute,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Shutdown()

	screen := gameApp.ScreenConfig()
	ebiten.SetWindowSize(screen.Width, screen.Height)
	ebiten.SetWindowTitle(screen.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Printf("RunGame: %v", err)
	}
}
