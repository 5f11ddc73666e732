//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 此文件仅在使用 -tags mobile 构建时编译。
//
//	# Android
//	cp -r data mobile/data && ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.gridbag -o build/android/gridbag.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	cp -r data mobile/data && ebitenmobile bind -target ios -tags mobile -o build/ios/Gridbag.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/gridbag/pkg/app"
	"github.com/decker502/gridbag/pkg/embedded"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: true, // Enable verbose logging for debugging
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
