// gridbag-tui 在终端里运行背包，用鼠标拖放物品
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/gridbag/internal/audio"
	"github.com/decker502/gridbag/internal/tui"
	"github.com/decker502/gridbag/pkg/config"
)

var (
	layoutPath = flag.String("layout", "data/layout.yaml", "布局配置文件")
	itemsPath  = flag.String("items", "data/items.yaml", "物品目录文件")
	logPath    = flag.String("log", "", "日志文件，为空时不输出日志")
	mute       = flag.Bool("mute", false, "关闭提示音")
)

func main() {
	flag.Parse()

	if err := start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// start 初始化日志、配置、提示音和终端，然后运行事件循环
// 出错时返回，所有已打开的资源都通过 defer 释放
func start() error {
	// 终端被界面占用，日志只能写文件
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	layout, err := config.LoadLayoutConfig(*layoutPath)
	if err != nil {
		return fmt.Errorf("failed to load layout: %w", err)
	}
	catalog, err := config.LoadItemCatalog(*itemsPath, layout)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	var cues audio.Player = audio.Nop{}
	if !*mute {
		if sp, err := audio.NewSpeakerPlayer(); err != nil {
			// 没有声音也可以运行
			log.Printf("Audio initialization failed: %v", err)
		} else {
			cues = sp
		}
	}
	defer cues.Close()

	board, err := tui.NewBoard(layout, catalog, cues)
	if err != nil {
		return fmt.Errorf("failed to initialize board: %w", err)
	}
	defer board.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()

	run(screen, board)
	return nil
}

func run(screen tcell.Screen, board *tui.Board) {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !board.HandleEvent(ev) {
				return
			}
			if _, resized := ev.(*tcell.EventResize); resized {
				screen.Sync()
			}
		case <-ticker.C:
			board.Draw(screen)
		}
	}
}
