package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gonewx/goodboy/pkg/app"
	"github.com/gonewx/goodboy/pkg/config"
	"github.com/gonewx/goodboy/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "覆盖 director.yaml 的配置文件路径")
	seed       = flag.Uint64("seed", 0, "镜头抖动随机种子（0 = 随机）")
	mute       = flag.Bool("mute", false, "关闭音效")
)

func main() {
	flag.Parse()

	err := run(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Seed:       *seed,
		Mute:       *mute,
	}, ebiten.RunGame)
	if err != nil {
		// 非 verbose 模式下日志已被静默，错误仍需输出
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}

// run 初始化应用并运行游戏循环，返回前总会关闭应用
// runGame 通常是 ebiten.RunGame，测试中可替换
func run(cfg app.Config, runGame func(ebiten.Game) error) error {
	// 初始化嵌入资源（必须在任何配置加载之前）
	embedded.Init(dataFS)

	game, err := app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("初始化失败: %w", err)
	}
	defer game.Close()

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.GameWindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	// Start the game loop
	// This will call Update() and Draw() repeatedly until the window is closed
	if err := runGame(game); err != nil {
		return fmt.Errorf("游戏循环异常退出: %w", err)
	}
	return nil
}
