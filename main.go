package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/drillship/pkg/app"
	"github.com/gonewx/drillship/pkg/config"
	"github.com/gonewx/drillship/pkg/embedded"
)

var (
	verbose = flag.Bool("verbose", false, "显示详细调试信息")
	debug   = flag.Bool("debug", false, "启用调试模式（状态不变量违规时 panic，HUD 显示调试行）")
	dataDir = flag.String("data", "", "数据目录（默认使用嵌入的 data/）")
)

func main() {
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose: *verbose,
		Debug:   *debug,
		DataDir: *dataDir,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer gameApp.Close()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("钻井船")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
}
