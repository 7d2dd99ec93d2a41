package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/brandintro/pkg/app"
	"github.com/decker502/brandintro/pkg/embedded"
)

func main() {
	verbose := flag.Bool("verbose", true, "启用详细日志")
	configPath := flag.String("config", "", "片头配置文件路径（默认使用内置配置）")
	variant := flag.String("variant", "", "变体 ID（覆盖配置和存档）")
	reduced := flag.Bool("reduced-motion", false, "强制减弱动效")
	relayAddr := flag.String("relay", "", "事件中继监听地址，如 127.0.0.1:8787")
	flag.Parse()

	// 初始化嵌入资源（dataFS 在 embed.go 中声明）
	embedded.Init(dataFS)

	introApp, err := app.NewApp(app.Config{
		Verbose:       *verbose,
		ConfigPath:    *configPath,
		Variant:       *variant,
		ReducedMotion: *reduced,
		RelayAddr:     *relayAddr,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer introApp.Close()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("Brand Intro")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(introApp); err != nil {
		log.Fatal(err)
	}
}
