// Package app 提供片头播放器的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/decker502/brandintro/pkg/capability"
	"github.com/decker502/brandintro/pkg/config"
	"github.com/decker502/brandintro/pkg/embedded"
	"github.com/decker502/brandintro/pkg/input"
	"github.com/decker502/brandintro/pkg/motion"
	"github.com/decker502/brandintro/pkg/playback"
	"github.com/decker502/brandintro/pkg/relay"
	"github.com/decker502/brandintro/pkg/render"
	"github.com/decker502/brandintro/pkg/settings"
	"github.com/decker502/brandintro/pkg/sound"
	"github.com/decker502/brandintro/pkg/tracks"
	"github.com/decker502/brandintro/pkg/variants"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 960
	ScreenHeight = 540
)

// StrokeProfilePath 内置的描边能力描述文件
const StrokeProfilePath = "data/stroke_profile.yaml"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 片头配置文件路径，为空时使用嵌入的默认配置
	ConfigPath string
	// Variant 覆盖配置和存档中的变体
	Variant string
	// ReducedMotion 强制减弱动效
	ReducedMotion bool
	// RelayAddr 覆盖配置中的事件中继监听地址
	RelayAddr string
	// AppName 存档目录名
	AppName string
}

// App 是播放器的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg        *config.IntroConfig
	settings   *settings.Manager
	tracks     *tracks.Registry
	variants   *variants.Registry
	controller *playback.Controller
	renderer   *render.Renderer
	sounds     *sound.CuePlayer
	hub        *relay.Hub
	cancel     context.CancelFunc

	gestures     input.GestureTracker
	forceReduced bool
	lastCue      string
	verbose      bool
}

// NewApp 创建并初始化播放器
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	introCfg, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("片头配置加载失败: %w", err)
	}

	appName := cfg.AppName
	if appName == "" {
		appName = "brandintro"
	}
	sm := settings.Open(appName)

	// 描边能力：配置了地址就远程加载，否则读内置描述文件
	if introCfg.Capability.URL != "" {
		capability.Configure(introCfg.Capability.URL, introCfg.CapabilityTimeout())
	} else {
		capability.ConfigureFetcher(capability.FetcherFunc(func(ctx context.Context) ([]byte, error) {
			return embedded.ReadFile(StrokeProfilePath)
		}), introCfg.CapabilityTimeout())
	}

	a := &App{
		cfg:          introCfg,
		settings:     sm,
		tracks:       introCfg.TrackRegistry(),
		variants:     variants.Builtin(),
		renderer:     render.NewRenderer(ScreenWidth, ScreenHeight),
		forceReduced: cfg.ReducedMotion,
		verbose:      cfg.Verbose,
	}

	// 初始化音频上下文
	audioContext := audio.NewContext(sound.SampleRate)
	a.sounds = sound.NewCuePlayer(audioContext, sm, introCfg.Sounds)
	log.Printf("[App] CuePlayer initialized with %d tones", len(introCfg.Sounds))

	relayAddr := introCfg.Relay.Addr
	if cfg.RelayAddr != "" {
		relayAddr = cfg.RelayAddr
	}
	if relayAddr != "" {
		ctx, cancel := context.WithCancel(context.Background())
		a.cancel = cancel
		a.hub = relay.NewHub(16)
		go func() {
			if err := a.hub.Serve(ctx, relayAddr); err != nil {
				log.Printf("[App] Warning: relay stopped: %v", err)
			}
		}()
	}

	// 变体优先级：命令行 > 存档 > 配置文件
	variant := introCfg.Playback.Variant
	if saved := sm.Settings().Variant; saved != "" {
		variant = saved
	}
	if cfg.Variant != "" {
		variant = cfg.Variant
	}

	policy := motion.Any(motion.Env(), motion.FromPreference(sm), motion.PolicyFunc(func() bool {
		return a.forceReduced
	}))

	a.controller = playback.NewController(a.tracks, a.variants, capability.Default(), policy, playback.Options{
		Variant:    variant,
		Loop:       introCfg.Playback.Loop || sm.Settings().Loop,
		LoopDelay:  introCfg.Playback.LoopDelay,
		Dark:       introCfg.Playback.Dark || sm.Settings().DarkMode,
		OnCue:      a.onCue,
		OnComplete: a.onComplete,
	})
	log.Printf("[App] Starting variant: %s", variant)

	// 回调依赖 a.controller，所以自动播放放在控制器创建之后
	if introCfg.Playback.AutoPlay {
		a.controller.Play(context.Background())
	}
	return a, nil
}

func loadConfig(path string) (*config.IntroConfig, error) {
	if path == "" {
		return config.LoadEmbeddedIntroConfig()
	}
	return config.LoadIntroConfig(path)
}

func (a *App) onCue(name string, offset float64) {
	a.lastCue = name
	a.sounds.OnCue(name, offset)
	if a.hub != nil {
		a.hub.Broadcast(relay.Event{
			Type:    relay.EventCue,
			Variant: a.controller.Options().Variant,
			Name:    name,
			Offset:  offset,
		})
	}
}

func (a *App) onComplete() {
	log.Printf("[App] Intro complete")
	if a.hub != nil {
		a.hub.Broadcast(relay.Event{
			Type:    relay.EventComplete,
			Variant: a.controller.Options().Variant,
			Offset:  a.controller.TotalDuration(),
		})
	}
}

// Update 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	before := a.controller.State()

	a.handleKeys()
	a.handleGesture()
	a.drainCommands()

	a.controller.Update(1.0 / float64(ebiten.TPS()))

	if after := a.controller.State(); after != before && a.hub != nil {
		a.hub.Broadcast(relay.Event{Type: relay.EventState, State: after.String()})
	}
	return nil
}

func (a *App) handleKeys() {
	c := a.controller
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		a.stepVariant(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		a.stepVariant(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		c.Replay()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		c.Play(context.Background())
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		c.Pause()
	case inpututil.IsKeyJustPressed(ebiten.KeyK):
		c.Kill()
	case inpututil.IsKeyJustPressed(ebiten.KeyD):
		dark := !c.Options().Dark
		c.SetDark(dark)
		a.settings.SetDarkMode(dark)
		a.save()
		c.Play(context.Background())
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		reduced := !a.settings.ReducedMotion()
		a.settings.SetReducedMotion(reduced)
		a.save()
		c.Play(context.Background())
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		opts := c.Options()
		c.SetLoop(!opts.Loop, opts.LoopDelay)
		a.settings.SetLoop(!opts.Loop)
		a.save()
	case inpututil.IsKeyJustPressed(ebiten.KeyF11):
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}

// handleGesture 触屏和鼠标：点按重播，左右滑动切换变体
func (a *App) handleGesture() {
	switch a.gestures.Update() {
	case input.GestureTap:
		a.controller.Replay()
	case input.GestureSwipeLeft:
		a.stepVariant(1)
	case input.GestureSwipeRight:
		a.stepVariant(-1)
	}
}

// stepVariant 按注册顺序切换变体并立即播放
func (a *App) stepVariant(delta int) {
	ids := a.variants.IDs()
	if len(ids) == 0 {
		return
	}
	current, _ := a.variants.Resolve(a.controller.Options().Variant)
	idx := 0
	for i, id := range ids {
		if current != nil && id == current.ID {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(ids)) % len(ids)
	a.controller.SetVariant(ids[idx])
	a.settings.SetVariant(ids[idx])
	a.save()
	a.controller.Play(context.Background())
}

// drainCommands 执行中继转发来的指令，每帧最多处理缓冲内已有的部分
func (a *App) drainCommands() {
	if a.hub == nil {
		return
	}
	for {
		select {
		case cmd := <-a.hub.Commands():
			a.apply(cmd)
		default:
			return
		}
	}
}

func (a *App) apply(cmd relay.Command) {
	log.Printf("[App] Relay command: %s %s", cmd.Op, cmd.Variant)
	switch cmd.Op {
	case "play":
		if cmd.Variant != "" {
			a.controller.SetVariant(cmd.Variant)
		}
		a.controller.Play(context.Background())
	case "replay":
		a.controller.Replay()
	case "pause":
		a.controller.Pause()
	case "kill":
		a.controller.Kill()
	}
}

func (a *App) save() {
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Draw 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.renderer.Draw(screen, a.tracks, a.controller.Options().Dark)
	a.drawHUD(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// Close 停止中继并保存设置
func (a *App) Close() {
	a.controller.Kill()
	if a.cancel != nil {
		a.cancel()
	}
	if a.hub != nil {
		a.hub.Close()
	}
	a.save()
}

// Controller 返回播放控制器
func (a *App) Controller() *playback.Controller {
	return a.controller
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
