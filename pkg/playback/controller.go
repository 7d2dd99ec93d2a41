// Package playback 管理片头动画的播放生命周期。
//
// Controller 同一时刻至多持有一个播放上下文。Play 总是先撤销上一个上下文
// （恢复轨道属性、取消等待中的能力加载、解除循环计时）再构建新的时间轴，
// 因此两条时间轴永远不会同时写入同一组轨道。
//
// 时间推进由宿主的帧循环驱动：每帧调用 Update(dt)。
// 所有回调（Cue、OnComplete）都在释放内部锁之后执行，回调中可以安全地
// 再次调用控制器的方法。每次撤销或重播都会使上下文的代号递增，
// 代号变化后，同一帧里尚未执行的回调全部作废。
package playback

import (
	"context"
	"log"
	"sync"

	"github.com/decker502/brandintro/pkg/capability"
	"github.com/decker502/brandintro/pkg/cue"
	"github.com/decker502/brandintro/pkg/motion"
	"github.com/decker502/brandintro/pkg/timeline"
	"github.com/decker502/brandintro/pkg/tracks"
	"github.com/decker502/brandintro/pkg/variants"
)

// Options 控制器配置
type Options struct {
	// Variant 变体 ID，未知 ID 回退到默认变体
	Variant string
	// AutoPlay 创建后立即播放
	AutoPlay bool
	// Loop 每隔 TotalDuration+LoopDelay 自动 Replay
	Loop bool
	// LoopDelay 循环间隔（秒）
	LoopDelay float64
	// Dark 深色模式，只影响配色
	Dark bool
	// OnCue Cue 回调，可为 nil
	OnCue cue.Func
	// OnComplete 每次播放到结尾时回调一次，可为 nil
	OnComplete func()
}

// playbackContext 一次播放的全部运行时状态
type playbackContext struct {
	tl       *timeline.Timeline
	sampler  *timeline.Sampler
	cursor   *cue.Cursor
	snapshot map[timeline.Target]timeline.Props
	playhead float64
	done     bool
}

// Controller 播放控制器
type Controller struct {
	mu sync.Mutex

	tracks   *tracks.Registry
	variants *variants.Registry
	loader   capability.Source
	policy   motion.Policy
	opts     Options

	state   State
	current *playbackContext
	// gen 上下文代号，revert 与 replay 时递增
	gen uint64

	// 能力加载等待
	pending <-chan capability.Ready
	cancel  context.CancelFunc

	// 循环计时：只有一个，Replay 时重置
	loopArmed   bool
	loopElapsed float64
}

// NewController 创建播放控制器
//
// 参数：
//   - tr: 宿主挂载的轨道
//   - reg: 变体注册表，为 nil 时使用内置注册表
//   - loader: 能力来源，为 nil 时视为不可用
//   - policy: 减弱动效策略，为 nil 时从不减弱
//   - opts: 配置
func NewController(tr *tracks.Registry, reg *variants.Registry, loader capability.Source, policy motion.Policy, opts Options) *Controller {
	if reg == nil {
		reg = variants.Builtin()
	}
	if loader == nil {
		loader = capability.Static(capability.Unavailable)
	}
	if opts.LoopDelay < 0 {
		opts.LoopDelay = 0
	}
	c := &Controller{
		tracks:   tr,
		variants: reg,
		loader:   loader,
		policy:   policy,
		opts:     opts,
		state:    StateIdle,
	}
	if opts.AutoPlay {
		c.Play(context.Background())
	}
	return c
}

// Play 撤销当前上下文，然后构建并播放新的时间轴。
// 能力结果已就绪时同步开始播放；否则进入 Building，由后续 Update 轮询。
// 构建结果为空时停留在 Idle。
func (c *Controller) Play(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	c.mu.Lock()
	c.revertLocked()

	var events []func()
	if c.policy != nil && c.policy.ShouldReduceMotion() {
		log.Printf("[Playback] Reduced motion requested, playing fallback instead of %q", c.opts.Variant)
		events = c.beginLocked(motion.Fallback(c.tracks))
	} else {
		c.state = StateBuilding
		waitCtx, cancel := context.WithCancel(ctx)
		ch := c.loader.Ensure(waitCtx)
		select {
		case ready := <-ch:
			cancel()
			events = c.startLocked(ready)
		default:
			c.pending = ch
			c.cancel = cancel
		}
	}
	c.mu.Unlock()
	run(events)
}

// Replay 从头重播当前时间轴（同一实例，不重新构建）。
// 还没有时间轴时等同于 Play；正在等待能力加载时什么都不做。
func (c *Controller) Replay() {
	c.mu.Lock()
	if c.state == StateBuilding {
		c.mu.Unlock()
		return
	}
	if c.current == nil {
		c.mu.Unlock()
		c.Play(context.Background())
		return
	}
	events := c.replayLocked()
	c.mu.Unlock()
	run(events)
}

// Pause 冻结推进。只在 Playing 时生效，其余状态下什么都不做。
func (c *Controller) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StatePlaying {
		c.state = StatePaused
	}
}

// Kill 取消所有剩余工作并恢复轨道属性。任何状态下都可调用，可重复调用。
func (c *Controller) Kill() {
	c.mu.Lock()
	defer c.mu.Unlock()
	active := c.current != nil || c.pending != nil
	c.revertLocked()
	if active {
		c.state = StateKilled
		log.Printf("[Playback] Killed")
	}
}

// Update 推进一帧
//
// 参数：
//   - dt: 距上一帧的时间（秒）
func (c *Controller) Update(dt float64) {
	if dt < 0 {
		dt = 0
	}
	c.mu.Lock()
	var events []func()

	if c.state == StateBuilding && c.pending != nil {
		select {
		case ready := <-c.pending:
			c.pending = nil
			if c.cancel != nil {
				c.cancel()
				c.cancel = nil
			}
			events = append(events, c.startLocked(ready)...)
			// 开始播放的这一帧不推进
			dt = 0
		default:
		}
	}

	if c.state == StatePlaying {
		events = append(events, c.advanceLocked(dt)...)
	}

	if c.loopArmed && c.current != nil && c.state != StatePaused {
		c.loopElapsed += dt
		if c.loopElapsed >= timeline.TotalDuration+c.opts.LoopDelay {
			// 排在本帧的 Cue 与完成回调之后执行
			gen := c.gen
			events = append(events, func() { c.loopReplay(gen) })
		}
	}
	c.mu.Unlock()
	run(events)
}

// SetVariant 修改变体，下次 Play 生效
func (c *Controller) SetVariant(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.Variant = id
}

// SetDark 修改配色模式，下次 Play 生效
func (c *Controller) SetDark(dark bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts.Dark = dark
}

// SetLoop 修改循环配置。关闭循环会解除当前计时；开启循环在下次 Play/Replay 时计时。
func (c *Controller) SetLoop(loop bool, delay float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if delay < 0 {
		delay = 0
	}
	c.opts.Loop = loop
	c.opts.LoopDelay = delay
	if !loop {
		c.loopArmed = false
		c.loopElapsed = 0
	}
}

// Options 当前配置的副本
func (c *Controller) Options() Options {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.opts
}

// State 当前状态
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current 当前时间轴，没有时返回 nil
func (c *Controller) Current() *timeline.Timeline {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	return c.current.tl
}

// Playhead 当前播放位置
func (c *Controller) Playhead() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return 0
	}
	return c.current.playhead
}

// TotalDuration 所有变体共同的时长预算
func (c *Controller) TotalDuration() float64 {
	return timeline.TotalDuration
}

// startLocked 能力就绪后构建时间轴
func (c *Controller) startLocked(ready capability.Ready) []func() {
	tl := c.variants.Build(c.opts.Variant, variants.BuildContext{
		Tracks:     c.tracks,
		Capability: ready,
		MaxParts:   capability.MaxParts(c.loader),
		Cues:       cue.NewEmitter(),
		Options:    variants.Options{Dark: c.opts.Dark},
	})
	if tl == nil {
		log.Printf("[Playback] Variant %q produced nothing to play", c.opts.Variant)
		c.state = StateIdle
		return nil
	}
	return c.beginLocked(tl)
}

// beginLocked 为时间轴建立新的播放上下文并渲染第 0 帧
func (c *Controller) beginLocked(tl *timeline.Timeline) []func() {
	if tl == nil {
		c.state = StateIdle
		return nil
	}
	pc := &playbackContext{
		tl:       tl,
		cursor:   cue.NewCursor(tl.Cues()),
		snapshot: make(map[timeline.Target]timeline.Props),
	}
	for _, target := range tl.Targets() {
		if tr, ok := c.tracks.Resolve(target); ok {
			pc.snapshot[target] = tr.Props()
		}
	}
	pc.sampler = tl.Resolve(func(target timeline.Target, p timeline.Prop) float64 {
		if props, ok := pc.snapshot[target]; ok {
			return props[p]
		}
		return p.Default()
	})

	c.current = pc
	c.state = StatePlaying
	if c.opts.Loop {
		c.loopArmed = true
		c.loopElapsed = 0
	}
	log.Printf("[Playback] Playing %s (%d tweens, %d cues, end %.2f)", tl.Name(), len(tl.Tweens()), len(tl.Cues()), tl.End())
	return c.advanceLocked(0)
}

// loopReplay 循环到期后重播。期间上下文已被替换或暂停时放弃。
func (c *Controller) loopReplay(gen uint64) {
	c.mu.Lock()
	if c.gen != gen || c.current == nil || c.state == StatePaused {
		c.mu.Unlock()
		return
	}
	events := c.replayLocked()
	c.mu.Unlock()
	run(events)
}

// live 代号 gen 对应的上下文是否仍然有效
func (c *Controller) live(gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen == gen
}

// replayLocked 恢复快照后从 0 重新播放同一时间轴，并重置循环计时
func (c *Controller) replayLocked() []func() {
	pc := c.current
	c.gen++
	c.restoreLocked()
	pc.cursor.Reset()
	pc.playhead = 0
	pc.done = false
	c.state = StatePlaying
	if c.opts.Loop {
		c.loopArmed = true
	}
	c.loopElapsed = 0
	return c.advanceLocked(0)
}

// advanceLocked 推进播放头、写入轨道、收集到期的 Cue 与完成回调
func (c *Controller) advanceLocked(dt float64) []func() {
	pc := c.current
	end := pc.tl.End()
	pc.playhead += dt
	if pc.playhead > end {
		pc.playhead = end
	}
	pc.sampler.Sample(pc.playhead, func(target timeline.Target, p timeline.Prop, v float64) {
		if tr, ok := c.tracks.Resolve(target); ok {
			tr.Set(p, v)
		}
	})

	var events []func()
	gen := c.gen
	isLive := func() bool { return c.live(gen) }
	if fired := pc.cursor.Advance(pc.playhead); len(fired) > 0 && c.opts.OnCue != nil {
		fired = append([]cue.Cue(nil), fired...)
		onCue := c.opts.OnCue
		events = append(events, func() { cue.Dispatch(fired, onCue, isLive) })
	}
	if !pc.done && pc.playhead >= end {
		pc.done = true
		c.state = StateCompleted
		if onComplete := c.opts.OnComplete; onComplete != nil {
			events = append(events, func() {
				if isLive() {
					onComplete()
				}
			})
		}
	}
	return events
}

// restoreLocked 把当前上下文写过的轨道恢复到开始前的值
func (c *Controller) restoreLocked() {
	if c.current == nil {
		return
	}
	for target, props := range c.current.snapshot {
		tr, ok := c.tracks.Resolve(target)
		if !ok {
			continue
		}
		for p, v := range props {
			tr.Set(p, v)
		}
	}
}

// revertLocked 撤销当前上下文：恢复轨道、取消等待、解除循环
func (c *Controller) revertLocked() {
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.pending = nil
	c.restoreLocked()
	c.current = nil
	c.loopArmed = false
	c.loopElapsed = 0
	if c.state != StateKilled {
		c.state = StateIdle
	}
}

func run(events []func()) {
	for _, fn := range events {
		fn()
	}
}
