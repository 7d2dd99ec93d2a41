package variants

import (
	"math"

	"github.com/decker502/brandintro/pkg/capability"
	"github.com/decker502/brandintro/pkg/timeline"
	"github.com/decker502/brandintro/pkg/tracks"
)

// kit 变体构建的公共工具：在 Builder 之上提供常用的"动作片段"。
// 每个片段在目标轨道缺失时直接跳过。
type kit struct {
	*timeline.Builder
	bc BuildContext
}

func newKit(id string, bc BuildContext) *kit {
	k := &kit{Builder: timeline.NewBuilder(id, bc.Cues), bc: bc}
	k.paint()
	return k
}

func (k *kit) has(name string) bool {
	return k.bc.Tracks.Has(name)
}

// subject 主体：优先徽标，缺失时退化为容器
func (k *kit) subject() (timeline.Target, bool) {
	if k.has(tracks.Emblem) {
		return on(tracks.Emblem), true
	}
	if k.has(tracks.Container) {
		return on(tracks.Container), true
	}
	return timeline.Target{}, false
}

// palette 深色/浅色模式下光晕的色相与亮度，不影响时间
type palette struct {
	hue        float64
	brightness float64
	flash      float64
}

func (k *kit) palette() palette {
	if k.bc.Dark {
		return palette{hue: 210, brightness: 1.25, flash: 0.8}
	}
	return palette{hue: 35, brightness: 1.0, flash: 1.0}
}

func (k *kit) paint() {
	if !k.has(tracks.Glow) {
		return
	}
	p := k.palette()
	k.Set(on(tracks.Glow), 0, props{hue: p.hue, brightness: p.brightness})
}

// fadeIn 容器整体淡入
func (k *kit) fadeIn(at, dur float64) {
	if !k.has(tracks.Container) {
		return
	}
	k.FromTo(on(tracks.Container), at, dur, "outQuad", props{opacity: 0}, props{opacity: 1})
}

// flash 闪白：快速拉高后缓慢消退
func (k *kit) flash(at, peak float64) {
	if !k.has(tracks.Flash) {
		return
	}
	peak *= k.palette().flash
	k.FromTo(on(tracks.Flash), at, 0.06, "outQuad", props{opacity: 0}, props{opacity: peak})
	k.To(on(tracks.Flash), at+0.06, 0.3, "outCubic", props{opacity: 0})
}

// burst 粒子迸发
func (k *kit) burst(at, spread float64) {
	if !k.has(tracks.Particles) {
		return
	}
	k.FromTo(on(tracks.Particles), at, 0.25, "outExpo",
		props{opacity: 0, scale: 0.2}, props{opacity: 1, scale: spread})
	k.To(on(tracks.Particles), at+0.25, 0.45, "outCubic", props{opacity: 0})
}

// glowPulse 光晕一次脉冲，前半段扩张，后半段回落
func (k *kit) glowPulse(at, dur, peak float64) {
	if !k.has(tracks.Glow) {
		return
	}
	half := dur / 2
	k.FromTo(on(tracks.Glow), at, half, "outCubic",
		props{opacity: 0, scale: 0.6}, props{opacity: peak, scale: 1.3})
	k.To(on(tracks.Glow), at+half, half, "inOutSine", props{opacity: peak * 0.5, scale: 1})
}

// shadow 贴纸类用光晕充当投影
func (k *kit) shadow(at, dur float64) {
	if !k.has(tracks.Glow) {
		return
	}
	k.FromTo(on(tracks.Glow), at, dur, "outQuad",
		props{opacity: 0, posY: 20, scale: 1.4}, props{opacity: 0.35, posY: 6, scale: 1})
}

// scan 扫描线自上而下扫过
func (k *kit) scan(at, dur float64) {
	if !k.has(tracks.ScanLine) {
		return
	}
	k.FromTo(on(tracks.ScanLine), at, dur, "linear", props{posY: -1, opacity: 0.8}, props{posY: 1, opacity: 0.8})
	k.To(on(tracks.ScanLine), at+dur*0.8, dur*0.2, "linear", props{opacity: 0})
}

// breathe 姿态阶段的轻微呼吸
func (k *kit) breathe(at, dur float64) {
	s, ok := k.subject()
	if !ok {
		return
	}
	k.To(s, at, dur/2, "inOutSine", props{scale: 1.04})
	k.To(s, at+dur/2, dur/2, "inOutSine", props{scale: 1})
}

// revealOutline 揭示描边：可用且路径数不超过上限时逐路径绘制，否则用裁剪+透明度。
// 两条路径使用完全相同的时间窗。返回描边轨道是否存在。
//
// 参数：
//   - at: 开始时刻
//   - span: 整体时长（含错峰）
//   - stagger: 相邻路径的错峰间隔，路径过多时自动压缩
func (k *kit) revealOutline(at, span, stagger float64) bool {
	if !k.has(tracks.Outline) {
		return false
	}
	n := k.bc.Tracks.Parts(tracks.Outline)
	k.FromTo(on(tracks.Outline), at, 0.1, "linear", props{opacity: 0}, props{opacity: 1})

	targets := make([]timeline.Target, 0, n)
	for i := 1; i <= n; i++ {
		targets = append(targets, timeline.PartOf(tracks.Outline, i))
	}
	if n == 0 {
		targets = append(targets, on(tracks.Outline))
	}
	if len(targets) > 1 {
		stagger = math.Min(stagger, span*0.5/float64(len(targets)-1))
	} else {
		stagger = 0
	}
	dur := span - stagger*float64(len(targets)-1)

	// 路径数超过能力上限时整体走裁剪路径，时间窗不变
	draw := k.bc.Capability == capability.Available &&
		(k.bc.MaxParts <= 0 || len(targets) <= k.bc.MaxParts)
	for i, target := range targets {
		start := at + float64(i)*stagger
		if draw {
			k.FromTo(target, start, dur, "inOutCubic", props{drawStart: 0, drawEnd: 0}, props{drawStart: 0, drawEnd: 1})
		} else {
			k.FromTo(target, start, dur, "outCubic", props{clip: 0, opacity: 0}, props{clip: 1, opacity: 1})
		}
	}
	return true
}

// clipReveal 没有描边轨道时对主体做裁剪揭示
func (k *kit) clipReveal(at, dur float64, ease string) {
	s, ok := k.subject()
	if !ok {
		return
	}
	k.FromTo(s, at, dur, ease, props{clip: 0, opacity: 1}, props{clip: 1, opacity: 1})
}
