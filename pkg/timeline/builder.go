package timeline

import (
	"log"

	"github.com/decker502/brandintro/pkg/cue"
)

// Builder 按绝对时间布置补间与 Cue，最终产出不可变的 Timeline。
//
// 超出时长预算的补间会被截断到预算内，并输出警告。
type Builder struct {
	name   string
	cues   *cue.Emitter
	tweens []Tween
	budget float64
}

// NewBuilder 创建构建器
//
// 参数：
//   - name: 时间轴名称（通常为变体 ID）
//   - cues: Cue 记录器，为 nil 时内部新建
func NewBuilder(name string, cues *cue.Emitter) *Builder {
	if cues == nil {
		cues = cue.NewEmitter()
	}
	return &Builder{
		name:   name,
		cues:   cues,
		budget: TotalDuration,
	}
}

// WithBudget 修改时长预算（仅用于短于默认预算的时间轴，如降级淡入）
func (b *Builder) WithBudget(budget float64) *Builder {
	if budget > 0 && budget <= TotalDuration {
		b.budget = budget
	}
	return b
}

// To 从目标的当前值补间到 to
func (b *Builder) To(target Target, at, dur float64, ease string, to Props) *Builder {
	return b.add(target, at, dur, ease, nil, to)
}

// FromTo 从 from 补间到 to，开始前即渲染 from 值
func (b *Builder) FromTo(target Target, at, dur float64, ease string, from, to Props) *Builder {
	return b.add(target, at, dur, ease, from, to)
}

// Set 在 at 时刻瞬间设定属性
func (b *Builder) Set(target Target, at float64, props Props) *Builder {
	return b.add(target, at, 0, "linear", nil, props)
}

// Cue 在 at 时刻登记一个 Cue
func (b *Builder) Cue(name string, at float64) *Builder {
	if at > b.budget {
		log.Printf("[TimelineBuilder] Warning: %s cue %q at %.3f exceeds budget %.2f, clamped", b.name, name, at, b.budget)
		at = b.budget
	}
	b.cues.Schedule(name, at)
	return b
}

// Len 已调度的补间数量
func (b *Builder) Len() int {
	return len(b.tweens)
}

func (b *Builder) add(target Target, at, dur float64, ease string, from, to Props) *Builder {
	if len(to) == 0 {
		return b
	}
	if at < 0 {
		at = 0
	}
	if dur < 0 {
		dur = 0
	}
	if at > b.budget {
		log.Printf("[TimelineBuilder] Warning: %s tween on %s starts at %.3f past budget, clamped", b.name, target, at)
		at = b.budget
	}
	if at+dur > b.budget+1e-9 {
		log.Printf("[TimelineBuilder] Warning: %s tween on %s ends at %.3f past budget, clamped", b.name, target, at+dur)
		dur = b.budget - at
	}
	if ease == "" {
		ease = "linear"
	}
	b.tweens = append(b.tweens, Tween{
		Target:   target,
		From:     copyProps(from),
		To:       copyProps(to),
		Start:    at,
		Duration: dur,
		Ease:     ease,
		seq:      len(b.tweens),
	})
	return b
}

// Build 产出时间轴。之后对构建器的修改不会影响已产出的时间轴。
func (b *Builder) Build() *Timeline {
	tl := &Timeline{
		name:   b.name,
		tweens: make([]Tween, len(b.tweens)),
		cues:   b.cues.Cues(),
	}
	copy(tl.tweens, b.tweens)
	tl.measure()
	return tl
}
