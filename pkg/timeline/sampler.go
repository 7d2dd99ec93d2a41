package timeline

import (
	"sort"

	"github.com/decker502/brandintro/pkg/utils"
)

// BaseFunc 提供某目标属性在播放开始前的取值
type BaseFunc func(target Target, p Prop) float64

// DefaultBase 使用属性的静止值作为起点
func DefaultBase(_ Target, p Prop) float64 {
	return p.Default()
}

// Channel 一个 (目标, 属性) 通道
type Channel struct {
	Target Target
	Prop   Prop
}

type segment struct {
	start    float64
	dur      float64
	from     float64
	to       float64
	ease     utils.EaseFunc
	explicit bool
}

func (s segment) valueAt(t float64) float64 {
	if s.dur <= 0 {
		return s.to
	}
	u := utils.Clamp01((t - s.start) / s.dur)
	return utils.Lerp(s.from, s.to, s.ease(u))
}

type channel struct {
	Channel
	base float64
	segs []segment
}

// valueAt 规则：
//   - 第一个补间开始前：若它显式给出 from 则取 from，否则取 base
//   - 之后取最近一个已开始补间在 t 处的值（后开始者覆盖先开始者）
func (c *channel) valueAt(t float64) float64 {
	if len(c.segs) == 0 {
		return c.base
	}
	if t < c.segs[0].start {
		if c.segs[0].explicit {
			return c.segs[0].from
		}
		return c.base
	}
	v := c.base
	for _, s := range c.segs {
		if s.start > t {
			break
		}
		v = s.valueAt(t)
	}
	return v
}

// Sampler 针对一组起始值解析后的时间轴，可在任意时刻采样
type Sampler struct {
	channels []*channel
	index    map[Channel]*channel
	end      float64
}

// Resolve 以 base 为起始值解析时间轴。
// 未显式给出 from 的补间从"该时刻之前的补间所产生的值"出发。
func (tl *Timeline) Resolve(base BaseFunc) *Sampler {
	if base == nil {
		base = DefaultBase
	}
	s := &Sampler{
		index: make(map[Channel]*channel),
		end:   tl.end,
	}

	ordered := make([]Tween, len(tl.tweens))
	copy(ordered, tl.tweens)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Start != ordered[j].Start {
			return ordered[i].Start < ordered[j].Start
		}
		return ordered[i].seq < ordered[j].seq
	})

	for _, tw := range ordered {
		ease, _ := utils.Easing(tw.Ease)
		for _, p := range tw.To.sortedKeys() {
			key := Channel{Target: tw.Target, Prop: p}
			ch, ok := s.index[key]
			if !ok {
				ch = &channel{Channel: key, base: base(tw.Target, p)}
				s.index[key] = ch
				s.channels = append(s.channels, ch)
			}
			seg := segment{
				start: tw.Start,
				dur:   tw.Duration,
				to:    tw.To[p],
				ease:  ease,
			}
			if from, ok := tw.From[p]; ok {
				seg.from = from
				seg.explicit = true
			} else {
				seg.from = ch.valueAt(tw.Start)
			}
			ch.segs = append(ch.segs, seg)
		}
	}
	return s
}

// End 时间轴结束时刻
func (s *Sampler) End() float64 {
	return s.end
}

// Channels 所有被动画的通道（按首次出现顺序）
func (s *Sampler) Channels() []Channel {
	out := make([]Channel, len(s.channels))
	for i, ch := range s.channels {
		out[i] = ch.Channel
	}
	return out
}

// Value 某通道在 t 时刻的值
func (s *Sampler) Value(target Target, p Prop, t float64) (float64, bool) {
	ch, ok := s.index[Channel{Target: target, Prop: p}]
	if !ok {
		return 0, false
	}
	return ch.valueAt(t), true
}

// Sample 对所有通道在 t 时刻采样，逐个回调 apply
func (s *Sampler) Sample(t float64, apply func(target Target, p Prop, v float64)) {
	for _, ch := range s.channels {
		apply(ch.Target, ch.Prop, ch.valueAt(t))
	}
}
