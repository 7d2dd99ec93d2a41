// Package timeline 定义动画时间轴的数据模型：属性、目标、补间与 Cue。
//
// 时间轴在创建时处于暂停状态，只描述"在什么时刻把哪个目标的哪些属性
// 变到什么值"，由 playback 包驱动播放。所有变体共享同一个时长预算。
package timeline

import (
	"fmt"
	"sort"

	"github.com/decker502/brandintro/pkg/cue"
)

// TotalDuration 每条时间轴的固定时长预算（时间单位：秒）
const TotalDuration = 2.4

// Prop 可动画的视觉属性
type Prop int

const (
	Opacity Prop = iota
	X
	Y
	Rotation
	Scale
	ScaleX
	ScaleY
	Blur
	Brightness
	Hue
	// DrawStart/DrawEnd 描边可见区间（路径长度百分比 0..1）
	DrawStart
	DrawEnd
	// Clip 裁剪揭示比例，1 表示完全可见
	Clip

	propCount
)

var propNames = [propCount]string{
	"opacity", "x", "y", "rotation", "scale", "scaleX", "scaleY",
	"blur", "brightness", "hue", "drawStart", "drawEnd", "clip",
}

// String 返回属性名
func (p Prop) String() string {
	if p < 0 || p >= propCount {
		return fmt.Sprintf("Prop(%d)", int(p))
	}
	return propNames[p]
}

// Default 属性的静止值（宿主未设置时的取值）
func (p Prop) Default() float64 {
	switch p {
	case Opacity, Scale, ScaleX, ScaleY, Brightness, DrawEnd, Clip:
		return 1
	default:
		return 0
	}
}

// AllProps 所有属性，按声明顺序
func AllProps() []Prop {
	out := make([]Prop, propCount)
	for i := range out {
		out[i] = Prop(i)
	}
	return out
}

// Props 属性集合
type Props map[Prop]float64

// sortedKeys 按属性顺序返回键，保证遍历确定
func (p Props) sortedKeys() []Prop {
	keys := make([]Prop, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Target 补间目标：轨道名 + 子图形序号（0 表示轨道本身，1..n 为子图形）
type Target struct {
	Track string
	Part  int
}

// On 目标为整条轨道
func On(track string) Target {
	return Target{Track: track}
}

// PartOf 目标为轨道的第 part 个子图形（从 1 开始）
func PartOf(track string, part int) Target {
	return Target{Track: track, Part: part}
}

// String 形如 "outline" 或 "outline#2"
func (t Target) String() string {
	if t.Part == 0 {
		return t.Track
	}
	return fmt.Sprintf("%s#%d", t.Track, t.Part)
}

// Tween 一个原子补间。调度之后不可变。
type Tween struct {
	Target   Target
	From     Props // 为 nil 时从当前值出发
	To       Props
	Start    float64
	Duration float64
	Ease     string

	seq int
}

// End 补间结束时刻
func (tw Tween) End() float64 {
	return tw.Start + tw.Duration
}

// Timeline 一次播放所需的全部补间与 Cue
type Timeline struct {
	name   string
	tweens []Tween
	cues   []cue.Cue
	end    float64
}

// Name 构建该时间轴的变体 ID
func (tl *Timeline) Name() string {
	return tl.name
}

// Tweens 返回补间副本（按调度顺序）
func (tl *Timeline) Tweens() []Tween {
	out := make([]Tween, len(tl.tweens))
	for i, tw := range tl.tweens {
		out[i] = tw
		out[i].From = copyProps(tw.From)
		out[i].To = copyProps(tw.To)
	}
	return out
}

// Cues 返回按偏移排序的 Cue 副本
func (tl *Timeline) Cues() []cue.Cue {
	out := make([]cue.Cue, len(tl.cues))
	copy(out, tl.cues)
	return out
}

// End 最后一个补间结束或最后一个 Cue 的时刻
func (tl *Timeline) End() float64 {
	return tl.end
}

// Targets 出现过的目标（按首次出现顺序）
func (tl *Timeline) Targets() []Target {
	seen := make(map[Target]bool)
	var out []Target
	for _, tw := range tl.tweens {
		if !seen[tw.Target] {
			seen[tw.Target] = true
			out = append(out, tw.Target)
		}
	}
	return out
}

// TweensOn 某个目标上的补间（按调度顺序）
func (tl *Timeline) TweensOn(target Target) []Tween {
	var out []Tween
	for _, tw := range tl.tweens {
		if tw.Target == target {
			out = append(out, tw)
		}
	}
	return out
}

// Without 去掉某个轨道（含其子图形）上全部补间后的新时间轴，Cue 不变
func (tl *Timeline) Without(track string) *Timeline {
	out := &Timeline{name: tl.name, cues: tl.Cues()}
	for _, tw := range tl.tweens {
		if tw.Target.Track != track {
			out.tweens = append(out.tweens, tw)
		}
	}
	out.measure()
	return out
}

// measure 由补间与 Cue 计算结束时刻
func (tl *Timeline) measure() {
	tl.end = 0
	for _, tw := range tl.tweens {
		if tw.End() > tl.end {
			tl.end = tw.End()
		}
	}
	for _, c := range tl.cues {
		if c.Offset > tl.end {
			tl.end = c.Offset
		}
	}
}

func copyProps(p Props) Props {
	if p == nil {
		return nil
	}
	out := make(Props, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}
