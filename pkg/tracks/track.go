// Package tracks 描述宿主页面挂载的视觉目标（轨道）。
//
// 轨道由宿主创建和销毁，引擎只修改其属性。某个轨道缺失是正常情况，
// 变体构建时需要跳过或降级，不能报错。
package tracks

import "github.com/decker502/brandintro/pkg/timeline"

// 固定轨道槽位
const (
	Container = "container"
	Emblem    = "emblem"
	Glow      = "glow"
	Particles = "particles"
	ScanLine  = "scanline"
	Flash     = "flash"
	Outline   = "outline"
	// Star 任务类变体中自由飞行的星形图案
	Star = "star"
)

// Slots 所有槽位，按挂载顺序
var Slots = []string{Container, Emblem, Glow, Particles, ScanLine, Flash, Outline, Star}

// Track 一个视觉目标及其当前属性
type Track struct {
	name  string
	props map[timeline.Prop]float64
	parts []*Track
}

// NewTrack 创建轨道
//
// 参数：
//   - name: 轨道名
//   - parts: 子图形数量（描边路径等），0 表示无子图形
func NewTrack(name string, parts int) *Track {
	t := &Track{
		name:  name,
		props: make(map[timeline.Prop]float64),
	}
	for i := 0; i < parts; i++ {
		t.parts = append(t.parts, &Track{
			name:  name,
			props: make(map[timeline.Prop]float64),
		})
	}
	return t
}

// Name 轨道名
func (t *Track) Name() string {
	return t.name
}

// Get 读取属性，未设置时返回静止值
func (t *Track) Get(p timeline.Prop) float64 {
	if v, ok := t.props[p]; ok {
		return v
	}
	return p.Default()
}

// Set 写入属性
func (t *Track) Set(p timeline.Prop, v float64) {
	t.props[p] = v
}

// Props 当前属性快照（包含静止值）
func (t *Track) Props() timeline.Props {
	out := make(timeline.Props, len(timeline.AllProps()))
	for _, p := range timeline.AllProps() {
		out[p] = t.Get(p)
	}
	return out
}

// Parts 子图形数量
func (t *Track) Parts() int {
	return len(t.parts)
}

// Part 第 i 个子图形（从 1 开始），越界返回 nil
func (t *Track) Part(i int) *Track {
	if i < 1 || i > len(t.parts) {
		return nil
	}
	return t.parts[i-1]
}
