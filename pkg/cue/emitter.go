// Package cue 管理时间轴上的命名事件（Cue）。
//
// 构建阶段由 Emitter 记录 (名称, 偏移)，播放阶段由 Cursor 按偏移顺序
// 逐个取出到期事件，每次播放每个 Cue 至多触发一次。
package cue

import (
	"log"
	"sort"
)

// Cue 一个定时事件
type Cue struct {
	Name   string  `yaml:"name"`
	Offset float64 `yaml:"offset"`
}

// Func Cue 回调：(名称, 偏移)
type Func func(name string, offset float64)

// Emitter 记录构建期间调度的 Cue。
// 没有回调也能正常记录，构建逻辑无需区分。
type Emitter struct {
	cues []Cue
	last float64
}

// NewEmitter 创建空的 Emitter
func NewEmitter() *Emitter {
	return &Emitter{}
}

// Schedule 在偏移 offset 处登记名为 name 的 Cue
func (e *Emitter) Schedule(name string, offset float64) {
	if offset < 0 {
		offset = 0
	}
	if len(e.cues) > 0 && offset < e.last {
		log.Printf("[CueEmitter] Warning: cue %q at %.3f scheduled before previous cue at %.3f", name, offset, e.last)
	}
	e.cues = append(e.cues, Cue{Name: name, Offset: offset})
	if offset > e.last {
		e.last = offset
	}
}

// Len 已登记的 Cue 数量
func (e *Emitter) Len() int {
	return len(e.cues)
}

// Cues 返回按偏移排序的副本，偏移相同时保持登记顺序
func (e *Emitter) Cues() []Cue {
	out := make([]Cue, len(e.cues))
	copy(out, e.cues)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Offset < out[j].Offset
	})
	return out
}

// Cursor 播放期间的 Cue 游标
type Cursor struct {
	cues []Cue
	next int
}

// NewCursor 基于已排序的 Cue 列表创建游标
func NewCursor(cues []Cue) *Cursor {
	return &Cursor{cues: cues}
}

// Advance 返回偏移 ≤ to 且尚未触发的 Cue，按顺序排列
func (c *Cursor) Advance(to float64) []Cue {
	start := c.next
	for c.next < len(c.cues) && c.cues[c.next].Offset <= to {
		c.next++
	}
	if start == c.next {
		return nil
	}
	return c.cues[start:c.next]
}

// Reset 回到起点，所有 Cue 重新变为未触发
func (c *Cursor) Reset() {
	c.next = 0
}

// Pending 尚未触发的 Cue 数量
func (c *Cursor) Pending() int {
	return len(c.cues) - c.next
}

// Dispatch 依次调用 fn，每次调用前检查 live，live 返回 false 时停止
//
// 参数：
//   - fired: 待触发的 Cue
//   - fn: 回调，为 nil 时什么都不做
//   - live: 触发条件，为 nil 时视为始终成立
//
// 返回：
//   - int: 实际触发的数量
func Dispatch(fired []Cue, fn Func, live func() bool) int {
	if fn == nil {
		return 0
	}
	n := 0
	for _, c := range fired {
		if live != nil && !live() {
			break
		}
		fn(c.Name, c.Offset)
		n++
	}
	return n
}

// Names 提取名称序列
func Names(cues []Cue) []string {
	out := make([]string, len(cues))
	for i, c := range cues {
		out[i] = c.Name
	}
	return out
}
