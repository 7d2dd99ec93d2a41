package variants

import (
	"math"

	"github.com/decker502/brandintro/pkg/tracks"
)

// 星标锁定后在构图中的位置与大小
const (
	lockX     = 56.0
	lockY     = -48.0
	lockScale = 0.45
)

// 星标路径全部是预先编排的关键帧，不做物理模拟。
// 星标轨道缺失时所有路径直接跳过。

// orbit 绕主体做椭圆环绕
//
// 参数：
//   - at, dur: 时间窗
//   - radius: 水平半径，垂直半径为其 0.6 倍
//   - turns: 圈数
func (k *kit) orbit(at, dur, radius float64, turns int) {
	if !k.has(tracks.Star) || turns <= 0 {
		return
	}
	star := on(tracks.Star)
	steps := 8 * turns
	step := dur / float64(steps)
	k.FromTo(star, at, step, "linear",
		props{opacity: 0, posX: radius, posY: 0, scale: 0.3},
		props{opacity: 1, posX: radius, posY: 0, scale: 0.3})
	for i := 1; i <= steps; i++ {
		a := 2 * math.Pi * float64(i) / 8
		k.To(star, at+float64(i-1)*step, step, "linear", props{
			posX:     radius * math.Cos(a),
			posY:     radius * 0.6 * math.Sin(a),
			rotation: 45 * float64(i),
		})
	}
}

// spiral 由外向内收缩的螺旋，终点在锁定位置附近
func (k *kit) spiral(at, dur, r0 float64, turns int) {
	if !k.has(tracks.Star) || turns <= 0 {
		return
	}
	star := on(tracks.Star)
	steps := 8 * turns
	step := dur / float64(steps)
	k.FromTo(star, at, step, "linear",
		props{opacity: 0, posX: r0, posY: 0, scale: 0.8},
		props{opacity: 1, posX: r0, posY: 0, scale: 0.8})
	for i := 1; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		r := r0 * (1 - frac*0.85)
		a := 2 * math.Pi * float64(i) / 8
		k.To(star, at+float64(i-1)*step, step, "linear", props{
			posX:     lockX*frac + r*math.Cos(a),
			posY:     lockY*frac + r*math.Sin(a),
			scale:    0.8 - (0.8-lockScale)*frac,
			rotation: 60 * float64(i),
		})
	}
}

// hop 一次抛物线跳跃：水平匀速，垂直先升后落
func (k *kit) hop(at, dur, x0, x1, height float64) {
	if !k.has(tracks.Star) {
		return
	}
	star := on(tracks.Star)
	half := dur / 2
	k.To(star, at, dur, "linear", props{posX: x1})
	k.To(star, at, half, "outQuad", props{posY: -height})
	k.To(star, at+half, half, "inQuad", props{posY: 0})
	k.To(star, at, dur, "linear", props{rotation: (x1 - x0) * 2})
}

// shoot 从画面外高速射入，直接落在锁定位置
func (k *kit) shoot(at, dur float64) {
	if !k.has(tracks.Star) {
		return
	}
	k.FromTo(on(tracks.Star), at, dur, "inExpo",
		props{opacity: 1, posX: -320, posY: 160, rotation: -720, scale: 0.2},
		props{opacity: 1, posX: lockX, posY: lockY, rotation: 0, scale: lockScale})
}

// pulse 心跳：每拍两次收缩
func (k *kit) pulse(at float64, beats int, period, rest, peak float64) {
	if !k.has(tracks.Star) {
		return
	}
	star := on(tracks.Star)
	beat := period / 4
	for i := 0; i < beats; i++ {
		t := at + float64(i)*period
		k.To(star, t, beat, "outQuad", props{scale: peak})
		k.To(star, t+beat, beat, "inQuad", props{scale: rest})
	}
}

// magnet 先被推远，再被主体吸回
func (k *kit) magnet(at, push, pull float64) {
	if !k.has(tracks.Star) {
		return
	}
	star := on(tracks.Star)
	k.FromTo(star, at, push, "outQuad",
		props{opacity: 0, posX: 180, posY: 90, scale: 0.5},
		props{opacity: 1, posX: 220, posY: 120, scale: 0.5})
	k.To(star, at+push, pull, "inExpo", props{posX: lockX, posY: lockY, scale: lockScale, rotation: 180})
}

// lockIn 星标归位
func (k *kit) lockIn(at, dur float64, ease string) {
	if !k.has(tracks.Star) {
		return
	}
	k.To(on(tracks.Star), at, dur, ease, props{
		opacity:  1,
		posX:     lockX,
		posY:     lockY,
		scale:    lockScale,
		rotation: 0,
	})
}

// embrace 星标与主体一起轻微放大再回落，光晕呼应
func (k *kit) embrace(at float64) {
	if k.has(tracks.Star) {
		star := on(tracks.Star)
		k.To(star, at, 0.2, "outQuad", props{scale: 0.6, brightness: 1.6})
		k.To(star, at+0.2, 0.3, "outCubic", props{scale: lockScale, brightness: 1})
	}
	if s, ok := k.subject(); ok {
		k.To(s, at, 0.2, "outQuad", props{scale: 1.05})
		k.To(s, at+0.2, 0.3, "outCubic", props{scale: 1})
	}
	k.glowPulse(at, 0.5, 0.8)
}
