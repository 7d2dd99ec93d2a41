// Package input 把鼠标和触摸统一成简单的手势。
package input

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Gesture 一次指针手势的分类结果
type Gesture int

const (
	// GestureNone 没有完成的手势
	GestureNone Gesture = iota
	// GestureTap 点按（移动距离小于阈值）
	GestureTap
	// GestureSwipeLeft 向左滑动
	GestureSwipeLeft
	// GestureSwipeRight 向右滑动
	GestureSwipeRight
)

// String 返回可读名称
func (g Gesture) String() string {
	switch g {
	case GestureTap:
		return "tap"
	case GestureSwipeLeft:
		return "swipe-left"
	case GestureSwipeRight:
		return "swipe-right"
	default:
		return "none"
	}
}

// DefaultSwipeThreshold 水平位移超过该值（像素）才算滑动
const DefaultSwipeThreshold = 48

// ClassifyGesture 根据按下到释放的位移判断手势。
// 以水平方向为主的长位移是滑动，纵向为主的长位移不算任何手势。
//
// 参数：
//   - dx, dy: 释放点相对按下点的位移
//   - threshold: 滑动阈值，≤0 时使用 DefaultSwipeThreshold
func ClassifyGesture(dx, dy, threshold int) Gesture {
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	adx, ady := abs(dx), abs(dy)
	if adx < threshold && ady < threshold {
		return GestureTap
	}
	if adx <= ady {
		return GestureNone
	}
	if dx < 0 {
		return GestureSwipeLeft
	}
	return GestureSwipeRight
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// GestureTracker 跟踪一次按下到释放的过程，同时支持鼠标和触摸
type GestureTracker struct {
	Threshold int

	active         bool
	touchID        ebiten.TouchID
	isTouch        bool
	startX, startY int
	lastX, lastY   int
}

// Update 每帧调用一次，释放的那一帧返回手势
func (g *GestureTracker) Update() Gesture {
	if !g.active {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			g.touchID = ids[0]
			g.isTouch = true
			g.startX, g.startY = ebiten.TouchPosition(g.touchID)
			g.begin()
		} else if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.isTouch = false
			g.startX, g.startY = ebiten.CursorPosition()
			g.begin()
		}
		return GestureNone
	}

	if g.isTouch {
		if inpututil.IsTouchJustReleased(g.touchID) {
			return g.end()
		}
		// 释放后 TouchPosition 返回 0，所以保存最后一次有效位置
		g.lastX, g.lastY = ebiten.TouchPosition(g.touchID)
		return GestureNone
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.lastX, g.lastY = ebiten.CursorPosition()
		return g.end()
	}
	return GestureNone
}

func (g *GestureTracker) begin() {
	g.active = true
	g.lastX, g.lastY = g.startX, g.startY
}

func (g *GestureTracker) end() Gesture {
	g.active = false
	return ClassifyGesture(g.lastX-g.startX, g.lastY-g.startY, g.Threshold)
}

// Active 是否正处于按下状态
func (g *GestureTracker) Active() bool {
	return g.active
}
