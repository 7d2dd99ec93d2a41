// Package utils 提供通用工具函数
package utils

import "math"

// Easing Functions (缓动函数)
//
// 缓动函数用于控制动画的速度曲线，使动画看起来更自然。
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值（Back/Elastic 允许短暂越界）。
//
// 参考：https://easings.net/

// EaseFunc 缓动函数签名
type EaseFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
// 返回值 = 输入值（匀速运动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（推荐用于"飞向目标"动画）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInCubic 三次方缓入
// 特点：开始慢，结束快
// 公式：f(t) = t³
func EaseInCubic(t float64) float64 {
	return t * t * t
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseOutQuad 二次方缓出
// 公式：f(t) = 1 - (1-t)²
func EaseOutQuad(t float64) float64 {
	return 1 - (1-t)*(1-t)
}

// EaseInQuad 二次方缓入
// 公式：f(t) = t²
func EaseInQuad(t float64) float64 {
	return t * t
}

// EaseOutExpo 指数缓出
// 特点：开始非常快，结束非常慢
// 公式：f(t) = 1 - 2^(-10t)
func EaseOutExpo(t float64) float64 {
	if t >= 1.0 {
		return 1.0
	}
	return 1 - math.Pow(2, -10*t)
}

// EaseInExpo 指数缓入（用于"射出"类加速动作）
// 公式：f(t) = 2^(10t - 10)
func EaseInExpo(t float64) float64 {
	if t <= 0 {
		return 0
	}
	return math.Pow(2, 10*t-10)
}

// EaseInOutSine 正弦缓入缓出（呼吸、漂浮）
func EaseInOutSine(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// EaseOutBack 回弹缓出，终点前越过目标约 10%
// 公式：f(t) = 1 + c3(t-1)³ + c1(t-1)²，c1 = 1.70158
func EaseOutBack(t float64) float64 {
	const c1 = 1.70158
	const c3 = c1 + 1
	return 1 + c3*math.Pow(t-1, 3) + c1*math.Pow(t-1, 2)
}

// EaseOutElastic 弹性缓出（贴纸抖动）
func EaseOutElastic(t float64) float64 {
	const c4 = (2 * math.Pi) / 3
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}

// EaseOutBounce 弹跳缓出（落地反弹）
func EaseOutBounce(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// EaseSteps 返回一个阶梯缓动（故障闪烁），n 为阶数
func EaseSteps(n int) EaseFunc {
	if n < 1 {
		n = 1
	}
	return func(t float64) float64 {
		if t >= 1 {
			return 1
		}
		return math.Floor(t*float64(n)) / float64(n)
	}
}

// CubicBezier 返回与 CSS cubic-bezier() 等价的缓动函数。
// 控制点为 (x1,y1) 与 (x2,y2)，曲线起点 (0,0)，终点 (1,1)。
func CubicBezier(x1, y1, x2, y2 float64) EaseFunc {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		u := t
		// 牛顿迭代，多数情况下很快收敛
		for i := 0; i < 8; i++ {
			x := bezierSample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return bezierSample(y1, y2, Clamp01(u))
			}
			dx := bezierDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// 二分兜底
		lo, hi := 0.0, 1.0
		u = Clamp01(u)
		for i := 0; i < 12; i++ {
			x := bezierSample(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}
		return bezierSample(y1, y2, u)
	}
}

func bezierSample(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

// easings 名称 → 缓动函数
// 名称会出现在时间轴导出（cmd/intro_dump）中，保持稳定。
var easings = map[string]EaseFunc{
	"linear":     EaseLinear,
	"inQuad":     EaseInQuad,
	"outQuad":    EaseOutQuad,
	"inCubic":    EaseInCubic,
	"outCubic":   EaseOutCubic,
	"inOutCubic": EaseInOutCubic,
	"inExpo":     EaseInExpo,
	"outExpo":    EaseOutExpo,
	"inOutSine":  EaseInOutSine,
	"outBack":    EaseOutBack,
	"outElastic": EaseOutElastic,
	"outBounce":  EaseOutBounce,
	"steps4":     EaseSteps(4),
	"snap":       CubicBezier(0.22, 1.0, 0.36, 1.0),
}

// Easing 按名称查找缓动函数
//
// 参数：
//   - name: 缓动名称，如 "outCubic"、"outBack"
//
// 返回：
//   - EaseFunc: 缓动函数，未知名称返回 EaseLinear
//   - bool: 名称是否已注册
func Easing(name string) (EaseFunc, bool) {
	if fn, ok := easings[name]; ok {
		return fn, true
	}
	return EaseLinear, false
}

// Lerp 线性插值
// 在 a 和 b 之间根据 t 插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 将 x 限制在 [0,1]
func Clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
