package render

import (
	"image/color"
	"math"
)

// Point 屏幕坐标
type Point struct {
	X, Y float64
}

// OutlinePaths 把半径为 radius 的圆角六边形轮廓均分为 parts 段路径。
// parts <= 0 时返回一条完整路径。
func OutlinePaths(parts int, cx, cy, radius float64) [][]Point {
	const samples = 96
	ring := make([]Point, samples+1)
	for i := 0; i <= samples; i++ {
		a := 2*math.Pi*float64(i)/samples - math.Pi/2
		// 六边形与圆的混合，带一点棱角
		r := radius * (0.9 + 0.1*math.Cos(6*a))
		ring[i] = Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)}
	}
	if parts <= 0 {
		return [][]Point{ring}
	}
	out := make([][]Point, 0, parts)
	for p := 0; p < parts; p++ {
		from := p * samples / parts
		to := (p + 1) * samples / parts
		seg := make([]Point, to-from+1)
		copy(seg, ring[from:to+1])
		out = append(out, seg)
	}
	return out
}

// Length 折线总长
func Length(path []Point) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += math.Hypot(path[i].X-path[i-1].X, path[i].Y-path[i-1].Y)
	}
	return total
}

// Partial 按弧长比例截取折线 [from, to]，比例限制在 0 ~ 1
func Partial(path []Point, from, to float64) []Point {
	from, to = clamp01(from), clamp01(to)
	if len(path) < 2 || to <= from {
		return nil
	}
	total := Length(path)
	if total == 0 {
		return nil
	}
	start, end := from*total, to*total

	var out []Point
	walked := 0.0
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		seg := math.Hypot(b.X-a.X, b.Y-a.Y)
		if seg == 0 {
			continue
		}
		segStart, segEnd := walked, walked+seg
		walked = segEnd
		if segEnd < start || segStart > end {
			continue
		}
		u0 := math.Max(0, (start-segStart)/seg)
		u1 := math.Min(1, (end-segStart)/seg)
		p0 := lerpPoint(a, b, u0)
		if len(out) == 0 {
			out = append(out, p0)
		}
		out = append(out, lerpPoint(a, b, u1))
	}
	return out
}

func lerpPoint(a, b Point, u float64) Point {
	return Point{X: a.X + (b.X-a.X)*u, Y: a.Y + (b.Y-a.Y)*u}
}

// HueColor 色相（度）+ 亮度 + 透明度转为预乘 RGBA
func HueColor(hue, brightness, alpha float64) color.RGBA {
	h := math.Mod(hue, 360)
	if h < 0 {
		h += 360
	}
	// HSV，饱和度固定 0.6
	const s = 0.6
	v := clamp01(0.8 * brightness)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	a := clamp01(alpha)
	return color.RGBA{
		R: uint8(math.Round((r + m) * a * 255)),
		G: uint8(math.Round((g + m) * a * 255)),
		B: uint8(math.Round((b + m) * a * 255)),
		A: uint8(math.Round(a * 255)),
	}
}

// StarPoints 五角星顶点（闭合）
func StarPoints(cx, cy, radius, rotationDeg float64) []Point {
	pts := make([]Point, 0, 11)
	rot := rotationDeg * math.Pi / 180
	for i := 0; i <= 10; i++ {
		r := radius
		if i%2 == 1 {
			r = radius * 0.45
		}
		a := rot - math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, Point{X: cx + r*math.Cos(a), Y: cy + r*math.Sin(a)})
	}
	return pts
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
