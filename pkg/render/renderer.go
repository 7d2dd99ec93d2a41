// Package render 用 ebiten 把轨道的当前属性画到屏幕上。
// 渲染只读取轨道，不修改任何属性。
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/brandintro/pkg/timeline"
	"github.com/decker502/brandintro/pkg/tracks"
)

const emblemSize = 160

// Renderer 片头渲染器
type Renderer struct {
	width, height float64
	emblem        *ebiten.Image
	whitePixel    *ebiten.Image
}

// NewRenderer 创建渲染器
//
// 参数：
//   - width, height: 逻辑屏幕尺寸
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:  float64(width),
		height: float64(height),
	}
}

func (r *Renderer) ensureImages() {
	if r.emblem != nil {
		return
	}
	r.emblem = ebiten.NewImage(emblemSize, emblemSize)
	vector.DrawFilledCircle(r.emblem, emblemSize/2, emblemSize/2, emblemSize/2-4, color.RGBA{R: 235, G: 92, B: 52, A: 255}, true)
	vector.DrawFilledRect(r.emblem, emblemSize*0.3, emblemSize*0.3, emblemSize*0.4, emblemSize*0.4, color.White, true)
	r.whitePixel = ebiten.NewImage(1, 1)
	r.whitePixel.Fill(color.White)
}

func (r *Renderer) center() (float64, float64) {
	return r.width / 2, r.height / 2
}

// Draw 绘制所有已挂载的轨道
//
// 参数：
//   - screen: 目标图像
//   - reg: 轨道查找表
//   - dark: 深色背景
func (r *Renderer) Draw(screen *ebiten.Image, reg *tracks.Registry, dark bool) {
	r.ensureImages()
	if dark {
		screen.Fill(color.RGBA{R: 14, G: 16, B: 24, A: 255})
	} else {
		screen.Fill(color.RGBA{R: 246, G: 242, B: 234, A: 255})
	}

	if t, ok := reg.Get(tracks.Container); ok {
		r.drawContainer(screen, t, dark)
	}
	if t, ok := reg.Get(tracks.Glow); ok {
		r.drawGlow(screen, t)
	}
	if t, ok := reg.Get(tracks.Particles); ok {
		r.drawParticles(screen, t)
	}
	if t, ok := reg.Get(tracks.Emblem); ok {
		r.drawEmblem(screen, t, containerAlpha(reg))
	}
	if t, ok := reg.Get(tracks.Outline); ok {
		r.drawOutline(screen, t, dark)
	}
	if t, ok := reg.Get(tracks.Star); ok {
		r.drawStar(screen, t)
	}
	if t, ok := reg.Get(tracks.ScanLine); ok {
		r.drawScanLine(screen, t)
	}
	if t, ok := reg.Get(tracks.Flash); ok {
		r.drawFlash(screen, t)
	}
}

func containerAlpha(reg *tracks.Registry) float64 {
	if t, ok := reg.Get(tracks.Container); ok {
		return t.Get(timeline.Opacity)
	}
	return 1
}

func (r *Renderer) drawContainer(screen *ebiten.Image, t *tracks.Track, dark bool) {
	a := clamp01(t.Get(timeline.Opacity)) * 0.25
	cx, cy := r.center()
	w, h := r.width*0.7, r.height*0.6
	clr := color.RGBA{A: uint8(a * 255)}
	if dark {
		v := uint8(a * 60)
		clr = color.RGBA{R: v, G: v, B: v, A: uint8(a * 255)}
	}
	x := cx - w/2 + t.Get(timeline.X)
	y := cy - h/2 + t.Get(timeline.Y)
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func (r *Renderer) drawGlow(screen *ebiten.Image, t *tracks.Track) {
	a := t.Get(timeline.Opacity)
	if a <= 0 {
		return
	}
	cx, cy := r.center()
	radius := 120 * t.Get(timeline.Scale)
	clr := HueColor(t.Get(timeline.Hue), t.Get(timeline.Brightness), a*0.5)
	x := cx + t.Get(timeline.X)*r.width/2
	y := cy + t.Get(timeline.Y)
	vector.DrawFilledCircle(screen, float32(x), float32(y), float32(radius), clr, true)
}

func (r *Renderer) drawParticles(screen *ebiten.Image, t *tracks.Track) {
	a := t.Get(timeline.Opacity)
	if a <= 0 {
		return
	}
	cx, cy := r.center()
	cx += t.Get(timeline.X) * r.width / 3
	ring := 60 * t.Get(timeline.Scale)
	clr := HueColor(40, 1.2, a)
	for i := 0; i < 12; i++ {
		ang := 2 * math.Pi * float64(i) / 12
		x := cx + ring*math.Cos(ang)
		y := cy + ring*math.Sin(ang)
		vector.DrawFilledCircle(screen, float32(x), float32(y), 4, clr, true)
	}
}

func (r *Renderer) drawEmblem(screen *ebiten.Image, t *tracks.Track, parentAlpha float64) {
	a := clamp01(t.Get(timeline.Opacity)) * clamp01(parentAlpha)
	clip := clamp01(t.Get(timeline.Clip))
	if a <= 0 || clip <= 0 {
		return
	}
	src := r.emblem.SubImage(image.Rect(0, 0, int(math.Ceil(emblemSize*clip)), emblemSize)).(*ebiten.Image)

	cx, cy := r.center()
	scale := t.Get(timeline.Scale)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-emblemSize/2, -emblemSize/2)
	op.GeoM.Scale(scale*t.Get(timeline.ScaleX), scale*t.Get(timeline.ScaleY))
	op.GeoM.Rotate(t.Get(timeline.Rotation) * math.Pi / 180)
	op.GeoM.Translate(cx+t.Get(timeline.X), cy+t.Get(timeline.Y))

	b := t.Get(timeline.Brightness)
	// 模糊用透明度近似
	blur := 1 / (1 + t.Get(timeline.Blur)*0.15)
	op.ColorScale.Scale(float32(b), float32(b), float32(b), 1)
	op.ColorScale.ScaleAlpha(float32(a * blur))
	screen.DrawImage(src, op)
}

func (r *Renderer) drawOutline(screen *ebiten.Image, t *tracks.Track, dark bool) {
	base := clamp01(t.Get(timeline.Opacity))
	if base <= 0 {
		return
	}
	cx, cy := r.center()
	paths := OutlinePaths(t.Parts(), cx, cy, emblemSize*0.62)
	lum := 40.0
	if dark {
		lum = 210
	}
	for i, path := range paths {
		part := t
		if p := t.Part(i + 1); p != nil {
			part = p
		}
		a := base * clamp01(part.Get(timeline.Opacity))
		to := part.Get(timeline.DrawEnd) * part.Get(timeline.Clip)
		seg := Partial(path, part.Get(timeline.DrawStart), to)
		if a <= 0 || len(seg) < 2 {
			continue
		}
		v := uint8(clamp01(lum/255*t.Get(timeline.Brightness)) * 255 * a)
		clr := color.RGBA{R: v, G: v, B: v, A: uint8(a * 255)}
		strokePath(screen, seg, 3, clr)
	}
}

func (r *Renderer) drawStar(screen *ebiten.Image, t *tracks.Track) {
	a := t.Get(timeline.Opacity)
	if a <= 0 {
		return
	}
	cx, cy := r.center()
	pts := StarPoints(cx+t.Get(timeline.X), cy+t.Get(timeline.Y), 40*t.Get(timeline.Scale), t.Get(timeline.Rotation))
	strokePath(screen, pts, 2, HueColor(50, t.Get(timeline.Brightness)*1.2, a))
}

func (r *Renderer) drawScanLine(screen *ebiten.Image, t *tracks.Track) {
	a := t.Get(timeline.Opacity)
	if a <= 0 {
		return
	}
	_, cy := r.center()
	y := cy + t.Get(timeline.Y)*r.height/2
	clr := color.RGBA{R: uint8(a * 180), G: uint8(a * 230), B: uint8(a * 255), A: uint8(a * 255)}
	vector.StrokeLine(screen, 0, float32(y), float32(r.width), float32(y), 2, clr, false)
}

func (r *Renderer) drawFlash(screen *ebiten.Image, t *tracks.Track) {
	a := clamp01(t.Get(timeline.Opacity))
	if a <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.width, r.height)
	op.ColorScale.ScaleAlpha(float32(a))
	screen.DrawImage(r.whitePixel, op)
}

func strokePath(screen *ebiten.Image, pts []Point, width float32, clr color.Color) {
	for i := 1; i < len(pts); i++ {
		vector.StrokeLine(screen,
			float32(pts[i-1].X), float32(pts[i-1].Y),
			float32(pts[i].X), float32(pts[i].Y),
			width, clr, true)
	}
}
