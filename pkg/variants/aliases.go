package variants

import "github.com/decker502/brandintro/pkg/timeline"

// 构建代码中频繁出现的属性名，缩短书写
type props = timeline.Props

const (
	opacity    = timeline.Opacity
	posX       = timeline.X
	posY       = timeline.Y
	rotation   = timeline.Rotation
	scale      = timeline.Scale
	scaleX     = timeline.ScaleX
	scaleY     = timeline.ScaleY
	blur       = timeline.Blur
	brightness = timeline.Brightness
	hue        = timeline.Hue
	drawStart  = timeline.DrawStart
	drawEnd    = timeline.DrawEnd
	clip       = timeline.Clip
)

func on(track string) timeline.Target {
	return timeline.On(track)
}
