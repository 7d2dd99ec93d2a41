package variants

import (
	"github.com/decker502/brandintro/pkg/timeline"
	"github.com/decker502/brandintro/pkg/tracks"
)

func strokeVariants() []Variant {
	return []Variant{
		{ID: "stroke-draw", Family: FamilyStroke, Cues: []string{"draw", "fill", "shine"}, UsesDraw: true, Build: buildStrokeDraw},
		{ID: "stroke-neon", Family: FamilyStroke, Cues: []string{"flicker", "ignite", "hum"}, UsesDraw: true, Build: buildStrokeNeon},
		{ID: "stroke-sketch", Family: FamilyStroke, Cues: []string{"sketch", "ink", "settle"}, UsesDraw: true, Build: buildStrokeSketch},
		{ID: "stroke-trace", Family: FamilyStroke, Cues: []string{"trace", "connect", "glow"}, UsesDraw: true, Build: buildStrokeTrace},
	}
}

// reveal 描边揭示；没有描边轨道时对主体做同一时间窗的裁剪揭示。
// 返回是否走了描边路径。
func (k *kit) reveal(at, span, stagger float64, fallbackEase string) bool {
	if k.revealOutline(at, span, stagger) {
		return true
	}
	k.clipReveal(at, span, fallbackEase)
	return false
}

// fill 描边完成后填充主体；降级路径下主体已可见，只做一次提亮
func (k *kit) fill(s timeline.Target, drawn bool, at, dur float64) {
	if drawn && k.has(tracks.Emblem) {
		k.FromTo(on(tracks.Emblem), at, dur, "outQuad",
			props{opacity: 0, blur: 4},
			props{opacity: 1, blur: 0})
		return
	}
	k.To(s, at, dur*0.6, "outQuad", props{brightness: 1.3})
	k.To(s, at+dur*0.6, dur*0.4, "inOutSine", props{brightness: 1})
}

// buildStrokeDraw 逐路径绘制描边后填充
func buildStrokeDraw(bc BuildContext) *timeline.Timeline {
	k := newKit("stroke-draw", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.1)
	k.Cue("draw", 0.1)
	drawn := k.reveal(0.1, 1.2, 0.08, "inOutCubic")

	k.Cue("fill", 1.4)
	k.fill(s, drawn, 1.4, 0.4)

	k.Cue("shine", 1.9)
	k.scan(1.9, 0.4)
	k.glowPulse(1.9, 0.5, 0.5)
	return k.Build()
}

// buildStrokeNeon 霓虹灯管闪烁后点亮
func buildStrokeNeon(bc BuildContext) *timeline.Timeline {
	k := newKit("stroke-neon", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.1)
	k.Cue("flicker", 0.2)
	drawn := k.reveal(0.2, 0.8, 0.05, "steps4")
	tube := s
	if drawn {
		tube = on(tracks.Outline)
	}
	for _, f := range []struct{ at, level float64 }{
		{0.2, 0.3}, {0.3, 1.5}, {0.38, 0.4}, {0.5, 1.2}, {0.6, 0.6}, {0.75, 1.4},
	} {
		k.Set(tube, f.at, props{brightness: f.level})
	}

	k.Cue("ignite", 1.1)
	k.To(tube, 1.1, 0.15, "outExpo", props{brightness: 2})
	k.glowPulse(1.1, 0.8, 1)
	k.flash(1.1, 0.4)
	if drawn {
		k.fill(s, drawn, 1.1, 0.3)
	}

	k.Cue("hum", 1.6)
	k.To(tube, 1.6, 0.4, "inOutSine", props{brightness: 1.3})
	k.To(tube, 2.0, 0.4, "inOutSine", props{brightness: 1.1})
	return k.Build()
}

// buildStrokeSketch 铅笔草图抖动描出，上墨后定稿
func buildStrokeSketch(bc BuildContext) *timeline.Timeline {
	k := newKit("stroke-sketch", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.1)
	k.Cue("sketch", 0.1)
	drawn := k.reveal(0.1, 1.1, 0.12, "steps4")
	for i, r := range []float64{-1, 1, -0.5, 0} {
		k.Set(s, 0.1+float64(i)*0.3, props{rotation: r})
	}

	k.Cue("ink", 1.3)
	k.fill(s, drawn, 1.3, 0.5)

	k.Cue("settle", 1.9)
	k.To(s, 1.9, 0.4, "outCubic", props{scale: 1, brightness: 1})
	k.glowPulse(1.9, 0.4, 0.3)
	return k.Build()
}

// buildStrokeTrace 光点沿路径描出轮廓，首尾相接后发光
func buildStrokeTrace(bc BuildContext) *timeline.Timeline {
	k := newKit("stroke-trace", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.1)
	k.Cue("trace", 0.2)
	if k.has(tracks.Particles) {
		k.FromTo(on(tracks.Particles), 0.2, 1.0, "linear",
			props{opacity: 1, posX: -1, scale: 0.3},
			props{opacity: 1, posX: 1, scale: 0.3})
	}
	drawn := k.reveal(0.2, 1.0, 0.1, "linear")

	k.Cue("connect", 1.2)
	if k.has(tracks.Particles) {
		k.To(on(tracks.Particles), 1.2, 0.2, "outQuad", props{opacity: 0, scale: 1.5})
	}
	k.flash(1.2, 0.5)
	k.fill(s, drawn, 1.2, 0.4)

	k.Cue("glow", 1.7)
	k.glowPulse(1.7, 0.7, 0.9)
	return k.Build()
}
