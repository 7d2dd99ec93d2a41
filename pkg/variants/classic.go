package variants

import (
	"github.com/decker502/brandintro/pkg/timeline"
	"github.com/decker502/brandintro/pkg/tracks"
)

func classicVariants() []Variant {
	return []Variant{
		{ID: "signature-impact", Family: FamilyClassic, Cues: []string{"whoosh", "impact", "shine"}, UsesDraw: true, Build: buildSignatureImpact},
		{ID: "slam", Family: FamilyClassic, Cues: []string{"windup", "slam", "rumble", "settle"}, Build: buildSlam},
		{ID: "glitch-reveal", Family: FamilyClassic, Cues: []string{"static", "glitch", "lock"}, Build: buildGlitchReveal},
		{ID: "spotlight", Family: FamilyClassic, Cues: []string{"sweep", "reveal", "shine"}, UsesDraw: true, Build: buildSpotlight},
		{ID: "ripple", Family: FamilyClassic, Cues: []string{"drop", "ripple", "ripple", "calm"}, Build: buildRipple},
		{ID: "shatter-rebuild", Family: FamilyClassic, Cues: []string{"crack", "shatter", "rebuild", "snap"}, Build: buildShatterRebuild},
	}
}

// buildSignatureImpact 默认变体：俯冲入场、撞击闪白、弹性回稳、描边揭示
func buildSignatureImpact(bc BuildContext) *timeline.Timeline {
	k := newKit("signature-impact", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	// entrance
	k.Cue("whoosh", 0)
	k.fadeIn(0, 0.3)
	k.FromTo(s, 0, 0.7, "inExpo",
		props{opacity: 0, scale: 0.3, posY: -40, blur: 8},
		props{opacity: 1, scale: 1.15, posY: 0, blur: 0})

	// impact
	k.Cue("impact", 0.7)
	k.To(s, 0.7, 0.2, "outQuad", props{scale: 0.92, brightness: 1.6})
	k.flash(0.7, 0.9)
	k.burst(0.7, 1.8)
	k.glowPulse(0.72, 0.6, 0.9)

	// settle：在撞击补间结束前 0.05 开始，保持该重叠
	k.To(s, 0.85, 0.55, "outElastic", props{scale: 1, brightness: 1})
	k.revealOutline(1.0, 0.9, 0.08)

	// pose
	k.Cue("shine", 1.6)
	k.scan(1.6, 0.5)
	k.breathe(1.9, 0.5)
	return k.Build()
}

// buildSlam 高处蓄力后砸下，容器震动
func buildSlam(bc BuildContext) *timeline.Timeline {
	k := newKit("slam", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.15)
	k.FromTo(s, 0, 0.2, "outQuad",
		props{opacity: 0, scale: 1.6, posY: -120},
		props{opacity: 1, scale: 1.6, posY: -140})

	// windup
	k.Cue("windup", 0.2)
	k.To(s, 0.2, 0.3, "outQuad", props{posY: -170, rotation: -6})
	k.To(s, 0.5, 0.1, "inExpo", props{posY: 0, scale: 1, rotation: 0})

	// impact
	k.Cue("slam", 0.6)
	k.flash(0.6, 1)
	k.burst(0.6, 2.2)
	k.To(s, 0.6, 0.08, "outQuad", props{scaleX: 1.12, scaleY: 0.86})
	k.To(s, 0.68, 0.3, "outElastic", props{scaleX: 1, scaleY: 1})

	k.Cue("rumble", 0.75)
	if k.has(tracks.Container) {
		c := on(tracks.Container)
		for i, dx := range []float64{6, -5, 3, -2} {
			k.To(c, 0.75+float64(i)*0.05, 0.05, "linear", props{posX: dx})
		}
		k.To(c, 0.95, 0.1, "outQuad", props{posX: 0})
	}

	// settle
	k.To(s, 1.1, 0.4, "outBack", props{scale: 1.05})
	k.Cue("settle", 1.5)
	k.To(s, 1.5, 0.4, "outCubic", props{scale: 1})
	k.glowPulse(1.5, 0.8, 0.7)
	return k.Build()
}

// buildGlitchReveal 噪点显形、错位抖动后锁定
func buildGlitchReveal(bc BuildContext) *timeline.Timeline {
	k := newKit("glitch-reveal", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.1)
	k.Cue("static", 0.1)
	k.FromTo(s, 0.1, 0.45, "steps4",
		props{opacity: 0, blur: 6},
		props{opacity: 0.7, blur: 2})
	k.scan(0.1, 0.45)

	k.Cue("glitch", 0.55)
	jitter := []props{
		{posX: -14, hue: 120},
		{posX: 10, hue: -80},
		{posX: -6, hue: 40},
		{posX: 4, hue: 0},
	}
	for i, p := range jitter {
		k.Set(s, 0.55+float64(i)*0.05, p)
	}
	k.To(s, 0.75, 0.2, "outExpo", props{posX: 0, hue: 0, blur: 0, opacity: 1})

	k.Cue("lock", 1.2)
	k.To(s, 1.2, 0.15, "outBack", props{scale: 1.08, brightness: 1.4})
	k.To(s, 1.35, 0.35, "outCubic", props{scale: 1, brightness: 1})
	k.flash(1.2, 0.6)
	k.glowPulse(1.25, 0.9, 0.6)
	k.breathe(1.9, 0.5)
	return k.Build()
}

// buildSpotlight 聚光灯扫过暗场，随后点亮并描边
func buildSpotlight(bc BuildContext) *timeline.Timeline {
	k := newKit("spotlight", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.2)
	k.FromTo(s, 0, 1.0, "inQuad",
		props{opacity: 0, brightness: 0.3},
		props{opacity: 0.4, brightness: 0.3})

	k.Cue("sweep", 0.2)
	if k.has(tracks.Glow) {
		g := on(tracks.Glow)
		k.FromTo(g, 0.2, 0.8, "inOutSine",
			props{opacity: 0.8, posX: -1, scale: 0.5},
			props{opacity: 0.8, posX: 1, scale: 0.5})
		k.To(g, 1.0, 0.3, "outCubic", props{posX: 0, scale: 1.4})
	}

	k.Cue("reveal", 1.0)
	k.To(s, 1.0, 0.4, "outCubic", props{opacity: 1, brightness: 1.2})
	k.revealOutline(1.0, 0.7, 0.06)

	k.Cue("shine", 1.8)
	k.scan(1.8, 0.4)
	k.To(s, 1.8, 0.3, "outQuad", props{brightness: 1})
	k.glowPulse(1.8, 0.5, 0.5)
	return k.Build()
}

// buildRipple 落入水面，两圈涟漪后平静
func buildRipple(bc BuildContext) *timeline.Timeline {
	k := newKit("ripple", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.2)
	k.FromTo(s, 0, 0.3, "inQuad",
		props{opacity: 0, posY: -60, scale: 0.6},
		props{opacity: 1, posY: 0, scale: 1})

	k.Cue("drop", 0.3)
	k.To(s, 0.3, 0.1, "outQuad", props{scaleX: 1.12, scaleY: 0.85})
	k.To(s, 0.4, 0.3, "outElastic", props{scaleX: 1, scaleY: 1})

	k.Cue("ripple", 0.5)
	k.burst(0.5, 1.4)
	if k.has(tracks.Glow) {
		k.FromTo(on(tracks.Glow), 0.5, 0.4, "outCubic",
			props{opacity: 0.8, scale: 0.4},
			props{opacity: 0, scale: 1.8})
	}

	k.Cue("ripple", 0.9)
	k.To(s, 0.9, 0.15, "outQuad", props{scale: 1.05})
	k.To(s, 1.05, 0.4, "outQuad", props{scale: 1})
	if k.has(tracks.Glow) {
		k.FromTo(on(tracks.Glow), 0.9, 0.5, "outCubic",
			props{opacity: 0.8, scale: 0.4},
			props{opacity: 0, scale: 2.4})
	}

	k.Cue("calm", 1.6)
	if k.has(tracks.Glow) {
		k.FromTo(on(tracks.Glow), 1.6, 0.5, "inOutSine",
			props{opacity: 0, scale: 0.9},
			props{opacity: 0.4, scale: 1})
	}
	k.breathe(1.9, 0.5)
	return k.Build()
}

// buildShatterRebuild 碎裂成粒子后重组
func buildShatterRebuild(bc BuildContext) *timeline.Timeline {
	k := newKit("shatter-rebuild", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.15)
	k.FromTo(s, 0, 0.3, "outQuad", props{opacity: 0}, props{opacity: 1})

	k.Cue("crack", 0.3)
	k.Set(s, 0.3, props{brightness: 1.4})
	k.To(s, 0.3, 0.2, "steps4", props{rotation: 3})

	k.Cue("shatter", 0.5)
	k.To(s, 0.5, 0.25, "outExpo", props{opacity: 0, scale: 1.3, blur: 10})
	k.flash(0.5, 0.7)
	k.burst(0.5, 2.6)

	k.Cue("rebuild", 1.1)
	k.FromTo(s, 1.1, 0.5, "outCubic",
		props{opacity: 0, scale: 0.6, blur: 10, rotation: -12, brightness: 1.4},
		props{opacity: 1, scale: 1, blur: 0, rotation: 0, brightness: 1})
	if k.has(tracks.Particles) {
		k.FromTo(on(tracks.Particles), 1.1, 0.45, "inCubic",
			props{opacity: 1, scale: 2.6},
			props{opacity: 0, scale: 0.3})
	}

	k.Cue("snap", 1.7)
	k.To(s, 1.7, 0.12, "outQuad", props{scale: 1.08})
	k.To(s, 1.82, 0.3, "outBack", props{scale: 1})
	k.glowPulse(1.7, 0.6, 0.8)
	return k.Build()
}
