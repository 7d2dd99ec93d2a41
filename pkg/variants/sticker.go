package variants

import "github.com/decker502/brandintro/pkg/timeline"

func stickerVariants() []Variant {
	return []Variant{
		{ID: "sticker-slap", Family: FamilySticker, Cues: []string{"slap", "wobble", "stick"}, Build: buildStickerSlap},
		{ID: "sticker-peel", Family: FamilySticker, Cues: []string{"peel", "flip", "stick"}, Build: buildStickerPeel},
		{ID: "sticker-bounce", Family: FamilySticker, Cues: []string{"bounce", "bounce", "bounce", "stick"}, Build: buildStickerBounce},
		{ID: "sticker-wobble", Family: FamilySticker, Cues: []string{"pop", "wobble", "stick"}, Build: buildStickerWobble},
	}
}

// swing 围绕 0 度的衰减摆动，最后回正
func (k *kit) swing(s timeline.Target, at, step float64, angles ...float64) float64 {
	for _, a := range angles {
		k.To(s, at, step, "inOutSine", props{rotation: a})
		at += step
	}
	k.To(s, at, step, "outQuad", props{rotation: 0})
	return at + step
}

// squash 落地挤压再弹回
func (k *kit) squash(s timeline.Target, at, amount float64) {
	k.To(s, at, 0.06, "outQuad", props{scaleX: 1 + amount*0.75, scaleY: 1 - amount})
	k.To(s, at+0.06, 0.1, "outQuad", props{scaleX: 1, scaleY: 1})
}

// buildStickerSlap 贴纸从镜头前拍到画面上
func buildStickerSlap(bc BuildContext) *timeline.Timeline {
	k := newKit("sticker-slap", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.1)
	k.FromTo(s, 0, 0.45, "inCubic",
		props{opacity: 0, scale: 2.4, rotation: -25, posY: -30},
		props{opacity: 1, scale: 1, rotation: -4, posY: 0})
	k.shadow(0.3, 0.3)

	k.Cue("slap", 0.45)
	k.flash(0.45, 0.4)
	k.squash(s, 0.45, 0.15)

	k.Cue("wobble", 0.6)
	k.swing(s, 0.6, 0.15, 5, -3, 1.5)

	k.Cue("stick", 1.2)
	k.To(s, 1.2, 0.1, "outQuad", props{scaleX: 1.04, scaleY: 0.94})
	k.To(s, 1.3, 0.3, "outBack", props{scaleX: 1, scaleY: 1})
	k.breathe(1.8, 0.5)
	return k.Build()
}

// buildStickerPeel 贴纸翻面揭起，再贴回
func buildStickerPeel(bc BuildContext) *timeline.Timeline {
	k := newKit("sticker-peel", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.1)
	k.FromTo(s, 0, 0.3, "outQuad",
		props{opacity: 0, rotation: -15, scaleX: 0},
		props{opacity: 1, rotation: -15, scaleX: 0.2})

	k.Cue("peel", 0.3)
	k.To(s, 0.3, 0.5, "inOutCubic", props{scaleX: -1, rotation: 8})

	k.Cue("flip", 0.8)
	k.To(s, 0.8, 0.4, "outBack", props{scaleX: 1, rotation: 0})
	k.shadow(0.8, 0.4)

	k.Cue("stick", 1.3)
	k.To(s, 1.3, 0.1, "outQuad", props{scale: 0.96})
	k.To(s, 1.4, 0.3, "outElastic", props{scale: 1})
	k.flash(1.3, 0.3)
	k.breathe(1.8, 0.5)
	return k.Build()
}

// buildStickerBounce 贴纸落下弹跳三次
func buildStickerBounce(bc BuildContext) *timeline.Timeline {
	k := newKit("sticker-bounce", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.1)
	k.FromTo(s, 0, 0.4, "inQuad",
		props{opacity: 1, posY: -200},
		props{opacity: 1, posY: 0})

	// 每次弹跳：落地挤压、上升、下落，高度逐次递减
	hops := []struct {
		at, height, half, squash float64
	}{
		{0.4, 80, 0.2, 0.2},
		{0.8, 30, 0.125, 0.12},
		{1.05, 10, 0.125, 0.08},
	}
	for _, h := range hops {
		k.Cue("bounce", h.at)
		k.squash(s, h.at, h.squash)
		k.To(s, h.at, h.half, "outQuad", props{posY: -h.height})
		k.To(s, h.at+h.half, h.half, "inQuad", props{posY: 0})
	}

	k.Cue("stick", 1.3)
	k.shadow(1.3, 0.3)
	k.To(s, 1.3, 0.3, "outBack", props{rotation: -3})
	k.breathe(1.8, 0.5)
	return k.Build()
}

// buildStickerWobble 贴纸弹出后左右晃动
func buildStickerWobble(bc BuildContext) *timeline.Timeline {
	k := newKit("sticker-wobble", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.1)
	k.FromTo(s, 0, 0.2, "outBack",
		props{opacity: 0, scale: 0},
		props{opacity: 1, scale: 1.1})

	k.Cue("pop", 0.2)
	k.burst(0.2, 1.2)
	k.To(s, 0.2, 0.2, "outQuad", props{scale: 1})

	k.Cue("wobble", 0.5)
	k.swing(s, 0.5, 0.15, 12, -10, 8, -5, 3)

	k.Cue("stick", 1.4)
	k.shadow(1.4, 0.3)
	k.To(s, 1.4, 0.1, "outQuad", props{scale: 0.95})
	k.To(s, 1.5, 0.35, "outElastic", props{scale: 1})
	k.breathe(1.9, 0.5)
	return k.Build()
}
