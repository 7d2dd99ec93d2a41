package variants

import (
	"github.com/decker502/brandintro/pkg/timeline"
	"github.com/decker502/brandintro/pkg/tracks"
)

func questVariants() []Variant {
	return []Variant{
		{ID: "star-orbit", Family: FamilyQuest, Cues: []string{"orbit", "lock", "embrace"}, Build: buildStarOrbit},
		{ID: "star-spiral", Family: FamilyQuest, Cues: []string{"spiral", "lock", "embrace"}, UsesDraw: true, Build: buildStarSpiral},
		{ID: "star-bounce", Family: FamilyQuest, Cues: []string{"bounce", "bounce", "lock", "embrace"}, Build: buildStarBounce},
		{ID: "star-shoot", Family: FamilyQuest, Cues: []string{"shoot", "impact", "embrace"}, Build: buildStarShoot},
		{ID: "star-pulse", Family: FamilyQuest, Cues: []string{"heartbeat", "bloom", "embrace"}, Build: buildStarPulse},
		{ID: "star-magnet", Family: FamilyQuest, Cues: []string{"attract", "snap", "embrace"}, UsesDraw: true, Build: buildStarMagnet},
	}
}

// questEntrance 主体先于星标稳定入场
func (k *kit) questEntrance(s timeline.Target, dur float64) {
	k.fadeIn(0, 0.2)
	k.FromTo(s, 0, dur, "outCubic",
		props{opacity: 0, scale: 0.8},
		props{opacity: 1, scale: 1})
}

// buildStarOrbit 星标绕主体两圈后归位
func buildStarOrbit(bc BuildContext) *timeline.Timeline {
	k := newKit("star-orbit", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.questEntrance(s, 0.5)
	k.Cue("orbit", 0.1)
	k.orbit(0.1, 1.2, 140, 2)

	k.Cue("lock", 1.3)
	k.lockIn(1.3, 0.3, "outBack")
	k.flash(1.3, 0.4)

	k.Cue("embrace", 1.8)
	k.embrace(1.8)
	return k.Build()
}

// buildStarSpiral 星标螺旋收拢，途中描出轮廓
func buildStarSpiral(bc BuildContext) *timeline.Timeline {
	k := newKit("star-spiral", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.questEntrance(s, 0.5)
	k.Cue("spiral", 0.1)
	k.spiral(0.1, 1.25, 220, 2)
	k.revealOutline(0.4, 0.9, 0.06)

	k.Cue("lock", 1.35)
	k.lockIn(1.35, 0.3, "outBack")
	k.burst(1.35, 1.2)

	k.Cue("embrace", 1.8)
	k.embrace(1.8)
	return k.Build()
}

// buildStarBounce 星标跳两下后落位
func buildStarBounce(bc BuildContext) *timeline.Timeline {
	k := newKit("star-bounce", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.questEntrance(s, 0.5)
	if k.has(tracks.Star) {
		k.FromTo(on(tracks.Star), 0, 0.3, "inQuad",
			props{opacity: 1, posX: -200, posY: -200, scale: 0.4},
			props{opacity: 1, posX: -120, posY: 0, scale: 0.4})
	}

	k.Cue("bounce", 0.3)
	k.hop(0.3, 0.4, -120, -10, 90)
	k.Cue("bounce", 0.7)
	k.hop(0.7, 0.5, -10, lockX, 110)

	k.Cue("lock", 1.2)
	k.lockIn(1.2, 0.3, "outBack")
	k.To(s, 1.2, 0.1, "outQuad", props{scaleY: 0.95})
	k.To(s, 1.3, 0.3, "outElastic", props{scaleY: 1})

	k.Cue("embrace", 1.8)
	k.embrace(1.8)
	return k.Build()
}

// buildStarShoot 星标像流星一样射入，撞击主体
func buildStarShoot(bc BuildContext) *timeline.Timeline {
	k := newKit("star-shoot", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.questEntrance(s, 0.4)
	k.Cue("shoot", 0.2)
	k.shoot(0.2, 0.6)

	k.Cue("impact", 0.8)
	k.flash(0.8, 0.8)
	k.burst(0.8, 1.6)
	k.To(s, 0.8, 0.1, "outQuad", props{scale: 0.94})
	k.To(s, 0.9, 0.4, "outElastic", props{scale: 1})
	k.lockIn(0.8, 0.25, "outBack")

	k.Cue("embrace", 1.6)
	k.embrace(1.6)
	k.scan(1.9, 0.4)
	return k.Build()
}

// buildStarPulse 星标心跳后绽放出主体
func buildStarPulse(bc BuildContext) *timeline.Timeline {
	k := newKit("star-pulse", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.fadeIn(0, 0.2)
	if k.has(tracks.Star) {
		k.FromTo(on(tracks.Star), 0, 0.3, "outBack",
			props{opacity: 0, scale: 0, posX: 0, posY: 0},
			props{opacity: 1, scale: 0.6, posX: 0, posY: 0})
	}

	k.Cue("heartbeat", 0.3)
	k.pulse(0.3, 2, 0.35, 0.6, 0.9)

	k.Cue("bloom", 1.0)
	if k.has(tracks.Star) {
		k.To(on(tracks.Star), 1.0, 0.25, "outExpo", props{scale: 1.4, opacity: 0.9})
	}
	k.FromTo(s, 1.0, 0.4, "outBack",
		props{opacity: 0, scale: 0.7},
		props{opacity: 1, scale: 1})
	k.glowPulse(1.0, 0.6, 1)
	k.burst(1.0, 1.5)
	k.lockIn(1.25, 0.35, "inOutCubic")

	k.Cue("embrace", 1.7)
	k.embrace(1.7)
	return k.Build()
}

// buildStarMagnet 星标被推开后被主体吸回
func buildStarMagnet(bc BuildContext) *timeline.Timeline {
	k := newKit("star-magnet", bc)
	s, ok := k.subject()
	if !ok {
		return nil
	}

	k.questEntrance(s, 0.5)
	k.Cue("attract", 0.3)
	k.magnet(0, 0.3, 0.8)
	k.revealOutline(0.3, 0.8, 0.05)

	k.Cue("snap", 1.1)
	k.lockIn(1.1, 0.15, "outBack")
	k.flash(1.1, 0.5)
	k.To(s, 1.1, 0.08, "outQuad", props{posX: 4})
	k.To(s, 1.18, 0.3, "outElastic", props{posX: 0})

	k.Cue("embrace", 1.7)
	k.embrace(1.7)
	return k.Build()
}
