package variants

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/decker502/brandintro/pkg/capability"
	"github.com/decker502/brandintro/pkg/cue"
	"github.com/decker502/brandintro/pkg/timeline"
	"github.com/decker502/brandintro/pkg/tracks"
)

func buildCtx(reg *tracks.Registry, ready capability.Ready) BuildContext {
	return BuildContext{Tracks: reg, Capability: ready, Cues: cue.NewEmitter()}
}

func TestBuiltinRegistersAllFamilies(t *testing.T) {
	r := Builtin()
	if got := len(r.IDs()); got != 20 {
		t.Fatalf("expected 20 variants, got %d", got)
	}
	counts := map[Family]int{FamilyClassic: 6, FamilySticker: 4, FamilyStroke: 4, FamilyQuest: 6}
	for f, want := range counts {
		if got := len(r.Family(f)); got != want {
			t.Errorf("family %s: expected %d variants, got %d", f, want, got)
		}
	}
	if _, ok := r.Lookup(DefaultID); !ok {
		t.Fatalf("default variant %s not registered", DefaultID)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := NewRegistry("a")
	v := Variant{ID: "a", Build: func(BuildContext) *timeline.Timeline { return nil }}
	if err := r.Register(v); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := r.Register(v); !errors.Is(err, ErrDuplicateVariant) {
		t.Errorf("expected ErrDuplicateVariant, got %v", err)
	}
	if err := r.Register(Variant{ID: "b"}); err == nil {
		t.Error("expected error for variant without builder")
	}
}

// 每个变体在各种能力与轨道组合下都不超出时长预算
func TestDurationBound(t *testing.T) {
	r := Builtin()
	setups := map[string]*tracks.Registry{
		"full":       tracks.Standard(5),
		"no-outline": tracks.Standard(5).Without(tracks.Outline),
		"no-star":    tracks.Standard(5).Without(tracks.Star),
		"bare":       tracks.Standard(0).Without(tracks.Glow, tracks.Particles, tracks.Flash, tracks.ScanLine),
	}
	for _, id := range r.IDs() {
		for name, reg := range setups {
			for _, ready := range []capability.Ready{capability.Available, capability.Unavailable} {
				tl := r.Build(id, buildCtx(reg, ready))
				if tl == nil {
					t.Errorf("%s/%s/%s: unexpected nil timeline", id, name, ready)
					continue
				}
				if tl.End() > timeline.TotalDuration+1e-9 {
					t.Errorf("%s/%s/%s: end %.3f exceeds budget", id, name, ready, tl.End())
				}
				for _, tw := range tl.Tweens() {
					if tw.End() > timeline.TotalDuration+1e-9 {
						t.Errorf("%s: tween on %s ends at %.3f", id, tw.Target, tw.End())
					}
				}
			}
		}
	}
}

func TestCueVocabulary(t *testing.T) {
	r := Builtin()
	for _, id := range r.IDs() {
		tl := r.Build(id, buildCtx(tracks.Standard(4), capability.Available))
		cues := tl.Cues()
		if got, want := cue.Names(cues), r.Vocabulary(id); !reflect.DeepEqual(got, want) {
			t.Errorf("%s: cue names %v, expected %v", id, got, want)
		}
		for i := 1; i < len(cues); i++ {
			if cues[i].Offset < cues[i-1].Offset {
				t.Errorf("%s: cue %d out of order", id, i)
			}
		}
	}
}

func TestCueVocabularyExamples(t *testing.T) {
	r := Builtin()
	tests := []struct {
		id   string
		want []string
	}{
		{"star-shoot", []string{"shoot", "impact", "embrace"}},
		{"star-pulse", []string{"heartbeat", "bloom", "embrace"}},
		{"signature-impact", []string{"whoosh", "impact", "shine"}},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			tl := r.Build(tt.id, buildCtx(tracks.Standard(3), capability.Unavailable))
			if got := cue.Names(tl.Cues()); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapabilityBranchKeepsCueTiming(t *testing.T) {
	r := Builtin()
	draw := r.DrawVariants()
	if len(draw) == 0 {
		t.Fatal("expected draw-capable variants")
	}
	for _, id := range draw {
		reg := tracks.Standard(6)
		with := r.Build(id, buildCtx(reg, capability.Available))
		without := r.Build(id, buildCtx(reg, capability.Unavailable))
		if !reflect.DeepEqual(with.Cues(), without.Cues()) {
			t.Errorf("%s: cues differ between branches:\n%v\n%v", id, with.Cues(), without.Cues())
		}
		if !usesProp(with, timeline.DrawEnd) {
			t.Errorf("%s: available branch should animate drawEnd", id)
		}
		if usesProp(without, timeline.DrawEnd) {
			t.Errorf("%s: unavailable branch must not animate drawEnd", id)
		}
	}
}

func usesProp(tl *timeline.Timeline, p timeline.Prop) bool {
	for _, tw := range tl.Tweens() {
		if _, ok := tw.To[p]; ok {
			return true
		}
	}
	return false
}

func TestOutlineStaggerPerPart(t *testing.T) {
	r := Builtin()
	tl := r.Build("stroke-draw", buildCtx(tracks.Standard(4), capability.Available))
	var starts []float64
	for i := 1; i <= 4; i++ {
		tws := tl.TweensOn(timeline.PartOf(tracks.Outline, i))
		if len(tws) != 1 {
			t.Fatalf("part %d: expected 1 tween, got %d", i, len(tws))
		}
		starts = append(starts, tws[0].Start)
	}
	for i := 1; i < len(starts); i++ {
		if starts[i] <= starts[i-1] {
			t.Errorf("expected staggered starts, got %v", starts)
		}
	}
}

func TestMissingOutlineDegrades(t *testing.T) {
	r := Builtin()
	full := tracks.Standard(4)
	missing := full.Without(tracks.Outline)
	stroke := make(map[string]bool)
	for _, id := range r.Family(FamilyStroke) {
		stroke[id] = true
	}
	for _, id := range r.DrawVariants() {
		for _, ready := range []capability.Ready{capability.Available, capability.Unavailable} {
			tl := r.Build(id, buildCtx(missing, ready))
			if tl == nil {
				t.Errorf("%s/%s: nil timeline with emblem present", id, ready)
				continue
			}
			for _, target := range tl.Targets() {
				if target.Track == tracks.Outline {
					t.Errorf("%s/%s: animates absent outline track", id, ready)
				}
			}
			ref := r.Build(id, buildCtx(full, ready))
			if !reflect.DeepEqual(cue.Names(tl.Cues()), cue.Names(ref.Cues())) {
				t.Errorf("%s/%s: degraded cue contract changed", id, ready)
			}
			if !reflect.DeepEqual(cue.Names(tl.Cues()), r.Vocabulary(id)) {
				t.Errorf("%s/%s: degraded cues %v", id, ready, cue.Names(tl.Cues()))
			}
			if tl.End() > timeline.TotalDuration {
				t.Errorf("%s/%s: degraded timeline exceeds budget", id, ready)
			}
			if stroke[id] && !hasClip(tl.TweensOn(timeline.On(tracks.Emblem))) {
				t.Errorf("%s/%s: expected clip reveal on emblem", id, ready)
			}
		}
	}
}

func hasClip(tweens []timeline.Tween) bool {
	for _, tw := range tweens {
		if _, ok := tw.To[timeline.Clip]; ok {
			return true
		}
	}
	return false
}

// 描边路径数超过能力上限时走裁剪路径，Cue 与时间窗不变
func TestOutlinePartLimit(t *testing.T) {
	r := Builtin()
	reg := tracks.Standard(6)
	countDraw := func(tl *timeline.Timeline) (draw, clips int) {
		for i := 1; i <= 6; i++ {
			for _, tw := range tl.TweensOn(timeline.PartOf(tracks.Outline, i)) {
				if _, ok := tw.To[timeline.DrawEnd]; ok {
					draw++
				}
				if _, ok := tw.To[timeline.Clip]; ok {
					clips++
				}
			}
		}
		return draw, clips
	}

	tests := []struct {
		maxParts  int
		wantDraw  int
		wantClips int
	}{
		{0, 6, 0},
		{6, 6, 0},
		{8, 6, 0},
		{4, 0, 6},
	}
	for _, tt := range tests {
		bc := buildCtx(reg, capability.Available)
		bc.MaxParts = tt.maxParts
		tl := r.Build("stroke-draw", bc)
		draw, clips := countDraw(tl)
		if draw != tt.wantDraw || clips != tt.wantClips {
			t.Errorf("max_parts %d: draw %d clips %d, want %d/%d", tt.maxParts, draw, clips, tt.wantDraw, tt.wantClips)
		}
		ref := r.Build("stroke-draw", buildCtx(reg, capability.Available))
		if !reflect.DeepEqual(tl.Cues(), ref.Cues()) {
			t.Errorf("max_parts %d: cues changed", tt.maxParts)
		}
	}
}

func TestStrokeFallsBackToClipReveal(t *testing.T) {
	r := Builtin()
	tl := r.Build("stroke-draw", buildCtx(tracks.Standard(4).Without(tracks.Outline), capability.Available))
	found := false
	for _, tw := range tl.TweensOn(timeline.On(tracks.Emblem)) {
		if _, ok := tw.To[timeline.Clip]; ok {
			found = true
		}
	}
	if !found {
		t.Error("expected clip reveal on emblem when outline is absent")
	}
}

func TestMissingStarSkipsMotif(t *testing.T) {
	r := Builtin()
	reg := tracks.Standard(2).Without(tracks.Star)
	for _, id := range r.Family(FamilyQuest) {
		tl := r.Build(id, buildCtx(reg, capability.Unavailable))
		if tl == nil {
			t.Fatalf("%s: expected degraded timeline", id)
		}
		if len(tl.TweensOn(timeline.On(tracks.Star))) != 0 {
			t.Errorf("%s: animates absent star", id)
		}
	}
}

func TestStarLocksIntoComposition(t *testing.T) {
	r := Builtin()
	for _, id := range r.Family(FamilyQuest) {
		tl := r.Build(id, buildCtx(tracks.Standard(2), capability.Unavailable))
		s := tl.Resolve(nil)
		for _, c := range []struct {
			p    timeline.Prop
			want float64
		}{{timeline.X, lockX}, {timeline.Y, lockY}, {timeline.Scale, lockScale}} {
			v, ok := s.Value(timeline.On(tracks.Star), c.p, timeline.TotalDuration)
			if !ok || math.Abs(v-c.want) > 1e-6 {
				t.Errorf("%s: star %s at end = %.3f, want %.3f", id, c.p, v, c.want)
			}
		}
	}
}

// 徽标和容器都缺失时其余轨道照常动画，Cue 序列不变
func TestNoSubjectAnimatesRemainingTracks(t *testing.T) {
	r := Builtin()
	reg := tracks.Standard(3).Without(tracks.Emblem, tracks.Container)
	for _, id := range r.IDs() {
		for _, ready := range []capability.Ready{capability.Available, capability.Unavailable} {
			tl := r.Build(id, buildCtx(reg, ready))
			if tl == nil || len(tl.Tweens()) == 0 {
				t.Errorf("%s/%s: expected animation on the remaining tracks", id, ready)
				continue
			}
			for _, target := range tl.Targets() {
				if !reg.Has(target.Track) {
					t.Errorf("%s/%s: animates absent track %s", id, ready, target)
				}
			}
			if got := cue.Names(tl.Cues()); !reflect.DeepEqual(got, r.Vocabulary(id)) {
				t.Errorf("%s/%s: cues %v, want %v", id, ready, got, r.Vocabulary(id))
			}
			if tl.End() > timeline.TotalDuration {
				t.Errorf("%s/%s: end %v exceeds budget", id, ready, tl.End())
			}
		}
	}
}

// 只剩一个不在编排中的轨道时淡入收尾
func TestLoneTrackSettles(t *testing.T) {
	r := Builtin()
	reg := tracks.NewRegistry(tracks.NewTrack(tracks.Star, 0))
	for _, id := range r.Family(FamilyClassic) {
		tl := r.Build(id, buildCtx(reg, capability.Available))
		if tl == nil {
			t.Fatalf("%s: nil timeline", id)
		}
		tws := tl.TweensOn(timeline.On(tracks.Star))
		if len(tws) == 0 || len(tws) != len(tl.Tweens()) {
			t.Errorf("%s: expected only star tweens, got %v", id, tl.Targets())
		}
		if got := cue.Names(tl.Cues()); !reflect.DeepEqual(got, r.Vocabulary(id)) {
			t.Errorf("%s: cues %v", id, got)
		}
	}
}

func TestNoTracksReturnsNil(t *testing.T) {
	r := Builtin()
	for _, id := range r.IDs() {
		if tl := r.Build(id, buildCtx(tracks.NewRegistry(), capability.Available)); tl != nil {
			t.Errorf("%s: expected nil without any track", id)
		}
	}
}

func TestContainerOnlyStillAnimates(t *testing.T) {
	r := Builtin()
	reg := tracks.NewRegistry(tracks.NewTrack(tracks.Container, 0))
	for _, id := range r.IDs() {
		tl := r.Build(id, buildCtx(reg, capability.Unavailable))
		if tl == nil || len(tl.Tweens()) == 0 {
			t.Errorf("%s: expected a settling animation on the container", id)
		}
	}
}

func TestUnknownVariantFallsBack(t *testing.T) {
	r := Builtin()
	reg := tracks.Standard(3)
	got := r.Build("no-such-variant", buildCtx(reg, capability.Unavailable))
	want := r.Build(DefaultID, buildCtx(reg, capability.Unavailable))
	if !reflect.DeepEqual(got.Tweens(), want.Tweens()) || !reflect.DeepEqual(got.Cues(), want.Cues()) {
		t.Error("unknown variant should build the same timeline as the default")
	}
	if v, fellBack := r.Resolve("no-such-variant"); !fellBack || v.ID != DefaultID {
		t.Errorf("Resolve fallback = %v, %v", v, fellBack)
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	r := Builtin()
	reg := tracks.Standard(3)
	for _, id := range r.IDs() {
		a := r.Build(id, buildCtx(reg, capability.Available))
		b := r.Build(id, buildCtx(reg, capability.Available))
		if !reflect.DeepEqual(a.Tweens(), b.Tweens()) {
			t.Errorf("%s: repeated builds differ", id)
		}
	}
}

func TestBuildDoesNotTouchTracks(t *testing.T) {
	r := Builtin()
	reg := tracks.Standard(3)
	before := map[string]timeline.Props{}
	for _, name := range reg.Names() {
		tr, _ := reg.Get(name)
		before[name] = tr.Props()
	}
	for _, id := range r.IDs() {
		r.Build(id, buildCtx(reg, capability.Available))
	}
	for _, name := range reg.Names() {
		tr, _ := reg.Get(name)
		if !reflect.DeepEqual(tr.Props(), before[name]) {
			t.Errorf("track %s mutated by build", name)
		}
	}
}

func TestDarkModeKeepsTiming(t *testing.T) {
	r := Builtin()
	reg := tracks.Standard(3)
	for _, id := range r.IDs() {
		light := r.Build(id, buildCtx(reg, capability.Available))
		bc := buildCtx(reg, capability.Available)
		bc.Dark = true
		dark := r.Build(id, bc)
		if !reflect.DeepEqual(light.Cues(), dark.Cues()) || light.End() != dark.End() {
			t.Errorf("%s: dark mode changed timing", id)
		}
	}
}

func TestBuildRecoversPanic(t *testing.T) {
	r := NewRegistry("boom")
	_ = r.Register(Variant{ID: "boom", Build: func(BuildContext) *timeline.Timeline {
		panic("broken builder")
	}})
	if tl := r.Build("boom", BuildContext{Tracks: tracks.Standard(0)}); tl != nil {
		t.Error("expected nil timeline from panicking builder")
	}
}

func TestBuildWithoutEmitter(t *testing.T) {
	r := Builtin()
	tl := r.Build("slam", BuildContext{Tracks: tracks.Standard(0)})
	if tl == nil || len(tl.Cues()) != 4 {
		t.Fatal("expected slam to build with an internal emitter")
	}
}

// 固定快照：signature-impact 的回稳补间在撞击补间结束前开始
func TestSignatureImpactOverlapSnapshot(t *testing.T) {
	r := Builtin()
	tl := r.Build(DefaultID, buildCtx(tracks.Standard(3), capability.Available))
	var impact, settle *timeline.Tween
	for _, tw := range tl.TweensOn(timeline.On(tracks.Emblem)) {
		tw := tw
		switch {
		case tw.Start == 0.7 && tw.Ease == "outQuad":
			impact = &tw
		case tw.Start == 0.85 && tw.Ease == "outElastic":
			settle = &tw
		}
	}
	if impact == nil || settle == nil {
		t.Fatal("impact or settle tween missing")
	}
	if math.Abs(impact.End()-0.9) > 1e-9 || settle.Start >= impact.End() {
		t.Errorf("overlap changed: impact ends %.3f, settle starts %.3f", impact.End(), settle.Start)
	}

	s := tl.Resolve(nil)
	emblem := timeline.On(tracks.Emblem)
	at85, _ := s.Value(emblem, timeline.Scale, 0.85)
	at88, _ := s.Value(emblem, timeline.Scale, 0.88)
	// 0.85 时刻撞击补间仍在进行，回稳从该值出发
	if at85 <= 0.92 || at85 >= 1.15 {
		t.Errorf("scale at 0.85 = %.4f, expected between impact endpoints", at85)
	}
	if at88 == at85 {
		t.Error("settle tween should be driving scale after 0.85")
	}
}
