package timeline

import (
	"math"
	"testing"

	"github.com/decker502/brandintro/pkg/cue"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// TestBuilderEndTracksTweensAndCues 测试 End 取补间结束与 Cue 偏移的最大值
func TestBuilderEndTracksTweensAndCues(t *testing.T) {
	b := NewBuilder("demo", nil)
	b.To(On("emblem"), 0.2, 0.5, "outCubic", Props{Scale: 1.2})
	b.Cue("late", 1.1)
	tl := b.Build()

	if !near(tl.End(), 1.1) {
		t.Errorf("End() = %v, want 1.1", tl.End())
	}
	if tl.Name() != "demo" {
		t.Errorf("Name() = %q", tl.Name())
	}
}

// TestBuilderClampsToBudget 测试超出预算的补间和 Cue 被截断
func TestBuilderClampsToBudget(t *testing.T) {
	b := NewBuilder("overflow", nil)
	b.To(On("glow"), 2.0, 1.0, "linear", Props{Opacity: 0})
	b.To(On("glow"), 3.0, 1.0, "linear", Props{Opacity: 1})
	b.Cue("tail", 5)
	tl := b.Build()

	if tl.End() > TotalDuration+1e-9 {
		t.Fatalf("End() = %v exceeds budget", tl.End())
	}
	for _, tw := range tl.Tweens() {
		if tw.End() > TotalDuration+1e-9 {
			t.Errorf("tween %v ends at %v", tw.Target, tw.End())
		}
	}
}

// TestBuilderSkipsEmptyTween 测试空属性补间不会被调度
func TestBuilderSkipsEmptyTween(t *testing.T) {
	b := NewBuilder("empty", nil)
	b.To(On("emblem"), 0, 1, "linear", nil)
	if b.Len() != 0 {
		t.Errorf("Len() = %d, want 0", b.Len())
	}
}

// TestBuilderSharesEmitter 测试外部 Emitter 收到构建期间的 Cue
func TestBuilderSharesEmitter(t *testing.T) {
	e := cue.NewEmitter()
	NewBuilder("x", e).Cue("a", 0.1).Cue("b", 0.2).Build()
	if e.Len() != 2 {
		t.Errorf("emitter Len() = %d, want 2", e.Len())
	}
}

// TestTimelineImmutable 测试修改 Tweens() 返回值不影响时间轴
func TestTimelineImmutable(t *testing.T) {
	tl := NewBuilder("immutable", nil).
		To(On("emblem"), 0, 1, "linear", Props{Opacity: 0.5}).
		Build()
	tws := tl.Tweens()
	tws[0].To[Opacity] = 99
	tws[0].Start = 2

	again := tl.Tweens()
	if again[0].To[Opacity] != 0.5 || again[0].Start != 0 {
		t.Errorf("timeline mutated through copy: %+v", again[0])
	}
}

// TestWithoutDropsTrack 测试去掉轨道后补间、子图形与结束时刻同步更新，Cue 不变
func TestWithoutDropsTrack(t *testing.T) {
	tl := NewBuilder("strip", nil).
		To(On("container"), 0, 2, "linear", Props{Opacity: 1}).
		To(PartOf("container", 1), 0, 2.2, "linear", Props{Opacity: 1}).
		To(On("glow"), 0.5, 0.5, "linear", Props{Opacity: 1}).
		Cue("hit", 1.2).
		Build()

	out := tl.Without("container")
	if len(out.Tweens()) != 1 || out.Tweens()[0].Target != On("glow") {
		t.Fatalf("Without kept %v", out.Targets())
	}
	if !near(out.End(), 1.2) {
		t.Errorf("End() = %v, want 1.2 (last cue)", out.End())
	}
	if len(out.Cues()) != 1 || out.Name() != "strip" {
		t.Errorf("cues %v name %q", out.Cues(), out.Name())
	}
	if len(tl.Tweens()) != 3 || !near(tl.End(), 2.2) {
		t.Error("Without modified the original timeline")
	}
}

// TestTargetString 测试目标名称格式
func TestTargetString(t *testing.T) {
	if got := On("outline").String(); got != "outline" {
		t.Errorf("On().String() = %q", got)
	}
	if got := PartOf("outline", 3).String(); got != "outline#3" {
		t.Errorf("PartOf().String() = %q", got)
	}
}

// TestPropDefaults 测试属性静止值
func TestPropDefaults(t *testing.T) {
	ones := []Prop{Opacity, Scale, ScaleX, ScaleY, Brightness, DrawEnd, Clip}
	for _, p := range ones {
		if p.Default() != 1 {
			t.Errorf("%s default = %v, want 1", p, p.Default())
		}
	}
	zeros := []Prop{X, Y, Rotation, Blur, Hue, DrawStart}
	for _, p := range zeros {
		if p.Default() != 0 {
			t.Errorf("%s default = %v, want 0", p, p.Default())
		}
	}
	if len(AllProps()) != int(propCount) {
		t.Errorf("AllProps() len = %d", len(AllProps()))
	}
}
