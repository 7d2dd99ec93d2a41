package cue

import (
	"reflect"
	"testing"
)

// TestEmitterOrdering 测试 Cue 按偏移排序，相同偏移保持登记顺序
func TestEmitterOrdering(t *testing.T) {
	e := NewEmitter()
	e.Schedule("a", 0.2)
	e.Schedule("b", 0.5)
	e.Schedule("c", 0.5)
	e.Schedule("d", 1.0)

	got := Names(e.Cues())
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Cues() = %v, want %v", got, want)
	}
	if e.Len() != 4 {
		t.Errorf("Len() = %d, want 4", e.Len())
	}
}

// TestEmitterNegativeOffset 测试负偏移被钳到 0
func TestEmitterNegativeOffset(t *testing.T) {
	e := NewEmitter()
	e.Schedule("early", -1)
	if got := e.Cues()[0].Offset; got != 0 {
		t.Errorf("Offset = %v, want 0", got)
	}
}

// TestCursorFiresOnce 测试每个 Cue 只触发一次
func TestCursorFiresOnce(t *testing.T) {
	e := NewEmitter()
	e.Schedule("shoot", 0.2)
	e.Schedule("impact", 0.8)
	e.Schedule("embrace", 1.6)
	c := NewCursor(e.Cues())

	steps := []struct {
		to   float64
		want []string
	}{
		{0.1, nil},
		{0.2, []string{"shoot"}},
		{0.5, nil},
		{2.0, []string{"impact", "embrace"}},
		{2.4, nil},
	}
	for _, s := range steps {
		fired := c.Advance(s.to)
		if len(fired) != len(s.want) {
			t.Fatalf("Advance(%v) fired %v, want %v", s.to, Names(fired), s.want)
		}
		for i := range fired {
			if fired[i].Name != s.want[i] {
				t.Errorf("Advance(%v)[%d] = %s, want %s", s.to, i, fired[i].Name, s.want[i])
			}
		}
	}
	if c.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", c.Pending())
	}

	c.Reset()
	if c.Pending() != 3 {
		t.Errorf("Pending() after Reset = %d, want 3", c.Pending())
	}
}

// TestDispatchNilCallback 测试无回调时 Dispatch 为空操作
func TestDispatchNilCallback(t *testing.T) {
	if n := Dispatch([]Cue{{Name: "x", Offset: 0}}, nil, nil); n != 0 {
		t.Errorf("Dispatch with nil fn = %d", n)
	}

	var got []string
	n := Dispatch([]Cue{{Name: "x", Offset: 0}, {Name: "y", Offset: 1}}, func(name string, offset float64) {
		got = append(got, name)
	}, nil)
	if n != 2 || !reflect.DeepEqual(got, []string{"x", "y"}) {
		t.Errorf("Dispatch order = %v (%d)", got, n)
	}
}

// TestDispatchStopsWhenNotLive 测试回调中使条件失效后剩余 Cue 不再触发
func TestDispatchStopsWhenNotLive(t *testing.T) {
	live := true
	var got []string
	fired := []Cue{{Name: "a", Offset: 0}, {Name: "b", Offset: 0.1}, {Name: "c", Offset: 0.2}}
	n := Dispatch(fired, func(name string, offset float64) {
		got = append(got, name)
		if name == "a" {
			live = false
		}
	}, func() bool { return live })
	if n != 1 || !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("Dispatch after stop = %v (%d)", got, n)
	}
}
