package tracks

import "github.com/decker502/brandintro/pkg/timeline"

// Registry 每次挂载解析一次的轨道查找表。只读，不含任何修改逻辑。
type Registry struct {
	slots map[string]*Track
	order []string
}

// NewRegistry 用给定轨道创建查找表，nil 轨道会被忽略，重名以后者为准
func NewRegistry(tracks ...*Track) *Registry {
	r := &Registry{slots: make(map[string]*Track)}
	for _, t := range tracks {
		if t == nil {
			continue
		}
		if _, exists := r.slots[t.name]; !exists {
			r.order = append(r.order, t.name)
		}
		r.slots[t.name] = t
	}
	return r
}

// Standard 挂载所有槽位
//
// 参数：
//   - outlineParts: 描边轨道的子路径数量
func Standard(outlineParts int) *Registry {
	list := make([]*Track, 0, len(Slots))
	for _, name := range Slots {
		parts := 0
		if name == Outline {
			parts = outlineParts
		}
		list = append(list, NewTrack(name, parts))
	}
	return NewRegistry(list...)
}

// Without 返回缺少指定槽位的新查找表（共享剩余轨道）
func (r *Registry) Without(names ...string) *Registry {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var keep []*Track
	for _, n := range r.order {
		if !drop[n] {
			keep = append(keep, r.slots[n])
		}
	}
	return NewRegistry(keep...)
}

// With 返回追加了指定轨道的新查找表（共享原有轨道，同名以新轨道为准）
func (r *Registry) With(extra ...*Track) *Registry {
	var all []*Track
	for _, n := range r.Names() {
		all = append(all, r.slots[n])
	}
	return NewRegistry(append(all, extra...)...)
}

// Has 是否挂载了该轨道
func (r *Registry) Has(name string) bool {
	if r == nil {
		return false
	}
	_, ok := r.slots[name]
	return ok
}

// Get 查找轨道
func (r *Registry) Get(name string) (*Track, bool) {
	if r == nil {
		return nil, false
	}
	t, ok := r.slots[name]
	return t, ok
}

// Parts 轨道的子图形数量，轨道缺失时为 0
func (r *Registry) Parts(name string) int {
	t, ok := r.Get(name)
	if !ok {
		return 0
	}
	return t.Parts()
}

// Resolve 按补间目标查找轨道或子图形
func (r *Registry) Resolve(target timeline.Target) (*Track, bool) {
	t, ok := r.Get(target.Track)
	if !ok {
		return nil, false
	}
	if target.Part == 0 {
		return t, true
	}
	p := t.Part(target.Part)
	return p, p != nil
}

// Names 已挂载的轨道名，按挂载顺序
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
