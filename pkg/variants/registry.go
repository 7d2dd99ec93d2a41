// Package variants 注册所有片头动画变体，并按 ID 构建时间轴。
//
// 每个变体是一个纯构建函数：相同的轨道状态与能力结果总是产出等价的时间轴。
// 构建函数只读取 BuildContext，不修改任何共享状态。
package variants

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/decker502/brandintro/pkg/capability"
	"github.com/decker502/brandintro/pkg/cue"
	"github.com/decker502/brandintro/pkg/timeline"
	"github.com/decker502/brandintro/pkg/tracks"
)

// DefaultID 未知变体回退到的默认变体
const DefaultID = "signature-impact"

// Family 变体家族
type Family string

const (
	FamilyClassic Family = "classic"
	FamilySticker Family = "sticker"
	FamilyStroke  Family = "stroke"
	FamilyQuest   Family = "quest"
)

// ErrDuplicateVariant 重复注册同一 ID
var ErrDuplicateVariant = errors.New("variants: duplicate variant id")

// Options 构建选项（只影响配色，不影响时间）
type Options struct {
	Dark bool
}

// BuildContext 构建函数的全部输入
type BuildContext struct {
	Tracks     *tracks.Registry
	Capability capability.Ready
	// MaxParts 描边能力可单独绘制的路径上限，0 表示不限
	MaxParts int
	Cues     *cue.Emitter
	Options
}

// BuildFunc 变体构建函数，返回 nil 表示没有可播放的内容
type BuildFunc func(bc BuildContext) *timeline.Timeline

// Variant 一个已注册的动画变体
type Variant struct {
	ID     string
	Family Family
	// Cues 声明的 Cue 名称序列（按触发顺序）
	Cues []string
	// UsesDraw 是否使用描边绘制能力
	UsesDraw bool
	Build    BuildFunc
}

// Registry 变体 ID 到构建函数的映射
type Registry struct {
	variants map[string]*Variant
	order    []string
	fallback string
}

// NewRegistry 创建空注册表
//
// 参数：
//   - fallback: 未知 ID 时回退的变体 ID
func NewRegistry(fallback string) *Registry {
	return &Registry{
		variants: make(map[string]*Variant),
		fallback: fallback,
	}
}

// Register 注册一个变体
func (r *Registry) Register(v Variant) error {
	if v.ID == "" || v.Build == nil {
		return fmt.Errorf("variants: invalid variant %q", v.ID)
	}
	if _, exists := r.variants[v.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateVariant, v.ID)
	}
	cp := v
	cp.Cues = append([]string(nil), v.Cues...)
	r.variants[v.ID] = &cp
	r.order = append(r.order, v.ID)
	return nil
}

// Builtin 返回包含全部内置变体的注册表
func Builtin() *Registry {
	r := NewRegistry(DefaultID)
	for _, group := range [][]Variant{classicVariants(), stickerVariants(), strokeVariants(), questVariants()} {
		for _, v := range group {
			if err := r.Register(v); err != nil {
				panic(err)
			}
		}
	}
	return r
}

// Lookup 精确查找，不回退
func (r *Registry) Lookup(id string) (*Variant, bool) {
	v, ok := r.variants[id]
	return v, ok
}

// Resolve 查找变体，未知 ID 回退到默认变体
//
// 返回：
//   - *Variant: 解析到的变体（注册表为空时为 nil）
//   - bool: 是否发生了回退
func (r *Registry) Resolve(id string) (*Variant, bool) {
	if v, ok := r.variants[id]; ok {
		return v, false
	}
	if v, ok := r.variants[r.fallback]; ok {
		log.Printf("[VariantRegistry] Unknown variant %q, falling back to %s", id, r.fallback)
		return v, true
	}
	return nil, true
}

// Build 解析变体并构建时间轴。
// 徽标和容器都缺失时只编排其余轨道；一个轨道都没有时返回 nil。
// 构建函数内部的 panic 会被吸收并记录，此时返回 nil。
func (r *Registry) Build(id string, bc BuildContext) (tl *timeline.Timeline) {
	v, _ := r.Resolve(id)
	if v == nil {
		log.Printf("[VariantRegistry] Warning: no variant for %q and no fallback registered", id)
		return nil
	}
	if bc.Cues == nil {
		bc.Cues = cue.NewEmitter()
	}
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("[VariantRegistry] Warning: variant %s failed to build: %v", v.ID, rec)
			tl = nil
		}
	}()
	scheduled := bc.Cues.Len()
	tl = v.Build(bc)
	if tl == nil && len(bc.Tracks.Names()) > 0 && !bc.Tracks.Has(tracks.Emblem) && !bc.Tracks.Has(tracks.Container) {
		if bc.Cues.Len() != scheduled {
			// 放弃的那次构建已经登记过 Cue
			bc.Cues = cue.NewEmitter()
		}
		tl = buildDetached(v, bc)
	}
	return tl
}

// settleDuration 剩余轨道都不在编排中时的收尾淡入时长
const settleDuration = 0.6

// buildDetached 主体轨道都缺失时，用一个不挂载的替身容器构建，
// 再去掉替身上的补间：其余轨道照常动画，Cue 序列保持完整。
func buildDetached(v *Variant, bc BuildContext) *timeline.Timeline {
	present := bc.Tracks.Names()
	bc.Tracks = bc.Tracks.With(tracks.NewTrack(tracks.Container, 0))
	tl := v.Build(bc)
	if tl == nil {
		return nil
	}
	tl = tl.Without(tracks.Container)
	if len(tl.Tweens()) > 0 {
		log.Printf("[VariantRegistry] %s: no emblem or container, animating %v only", v.ID, present)
		return tl
	}

	log.Printf("[VariantRegistry] %s: nothing choreographed for %v, settling %s", v.ID, present, present[0])
	e := cue.NewEmitter()
	for _, c := range tl.Cues() {
		e.Schedule(c.Name, c.Offset)
	}
	b := timeline.NewBuilder(v.ID, e)
	b.FromTo(on(present[0]), 0, settleDuration, "outQuad", props{opacity: 0}, props{opacity: 1})
	return b.Build()
}

// IDs 按注册顺序返回所有变体 ID
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Family 返回某一家族的变体 ID（注册顺序）
func (r *Registry) Family(f Family) []string {
	var ids []string
	for _, id := range r.order {
		if r.variants[id].Family == f {
			ids = append(ids, id)
		}
	}
	return ids
}

// Vocabulary 返回变体声明的 Cue 名称序列，未知 ID 返回 nil
func (r *Registry) Vocabulary(id string) []string {
	v, ok := r.variants[id]
	if !ok {
		return nil
	}
	return append([]string(nil), v.Cues...)
}

// DrawVariants 使用描边能力的变体 ID，按字母序
func (r *Registry) DrawVariants() []string {
	var ids []string
	for id, v := range r.variants {
		if v.UsesDraw {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
