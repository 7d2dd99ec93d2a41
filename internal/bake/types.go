// Package bake converts a timeline into fixed-rate keyframe tracks and
// reads/writes them as XML. Baked files let external renderers replay an intro
// without linking the timeline engine.
package bake

import (
	"encoding/xml"

	"github.com/decker502/brandintro/pkg/cue"
	"github.com/decker502/brandintro/pkg/timeline"
)

// Baked is the root of a baked intro file.
type Baked struct {
	XMLName xml.Name `xml:"bake"`

	// Name is the variant (or fallback) the timeline was built from
	Name string `xml:"name"`

	// FPS is the sampling rate used when baking
	FPS int `xml:"fps"`

	// Tracks holds one keyframe sequence per animated target
	Tracks []Track `xml:"track"`

	// Cues are copied verbatim from the timeline
	Cues []CueMark `xml:"cue"`
}

// CueMark is a named event on the baked time axis.
type CueMark struct {
	Name   string  `xml:"name,attr"`
	Offset float64 `xml:"at,attr"`
}

// Track is the keyframe sequence of one target. Name uses the target form
// "track" or "track#part".
type Track struct {
	Name   string  `xml:"name"`
	Frames []Frame `xml:"t"`
}

// Frame is a single keyframe. All fields are optional pointers: a nil field
// inherits its value from the previous frame (cumulative inheritance), so only
// changes are written.
type Frame struct {
	Opacity    *float64 `xml:"a,omitempty"`
	X          *float64 `xml:"x,omitempty"`
	Y          *float64 `xml:"y,omitempty"`
	Rotation   *float64 `xml:"r,omitempty"`
	Scale      *float64 `xml:"s,omitempty"`
	ScaleX     *float64 `xml:"sx,omitempty"`
	ScaleY     *float64 `xml:"sy,omitempty"`
	Blur       *float64 `xml:"b,omitempty"`
	Brightness *float64 `xml:"l,omitempty"`
	Hue        *float64 `xml:"h,omitempty"`
	DrawStart  *float64 `xml:"ds,omitempty"`
	DrawEnd    *float64 `xml:"de,omitempty"`
	Clip       *float64 `xml:"c,omitempty"`
}

// field maps a property to its slot in the frame.
func (f *Frame) field(p timeline.Prop) **float64 {
	switch p {
	case timeline.Opacity:
		return &f.Opacity
	case timeline.X:
		return &f.X
	case timeline.Y:
		return &f.Y
	case timeline.Rotation:
		return &f.Rotation
	case timeline.Scale:
		return &f.Scale
	case timeline.ScaleX:
		return &f.ScaleX
	case timeline.ScaleY:
		return &f.ScaleY
	case timeline.Blur:
		return &f.Blur
	case timeline.Brightness:
		return &f.Brightness
	case timeline.Hue:
		return &f.Hue
	case timeline.DrawStart:
		return &f.DrawStart
	case timeline.DrawEnd:
		return &f.DrawEnd
	case timeline.Clip:
		return &f.Clip
	}
	return nil
}

// Get returns the value stored for p, if this frame sets it.
func (f *Frame) Get(p timeline.Prop) (float64, bool) {
	slot := f.field(p)
	if slot == nil || *slot == nil {
		return 0, false
	}
	return **slot, true
}

// Set stores v for p.
func (f *Frame) Set(p timeline.Prop, v float64) {
	if slot := f.field(p); slot != nil {
		*slot = &v
	}
}

// Empty reports whether the frame changes nothing.
func (f *Frame) Empty() bool {
	for _, p := range timeline.AllProps() {
		if _, ok := f.Get(p); ok {
			return false
		}
	}
	return true
}

func cueMarks(cues []cue.Cue) []CueMark {
	out := make([]CueMark, len(cues))
	for i, c := range cues {
		out[i] = CueMark{Name: c.Name, Offset: c.Offset}
	}
	return out
}
