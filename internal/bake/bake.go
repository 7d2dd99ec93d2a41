package bake

import (
	"encoding/xml"
	"fmt"
	"math"
	"os"

	"github.com/decker502/brandintro/pkg/timeline"
)

// DefaultFPS is the sampling rate used by the dump tool.
const DefaultFPS = 30

// Bake samples tl at fps and writes only the values that change between
// consecutive frames. Frame 0 holds the full starting pose of every channel.
//
// Parameters:
//   - tl: the timeline to bake
//   - fps: frames per second, must be positive
//
// Returns:
//   - *Baked: keyframes for every animated target
//   - error: invalid arguments
func Bake(tl *timeline.Timeline, fps int) (*Baked, error) {
	if tl == nil {
		return nil, fmt.Errorf("nothing to bake")
	}
	if fps <= 0 {
		return nil, fmt.Errorf("invalid fps %d", fps)
	}

	sampler := tl.Resolve(nil)
	frames := FrameCount(tl.End(), fps)

	type slot struct {
		track *Track
		last  map[timeline.Prop]float64
	}
	slots := make(map[timeline.Target]*slot)
	var order []timeline.Target
	for _, ch := range sampler.Channels() {
		if _, ok := slots[ch.Target]; !ok {
			slots[ch.Target] = &slot{
				track: &Track{Name: ch.Target.String(), Frames: make([]Frame, frames)},
				last:  make(map[timeline.Prop]float64),
			}
			order = append(order, ch.Target)
		}
	}

	for i := 0; i < frames; i++ {
		t := math.Min(float64(i)/float64(fps), tl.End())
		sampler.Sample(t, func(target timeline.Target, p timeline.Prop, v float64) {
			s := slots[target]
			if prev, ok := s.last[p]; ok && prev == v {
				return
			}
			s.last[p] = v
			s.track.Frames[i].Set(p, v)
		})
	}

	b := &Baked{Name: tl.Name(), FPS: fps, Cues: cueMarks(tl.Cues())}
	for _, target := range order {
		b.Tracks = append(b.Tracks, *slots[target].track)
	}
	return b, nil
}

// FrameCount is the number of frames needed to cover [0, end] at fps,
// including the final frame.
func FrameCount(end float64, fps int) int {
	return int(math.Ceil(end*float64(fps)-1e-9)) + 1
}

// Expand resolves cumulative inheritance and returns the full property set of
// every frame of the track.
func (t *Track) Expand() []map[timeline.Prop]float64 {
	out := make([]map[timeline.Prop]float64, len(t.Frames))
	cur := make(map[timeline.Prop]float64)
	for i := range t.Frames {
		for _, p := range timeline.AllProps() {
			if v, ok := t.Frames[i].Get(p); ok {
				cur[p] = v
			}
		}
		frame := make(map[timeline.Prop]float64, len(cur))
		for p, v := range cur {
			frame[p] = v
		}
		out[i] = frame
	}
	return out
}

// Find returns the track with the given name.
func (b *Baked) Find(name string) (*Track, bool) {
	for i := range b.Tracks {
		if b.Tracks[i].Name == name {
			return &b.Tracks[i], true
		}
	}
	return nil, false
}

// Encode serializes the baked intro as indented XML.
func Encode(b *Baked) ([]byte, error) {
	data, err := xml.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode bake '%s': %w", b.Name, err)
	}
	return append(data, '\n'), nil
}

// Parse decodes a baked intro.
func Parse(data []byte) (*Baked, error) {
	var b Baked
	if err := xml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("failed to parse bake XML: %w", err)
	}
	if b.FPS <= 0 {
		return nil, fmt.Errorf("bake '%s' has invalid fps %d", b.Name, b.FPS)
	}
	return &b, nil
}

// ParseFile reads and decodes a baked intro file.
//
// Parameters:
//   - path: path to the file, e.g., "out/star-shoot.bake.xml"
func ParseFile(path string) (*Baked, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bake file '%s': %w", path, err)
	}
	return Parse(data)
}
