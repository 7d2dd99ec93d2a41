package bake

import (
	"fmt"
	"math"

	"github.com/decker502/brandintro/pkg/timeline"
)

// maxFrameDiffs caps how many frame mismatches are reported per track.
const maxFrameDiffs = 3

// Diff compares a saved bake against a fresh one and describes every
// difference larger than tol. A nil result means the two replay identically.
//
// Parameters:
//   - want: the reference bake, usually read back with ParseFile
//   - got: the bake produced from the current build
//   - tol: absolute tolerance for property values and cue offsets
func Diff(want, got *Baked, tol float64) []string {
	var out []string
	if want.Name != got.Name {
		out = append(out, fmt.Sprintf("name: %q != %q", want.Name, got.Name))
	}
	if want.FPS != got.FPS {
		return append(out, fmt.Sprintf("fps: %d != %d", want.FPS, got.FPS))
	}

	if len(want.Cues) != len(got.Cues) {
		out = append(out, fmt.Sprintf("cues: %d != %d", len(want.Cues), len(got.Cues)))
	} else {
		for i := range want.Cues {
			w, g := want.Cues[i], got.Cues[i]
			if w.Name != g.Name || math.Abs(w.Offset-g.Offset) > tol {
				out = append(out, fmt.Sprintf("cue %d: %s@%.3f != %s@%.3f", i, w.Name, w.Offset, g.Name, g.Offset))
			}
		}
	}

	for i := range want.Tracks {
		wt := &want.Tracks[i]
		gt, ok := got.Find(wt.Name)
		if !ok {
			out = append(out, fmt.Sprintf("track %s: missing", wt.Name))
			continue
		}
		out = append(out, diffTrack(wt, gt, tol)...)
	}
	for i := range got.Tracks {
		if _, ok := want.Find(got.Tracks[i].Name); !ok {
			out = append(out, fmt.Sprintf("track %s: unexpected", got.Tracks[i].Name))
		}
	}
	return out
}

func diffTrack(want, got *Track, tol float64) []string {
	if len(want.Frames) != len(got.Frames) {
		return []string{fmt.Sprintf("track %s: %d frames != %d", want.Name, len(want.Frames), len(got.Frames))}
	}
	var out []string
	wf, gf := want.Expand(), got.Expand()
	for i := range wf {
		var bad []timeline.Prop
		for _, p := range timeline.AllProps() {
			wv, wok := wf[i][p]
			gv, gok := gf[i][p]
			if wok != gok || math.Abs(wv-gv) > tol {
				bad = append(bad, p)
			}
		}
		if len(bad) == 0 {
			continue
		}
		if len(out) == maxFrameDiffs {
			out = append(out, fmt.Sprintf("track %s: more frames differ", want.Name))
			break
		}
		out = append(out, fmt.Sprintf("track %s frame %d: %v differ", want.Name, i, bad))
	}
	return out
}
