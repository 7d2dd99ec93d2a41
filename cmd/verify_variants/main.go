// verify_variants - 逐个检查内置变体在各种轨道组合与能力状态下的构建结果
//
// 检查项：
//   - 时间轴结束时刻不超过总时长
//   - Cue 名称序列与变体声明的词表一致
//   - 能力可用与不可用两条分支的 Cue 序列相同
//   - 同样的输入构建两次结果相同
//
// 用法：
//
//	go run ./cmd/verify_variants
//	go run ./cmd/verify_variants -variant star-magnet -v
//	go run ./cmd/verify_variants -bake testdata/slam.xml
//
// -bake 读取 intro_dump -format xml 导出的烘焙文件，用当前代码重新构建同名变体并逐帧比对，
// 轨道与能力参数需与导出时一致。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"reflect"
	"strings"

	"github.com/decker502/brandintro/internal/bake"
	"github.com/decker502/brandintro/pkg/capability"
	"github.com/decker502/brandintro/pkg/cue"
	"github.com/decker502/brandintro/pkg/timeline"
	"github.com/decker502/brandintro/pkg/tracks"
	"github.com/decker502/brandintro/pkg/variants"
)

// ========== 验证报告结构 ==========

type ValidationReport struct {
	TestName string
	Passed   bool
	Message  string
}

var validationReports []ValidationReport

func addReport(testName string, passed bool, message string) {
	validationReports = append(validationReports, ValidationReport{
		TestName: testName,
		Passed:   passed,
		Message:  message,
	})
	status := "✗ FAIL"
	if passed {
		status = "✓ PASS"
	}
	log.Printf("%s | %-40s | %s", status, testName, message)
}

// ========== 轨道组合 ==========

type setup struct {
	name   string
	tracks func() *tracks.Registry
}

var setups = []setup{
	{"full", func() *tracks.Registry { return tracks.Standard(6) }},
	{"no-outline", func() *tracks.Registry { return tracks.Standard(6).Without(tracks.Outline) }},
	{"no-star", func() *tracks.Registry { return tracks.Standard(6).Without(tracks.Star) }},
	{"no-subject", func() *tracks.Registry { return tracks.Standard(6).Without(tracks.Emblem, tracks.Container) }},
	{"container-only", func() *tracks.Registry {
		return tracks.Standard(0).Without(tracks.Emblem, tracks.Glow, tracks.Particles, tracks.ScanLine, tracks.Flash, tracks.Outline, tracks.Star)
	}},
}

// bakeTolerance 烘焙文件以文本保存，比对时允许的误差
const bakeTolerance = 1e-6

func build(reg *variants.Registry, id string, tr *tracks.Registry, ready capability.Ready) *timeline.Timeline {
	return buildWith(reg, id, tr, ready, false)
}

func buildWith(reg *variants.Registry, id string, tr *tracks.Registry, ready capability.Ready, dark bool) *timeline.Timeline {
	return reg.Build(id, variants.BuildContext{
		Tracks:     tr,
		Capability: ready,
		Cues:       cue.NewEmitter(),
		Options:    variants.Options{Dark: dark},
	})
}

func main() {
	only := flag.String("variant", "", "只检查指定变体")
	verbose := flag.Bool("v", false, "输出每个时间轴的概要")
	bakeFile := flag.String("bake", "", "与指定的烘焙文件逐帧比对")
	available := flag.Bool("capability", true, "描边能力是否可用（-bake）")
	parts := flag.Int("parts", 6, "描边子路径数量（-bake）")
	dark := flag.Bool("dark", false, "深色模式（-bake）")
	flag.Parse()

	reg := variants.Builtin()
	if *bakeFile != "" {
		ready := capability.Unavailable
		if *available {
			ready = capability.Available
		}
		verifyBake(reg, *bakeFile, tracks.Standard(*parts), ready, *dark)
		finish()
		return
	}

	ids := reg.IDs()
	if *only != "" {
		if _, ok := reg.Lookup(*only); !ok {
			log.Fatalf("unknown variant %q", *only)
		}
		ids = []string{*only}
	}

	for _, id := range ids {
		vocab := reg.Vocabulary(id)
		for _, s := range setups {
			verify(reg, id, s, vocab, *verbose)
		}
	}

	finish()
}

func finish() {
	failed := 0
	for _, r := range validationReports {
		if !r.Passed {
			failed++
		}
	}
	fmt.Printf("\n%d checks, %d failed\n", len(validationReports), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func verify(reg *variants.Registry, id string, s setup, vocab []string, verbose bool) {
	name := id + "/" + s.name

	on := build(reg, id, s.tracks(), capability.Available)
	off := build(reg, id, s.tracks(), capability.Unavailable)
	if on == nil || off == nil {
		addReport(name, on == nil && off == nil, "nothing to play")
		return
	}

	ok := on.End() <= timeline.TotalDuration && off.End() <= timeline.TotalDuration
	addReport(name+" duration", ok, fmt.Sprintf("end %.3f / %.3f (budget %.1f)", on.End(), off.End(), timeline.TotalDuration))

	names := cue.Names(on.Cues())
	addReport(name+" vocabulary", reflect.DeepEqual(names, vocab),
		fmt.Sprintf("got [%s] want [%s]", strings.Join(names, " "), strings.Join(vocab, " ")))

	addReport(name+" branch cues", reflect.DeepEqual(on.Cues(), off.Cues()),
		fmt.Sprintf("available %d cues, unavailable %d cues", len(on.Cues()), len(off.Cues())))

	again := build(reg, id, s.tracks(), capability.Available)
	addReport(name+" deterministic", reflect.DeepEqual(on.Tweens(), again.Tweens()),
		fmt.Sprintf("%d tweens", len(on.Tweens())))

	if verbose {
		log.Printf("  %s: %d targets, %d tweens, cues %v", name, len(on.Targets()), len(on.Tweens()), names)
	}
}

func verifyBake(reg *variants.Registry, path string, tr *tracks.Registry, ready capability.Ready, dark bool) {
	saved, err := bake.ParseFile(path)
	if err != nil {
		addReport(path, false, err.Error())
		return
	}
	name := saved.Name + "/bake"

	tl := buildWith(reg, saved.Name, tr, ready, dark)
	if tl == nil {
		addReport(name, false, "nothing to play")
		return
	}
	fresh, err := bake.Bake(tl, saved.FPS)
	if err != nil {
		addReport(name, false, err.Error())
		return
	}

	diffs := bake.Diff(saved, fresh, bakeTolerance)
	for _, d := range diffs {
		log.Printf("  %s: %s", name, d)
	}
	addReport(name, len(diffs) == 0,
		fmt.Sprintf("%d tracks, %d cues at %d fps, %d differences", len(fresh.Tracks), len(fresh.Cues), fresh.FPS, len(diffs)))
}
