// intro_dump - 把变体构建出的时间轴导出为 YAML 或烘焙后的关键帧 XML
//
// 用法：
//
//	go run ./cmd/intro_dump -variant star-shoot
//	go run ./cmd/intro_dump -variant stroke-draw -capability=false -format xml -fps 60
//	go run ./cmd/intro_dump -all -omit star,outline
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/decker502/brandintro/internal/bake"
	"github.com/decker502/brandintro/pkg/capability"
	"github.com/decker502/brandintro/pkg/cue"
	"github.com/decker502/brandintro/pkg/timeline"
	"github.com/decker502/brandintro/pkg/tracks"
	"github.com/decker502/brandintro/pkg/variants"
)

// dumpTween 导出的补间
type dumpTween struct {
	Target   string             `yaml:"target"`
	Start    float64            `yaml:"start"`
	Duration float64            `yaml:"duration"`
	Ease     string             `yaml:"ease"`
	From     map[string]float64 `yaml:"from,omitempty"`
	To       map[string]float64 `yaml:"to"`
}

// dumpTimeline 导出的时间轴
type dumpTimeline struct {
	Variant    string      `yaml:"variant"`
	Family     string      `yaml:"family"`
	Capability string      `yaml:"capability"`
	End        float64     `yaml:"end"`
	Cues       []cue.Cue   `yaml:"cues"`
	Tweens     []dumpTween `yaml:"tweens"`
}

func main() {
	variantID := flag.String("variant", variants.DefaultID, "变体 ID")
	all := flag.Bool("all", false, "导出全部变体（仅 YAML）")
	format := flag.String("format", "yaml", "输出格式：yaml 或 xml")
	fps := flag.Int("fps", bake.DefaultFPS, "XML 烘焙帧率")
	available := flag.Bool("capability", true, "描边能力是否可用")
	dark := flag.Bool("dark", false, "深色模式")
	parts := flag.Int("parts", 6, "描边子路径数量")
	omit := flag.String("omit", "", "缺失的轨道，逗号分隔")
	output := flag.String("o", "", "输出文件（默认标准输出）")
	flag.Parse()

	reg := variants.Builtin()
	ready := capability.Unavailable
	if *available {
		ready = capability.Available
	}
	tr := tracks.Standard(*parts)
	if *omit != "" {
		tr = tr.Without(strings.Split(*omit, ",")...)
	}

	ids := []string{*variantID}
	if *all {
		ids = reg.IDs()
	}

	var data []byte
	var err error
	switch *format {
	case "yaml":
		var dumps []dumpTimeline
		for _, id := range ids {
			tl := build(reg, id, tr, ready, *dark)
			if tl == nil {
				log.Printf("[intro_dump] Warning: %s produced nothing with tracks %v", id, tr.Names())
				continue
			}
			v, _ := reg.Resolve(id)
			dumps = append(dumps, toDump(tl, v, ready))
		}
		data, err = yaml.Marshal(dumps)
	case "xml":
		if *all {
			log.Fatalf("-all 只支持 yaml 格式")
		}
		tl := build(reg, *variantID, tr, ready, *dark)
		if tl == nil {
			log.Fatalf("%s 没有可播放的内容", *variantID)
		}
		var baked *bake.Baked
		if baked, err = bake.Bake(tl, *fps); err == nil {
			data, err = bake.Encode(baked)
		}
	default:
		log.Fatalf("未知格式: %s", *format)
	}
	if err != nil {
		log.Fatalf("导出失败: %v", err)
	}

	if *output == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*output, data, 0o644); err != nil {
		log.Fatalf("写入 %s 失败: %v", *output, err)
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d bytes)\n", *output, len(data))
}

func build(reg *variants.Registry, id string, tr *tracks.Registry, ready capability.Ready, dark bool) *timeline.Timeline {
	return reg.Build(id, variants.BuildContext{
		Tracks:     tr,
		Capability: ready,
		Cues:       cue.NewEmitter(),
		Options:    variants.Options{Dark: dark},
	})
}

func toDump(tl *timeline.Timeline, v *variants.Variant, ready capability.Ready) dumpTimeline {
	d := dumpTimeline{
		Variant:    tl.Name(),
		Capability: ready.String(),
		End:        tl.End(),
		Cues:       tl.Cues(),
	}
	if v != nil {
		d.Family = string(v.Family)
	}
	for _, tw := range tl.Tweens() {
		d.Tweens = append(d.Tweens, dumpTween{
			Target:   tw.Target.String(),
			Start:    tw.Start,
			Duration: tw.Duration,
			Ease:     tw.Ease,
			From:     propNames(tw.From),
			To:       propNames(tw.To),
		})
	}
	return d
}

func propNames(p timeline.Props) map[string]float64 {
	if len(p) == 0 {
		return nil
	}
	out := make(map[string]float64, len(p))
	for k, v := range p {
		out[k.String()] = v
	}
	return out
}
