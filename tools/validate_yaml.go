package main

import (
	"fmt"
	"os"

	"github.com/decker502/brandintro/pkg/capability"
	"github.com/decker502/brandintro/pkg/config"
	"github.com/decker502/brandintro/pkg/variants"
)

func main() {
	failed := false

	cfg, err := config.LoadIntroConfig("data/intro_config.yaml")
	if err != nil {
		fmt.Printf("❌ intro_config.yaml: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ intro_config.yaml 格式正确 (version %d)\n", cfg.Version)

	if v := cfg.Playback.Variant; v != "" {
		if _, ok := variants.Builtin().Lookup(v); !ok {
			fmt.Printf("❌ 未知变体 %q，播放时会回退到 %s\n", v, variants.DefaultID)
			failed = true
		} else {
			fmt.Printf("✅ 变体 %s 已注册\n", v)
		}
	}

	// 检查所有变体的 Cue 是否都配置了音效
	missing := 0
	reg := variants.Builtin()
	seen := make(map[string]bool)
	for _, id := range reg.IDs() {
		for _, name := range reg.Vocabulary(id) {
			if seen[name] {
				continue
			}
			seen[name] = true
			if _, ok := cfg.Sounds[name]; !ok {
				fmt.Printf("⚠️  Cue %q (%s) 没有音效\n", name, id)
				missing++
			}
		}
	}
	if missing == 0 {
		fmt.Printf("✅ 所有 %d 个 Cue 都有音效\n", len(seen))
	}

	data, err := os.ReadFile("data/stroke_profile.yaml")
	if err != nil {
		fmt.Printf("❌ 读取 stroke_profile.yaml 失败: %v\n", err)
		os.Exit(1)
	}
	profile, err := capability.ParseProfile(data)
	if err != nil {
		fmt.Printf("❌ stroke_profile.yaml: %v\n", err)
		failed = true
	} else {
		fmt.Printf("✅ stroke_profile.yaml: %s, max_parts %d\n", profile.Effect, profile.MaxParts)
		if profile.MaxParts > 0 && cfg.Tracks.OutlineParts > profile.MaxParts {
			fmt.Printf("❌ outline_parts %d 超过描述文件上限 %d\n", cfg.Tracks.OutlineParts, profile.MaxParts)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}
