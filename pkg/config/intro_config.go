package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/decker502/brandintro/pkg/embedded"
	"github.com/decker502/brandintro/pkg/tracks"
)

// DefaultPath 嵌入的默认配置路径
const DefaultPath = "data/intro_config.yaml"

// ErrNoVersion 配置缺少 version 字段
var ErrNoVersion = errors.New("config: missing version")

// IntroConfig 片头播放器配置
//
// 配置文件位置: data/intro_config.yaml
type IntroConfig struct {
	Version    int                   `yaml:"version"`
	Playback   PlaybackConfig        `yaml:"playback"`
	Capability CapabilityConfig      `yaml:"capability"`
	Tracks     TracksConfig          `yaml:"tracks"`
	Sounds     map[string]ToneConfig `yaml:"sounds"`
	Relay      RelayConfig           `yaml:"relay"`
}

// PlaybackConfig 播放选项
type PlaybackConfig struct {
	Variant   string  `yaml:"variant"`
	AutoPlay  bool    `yaml:"auto_play"`
	Loop      bool    `yaml:"loop"`
	LoopDelay float64 `yaml:"loop_delay"` // 秒
	Dark      bool    `yaml:"dark"`
}

// CapabilityConfig 描边能力描述文件的来源
type CapabilityConfig struct {
	// URL 为空时使用嵌入的 data/stroke_profile.yaml
	URL            string  `yaml:"url"`
	TimeoutSeconds float64 `yaml:"timeout_seconds"`
}

// TracksConfig 宿主挂载的轨道
type TracksConfig struct {
	OutlineParts int      `yaml:"outline_parts"`
	Omit         []string `yaml:"omit"` // 不挂载的槽位
}

// ToneConfig 一个 Cue 对应的合成音
type ToneConfig struct {
	Freq     float64 `yaml:"freq"`     // Hz
	Duration float64 `yaml:"duration"` // 秒
	Gain     float64 `yaml:"gain"`     // 0.0 ~ 1.0
}

// RelayConfig Cue 转发服务
type RelayConfig struct {
	// Addr 为空时不启动
	Addr string `yaml:"addr"`
}

// ParseIntroConfig 解析并验证配置
func ParseIntroConfig(data []byte) (*IntroConfig, error) {
	var cfg IntroConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse intro config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid intro config: %w", err)
	}
	return &cfg, nil
}

// LoadIntroConfig 从文件加载配置
//
// 参数:
//   - path: 配置文件路径
func LoadIntroConfig(path string) (*IntroConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read intro config: %w", err)
	}
	return ParseIntroConfig(data)
}

// LoadEmbeddedIntroConfig 从嵌入资源加载默认配置
func LoadEmbeddedIntroConfig() (*IntroConfig, error) {
	data, err := embedded.ReadFile(DefaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded intro config: %w", err)
	}
	return ParseIntroConfig(data)
}

// Validate 验证配置有效性
func (c *IntroConfig) Validate() error {
	if c.Version == 0 {
		return ErrNoVersion
	}
	if c.Playback.LoopDelay < 0 {
		return fmt.Errorf("loop_delay must not be negative: %.2f", c.Playback.LoopDelay)
	}
	if c.Capability.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must not be negative: %.2f", c.Capability.TimeoutSeconds)
	}
	if c.Tracks.OutlineParts < 0 {
		return fmt.Errorf("outline_parts must not be negative: %d", c.Tracks.OutlineParts)
	}
	known := make(map[string]bool, len(tracks.Slots))
	for _, s := range tracks.Slots {
		known[s] = true
	}
	for _, name := range c.Tracks.Omit {
		if !known[name] {
			return fmt.Errorf("unknown track slot in omit: %q", name)
		}
	}
	for name, tone := range c.Sounds {
		if tone.Freq <= 0 || tone.Duration <= 0 {
			return fmt.Errorf("sound %q needs positive freq and duration", name)
		}
		if tone.Gain < 0 || tone.Gain > 1 {
			return fmt.Errorf("sound %q gain out of range: %.2f", name, tone.Gain)
		}
	}
	return nil
}

// CapabilityTimeout 能力加载超时，未配置时返回 0（由加载器使用默认值）
func (c *IntroConfig) CapabilityTimeout() time.Duration {
	return time.Duration(c.Capability.TimeoutSeconds * float64(time.Second))
}

// TrackRegistry 按配置挂载轨道
func (c *IntroConfig) TrackRegistry() *tracks.Registry {
	reg := tracks.Standard(c.Tracks.OutlineParts)
	if len(c.Tracks.Omit) > 0 {
		reg = reg.Without(c.Tracks.Omit...)
	}
	return reg
}
