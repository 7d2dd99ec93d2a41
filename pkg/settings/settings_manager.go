// Package settings 持久化片头播放器的用户偏好。
package settings

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// IntroSettings 全局播放偏好
type IntroSettings struct {
	// 动效与配色
	ReducedMotion bool `yaml:"reducedMotion"` // 减弱动效，只播放淡入
	DarkMode      bool `yaml:"darkMode"`      // 深色配色

	// 音效
	SoundEnabled bool    `yaml:"soundEnabled"` // Cue 音效开关
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0

	// 播放
	Variant string `yaml:"variant"` // 上次选择的变体，空表示默认
	Loop    bool   `yaml:"loop"`    // 循环播放
}

// DefaultSettings 返回默认设置
func DefaultSettings() *IntroSettings {
	return &IntroSettings{
		ReducedMotion: false,
		DarkMode:      false,
		SoundEnabled:  true,
		SoundVolume:   0.8,
		Variant:       "",
		Loop:          false,
	}
}

// Manager 设置管理器
// 负责设置的加载、保存和内存管理
type Manager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式，仅内存设置）
	settings     *IntroSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "intro"
)

// NewManager 创建设置管理器，加载失败时使用默认设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewManager(gdataManager *gdata.Manager) *Manager {
	m := &Manager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}
	if err := m.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}
	return m
}

// Open 按应用名打开 gdata 存储并创建管理器；存储不可用时进入降级模式
func Open(appName string) *Manager {
	gm, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[SettingsManager] Warning: gdata unavailable: %v (settings will not persist)", err)
		return NewManager(nil)
	}
	return NewManager(gm)
}

// Load 从 gdata 加载设置
//
// 返回：
//   - error: 文件存在但读取或反序列化失败时返回错误，此时使用默认设置
func (m *Manager) Load() error {
	if m.gdataManager == nil {
		m.settings = DefaultSettings()
		return nil
	}
	if !m.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		m.settings = DefaultSettings()
		return nil
	}

	data, err := m.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		m.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		m.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SoundVolume = clampVolume(loaded.SoundVolume)
	m.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata，降级模式下直接返回 nil
func (m *Manager) Save() error {
	if m.gdataManager == nil {
		return nil
	}
	data, err := yaml.Marshal(m.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := m.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Settings 当前设置
func (m *Manager) Settings() *IntroSettings {
	return m.settings
}

// ReducedMotion 是否减弱动效
func (m *Manager) ReducedMotion() bool {
	return m.settings.ReducedMotion
}

// SetReducedMotion 设置减弱动效（需调用 Save 持久化）
func (m *Manager) SetReducedMotion(enabled bool) {
	m.settings.ReducedMotion = enabled
}

// SetDarkMode 设置深色配色（需调用 Save 持久化）
func (m *Manager) SetDarkMode(enabled bool) {
	m.settings.DarkMode = enabled
}

// SetSoundEnabled 设置音效开关（需调用 Save 持久化）
func (m *Manager) SetSoundEnabled(enabled bool) {
	m.settings.SoundEnabled = enabled
}

// SetSoundVolume 设置音效音量，限制在 0.0 ~ 1.0（需调用 Save 持久化）
func (m *Manager) SetSoundVolume(volume float64) {
	m.settings.SoundVolume = clampVolume(volume)
}

// SetVariant 记录选择的变体（需调用 Save 持久化）
func (m *Manager) SetVariant(id string) {
	m.settings.Variant = id
}

// SetLoop 设置循环播放（需调用 Save 持久化）
func (m *Manager) SetLoop(enabled bool) {
	m.settings.Loop = enabled
}

func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}
