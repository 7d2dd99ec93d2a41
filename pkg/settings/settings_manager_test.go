package settings

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestGdata(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	gm, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return gm
}

// TestDefaultSettings 默认值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.ReducedMotion || s.DarkMode || s.Loop {
		t.Error("motion, dark mode and loop should default to off")
	}
	if !s.SoundEnabled {
		t.Error("SoundEnabled: got false, want true")
	}
	if s.SoundVolume != 0.8 {
		t.Errorf("SoundVolume: got %v, want 0.8", s.SoundVolume)
	}
}

// TestNilGdata 降级模式只在内存中生效
func TestNilGdata(t *testing.T) {
	m := NewManager(nil)
	m.SetReducedMotion(true)
	if err := m.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
	if !m.ReducedMotion() {
		t.Error("in-memory setting lost")
	}
	if err := m.Load(); err != nil {
		t.Errorf("Load() in degraded mode: %v", err)
	}
	if m.ReducedMotion() {
		t.Error("Load() in degraded mode should reset to defaults")
	}
}

// TestSaveAndLoad 保存后新管理器可以读回
func TestSaveAndLoad(t *testing.T) {
	gm := openTestGdata(t, "test_intro_settings")

	m := NewManager(gm)
	m.SetReducedMotion(true)
	m.SetDarkMode(true)
	m.SetSoundVolume(0.3)
	m.SetVariant("star-shoot")
	m.SetLoop(true)
	if err := m.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded := NewManager(gm).Settings()
	want := IntroSettings{
		ReducedMotion: true,
		DarkMode:      true,
		SoundEnabled:  true,
		SoundVolume:   0.3,
		Variant:       "star-shoot",
		Loop:          true,
	}
	if *loaded != want {
		t.Errorf("loaded %+v, want %+v", *loaded, want)
	}
}

// TestCorruptSettings 损坏的数据回退到默认值
func TestCorruptSettings(t *testing.T) {
	gm := openTestGdata(t, "test_intro_corrupt")
	if err := gm.SaveObjectProp(settingsObject, settingsProperty, []byte("soundVolume: [oops")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}
	m := NewManager(gm)
	if *m.Settings() != *DefaultSettings() {
		t.Errorf("expected defaults, got %+v", *m.Settings())
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0.4, 0.4},
		{1.7, 1},
	}
	m := NewManager(nil)
	for _, tt := range tests {
		m.SetSoundVolume(tt.in)
		if got := m.Settings().SoundVolume; got != tt.want {
			t.Errorf("SetSoundVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
