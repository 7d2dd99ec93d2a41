package embedded

import (
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/intro_config.yaml":   {Data: []byte("version: 1\n")},
		"data/stroke_profile.yaml": {Data: []byte("version: 1\neffect: drawPath\n")},
	}
}

func TestNotInitialized(t *testing.T) {
	Init(nil)
	if IsInitialized() {
		t.Fatal("expected uninitialized")
	}
	if _, err := ReadFile("data/intro_config.yaml"); err == nil {
		t.Error("expected error before Init")
	}
	if Exists("data/intro_config.yaml") {
		t.Error("Exists should be false before Init")
	}
}

func TestReadFile(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr bool
	}{
		{"plain", "data/intro_config.yaml", "version: 1\n", false},
		{"dot prefix", "./data/intro_config.yaml", "version: 1\n", false},
		{"missing", "data/nope.yaml", "", true},
		{"bad prefix", "assets/logo.png", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestGlobAndReadDir(t *testing.T) {
	Init(testFS())
	defer Init(nil)

	matches, err := Glob("data/*.yaml")
	if err != nil || len(matches) != 2 {
		t.Fatalf("Glob = %v, %v", matches, err)
	}
	entries, err := ReadDir("data")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("ReadDir returned %d entries", len(entries))
	}
	if !Exists("data/stroke_profile.yaml") {
		t.Error("Exists should be true")
	}
}
