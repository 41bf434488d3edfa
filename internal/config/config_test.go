package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parseBopDrop(defaultBopDropYAML)
	if err != nil {
		t.Fatalf("parseBopDrop(embedded) error = %v", err)
	}
	def := DefaultBopDropConfig()

	if cfg.Field != def.Field {
		t.Errorf("Field = %+v, expected %+v", cfg.Field, def.Field)
	}
	if cfg.Physics != def.Physics {
		t.Errorf("Physics = %+v, expected %+v", cfg.Physics, def.Physics)
	}
	if cfg.Settling != def.Settling {
		t.Errorf("Settling = %+v, expected %+v", cfg.Settling, def.Settling)
	}
	if cfg.Drop != def.Drop {
		t.Errorf("Drop = %+v, expected %+v", cfg.Drop, def.Drop)
	}
	if cfg.Celebration != def.Celebration {
		t.Errorf("Celebration = %+v, expected %+v", cfg.Celebration, def.Celebration)
	}
	if len(cfg.Ranks) != len(def.Ranks) {
		t.Fatalf("len(Ranks) = %d, expected %d", len(cfg.Ranks), len(def.Ranks))
	}
	for i := range def.Ranks {
		if cfg.Ranks[i] != def.Ranks[i] {
			t.Errorf("Ranks[%d] = %+v, expected %+v", i, cfg.Ranks[i], def.Ranks[i])
		}
	}
}

func TestLoadBopDropCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("field:\n  lose_line: 120\ndrop:\n  droppable: 3\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadBopDrop(path)
	if err != nil {
		t.Fatalf("LoadBopDrop() error = %v", err)
	}
	if cfg.Field.LoseLine != 120 {
		t.Errorf("LoseLine = %v, expected 120", cfg.Field.LoseLine)
	}
	if cfg.Drop.Droppable != 3 {
		t.Errorf("Droppable = %d, expected 3", cfg.Drop.Droppable)
	}
	// Untouched values keep their defaults
	if cfg.Field.Width != 768 {
		t.Errorf("Width = %v, expected 768", cfg.Field.Width)
	}
	if len(cfg.Ranks) != 13 {
		t.Errorf("len(Ranks) = %d, expected 13", len(cfg.Ranks))
	}
}

func TestLoadBopDropCustomPathErrors(t *testing.T) {
	if _, err := LoadBopDrop(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("field:\n  lose_line: 5000\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadBopDrop(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("LoadBopDrop() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BopDropConfig)
		valid  bool
	}{
		{"defaults", func(*BopDropConfig) {}, true},
		{"narrow field", func(c *BopDropConfig) { c.Field.Width = 100 }, false},
		{"zero height", func(c *BopDropConfig) { c.Field.Height = 0 }, false},
		{"lose line below floor", func(c *BopDropConfig) { c.Field.LoseLine = 960 }, false},
		{"drop below floor", func(c *BopDropConfig) { c.Field.DropHeight = 1000 }, false},
		{"no interval", func(c *BopDropConfig) { c.Settling.CheckIntervalMs = 0 }, false},
		{"no droppable", func(c *BopDropConfig) { c.Drop.Droppable = 0 }, false},
		{"no steps", func(c *BopDropConfig) { c.Celebration.Steps = 0 }, false},
		{"no ranks", func(c *BopDropConfig) { c.Ranks = nil }, false},
		{"bad color", func(c *BopDropConfig) { c.Ranks[0].Color = "chartreuse" }, false},
		{"empty color", func(c *BopDropConfig) { c.Ranks[0].Color = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultBopDropConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err == nil) != tt.valid {
				t.Errorf("Validate() = %v, expected valid=%v", err, tt.valid)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input    string
		expected DifficultyPreset
		wantErr  bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"normal", DifficultyNormal, false},
		{"fixed", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDifficulty(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDifficulty(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDifficulty(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestApplyBopDropPreset(t *testing.T) {
	easy := DefaultBopDropConfig()
	ApplyBopDropPreset(&easy, DifficultyEasy)
	if easy.Drop.Droppable != 4 {
		t.Errorf("easy Droppable = %d, expected 4", easy.Drop.Droppable)
	}
	if easy.Field.LoseLine != 63 {
		t.Errorf("easy LoseLine = %v, expected 63", easy.Field.LoseLine)
	}

	hard := DefaultBopDropConfig()
	ApplyBopDropPreset(&hard, DifficultyHard)
	if hard.Drop.Droppable != 6 {
		t.Errorf("hard Droppable = %d, expected 6", hard.Drop.Droppable)
	}
	if hard.Field.LoseLine != 126 {
		t.Errorf("hard LoseLine = %v, expected 126", hard.Field.LoseLine)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard preset is invalid: %v", err)
	}

	normal := DefaultBopDropConfig()
	ApplyBopDropPreset(&normal, DifficultyNormal)
	if normal.Field != DefaultBopDropConfig().Field {
		t.Error("normal preset should keep the loaded values")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("BOPDROP_TEST_VALUE=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("BOPDROP_TEST_VALUE") })

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("LoadDotEnv(missing) error = %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := Env("BOPDROP_TEST_VALUE", "fallback"); got != "from-file" {
		t.Errorf("Env() = %q, expected from-file", got)
	}
	if got := Env("BOPDROP_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("Env() = %q, expected fallback", got)
	}
}
