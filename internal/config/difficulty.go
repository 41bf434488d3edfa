package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a name to a preset. Empty means normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyBopDropPreset modifies the config based on a difficulty preset.
// Easy drops fewer kinds of pieces and lowers the lose line toward the top
// edge; hard does the opposite. Normal keeps the loaded values.
func ApplyBopDropPreset(cfg *BopDropConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Drop.Droppable = max(1, cfg.Drop.Droppable-1)
		cfg.Field.LoseLine = cfg.Field.LoseLine * 0.75
	case DifficultyHard:
		cfg.Drop.Droppable = min(len(cfg.Ranks), cfg.Drop.Droppable+1)
		cfg.Field.LoseLine = cfg.Field.LoseLine * 1.5
		cfg.Settling.VelocityThreshold = cfg.Settling.VelocityThreshold * 0.5
	}
}
