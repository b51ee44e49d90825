// Package config provides YAML-based game configuration loading and
// difficulty presets for the 2048 platform.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is returned by Validate for out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Board size limits accepted by Validate.
const (
	MinBoardSize = 3
	MaxBoardSize = 8
)

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board     BoardConfig     `yaml:"board"`
	Rules     RulesConfig     `yaml:"rules"`
	Animation AnimationConfig `yaml:"animation"`
	Input     InputConfig     `yaml:"input"`
	Audio     AudioConfig     `yaml:"audio"`
}

// BoardConfig defines the grid dimension.
type BoardConfig struct {
	Size int `yaml:"size"`
}

// RulesConfig defines win and spawn rules.
type RulesConfig struct {
	WinValue          int     `yaml:"win_value"`
	Spawn4Probability float64 `yaml:"spawn4_probability"` // Chance a spawned tile is a 4
	InitialTiles      int     `yaml:"initial_tiles"`
	Undo              bool    `yaml:"undo"`
}

// AnimationConfig defines animation durations in ticks.
type AnimationConfig struct {
	SlideTicks int `yaml:"slide_ticks"`
	PopTicks   int `yaml:"pop_ticks"`
}

// InputConfig defines input handling parameters.
type InputConfig struct {
	SwipeThreshold int `yaml:"swipe_threshold"` // Minimum drag distance in cells
}

// AudioConfig defines audio cues.
type AudioConfig struct {
	Bell bool `yaml:"bell"` // Ring the terminal bell on merges and game end
}

// Validate checks that every setting is within its accepted range.
func (c T2048Config) Validate() error {
	if c.Board.Size < MinBoardSize || c.Board.Size > MaxBoardSize {
		return fmt.Errorf("%w: board.size %d outside [%d, %d]", ErrInvalidConfig, c.Board.Size, MinBoardSize, MaxBoardSize)
	}
	if c.Rules.WinValue < 4 || c.Rules.WinValue&(c.Rules.WinValue-1) != 0 {
		return fmt.Errorf("%w: rules.win_value %d must be a power of two >= 4", ErrInvalidConfig, c.Rules.WinValue)
	}
	if c.Rules.Spawn4Probability < 0 || c.Rules.Spawn4Probability > 1 {
		return fmt.Errorf("%w: rules.spawn4_probability %v outside [0, 1]", ErrInvalidConfig, c.Rules.Spawn4Probability)
	}
	if c.Rules.InitialTiles < 1 || c.Rules.InitialTiles > c.Board.Size*c.Board.Size {
		return fmt.Errorf("%w: rules.initial_tiles %d outside [1, %d]", ErrInvalidConfig, c.Rules.InitialTiles, c.Board.Size*c.Board.Size)
	}
	if c.Animation.SlideTicks < 0 || c.Animation.PopTicks < 0 {
		return fmt.Errorf("%w: animation ticks must not be negative", ErrInvalidConfig)
	}
	if c.Input.SwipeThreshold < 1 {
		return fmt.Errorf("%w: input.swipe_threshold %d must be at least 1", ErrInvalidConfig, c.Input.SwipeThreshold)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// DifficultyPresets lists the presets in menu order.
var DifficultyPresets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParseDifficultyPreset converts a name to a preset. An empty name means normal.
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(name), nil
	}
	return "", fmt.Errorf("%w: unknown difficulty %q (want easy, normal or hard)", ErrInvalidConfig, name)
}
