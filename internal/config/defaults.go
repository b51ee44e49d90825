package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the default 2048 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: BoardConfig{
			Size: 4,
		},
		Rules: RulesConfig{
			WinValue:          2048,
			Spawn4Probability: 0.10,
			InitialTiles:      2,
			Undo:              true,
		},
		Animation: AnimationConfig{
			SlideTicks: 8, // ~133ms at 60fps
			PopTicks:   6, // ~100ms at 60fps
		},
		Input: InputConfig{
			SwipeThreshold: 2,
		},
		Audio: AudioConfig{
			Bell: false,
		},
	}
}
