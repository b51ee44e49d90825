package config

// ApplyT2048Preset adjusts the loaded rules for a difficulty preset.
// Easy halves the chance of a 4 and allows undo, hard doubles it and forbids undo.
// Normal leaves the loaded values untouched.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	p := cfg.Rules.Spawn4Probability
	switch preset {
	case DifficultyEasy:
		cfg.Rules.Spawn4Probability = probability(p / 2)
		cfg.Rules.Undo = true
	case DifficultyHard:
		cfg.Rules.Spawn4Probability = probability(p * 2)
		cfg.Rules.Undo = false
	}
}

func probability(p float64) float64 {
	return min(max(p, 0), 1)
}
