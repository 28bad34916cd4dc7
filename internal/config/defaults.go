package config

import (
	_ "embed"
)

//go:embed defaults/stars.yaml
var defaultStarsYAML []byte

// DefaultStarsConfig returns the hardcoded default configuration.
// It mirrors defaults/stars.yaml and backs it up if the embed fails to parse.
func DefaultStarsConfig() StarsConfig {
	return StarsConfig{
		Window: WindowConfig{
			CellWidth:  8,
			CellHeight: 16,
		},
		Player: PlayerConfig{
			Size:  64,
			Speed: 500,
		},
		Enemy: EnemyConfig{
			Size:        64,
			Speed:       500,
			HalfDivisor: 1.8,
			BounceNudge: 8,
			KillRadius:  64,
		},
		Star: StarConfig{
			PickupRadius: 64,
		},
		Spawn: SpawnConfig{
			Margin:           64,
			VerticalDivisor:  3,
			MinStars:         1,
			MaxStars:         3,
			MinEnemies:       1,
			MaxEnemies:       3,
			DirectionRetries: 8,
		},
		Sounds: SoundsConfig{
			Impact: []string{
				"audio/impactGeneric_light_000.ogg",
				"audio/impactGeneric_light_001.ogg",
				"audio/impactGeneric_light_002.ogg",
				"audio/impactGeneric_light_003.ogg",
				"audio/impactGeneric_light_004.ogg",
			},
			Pluck: []string{
				"audio/pluck_001.ogg",
				"audio/pluck_002.ogg",
			},
			Explosion: []string{
				"audio/explosionCrunch_000.ogg",
				"audio/explosionCrunch_001.ogg",
			},
		},
		Audio: AudioConfig{
			Enabled:      true,
			Volume:       0.6,
			AssetDir:     "assets",
			MaxPerSecond: 20,
			Burst:        4,
		},
		Input: InputConfig{
			HoldMillis: 150,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultStarsYAML
}
