package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file
// cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Lanes: RunnerLanes{
			Count: 5,
			Width: 2.2,
		},
		Physics: RunnerPhysics{
			Gravity:    50,
			JumpForce:  16,
			MaxFrameMs: 50,
		},
		Player: RunnerPlayer{
			Z:            0,
			BodyHeight:   1.8,
			InvincibleMs: 1500,
		},
		World: RunnerWorld{
			SpawnDistance:  60,
			RemoveDistance: 20,
			NearFieldZ:     -20,
			AlienFireZ:     -45,
			MissileSpeed:   30,
			PortalCutoff:   -30,
		},
		Collision: RunnerCollision{
			ZHalfWidth:        1.0,
			LaneTolerance:     0.9,
			CollectTolerance:  1.5,
			PortalRadius:      2.0,
			ObstacleHeight:    1.6,
			AlienHalfHeight:   0.6,
			MissileHalfHeight: 0.4,
		},
		Spawn: RunnerSpawn{
			MinGapBase:     12,
			MinGapPerSpeed: 0.4,
			LetterInterval: 150,
			LetterGrowth:   1.5,
			ContentChance:  0.9,
			ObstacleShare:  0.75,
			AlienChance:    0.2,
			AlienMinLevel:  2,
			BonusGemChance: 0.3,
			GemPoints:      50,
			BonusGemPoints: 100,
			GemHeight:      1.0,
			BonusGemHeight: 3.0,
			AlienHeight:    1.5,
			LetterHeight:   1.0,
		},
		Run: RunnerRun{
			Lives:         3,
			MaxLives:      5,
			MaxLevel:      3,
			BaseSpeed:     22.5,
			SpeedPerLevel: 0.4,
			Word:          "GEMINI",
			LetterPoints:  250,
			ImmortalMs:    5000,
		},
		Shop: RunnerShop{
			DoubleJump: 1000,
			MaxLife:    1500,
			Heal:       1000,
			Immortal:   3000,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 3000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
