// Package config provides YAML-based game configuration loading and
// difficulty management for the runner.
package config

// RunnerConfig contains all tunables for the lane runner simulation.
// Distances are world units, speeds are units per second and
// durations are milliseconds of simulation time.
type RunnerConfig struct {
	Lanes      RunnerLanes      `yaml:"lanes"`
	Physics    RunnerPhysics    `yaml:"physics"`
	Player     RunnerPlayer     `yaml:"player"`
	World      RunnerWorld      `yaml:"world"`
	Collision  RunnerCollision  `yaml:"collision"`
	Spawn      RunnerSpawn      `yaml:"spawn"`
	Run        RunnerRun        `yaml:"run"`
	Shop       RunnerShop       `yaml:"shop"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// RunnerLanes defines the lane layout.
type RunnerLanes struct {
	Count int     `yaml:"count"` // Number of lanes; lanes span [-count/2, count/2]
	Width float64 `yaml:"width"` // Lane spacing on the x axis
}

// RunnerPhysics defines jump physics and the frame clamp.
type RunnerPhysics struct {
	Gravity    float64 `yaml:"gravity"`
	JumpForce  float64 `yaml:"jump_force"`
	MaxFrameMs int     `yaml:"max_frame_ms"` // Upper bound on a single step
}

// RunnerPlayer defines the player's body.
type RunnerPlayer struct {
	Z            float64 `yaml:"z"`           // Fixed forward coordinate of the player
	BodyHeight   float64 `yaml:"body_height"` // Vertical extent of the body band
	InvincibleMs int     `yaml:"invincible_ms"`
}

// RunnerWorld defines the forward-axis boundaries of the simulation.
type RunnerWorld struct {
	SpawnDistance  float64 `yaml:"spawn_distance"`  // New content appears at -spawn_distance
	RemoveDistance float64 `yaml:"remove_distance"` // Entities with z beyond this are culled
	NearFieldZ     float64 `yaml:"near_field_z"`    // furthestZ used when no static entity exists
	AlienFireZ     float64 `yaml:"alien_fire_z"`    // Aliens fire once they pass this z
	MissileSpeed   float64 `yaml:"missile_speed"`   // Extra forward speed of missiles
	PortalCutoff   float64 `yaml:"portal_cutoff"`   // Level-up prunes entities further than this z
}

// RunnerCollision defines collision tolerances and hit bands.
type RunnerCollision struct {
	ZHalfWidth        float64 `yaml:"z_half_width"`
	LaneTolerance     float64 `yaml:"lane_tolerance"`
	CollectTolerance  float64 `yaml:"collect_tolerance"`
	PortalRadius      float64 `yaml:"portal_radius"`
	ObstacleHeight    float64 `yaml:"obstacle_height"`
	AlienHalfHeight   float64 `yaml:"alien_half_height"`
	MissileHalfHeight float64 `yaml:"missile_half_height"`
}

// RunnerSpawn defines the procedural content policy.
type RunnerSpawn struct {
	MinGapBase     float64 `yaml:"min_gap_base"`
	MinGapPerSpeed float64 `yaml:"min_gap_per_speed"`
	LetterInterval float64 `yaml:"letter_interval"` // Distance between letters at level 1
	LetterGrowth   float64 `yaml:"letter_growth"`   // Interval multiplier per level
	ContentChance  float64 `yaml:"content_chance"`  // Chance a due slot gets content at all
	ObstacleShare  float64 `yaml:"obstacle_share"`  // Obstacle family vs lone gem
	AlienChance    float64 `yaml:"alien_chance"`
	AlienMinLevel  int     `yaml:"alien_min_level"`
	BonusGemChance float64 `yaml:"bonus_gem_chance"`
	GemPoints      int     `yaml:"gem_points"`
	BonusGemPoints int     `yaml:"bonus_gem_points"`
	GemHeight      float64 `yaml:"gem_height"`
	BonusGemHeight float64 `yaml:"bonus_gem_height"`
	AlienHeight    float64 `yaml:"alien_height"`
	LetterHeight   float64 `yaml:"letter_height"`
}

// RunnerRun defines run-level rules owned by the session.
type RunnerRun struct {
	Lives         int     `yaml:"lives"`
	MaxLives      int     `yaml:"max_lives"`
	MaxLevel      int     `yaml:"max_level"` // 0 means endless
	BaseSpeed     float64 `yaml:"base_speed"`
	SpeedPerLevel float64 `yaml:"speed_per_level"` // Fractional speed gain per level
	Word          string  `yaml:"word"`            // Letters to collect each level
	LetterPoints  int     `yaml:"letter_points"`
	ImmortalMs    int     `yaml:"immortal_ms"`
}

// RunnerShop defines shop prices in score points.
type RunnerShop struct {
	DoubleJump int `yaml:"double_jump"`
	MaxLife    int `yaml:"max_life"`
	Heal       int `yaml:"heal"`
	Immortal   int `yaml:"immortal"`
}

// DifficultyConfig defines the in-level speed progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a level.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "distance", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // Distance units or seconds at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// MaxLane returns the highest lane index; lanes span [-MaxLane, MaxLane].
func (c RunnerConfig) MaxLane() int {
	return c.Lanes.Count / 2
}
