package runner

import (
	"errors"
	"math"
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
)

// Session is the default run-state collaborator: lives, score, level,
// letters and shop inventory for one player.
type Session struct {
	cfg        config.RunnerConfig
	difficulty *config.DifficultyManager
	endless    bool

	status   Status
	lives    int
	maxLives int
	points   int // Earned from gems and letters
	wallet   int // Spendable points
	gems     int
	distance float64
	level    int
	letters  Letters

	doubleJump      bool
	immortalCharges int
	immortalLeft    float64 // Seconds

	levelStart   float64 // Distance at which the current level began
	levelSeconds float64
	speedFloor   float64
	fault        error
}

// NewSession creates a session in the menu. endless disables victory.
func NewSession(cfg config.RunnerConfig, endless bool) *Session {
	s := &Session{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		endless:    endless || cfg.Run.MaxLevel == 0,
		status:     StatusMenu,
		level:      1,
	}
	s.resetRun()
	return s
}

// Start begins a fresh run from the menu, game over or victory.
func (s *Session) Start() {
	s.resetRun()
	s.status = StatusPlaying
}

func (s *Session) resetRun() {
	s.lives = s.cfg.Run.Lives
	s.maxLives = s.cfg.Run.MaxLives
	s.points = 0
	s.wallet = 0
	s.gems = 0
	s.distance = 0
	s.level = 1
	s.letters = 0
	s.doubleJump = false
	s.immortalCharges = 0
	s.immortalLeft = 0
	s.levelStart = 0
	s.levelSeconds = 0
	s.speedFloor = 0
	s.fault = nil
}

// Resume leaves the shop and continues the same run.
func (s *Session) Resume() {
	if s.status == StatusShop {
		s.status = StatusPlaying
	}
}

// Status implements State.
func (s *Session) Status() Status { return s.status }

// ScrollSpeed implements State. It never decreases within a run.
func (s *Session) ScrollSpeed() float64 {
	base := s.cfg.Run.BaseSpeed * (1 + float64(s.level-1)*s.cfg.Run.SpeedPerLevel)
	speed := s.difficulty.Speed(base, s.distance-s.levelStart, s.levelSeconds)
	s.speedFloor = math.Max(s.speedFloor, speed)
	return s.speedFloor
}

// Level implements State.
func (s *Session) Level() int { return s.level }

// LaneCount implements State.
func (s *Session) LaneCount() int { return s.cfg.Lanes.Count }

// CollectedLetters implements State.
func (s *Session) CollectedLetters() Letters { return s.letters }

// HasDoubleJump implements State.
func (s *Session) HasDoubleJump() bool { return s.doubleJump }

// ImmortalActive implements State.
func (s *Session) ImmortalActive() bool { return s.immortalLeft > 0 }

// OnDamage implements State.
func (s *Session) OnDamage() {
	if s.status != StatusPlaying {
		return
	}
	s.lives--
	if s.lives <= 0 {
		s.lives = 0
		s.status = StatusGameOver
	}
}

// OnCollectGem implements State.
func (s *Session) OnCollectGem(points int) {
	s.gems++
	s.earn(points)
}

// OnCollectLetter implements State. Completing the word advances the level,
// or ends the run in victory after the last level.
func (s *Session) OnCollectLetter(index int) {
	if s.letters.Has(index) {
		return
	}
	s.letters = s.letters.With(index)
	s.earn(s.cfg.Run.LetterPoints)

	if !s.letters.Full(config.WordLength) {
		return
	}
	if !s.endless && s.level >= s.cfg.Run.MaxLevel {
		s.status = StatusVictory
		return
	}
	s.level++
	s.letters = 0
	s.levelStart = s.distance
	s.levelSeconds = 0
}

// OnEnterShop implements State.
func (s *Session) OnEnterShop() {
	if s.status == StatusPlaying {
		s.status = StatusShop
	}
}

// OnDistanceUpdate implements State.
func (s *Session) OnDistanceUpdate(distance float64) {
	s.distance = distance
}

// OnTick implements State.
func (s *Session) OnTick(seconds float64) {
	s.levelSeconds += seconds
	if s.immortalLeft > 0 {
		s.immortalLeft = math.Max(0, s.immortalLeft-seconds)
	}
}

// ActivatePower implements State. It spends one immortality charge.
func (s *Session) ActivatePower() {
	if s.immortalCharges == 0 || s.immortalLeft > 0 {
		return
	}
	s.immortalCharges--
	s.immortalLeft = (time.Duration(s.cfg.Run.ImmortalMs) * time.Millisecond).Seconds()
}

// OnFault implements State.
func (s *Session) OnFault(err error) {
	s.fault = err
	s.status = StatusGameOver
}

func (s *Session) earn(points int) {
	s.points += points
	s.wallet += points
}

// Score returns distance plus earned points.
func (s *Session) Score() int {
	return int(s.distance) + s.points
}

// Lives returns the remaining lives.
func (s *Session) Lives() int { return s.lives }

// MaxLives returns the life cap.
func (s *Session) MaxLives() int { return s.maxLives }

// Wallet returns spendable points.
func (s *Session) Wallet() int { return s.wallet }

// Gems returns the number of gems collected this run.
func (s *Session) Gems() int { return s.gems }

// Distance returns the last reported distance.
func (s *Session) Distance() float64 { return s.distance }

// ImmortalCharges returns unused immortality charges.
func (s *Session) ImmortalCharges() int { return s.immortalCharges }

// ImmortalLeft returns the remaining immortality time.
func (s *Session) ImmortalLeft() time.Duration {
	return time.Duration(s.immortalLeft * float64(time.Second))
}

// Fault returns the error that halted the run, if any.
func (s *Session) Fault() error { return s.fault }

// Endless reports whether the session has no final level.
func (s *Session) Endless() bool { return s.endless }

// Word returns the letters to collect.
func (s *Session) Word() []rune {
	return []rune(s.cfg.Run.Word)
}

// Shop errors.
var (
	ErrNotInShop         = errors.New("runner: not in shop")
	ErrUnknownItem       = errors.New("runner: unknown shop item")
	ErrInsufficientFunds = errors.New("runner: insufficient points")
	ErrAlreadyOwned      = errors.New("runner: item already owned")
	ErrLivesAlreadyMaxed = errors.New("runner: lives already full")
)
