package sim

import "fmt"

// Mode selects which simulation variant a session runs.
type Mode string

const (
	ModeBudget Mode = "budget" // monthly turns, expense selections
	ModeEarn   Mode = "earn"   // daily turns, reward tasks
)

// Config holds all tunable parameters for a session. Gameplay constants
// (rates, goals, score weights) are configuration, not contracts.
type Config struct {
	Mode Mode

	// MaxTurns is the number of discrete turns (months or days).
	MaxTurns int

	// DurationSeconds is the hard wall-clock budget for the session.
	DurationSeconds int

	// TurnLabel names one turn for display ("Month", "Day").
	TurnLabel string

	// Income is the fixed income credited at each turn close. Task
	// rewards earned during the turn are added on top.
	Income int

	StartingBalance int
	StartingSavings int
	StartingDebt    int

	// Gauges maps gauge names to starting values, clamped to [0, 100].
	Gauges map[string]int

	// InterestRate is the periodic rate applied to outstanding debt at
	// each turn boundary.
	InterestRate float64

	// GaugeRecovery is added to every gauge below max at each turn
	// boundary.
	GaugeRecovery int

	// SavingsGoal is the per-turn savings commitment that earns the
	// savings score component.
	SavingsGoal int

	// EventProbability is the chance an event fires at a turn boundary.
	EventProbability float64

	// EventCutoff suppresses events in the last N turns so an unresolved
	// event can never block completion.
	EventCutoff int

	Score ScoreWeights
}

// Validate reports the first configuration problem found. All errors wrap
// ErrInvalidConfig.
func (c Config) Validate() error {
	if c.MaxTurns <= 0 {
		return fmt.Errorf("%w: max turns must be positive, got %d", ErrInvalidConfig, c.MaxTurns)
	}
	if c.DurationSeconds <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidConfig, c.DurationSeconds)
	}
	if c.EventProbability < 0 || c.EventProbability > 1 {
		return fmt.Errorf("%w: event probability %v outside [0, 1]", ErrInvalidConfig, c.EventProbability)
	}
	if c.EventCutoff < 0 {
		return fmt.Errorf("%w: event cutoff must be non-negative", ErrInvalidConfig)
	}
	if c.InterestRate < 0 {
		return fmt.Errorf("%w: interest rate must be non-negative", ErrInvalidConfig)
	}
	for name, v := range c.Gauges {
		if v < 0 || v > GaugeMax {
			return fmt.Errorf("%w: gauge %q starts at %d, outside [0, %d]", ErrInvalidConfig, name, v, GaugeMax)
		}
	}
	return nil
}

// DefaultBudgetConfig returns the tuned configuration for the budget
// simulation: six monthly turns under a ten-minute clock.
func DefaultBudgetConfig() Config {
	return Config{
		Mode:             ModeBudget,
		MaxTurns:         6,
		DurationSeconds:  600,
		TurnLabel:        "Month",
		Income:           3000,
		StartingBalance:  2000,
		StartingSavings:  0,
		StartingDebt:     1500,
		Gauges:           map[string]int{"mood": 70, "energy": 80},
		InterestRate:     0.02,
		GaugeRecovery:    5,
		SavingsGoal:      400,
		EventProbability: 0.3,
		EventCutoff:      1,
		Score:            DefaultScoreWeights(),
	}
}

// DefaultEarnConfig returns the tuned configuration for the earn-and-save
// simulation: seven daily turns under a ten-minute clock. Income comes
// almost entirely from completed tasks.
func DefaultEarnConfig() Config {
	return Config{
		Mode:             ModeEarn,
		MaxTurns:         7,
		DurationSeconds:  600,
		TurnLabel:        "Day",
		Income:           5, // daily allowance
		StartingBalance:  20,
		StartingSavings:  0,
		StartingDebt:     0,
		Gauges:           map[string]int{"energy": 90},
		InterestRate:     0,
		GaugeRecovery:    10,
		SavingsGoal:      15,
		EventProbability: 0.2,
		EventCutoff:      1,
		Score:            DefaultScoreWeights(),
	}
}
