package sim

// ScoreWeights holds the gameplay tuning for the scoring formula. The
// shape of the formula is fixed (multi-factor, clamped, monotone); the
// constants are configuration.
type ScoreWeights struct {
	// SavingsGoalPoints scales the per-turn reward for meeting the
	// savings goal. The award grows with the goal size.
	SavingsGoalPoints int

	// GaugePointCap bounds the per-turn contribution of each gauge.
	GaugePointCap int

	// DebtPenaltyDivisor converts outstanding debt into penalty points.
	DebtPenaltyDivisor int

	// DebtPenaltyCap bounds the per-turn debt penalty so debt alone can
	// never drive a turn's score negative past the floor.
	DebtPenaltyCap int

	// NetWorthDivisor converts final net worth into the one-time
	// completion bonus.
	NetWorthDivisor int
}

// DefaultScoreWeights returns the tuning used by both simulations.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		SavingsGoalPoints:  10,
		GaugePointCap:      20,
		DebtPenaltyDivisor: 200,
		DebtPenaltyCap:     15,
		NetWorthDivisor:    100,
	}
}

// TurnScore computes the score delta for one closed turn. Each component
// is clamped non-negative before summation, and the total floors at
// zero, so a poor turn never reduces the running score.
func TurnScore(w ScoreWeights, res Resources, saved, goal int) int {
	total := savingsComponent(w, saved, goal) + wellbeingComponent(w, res) - debtPenalty(w, res)
	if total < 0 {
		return 0
	}
	return total
}

// FinalBonus is the one-time completion bonus, proportional to net
// worth. Negative net worth yields no bonus rather than a penalty.
func FinalBonus(w ScoreWeights, res Resources) int {
	nw := res.NetWorth()
	if nw <= 0 || w.NetWorthDivisor <= 0 {
		return 0
	}
	return nw / w.NetWorthDivisor
}

// savingsComponent rewards meeting or exceeding the savings goal, scaled
// by goal size. Nothing is awarded for partial progress.
func savingsComponent(w ScoreWeights, saved, goal int) int {
	if goal <= 0 || saved < goal {
		return 0
	}
	return w.SavingsGoalPoints * goal / 100
}

// wellbeingComponent is monotone in each gauge with a bounded per-gauge
// contribution.
func wellbeingComponent(w ScoreWeights, res Resources) int {
	pts := 0
	for _, v := range res.Gauges {
		pts += v * w.GaugePointCap / GaugeMax
	}
	return pts
}

// debtPenalty is monotone in outstanding debt, capped.
func debtPenalty(w ScoreWeights, res Resources) int {
	if res.Debt <= 0 || w.DebtPenaltyDivisor <= 0 {
		return 0
	}
	p := res.Debt / w.DebtPenaltyDivisor
	if p > w.DebtPenaltyCap {
		p = w.DebtPenaltyCap
	}
	return p
}
