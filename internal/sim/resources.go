package sim

import (
	"math"

	"github.com/abhisek/finzo/internal/catalog"
)

// GaugeMax is the upper bound for every morale-style gauge.
const GaugeMax = 100

// Resources is the mutable numeric state of a session: liquid balance,
// accumulated savings, outstanding debt, and bounded morale gauges.
// All amounts are whole dollars.
type Resources struct {
	Balance int
	Savings int
	Debt    int
	Gauges  map[string]int
}

// NewResources builds the starting resource state from config. Gauge
// values are clamped to [0, GaugeMax].
func NewResources(cfg Config) Resources {
	gauges := make(map[string]int, len(cfg.Gauges))
	for name, v := range cfg.Gauges {
		gauges[name] = clampGauge(v)
	}
	return Resources{
		Balance: cfg.StartingBalance,
		Savings: cfg.StartingSavings,
		Debt:    cfg.StartingDebt,
		Gauges:  gauges,
	}
}

// Clone returns a deep copy. Resource operations are pure functions over
// copies; nothing mutates a Resources value in place.
func (r Resources) Clone() Resources {
	out := r
	out.Gauges = make(map[string]int, len(r.Gauges))
	for name, v := range r.Gauges {
		out.Gauges[name] = v
	}
	return out
}

// NetWorth is assets minus debt.
func (r Resources) NetWorth() int {
	return r.Balance + r.Savings - r.Debt
}

// ApplyTurnBudget credits income minus expenses to the balance and
// returns the new state along with the delta. The model has no opinion on
// validity; a caller that wants to reject deficits checks the delta.
func ApplyTurnBudget(r Resources, income, expenses int) (Resources, int) {
	out := r.Clone()
	delta := income - expenses
	out.Balance += delta
	return out, delta
}

// CommitSavings moves an already-budgeted amount into savings.
func CommitSavings(r Resources, amount int) Resources {
	out := r.Clone()
	if amount > 0 {
		out.Savings += amount
	}
	return out
}

// AccrueInterest grows outstanding debt by the periodic rate. The result
// is rounded half-up to the nearest dollar so repeated accrual is
// reproducible: 3000 at 2% becomes exactly 3060.
func AccrueInterest(r Resources, rate float64) Resources {
	out := r.Clone()
	if out.Debt <= 0 || rate <= 0 {
		return out
	}
	out.Debt = int(math.Floor(float64(out.Debt)*(1+rate) + 0.5))
	return out
}

// RecoverGauges raises every gauge below max by recoveryDelta, clamped to
// GaugeMax. Gauges already at max are unaffected.
func RecoverGauges(r Resources, recoveryDelta int) Resources {
	out := r.Clone()
	if recoveryDelta <= 0 {
		return out
	}
	for name, v := range out.Gauges {
		if v < GaugeMax {
			out.Gauges[name] = clampGauge(v + recoveryDelta)
		}
	}
	return out
}

// ApplyEventOutcome applies a signed delta to exactly the fields it
// names. Balances, savings, and debt are clamped at zero: an event can
// drain a resource to empty but never below. Gauges clamp to [0, GaugeMax].
func ApplyEventOutcome(r Resources, d catalog.Delta) Resources {
	out := r.Clone()

	out.Balance = clampFloor(out.Balance + d.Balance)
	out.Savings = clampFloor(out.Savings + d.Savings)
	out.Debt = clampFloor(out.Debt + d.Debt)

	for name, dv := range d.Gauges {
		if cur, ok := out.Gauges[name]; ok {
			out.Gauges[name] = clampGauge(cur + dv)
		}
	}
	return out
}

func clampGauge(v int) int {
	if v < 0 {
		return 0
	}
	if v > GaugeMax {
		return GaugeMax
	}
	return v
}

func clampFloor(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
