package sim

import (
	"math/rand/v2"

	"github.com/abhisek/finzo/internal/catalog"
)

// Injector decides whether and which event fires at a turn boundary.
// It carries its own random source so tests can force deterministic
// outcomes and production can seed from time or crypto without touching
// the state machine.
type Injector struct {
	rng         *rand.Rand
	probability float64
	cutoff      int
	seen        map[string]bool
}

// NewInjector creates an injector with the given seed, fire probability,
// and final-turn cutoff.
func NewInjector(seed uint64, probability float64, cutoff int) *Injector {
	return &Injector{
		rng:         rand.New(rand.NewPCG(seed, seed)),
		probability: probability,
		cutoff:      cutoff,
		seen:        make(map[string]bool),
	}
}

// Draw returns the event firing during the given upcoming turn, or nil.
// Single-use entries already drawn this session are excluded; no event
// fires within the cutoff window before maxTurns.
func (inj *Injector) Draw(turnIndex, maxTurns int, entries []catalog.EventEntry) *catalog.EventEntry {
	if turnIndex > maxTurns-inj.cutoff {
		return nil
	}
	if inj.probability <= 0 || inj.rng.Float64() >= inj.probability {
		return nil
	}

	var candidates []catalog.EventEntry
	for _, e := range entries {
		if inj.seen[e.ID] && !e.Repeatable {
			continue
		}
		candidates = append(candidates, e)
	}
	if len(candidates) == 0 {
		return nil
	}

	pick := candidates[inj.rng.IntN(len(candidates))]
	inj.seen[pick.ID] = true
	return &pick
}
