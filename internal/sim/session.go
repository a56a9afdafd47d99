package sim

import "github.com/abhisek/finzo/internal/catalog"

// Phase is the lifecycle phase of a session.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseActive
	PhasePendingEvent
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseActive:
		return "active"
	case PhasePendingEvent:
		return "pending-event"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// EventOutcome records a resolved event on a turn.
type EventOutcome struct {
	EventID  string
	ChoiceID string
}

// TurnOutcome is the append-only history record for one resolved turn.
// Resources is the state after the turn (and after any event resolved
// between this turn and the next). Never mutated once the next turn
// begins.
type TurnOutcome struct {
	TurnIndex  int
	Income     int
	Expenses   int
	Saved      int
	ScoreDelta int
	Event      *EventOutcome
	Resources  Resources
}

// Report is the completion record for a finished session. Delivered and
// AckMessage reflect the single outbound call to the rewards service.
type Report struct {
	SessionID         string
	Score             int
	TimePlayedSeconds int
	Delivered         bool
	AckMessage        string
	DeliveryError     string
}

// Session is the immutable snapshot returned from every controller
// operation. The presentation layer renders it; it never reaches back
// into the engine.
type Session struct {
	SessionID      string
	Mode           Mode
	TurnIndex      int // turns resolved so far, 0..MaxTurns
	MaxTurns       int
	ClockRemaining int
	Phase          Phase
	Resources      Resources
	Score          int

	// PendingEvent is set exactly while Phase == PhasePendingEvent.
	PendingEvent *catalog.EventEntry

	// EarnedThisTurn accumulates task rewards to be credited as income
	// when the current turn closes.
	EarnedThisTurn int

	// TasksDone lists single-use tasks already completed this session.
	TasksDone []string

	History []TurnOutcome

	// Report is set once the session completes.
	Report *Report
}

// clone deep-copies the snapshot so callers can never alias engine state.
func (s Session) clone() Session {
	out := s
	out.Resources = s.Resources.Clone()

	if s.PendingEvent != nil {
		ev := *s.PendingEvent
		ev.Choices = append([]catalog.Choice(nil), s.PendingEvent.Choices...)
		out.PendingEvent = &ev
	}

	out.TasksDone = append([]string(nil), s.TasksDone...)

	out.History = make([]TurnOutcome, len(s.History))
	for i, h := range s.History {
		out.History[i] = h
		out.History[i].Resources = h.Resources.Clone()
		if h.Event != nil {
			ev := *h.Event
			out.History[i].Event = &ev
		}
	}

	if s.Report != nil {
		r := *s.Report
		out.Report = &r
	}
	return out
}
