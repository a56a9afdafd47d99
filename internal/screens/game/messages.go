package game

import (
	"time"
)

// timerTickMsg is sent every second to drive the session clock.
type timerTickMsg time.Time

// startFailedMsg is sent when the session could not be started.
type startFailedMsg struct {
	Err error
}

// sessionEndMsg triggers the session end flow.
type sessionEndMsg struct{}
