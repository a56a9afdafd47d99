package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/finzo/internal/sim"
)

// Debrief is the coaching summary shown after a session.
type Debrief struct {
	// Message is a short encouraging recap of how the session went.
	Message string `json:"message"`

	// Tips are one to three concrete money habits to try next time.
	Tips []string `json:"tips"`
}

var debriefSchema = &Schema{
	Name:        "session-debrief",
	Description: "Coaching recap of a finished money game session",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "Two or three encouraging sentences about the session",
			},
			"tips": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
				"maxItems": 3,
			},
		},
		"required":             []any{"message", "tips"},
		"additionalProperties": false,
	},
}

const debriefSystem = `You are a friendly money coach for kids aged 8-12 playing a
budgeting game. Speak simply and warmly. Celebrate what went well before
suggesting improvements. Never mention real financial products, never
shame the player, and keep every tip something a kid could actually do
in the next game session.`

// Service generates post-session debriefs.
type Service struct {
	provider Provider
	timeout  time.Duration
}

// NewService creates a debrief service. A zero timeout falls back to the
// config default.
func NewService(p Provider, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Service{provider: p, timeout: timeout}
}

// Debrief summarizes a completed session as kid-friendly coaching.
func (s *Service) Debrief(ctx context.Context, sess sim.Session) (*Debrief, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.provider.Generate(ctx, Request{
		System:      debriefSystem,
		Prompt:      buildDigest(sess),
		Schema:      debriefSchema,
		MaxTokens:   512,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, fmt.Errorf("generate debrief: %w", err)
	}

	var d Debrief
	if err := json.Unmarshal(resp.Content, &d); err != nil {
		return nil, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return &d, nil
}

// buildDigest flattens a session into a prompt the model can coach from.
func buildDigest(sess sim.Session) string {
	var b strings.Builder

	fmt.Fprintf(&b, "The player just finished a %s game.\n", sess.Mode)
	fmt.Fprintf(&b, "Turns played: %d of %d. Final score: %d.\n",
		sess.TurnIndex, sess.MaxTurns, sess.Score)
	fmt.Fprintf(&b, "Final money: balance %d, savings %d, debt %d.\n",
		sess.Resources.Balance, sess.Resources.Savings, sess.Resources.Debt)

	if len(sess.Resources.Gauges) > 0 {
		names := make([]string, 0, len(sess.Resources.Gauges))
		for name := range sess.Resources.Gauges {
			names = append(names, name)
		}
		sort.Strings(names)
		parts := make([]string, 0, len(names))
		for _, name := range names {
			parts = append(parts, fmt.Sprintf("%s %d/100", name, sess.Resources.Gauges[name]))
		}
		fmt.Fprintf(&b, "Wellbeing: %s.\n", strings.Join(parts, ", "))
	}

	totalSaved := 0
	eventsFaced := 0
	for _, turn := range sess.History {
		totalSaved += turn.Saved
		if turn.Event != nil {
			eventsFaced++
		}
	}
	fmt.Fprintf(&b, "Saved %d in total and handled %d surprise events.\n", totalSaved, eventsFaced)

	if len(sess.TasksDone) > 0 {
		fmt.Fprintf(&b, "Completed %d earning tasks.\n", len(sess.TasksDone))
	}

	b.WriteString("Write the debrief for this player.")
	return b.String()
}
