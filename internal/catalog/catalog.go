// Package catalog holds the static input tables for the simulations:
// randomizable life events, reward tasks, and monthly expense options.
// The engine treats these as read-only input supplied at session start.
package catalog

import (
	"encoding/json"
	"fmt"
)

// Delta is a signed change to the resource model. Zero fields leave the
// corresponding gauge untouched.
type Delta struct {
	Balance int            `json:"balance,omitempty"`
	Savings int            `json:"savings,omitempty"`
	Debt    int            `json:"debt,omitempty"`
	Gauges  map[string]int `json:"gauges,omitempty"`
}

// Choice is one of the mutually exclusive responses to an event.
type Choice struct {
	ChoiceID string `json:"choice_id"`
	Label    string `json:"label"`
	Delta    Delta  `json:"delta"`
}

// EventEntry is an immutable catalog entry for a randomizable event.
type EventEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	// Cost is the headline dollar amount shown to the player. The actual
	// resource consequences live on the choices.
	Cost int `json:"cost"`

	// Repeatable entries may fire more than once per session. Default is
	// single-use.
	Repeatable bool `json:"repeatable,omitempty"`

	Choices []Choice `json:"choices"`
}

// TaskEntry is a completable reward task for the earn-and-save simulation.
type TaskEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Reward   int    `json:"reward"`
	Category string `json:"category"`
}

// ExpenseEntry is a monthly expense option for the budget simulation.
// Required expenses cannot be deselected by the player.
type ExpenseEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Amount   int    `json:"amount"`
	Required bool   `json:"required,omitempty"`
}

// ParseEvents decodes and validates an event catalog from JSON.
// The input must be a JSON array of event entries.
func ParseEvents(data []byte) ([]EventEntry, error) {
	if err := validateDocument(eventCatalogSchema, data); err != nil {
		return nil, fmt.Errorf("event catalog: %w", err)
	}

	var entries []EventEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("event catalog: %w", err)
	}

	if err := checkEvents(entries); err != nil {
		return nil, fmt.Errorf("event catalog: %w", err)
	}
	return entries, nil
}

// ParseTasks decodes and validates a task catalog from JSON.
func ParseTasks(data []byte) ([]TaskEntry, error) {
	if err := validateDocument(taskCatalogSchema, data); err != nil {
		return nil, fmt.Errorf("task catalog: %w", err)
	}

	var entries []TaskEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("task catalog: %w", err)
	}

	seen := make(map[string]bool, len(entries))
	for _, t := range entries {
		if seen[t.ID] {
			return nil, fmt.Errorf("task catalog: duplicate id %q", t.ID)
		}
		seen[t.ID] = true
		if t.Reward < 0 {
			return nil, fmt.Errorf("task catalog: task %q has negative reward", t.ID)
		}
	}
	return entries, nil
}

// checkEvents enforces the semantic rules the JSON Schema cannot express.
func checkEvents(entries []EventEntry) error {
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			return fmt.Errorf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true

		if e.Cost < 0 {
			return fmt.Errorf("event %q has negative cost", e.ID)
		}
		if len(e.Choices) == 0 {
			return fmt.Errorf("event %q has no choices", e.ID)
		}

		choiceIDs := make(map[string]bool, len(e.Choices))
		for _, c := range e.Choices {
			if choiceIDs[c.ChoiceID] {
				return fmt.Errorf("event %q has duplicate choice %q", e.ID, c.ChoiceID)
			}
			choiceIDs[c.ChoiceID] = true
		}
	}
	return nil
}
