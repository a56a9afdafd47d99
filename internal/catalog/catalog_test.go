package catalog

import (
	"strings"
	"testing"
)

func TestParseEventsValid(t *testing.T) {
	data := []byte(`[
		{
			"id": "flat-tire",
			"title": "Flat tire on the way home",
			"cost": 40,
			"choices": [
				{"choice_id": "pay", "label": "Pay for a patch", "delta": {"balance": -40}},
				{"choice_id": "push", "label": "Push the bike home", "delta": {"gauges": {"energy": -10}}}
			]
		}
	]`)

	entries, err := ParseEvents(data)
	if err != nil {
		t.Fatalf("ParseEvents() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}

	e := entries[0]
	if e.ID != "flat-tire" || e.Cost != 40 {
		t.Errorf("entry = %+v", e)
	}
	if len(e.Choices) != 2 {
		t.Fatalf("len(choices) = %d, want 2", len(e.Choices))
	}
	if e.Choices[0].Delta.Balance != -40 {
		t.Errorf("choice delta balance = %d, want -40", e.Choices[0].Delta.Balance)
	}
	if e.Choices[1].Delta.Gauges["energy"] != -10 {
		t.Errorf("choice delta gauge = %d, want -10", e.Choices[1].Delta.Gauges["energy"])
	}
}

func TestParseEventsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "not json",
			data: `{{`,
			want: "invalid JSON",
		},
		{
			name: "missing choices",
			data: `[{"id": "a", "title": "A", "cost": 10, "choices": []}]`,
			want: "schema validation failed",
		},
		{
			name: "negative cost",
			data: `[{"id": "a", "title": "A", "cost": -5, "choices": [{"choice_id": "x", "label": "X"}]}]`,
			want: "schema validation failed",
		},
		{
			name: "duplicate event ids",
			data: `[
				{"id": "a", "title": "A", "cost": 1, "choices": [{"choice_id": "x", "label": "X"}]},
				{"id": "a", "title": "B", "cost": 2, "choices": [{"choice_id": "y", "label": "Y"}]}
			]`,
			want: `duplicate id "a"`,
		},
		{
			name: "duplicate choice ids",
			data: `[{"id": "a", "title": "A", "cost": 1, "choices": [
				{"choice_id": "x", "label": "X"},
				{"choice_id": "x", "label": "Y"}
			]}]`,
			want: `duplicate choice "x"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEvents([]byte(tt.data))
			if err == nil {
				t.Fatal("ParseEvents() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want substring %q", err, tt.want)
			}
		})
	}
}

func TestParseTasks(t *testing.T) {
	data := []byte(`[
		{"id": "dishes", "title": "Wash the dishes", "reward": 5, "category": "home"},
		{"id": "lawn", "title": "Mow the lawn", "reward": 15, "category": "home"}
	]`)

	tasks, err := ParseTasks(data)
	if err != nil {
		t.Fatalf("ParseTasks() error = %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	if tasks[1].Reward != 15 {
		t.Errorf("reward = %d, want 15", tasks[1].Reward)
	}
}

func TestParseTasksDuplicateID(t *testing.T) {
	data := []byte(`[
		{"id": "dishes", "title": "A", "reward": 5},
		{"id": "dishes", "title": "B", "reward": 6}
	]`)
	if _, err := ParseTasks(data); err == nil {
		t.Fatal("ParseTasks() error = nil, want duplicate id error")
	}
}

func TestDefaultCatalogsAreValid(t *testing.T) {
	seen := make(map[string]bool)
	for _, e := range DefaultEvents() {
		if seen[e.ID] {
			t.Errorf("duplicate default event id %q", e.ID)
		}
		seen[e.ID] = true
		if len(e.Choices) == 0 {
			t.Errorf("default event %q has no choices", e.ID)
		}
		if e.Cost < 0 {
			t.Errorf("default event %q has negative cost", e.ID)
		}
	}

	for _, task := range DefaultTasks() {
		if task.Reward <= 0 {
			t.Errorf("default task %q has non-positive reward", task.ID)
		}
	}

	required := 0
	for _, ex := range DefaultExpenses() {
		if ex.Required {
			required++
		}
	}
	if required == 0 {
		t.Error("default expenses have no required entries")
	}
}
