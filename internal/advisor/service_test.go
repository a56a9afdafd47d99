package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/finzo/internal/sim"
)

func sampleSession() sim.Session {
	return sim.Session{
		SessionID: "sess-1",
		Mode:      sim.ModeBudget,
		TurnIndex: 6,
		MaxTurns:  6,
		Score:     74,
		Resources: sim.Resources{
			Balance: 3100,
			Savings: 2400,
			Debt:    900,
			Gauges:  map[string]int{"mood": 65, "energy": 80},
		},
		History: []sim.TurnOutcome{
			{TurnIndex: 1, Saved: 400},
			{TurnIndex: 2, Saved: 400, Event: &sim.EventOutcome{EventID: "bike-repair", ChoiceID: "pay"}},
			{TurnIndex: 3, Saved: 400},
		},
	}
}

func TestDebrief(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"message":"You saved every month, amazing!","tips":["Try paying down debt earlier"]}`),
	})
	svc := NewService(mock, time.Second)

	d, err := svc.Debrief(context.Background(), sampleSession())
	if err != nil {
		t.Fatalf("Debrief() error = %v", err)
	}
	if d.Message == "" || len(d.Tips) != 1 {
		t.Errorf("debrief = %+v", d)
	}

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "session-debrief" {
		t.Errorf("schema = %+v", req.Schema)
	}
	if req.System == "" {
		t.Error("system prompt is empty")
	}
	for _, want := range []string{"budget", "74", "savings 2400", "debt 900", "1 surprise events"} {
		if !strings.Contains(req.Prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, req.Prompt)
		}
	}
}

func TestDebriefProviderFailure(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Err: &ErrProviderUnavailable{Err: errors.New("down")},
	})
	svc := NewService(mock, time.Second)

	if _, err := svc.Debrief(context.Background(), sampleSession()); err == nil {
		t.Fatal("expected error")
	}
}

func TestDebriefMalformedContent(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`not json at all`),
	})
	svc := NewService(mock, time.Second)

	_, err := svc.Debrief(context.Background(), sampleSession())
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("Debrief() error = %v, want *ErrInvalidResponse", err)
	}
}
