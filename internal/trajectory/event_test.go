package trajectory

import (
	"encoding/json"
	"testing"

	"github.com/daniacca/nastrand/internal/kinetics"
	"github.com/daniacca/nastrand/internal/nucleic"
)

func newTestEntry() *kinetics.Entry {
	em := &nucleic.SimpleEnergyModel{
		TemperatureK: 310.15,
		BaseRate:     1.0,
		PerPairBonus: -1.5,
	}
	en := kinetics.New(em, nil)
	entry := en.Add(nucleic.NewSingleStrand(1, "a", "AAAA", em))
	en.Initialize()
	return entry
}

func TestEventKindName(t *testing.T) {
	cases := []struct {
		kind kinetics.EventKind
		want string
	}{
		{kinetics.EventMove, "move"},
		{kinetics.EventDissociation, "dissociation"},
		{kinetics.EventJoin, "join"},
		{kinetics.EventKind(99), "unknown"},
	}
	for _, c := range cases {
		if got := eventKindName(c.kind); got != c.want {
			t.Errorf("eventKindName(%v) = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestNewStepEvent_MoveHasEntryOnly(t *testing.T) {
	entry := newTestEntry()
	result := kinetics.StepResult{Kind: kinetics.EventMove, Entry: entry}

	ev := NewStepEvent("run-1", 3, 1.5, result, 42.0, 1000)

	if ev.RunID != "run-1" || ev.Step != 3 || ev.SimTime != 1.5 || ev.Timestamp != 1000 {
		t.Fatalf("unexpected event header: %+v", ev)
	}
	if ev.Kind != "move" {
		t.Errorf("Kind = %q, want move", ev.Kind)
	}
	if ev.Entry == nil {
		t.Fatal("Entry should be set for a move")
	}
	if ev.NewEntry != nil {
		t.Error("NewEntry should be nil for a move")
	}
	if ev.TotalFlux != 42.0 {
		t.Errorf("TotalFlux = %v, want 42.0", ev.TotalFlux)
	}
}

func TestNewStepEvent_DissociationHasBothEntries(t *testing.T) {
	entry := newTestEntry()
	newEntry := newTestEntry()
	result := kinetics.StepResult{Kind: kinetics.EventDissociation, Entry: entry, NewEntry: newEntry}

	ev := NewStepEvent("run-1", 4, 2.0, result, 7.0, 1001)

	if ev.Kind != "dissociation" {
		t.Errorf("Kind = %q, want dissociation", ev.Kind)
	}
	if ev.Entry == nil || ev.NewEntry == nil {
		t.Fatal("both Entry and NewEntry should be set for a dissociation")
	}
}

func TestNewStepEvent_JoinHasNoEntries(t *testing.T) {
	result := kinetics.StepResult{Kind: kinetics.EventJoin}

	ev := NewStepEvent("run-1", 5, 3.0, result, 1.0, 1002)

	if ev.Kind != "join" {
		t.Errorf("Kind = %q, want join", ev.Kind)
	}
	if ev.Entry != nil || ev.NewEntry != nil {
		t.Error("a join should carry no single representative entry")
	}
}

func TestStepEvent_JSONRoundTrip(t *testing.T) {
	result := kinetics.StepResult{Kind: kinetics.EventMove, Entry: newTestEntry()}
	ev := NewStepEvent("run-2", 1, 0.25, result, 3.5, 500)

	data, err := ev.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var decoded StepEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if decoded.RunID != ev.RunID || decoded.Step != ev.Step || decoded.Kind != ev.Kind {
		t.Errorf("round trip mismatch: got %+v, want %+v", decoded, ev)
	}
}

func TestStepEvent_JSONOmitsNilEntries(t *testing.T) {
	result := kinetics.StepResult{Kind: kinetics.EventJoin}
	ev := NewStepEvent("run-3", 2, 0.5, result, 9.0, 501)

	data, err := ev.JSON()
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if _, ok := raw["entry"]; ok {
		t.Error("entry should be omitted when nil")
	}
	if _, ok := raw["new_entry"]; ok {
		t.Error("new_entry should be omitted when nil")
	}
}
