package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted editing session: an initial scene followed by raw
// input events in screen coordinates.
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description,omitempty"`
	View        *ScenarioView   `yaml:"view,omitempty"`
	Blocks      []ScenarioBlock `yaml:"blocks"`
	Connections []ScenarioLink  `yaml:"connections,omitempty"`
	Events      []ScenarioEvent `yaml:"events,omitempty"`
}

type ScenarioView struct {
	PanX  float64 `yaml:"pan_x"`
	PanY  float64 `yaml:"pan_y"`
	Scale float64 `yaml:"scale"`
}

type ScenarioLink struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

type ScenarioBlock struct {
	Type string  `yaml:"type"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
}

// ScenarioEvent kinds: down, move, up, cancel, wheel, flush. At is
// milliseconds from the start of the session.
type ScenarioEvent struct {
	Kind  string  `yaml:"kind"`
	X     float64 `yaml:"x,omitempty"`
	Y     float64 `yaml:"y,omitempty"`
	Ticks float64 `yaml:"ticks,omitempty"`
	At    int     `yaml:"at,omitempty"`
}

var scenarioEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes YAML strictly; unknown fields are rejected.
func ParseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := sc.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &sc, nil
}

func (sc *Scenario) validate() error {
	if sc.Name == "" {
		return fmt.Errorf("name is required")
	}
	for i, b := range sc.Blocks {
		if _, ok := ParseBlockType(b.Type); !ok {
			return fmt.Errorf("block %d: unknown type %q", i+1, b.Type)
		}
	}
	for i, ev := range sc.Events {
		switch ev.Kind {
		case "down", "move", "up", "cancel", "wheel", "flush":
		default:
			return fmt.Errorf("event %d: unknown kind %q", i+1, ev.Kind)
		}
	}
	if sc.View != nil && sc.View.Scale <= 0 {
		return fmt.Errorf("view scale must be positive")
	}
	return nil
}

// Run builds the scene and feeds every event through a new editor. Blocks get
// ids 1..n in file order. Rejected connections are not an error.
func (sc *Scenario) Run(opts EditorOptions) *Editor {
	editor := NewEditor(NewStore(opts.Logger), opts)
	store := editor.Store()
	for _, b := range sc.Blocks {
		t, _ := ParseBlockType(b.Type)
		store.AddBlock(t, b.X, b.Y)
	}
	for _, c := range sc.Connections {
		store.Connect(c.From, c.To)
	}
	if sc.View != nil {
		editor.SetView(Transform{PanX: sc.View.PanX, PanY: sc.View.PanY, Scale: sc.View.Scale})
	}

	for _, ev := range sc.Events {
		at := scenarioEpoch.Add(time.Duration(ev.At) * time.Millisecond)
		switch ev.Kind {
		case "down":
			editor.PointerDown(editor.PointerAt(ev.X, ev.Y, at))
		case "move":
			editor.PointerMove(editor.PointerAt(ev.X, ev.Y, at))
		case "up":
			editor.PointerUp(editor.PointerAt(ev.X, ev.Y, at))
		case "cancel":
			editor.PointerCancel()
		case "wheel":
			editor.Wheel(WheelEvent{X: ev.X, Y: ev.Y, Ticks: ev.Ticks})
		case "flush":
			editor.Flush(at)
		}
	}
	return editor
}
