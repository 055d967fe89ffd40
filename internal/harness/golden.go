package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/msgcore/internal/ir"
)

// TraceSnapshot is the golden form of a scenario run.
type TraceSnapshot struct {
	ScenarioName string
	Result       *Result
}

// toCanonicalMap converts the snapshot to plain maps and slices, the only
// shapes ir.MarshalCanonical accepts.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	trace := make([]any, len(s.Result.Trace))
	for i, ev := range s.Result.Trace {
		m := map[string]any{
			"step": ev.Step,
			"type": ev.Type,
		}
		if ev.Process != "" {
			m["process"] = string(ev.Process)
		}
		switch ev.Type {
		case TraceWrite:
			m["op"] = ev.Op
			m["head"] = ev.Head
		case TraceWake:
			m["flow_id"] = ev.Wake.FlowID
			m["bootstrapped"] = ev.Wake.Bootstrapped
			m["from"] = ev.Wake.From
			m["to"] = ev.Wake.To
			m["applied"] = ev.Wake.Applied
			m["purged"] = ev.Wake.Purged
			m["lost"] = ev.Wake.Lost
		case TracePublish:
			m["event"] = ev.Event
		case TraceAdvance:
			m["advance"] = ev.Advance
		}
		trace[i] = m
	}

	notifications := make(map[string]any, len(s.Result.Notifications))
	for kind, names := range s.Result.Notifications {
		list := make([]any, len(names))
		for i, n := range names {
			list[i] = string(n)
		}
		notifications[string(kind)] = list
	}
	cursors := make(map[string]any, len(s.Result.Cursors))
	for kind, c := range s.Result.Cursors {
		cursors[string(kind)] = c
	}

	h := s.Result.History
	return map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         trace,
		"notifications": notifications,
		"cursors":       cursors,
		"history": map[string]any{
			"head":              h.Head,
			"oldest":            h.Oldest,
			"count":             h.Count,
			"truncated_through": h.TruncatedThrough,
		},
	}
}

// RunWithGolden runs a scenario, fails the test on any failed assertion, and
// compares the trace with testdata/golden/{scenario.Name}.golden.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()
	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, e := range result.Errors {
		t.Error(e)
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares an existing result with its golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()
	snapshot := TraceSnapshot{ScenarioName: scenarioName, Result: result}
	traceJSON, err := ir.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, traceJSON)
	return nil
}
