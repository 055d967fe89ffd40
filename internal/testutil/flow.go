package testutil

// FixedFlowGenerator returns the same flow id every time.
//
// Unlike engine.FixedGenerator, which hands out ids in sequence and panics
// when they run out, this generator never runs out. Tests that trigger an
// unknown number of wakes use it.
//
// FixedFlowGenerator is stateless and safe for concurrent use.
type FixedFlowGenerator struct {
	id string
}

// NewFixedFlowGenerator creates a generator for id.
// If id is empty, Generate returns "test-flow-default".
func NewFixedFlowGenerator(id string) *FixedFlowGenerator {
	if id == "" {
		id = "test-flow-default"
	}
	return &FixedFlowGenerator{id: id}
}

// Generate returns the fixed flow id.
func (g *FixedFlowGenerator) Generate() string {
	return g.id
}
