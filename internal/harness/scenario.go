package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/msgcore/internal/config"
	"github.com/roach88/msgcore/internal/ir"
)

// Scenario is one cross-process conformance scenario.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description"`

	// FlowID is handed to every wake. Defaults to "test-flow-default".
	FlowID string `yaml:"flow_id,omitempty"`

	// History overrides the store's retention policy. Nil disables both caps.
	History *HistoryPolicy `yaml:"history,omitempty"`

	Steps      []Step      `yaml:"steps"`
	Assertions []Assertion `yaml:"assertions"`
}

// HistoryPolicy mirrors the history section of the config file.
type HistoryPolicy struct {
	MaxRecords int             `yaml:"max_records"`
	MaxAge     config.Duration `yaml:"max_age"`
}

// Step does exactly one thing.
type Step struct {
	// Wake replays the change log for the named process kind.
	Wake ir.ProcessKind `yaml:"wake,omitempty"`

	Write   *WriteStep   `yaml:"write,omitempty"`
	Publish *PublishStep `yaml:"publish,omitempty"`

	// Advance moves the shared clock forward.
	Advance config.Duration `yaml:"advance,omitempty"`
}

// WriteStep commits one store change authored by Process.
type WriteStep struct {
	Process ir.ProcessKind `yaml:"process"`
	Op      string         `yaml:"op"`
	Owned   string         `yaml:"owned"`
	UID     string         `yaml:"uid,omitempty"`
	Contact string         `yaml:"contact,omitempty"`
	Name    string         `yaml:"name,omitempty"`
}

// Write operations.
const (
	OpInsertMessage    = "insert_message"
	OpMarkUploaded     = "mark_uploaded"
	OpUploadMessage    = "upload_message"
	OpDeleteMessage    = "delete_message"
	OpPutOwnedIdentity = "put_owned_identity"
	OpPutContact       = "put_contact"
	OpDeleteContact    = "delete_contact"
)

// PublishStep raises one engine event inside Process.
type PublishStep struct {
	Process   ir.ProcessKind `yaml:"process"`
	Event     string         `yaml:"event"`
	Owned     string         `yaml:"owned,omitempty"`
	Contact   string         `yaml:"contact,omitempty"`
	ServerURL string         `yaml:"server_url,omitempty"`
}

// Assertion checks one observation once every engine has closed.
type Assertion struct {
	// Type is one of notifications, cursor, history_count or lost.
	Type string `yaml:"type"`

	Process ir.ProcessKind `yaml:"process,omitempty"`

	// Names is the expected notification multiset (notifications).
	Names []string `yaml:"names,omitempty"`

	// Value is the expected saved cursor (cursor).
	Value *int64 `yaml:"value,omitempty"`

	// Count is the expected change log size (history_count) or number of
	// positions lost to truncation (lost).
	Count *int64 `yaml:"count,omitempty"`
}

// Assertion types.
const (
	AssertNotifications = "notifications"
	AssertCursor        = "cursor"
	AssertHistoryCount  = "history_count"
	AssertLost          = "lost"
)

var writeOps = map[string]bool{
	OpInsertMessage:    true,
	OpMarkUploaded:     true,
	OpUploadMessage:    true,
	OpDeleteMessage:    true,
	OpPutOwnedIdentity: true,
	OpPutContact:       true,
	OpDeleteContact:    true,
}

// LoadScenario reads and validates a scenario file. Unknown fields are
// rejected.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	if s.History != nil && (s.History.MaxRecords < 0 || s.History.MaxAge.Duration < 0) {
		return fmt.Errorf("history limits must be non-negative")
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}
	return nil
}

func validateStep(step Step) error {
	set := 0
	if step.Wake != "" {
		set++
		if err := step.Wake.Validate(); err != nil {
			return err
		}
	}
	if w := step.Write; w != nil {
		set++
		if err := w.Process.Validate(); err != nil {
			return fmt.Errorf("write: %w", err)
		}
		if !writeOps[w.Op] {
			return fmt.Errorf("write: unknown op %q", w.Op)
		}
		if w.Owned == "" {
			return fmt.Errorf("write: owned is required")
		}
		switch w.Op {
		case OpInsertMessage, OpMarkUploaded, OpUploadMessage, OpDeleteMessage:
			if w.UID == "" {
				return fmt.Errorf("write: uid is required for %s", w.Op)
			}
		case OpPutContact, OpDeleteContact:
			if w.Contact == "" {
				return fmt.Errorf("write: contact is required for %s", w.Op)
			}
		}
	}
	if p := step.Publish; p != nil {
		set++
		if err := p.Process.Validate(); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
		if _, err := buildEvent(p); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
	}
	if step.Advance.Duration != 0 {
		set++
		if step.Advance.Duration < 0 {
			return fmt.Errorf("advance must be positive")
		}
	}
	if set != 1 {
		return fmt.Errorf("exactly one of wake, write, publish or advance is required")
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertNotifications:
		return a.Process.Validate()
	case AssertCursor:
		if a.Value == nil {
			return fmt.Errorf("value is required for cursor")
		}
		return a.Process.Validate()
	case AssertLost:
		if a.Count == nil {
			return fmt.Errorf("count is required for lost")
		}
		return a.Process.Validate()
	case AssertHistoryCount:
		if a.Count == nil {
			return fmt.Errorf("count is required for history_count")
		}
		return nil
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}
