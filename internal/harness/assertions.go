package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/msgcore/internal/notification"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: expected %s, got %s", e.Type, e.Expected, e.Actual)
}

// Evaluate checks one assertion against a finished result.
func Evaluate(a Assertion, r *Result) error {
	switch a.Type {
	case AssertNotifications:
		return evaluateNotifications(a, r)
	case AssertCursor:
		got, found := r.Cursors[a.Process]
		if !found {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%s cursor %d", a.Process, *a.Value),
				Actual:   "no saved cursor",
			}
		}
		if int64(got) != *a.Value {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%s cursor %d", a.Process, *a.Value),
				Actual:   fmt.Sprintf("%d", got),
			}
		}
		return nil
	case AssertHistoryCount:
		if r.History.Count != *a.Count {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%d records", *a.Count),
				Actual:   fmt.Sprintf("%d", r.History.Count),
			}
		}
		return nil
	case AssertLost:
		if got := r.Lost[a.Process]; got != *a.Count {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%s lost %d", a.Process, *a.Count),
				Actual:   fmt.Sprintf("%d", got),
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// evaluateNotifications compares names as multisets.
func evaluateNotifications(a Assertion, r *Result) error {
	got, ok := r.Notifications[a.Process]
	if !ok {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s to run", a.Process),
			Actual:   "no engine for process",
		}
	}
	want := make([]notification.Name, len(a.Names))
	for i, n := range a.Names {
		want[i] = notification.Name(n)
	}
	slices.Sort(want)
	if !slices.Equal(want, got) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s [%s]", a.Process, joinNames(want)),
			Actual:   fmt.Sprintf("[%s]", joinNames(got)),
		}
	}
	return nil
}

func joinNames(names []notification.Name) string {
	s := make([]string, len(names))
	for i, n := range names {
		s[i] = string(n)
	}
	return strings.Join(s, " ")
}
