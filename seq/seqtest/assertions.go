package seqtest

import (
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/lazyseq/seq"
)

// AssertionError is returned by the non-testing assertion functions
// when a sequence property does not hold. It carries enough context
// to diagnose the failure without re-running the drain.
type AssertionError struct {
	Type     string        // assertion type for categorization
	Expected string        // human-readable expected outcome
	Actual   string        // human-readable actual outcome
	Trace    []AccessEvent // monitor trace at failure time, if available
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nAccess trace:\n")
		for _, event := range e.Trace {
			if event.Kind == AccessAt {
				fmt.Fprintf(&buf, "  [%d] at pos=%d\n", event.Seq, event.Pos)
			} else {
				fmt.Fprintf(&buf, "  [%d] len\n", event.Seq)
			}
		}
	}

	return buf.String()
}

// Capable is the capability-reporting part of a sequence, split out
// so capability assertions work across element types.
type Capable interface {
	Capability() seq.Capability
}

// CheckCapability verifies a node's structural capability tag.
func CheckCapability(s Capable, want seq.Capability) error {
	if got := s.Capability(); got != want {
		return &AssertionError{
			Type:     "capability",
			Expected: want.String(),
			Actual:   got.String(),
		}
	}
	return nil
}

// CheckElements drains the sequence and verifies it yields exactly
// want, in order.
func CheckElements[T comparable](s *seq.Sequence[T], want []T) error {
	got := s.ToSlice()
	if !slices.Equal(got, want) {
		return &AssertionError{
			Type:     "elements",
			Expected: fmt.Sprintf("%v", want),
			Actual:   fmt.Sprintf("%v", got),
		}
	}
	return nil
}

// CheckMinimalReads verifies that a monitored source was read at
// exactly the expected number of distinct positions, attaching the
// access trace to the failure for debugging.
func CheckMinimalReads[T any](m *MonitoredSlice[T], want int) error {
	if got := m.DistinctReads(); got != want {
		return &AssertionError{
			Type:     "minimal_reads",
			Expected: fmt.Sprintf("%d distinct positions", want),
			Actual:   fmt.Sprintf("%d distinct positions %v", got, m.Positions()),
			Trace:    m.Trace(),
		}
	}
	return nil
}

// AssertCapability is CheckCapability wired into a test.
func AssertCapability(t testing.TB, s Capable, want seq.Capability) bool {
	t.Helper()
	if err := CheckCapability(s, want); err != nil {
		return assert.Fail(t, err.Error())
	}
	return true
}

// AssertElements is CheckElements wired into a test.
func AssertElements[T comparable](t testing.TB, s *seq.Sequence[T], want []T) bool {
	t.Helper()
	if err := CheckElements(s, want); err != nil {
		return assert.Fail(t, err.Error())
	}
	return true
}

// AssertMinimalReads is CheckMinimalReads wired into a test.
func AssertMinimalReads[T any](t testing.TB, m *MonitoredSlice[T], want int) bool {
	t.Helper()
	if err := CheckMinimalReads(m, want); err != nil {
		return assert.Fail(t, err.Error())
	}
	return true
}

// AssertIndexes verifies the index sequence a recorder observed.
func AssertIndexes[T any](t testing.TB, r *IndexRecorder[T], want []int) bool {
	t.Helper()
	if got := r.Indexes(); !slices.Equal(got, want) {
		return assert.Fail(t, (&AssertionError{
			Type:     "index_sequence",
			Expected: fmt.Sprintf("%v", want),
			Actual:   fmt.Sprintf("%v", got),
		}).Error())
	}
	return true
}
