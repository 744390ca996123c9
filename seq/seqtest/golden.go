package seqtest

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RenderTrace formats a monitor's access trace as deterministic text
// for golden-file comparison. The monitor's DeterministicClock keeps
// the event numbering stable across runs.
func RenderTrace[T any](name string, m *MonitoredSlice[T]) []byte {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "trace: %s\n", name)
	fmt.Fprintf(&buf, "len reads: %d\n", m.LenReads())
	fmt.Fprintf(&buf, "distinct positions: %d %v\n", m.DistinctReads(), m.Positions())
	for _, event := range m.Trace() {
		if event.Kind == AccessAt {
			fmt.Fprintf(&buf, "[%d] at pos=%d\n", event.Seq, event.Pos)
		} else {
			fmt.Fprintf(&buf, "[%d] len\n", event.Seq)
		}
	}

	return buf.Bytes()
}

// VerifyTrace compares a monitor's rendered trace against the golden
// file testdata/{name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./seq/seqtest -update
func VerifyTrace[T any](t *testing.T, name string, m *MonitoredSlice[T]) {
	t.Helper()
	g := goldie.New(t)
	g.Assert(t, name, RenderTrace(name, m))
}
