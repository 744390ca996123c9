package pipeline

import (
	"fmt"

	"github.com/roach88/lazyseq/seq"
)

// mapFn resolves a named map function. The arg parameter is bound at
// compile time; the returned closure matches the engine's operator
// signature.
func mapFn(name string, arg int64) (func(int64, int) int64, bool) {
	switch name {
	case "double":
		return func(v int64, _ int) int64 { return v * 2 }, true
	case "square":
		return func(v int64, _ int) int64 { return v * v }, true
	case "negate":
		return func(v int64, _ int) int64 { return -v }, true
	case "add":
		return func(v int64, _ int) int64 { return v + arg }, true
	default:
		return nil, false
	}
}

// filterFn resolves a named filter predicate.
func filterFn(name string, arg int64) (func(int64, int) bool, bool) {
	switch name {
	case "even":
		return func(v int64, _ int) bool { return v%2 == 0 }, true
	case "odd":
		return func(v int64, _ int) bool { return v%2 != 0 }, true
	case "positive":
		return func(v int64, _ int) bool { return v > 0 }, true
	case "gt":
		return func(v int64, _ int) bool { return v > arg }, true
	default:
		return nil, false
	}
}

// Build compiles pipeline ops into a lazy chain over src. Building
// reads no elements and calls no functions; unknown ops and fns are
// compile-time LoadErrors. The schema already rejects them for
// documents that went through Parse, but Build guards on its own so
// hand-built pipelines fail just as early.
func Build(p *Pipeline, src *seq.Sequence[int64]) (*seq.Sequence[int64], error) {
	s := src
	for i, op := range p.Ops {
		switch op.Op {
		case "map":
			f, ok := mapFn(op.Fn, op.Arg)
			if !ok {
				return nil, &LoadError{Code: ErrCodeUnknownFn, Message: fmt.Sprintf("ops[%d]: unknown map fn %q", i, op.Fn)}
			}
			s = s.Map(f)

		case "filter":
			pred, ok := filterFn(op.Fn, op.Arg)
			if !ok {
				return nil, &LoadError{Code: ErrCodeUnknownFn, Message: fmt.Sprintf("ops[%d]: unknown filter fn %q", i, op.Fn)}
			}
			s = s.Filter(pred)

		case "take":
			s = s.Take(op.N)

		case "skip":
			s = s.Skip(op.N)

		case "identity":
			s = s.Identity()

		default:
			return nil, &LoadError{Code: ErrCodeUnknownOp, Message: fmt.Sprintf("ops[%d]: unknown op %q", i, op.Op)}
		}
	}
	return s, nil
}
