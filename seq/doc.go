// Package seq implements a lazy sequence engine over fixed-length
// indexable collections and Go 1.23 push iterators.
//
// A Sequence is an immutable description of a deferred computation:
// building a chain of operators (Map, Filter, Take, ...) performs no
// element reads and calls no user functions. Evaluation happens only
// when a drain is invoked - Each, Get, ToSlice, or Async.
//
// ARCHITECTURE:
//
// Capability tags:
// Every node carries a Capability computed structurally at
// construction. An Indexable node has a known length and supports
// direct positional access through Get without traversal; an
// IterableOnly node (anything downstream of Filter or TakeWhile)
// supports forward traversal only. Map, Take, Skip and Identity
// preserve the upstream tag.
//
// Pull minimality:
// Drains read no more source positions than structurally required.
// Each combined with Take(n) stops upstream pulls once n elements
// have been yielded, and Get through a pure Map chain reads exactly
// one source position. The seqtest package provides an access
// monitor that makes these guarantees checkable.
//
// Cooperative async path:
// Async hands the drain to a single-goroutine Scheduler that pulls
// one batch per step and yields control between steps, so concurrent
// handles interleave deterministically. Early stop (Handle.Cancel or
// a consumer returning false) takes effect at the next pull boundary
// and guarantees no further source reads past it.
//
// Nodes are immutable after construction and may be shared read-only
// by independent drains; each drain owns its own traversal state. A
// node is meant to have a single downstream consumer - build a fresh
// chain per shape rather than fanning out from one node.
package seq
