// Package pipeline loads declarative sequence pipelines from YAML
// documents, validates them against an embedded CUE schema, and
// compiles them into lazy sequence chains.
//
// A pipeline document names a source (an inline value list or a
// stored dataset reference) and an ordered list of operators drawn
// from a fixed registry. Compilation is as lazy as the engine
// itself: Build wires up the chain without evaluating anything, and
// every unknown operator or function is a load-time error, never an
// evaluation-time one.
package pipeline
