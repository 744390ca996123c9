package seq

// Capability describes how a sequence node may be evaluated.
//
// The tag is computed structurally when the node is built: a source
// wrapped from an indexable collection starts Indexable, and each
// operator either preserves or downgrades the upstream tag. It is
// never derived by probing at drain time.
type Capability int

const (
	// Indexable nodes have a known length and support positional
	// access through Get without traversing earlier elements.
	Indexable Capability = iota + 1

	// IterableOnly nodes support forward traversal only. Filter
	// produces IterableOnly output even over an Indexable upstream
	// because the surviving length is unknown without a full scan.
	IterableOnly
)

// String returns the capability name for logs and assertion messages.
func (c Capability) String() string {
	switch c {
	case Indexable:
		return "indexable"
	case IterableOnly:
		return "iterable-only"
	default:
		return "unknown"
	}
}
