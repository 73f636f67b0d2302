package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection reports an invalid connection attempt: occupied slot,
	// kind mismatch, cross-graph wiring, or mutation of a frozen graph.
	ErrConnection = errors.New("connection error")

	// ErrStreamReused reports a second consumption of a single-use stream.
	ErrStreamReused = fmt.Errorf("%w: stream already consumed", ErrConnection)

	// ErrNoFreeSlot reports that a node has no remaining compatible input.
	ErrNoFreeSlot = errors.New("no free slot")

	// ErrCyclicGraph reports a dependency cycle discovered at render time.
	ErrCyclicGraph = errors.New("cyclic graph")

	// ErrDanglingOutput reports a declared filter output that was never
	// connected before rendering.
	ErrDanglingOutput = errors.New("dangling filter output")

	// ErrUnresolvedReference reports a stream that cannot be labeled at
	// render time, such as a source stream never registered with an input
	// list or a filter input that was never connected.
	ErrUnresolvedReference = errors.New("unresolved reference")
)
