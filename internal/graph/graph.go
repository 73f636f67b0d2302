package graph

import (
	"fmt"

	"splice/internal/filters"
	"splice/internal/media"
)

// Graph owns every stream and node of one processing run. It is built
// incrementally by connection calls and frozen by the first render pass.
type Graph struct {
	nodes  []*Node
	frozen bool
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{}
}

// Source declares a new source stream of the given kind. The canonical
// label is assigned later, when the owning input is registered with an
// input list.
func (g *Graph) Source(kind media.Kind, meta *media.Meta) *Stream {
	return &Stream{g: g, kind: kind, meta: meta}
}

// Add declares a filter node with dangling inputs and outputs. Every
// declared output must be connected before the graph renders. Nodes added
// to a frozen graph stay detached: they never join the render and every
// connection attempt on them fails.
func (g *Graph) Add(f filters.Filter) *Node {
	n := &Node{
		g:      g,
		filter: f,
		inputs: make([]*Stream, len(f.InputKinds())),
	}
	outKinds := f.OutputKinds()
	n.outputs = make([]*Stream, len(outKinds))
	for i, kind := range outKinds {
		n.outputs[i] = &Stream{g: g, kind: kind, owner: n, slot: i}
	}
	if !g.frozen {
		g.nodes = append(g.nodes, n)
	}
	return n
}

// Chain adds the given single-input single-output filters as a pipeline
// fed from head and returns the tail stream.
func (g *Graph) Chain(head *Stream, fs ...filters.Filter) (*Stream, error) {
	current := head
	for _, f := range fs {
		if len(f.InputKinds()) != 1 || len(f.OutputKinds()) != 1 {
			return nil, fmt.Errorf("%w: chain filter %s is not single-input single-output",
				ErrConnection, f.FilterName())
		}
		n := g.Add(f)
		if err := current.Connect(n); err != nil {
			return nil, err
		}
		current = n.Output(0)
	}
	return current, nil
}

// Node is a filter vertex in the graph.
type Node struct {
	g       *Graph
	filter  filters.Filter
	inputs  []*Stream
	outputs []*Stream
}

// Filter returns the filter definition carried by the node.
func (n *Node) Filter() filters.Filter {
	return n.filter
}

// Output returns the i-th declared output stream.
func (n *Node) Output(i int) *Stream {
	return n.outputs[i]
}

// OutputCount returns the number of declared outputs.
func (n *Node) OutputCount() int {
	return len(n.outputs)
}

// homogeneousMultiInput reports whether the node expects several inputs
// that all share one kind, such as concat. Kind mismatches on such nodes
// are stream incompatibilities rather than plain wiring mistakes.
func (n *Node) homogeneousMultiInput() bool {
	kinds := n.filter.InputKinds()
	if len(kinds) < 2 {
		return false
	}
	for _, k := range kinds[1:] {
		if k != kinds[0] {
			return false
		}
	}
	return true
}

// connectInput binds a stream to the given input slot and runs metadata
// propagation once the last slot fills.
func (n *Node) connectInput(s *Stream, slot int) error {
	if n.g.frozen {
		return fmt.Errorf("%w: graph is frozen", ErrConnection)
	}
	if s.g != n.g {
		return fmt.Errorf("%w: stream belongs to a different graph", ErrConnection)
	}
	if slot < 0 || slot >= len(n.inputs) {
		return fmt.Errorf("%w: %s has no input slot %d", ErrConnection, n.filter.FilterName(), slot)
	}
	if n.inputs[slot] != nil {
		return fmt.Errorf("%w: %s input slot %d already connected",
			ErrConnection, n.filter.FilterName(), slot)
	}
	if want := n.filter.InputKinds()[slot]; want != s.kind {
		if n.homogeneousMultiInput() {
			return fmt.Errorf("%w: %s expects %s on slot %d, got %s",
				filters.ErrIncompatibleStreams, n.filter.FilterName(), want, slot, s.kind)
		}
		return fmt.Errorf("%w: %s expects %s on slot %d, got %s",
			ErrConnection, n.filter.FilterName(), want, slot, s.kind)
	}
	if err := s.markConsumedBy(n); err != nil {
		return err
	}
	n.inputs[slot] = s
	return n.propagate()
}

// propagate applies the filter's metadata transform once all inputs are
// bound. Unknown metadata on any input propagates as unknown outputs.
func (n *Node) propagate() error {
	metas := make([]*media.Meta, len(n.inputs))
	for i, in := range n.inputs {
		if in == nil {
			return nil
		}
		metas[i] = in.meta
	}
	for _, m := range metas {
		if m == nil {
			return nil
		}
	}
	out, err := n.filter.Transform(metas)
	if err != nil {
		return err
	}
	if len(out) != len(n.outputs) {
		return fmt.Errorf("%w: %s transform produced %d outputs, declared %d",
			ErrConnection, n.filter.FilterName(), len(out), len(n.outputs))
	}
	for i, m := range out {
		n.outputs[i].meta = m
	}
	return nil
}
