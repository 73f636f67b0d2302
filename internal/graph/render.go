package graph

import (
	"fmt"
	"strings"

	"splice/internal/media"
)

// Rendered is the outcome of one render pass: the filter graph text plus
// the label assignments needed to emit map arguments for destinations.
type Rendered struct {
	// Text is the filter graph in ffmpeg syntax: a comma-joined short
	// chain, or semicolon-joined bracketed statements. Empty when the
	// graph has no filters.
	Text string
	// Short reports that Text uses the label-free chain form.
	Short bool
	// ChainKind is the stream kind of the chain in short form.
	ChainKind media.Kind

	mapArgs map[*Stream]string
}

// MapArg returns the map argument for a destination's stream: the
// canonical source label for direct source connections, or the bracketed
// generated label of a filter output.
func (r *Rendered) MapArg(s *Stream) (string, error) {
	if arg, ok := r.mapArgs[s]; ok {
		return arg, nil
	}
	if s.IsSource() {
		if s.label == "" {
			return "", fmt.Errorf("%w: source stream was never registered with an input", ErrUnresolvedReference)
		}
		return s.label, nil
	}
	return "", fmt.Errorf("%w: stream is not part of the rendered graph", ErrUnresolvedReference)
}

// Render freezes the graph and compiles it to textual form. The pass
// validates structure first and emits nothing on failure; repeated calls
// on a frozen graph yield identical results.
func (g *Graph) Render() (*Rendered, error) {
	g.frozen = true

	if err := g.validate(); err != nil {
		return nil, err
	}

	r := &Rendered{mapArgs: make(map[*Stream]string)}
	if len(g.nodes) == 0 {
		return r, nil
	}

	if head, ok := g.shortChain(); ok {
		parts := make([]string, 0, len(g.nodes))
		n := head.consumer
		var tail *Stream
		for n != nil {
			part := n.filter.FilterName()
			if args := n.filter.Args(); args != "" {
				part += "=" + args
			}
			parts = append(parts, part)
			tail = n.outputs[0]
			n = tail.consumer
		}
		r.Text = strings.Join(parts, ",")
		r.Short = true
		r.ChainKind = tail.kind
		r.mapArgs[tail] = head.label
		return r, nil
	}

	statements, labels, err := g.emitStatements()
	if err != nil {
		return nil, err
	}
	for stream, label := range labels {
		r.mapArgs[stream] = "[" + label + "]"
	}
	r.Text = strings.Join(statements, ";")
	return r, nil
}

// validate checks the structural invariants that make a graph renderable:
// fully connected inputs, labeled sources, and no dangling outputs.
func (g *Graph) validate() error {
	for _, n := range g.nodes {
		for slot, in := range n.inputs {
			if in == nil {
				return fmt.Errorf("%w: %s input slot %d never connected",
					ErrUnresolvedReference, n.filter.FilterName(), slot)
			}
			if in.owner == nil && in.label == "" {
				return fmt.Errorf("%w: %s reads a source stream that was never registered with an input",
					ErrUnresolvedReference, n.filter.FilterName())
			}
		}
		for slot, out := range n.outputs {
			if !out.Connected() {
				return fmt.Errorf("%w: %s output %d",
					ErrDanglingOutput, n.filter.FilterName(), slot)
			}
		}
	}
	return nil
}

// shortChain reports whether the whole graph is one unbranched chain of
// single-input single-output filters hanging off one source stream with a
// single terminal destination. Such graphs render without bracket labels.
func (g *Graph) shortChain() (*Stream, bool) {
	var head *Stream
	for _, n := range g.nodes {
		if len(n.inputs) != 1 || len(n.outputs) != 1 {
			return nil, false
		}
		if n.inputs[0].owner == nil {
			if head != nil {
				return nil, false
			}
			head = n.inputs[0]
		}
	}
	if head == nil {
		return nil, false
	}
	count := 0
	n := head.consumer
	var tail *Stream
	for n != nil {
		count++
		tail = n.outputs[0]
		n = tail.consumer
	}
	if count != len(g.nodes) {
		return nil, false
	}
	return head, len(tail.dests) == 1
}

// emitStatements walks filters in dependency order, insertion order
// breaking ties, assigning generated labels from a single counter shared
// across the whole pass.
func (g *Graph) emitStatements() ([]string, map[*Stream]string, error) {
	labels := make(map[*Stream]string)
	statements := make([]string, 0, len(g.nodes))
	emitted := make([]bool, len(g.nodes))
	remaining := len(g.nodes)
	counter := 0

	for remaining > 0 {
		progress := false
		for i, n := range g.nodes {
			if emitted[i] || !inputsLabeled(n, labels) {
				continue
			}
			var sb strings.Builder
			for _, in := range n.inputs {
				if in.owner == nil {
					sb.WriteString("[" + in.label + "]")
				} else {
					sb.WriteString("[" + labels[in] + "]")
				}
			}
			sb.WriteString(n.filter.FilterName())
			if args := n.filter.Args(); args != "" {
				sb.WriteString("=" + args)
			}
			for _, out := range n.outputs {
				label := fmt.Sprintf("%sout%d", out.kind.Tag(), counter)
				counter++
				labels[out] = label
				sb.WriteString("[" + label + "]")
			}
			statements = append(statements, sb.String())
			emitted[i] = true
			remaining--
			progress = true
		}
		if !progress {
			return nil, nil, fmt.Errorf("%w: %d filters depend on their own output", ErrCyclicGraph, remaining)
		}
	}
	return statements, labels, nil
}

func inputsLabeled(n *Node, labels map[*Stream]string) bool {
	for _, in := range n.inputs {
		if in.owner == nil {
			continue
		}
		if _, ok := labels[in]; !ok {
			return false
		}
	}
	return true
}
