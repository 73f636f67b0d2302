package graph

import (
	"fmt"

	"splice/internal/media"
)

// Stream is a typed, at-most-once-consumable connection point. Source
// streams are produced by declared inputs; every other stream is a filter
// output. A stream may feed either exactly one filter input or any number
// of terminal destinations.
type Stream struct {
	g     *Graph
	kind  media.Kind
	meta  *media.Meta
	owner *Node // producing filter, nil for source streams
	slot  int
	label string // canonical source label, set exactly once

	consumer *Node
	dests    []*Dest
}

// Kind returns the stream's content kind.
func (s *Stream) Kind() media.Kind {
	return s.kind
}

// Meta returns the stream's metadata, nil when unknown.
func (s *Stream) Meta() *media.Meta {
	return s.meta
}

// IsSource reports whether the stream comes straight from a declared
// input rather than from a filter.
func (s *Stream) IsSource() bool {
	return s.owner == nil
}

// SetLabel assigns the canonical source label ("0:v" style). The label is
// written exactly once, by input registration.
func (s *Stream) SetLabel(label string) error {
	if s.owner != nil {
		return fmt.Errorf("%w: only source streams carry canonical labels", ErrConnection)
	}
	if s.label != "" {
		return fmt.Errorf("%w: label already set to %q", ErrConnection, s.label)
	}
	s.label = label
	return nil
}

// Label returns the canonical source label, empty until assigned.
func (s *Stream) Label() string {
	return s.label
}

// Connected reports whether the stream has been consumed.
func (s *Stream) Connected() bool {
	return s.consumer != nil || len(s.dests) > 0
}

// ConnectSlot binds the stream to a specific input slot of a filter node.
func (s *Stream) ConnectSlot(n *Node, slot int) error {
	return n.connectInput(s, slot)
}

// Connect binds the stream to the first free compatible input slot of the
// node.
func (s *Stream) Connect(n *Node) error {
	kinds := n.filter.InputKinds()
	for slot, want := range kinds {
		if n.inputs[slot] == nil && want == s.kind {
			return n.connectInput(s, slot)
		}
	}
	return fmt.Errorf("%w: %s has no free %s input",
		ErrNoFreeSlot, n.filter.FilterName(), s.kind)
}

// ConnectDest binds the stream to a terminal destination. Destinations do
// not forward data, so a stream may feed several of them.
func (s *Stream) ConnectDest(d *Dest) error {
	if s.g.frozen {
		return fmt.Errorf("%w: graph is frozen", ErrConnection)
	}
	if s.consumer != nil {
		return fmt.Errorf("%w: stream feeds filter %s",
			ErrStreamReused, s.consumer.filter.FilterName())
	}
	if d.stream != nil {
		return fmt.Errorf("%w: destination %s already connected", ErrConnection, d.name)
	}
	if d.kind != s.kind {
		return fmt.Errorf("%w: destination %s expects %s, got %s",
			ErrConnection, d.name, d.kind, s.kind)
	}
	d.stream = s
	s.dests = append(s.dests, d)
	return nil
}

// markConsumedBy records the single filter consumer of the stream.
func (s *Stream) markConsumedBy(n *Node) error {
	if s.consumer != nil {
		return fmt.Errorf("%w: stream feeds filter %s",
			ErrStreamReused, s.consumer.filter.FilterName())
	}
	if len(s.dests) > 0 {
		return fmt.Errorf("%w: stream feeds destination %s",
			ErrStreamReused, s.dests[0].name)
	}
	s.consumer = n
	return nil
}

// Dest is a terminal consumer of one stream, typically an output codec.
type Dest struct {
	name   string
	kind   media.Kind
	stream *Stream
}

// NewDest declares a terminal destination. The name is used in
// diagnostics and hazard reports.
func NewDest(name string, kind media.Kind) *Dest {
	return &Dest{name: name, kind: kind}
}

// Name returns the destination's diagnostic name.
func (d *Dest) Name() string {
	return d.name
}

// Kind returns the destination's expected stream kind.
func (d *Dest) Kind() media.Kind {
	return d.kind
}

// Stream returns the connected stream, nil while dangling.
func (d *Dest) Stream() *Stream {
	return d.stream
}

// Connected reports whether a stream has been bound.
func (d *Dest) Connected() bool {
	return d.stream != nil
}

// Meta returns the metadata of the connected stream, nil when unknown or
// unconnected.
func (d *Dest) Meta() *media.Meta {
	if d.stream == nil {
		return nil
	}
	return d.stream.meta
}
