package filters

import (
	"fmt"

	"splice/internal/media"
)

// Concat joins several streams of the same kind end to end, in input
// order.
type Concat struct {
	Kind  media.Kind
	Count int
}

// NewConcat builds a concat filter with the given input count.
func NewConcat(kind media.Kind, count int) (*Concat, error) {
	if count < 2 {
		return nil, fmt.Errorf("concat: input count %d, need at least 2", count)
	}
	if kind != media.KindVideo && kind != media.KindAudio {
		return nil, fmt.Errorf("concat: invalid kind")
	}
	return &Concat{Kind: kind, Count: count}, nil
}

func (c *Concat) FilterName() string { return "concat" }

// Args renders the concat segment definition. For video the two-input
// default is implicit; audio always spells out stream counts.
func (c *Concat) Args() string {
	if c.Kind == media.KindVideo {
		if c.Count == 2 {
			return ""
		}
		return fmt.Sprintf("n=%d", c.Count)
	}
	return fmt.Sprintf("v=0:a=1:n=%d", c.Count)
}

func (c *Concat) InputKinds() []media.Kind  { return kinds(c.Kind, c.Count) }
func (c *Concat) OutputKinds() []media.Kind { return kinds(c.Kind, 1) }

// Transform concatenates input scene lists in input order, shifting each
// segment's positions past the accumulated duration. Any unknown input
// makes the result unknown.
func (c *Concat) Transform(in []*media.Meta) ([]*media.Meta, error) {
	if len(in) != c.Count {
		return nil, fmt.Errorf("concat transform: expected %d inputs, got %d", c.Count, len(in))
	}
	for _, m := range in {
		if m == nil {
			return []*media.Meta{nil}, nil
		}
		if m.Kind != c.Kind {
			return nil, fmt.Errorf("%w: concat expects %s inputs, got %s",
				ErrIncompatibleStreams, c.Kind, m.Kind)
		}
	}
	out := in[0].Clone()
	offset := in[0].Duration
	for _, m := range in[1:] {
		for _, scene := range m.Scenes {
			scene.Position += offset
			out.Scenes = append(out.Scenes, scene)
		}
		out.Streams = mergeStreams(out.Streams, m.Streams)
		out.Duration += m.Duration
		offset += m.Duration
	}
	return []*media.Meta{out}, nil
}
