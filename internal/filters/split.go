package filters

import (
	"fmt"
	"strconv"

	"splice/internal/media"
)

// Split fans a single stream out to several identical output streams so it
// can feed more than one downstream chain.
type Split struct {
	Kind  media.Kind
	Count int
}

// NewSplit builds a split (video) or asplit (audio) filter with the given
// output count.
func NewSplit(kind media.Kind, count int) (*Split, error) {
	if count < 2 {
		return nil, fmt.Errorf("split: output count %d, need at least 2", count)
	}
	if kind != media.KindVideo && kind != media.KindAudio {
		return nil, fmt.Errorf("split: invalid kind")
	}
	return &Split{Kind: kind, Count: count}, nil
}

func (s *Split) FilterName() string {
	if s.Kind == media.KindAudio {
		return "asplit"
	}
	return "split"
}

// Args renders the output count, omitted for the default of two.
func (s *Split) Args() string {
	if s.Count == 2 {
		return ""
	}
	return strconv.Itoa(s.Count)
}

func (s *Split) InputKinds() []media.Kind  { return kinds(s.Kind, 1) }
func (s *Split) OutputKinds() []media.Kind { return kinds(s.Kind, s.Count) }

func (s *Split) Transform(in []*media.Meta) ([]*media.Meta, error) {
	if len(in) != 1 {
		return nil, fmt.Errorf("split transform: expected 1 input, got %d", len(in))
	}
	out := make([]*media.Meta, s.Count)
	for i := range out {
		out[i] = in[0].Clone()
	}
	return out, nil
}
