package vector

import (
	"errors"
	"fmt"

	"splice/internal/ffmpeg"
	"splice/internal/filters"
	"splice/internal/graph"
)

// ErrLengthMismatch reports a parameter, mask, or codec vector whose
// length does not match the stream vector.
var ErrLengthMismatch = errors.New("vector length mismatch")

// Vector is an ordered sequence of parallel streams.
type Vector struct {
	g       *graph.Graph
	streams []*graph.Stream
}

// New wraps existing streams as a vector.
func New(g *graph.Graph, streams ...*graph.Stream) (*Vector, error) {
	if len(streams) == 0 {
		return nil, errors.New("vector: at least one stream required")
	}
	return &Vector{g: g, streams: streams}, nil
}

// FromStream replicates one stream across n vector elements. The
// underlying stream stays single-use; the first transform with distinct
// parameters splits it.
func FromStream(g *graph.Graph, s *graph.Stream, n int) (*Vector, error) {
	if n < 1 {
		return nil, fmt.Errorf("vector: invalid element count %d", n)
	}
	streams := make([]*graph.Stream, n)
	for i := range streams {
		streams[i] = s
	}
	return New(g, streams...)
}

// Len returns the number of vector elements.
func (v *Vector) Len() int {
	return len(v.streams)
}

// Streams returns the element streams in order.
func (v *Vector) Streams() []*graph.Stream {
	return v.streams
}

// Connect applies filters element-wise and returns the resulting vector.
// A single filter is shared by every element; otherwise one filter per
// element is required. Elements whose mask entry is false pass through
// unchanged (a nil mask applies the filter everywhere). Filters with
// identical name and parameters collapse into one shared chain; as soon
// as two distinct chains would read the same underlying stream, a split
// is inserted upstream.
func (v *Vector) Connect(fs []filters.Filter, mask []bool) (*Vector, error) {
	if len(fs) != 1 && len(fs) != len(v.streams) {
		return nil, fmt.Errorf("%w: %d filters for %d streams",
			ErrLengthMismatch, len(fs), len(v.streams))
	}
	if mask != nil && len(mask) != len(v.streams) {
		return nil, fmt.Errorf("%w: %d mask entries for %d streams",
			ErrLengthMismatch, len(mask), len(v.streams))
	}

	dsts := make([]filters.Filter, len(v.streams))
	seen := make(map[string]filters.Filter)
	for i := range v.streams {
		if mask != nil && !mask[i] {
			continue
		}
		f := fs[0]
		if len(fs) > 1 {
			f = fs[i]
		}
		key := f.FilterName() + "=" + f.Args()
		if shared, ok := seen[key]; ok {
			f = shared
		} else {
			seen[key] = f
		}
		dsts[i] = f
	}
	return v.apply(dsts)
}

// apply routes each element stream to its destination filter, sharing
// chains between elements with the same (stream, filter) pair and
// splitting streams consumed by more than one distinct destination.
func (v *Vector) apply(dsts []filters.Filter) (*Vector, error) {
	type route struct {
		src *graph.Stream
		dst filters.Filter // nil for pass-through
	}
	// Distinct destinations per source stream, both in first-appearance
	// order so node insertion (and rendered output) stays deterministic.
	perSource := make(map[*graph.Stream][]filters.Filter)
	var order []*graph.Stream
	for i, src := range v.streams {
		if _, ok := perSource[src]; !ok {
			order = append(order, src)
		}
		if !containsFilter(perSource[src], dsts[i]) {
			perSource[src] = append(perSource[src], dsts[i])
		}
	}

	resolved := make(map[route]*graph.Stream)
	for _, src := range order {
		group := perSource[src]
		if len(group) == 1 {
			out, err := v.routeOne(src, group[0])
			if err != nil {
				return nil, err
			}
			resolved[route{src, group[0]}] = out
			continue
		}
		split, err := filters.NewSplit(src.Kind(), len(group))
		if err != nil {
			return nil, err
		}
		splitNode := v.g.Add(split)
		if err := src.Connect(splitNode); err != nil {
			return nil, err
		}
		for j, dst := range group {
			out, err := v.routeOne(splitNode.Output(j), dst)
			if err != nil {
				return nil, err
			}
			resolved[route{src, dst}] = out
		}
	}

	streams := make([]*graph.Stream, len(v.streams))
	for i, src := range v.streams {
		streams[i] = resolved[route{src, dsts[i]}]
	}
	return &Vector{g: v.g, streams: streams}, nil
}

// routeOne connects a stream to a single destination filter, or passes it
// through when the destination is nil.
func (v *Vector) routeOne(src *graph.Stream, dst filters.Filter) (*graph.Stream, error) {
	if dst == nil {
		return src, nil
	}
	node := v.g.Add(dst)
	if err := src.Connect(node); err != nil {
		return nil, err
	}
	return node.Output(0), nil
}

// Finalize connects the vector 1:1, in order, to a parallel vector of
// codecs. Source streams may feed several codecs directly; filter outputs
// shared by several codecs get a split inserted first.
func (v *Vector) Finalize(codecs []*ffmpeg.Codec) error {
	if len(codecs) != len(v.streams) {
		return fmt.Errorf("%w: %d codecs for %d streams",
			ErrLengthMismatch, len(codecs), len(v.streams))
	}

	perSource := make(map[*graph.Stream][]*ffmpeg.Codec)
	var order []*graph.Stream
	for i, src := range v.streams {
		if _, ok := perSource[src]; !ok {
			order = append(order, src)
		}
		perSource[src] = append(perSource[src], codecs[i])
	}
	for _, src := range order {
		group := perSource[src]
		if len(group) == 1 || src.IsSource() {
			for _, codec := range group {
				if err := codec.Bind(src); err != nil {
					return err
				}
			}
			continue
		}
		split, err := filters.NewSplit(src.Kind(), len(group))
		if err != nil {
			return err
		}
		splitNode := v.g.Add(split)
		if err := src.Connect(splitNode); err != nil {
			return err
		}
		for j, codec := range group {
			if err := codec.Bind(splitNode.Output(j)); err != nil {
				return err
			}
		}
	}
	return nil
}

func containsFilter(group []filters.Filter, f filters.Filter) bool {
	for _, g := range group {
		if g == f {
			return true
		}
	}
	return false
}
