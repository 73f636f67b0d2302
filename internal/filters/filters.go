package filters

import (
	"errors"
	"fmt"

	"splice/internal/media"
)

// ErrIncompatibleStreams reports a kind mismatch on a filter expecting
// homogeneous inputs.
var ErrIncompatibleStreams = errors.New("incompatible streams")

// Filter describes a single graph filter: its ffmpeg name, rendered
// parameters, typed arity, and the metadata transform applied when all
// inputs are connected.
//
// Transform receives one metadata pointer per input slot; nil elements
// mean the content of that input is unknown. Implementations propagate
// unknown rather than guessing.
type Filter interface {
	FilterName() string
	Args() string
	InputKinds() []media.Kind
	OutputKinds() []media.Kind
	Transform(in []*media.Meta) ([]*media.Meta, error)
}

func kinds(k media.Kind, n int) []media.Kind {
	out := make([]media.Kind, n)
	for i := range out {
		out[i] = k
	}
	return out
}

// passthrough clones the single input for filters that do not alter
// stream content semantics.
func passthrough(in []*media.Meta) ([]*media.Meta, error) {
	if len(in) != 1 {
		return nil, fmt.Errorf("passthrough transform: expected 1 input, got %d", len(in))
	}
	return []*media.Meta{in[0].Clone()}, nil
}

// mergeStreams appends names from src that are not yet present in dst.
func mergeStreams(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, s := range dst {
		seen[s] = struct{}{}
	}
	for _, s := range src {
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			dst = append(dst, s)
		}
	}
	return dst
}

// Custom wraps an arbitrary single-input single-output filter by name.
// Its raw args are rendered verbatim and its metadata passes through
// unchanged, so it is only suitable for filters that do not reorder or
// retime stream content.
type Custom struct {
	Kind    media.Kind
	Name    string
	RawArgs string
}

// NewCustom builds a pass-through wrapper for the named filter.
func NewCustom(kind media.Kind, name, args string) (*Custom, error) {
	if name == "" {
		return nil, errors.New("custom filter: name required")
	}
	if kind != media.KindVideo && kind != media.KindAudio {
		return nil, fmt.Errorf("custom filter %s: invalid kind", name)
	}
	return &Custom{Kind: kind, Name: name, RawArgs: args}, nil
}

func (c *Custom) FilterName() string            { return c.Name }
func (c *Custom) Args() string                  { return c.RawArgs }
func (c *Custom) InputKinds() []media.Kind      { return kinds(c.Kind, 1) }
func (c *Custom) OutputKinds() []media.Kind     { return kinds(c.Kind, 1) }
func (c *Custom) Transform(in []*media.Meta) ([]*media.Meta, error) {
	return passthrough(in)
}
