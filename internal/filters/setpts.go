package filters

import (
	"fmt"

	"splice/internal/media"
)

// PTSStart is the setpts expression that rebases a stream at timestamp
// zero. It is the only expression whose effect on scene bookkeeping is
// modeled; any other expression passes metadata through unchanged because
// its timestamp effect is opaque to this model.
const PTSStart = "PTS-STARTPTS"

// SetPTS rewrites frame timestamps with an expression.
type SetPTS struct {
	Kind media.Kind
	Expr string
}

// NewSetPTS builds a setpts (video) or asetpts (audio) filter.
func NewSetPTS(kind media.Kind, expr string) (*SetPTS, error) {
	if kind != media.KindVideo && kind != media.KindAudio {
		return nil, fmt.Errorf("setpts: invalid kind")
	}
	if expr == "" {
		expr = PTSStart
	}
	return &SetPTS{Kind: kind, Expr: expr}, nil
}

func (p *SetPTS) FilterName() string {
	if p.Kind == media.KindAudio {
		return "asetpts"
	}
	return "setpts"
}

func (p *SetPTS) Args() string              { return p.Expr }
func (p *SetPTS) InputKinds() []media.Kind  { return kinds(p.Kind, 1) }
func (p *SetPTS) OutputKinds() []media.Kind { return kinds(p.Kind, 1) }

// Transform shifts all scene positions so the first frame lands at zero
// when the expression is PTS-STARTPTS; other expressions pass through.
func (p *SetPTS) Transform(in []*media.Meta) ([]*media.Meta, error) {
	if len(in) != 1 {
		return nil, fmt.Errorf("setpts transform: expected 1 input, got %d", len(in))
	}
	m := in[0].Clone()
	if m == nil || p.Expr != PTSStart {
		return []*media.Meta{m}, nil
	}
	shift := m.Start
	if len(m.Scenes) > 0 {
		shift = m.Scenes[0].Position
	}
	for i := range m.Scenes {
		m.Scenes[i].Position -= shift
	}
	m.Start = 0
	return []*media.Meta{m}, nil
}
