package filters

import (
	"fmt"

	"splice/internal/media"
)

// Trim keeps only the [Start, End) window of a stream, addressed in the
// stream's own timeline. Trim does not shift timestamps: the kept frames
// retain their positions, so a SetPTS is required afterwards to rebase the
// stream at zero.
type Trim struct {
	Kind  media.Kind
	Start media.TS
	End   media.TS
}

// NewTrim builds a trim (video) or atrim (audio) filter for the window
// [start, end).
func NewTrim(kind media.Kind, start, end media.TS) (*Trim, error) {
	if kind != media.KindVideo && kind != media.KindAudio {
		return nil, fmt.Errorf("trim: invalid kind")
	}
	if start < 0 || end <= start {
		return nil, fmt.Errorf("trim: invalid window [%s, %s)", start, end)
	}
	return &Trim{Kind: kind, Start: start, End: end}, nil
}

func (t *Trim) FilterName() string {
	if t.Kind == media.KindAudio {
		return "atrim"
	}
	return "trim"
}

func (t *Trim) Args() string {
	return fmt.Sprintf("start=%s:end=%s", t.Start, t.End)
}

func (t *Trim) InputKinds() []media.Kind  { return kinds(t.Kind, 1) }
func (t *Trim) OutputKinds() []media.Kind { return kinds(t.Kind, 1) }

// Transform intersects each scene with the trim window in stream-local
// time. Duration becomes the window length; positions are left untouched.
func (t *Trim) Transform(in []*media.Meta) ([]*media.Meta, error) {
	if len(in) != 1 {
		return nil, fmt.Errorf("trim transform: expected 1 input, got %d", len(in))
	}
	m := in[0].Clone()
	if m == nil {
		return []*media.Meta{nil}, nil
	}
	scenes := make([]media.Scene, 0, len(m.Scenes))
	for _, scene := range m.Scenes {
		lo := maxTS(scene.Position, t.Start)
		hi := minTS(scene.Position+scene.Duration, t.End)
		if hi <= lo {
			continue
		}
		scenes = append(scenes, media.Scene{
			Stream:   scene.Stream,
			Start:    scene.Start + (lo - scene.Position),
			Duration: hi - lo,
			Position: lo,
		})
	}
	m.Scenes = scenes
	m.Start = t.Start
	m.Duration = t.End - t.Start
	return []*media.Meta{m}, nil
}

func maxTS(a, b media.TS) media.TS {
	if a > b {
		return a
	}
	return b
}

func minTS(a, b media.TS) media.TS {
	if a < b {
		return a
	}
	return b
}
