package filters

import (
	"fmt"

	"splice/internal/media"
)

// Overlay draws the second ("top") video input over the first ("bottom")
// one at a fixed offset. Output dimensions and scenes come from the bottom
// input; the top input's scenes are not propagated, although the stream
// itself still counts as consumed for buffering analysis.
type Overlay struct {
	X int
	Y int
}

// NewOverlay builds an overlay filter placing the top input at (x, y).
func NewOverlay(x, y int) (*Overlay, error) {
	if x < 0 || y < 0 {
		return nil, fmt.Errorf("overlay: negative position %d,%d", x, y)
	}
	return &Overlay{X: x, Y: y}, nil
}

func (o *Overlay) FilterName() string        { return "overlay" }
func (o *Overlay) Args() string              { return fmt.Sprintf("x=%d:y=%d", o.X, o.Y) }
func (o *Overlay) InputKinds() []media.Kind  { return kinds(media.KindVideo, 2) }
func (o *Overlay) OutputKinds() []media.Kind { return kinds(media.KindVideo, 1) }

func (o *Overlay) Transform(in []*media.Meta) ([]*media.Meta, error) {
	if len(in) != 2 {
		return nil, fmt.Errorf("overlay transform: expected 2 inputs, got %d", len(in))
	}
	return []*media.Meta{in[0].Clone()}, nil
}
