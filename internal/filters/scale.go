package filters

import (
	"errors"
	"fmt"
	"strings"

	"splice/internal/media"
)

// Scale resizes video frames. When only one target dimension is given the
// other is completed from the input aspect ratio, rounded to the nearest
// even pixel count the way the external scaler does it. That rounding rule
// is a pinned contract verified by golden tests, not something derived
// here.
type Scale struct {
	Width  int
	Height int
}

// NewScale builds a scale filter. At least one dimension must be positive;
// a zero dimension is completed from the source aspect ratio.
func NewScale(width, height int) (*Scale, error) {
	if width <= 0 && height <= 0 {
		return nil, errors.New("scale: at least one target dimension required")
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("scale: negative dimension %dx%d", width, height)
	}
	return &Scale{Width: width, Height: height}, nil
}

func (s *Scale) FilterName() string        { return "scale" }
func (s *Scale) InputKinds() []media.Kind  { return kinds(media.KindVideo, 1) }
func (s *Scale) OutputKinds() []media.Kind { return kinds(media.KindVideo, 1) }

func (s *Scale) Args() string {
	parts := make([]string, 0, 2)
	if s.Width > 0 {
		parts = append(parts, fmt.Sprintf("w=%d", s.Width))
	} else {
		// -2 keeps aspect ratio and forces an even dimension.
		parts = append(parts, "w=-2")
	}
	if s.Height > 0 {
		parts = append(parts, fmt.Sprintf("h=%d", s.Height))
	} else {
		parts = append(parts, "h=-2")
	}
	return strings.Join(parts, ":")
}

func (s *Scale) Transform(in []*media.Meta) ([]*media.Meta, error) {
	if len(in) != 1 {
		return nil, fmt.Errorf("scale transform: expected 1 input, got %d", len(in))
	}
	m := in[0].Clone()
	if m == nil {
		return []*media.Meta{nil}, nil
	}
	width, height := s.Width, s.Height
	if width == 0 {
		width = completeDimension(m.Width, m.Height, height)
	}
	if height == 0 {
		height = completeDimension(m.Height, m.Width, width)
	}
	m.Width = width
	m.Height = height
	return []*media.Meta{m}, nil
}

// completeDimension derives the missing target dimension from the source
// aspect ratio, rounding half-up to an even value.
func completeDimension(src, srcOther, targetOther int) int {
	if src <= 0 || srcOther <= 0 || targetOther <= 0 {
		return 0
	}
	scaled := float64(src) * float64(targetOther) / float64(srcOther)
	return roundEven(scaled)
}

func roundEven(v float64) int {
	return int(v+1.0) / 2 * 2
}
