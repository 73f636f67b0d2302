package filters

import (
	"fmt"

	"splice/internal/media"
)

// Volume adjusts audio loudness by a fixed multiplier.
type Volume struct {
	Volume float64
}

// NewVolume builds a volume filter with the given gain multiplier.
func NewVolume(gain float64) (*Volume, error) {
	if gain < 0 {
		return nil, fmt.Errorf("volume: negative gain %v", gain)
	}
	return &Volume{Volume: gain}, nil
}

func (v *Volume) FilterName() string        { return "volume" }
func (v *Volume) Args() string              { return fmt.Sprintf("volume=%g", v.Volume) }
func (v *Volume) InputKinds() []media.Kind  { return kinds(media.KindAudio, 1) }
func (v *Volume) OutputKinds() []media.Kind { return kinds(media.KindAudio, 1) }

func (v *Volume) Transform(in []*media.Meta) ([]*media.Meta, error) {
	return passthrough(in)
}
