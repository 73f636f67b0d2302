package filters

import (
	"errors"
	"fmt"

	"splice/internal/media"
)

// Format constrains the pixel format of a video stream. Content metadata
// is untouched; only the memory-domain tag of the frames changes.
type Format struct {
	PixFmts string
}

// NewFormat builds a format filter for the given pixel format list.
func NewFormat(pixFmts string) (*Format, error) {
	if pixFmts == "" {
		return nil, errors.New("format: pixel format required")
	}
	return &Format{PixFmts: pixFmts}, nil
}

func (f *Format) FilterName() string        { return "format" }
func (f *Format) Args() string              { return fmt.Sprintf("pix_fmts=%s", f.PixFmts) }
func (f *Format) InputKinds() []media.Kind  { return kinds(media.KindVideo, 1) }
func (f *Format) OutputKinds() []media.Kind { return kinds(media.KindVideo, 1) }

func (f *Format) Transform(in []*media.Meta) ([]*media.Meta, error) {
	return passthrough(in)
}

// Upload moves video frames into hardware device memory. Like Format it
// only changes the memory domain of the frames.
type Upload struct{}

// NewUpload builds an hwupload filter.
func NewUpload() *Upload { return &Upload{} }

func (u *Upload) FilterName() string        { return "hwupload" }
func (u *Upload) Args() string              { return "" }
func (u *Upload) InputKinds() []media.Kind  { return kinds(media.KindVideo, 1) }
func (u *Upload) OutputKinds() []media.Kind { return kinds(media.KindVideo, 1) }

func (u *Upload) Transform(in []*media.Meta) ([]*media.Meta, error) {
	return passthrough(in)
}
