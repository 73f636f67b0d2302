package ffmpeg

import (
	"errors"
	"fmt"

	"splice/internal/graph"
	"splice/internal/media"
)

// Output is one output container: a file name, an optional forced format,
// and the codecs that fill it.
type Output struct {
	Path   string
	Format string
	codecs []*Codec
}

// NewOutput declares an output file owning the given codecs.
func NewOutput(path, format string, codecs ...*Codec) (*Output, error) {
	if path == "" {
		return nil, errors.New("output: path required")
	}
	if len(codecs) == 0 {
		return nil, fmt.Errorf("output %s: at least one codec required", path)
	}
	o := &Output{Path: path, Format: format, codecs: codecs}
	perKind := make(map[media.Kind]int)
	for _, c := range codecs {
		idx := perKind[c.kind]
		perKind[c.kind]++
		if err := c.register(path, idx); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// Codecs returns the output's codecs in declaration order.
func (o *Output) Codecs() []*Codec {
	return o.codecs
}

// Video returns the first unconnected video codec, nil if none is free.
func (o *Output) Video() *Codec {
	return o.freeCodec(media.KindVideo)
}

// Audio returns the first unconnected audio codec, nil if none is free.
func (o *Output) Audio() *Codec {
	return o.freeCodec(media.KindAudio)
}

func (o *Output) freeCodec(kind media.Kind) *Codec {
	for _, c := range o.codecs {
		if c.kind == kind && !c.Connected() {
			return c
		}
	}
	return nil
}

// args renders the codec parameters and container tokens for the output.
// Kinds with no codec are disabled explicitly so ffmpeg does not map
// default streams into the container.
func (o *Output) args(r *graph.Rendered) ([]string, error) {
	tokens := make([]string, 0, 16)
	hasVideo, hasAudio := false, false
	for _, c := range o.codecs {
		codecTokens, err := c.args(r)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, codecTokens...)
		switch c.kind {
		case media.KindVideo:
			hasVideo = true
		case media.KindAudio:
			hasAudio = true
		}
	}
	if !hasVideo {
		tokens = append(tokens, "-vn")
	}
	if !hasAudio {
		tokens = append(tokens, "-an")
	}
	if o.Format != "" {
		tokens = append(tokens, "-f", o.Format)
	}
	return append(tokens, o.Path), nil
}
