package ffmpeg

import (
	"fmt"
	"strconv"

	"splice/internal/graph"
	"splice/internal/media"
)

// Codec is a terminal graph node: it consumes exactly one stream and
// carries the encoding parameters for one output stream.
type Codec struct {
	// Name is the encoder name, or "copy" for stream copy.
	Name string
	// Bitrate is the target bitrate in bits per second, 0 to omit.
	Bitrate int
	// Extra tokens are appended verbatim after the generated parameters.
	Extra []string

	kind   media.Kind
	dest   *graph.Dest
	index  int    // stream index of this kind within the owning output
	output string // owning output path, set at registration
}

// NewVideoCodec declares a video codec.
func NewVideoCodec(name string) *Codec {
	return newCodec(media.KindVideo, name)
}

// NewAudioCodec declares an audio codec.
func NewAudioCodec(name string) *Codec {
	return newCodec(media.KindAudio, name)
}

func newCodec(kind media.Kind, name string) *Codec {
	c := &Codec{Name: name, kind: kind, index: -1}
	c.dest = graph.NewDest(name, kind)
	return c
}

// Kind returns the codec's stream kind.
func (c *Codec) Kind() media.Kind {
	return c.kind
}

// Bind connects a stream to the codec. Codecs are terminal, so several
// codecs may bind the same stream.
func (c *Codec) Bind(s *graph.Stream) error {
	return s.ConnectDest(c.dest)
}

// Connected reports whether a stream has been bound.
func (c *Codec) Connected() bool {
	return c.dest.Connected()
}

// Stream returns the bound stream, nil while dangling.
func (c *Codec) Stream() *graph.Stream {
	return c.dest.Stream()
}

// Meta returns the propagated metadata of the bound stream.
func (c *Codec) Meta() *media.Meta {
	return c.dest.Meta()
}

// Describe names the codec for diagnostics and hazard reports, e.g.
// "out.mp4#v:0".
func (c *Codec) Describe() string {
	if c.output == "" {
		return fmt.Sprintf("%s:%s", c.kind.Tag(), c.Name)
	}
	return fmt.Sprintf("%s#%s:%d", c.output, c.kind.Tag(), c.index)
}

// register records the owning output and the codec's per-kind stream
// index inside it.
func (c *Codec) register(output string, index int) error {
	if c.index >= 0 {
		return fmt.Errorf("codec %s already belongs to %s", c.Name, c.output)
	}
	c.output = output
	c.index = index
	return nil
}

// args renders the map entry and encoding parameters for the codec.
func (c *Codec) args(r *graph.Rendered) ([]string, error) {
	if !c.dest.Connected() {
		return nil, fmt.Errorf("%w: codec %s has no stream",
			graph.ErrUnresolvedReference, c.Describe())
	}
	mapArg, err := r.MapArg(c.dest.Stream())
	if err != nil {
		return nil, fmt.Errorf("codec %s: %w", c.Describe(), err)
	}
	suffix := fmt.Sprintf("%s:%d", c.kind.Tag(), c.index)
	tokens := []string{"-map", mapArg, "-c:" + suffix, c.Name}
	if c.Bitrate > 0 {
		tokens = append(tokens, "-b:"+suffix, strconv.Itoa(c.Bitrate))
	}
	return append(tokens, c.Extra...), nil
}
