package ffmpeg

import (
	"errors"
	"fmt"

	"splice/internal/graph"
	"splice/internal/media"
)

// Input is one readable source file together with the typed source
// streams it exposes to the graph.
type Input struct {
	Path string
	// FastSeek seeks over key frames before demuxing (-ss before -i).
	FastSeek media.TS
	// Limit stops reading after the given interval (-t).
	Limit media.TS

	streams []*graph.Stream
	index   int
}

// NewInput declares an input file exposing the given source streams.
func NewInput(path string, streams ...*graph.Stream) (*Input, error) {
	if path == "" {
		return nil, errors.New("input: path required")
	}
	if len(streams) == 0 {
		return nil, fmt.Errorf("input %s: at least one stream required", path)
	}
	return &Input{Path: path, streams: streams, index: -1}, nil
}

// InputFile declares an input with one stream per metadata entry, or a
// default video+audio pair with unknown metadata when none is given.
func InputFile(g *graph.Graph, path string, metas ...*media.Meta) (*Input, error) {
	var streams []*graph.Stream
	if len(metas) == 0 {
		streams = []*graph.Stream{
			g.Source(media.KindVideo, nil),
			g.Source(media.KindAudio, nil),
		}
	} else {
		for _, m := range metas {
			if m == nil {
				return nil, fmt.Errorf("input %s: nil metadata entry", path)
			}
			streams = append(streams, g.Source(m.Kind, m))
		}
	}
	return NewInput(path, streams...)
}

// Streams returns the input's source streams in declaration order.
func (in *Input) Streams() []*graph.Stream {
	return in.streams
}

// Video returns the first video stream, nil if the input has none.
func (in *Input) Video() *graph.Stream {
	return in.firstOfKind(media.KindVideo)
}

// Audio returns the first audio stream, nil if the input has none.
func (in *Input) Audio() *graph.Stream {
	return in.firstOfKind(media.KindAudio)
}

func (in *Input) firstOfKind(kind media.Kind) *graph.Stream {
	for _, s := range in.streams {
		if s.Kind() == kind {
			return s
		}
	}
	return nil
}

// register assigns the input's position in the overall input list and
// derives the canonical labels of its streams: "0:v" for the first stream
// of a kind, "0:v:1" and up for the rest.
func (in *Input) register(index int) error {
	if in.index >= 0 {
		return fmt.Errorf("input %s already registered as #%d", in.Path, in.index)
	}
	in.index = index
	perKind := make(map[media.Kind]int)
	for _, s := range in.streams {
		sub := perKind[s.Kind()]
		perKind[s.Kind()]++
		label := fmt.Sprintf("%d:%s", index, s.Kind().Tag())
		if sub > 0 {
			label = fmt.Sprintf("%s:%d", label, sub)
		}
		if err := s.SetLabel(label); err != nil {
			return err
		}
	}
	return nil
}

// args renders the input's command line tokens.
func (in *Input) args() []string {
	tokens := make([]string, 0, 6)
	if in.FastSeek > 0 {
		tokens = append(tokens, "-ss", in.FastSeek.String())
	}
	if in.Limit > 0 {
		tokens = append(tokens, "-t", in.Limit.String())
	}
	return append(tokens, "-i", in.Path)
}
