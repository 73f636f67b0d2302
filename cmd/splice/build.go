package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"splice/internal/config"
	"splice/internal/ffmpeg"
	"splice/internal/filters"
	"splice/internal/graph"
	"splice/internal/media"
	"splice/internal/probe"
	"splice/internal/vector"
)

// outputSpec is one parsed -o flag: a path plus optional target size and
// video bitrate, "out.mp4=1280x720@4000000".
type outputSpec struct {
	Path    string
	Width   int
	Height  int
	Bitrate int
}

// planOptions collects the graph-shaping flags shared by plan, check,
// and run.
type planOptions struct {
	Inputs  []string
	Outputs []string
	Trim    string
	VCodec  string
	ACodec  string
	NoAudio bool
	NoProbe bool
}

// parseOutputSpec splits "path", "path=WxH", or "path=WxH@bitrate".
func parseOutputSpec(value string) (outputSpec, error) {
	spec := outputSpec{}
	path, params, hasParams := strings.Cut(value, "=")
	spec.Path = strings.TrimSpace(path)
	if spec.Path == "" {
		return spec, fmt.Errorf("output %q: empty path", value)
	}
	if !hasParams {
		return spec, nil
	}

	size, bitrate, hasBitrate := strings.Cut(params, "@")
	if size != "" {
		w, h, ok := strings.Cut(size, "x")
		if !ok {
			return spec, fmt.Errorf("output %q: size must be WxH", value)
		}
		var err error
		if spec.Width, err = parseDimension(w); err != nil {
			return spec, fmt.Errorf("output %q: %w", value, err)
		}
		if spec.Height, err = parseDimension(h); err != nil {
			return spec, fmt.Errorf("output %q: %w", value, err)
		}
	}
	if hasBitrate {
		parsed, err := strconv.Atoi(strings.TrimSpace(bitrate))
		if err != nil || parsed <= 0 {
			return spec, fmt.Errorf("output %q: invalid bitrate %q", value, bitrate)
		}
		spec.Bitrate = parsed
	}
	return spec, nil
}

// parseDimension accepts a positive pixel count or 0/"-" for "derive
// from aspect ratio".
func parseDimension(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "-" || value == "0" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid dimension %q", value)
	}
	return parsed, nil
}

// buildCommand assembles the full transcoding command: probe inputs,
// concat when several are given, apply the optional trim window, then
// fan the result out to every output through the vector engine.
func buildCommand(ctx context.Context, cfg *config.Config, inspector *probe.Inspector, opts planOptions) (*ffmpeg.Command, error) {
	if len(opts.Inputs) == 0 {
		return nil, fmt.Errorf("at least one input required")
	}
	if len(opts.Outputs) == 0 {
		return nil, fmt.Errorf("at least one output required")
	}

	specs := make([]outputSpec, 0, len(opts.Outputs))
	for _, value := range opts.Outputs {
		spec, err := parseOutputSpec(value)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}

	cmd := ffmpeg.New()
	cmd.Binary = cfg.Tools.FFmpegBinary
	cmd.LogLevel = cfg.Tools.LogLevel
	cmd.Overwrite = cfg.Tools.Overwrite
	g := cmd.Graph()

	video, audio, err := buildSources(ctx, g, cmd, inspector, opts)
	if err != nil {
		return nil, err
	}
	if opts.NoAudio {
		audio = nil
	}

	if opts.Trim != "" {
		start, end, err := parseTrimWindow(opts.Trim)
		if err != nil {
			return nil, err
		}
		if video, err = trimStream(g, video, start, end); err != nil {
			return nil, err
		}
		if audio != nil {
			if audio, err = trimStream(g, audio, start, end); err != nil {
				return nil, err
			}
		}
	}

	return cmd, finalizeOutputs(cmd, g, video, audio, specs, opts)
}

// buildSources declares inputs and reduces them to one video and one
// audio stream, concatenating when several inputs are given.
func buildSources(ctx context.Context, g *graph.Graph, cmd *ffmpeg.Command, inspector *probe.Inspector, opts planOptions) (video, audio *graph.Stream, err error) {
	videos := make([]*graph.Stream, 0, len(opts.Inputs))
	audios := make([]*graph.Stream, 0, len(opts.Inputs))
	for _, path := range opts.Inputs {
		var metas []*media.Meta
		if !opts.NoProbe && inspector != nil {
			metas, err = inspector.Metadata(ctx, path)
			if err != nil {
				return nil, nil, fmt.Errorf("probe %s: %w", path, err)
			}
		}
		in, err := ffmpeg.InputFile(g, path, metas...)
		if err != nil {
			return nil, nil, err
		}
		if err := cmd.AddInput(in); err != nil {
			return nil, nil, err
		}
		if v := in.Video(); v != nil {
			videos = append(videos, v)
		}
		if a := in.Audio(); a != nil {
			audios = append(audios, a)
		}
	}
	if len(videos) == 0 {
		return nil, nil, fmt.Errorf("no video stream in any input")
	}

	if video, err = concatStreams(g, media.KindVideo, videos); err != nil {
		return nil, nil, err
	}
	if len(audios) > 0 {
		// Mixing inputs with and without audio cannot concat cleanly.
		if len(audios) != len(videos) && len(audios) != 1 {
			return nil, nil, fmt.Errorf("inputs disagree on audio streams: %d video, %d audio", len(videos), len(audios))
		}
		if audio, err = concatStreams(g, media.KindAudio, audios); err != nil {
			return nil, nil, err
		}
	}
	return video, audio, nil
}

func concatStreams(g *graph.Graph, kind media.Kind, streams []*graph.Stream) (*graph.Stream, error) {
	if len(streams) == 1 {
		return streams[0], nil
	}
	concat, err := filters.NewConcat(kind, len(streams))
	if err != nil {
		return nil, err
	}
	node := g.Add(concat)
	for _, s := range streams {
		if err := s.Connect(node); err != nil {
			return nil, err
		}
	}
	return node.Output(0), nil
}

func parseTrimWindow(value string) (start, end media.TS, err error) {
	from, to, ok := strings.Cut(value, ":")
	if !ok {
		return 0, 0, fmt.Errorf("trim %q: expected start:end", value)
	}
	if start, err = media.ParseTS(from); err != nil {
		return 0, 0, fmt.Errorf("trim %q: %w", value, err)
	}
	if end, err = media.ParseTS(to); err != nil {
		return 0, 0, fmt.Errorf("trim %q: %w", value, err)
	}
	if end <= start {
		return 0, 0, fmt.Errorf("trim %q: end must be after start", value)
	}
	return start, end, nil
}

// trimStream cuts the window and rebases timestamps at zero.
func trimStream(g *graph.Graph, s *graph.Stream, start, end media.TS) (*graph.Stream, error) {
	trim, err := filters.NewTrim(s.Kind(), start, end)
	if err != nil {
		return nil, err
	}
	setpts, err := filters.NewSetPTS(s.Kind(), filters.PTSStart)
	if err != nil {
		return nil, err
	}
	return g.Chain(s, trim, setpts)
}

// finalizeOutputs fans the prepared streams out to one output file per
// spec, scaling video where a size was requested.
func finalizeOutputs(cmd *ffmpeg.Command, g *graph.Graph, video, audio *graph.Stream, specs []outputSpec, opts planOptions) error {
	vv, err := vector.FromStream(g, video, len(specs))
	if err != nil {
		return err
	}

	scales := make([]filters.Filter, len(specs))
	mask := make([]bool, len(specs))
	scaled := false
	for i, spec := range specs {
		if spec.Width == 0 && spec.Height == 0 {
			continue
		}
		scale, err := filters.NewScale(spec.Width, spec.Height)
		if err != nil {
			return err
		}
		scales[i] = scale
		mask[i] = true
		scaled = true
	}
	if scaled {
		if vv, err = vv.Connect(scales, mask); err != nil {
			return err
		}
	}

	videoCodecs := make([]*ffmpeg.Codec, len(specs))
	for i, spec := range specs {
		codec := ffmpeg.NewVideoCodec(opts.VCodec)
		codec.Bitrate = spec.Bitrate
		videoCodecs[i] = codec
	}

	var audioCodecs []*ffmpeg.Codec
	var av *vector.Vector
	if audio != nil {
		if av, err = vector.FromStream(g, audio, len(specs)); err != nil {
			return err
		}
		audioCodecs = make([]*ffmpeg.Codec, len(specs))
		for i := range specs {
			audioCodecs[i] = ffmpeg.NewAudioCodec(opts.ACodec)
		}
	}

	for i, spec := range specs {
		codecs := []*ffmpeg.Codec{videoCodecs[i]}
		if audioCodecs != nil {
			codecs = append(codecs, audioCodecs[i])
		}
		out, err := ffmpeg.NewOutput(spec.Path, "", codecs...)
		if err != nil {
			return err
		}
		if err := cmd.AddOutput(out); err != nil {
			return err
		}
	}

	if err := vv.Finalize(videoCodecs); err != nil {
		return err
	}
	if av != nil {
		if err := av.Finalize(audioCodecs); err != nil {
			return err
		}
	}
	return nil
}
