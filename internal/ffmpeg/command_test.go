package ffmpeg

import (
	"errors"
	"strings"
	"testing"

	"splice/internal/filters"
	"splice/internal/graph"
	"splice/internal/media"
)

func buildScaleCommand(t *testing.T) *Command {
	t.Helper()
	cmd := New()
	g := cmd.Graph()

	in, err := InputFile(g, "in.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.AddInput(in); err != nil {
		t.Fatal(err)
	}

	scale, err := filters.NewScale(1280, 720)
	if err != nil {
		t.Fatal(err)
	}
	tail, err := g.Chain(in.Video(), scale)
	if err != nil {
		t.Fatal(err)
	}

	vc := NewVideoCodec("libx264")
	ac := NewAudioCodec("aac")
	out, err := NewOutput("out.mp4", "", vc, ac)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.AddOutput(out); err != nil {
		t.Fatal(err)
	}
	if err := vc.Bind(tail); err != nil {
		t.Fatal(err)
	}
	if err := ac.Bind(in.Audio()); err != nil {
		t.Fatal(err)
	}
	return cmd
}

func TestCommandArgsShortForm(t *testing.T) {
	cmd := buildScaleCommand(t)
	args, err := cmd.Args()
	if err != nil {
		t.Fatal(err)
	}
	want := "ffmpeg -hide_banner -nostdin -loglevel error " +
		"-i in.mp4 " +
		"-vf scale=w=1280:h=720 " +
		"-map 0:v -c:v:0 libx264 -map 0:a -c:a:0 aac out.mp4"
	if got := strings.Join(args, " "); got != want {
		t.Fatalf("args:\n got %q\nwant %q", got, want)
	}
}

func TestCommandOverwriteFlag(t *testing.T) {
	cmd := buildScaleCommand(t)
	cmd.Overwrite = true
	args, err := cmd.Args()
	if err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, " -y ") {
		t.Fatalf("missing -y in %q", joined)
	}
}

func TestCommandRequiresInputsAndOutputs(t *testing.T) {
	cmd := New()
	if _, err := cmd.Args(); err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestCommandRejectsDuplicateOutputs(t *testing.T) {
	cmd := New()
	vc := NewVideoCodec("libx264")
	out, err := NewOutput("out.mp4", "", vc)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.AddOutput(out); err != nil {
		t.Fatal(err)
	}
	vc2 := NewVideoCodec("libx264")
	dup, err := NewOutput("out.mp4", "", vc2)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.AddOutput(dup); err == nil {
		t.Fatal("expected duplicate output error")
	}
}

func TestInputSeekAndLimit(t *testing.T) {
	cmd := New()
	g := cmd.Graph()
	in, err := InputFile(g, "in.mp4")
	if err != nil {
		t.Fatal(err)
	}
	in.FastSeek = 10.5
	in.Limit = 30
	if err := cmd.AddInput(in); err != nil {
		t.Fatal(err)
	}

	vc := NewVideoCodec("copy")
	ac := NewAudioCodec("copy")
	out, err := NewOutput("out.mkv", "matroska", vc, ac)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.AddOutput(out); err != nil {
		t.Fatal(err)
	}
	if err := vc.Bind(in.Video()); err != nil {
		t.Fatal(err)
	}
	if err := ac.Bind(in.Audio()); err != nil {
		t.Fatal(err)
	}

	args, err := cmd.Args()
	if err != nil {
		t.Fatal(err)
	}
	want := "ffmpeg -hide_banner -nostdin -loglevel error " +
		"-ss 10.5 -t 30 -i in.mp4 " +
		"-map 0:v -c:v:0 copy -map 0:a -c:a:0 copy -f matroska out.mkv"
	if got := strings.Join(args, " "); got != want {
		t.Fatalf("args:\n got %q\nwant %q", got, want)
	}
}

func TestSecondStreamOfKindGetsSubIndex(t *testing.T) {
	cmd := New()
	g := cmd.Graph()
	metas := []*media.Meta{
		media.NewAudioMeta("in.mkv#1", 300, 48000, 2),
		media.NewAudioMeta("in.mkv#2", 300, 48000, 6),
	}
	in, err := InputFile(g, "in.mkv", metas...)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.AddInput(in); err != nil {
		t.Fatal(err)
	}
	streams := in.Streams()
	if streams[0].Label() != "0:a" {
		t.Fatalf("first audio label = %q", streams[0].Label())
	}
	if streams[1].Label() != "0:a:1" {
		t.Fatalf("second audio label = %q", streams[1].Label())
	}
}

func TestVideoOnlyOutputDisablesAudio(t *testing.T) {
	cmd := New()
	g := cmd.Graph()
	in, err := InputFile(g, "in.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.AddInput(in); err != nil {
		t.Fatal(err)
	}
	vc := NewVideoCodec("libx264")
	out, err := NewOutput("out.mp4", "", vc)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.AddOutput(out); err != nil {
		t.Fatal(err)
	}
	if err := vc.Bind(in.Video()); err != nil {
		t.Fatal(err)
	}

	args, err := cmd.Args()
	if err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, " -an ") {
		t.Fatalf("missing -an in %q", joined)
	}
}

func TestCodecBitrate(t *testing.T) {
	cmd := buildScaleCommand(t)
	cmd.Codecs()[0].Bitrate = 4000000
	args, err := cmd.Args()
	if err != nil {
		t.Fatal(err)
	}
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-b:v:0 4000000") {
		t.Fatalf("missing bitrate in %q", joined)
	}
}

func TestDanglingCodecFailsRender(t *testing.T) {
	cmd := New()
	g := cmd.Graph()
	in, err := InputFile(g, "in.mp4")
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.AddInput(in); err != nil {
		t.Fatal(err)
	}
	vc := NewVideoCodec("libx264")
	ac := NewAudioCodec("aac")
	out, err := NewOutput("out.mp4", "", vc, ac)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.AddOutput(out); err != nil {
		t.Fatal(err)
	}
	if err := vc.Bind(in.Video()); err != nil {
		t.Fatal(err)
	}
	// Audio codec left unbound.
	_, err = cmd.Args()
	if !errors.Is(err, graph.ErrUnresolvedReference) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
}

func TestCodecDescribe(t *testing.T) {
	vc := NewVideoCodec("libx264")
	if vc.Describe() != "v:libx264" {
		t.Fatalf("unregistered describe = %q", vc.Describe())
	}
	if _, err := NewOutput("out.mp4", "", vc); err != nil {
		t.Fatal(err)
	}
	if vc.Describe() != "out.mp4#v:0" {
		t.Fatalf("registered describe = %q", vc.Describe())
	}
}
