package vector

import (
	"errors"
	"testing"

	"splice/internal/ffmpeg"
	"splice/internal/filters"
	"splice/internal/graph"
	"splice/internal/media"
)

func videoSource(t *testing.T, g *graph.Graph, label string) *graph.Stream {
	t.Helper()
	s := g.Source(media.KindVideo, media.NewVideoMeta(label, 300, 1920, 1080, 25))
	if err := s.SetLabel(label); err != nil {
		t.Fatal(err)
	}
	return s
}

func scaleFilter(t *testing.T, w, h int) filters.Filter {
	t.Helper()
	s, err := filters.NewScale(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func bindAll(t *testing.T, v *Vector, n int) []*ffmpeg.Codec {
	t.Helper()
	codecs := make([]*ffmpeg.Codec, n)
	for i := range codecs {
		codecs[i] = ffmpeg.NewVideoCodec("libx264")
	}
	if err := v.Finalize(codecs); err != nil {
		t.Fatal(err)
	}
	return codecs
}

func TestConnectInsertsSplitForDistinctParameters(t *testing.T) {
	g := graph.New()
	src := videoSource(t, g, "0:v")

	v, err := FromStream(g, src, 2)
	if err != nil {
		t.Fatal(err)
	}
	out, err := v.Connect([]filters.Filter{
		scaleFilter(t, 1280, 720),
		scaleFilter(t, 640, 360),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	bindAll(t, out, 2)

	r, err := g.Render()
	if err != nil {
		t.Fatal(err)
	}
	want := "[0:v]split[vout0][vout1];" +
		"[vout0]scale=w=1280:h=720[vout2];" +
		"[vout1]scale=w=640:h=360[vout3]"
	if r.Text != want {
		t.Fatalf("rendered text:\n got %q\nwant %q", r.Text, want)
	}
}

func TestConnectDeduplicatesIdenticalFilters(t *testing.T) {
	g := graph.New()
	src := videoSource(t, g, "0:v")

	v, err := FromStream(g, src, 2)
	if err != nil {
		t.Fatal(err)
	}
	// Equal name and parameters collapse into one chain; the fan-out to
	// two codecs happens at Finalize time instead.
	out, err := v.Connect([]filters.Filter{
		scaleFilter(t, 1280, 720),
		scaleFilter(t, 1280, 720),
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Streams()[0] != out.Streams()[1] {
		t.Fatal("identical filters should share one output stream")
	}
	bindAll(t, out, 2)

	r, err := g.Render()
	if err != nil {
		t.Fatal(err)
	}
	want := "[0:v]scale=w=1280:h=720[vout0];" +
		"[vout0]split[vout1][vout2]"
	if r.Text != want {
		t.Fatalf("rendered text:\n got %q\nwant %q", r.Text, want)
	}
}

func TestConnectSharedFilterAcrossVector(t *testing.T) {
	g := graph.New()
	src := videoSource(t, g, "0:v")

	v, err := FromStream(g, src, 3)
	if err != nil {
		t.Fatal(err)
	}
	out, err := v.Connect([]filters.Filter{scaleFilter(t, 1280, 720)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 3 {
		t.Fatalf("vector length = %d", out.Len())
	}
	if out.Streams()[0] != out.Streams()[2] {
		t.Fatal("shared filter should produce one shared stream")
	}
}

func TestConnectMaskSkipsElements(t *testing.T) {
	g := graph.New()
	src := videoSource(t, g, "0:v")

	v, err := FromStream(g, src, 2)
	if err != nil {
		t.Fatal(err)
	}
	out, err := v.Connect(
		[]filters.Filter{scaleFilter(t, 1280, 720), nil},
		[]bool{true, false},
	)
	if err != nil {
		t.Fatal(err)
	}
	bindAll(t, out, 2)

	r, err := g.Render()
	if err != nil {
		t.Fatal(err)
	}
	// The masked element keeps reading the source directly, so the source
	// is split between the scale chain and the pass-through.
	want := "[0:v]split[vout0][vout1];" +
		"[vout0]scale=w=1280:h=720[vout2]"
	if r.Text != want {
		t.Fatalf("rendered text:\n got %q\nwant %q", r.Text, want)
	}
}

func TestConnectRejectsLengthMismatch(t *testing.T) {
	g := graph.New()
	src := videoSource(t, g, "0:v")

	v, err := FromStream(g, src, 3)
	if err != nil {
		t.Fatal(err)
	}
	_, err = v.Connect([]filters.Filter{
		scaleFilter(t, 1280, 720),
		scaleFilter(t, 640, 360),
	}, nil)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestFinalizeBindsSourceDirectly(t *testing.T) {
	g := graph.New()
	src := videoSource(t, g, "0:v")

	v, err := FromStream(g, src, 2)
	if err != nil {
		t.Fatal(err)
	}
	// Codecs are terminal, so a source stream feeds both without a split.
	bindAll(t, v, 2)

	r, err := g.Render()
	if err != nil {
		t.Fatal(err)
	}
	if r.Text != "" {
		t.Fatalf("no filters expected, rendered %q", r.Text)
	}
}
