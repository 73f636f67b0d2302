package filters

import (
	"testing"

	"splice/internal/media"
)

func TestSetPTSRebasesAfterTrim(t *testing.T) {
	tr, err := NewTrim(media.KindVideo, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	pts, err := NewSetPTS(media.KindVideo, PTSStart)
	if err != nil {
		t.Fatal(err)
	}

	in := media.NewVideoMeta("src", 300, 1920, 1080, 25)
	trimmed, err := tr.Transform([]*media.Meta{in})
	if err != nil {
		t.Fatal(err)
	}
	out, err := pts.Transform(trimmed)
	if err != nil {
		t.Fatal(err)
	}
	m := out[0]
	if m.Start != 0 || m.Duration != 5 {
		t.Fatalf("rebased stream: start %v duration %v", m.Start, m.Duration)
	}
	scene := m.Scenes[0]
	// Source time survives the rebase; only positions move to zero.
	if scene.Position != 0 || scene.Start != 5 || scene.Duration != 5 {
		t.Fatalf("unexpected scene %+v", scene)
	}
}

func TestSetPTSOpaqueExpressionPassesThrough(t *testing.T) {
	pts, err := NewSetPTS(media.KindVideo, "PTS*2")
	if err != nil {
		t.Fatal(err)
	}
	in := media.NewVideoMeta("src", 10, 640, 480, 25)
	in.Scenes[0].Position = 3
	out, err := pts.Transform([]*media.Meta{in})
	if err != nil {
		t.Fatal(err)
	}
	if out[0].Scenes[0].Position != 3 {
		t.Fatal("opaque expression must not move scene positions")
	}
}

func TestSetPTSNames(t *testing.T) {
	a, err := NewSetPTS(media.KindAudio, "")
	if err != nil {
		t.Fatal(err)
	}
	if a.FilterName() != "asetpts" || a.Args() != PTSStart {
		t.Fatalf("audio setpts renders %s=%s", a.FilterName(), a.Args())
	}
}
