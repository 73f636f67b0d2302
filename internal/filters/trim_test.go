package filters

import (
	"testing"

	"splice/internal/media"
)

func TestTrimNames(t *testing.T) {
	v, err := NewTrim(media.KindVideo, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	if v.FilterName() != "trim" || v.Args() != "start=5:end=10" {
		t.Fatalf("video trim renders %s=%s", v.FilterName(), v.Args())
	}
	a, err := NewTrim(media.KindAudio, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	if a.FilterName() != "atrim" {
		t.Fatalf("audio trim renders %s", a.FilterName())
	}
}

func TestTrimRejectsInvalidWindow(t *testing.T) {
	if _, err := NewTrim(media.KindVideo, 10, 10); err == nil {
		t.Fatal("expected error for empty window")
	}
	if _, err := NewTrim(media.KindVideo, -1, 10); err == nil {
		t.Fatal("expected error for negative start")
	}
}

func TestTrimIntersectsScenes(t *testing.T) {
	tr, err := NewTrim(media.KindVideo, 5, 10)
	if err != nil {
		t.Fatal(err)
	}
	in := media.NewVideoMeta("src", 300, 1920, 1080, 25)
	out, err := tr.Transform([]*media.Meta{in})
	if err != nil {
		t.Fatal(err)
	}
	m := out[0]
	if m.Duration != 5 || m.Start != 5 {
		t.Fatalf("trim window: start %v duration %v", m.Start, m.Duration)
	}
	if len(m.Scenes) != 1 {
		t.Fatalf("expected 1 scene, got %d", len(m.Scenes))
	}
	scene := m.Scenes[0]
	// Positions are not shifted: the kept frames stay at [5, 10).
	if scene.Start != 5 || scene.Duration != 5 || scene.Position != 5 {
		t.Fatalf("unexpected scene %+v", scene)
	}
}

func TestTrimDropsScenesOutsideWindow(t *testing.T) {
	tr, err := NewTrim(media.KindVideo, 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	in := media.NewVideoMeta("a", 3, 1920, 1080, 25)
	in.Scenes = append(in.Scenes, media.Scene{Stream: "b", Start: 0, Duration: 3, Position: 3})
	in.Duration = 6
	out, err := tr.Transform([]*media.Meta{in})
	if err != nil {
		t.Fatal(err)
	}
	m := out[0]
	if len(m.Scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(m.Scenes))
	}
	// Second scene is clipped to one second of source time.
	if m.Scenes[1].Duration != 1 || m.Scenes[1].Start != 0 || m.Scenes[1].Position != 3 {
		t.Fatalf("unexpected clipped scene %+v", m.Scenes[1])
	}
}
