package media

import "testing"

func TestNewVideoMetaSeedsScene(t *testing.T) {
	m := NewVideoMeta("in.mp4#0", 300, 1920, 1080, 25)
	if len(m.Scenes) != 1 {
		t.Fatalf("expected 1 scene, got %d", len(m.Scenes))
	}
	scene := m.Scenes[0]
	if scene.Stream != "in.mp4#0" || scene.Start != 0 || scene.Duration != 300 || scene.Position != 0 {
		t.Fatalf("unexpected scene %+v", scene)
	}
	if len(m.Streams) != 1 || m.Streams[0] != "in.mp4#0" {
		t.Fatalf("unexpected streams %v", m.Streams)
	}
	if m.Kind != KindVideo {
		t.Fatalf("unexpected kind %v", m.Kind)
	}
}

func TestNewAudioMeta(t *testing.T) {
	m := NewAudioMeta("in.mp4#1", 300, 48000, 2)
	if m.Kind != KindAudio || m.SampleRate != 48000 || m.Channels != 2 {
		t.Fatalf("unexpected meta %+v", m)
	}
	if m.End() != 300 {
		t.Fatalf("End() = %v", m.End())
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := NewVideoMeta("src", 10, 640, 480, 30)
	cp := m.Clone()
	cp.Scenes[0].Position = 99
	cp.Streams[0] = "other"
	if m.Scenes[0].Position == 99 || m.Streams[0] == "other" {
		t.Fatal("clone shares backing arrays with original")
	}
}

func TestCloneNil(t *testing.T) {
	var m *Meta
	if m.Clone() != nil {
		t.Fatal("nil clone should stay nil")
	}
}

func TestKindTag(t *testing.T) {
	if KindVideo.Tag() != "v" || KindAudio.Tag() != "a" {
		t.Fatal("unexpected kind tags")
	}
	if KindVideo.String() != "video" || KindAudio.String() != "audio" {
		t.Fatal("unexpected kind names")
	}
}

func TestSceneEnd(t *testing.T) {
	s := Scene{Start: 5, Duration: 10}
	if s.End() != 15 {
		t.Fatalf("End() = %v", s.End())
	}
}
