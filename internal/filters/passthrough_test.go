package filters

import (
	"testing"

	"splice/internal/media"
)

func TestOverlayKeepsBottomInput(t *testing.T) {
	o, err := NewOverlay(100, 50)
	if err != nil {
		t.Fatal(err)
	}
	if o.Args() != "x=100:y=50" {
		t.Fatalf("Args() = %q", o.Args())
	}
	if len(o.InputKinds()) != 2 {
		t.Fatalf("overlay arity = %d", len(o.InputKinds()))
	}

	bottom := media.NewVideoMeta("main", 300, 1920, 1080, 25)
	top := media.NewVideoMeta("logo", 10, 200, 100, 25)
	out, err := o.Transform([]*media.Meta{bottom, top})
	if err != nil {
		t.Fatal(err)
	}
	m := out[0]
	if m.Width != 1920 || m.Duration != 300 {
		t.Fatalf("overlay output %+v", m)
	}
	if len(m.Scenes) != 1 || m.Scenes[0].Stream != "main" {
		t.Fatalf("top input scenes leaked: %+v", m.Scenes)
	}
}

func TestOverlayRejectsNegativePosition(t *testing.T) {
	if _, err := NewOverlay(-1, 0); err == nil {
		t.Fatal("expected error")
	}
}

func TestPassthroughFilters(t *testing.T) {
	format, err := NewFormat("yuv420p")
	if err != nil {
		t.Fatal(err)
	}
	volume, err := NewVolume(0.5)
	if err != nil {
		t.Fatal(err)
	}
	custom, err := NewCustom(media.KindVideo, "hflip", "")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		f    Filter
		name string
		args string
		kind media.Kind
	}{
		{format, "format", "pix_fmts=yuv420p", media.KindVideo},
		{NewUpload(), "hwupload", "", media.KindVideo},
		{volume, "volume", "volume=0.5", media.KindAudio},
		{custom, "hflip", "", media.KindVideo},
	}
	for _, tc := range cases {
		if tc.f.FilterName() != tc.name || tc.f.Args() != tc.args {
			t.Fatalf("%s renders %s=%q", tc.name, tc.f.FilterName(), tc.f.Args())
		}

		var in *media.Meta
		if tc.kind == media.KindVideo {
			in = media.NewVideoMeta("src", 10, 640, 480, 25)
		} else {
			in = media.NewAudioMeta("src", 10, 48000, 2)
		}
		out, err := tc.f.Transform([]*media.Meta{in})
		if err != nil {
			t.Fatal(err)
		}
		if out[0].Duration != in.Duration || len(out[0].Scenes) != len(in.Scenes) {
			t.Fatalf("%s altered metadata", tc.name)
		}
		// Pass-through clones rather than aliases.
		out[0].Scenes[0].Position = 7
		if in.Scenes[0].Position == 7 {
			t.Fatalf("%s shares scene storage with its input", tc.name)
		}
	}
}

func TestCustomRejectsEmptyName(t *testing.T) {
	if _, err := NewCustom(media.KindVideo, "", ""); err == nil {
		t.Fatal("expected error")
	}
}
