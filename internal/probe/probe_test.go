package probe

import (
	"testing"

	"splice/internal/media"
)

const samplePayload = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "duration": "300.5",
      "bit_rate": "4000000",
      "width": 1920,
      "height": 1080,
      "r_frame_rate": "30000/1001"
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "duration": "300.5",
      "bit_rate": "192000",
      "sample_rate": "48000",
      "channels": 2
    },
    {
      "index": 2,
      "codec_type": "subtitle"
    }
  ],
  "format": {
    "filename": "in.mp4",
    "nb_streams": 3,
    "duration": "300.5",
    "format_name": "mov,mp4,m4a"
  }
}`

func TestParseAndMetadata(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatal(err)
	}
	if result.DurationSeconds() != 300.5 {
		t.Fatalf("duration = %v", result.DurationSeconds())
	}

	metas := result.Metadata()
	if len(metas) != 2 {
		t.Fatalf("expected 2 metas (subtitle skipped), got %d", len(metas))
	}

	video := metas[0]
	if video.Kind != media.KindVideo || video.Width != 1920 || video.Height != 1080 {
		t.Fatalf("unexpected video meta %+v", video)
	}
	if got := video.FrameRate; got < 29.96 || got > 29.98 {
		t.Fatalf("frame rate = %v, want ~29.97", got)
	}
	if len(video.Scenes) != 1 || video.Scenes[0].Stream != "in.mp4#0" {
		t.Fatalf("video scenes = %+v", video.Scenes)
	}
	if video.Duration != 300.5 {
		t.Fatalf("video duration = %v", video.Duration)
	}

	audio := metas[1]
	if audio.Kind != media.KindAudio || audio.SampleRate != 48000 || audio.Channels != 2 {
		t.Fatalf("unexpected audio meta %+v", audio)
	}
	if audio.Scenes[0].Stream != "in.mp4#1" {
		t.Fatalf("audio scene stream = %q", audio.Scenes[0].Stream)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse([]byte("not json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestMetadataFallsBackToContainerDuration(t *testing.T) {
	payload := `{
	  "streams": [{"index": 0, "codec_type": "video", "width": 640, "height": 480}],
	  "format": {"filename": "x.mkv", "duration": "12.5"}
	}`
	result, err := Parse([]byte(payload))
	if err != nil {
		t.Fatal(err)
	}
	metas := result.Metadata()
	if len(metas) != 1 || metas[0].Duration != 12.5 {
		t.Fatalf("metas = %+v", metas)
	}
}

func TestParseRational(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"25", 25},
		{"25/1", 25},
		{"0/0", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := parseRational(tc.in); got != tc.want {
			t.Fatalf("parseRational(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestRawJSONRoundTrip(t *testing.T) {
	result, err := Parse([]byte(samplePayload))
	if err != nil {
		t.Fatal(err)
	}
	reparsed, err := Parse(result.RawJSON())
	if err != nil {
		t.Fatal(err)
	}
	if len(reparsed.Streams) != len(result.Streams) {
		t.Fatal("raw payload does not round trip")
	}
}
