package media

// Kind identifies the content type of a stream.
type Kind int

const (
	// KindVideo marks a video stream.
	KindVideo Kind = iota + 1
	// KindAudio marks an audio stream.
	KindAudio
)

// Tag returns the single-letter stream specifier used in rendered labels.
func (k Kind) Tag() string {
	switch k {
	case KindVideo:
		return "v"
	case KindAudio:
		return "a"
	default:
		return "?"
	}
}

// String returns a human readable kind name.
func (k Kind) String() string {
	switch k {
	case KindVideo:
		return "video"
	case KindAudio:
		return "audio"
	default:
		return "unknown"
	}
}

// Scene is a contiguous span of original source time represented in a
// stream. Start and Duration address source time; Position is where the
// span sits in the stream's own timeline. After concatenation or trimming
// the scene list stays ordered by Position while source time may jump
// around freely.
type Scene struct {
	// Stream identifies the source stream the span was decoded from,
	// usually "<file>#<index>".
	Stream   string
	Start    TS
	Duration TS
	Position TS
}

// End returns the source timestamp one past the last frame of the scene.
func (s Scene) End() TS {
	return s.Start + s.Duration
}

// Meta describes the content of a single stream. A nil *Meta means the
// stream content is unknown; every transform propagates that as-is.
type Meta struct {
	Kind     Kind
	Duration TS
	// Start is the first frame or sample timestamp of the stream.
	Start   TS
	Bitrate int

	// Scenes lists the source spans that make up the stream, ordered by
	// Position. Spans never overlap in Position; their source order is
	// unconstrained.
	Scenes []Scene
	// Streams lists the distinct source streams referenced by Scenes, in
	// first-use order.
	Streams []string

	// Video fields.
	Width     int
	Height    int
	FrameRate float64

	// Audio fields.
	SampleRate int
	Channels   int
}

// NewVideoMeta builds video metadata covering a single whole-stream scene.
func NewVideoMeta(stream string, duration TS, width, height int, frameRate float64) *Meta {
	m := &Meta{
		Kind:      KindVideo,
		Duration:  duration,
		Width:     width,
		Height:    height,
		FrameRate: frameRate,
	}
	m.seedScene(stream)
	return m
}

// NewAudioMeta builds audio metadata covering a single whole-stream scene.
func NewAudioMeta(stream string, duration TS, sampleRate, channels int) *Meta {
	m := &Meta{
		Kind:       KindAudio,
		Duration:   duration,
		SampleRate: sampleRate,
		Channels:   channels,
	}
	m.seedScene(stream)
	return m
}

func (m *Meta) seedScene(stream string) {
	m.Scenes = []Scene{{
		Stream:   stream,
		Start:    m.Start,
		Duration: m.Duration,
		Position: m.Start,
	}}
	if stream != "" {
		m.Streams = []string{stream}
	}
}

// End returns the timestamp of the last frame of the stream.
func (m *Meta) End() TS {
	return m.Start + m.Duration
}

// Clone returns a deep copy, or nil for unknown metadata.
func (m *Meta) Clone() *Meta {
	if m == nil {
		return nil
	}
	cp := *m
	cp.Scenes = append([]Scene(nil), m.Scenes...)
	cp.Streams = append([]string(nil), m.Streams...)
	return &cp
}
