package analysis

import (
	"errors"
	"fmt"

	"splice/internal/ffmpeg"
	"splice/internal/media"
)

// ErrMetadataRequired reports that a strict check could not cover every
// codec because stream metadata was missing.
var ErrMetadataRequired = errors.New("metadata required")

// Hazard names one conflict: a source stream whose frames two codecs
// consume in orders that no single monotonic read can satisfy. CodecA is
// the over-reader: it needs the later span SceneA no later than CodecB
// needs the earlier span SceneB, forcing the span in between to be
// buffered. CodecA and CodecB are equal when one codec re-reads the same
// source stream non-monotonically on its own.
type Hazard struct {
	Stream string
	CodecA string
	CodecB string
	SceneA media.Scene
	SceneB media.Scene
}

func (h Hazard) String() string {
	return fmt.Sprintf("%s: %s needs [%s, %s) before %s finishes [%s, %s)",
		h.Stream,
		h.CodecA, h.SceneA.Start, h.SceneA.End(),
		h.CodecB, h.SceneB.Start, h.SceneB.End())
}

// Report is the outcome of one analysis pass.
type Report struct {
	Hazards []Hazard
	// Skipped lists codecs that could not be analyzed for lack of
	// metadata. Missing metadata degrades the analysis, it never fails it.
	Skipped []string
}

// Clean reports whether no hazard was found.
func (r Report) Clean() bool {
	return len(r.Hazards) == 0
}

// Check analyzes every codec of the command against every other (and
// against itself) and reports at most one hazard per codec pair and
// source stream.
func Check(cmd *ffmpeg.Command) Report {
	var report Report
	codecs := cmd.Codecs()

	analyzable := make([]*ffmpeg.Codec, 0, len(codecs))
	for _, c := range codecs {
		if c.Meta() == nil || len(c.Meta().Scenes) == 0 {
			report.Skipped = append(report.Skipped, c.Describe())
			continue
		}
		analyzable = append(analyzable, c)
	}

	seen := make(map[string]struct{})
	for i, x := range analyzable {
		for j := i; j < len(analyzable); j++ {
			y := analyzable[j]
			for _, hazard := range conflicts(x, y) {
				key := hazard.CodecA + "|" + hazard.CodecB + "|" + hazard.Stream
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				report.Hazards = append(report.Hazards, hazard)
			}
		}
	}
	return report
}

// CheckStrict behaves like Check but fails when any codec had to be
// skipped for missing metadata.
func CheckStrict(cmd *ffmpeg.Command) (Report, error) {
	report := Check(cmd)
	if len(report.Skipped) > 0 {
		return report, fmt.Errorf("%w: no metadata for %s",
			ErrMetadataRequired, report.Skipped[0])
	}
	return report, nil
}

// conflicts scans every scene pair of two codecs that reads the same
// source stream, in both directions.
func conflicts(x, y *ffmpeg.Codec) []Hazard {
	var hazards []Hazard
	for ai, a := range x.Meta().Scenes {
		for bi, b := range y.Meta().Scenes {
			if x == y && ai == bi {
				continue
			}
			if a.Stream == "" || a.Stream != b.Stream {
				continue
			}
			if overreads(a, b) {
				hazards = append(hazards, Hazard{
					Stream: a.Stream,
					CodecA: x.Describe(), SceneA: a,
					CodecB: y.Describe(), SceneB: b,
				})
			} else if overreads(b, a) {
				hazards = append(hazards, Hazard{
					Stream: a.Stream,
					CodecA: y.Describe(), SceneA: b,
					CodecB: x.Describe(), SceneB: a,
				})
			}
		}
	}
	return hazards
}

// overreads reports whether scene a forces the shared read head past
// frames scene b still needs. Outputs advance in lockstep, so a's branch
// must be fed source offset a.Start once output time reaches a.Position;
// if at that moment b's branch still sits at an earlier source offset,
// everything in between has to be buffered.
func overreads(a, b media.Scene) bool {
	if a.Position > b.Position+b.Duration {
		// b is fully consumed before a is needed.
		return false
	}
	lead := a.Start + clampTS(b.Position-a.Position, 0, a.Duration)
	need := b.Start
	if d := a.Position - b.Position; d > 0 {
		need += d
	}
	return lead > need
}

func clampTS(v, lo, hi media.TS) media.TS {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
