package ffmpeg

import "regexp"

// Pre-compiled regexes classifying ffmpeg stderr output. A run whose
// stderr matches any of these failed even when the process exits zero;
// ffmpeg keeps going after some per-stream errors.
var (
	reConversionFailed = regexp.MustCompile(
		`Conversion failed!|Error while filtering|Error writing trailer|` +
			`Could not write header`)

	reInvalidArgument = regexp.MustCompile(
		`(?i)Invalid argument|Option .* not found|No such filter|` +
			`Unable to parse option value|Unknown encoder|Unknown decoder`)

	reMuxQueueOverflow = regexp.MustCompile(
		`Too many packets buffered for output stream`)

	reTimestampIssue = regexp.MustCompile(
		`(?i)Non-monotonous DTS|non monotonically increasing dts|` +
			`DTS .*out of order|PTS .*out of order`)
)

// markerPatterns pairs each classification with its pattern, checked in
// order of severity.
var markerPatterns = []struct {
	name string
	re   *regexp.Regexp
}{
	{"conversion failed", reConversionFailed},
	{"invalid argument", reInvalidArgument},
	{"mux queue overflow", reMuxQueueOverflow},
	{"timestamp issue", reTimestampIssue},
}

// ScanMarkers returns the first error classification found in stderr, or
// an empty string when the output looks clean.
func ScanMarkers(stderr string) string {
	for _, p := range markerPatterns {
		if p.re.MatchString(stderr) {
			return p.name
		}
	}
	return ""
}

// MatchMuxQueueOverflow reports whether stderr contains a mux queue
// overflow, the runtime signature of the buffering hazard the analyzer
// predicts statically.
func MatchMuxQueueOverflow(stderr string) bool {
	return reMuxQueueOverflow.MatchString(stderr)
}
