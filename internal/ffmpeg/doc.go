// Package ffmpeg assembles and executes complete ffmpeg invocations:
// declared inputs and outputs, the filter graph between them, per-codec
// map and encoding parameters, and the stderr classification used to tell
// a clean run from a failed one.
package ffmpeg
