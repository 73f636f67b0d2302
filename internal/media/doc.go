// Package media defines stream metadata used to describe the content
// flowing through a processing graph: stream kind, timestamps, and the
// ordered list of source scenes a stream represents.
//
// Metadata is informational. Filters never touch real frames; they only
// rewrite these descriptions so that later passes (command rendering,
// buffering analysis) can reason about what the external tool will do.
package media
