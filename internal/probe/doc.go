// Package probe inspects media files with ffprobe and converts the
// results into stream metadata for graph sources. Raw probe payloads are
// cached in SQLite keyed by file identity, so repeated planning over the
// same unchanged files skips the external tool.
package probe
