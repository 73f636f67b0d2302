// Package graph models a media processing run as a directed acyclic graph
// of source streams, filter nodes, and terminal destinations, and renders
// that graph into the filter_complex syntax understood by ffmpeg.
//
// Streams are single-use edges: once consumed by a filter or a
// destination the binding is final. The graph itself is frozen by the
// first render pass; rendering is pure and repeatable, so a frozen graph
// always renders to byte-identical text.
package graph
