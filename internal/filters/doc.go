// Package filters defines the filter vocabulary available to processing
// graphs. Each filter declares its typed input and output arity, renders
// its parameters in ffmpeg key=value syntax, and carries a pure metadata
// transform that describes what the filter does to stream content.
package filters
