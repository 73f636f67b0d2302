// Command splice builds media filter graphs from command line flags,
// renders them to ffmpeg invocations, checks them for buffering hazards,
// and optionally runs them.
package main
