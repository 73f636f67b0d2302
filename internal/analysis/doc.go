// Package analysis statically inspects a finished command for buffering
// hazards: the external tool reads every input under one demand-driven
// schedule, so when two output codecs need frames of a shared source in
// divergent orders, one branch's frames pile up in memory until the other
// catches up. The analyzer predicts that from propagated scene metadata
// before anything runs. Hazards are reported, never thrown; whether to
// abort is the caller's decision.
package analysis
