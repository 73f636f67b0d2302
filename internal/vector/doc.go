// Package vector applies one transform across a collection of parallel
// streams, such as the same content encoded at several qualities. Fan-out
// filters are inserted automatically whenever distinct per-element
// parameters would otherwise consume a single-use stream twice.
package vector
