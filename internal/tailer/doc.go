// Package tailer extracts the most recent lines from append-only log files
// without reading them front to back.
//
// A Finder walks a file in fixed-size pages from the end toward the start,
// reassembles lines that straddle page boundaries, filters them through a
// byte predicate, and surfaces matches newest first through a scanner-style
// pull API. Memory stays bounded by one page buffer plus the configured
// maximum line length, so files far larger than RAM are fine.
//
// A zero-byte read before the expected page length is treated as the file
// shrinking underneath us (rotation, truncation); the scan ends cleanly with
// whatever was already produced rather than failing the caller.
package tailer
