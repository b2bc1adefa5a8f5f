// Package memchan implements ultralight persistent data channels:
// single-producer / multi-consumer sequential record logs backed by a
// memory-mapped file. A channel is a fixed-capacity append-only byte
// medium usable for inter-process communication, write-ahead journaling,
// state replication, or system-prevalence snapshots.
//
// A writer created with CreateWriter owns the mapped record region
// exclusively and publishes records with a single release-store of a
// length word; any number of independent readers opened with OpenReader
// observe the same region with acquire-load semantics and never
// coordinate with the writer or each other. TimeoutReader layers liveness
// over a reader for callers that need to detect a writer gone silent.
//
// Byte endianness is little-endian throughout. The engine never panics on
// corrupt input: decode failures become typed errors or a CorruptRecord
// terminal result.
package memchan
