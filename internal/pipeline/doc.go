// Package pipeline walks the primary, barcode and index record streams in
// lockstep and writes one annotated record per primary record.
//
// Streams are plain Sources (Next/Name) and output is any Sink, so the
// multiplexer can be driven from memory in tests.
package pipeline
