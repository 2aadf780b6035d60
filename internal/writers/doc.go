// Package writers owns output sinks: stdout or files, optional gzip, and
// rotation into fixed-size chunks.
//
// Sinks receive complete records only, so a chunk boundary never splits a
// record.
package writers
