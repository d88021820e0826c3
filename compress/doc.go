// Package compress provides optional whole-stream compression for the
// bytes codec.Codec produces. Compression sits outside the core wire
// format: a record's field-by-field bytes are always written and read
// directly, and a Compressor/Decompressor is applied to the finished
// stream as a caller's choice.
//
// # Supported algorithms
//
//   - None: no compression, for testing or already-incompressible data
//   - Zstd: best ratio, moderate speed — good for archival record dumps
//   - S2: balanced ratio and speed — good for hot ingestion paths
//   - LZ4: fastest decompression — good for read-heavy workloads
//
// All four implement Codec (Compressor and Decompressor together) and
// are safe for concurrent use.
package compress
