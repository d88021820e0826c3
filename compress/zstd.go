package compress

// ZstdCompressor provides Zstandard compression of an encoded record
// stream, trading compression speed for ratio.
//
// This compressor is designed for scenarios where compression ratio is more
// important than compression speed, making it ideal for:
//   - Cold storage and archival of recorded streams
//   - Network transmission where bandwidth is limited
//   - Scenarios where decompression happens infrequently
//
// Memory usage is moderate: encoders and decoders are kept in pools and
// reused across operations.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Returns:
//   - ZstdCompressor: New Zstd compressor instance
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
